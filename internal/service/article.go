// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// The repository deliberately has no opinion about missing rows: Find returns
// (nil, nil), Update and Delete return a row count. This layer decides what
// those mean. A missing article on Get or Update becomes apperror.NotFound;
// a Delete of a missing article is simply a no-op.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sakif/articles/internal/apperror"
	"github.com/sakif/articles/internal/metrics"
	"github.com/sakif/articles/internal/model"
	"github.com/sakif/articles/internal/repository"
)

const (
	MaxTitleLength = 200
	MaxTextLength  = 100000
)

// ArticleService handles business logic for articles.
type ArticleService struct {
	repo   repository.ArticleRepository
	logger *slog.Logger
}

// NewArticleService creates a new ArticleService.
func NewArticleService(repo repository.ArticleRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		repo:   repo,
		logger: logger,
	}
}

// List returns every article.
func (s *ArticleService) List(ctx context.Context) ([]model.Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		s.observe("list", err)
		s.logger.Error("failed to list articles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	s.observe("list", nil)
	return articles, nil
}

// Get returns one article, or apperror.ErrNotFound if there is none.
func (s *ArticleService) Get(ctx context.Context, id int64) (*model.Article, error) {
	article, err := s.find(ctx, id)
	s.observe("get", err)
	return article, err
}

// Create validates the payload, inserts the article and returns it as stored
// (with its engine-assigned id and timestamps).
//
// A title is required. Text may be omitted and is stored as "".
func (s *ArticleService) Create(ctx context.Context, partial model.PartialArticle) (*model.Article, error) {
	partial = normalize(partial)

	if title, ok := partial.Title.Get(); !ok || title == "" {
		err := apperror.ValidationFailed("title", "article title is required")
		s.observe("create", err)
		return nil, err
	}
	if err := validate(partial); err != nil {
		s.observe("create", err)
		return nil, err
	}

	id, err := s.repo.Create(ctx, partial)
	if err != nil {
		s.observe("create", err)
		s.logger.Error("failed to create article", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating article: %w", err)
	}

	article, err := s.find(ctx, id)
	if err != nil {
		s.observe("create", err)
		return nil, err
	}

	s.observe("create", nil)
	s.logger.Info("article created",
		slog.Int64("id", article.ID),
		slog.String("title", article.Title),
	)
	return article, nil
}

// Update applies a partial update. Fields absent from the payload keep their
// stored value; `updated` is always refreshed.
//
// Returns apperror.ErrNotFound if no article has this id.
func (s *ArticleService) Update(ctx context.Context, id int64, partial model.PartialArticle) (*model.Article, error) {
	partial = normalize(partial)

	if title, ok := partial.Title.Get(); ok && title == "" {
		err := apperror.ValidationFailed("title", "article title cannot be empty")
		s.observe("update", err)
		return nil, err
	}
	if err := validate(partial); err != nil {
		s.observe("update", err)
		return nil, err
	}

	n, err := s.repo.Update(ctx, id, partial)
	if err != nil {
		s.observe("update", err)
		s.logger.Error("failed to update article",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating article: %w", err)
	}
	if n == 0 {
		err := apperror.NotFound("article", id)
		s.observe("update", err)
		return nil, err
	}

	article, err := s.find(ctx, id)
	if err != nil {
		s.observe("update", err)
		return nil, err
	}

	s.observe("update", nil)
	s.logger.Info("article updated", slog.Int64("id", id))
	return article, nil
}

// Delete removes an article. Deleting an id that does not exist is not an
// error; it reports false.
func (s *ArticleService) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.observe("delete", err)
		s.logger.Error("failed to delete article",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("deleting article: %w", err)
	}

	s.observe("delete", nil)
	s.logger.Info("article deleted", slog.Int64("id", id), slog.Int64("rows", n))
	return n > 0, nil
}

// Ping checks the storage backend.
func (s *ArticleService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *ArticleService) find(ctx context.Context, id int64) (*model.Article, error) {
	article, err := s.repo.Find(ctx, id)
	if err != nil {
		s.logger.Error("failed to get article",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("getting article: %w", err)
	}
	if article == nil {
		return nil, apperror.NotFound("article", id)
	}
	return article, nil
}

func (s *ArticleService) observe(operation string, err error) {
	metrics.ArticleOperations.WithLabelValues(operation, outcome(err)).Inc()
}

// normalize trims surrounding whitespace from the title. Text is kept
// verbatim; leading indentation can be meaningful in a body.
func normalize(p model.PartialArticle) model.PartialArticle {
	p.Title = model.Map(p.Title, strings.TrimSpace)
	return p
}

// validate checks the fields present in p.
//
// Both columns are NOT NULL, so an explicit JSON null is rejected rather
// than silently treated as "leave unchanged".
func validate(p model.PartialArticle) error {
	if p.Title.IsNull() {
		return apperror.ValidationFailed("title", "article title cannot be null")
	}
	if p.Text.IsNull() {
		return apperror.ValidationFailed("text", "article text cannot be null")
	}
	if title, ok := p.Title.Get(); ok && utf8.RuneCountInString(title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("article title must be %d characters or less", MaxTitleLength))
	}
	if text, ok := p.Text.Get(); ok && utf8.RuneCountInString(text) > MaxTextLength {
		return apperror.ValidationFailed("text",
			fmt.Sprintf("article text must be %d characters or less", MaxTextLength))
	}
	return nil
}
