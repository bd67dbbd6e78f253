// Package cache wraps an ArticleRepository with an in-memory read cache.
//
// Only Find is cached, keyed by id. Writes go straight to the backend and
// evict the id they touched, so a read after a write through the same
// process always sees the write. Entries also expire after a TTL, which
// bounds staleness if a second process writes to the same database file.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/sakif/articles/internal/metrics"
	"github.com/sakif/articles/internal/model"
	"github.com/sakif/articles/internal/repository"
)

var _ repository.ArticleRepository = (*ArticleRepository)(nil)

// ArticleRepository serves Find from an expiring LRU and forwards
// everything else to backend.
type ArticleRepository struct {
	backend  repository.ArticleRepository
	articles *expirable.LRU[int64, model.Article]
}

// New returns a caching repository holding at most size articles for ttl.
func New(backend repository.ArticleRepository, size int, ttl time.Duration) *ArticleRepository {
	return &ArticleRepository{
		backend:  backend,
		articles: expirable.NewLRU[int64, model.Article](size, nil, ttl),
	}
}

// List implements [repository.ArticleRepository]. It is not cached.
func (c *ArticleRepository) List(ctx context.Context) ([]model.Article, error) {
	return c.backend.List(ctx)
}

// Find implements [repository.ArticleRepository].
// Missing articles are not cached, so a create is visible immediately.
func (c *ArticleRepository) Find(ctx context.Context, id int64) (*model.Article, error) {
	if a, ok := c.articles.Get(id); ok {
		metrics.CacheLookups.WithLabelValues(metrics.CacheHit).Inc()
		return &a, nil
	}
	metrics.CacheLookups.WithLabelValues(metrics.CacheMiss).Inc()

	a, err := c.backend.Find(ctx, id)
	if err != nil || a == nil {
		return a, err
	}

	c.articles.Add(id, *a)
	return a, nil
}

// Create implements [repository.ArticleRepository].
func (c *ArticleRepository) Create(ctx context.Context, partial model.PartialArticle) (int64, error) {
	return c.backend.Create(ctx, partial)
}

// Update implements [repository.ArticleRepository].
func (c *ArticleRepository) Update(ctx context.Context, id int64, partial model.PartialArticle) (int64, error) {
	defer c.articles.Remove(id)
	return c.backend.Update(ctx, id, partial)
}

// Delete implements [repository.ArticleRepository].
func (c *ArticleRepository) Delete(ctx context.Context, id int64) (int64, error) {
	defer c.articles.Remove(id)
	return c.backend.Delete(ctx, id)
}

// Ping implements [repository.ArticleRepository].
func (c *ArticleRepository) Ping(ctx context.Context) error {
	return c.backend.Ping(ctx)
}

// Len reports how many articles are cached.
func (c *ArticleRepository) Len() int {
	return c.articles.Len()
}
