package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/articles/internal/model"
	"github.com/sakif/articles/internal/repository"
)

// compile-time check that *DB implements repository.ArticleRepository
var _ repository.ArticleRepository = (*DB)(nil)

// execer is what *sql.DB, *sql.Conn and *sql.Tx have in common.
// DB runs on the pool, Session on one pinned connection; both share the
// helpers below.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanArticle reads one row selected with articleColumns.
// Scan MUST receive pointers in the same order as the SELECT column list.
func scanArticle(row rowScanner) (model.Article, error) {
	var a model.Article
	err := row.Scan(&a.ID, &a.Text, &a.Title, &a.Created, &a.Updated)
	return a, err
}

// List returns every article. An empty table yields an empty, non-nil slice.
func (db *DB) List(ctx context.Context) ([]model.Article, error) {
	return listArticles(ctx, db.conn)
}

// Find returns the article with the given id, or (nil, nil) if there is none.
//
// sql.ErrNoRows is NOT an error at this layer. Whether a missing row is a
// 404 or something else is decided by the caller.
func (db *DB) Find(ctx context.Context, id int64) (*model.Article, error) {
	return findArticle(ctx, db.conn, id)
}

// Create inserts an article and returns the id SQLite assigned to it.
//
// We use the RETURNING form so the id comes back from the INSERT itself.
// The two-step alternative (INSERT, then SELECT last_insert_rowid()) is only
// correct when both run on the same connection; see Session for that.
func (db *DB) Create(ctx context.Context, partial model.PartialArticle) (int64, error) {
	q := InsertArticleReturningID(partial)

	var id int64
	if err := db.conn.QueryRowContext(ctx, q.SQL(), q.Args()...).Scan(&id); err != nil {
		return 0, fmt.Errorf("sqlite: creating article: %w", err)
	}

	return id, nil
}

// Update applies a partial update and returns the number of rows affected:
// 1 if the article exists, 0 otherwise.
func (db *DB) Update(ctx context.Context, id int64, partial model.PartialArticle) (int64, error) {
	n, err := execAffected(ctx, db.conn, UpdateArticleByID(partial, id))
	if err != nil {
		return 0, fmt.Errorf("sqlite: updating article %d: %w", id, err)
	}
	return n, nil
}

// Delete removes an article and returns the number of rows affected.
// Deleting an id that does not exist affects 0 rows and is not an error.
func (db *DB) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := execAffected(ctx, db.conn, DeleteArticleByID(id))
	if err != nil {
		return 0, fmt.Errorf("sqlite: deleting article %d: %w", id, err)
	}
	return n, nil
}

func listArticles(ctx context.Context, e execer) ([]model.Article, error) {
	q := SelectArticles()

	rows, err := e.QueryContext(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing articles: %w", err)
	}
	// rows holds a pooled connection until closed.
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning article row: %w", err)
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating articles: %w", err)
	}

	return articles, nil
}

func findArticle(ctx context.Context, e execer, id int64) (*model.Article, error) {
	q := SelectArticleByID(id)

	a, err := scanArticle(e.QueryRowContext(ctx, q.SQL(), q.Args()...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: getting article %d: %w", id, err)
	}

	return &a, nil
}

func execAffected(ctx context.Context, e execer, q Query) (int64, error) {
	result, err := e.ExecContext(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}
