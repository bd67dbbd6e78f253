package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/articles/internal/model"
)

// Session runs queries on a single pinned connection.
//
// sql.DB is a POOL: two consecutive calls may use two different
// connections. Most statements don't care, but last_insert_rowid() is
// per-connection state. Session holds one *sql.Conn so that
//
//	s.Exec(ctx, InsertArticle(p))
//	id, _ := s.LastInsertID(ctx)
//
// reads back the id of that exact insert.
//
// A Session is not safe for concurrent use: an insert from another
// goroutine on the same Session between the two calls would change the
// answer. Close returns the connection to the pool.
type Session struct {
	conn *sql.Conn
}

// Session pins a connection from the pool. The caller must Close it.
//
// With ":memory:" the pool holds a single connection, so other DB methods
// block until the Session is closed.
func (db *DB) Session(ctx context.Context) (*Session, error) {
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: acquiring connection: %w", err)
	}
	return &Session{conn: conn}, nil
}

// Close returns the connection to the pool.
func (s *Session) Close() error {
	return s.conn.Close()
}

// Exec runs a statement for effect and returns the rows affected.
func (s *Session) Exec(ctx context.Context, q Query) (int64, error) {
	n, err := execAffected(ctx, s.conn, q)
	if err != nil {
		return 0, fmt.Errorf("sqlite: executing statement: %w", err)
	}
	return n, nil
}

// LastInsertID returns the rowid of the most recent INSERT on this session.
// It is 0 if the session has not inserted anything yet.
func (s *Session) LastInsertID(ctx context.Context) (int64, error) {
	q := SelectLastInsertID()

	var id int64
	if err := s.conn.QueryRowContext(ctx, q.SQL(), q.Args()...).Scan(&id); err != nil {
		return 0, fmt.Errorf("sqlite: reading last insert id: %w", err)
	}
	return id, nil
}

// Find is DB.Find on the pinned connection.
func (s *Session) Find(ctx context.Context, id int64) (*model.Article, error) {
	return findArticle(ctx, s.conn, id)
}

// List is DB.List on the pinned connection.
func (s *Session) List(ctx context.Context) ([]model.Article, error) {
	return listArticles(ctx, s.conn)
}
