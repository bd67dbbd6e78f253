package sqlite

import (
	"github.com/sakif/articles/internal/model"
)

// Query pairs SQL text with its positional parameters.
//
// Building a Query does no I/O. It is executed later by DB, Session, or
// anything else that speaks database/sql:
//
//	q := SelectArticleByID(42)
//	row := conn.QueryRowContext(ctx, q.SQL(), q.Args()...)
//
// Fields are unexported and Args returns a copy, so a Query cannot be
// changed once built.
type Query struct {
	sql  string
	args []any
}

func newQuery(sql string, args ...any) Query {
	return Query{sql: sql, args: args}
}

// SQL returns the statement text with `?` placeholders.
func (q Query) SQL() string {
	return q.sql
}

// Args returns the parameters in placeholder order.
func (q Query) Args() []any {
	out := make([]any, len(q.args))
	copy(out, q.args)
	return out
}

// articleColumns is the column list every SELECT scans, in the order
// scanArticle expects.
const articleColumns = `id, text, title, created, updated`

// SelectArticles selects every article. Row order is unspecified.
func SelectArticles() Query {
	return newQuery(`SELECT ` + articleColumns + ` FROM articles`)
}

// SelectArticleByID selects at most one article.
func SelectArticleByID(id int64) Query {
	return newQuery(`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
}

// insertArticleSQL writes both timestamps from the same datetime('now').
// SQLite evaluates 'now' once per statement, so created == updated.
//
// Absent fields bind NULL; COALESCE stores '' instead because both columns
// are NOT NULL.
const insertArticleSQL = `INSERT INTO articles (text, title, created, updated)
	VALUES (COALESCE(?, ''), COALESCE(?, ''), datetime('now'), datetime('now'))`

// InsertArticle inserts a new article. The id is assigned by SQLite; read
// it back with SelectLastInsertID on the same Session.
func InsertArticle(p model.PartialArticle) Query {
	return newQuery(insertArticleSQL, p.Text.Bind(), p.Title.Bind())
}

// InsertArticleReturningID is InsertArticle with the generated id returned
// by the statement itself, so no second query is needed.
func InsertArticleReturningID(p model.PartialArticle) Query {
	return newQuery(insertArticleSQL+` RETURNING id`, p.Text.Bind(), p.Title.Bind())
}

// SelectLastInsertID reads the rowid of the most recent successful INSERT
// on the connection that runs it.
//
// It is connection-scoped. Through a *sql.DB pool the SELECT can land on a
// different connection than the INSERT and return 0 or another caller's id.
// Run it on a Session (or a *sql.Tx), never on the pool.
func SelectLastInsertID() Query {
	return newQuery(`SELECT last_insert_rowid()`)
}

// UpdateArticleByID overwrites text and title only when present in p, and
// always refreshes updated. id and created are never touched.
func UpdateArticleByID(p model.PartialArticle, id int64) Query {
	return newQuery(`UPDATE articles
		SET text = COALESCE(?, text),
		    title = COALESCE(?, title),
		    updated = datetime('now')
		WHERE id = ?`,
		p.Text.Bind(), p.Title.Bind(), id)
}

// UpdateArticle applies p to an already loaded article.
func UpdateArticle(a model.Article, p model.PartialArticle) Query {
	return UpdateArticleByID(p, a.ID)
}

// DeleteArticleByID deletes at most one article. Nothing cascades.
func DeleteArticleByID(id int64) Query {
	return newQuery(`DELETE FROM articles WHERE id = ?`, id)
}
