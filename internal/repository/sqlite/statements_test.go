package sqlite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/articles/internal/model"
)

// Builders are pure functions, so these tests need no database: they pin
// down the placeholder order each statement binds.

func TestStatementArgs(t *testing.T) {
	tests := []struct {
		name     string
		query    Query
		wantArgs []any
	}{
		{
			name:     "select all has no args",
			query:    SelectArticles(),
			wantArgs: []any{},
		},
		{
			name:     "select by id",
			query:    SelectArticleByID(7),
			wantArgs: []any{int64(7)},
		},
		{
			name:     "insert binds text then title",
			query:    InsertArticle(model.PartialArticle{Text: model.Some("hello"), Title: model.Some("hi")}),
			wantArgs: []any{"hello", "hi"},
		},
		{
			name:     "insert binds NULL for absent fields",
			query:    InsertArticle(model.PartialArticle{}),
			wantArgs: []any{nil, nil},
		},
		{
			name:     "insert returning binds like insert",
			query:    InsertArticleReturningID(model.PartialArticle{Title: model.Some("hi")}),
			wantArgs: []any{nil, "hi"},
		},
		{
			name:     "last insert id has no args",
			query:    SelectLastInsertID(),
			wantArgs: []any{},
		},
		{
			name:     "update binds text, title, id",
			query:    UpdateArticleByID(model.PartialArticle{Text: model.Some("t")}, 3),
			wantArgs: []any{"t", nil, int64(3)},
		},
		{
			name:     "update from loaded article uses its id",
			query:    UpdateArticle(model.Article{ID: 9}, model.PartialArticle{Title: model.Some("x")}),
			wantArgs: []any{nil, "x", int64(9)},
		},
		{
			name:     "delete by id",
			query:    DeleteArticleByID(-1),
			wantArgs: []any{int64(-1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantArgs, tt.query.Args())
			assert.Equal(t, strings.Count(tt.query.SQL(), "?"), len(tt.query.Args()),
				"placeholder count must match arg count")
		})
	}
}

func TestStatementSQL(t *testing.T) {
	assert.Contains(t, SelectArticleByID(1).SQL(), "WHERE id = ?")
	assert.Contains(t, InsertArticleReturningID(model.PartialArticle{}).SQL(), "RETURNING id")
	assert.NotContains(t, InsertArticle(model.PartialArticle{}).SQL(), "RETURNING")
	assert.Equal(t, "SELECT last_insert_rowid()", SelectLastInsertID().SQL())

	update := UpdateArticleByID(model.PartialArticle{}, 1).SQL()
	assert.Contains(t, update, "SET text = COALESCE(?, text)")
	assert.Contains(t, update, "title = COALESCE(?, title)")
	assert.Contains(t, update, "updated = datetime('now')")
	assert.NotContains(t, update, "created", "created is immutable after insert")
}

func TestQueryArgsIsACopy(t *testing.T) {
	q := SelectArticleByID(1)

	args := q.Args()
	args[0] = int64(999)

	assert.Equal(t, []any{int64(1)}, q.Args())
}
