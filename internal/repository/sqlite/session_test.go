package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/articles/internal/model"
)

// newTestSession opens a Session on a fresh database.
// With ":memory:" the pool has one connection, so the test must not call
// DB methods while the session is open.
func newTestSession(t *testing.T) (*DB, *Session) {
	t.Helper()
	db := newTestDB(t)
	s, err := db.Session(context.Background())
	require.NoError(t, err)
	return db, s
}

// The two-step insert: INSERT without RETURNING, then last_insert_rowid()
// on the same connection.
func TestSession_InsertThenLastInsertID(t *testing.T) {
	db, s := newTestSession(t)
	ctx := context.Background()

	n, err := s.Exec(ctx, InsertArticle(model.PartialArticle{
		Text:  model.Some("hello"),
		Title: model.Some("hi"),
	}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "exactly one new row")

	id, err := s.LastInsertID(ctx)
	require.NoError(t, err)
	assert.Positive(t, id)

	found, err := s.Find(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "hello", found.Text)
	assert.Equal(t, "hi", found.Title)
	assert.Equal(t, found.Created, found.Updated)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.Close())

	// Connection is back in the pool; the pool sees the same row.
	viaPool, err := db.Find(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, viaPool)
	assert.Equal(t, id, viaPool.ID)
}

func TestSession_LastInsertIDTracksEachInsert(t *testing.T) {
	_, s := newTestSession(t)
	defer s.Close()
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		_, err := s.Exec(ctx, InsertArticle(model.PartialArticle{Title: model.Some("t")}))
		require.NoError(t, err)

		id, err := s.LastInsertID(ctx)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])
}

func TestSession_LastInsertIDBeforeAnyInsert(t *testing.T) {
	_, s := newTestSession(t)
	defer s.Close()

	id, err := s.LastInsertID(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 0, id)
}

// Update and delete do not move last_insert_rowid().
func TestSession_LastInsertIDIgnoresOtherWrites(t *testing.T) {
	_, s := newTestSession(t)
	defer s.Close()
	ctx := context.Background()

	_, err := s.Exec(ctx, InsertArticle(model.PartialArticle{Title: model.Some("a")}))
	require.NoError(t, err)
	inserted, err := s.LastInsertID(ctx)
	require.NoError(t, err)

	_, err = s.Exec(ctx, UpdateArticleByID(model.PartialArticle{Text: model.Some("x")}, inserted))
	require.NoError(t, err)
	_, err = s.Exec(ctx, DeleteArticleByID(inserted+100))
	require.NoError(t, err)

	after, err := s.LastInsertID(ctx)
	require.NoError(t, err)
	assert.Equal(t, inserted, after)
}

func TestSession_UpdateThroughLoadedArticle(t *testing.T) {
	_, s := newTestSession(t)
	defer s.Close()
	ctx := context.Background()

	_, err := s.Exec(ctx, InsertArticle(model.PartialArticle{Text: model.Some("a"), Title: model.Some("b")}))
	require.NoError(t, err)
	id, err := s.LastInsertID(ctx)
	require.NoError(t, err)

	loaded, err := s.Find(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	n, err := s.Exec(ctx, UpdateArticle(*loaded, model.PartialArticle{Title: model.Some("c")}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	found, err := s.Find(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "a", found.Text)
	assert.Equal(t, "c", found.Title)
}
