package authors

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hondanabooks/hondana/pkg/errcodes"
	"github.com/hondanabooks/hondana/pkg/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestServiceRetrieveAuthor_ByNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	name := "jon skeet"
	author, err := svc.RetrieveAuthor(context.Background(), RetrieveAuthorOptions{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 1, author.ID)
	assert.Equal(t, "Jon Skeet", author.Name)
}

func TestServiceRetrieveAuthor_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	id := 999
	_, err := svc.RetrieveAuthor(context.Background(), RetrieveAuthorOptions{ID: &id})
	require.ErrorIs(t, err, errcodes.NotFound("Author"))
}

func TestServiceListAuthors_Search(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	authors, err := svc.ListAuthors(ctx, ListAuthorsOptions{})
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Jon Skeet", authors[0].Name)

	search := "martin"
	authors, err = svc.ListAuthors(ctx, ListAuthorsOptions{Search: &search})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Robert C. Martin", authors[0].Name)
}

func TestServiceGetBookCount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	count, err := svc.GetBookCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
