// Package testgen builds fixtures for tests: an in-memory relational catalog
// and a scripted stand-in for the graph database.
package testgen

import (
	"context"
	"database/sql"
	"testing"

	"github.com/libgraph/libgraph/pkg/migrations"
	"github.com/libgraph/libgraph/pkg/models"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// NewDB returns a migrated in-memory SQLite database that is closed when the
// test ends.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CatalogOptions describes the rows InsertCatalog creates. Zero counts fall
// back to one row each.
type CatalogOptions struct {
	Genres     int
	Publishers int
	Authors    int
	Books      int
	Borrowers  []string
}

// Catalog is what InsertCatalog created.
type Catalog struct {
	Genres     []*models.Genre
	Publishers []*models.Publisher
	Authors    []*models.Author
	Books      []*models.Book
	Borrowers  []*models.Borrower
}

// InsertCatalog fills db with numbered rows. Book i references author,
// publisher and genre (i mod count)+1 and starts on the shelf.
func InsertCatalog(t *testing.T, db *bun.DB, opts CatalogOptions) *Catalog {
	t.Helper()
	ctx := context.Background()

	genres := max(opts.Genres, 1)
	publishers := max(opts.Publishers, 1)
	authors := max(opts.Authors, 1)
	books := max(opts.Books, 1)

	c := &Catalog{}
	for i := 1; i <= genres; i++ {
		c.Genres = append(c.Genres, &models.Genre{ID: i, Name: name("Genre", i)})
	}
	for i := 1; i <= publishers; i++ {
		c.Publishers = append(c.Publishers, &models.Publisher{ID: i, Name: name("Publisher", i)})
	}
	for i := 1; i <= authors; i++ {
		c.Authors = append(c.Authors, &models.Author{ID: i, Name: name("Author", i)})
	}
	for i := 1; i <= books; i++ {
		c.Books = append(c.Books, &models.Book{
			ID:          i,
			Title:       name("Book", i),
			Present:     true,
			AuthorID:    (i-1)%authors + 1,
			PublisherID: (i-1)%publishers + 1,
			GenreID:     (i-1)%genres + 1,
		})
	}
	for _, n := range opts.Borrowers {
		c.Borrowers = append(c.Borrowers, &models.Borrower{Name: n})
	}

	for _, m := range []interface{}{&c.Genres, &c.Publishers, &c.Authors, &c.Books} {
		_, err := db.NewInsert().Model(m).Exec(ctx)
		require.NoError(t, err)
	}
	if len(c.Borrowers) > 0 {
		_, err := db.NewInsert().Model(&c.Borrowers).Returning("id").Exec(ctx)
		require.NoError(t, err)
	}

	return c
}

func name(prefix string, i int) string {
	return prefix + " " + string(rune('A'+(i-1)%26)) + suffix(i)
}

func suffix(i int) string {
	if i <= 26 {
		return ""
	}
	return "-" + string(rune('0'+(i-1)/26%10))
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
