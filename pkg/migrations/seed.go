package migrations

import (
	"context"
	"database/sql"

	"github.com/libgraph/libgraph/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Seed inserts a small sample catalog. It does nothing when books already
// exist, so running it twice is harmless.
func Seed(ctx context.Context, db *bun.DB) (bool, error) {
	count, err := db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}
	if count > 0 {
		return false, nil
	}

	genres := []*models.Genre{
		{ID: 1, Name: "Fantasy"},
		{ID: 2, Name: "Science Fiction"},
		{ID: 3, Name: "Dystopian"},
	}
	publishers := []*models.Publisher{
		{ID: 1, Name: "Allen & Unwin"},
		{ID: 2, Name: "Secker & Warburg"},
		{ID: 3, Name: "Chilton Books"},
	}
	authors := []*models.Author{
		{ID: 1, Name: "J. R. R. Tolkien"},
		{ID: 2, Name: "George Orwell"},
		{ID: 3, Name: "Frank Herbert"},
	}
	books := []*models.Book{
		{ID: 1, Title: "The Hobbit", Present: true, AuthorID: 1, PublisherID: 1, GenreID: 1},
		{ID: 2, Title: "The Fellowship of the Ring", Present: true, AuthorID: 1, PublisherID: 1, GenreID: 1},
		{ID: 3, Title: "Nineteen Eighty-Four", Present: true, AuthorID: 2, PublisherID: 2, GenreID: 3},
		{ID: 4, Title: "Animal Farm", Present: true, AuthorID: 2, PublisherID: 2, GenreID: 3},
		{ID: 5, Title: "Dune", Present: true, AuthorID: 3, PublisherID: 3, GenreID: 2},
	}

	err = db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, m := range []interface{}{&genres, &publishers, &authors, &books} {
			if _, err := tx.NewInsert().Model(m).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
