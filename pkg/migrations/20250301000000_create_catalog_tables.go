package migrations

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"genres", "publishers", "authors"} {
			_, err := db.Exec(fmt.Sprintf(`
				CREATE TABLE %s (
					id %s,
					name TEXT NOT NULL,
					description TEXT
				)
`, table, serialPK(db)))
			if err != nil {
				return errors.WithStack(err)
			}
		}
		_, err := db.Exec(fmt.Sprintf(`
			CREATE TABLE borrowers (
				id %s,
				name TEXT NOT NULL
			)
`, serialPK(db)))
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_borrowers_name ON borrowers (name)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE books (
				id INTEGER PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT,
				present BOOLEAN NOT NULL DEFAULT TRUE,
				borrower TEXT,
				borrowdate TEXT,
				returndate TEXT,
				author_id INTEGER REFERENCES authors (id) NOT NULL,
				publisher_id INTEGER REFERENCES publishers (id) NOT NULL,
				genre_id INTEGER REFERENCES genres (id) NOT NULL,
				borrower_id INTEGER REFERENCES borrowers (id)
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		for _, column := range []string{"author_id", "publisher_id", "genre_id", "borrower_id"} {
			_, err = db.Exec(fmt.Sprintf(`CREATE INDEX ix_books_%s ON books (%s)`, column, column))
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"books", "borrowers", "authors", "publishers", "genres"} {
			_, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table))
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
