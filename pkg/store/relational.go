package store

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Relational keeps the catalog in SQLite or PostgreSQL. The borrower link is
// books.borrower_id.
type Relational struct {
	db *bun.DB
}

func NewRelational(db *bun.DB) *Relational {
	return &Relational{db}
}

func (r *Relational) ListBorrowers(ctx context.Context, filter Filter) ([]*models.BorrowerRef, error) {
	filter = filter.normalize()
	var borrowers []*models.Borrower

	q := r.db.
		NewSelect().
		Model(&borrowers).
		Order("br.id ASC")

	if filter.ID != nil {
		q = q.Where("br.id = ?", *filter.ID)
	}
	if filter.Name != nil {
		q = q.Where("br.name = ?", *filter.Name)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	refs := make([]*models.BorrowerRef, 0, len(borrowers))
	for _, b := range borrowers {
		refs = append(refs, &models.BorrowerRef{ID: strconv.FormatInt(b.ID, 10), Name: b.Name})
	}
	return refs, nil
}

func (r *Relational) ListEntities(ctx context.Context, kind models.Kind, filter Filter) ([]*models.Entity, error) {
	filter = filter.normalize()
	if err := checkEntityKind(kind); err != nil {
		return nil, err
	}

	entities := []*models.Entity{}

	q := r.db.
		NewSelect().
		Model(&entities).
		ModelTableExpr("? AS e", bun.Ident(kind.Table())).
		Order("e.id ASC")

	if filter.ID != nil {
		q = q.Where("e.id = ?", *filter.ID)
	}
	if filter.Name != nil {
		q = q.Where("e.name = ?", *filter.Name)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return entities, nil
}

func (r *Relational) GetBooks(ctx context.Context, filter Filter) ([]*models.BookRecord, error) {
	filter = filter.normalize()
	records := []*models.BookRecord{}

	q := r.db.
		NewSelect().
		TableExpr("books AS b").
		ColumnExpr("b.id, b.title, b.description, b.present, b.borrowdate, b.returndate, b.borrower").
		ColumnExpr("a.id AS author, a.name AS author_name").
		ColumnExpr("pub.id AS publisher, pub.name AS publisher_name").
		ColumnExpr("g.id AS genre, g.name AS genre_name").
		ColumnExpr("br.name AS borrower_name").
		Join("LEFT JOIN authors AS a ON a.id = b.author_id").
		Join("LEFT JOIN publishers AS pub ON pub.id = b.publisher_id").
		Join("LEFT JOIN genres AS g ON g.id = b.genre_id").
		Join("LEFT JOIN borrowers AS br ON br.id = b.borrower_id").
		OrderExpr("b.id ASC")

	if filter.ID != nil {
		q = q.Where("b.id = ?", *filter.ID)
	}
	if filter.Name != nil {
		q = q.Where("b.title = ?", *filter.Name)
	}

	err := q.Scan(ctx, &records)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return records, nil
}

func (r *Relational) UpsertBorrower(ctx context.Context, name string) (*models.BorrowerRef, error) {
	borrower, err := upsertBorrower(ctx, r.db, name)
	if err != nil {
		return nil, err
	}
	return &models.BorrowerRef{ID: strconv.FormatInt(borrower.ID, 10), Name: borrower.Name}, nil
}

// upsertBorrower relies on the unique index on borrowers.name so that
// concurrent borrows by the same person resolve to one row.
func upsertBorrower(ctx context.Context, db bun.IDB, name string) (*models.Borrower, error) {
	borrower := &models.Borrower{Name: name}

	_, err := db.
		NewInsert().
		Model(borrower).
		On("CONFLICT (name) DO UPDATE").
		Set("name = EXCLUDED.name").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return borrower, nil
}

func (r *Relational) SetBookBorrowed(ctx context.Context, params BorrowParams) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		borrower, err := upsertBorrower(ctx, tx, params.Name)
		if err != nil {
			return err
		}

		res, err := tx.NewRaw(`
			UPDATE books
			SET present = ?,
				borrower = ?,
				borrowdate = ?,
				returndate = ?,
				borrower_id = ?
			WHERE id = ?
		`, false, params.Name, params.BorrowDate, params.ReturnDate, borrower.ID, params.BookID).Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return errors.WithStack(err)
		}
		if affected == 0 {
			return errcodes.NotFound("Book")
		}
		return nil
	})
}

func (r *Relational) ClearBookBorrow(ctx context.Context, bookID int) (bool, error) {
	cleared := false

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book := &models.Book{}
		err := tx.
			NewSelect().
			Model(book).
			Column("id", "borrower_id").
			Where("b.id = ?", bookID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return errors.WithStack(err)
		}
		cleared = book.BorrowerID != nil

		_, err = tx.NewRaw(`
			UPDATE books
			SET present = ?,
				borrower = NULL,
				borrowdate = NULL,
				returndate = NULL,
				borrower_id = NULL
			WHERE id = ?
		`, true, bookID).Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return false, err
	}
	return cleared, nil
}

func (r *Relational) DeleteAllBorrowerLinks(ctx context.Context) (int, error) {
	res, err := r.db.NewRaw(`UPDATE books SET borrower_id = NULL WHERE borrower_id IS NOT NULL`).Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return int(affected), nil
}

func (r *Relational) LookupDescription(ctx context.Context, kind models.Kind, name string) (*string, error) {
	if err := checkDescribable(kind); err != nil {
		return nil, err
	}

	var description sql.NullString
	err := r.db.
		NewSelect().
		TableExpr("?", bun.Ident(kind.Table())).
		Column("description").
		Where("? = ?", bun.Ident(kind.NameField()), name).
		OrderExpr("id ASC").
		Limit(1).
		Scan(ctx, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound(string(kind))
		}
		return nil, errors.WithStack(err)
	}

	if !description.Valid {
		return nil, nil
	}
	return &description.String, nil
}

func (r *Relational) SaveDescription(ctx context.Context, kind models.Kind, name, description string) error {
	if err := checkDescribable(kind); err != nil {
		return err
	}

	_, err := r.db.NewRaw(
		"UPDATE ? SET description = ? WHERE ? = ?",
		bun.Ident(kind.Table()), description, bun.Ident(kind.NameField()), name,
	).Exec(ctx)
	return errors.WithStack(err)
}
