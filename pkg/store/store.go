// Package store is the data access layer shared by every HTTP handler. The
// same Store contract is implemented against the relational database and
// against the graph database; the backend is picked once at startup.
package store

import (
	"context"

	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/models"
)

// AnyID is the id clients send to ask for the whole collection.
const AnyID = -1

// Filter narrows a listing. A nil field means the filter is absent and the
// whole collection is returned; a set field must match exactly. An ID of
// AnyID counts as absent.
type Filter struct {
	ID   *int
	Name *string
}

func (f Filter) normalize() Filter {
	if f.ID != nil && *f.ID == AnyID {
		f.ID = nil
	}
	return f
}

// BorrowParams describes a book being lent out.
type BorrowParams struct {
	BookID     int
	Name       string
	BorrowDate string
	ReturnDate string
}

type Store interface {
	ListBorrowers(ctx context.Context, filter Filter) ([]*models.BorrowerRef, error)
	ListEntities(ctx context.Context, kind models.Kind, filter Filter) ([]*models.Entity, error)
	GetBooks(ctx context.Context, filter Filter) ([]*models.BookRecord, error)

	// UpsertBorrower returns the borrower with the given name, creating it
	// first when it does not exist.
	UpsertBorrower(ctx context.Context, name string) (*models.BorrowerRef, error)
	// SetBookBorrowed upserts the borrower and marks the book as lent to it in
	// a single transaction, replacing any earlier borrower. A missing book is
	// a NotFound error and nothing is written.
	SetBookBorrowed(ctx context.Context, params BorrowParams) error
	// ClearBookBorrow puts the book back on the shelf and reports whether it
	// was linked to a borrower.
	ClearBookBorrow(ctx context.Context, bookID int) (bool, error)
	// DeleteAllBorrowerLinks removes every book to borrower link and returns
	// how many were removed. Book fields are left as they are.
	DeleteAllBorrowerLinks(ctx context.Context) (int, error)

	// LookupDescription returns the stored description of the entity whose
	// name (title for books) matches. A missing entity is a NotFound error; a
	// found entity without a description returns nil.
	LookupDescription(ctx context.Context, kind models.Kind, name string) (*string, error)
	// SaveDescription stores the description on every entity of the kind with
	// that name. It is a no-op when none exists.
	SaveDescription(ctx context.Context, kind models.Kind, name, description string) error
}

func checkEntityKind(kind models.Kind) error {
	switch kind {
	case models.KindAuthor, models.KindPublisher, models.KindGenre:
		return nil
	}
	return errcodes.ValidationError("Unsupported entity type " + string(kind) + ".")
}

func checkDescribable(kind models.Kind) error {
	if !kind.Describable() {
		return errcodes.ValidationError("Entity type " + string(kind) + " has no description.")
	}
	return nil
}
