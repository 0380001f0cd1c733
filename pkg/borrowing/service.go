// Package borrowing moves books between the shelf and their borrowers.
package borrowing

import (
	"context"

	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/store"
	"github.com/robinjoseph08/golib/logger"
)

type BorrowInput struct {
	BookID     int
	Name       string
	BorrowDate string
	ReturnDate string
}

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{s}
}

// Borrow lends a book to the named borrower, creating the borrower on first
// use. Borrowing a book that is already out replaces its borrower.
func (svc *Service) Borrow(ctx context.Context, in BorrowInput) error {
	switch {
	case in.Name == "":
		return errcodes.ValidationError("No borrower name is set")
	case in.BookID == 0:
		return errcodes.ValidationError("No book id is set")
	case in.BorrowDate == "":
		return errcodes.ValidationError("No borrowDate is set")
	case in.ReturnDate == "":
		return errcodes.ValidationError("No returnDate is set")
	}

	logger.FromContext(ctx).Info("borrowing book", logger.Data{
		"book_id":     in.BookID,
		"borrower":    in.Name,
		"borrow_date": in.BorrowDate,
		"return_date": in.ReturnDate,
	})

	err := svc.store.SetBookBorrowed(ctx, store.BorrowParams{
		BookID:     in.BookID,
		Name:       in.Name,
		BorrowDate: in.BorrowDate,
		ReturnDate: in.ReturnDate,
	})
	return errcodes.StoreError(err)
}

// Return puts a book back on the shelf. The borrower itself is kept.
func (svc *Service) Return(ctx context.Context, bookID int) error {
	log := logger.FromContext(ctx)

	if bookID == 0 {
		return errcodes.ValidationError("No book id is set")
	}

	cleared, err := svc.store.ClearBookBorrow(ctx, bookID)
	if err != nil {
		return errcodes.StoreError(err)
	}
	if !cleared {
		log.Warn("no borrowing relationship found", logger.Data{"book_id": bookID})
	}

	log.Info("book returned", logger.Data{"book_id": bookID})
	return nil
}

// ClearAll drops every link between books and borrowers. The loan fields on
// the books are not reset.
func (svc *Service) ClearAll(ctx context.Context) (int, error) {
	removed, err := svc.store.DeleteAllBorrowerLinks(ctx)
	if err != nil {
		return 0, errcodes.StoreError(err)
	}
	logger.FromContext(ctx).Info("removed borrower links", logger.Data{"count": removed})
	return removed, nil
}
