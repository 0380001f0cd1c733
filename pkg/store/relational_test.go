package store

import (
	"context"
	"sync"
	"testing"

	"github.com/libgraph/libgraph/internal/testgen"
	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelational_GetBooks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	testgen.InsertCatalog(t, db, testgen.CatalogOptions{Books: 3})
	s := NewRelational(db)

	books, err := s.GetBooks(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, 1, books[0].ID)
	assert.Equal(t, "Book A", books[0].Title)
	assert.True(t, books[0].Present)
	require.NotNil(t, books[0].AuthorName)
	assert.Equal(t, "Author A", *books[0].AuthorName)
	require.NotNil(t, books[0].Genre)
	assert.Equal(t, 1, *books[0].Genre)
	assert.Nil(t, books[0].BorrowerName)

	books, err = s.GetBooks(ctx, Filter{ID: testgen.Ptr(2)})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Book B", books[0].Title)

	books, err = s.GetBooks(ctx, Filter{ID: testgen.Ptr(99)})
	require.NoError(t, err)
	assert.Empty(t, books)

	books, err = s.GetBooks(ctx, Filter{ID: testgen.Ptr(AnyID)})
	require.NoError(t, err)
	assert.Len(t, books, 3)

	genres, err := s.ListEntities(ctx, models.KindGenre, Filter{ID: testgen.Ptr(AnyID)})
	require.NoError(t, err)
	assert.Len(t, genres, 1)
}

func TestRelational_ListEntities(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	testgen.InsertCatalog(t, db, testgen.CatalogOptions{Authors: 2, Publishers: 3, Genres: 1})
	s := NewRelational(db)

	authors, err := s.ListEntities(ctx, models.KindAuthor, Filter{})
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Author B", authors[1].Name)

	publishers, err := s.ListEntities(ctx, models.KindPublisher, Filter{ID: testgen.Ptr(3)})
	require.NoError(t, err)
	require.Len(t, publishers, 1)
	assert.Equal(t, "Publisher C", publishers[0].Name)
	assert.Nil(t, publishers[0].Description)

	_, err = s.ListEntities(ctx, models.KindBook, Filter{})
	var e *errcodes.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 400, e.HTTPCode)
}

func TestRelational_BorrowAndReturn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	testgen.InsertCatalog(t, db, testgen.CatalogOptions{Books: 2})
	s := NewRelational(db)

	err := s.SetBookBorrowed(ctx, BorrowParams{BookID: 1, Name: "Alice", BorrowDate: "2024-01-01", ReturnDate: "2024-01-15"})
	require.NoError(t, err)

	books, err := s.GetBooks(ctx, Filter{ID: testgen.Ptr(1)})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.False(t, books[0].Present)
	require.NotNil(t, books[0].BorrowerName)
	assert.Equal(t, "Alice", *books[0].BorrowerName)
	require.NotNil(t, books[0].BorrowDate)
	assert.Equal(t, "2024-01-01", *books[0].BorrowDate)
	assert.Equal(t, "2024-01-15", *books[0].ReturnDate)

	cleared, err := s.ClearBookBorrow(ctx, 1)
	require.NoError(t, err)
	assert.True(t, cleared)

	books, err = s.GetBooks(ctx, Filter{ID: testgen.Ptr(1)})
	require.NoError(t, err)
	assert.True(t, books[0].Present)
	assert.Nil(t, books[0].Borrower)
	assert.Nil(t, books[0].BorrowerName)
	assert.Nil(t, books[0].BorrowDate)
	assert.Nil(t, books[0].ReturnDate)

	// Borrowers outlive their loans.
	borrowers, err := s.ListBorrowers(ctx, Filter{Name: testgen.Ptr("Alice")})
	require.NoError(t, err)
	assert.Len(t, borrowers, 1)

	cleared, err = s.ClearBookBorrow(ctx, 1)
	require.NoError(t, err)
	assert.False(t, cleared)
}

func TestRelational_ReborrowReplacesBorrower(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	testgen.InsertCatalog(t, db, testgen.CatalogOptions{})
	s := NewRelational(db)

	require.NoError(t, s.SetBookBorrowed(ctx, BorrowParams{BookID: 1, Name: "Alice", BorrowDate: "2024-01-01", ReturnDate: "2024-01-15"}))
	require.NoError(t, s.SetBookBorrowed(ctx, BorrowParams{BookID: 1, Name: "Bob", BorrowDate: "2024-02-01", ReturnDate: "2024-02-15"}))

	books, err := s.GetBooks(ctx, Filter{ID: testgen.Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, "Bob", *books[0].BorrowerName)
	assert.Equal(t, "2024-02-01", *books[0].BorrowDate)

	borrowers, err := s.ListBorrowers(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, borrowers, 2)
}

func TestRelational_BorrowMissingBookRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	testgen.InsertCatalog(t, db, testgen.CatalogOptions{})
	s := NewRelational(db)

	err := s.SetBookBorrowed(ctx, BorrowParams{BookID: 42, Name: "Carol", BorrowDate: "2024-01-01", ReturnDate: "2024-01-15"})
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))

	borrowers, err := s.ListBorrowers(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, borrowers)
}

func TestRelational_UpsertBorrowerIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	s := NewRelational(db)

	first, err := s.UpsertBorrower(ctx, "Dana")
	require.NoError(t, err)
	second, err := s.UpsertBorrower(ctx, "Dana")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.UpsertBorrower(ctx, "Erin")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	borrowers, err := s.ListBorrowers(ctx, Filter{Name: testgen.Ptr("Erin")})
	require.NoError(t, err)
	assert.Len(t, borrowers, 1)
}

func TestRelational_DeleteAllBorrowerLinks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	testgen.InsertCatalog(t, db, testgen.CatalogOptions{Books: 3})
	s := NewRelational(db)

	require.NoError(t, s.SetBookBorrowed(ctx, BorrowParams{BookID: 1, Name: "Alice", BorrowDate: "2024-01-01", ReturnDate: "2024-01-15"}))
	require.NoError(t, s.SetBookBorrowed(ctx, BorrowParams{BookID: 3, Name: "Bob", BorrowDate: "2024-01-01", ReturnDate: "2024-01-15"}))

	removed, err := s.DeleteAllBorrowerLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	books, err := s.GetBooks(ctx, Filter{ID: testgen.Ptr(1)})
	require.NoError(t, err)
	assert.Nil(t, books[0].BorrowerName)
	// The loan fields stay behind.
	assert.False(t, books[0].Present)

	removed, err = s.DeleteAllBorrowerLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestRelational_Descriptions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	testgen.InsertCatalog(t, db, testgen.CatalogOptions{})
	s := NewRelational(db)

	desc, err := s.LookupDescription(ctx, models.KindBook, "Book A")
	require.NoError(t, err)
	assert.Nil(t, desc)

	require.NoError(t, s.SaveDescription(ctx, models.KindBook, "Book A", "A long description."))
	desc, err = s.LookupDescription(ctx, models.KindBook, "Book A")
	require.NoError(t, err)
	require.NotNil(t, desc)
	assert.Equal(t, "A long description.", *desc)

	require.NoError(t, s.SaveDescription(ctx, models.KindGenre, "Genre A", "Stories."))
	genres, err := s.ListEntities(ctx, models.KindGenre, Filter{})
	require.NoError(t, err)
	assert.Equal(t, "Stories.", *genres[0].Description)

	_, err = s.LookupDescription(ctx, models.KindAuthor, "Nobody")
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))

	_, err = s.LookupDescription(ctx, models.KindBorrower, "Alice")
	var e *errcodes.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "validation_error", e.Code)
}
