package models

import (
	"github.com/uptrace/bun"
)

// Book is a row of the relational books table. A book is on the shelf when
// Present is true; otherwise BorrowerID points at the active borrower.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID          int        `bun:",pk" json:"id"`
	Title       string     `bun:",notnull" json:"title"`
	Description *string    `json:"description"`
	Present     bool       `bun:",notnull" json:"present"`
	Borrower    *string    `json:"borrower"`
	BorrowDate  *string    `bun:"borrowdate" json:"borrowdate"`
	ReturnDate  *string    `bun:"returndate" json:"returndate"`
	AuthorID    int        `bun:",notnull" json:"author_id"`
	Author      *Author    `bun:"rel:belongs-to,join:author_id=id" json:"-"`
	PublisherID int        `bun:",notnull" json:"publisher_id"`
	Publisher   *Publisher `bun:"rel:belongs-to,join:publisher_id=id" json:"-"`
	GenreID     int        `bun:",notnull" json:"genre_id"`
	Genre       *Genre     `bun:"rel:belongs-to,join:genre_id=id" json:"-"`
	BorrowerID  *int64     `json:"borrower_id"`
}

// BookRecord is a book joined with the names of its author, publisher, genre
// and active borrower. Both store backends produce this shape.
type BookRecord struct {
	ID            int     `bun:"id" json:"id"`
	Title         string  `bun:"title" json:"title"`
	Description   *string `bun:"description" json:"description"`
	Present       bool    `bun:"present" json:"present"`
	BorrowDate    *string `bun:"borrowdate" json:"borrowdate"`
	ReturnDate    *string `bun:"returndate" json:"returndate"`
	Borrower      *string `bun:"borrower" json:"borrower"`
	Author        *int    `bun:"author" json:"author"`
	AuthorName    *string `bun:"author_name" json:"author_name"`
	Publisher     *int    `bun:"publisher" json:"publisher"`
	PublisherName *string `bun:"publisher_name" json:"publisher_name"`
	Genre         *int    `bun:"genre" json:"genre"`
	GenreName     *string `bun:"genre_name" json:"genre_name"`
	BorrowerName  *string `bun:"borrower_name" json:"borrower_name"`
}
