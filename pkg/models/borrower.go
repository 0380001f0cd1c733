package models

import (
	"github.com/uptrace/bun"
)

// Borrower is keyed by name in practice: borrowing upserts on the unique name
// column.
type Borrower struct {
	bun.BaseModel `bun:"table:borrowers,alias:br"`

	ID   int64  `bun:",pk,autoincrement" json:"id"`
	Name string `bun:",notnull,unique" json:"name"`
}

// BorrowerRef is the store-independent view of a borrower. Graph borrowers
// carry generated UUIDs or migrated sequence numbers, relational ones carry
// row ids, so the id is rendered as a string.
type BorrowerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
