package models

import "github.com/uptrace/bun"

// Entity is the shared shape of authors, publishers and genres.
type Entity struct {
	bun.BaseModel `bun:"alias:e"`

	ID          int     `bun:"id" json:"id"`
	Name        string  `bun:"name" json:"name"`
	Description *string `bun:"description" json:"description"`
}
