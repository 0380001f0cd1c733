package models

import (
	"github.com/uptrace/bun"
)

type Publisher struct {
	bun.BaseModel `bun:"table:publishers,alias:pub"`

	ID          int     `bun:",pk,autoincrement" json:"id"`
	Name        string  `bun:",notnull" json:"name"`
	Description *string `json:"description"`
}
