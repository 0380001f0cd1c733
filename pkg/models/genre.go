package models

import (
	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID          int     `bun:",pk,autoincrement" json:"id"`
	Name        string  `bun:",notnull" json:"name"`
	Description *string `json:"description"`
}
