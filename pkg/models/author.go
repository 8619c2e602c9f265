package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `bun:",nullzero" json:"name"`

	// Relations
	Books []*Book `bun:"rel:has-many,join:id=author_id" json:"books,omitempty"`
}
