package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID          int       `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `bun:",nullzero" json:"title"`
	Description string    `json:"description"`
	AuthorID    int       `bun:",nullzero" json:"authorId"`

	// Relations
	Author *Author     `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Copies []*BookCopy `bun:"rel:has-many,join:id=book_id" json:"copies,omitempty"`
}

// TotalCopies sums total copies across all loaded copy rows.
func (b *Book) TotalCopies() int {
	total := 0
	for _, c := range b.Copies {
		total += c.TotalCopies
	}
	return total
}

// AvailableCopies sums available copies across all loaded copy rows.
func (b *Book) AvailableCopies() int {
	total := 0
	for _, c := range b.Copies {
		total += c.AvailableCopies
	}
	return total
}
