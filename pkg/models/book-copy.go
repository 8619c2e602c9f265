package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BookCopy struct {
	bun.BaseModel `bun:"table:book_copies,alias:bc"`

	ID              int       `bun:",pk,nullzero" json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	BookID          int       `bun:",nullzero" json:"bookId"`
	TotalCopies     int       `json:"totalCopies"`
	AvailableCopies int       `json:"availableCopies"`

	// Relations
	Book  *Book   `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Loans []*Loan `bun:"rel:has-many,join:id=book_copy_id" json:"loans,omitempty"`
}

// CanBorrow reports whether at least one copy is on the shelf.
func (bc *BookCopy) CanBorrow() bool {
	return bc.AvailableCopies > 0
}
