package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Member struct {
	bun.BaseModel `bun:"table:members,alias:m"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	FullName  string    `bun:",nullzero" json:"fullName"`
	Email     string    `json:"email"`

	// Relations
	Loans []*Loan `bun:"rel:has-many,join:id=member_id" json:"loans,omitempty"`
}
