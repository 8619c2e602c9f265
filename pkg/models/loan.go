package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Loan struct {
	bun.BaseModel `bun:"table:loans,alias:l"`

	ID           int        `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	BorrowDate   time.Time  `json:"borrowDate"`
	DueDate      time.Time  `json:"dueDate"`
	Returned     bool       `json:"returned"`
	ReturnedDate *time.Time `json:"returnedDate"`
	MemberID     int        `bun:",nullzero" json:"memberId"`
	BookCopyID   int        `bun:",nullzero" json:"bookCopyId"`

	// Relations
	Member   *Member   `bun:"rel:belongs-to,join:member_id=id" json:"member,omitempty"`
	BookCopy *BookCopy `bun:"rel:belongs-to,join:book_copy_id=id" json:"bookCopy,omitempty"`
}
