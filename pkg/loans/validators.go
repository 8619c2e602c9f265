package loans

type CreateLoanPayload struct {
	BookID   int `json:"bookId" validate:"required,min=1"`
	MemberID int `json:"memberId" validate:"required,min=1"`
}

type ListLoansQuery struct {
	MemberID *int  `query:"memberId" json:"memberId,omitempty" validate:"omitempty,min=1"`
	Open     *bool `query:"open" json:"open,omitempty"`
}
