package books

type CreateBookPayload struct {
	Title       string `json:"title" mod:"trim" validate:"required,max=200"`
	Description string `json:"description" mod:"trim" validate:"omitempty,max=1000"`
	AuthorName  string `json:"authorName" mod:"trim" validate:"required,max=150"`
	TotalCopies int    `json:"totalCopies" default:"1" validate:"min=1,max=9999"`
}

type UpdateBookPayload struct {
	Title           string `json:"title" mod:"trim" validate:"required,max=200"`
	Description     string `json:"description" mod:"trim" validate:"omitempty,max=1000"`
	AuthorName      string `json:"authorName" mod:"trim" validate:"required,max=150"`
	TotalCopies     *int   `json:"totalCopies,omitempty" validate:"omitempty,min=0"`
	AvailableCopies *int   `json:"availableCopies,omitempty" validate:"omitempty,min=0"`
}
