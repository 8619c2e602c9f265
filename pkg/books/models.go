package books

import (
	"github.com/hondanabooks/hondana/pkg/models"
)

// BookResponse is the flattened shape the API exposes: book, author, and copy
// counts combined into one object. Copy counts are summed across all copy
// rows the book owns.
type BookResponse struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	AuthorName      string `json:"authorName"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
}

func NewBookResponse(book *models.Book) *BookResponse {
	resp := &BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		Description:     book.Description,
		TotalCopies:     book.TotalCopies(),
		AvailableCopies: book.AvailableCopies(),
	}
	if book.Author != nil {
		resp.AuthorName = book.Author.Name
	}
	return resp
}
