package authors

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers author routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	authorService := NewService(db)

	h := &handler{
		authorService: authorService,
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
}
