package loans

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers loan routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, loanPeriod time.Duration) {
	loanService := NewService(db, loanPeriod)

	h := &handler{
		loanService: loanService,
	}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create)
	g.POST("/:id/return", h.returnLoan)
}
