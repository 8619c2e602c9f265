package server

import (
	"net/http"
	"time"

	"github.com/hondanabooks/hondana/pkg/authors"
	"github.com/hondanabooks/hondana/pkg/binder"
	"github.com/hondanabooks/hondana/pkg/books"
	"github.com/hondanabooks/hondana/pkg/config"
	"github.com/hondanabooks/hondana/pkg/errcodes"
	"github.com/hondanabooks/hondana/pkg/loans"
	"github.com/hondanabooks/hondana/pkg/members"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
	}))

	health.RegisterRoutes(e)

	api := e.Group("/api/v1")

	books.RegisterRoutesWithGroup(api.Group("/books"), db)
	authors.RegisterRoutesWithGroup(api.Group("/authors"), db)
	members.RegisterRoutesWithGroup(api.Group("/members"), db)
	loans.RegisterRoutesWithGroup(api.Group("/loans"), db, cfg.LoanPeriod())

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
