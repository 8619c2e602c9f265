package books

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/hondanabooks/hondana/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := make([]*BookResponse, len(books))
	for i, book := range books {
		response[i] = NewBookResponse(book)
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, NewBookResponse(book)))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.CreateBook(ctx, CreateBookOptions{
		Title:       params.Title,
		Description: params.Description,
		AuthorName:  params.AuthorName,
		TotalCopies: params.TotalCopies,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/v1/books/%d", book.ID))
	return errors.WithStack(c.JSON(http.StatusCreated, NewBookResponse(book)))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.UpdateBook(ctx, id, UpdateBookOptions{
		Title:           params.Title,
		Description:     params.Description,
		AuthorName:      params.AuthorName,
		TotalCopies:     params.TotalCopies,
		AvailableCopies: params.AvailableCopies,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, NewBookResponse(book)))
}

func (h *handler) softDelete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	err = h.bookService.SoftDelete(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]string{
		"message": fmt.Sprintf("Book with id %d has been soft deleted (copies set to 0).", id),
	}
	return errors.WithStack(c.JSON(http.StatusOK, response))
}
