package members

import (
	"net/http"
	"strconv"

	"github.com/hondanabooks/hondana/pkg/errcodes"
	"github.com/hondanabooks/hondana/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	memberService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	members, err := h.memberService.ListMembers(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, members))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Member")
	}

	member, err := h.memberService.RetrieveMember(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	loanCount, err := h.memberService.GetLoanCount(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	response := struct {
		*models.Member
		LoanCount int `json:"loanCount"`
	}{member, loanCount}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateMemberPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	member := &models.Member{
		FullName: params.FullName,
	}
	if params.Email != nil {
		member.Email = *params.Email
	}

	err := h.memberService.CreateMember(ctx, member)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, member))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Member")
	}

	params := UpdateMemberPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	member, err := h.memberService.RetrieveMember(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.FullName != nil {
		member.FullName = *params.FullName
		columns = append(columns, "full_name")
	}
	if params.Email != nil {
		member.Email = *params.Email
		columns = append(columns, "email")
	}

	err = h.memberService.UpdateMember(ctx, member, UpdateMemberOptions{Columns: columns})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, member))
}

func (h *handler) deleteMember(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Member")
	}

	if _, err := h.memberService.RetrieveMember(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	err = h.memberService.DeleteMember(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
