package loans

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hondanabooks/hondana/pkg/binder"
	"github.com/hondanabooks/hondana/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoansTestContext(t *testing.T, method, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if payload != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func TestHandlerCreate_CamelCasePayloadAndResponse(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{loanService: NewService(db, testLoanPeriod)}

	payload := `{"bookId":2,"memberId":1}`
	c, rr := newLoansTestContext(t, http.MethodPost, "/loans", payload)

	err := h.create(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.EqualValues(t, 1, response["memberId"])
	assert.EqualValues(t, 2, response["bookCopyId"])
	assert.Contains(t, response, "borrowDate")
	assert.Contains(t, response, "dueDate")
}

func TestHandlerCreate_RejectsSnakeCaseKeys(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{loanService: NewService(db, testLoanPeriod)}

	payload := `{"book_id":2,"member_id":1}`
	c, _ := newLoansTestContext(t, http.MethodPost, "/loans", payload)

	err := h.create(c)
	require.ErrorIs(t, err, errcodes.UnknownParameter("book_id"))
}

func TestHandlerCreate_NoCopiesConflict(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{loanService: NewService(db, testLoanPeriod)}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := h.loanService.BorrowBook(ctx, BorrowBookOptions{BookID: 2, MemberID: 1})
		require.NoError(t, err)
	}

	c, _ := newLoansTestContext(t, http.MethodPost, "/loans", `{"bookId":2,"memberId":1}`)

	err := h.create(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusConflict, codeErr.HTTPCode)
}
