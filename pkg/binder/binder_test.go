package binder

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Hello string `json:"hello" mod:"trim" validate:"max=9"`
	Omit  string `json:"-"`
}

var (
	goodJSON             = `{"hello":" world "}`
	unknownFieldsErrJSON = `{"hello":"world","foo":"bar"}`
	typeErrJSON          = `{"hello":123}`
	validationErrJSON    = `{"hello":"0123456789"}`
)

func TestNew(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	assert.NotNil(t, b)

	t.Run("only allows application/json and application/x-www-form-urlencoded", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationXML)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("disallows unknown fields", func(tt *testing.T) {
		c := newContext(unknownFieldsErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `Unknown Parameter "foo"`)
	})

	t.Run("returns a good message for type errors", func(tt *testing.T) {
		c := newContext(typeErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"hello" should be of type string`)
	})

	t.Run("use mod tag to modify params", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "world", p.Hello)
	})

	t.Run("use validate tag to validate params", func(tt *testing.T) {
		c := newContext(validationErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "length must be less than or equal to 9 characters")
	})
}

type loanParams struct {
	BorrowDate string `json:"borrowDate" validate:"required,date"`
}

type lookupQuery struct {
	ID   *int    `query:"id" json:"id,omitempty"`
	Type string  `query:"type" json:"type" validate:"required"`
	Name *string `query:"name" json:"name,omitempty"`
}

func TestBind_Dates(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	p := loanParams{}
	err = b.Bind(&p, newContext(`{"borrowDate":"2024-01-01"}`, echo.MIMEApplicationJSON))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", p.BorrowDate)

	err = b.Bind(&loanParams{}, newContext(`{"borrowDate":"01/02/2024"}`, echo.MIMEApplicationJSON))
	assert.EqualError(t, err, `"borrowDate" should be in the format of YYYY-MM-DD`)

	err = b.Bind(&loanParams{}, newContext(`{}`, echo.MIMEApplicationJSON))
	assert.EqualError(t, err, `"borrowDate" is required`)
}

func TestBind_Query(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	q := lookupQuery{}
	err = b.Bind(&q, newQueryContext("/?type=Author&name=Frank+Herbert&id=3"))
	require.NoError(t, err)
	require.NotNil(t, q.ID)
	assert.Equal(t, 3, *q.ID)
	assert.Equal(t, "Frank Herbert", *q.Name)

	err = b.Bind(&lookupQuery{}, newQueryContext("/?type=Author&id=abc"))
	assert.Contains(t, err.Error(), `"id" should be of type`)

	q = lookupQuery{}
	err = b.Bind(&q, newQueryContext("/?type=Author&color=red&_=1712345678"))
	require.NoError(t, err)
	assert.Equal(t, "Author", q.Type)

	err = b.Bind(&lookupQuery{}, newQueryContext("/?type=Author&id="))
	assert.EqualError(t, err, `"id" should be of type int`)

	err = b.Bind(&lookupQuery{}, newQueryContext("/?type=Author&id=+"))
	assert.EqualError(t, err, `"id" should be of type int`)

	q = lookupQuery{}
	err = b.Bind(&q, newQueryContext("/?type=Author&name="))
	require.NoError(t, err)

	err = b.Bind(&lookupQuery{}, newQueryContext("/?name=x"))
	assert.EqualError(t, err, `"type" is required`)
}

func TestBind_FormKeepsUnknownParameterCheck(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	err = b.Bind(&lookupQuery{}, newContext("type=Author&color=red", echo.MIMEApplicationForm))
	assert.EqualError(t, err, `Unknown Parameter "color"`)
}

func TestBind_EmptyBody(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	err = b.Bind(&loanParams{}, newContext("", echo.MIMEApplicationJSON))
	assert.EqualError(t, err, "Request body can't be empty.")
}

func newQueryContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(echo.GET, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func newContext(payload, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(echo.POST, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, mime)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}
