package borrowers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/libgraph/libgraph/internal/testgen"
	"github.com/libgraph/libgraph/pkg/binder"
	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerList(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	testgen.InsertCatalog(t, db, testgen.CatalogOptions{Borrowers: []string{"Alice", "Bob"}})

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle
	RegisterRoutesWithGroup(e.Group("/api"), store.NewRelational(db))

	req := httptest.NewRequest(http.MethodGet, "/api/borrower", nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":"1","name":"Alice"},{"id":"2","name":"Bob"}]`, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/borrower?name=Bob", nil)
	rr = httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":"2","name":"Bob"}]`, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/borrower?name=Alice&_=123", nil)
	rr = httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":"1","name":"Alice"}]`, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/borrower?name=Nobody", nil)
	rr = httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
