package books

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/libgraph/libgraph/internal/testgen"
	"github.com/libgraph/libgraph/pkg/binder"
	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/graphdb"
	"github.com/libgraph/libgraph/pkg/models"
	"github.com/libgraph/libgraph/pkg/store"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T, s store.Store) *echo.Echo {
	t.Helper()
	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle
	RegisterRoutesWithGroup(e.Group("/api"), s)
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func TestHandlerList(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	testgen.InsertCatalog(t, db, testgen.CatalogOptions{Books: 4, Authors: 2})
	s := store.NewRelational(db)
	e := newTestEcho(t, s)

	rr := get(e, "/api/books")
	require.Equal(t, http.StatusOK, rr.Code)
	var books []*models.BookRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &books))
	require.Len(t, books, 4)
	assert.Equal(t, "Author B", *books[3].AuthorName)

	rr = get(e, "/api/books?id=2")
	require.Equal(t, http.StatusOK, rr.Code)
	books = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Equal(t, 2, books[0].ID)
	assert.True(t, books[0].Present)
	assert.Contains(t, rr.Body.String(), `"borrower_name":null`)

	rr = get(e, "/api/books?id=77")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestHandlerList_InvalidID(t *testing.T) {
	t.Parallel()
	fake := &testgen.FakeGraph{}
	e := newTestEcho(t, store.NewGraph(fake))

	rr := get(e, "/api/books?id=abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"validation_type_error"`)
	assert.Empty(t, fake.Calls())
}

func TestHandlerList_QueryEdgeCases(t *testing.T) {
	t.Parallel()
	fake := &testgen.FakeGraph{}
	e := newTestEcho(t, store.NewGraph(fake))

	rr := get(e, "/api/books?id=")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error":"\"id\" should be of type int"`)
	assert.Empty(t, fake.Calls())

	rr = get(e, "/api/books?id=-1&_=1712345678")
	require.Equal(t, http.StatusOK, rr.Code)
	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].Query, "WHERE book.id")
	assert.Empty(t, calls[0].Params)
}

func TestHandlerList_GraphBackend(t *testing.T) {
	t.Parallel()
	fake := &testgen.FakeGraph{
		Respond: func(string, map[string]any) ([]graphdb.Record, error) {
			return []graphdb.Record{{"id": int64(5), "title": "Dune", "present": true, "genre": int64(2), "genre_name": "Science Fiction"}}, nil
		},
	}
	e := newTestEcho(t, store.NewGraph(fake))

	rr := get(e, "/api/books?id=5")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"title":"Dune"`)
	assert.Contains(t, rr.Body.String(), `"genre_name":"Science Fiction"`)
	assert.Equal(t, 5, fake.Calls()[0].Params["book_id"])
}

func TestHandlerList_StoreError(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	require.NoError(t, db.Close())
	e := newTestEcho(t, store.NewRelational(db))

	rr := get(e, "/api/books")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"store_error"`)
}
