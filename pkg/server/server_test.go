package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/libgraph/libgraph/internal/testgen"
	"github.com/libgraph/libgraph/pkg/config"
	"github.com/libgraph/libgraph/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Library</h1>"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "viewer.html"), []byte("<h1>Viewer</h1>"), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "index.js"), []byte("loadLibrary()"), 0600))

	cfg := config.NewForTest()
	cfg.StaticDir = dir

	db := testgen.NewDB(t)
	testgen.InsertCatalog(t, db, testgen.CatalogOptions{Books: 2})

	srv, err := New(cfg, store.NewRelational(db))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.Addr)
	return srv.Handler
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServer_Routes(t *testing.T) {
	h := newTestServer(t)

	cases := []struct {
		method string
		target string
		code   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/books", http.StatusOK},
		{http.MethodGet, "/api/author", http.StatusOK},
		{http.MethodGet, "/api/publisher", http.StatusOK},
		{http.MethodGet, "/api/genre", http.StatusOK},
		{http.MethodGet, "/api/borrower", http.StatusOK},
		{http.MethodPost, "/api/removeBorrowers", http.StatusOK},
		{http.MethodGet, "/api/nothing", http.StatusNotFound},
	}
	for _, tt := range cases {
		rr := do(h, tt.method, tt.target, "")
		assert.Equal(t, tt.code, rr.Code, tt.target)
	}
}

func TestServer_NotFoundEnvelope(t *testing.T) {
	h := newTestServer(t)

	rr := do(h, http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"not_found"`)
	assert.Contains(t, rr.Body.String(), `"status_code":404`)
}

func TestServer_BorrowScenario(t *testing.T) {
	h := newTestServer(t)

	rr := do(h, http.MethodPost, "/api/borrow", `{"bookid":1,"name":"Alice","borrowDate":"2024-01-01","returnDate":"2024-01-15"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(h, http.MethodGet, "/api/books?id=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"present":false`)
	assert.Contains(t, rr.Body.String(), `"borrower_name":"Alice"`)

	rr = do(h, http.MethodPost, "/api/return", `{"bookid":1}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(h, http.MethodGet, "/api/books?id=1", "")
	assert.Contains(t, rr.Body.String(), `"present":true`)
	assert.Contains(t, rr.Body.String(), `"borrower_name":null`)
	assert.Contains(t, rr.Body.String(), `"borrowdate":null`)

	rr = do(h, http.MethodGet, "/api/borrower?name=Alice", "")
	assert.Contains(t, rr.Body.String(), `"name":"Alice"`)
}

func TestServer_DescriptionWithoutAPIConfig(t *testing.T) {
	h := newTestServer(t)

	rr := do(h, http.MethodGet, "/api/description?type=Books&name=Book+A", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"config_error"`)
}

func TestServer_Frontend(t *testing.T) {
	h := newTestServer(t)

	rr := do(h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Library")

	rr = do(h, http.MethodGet, "/viewer.html", "")
	assert.Contains(t, rr.Body.String(), "Viewer")

	rr = do(h, http.MethodGet, "/static/js/index.js", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "loadLibrary()", rr.Body.String())
}

func TestServer_CORS(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/genre", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
