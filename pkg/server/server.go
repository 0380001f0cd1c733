package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/libgraph/libgraph/pkg/authors"
	"github.com/libgraph/libgraph/pkg/binder"
	"github.com/libgraph/libgraph/pkg/books"
	"github.com/libgraph/libgraph/pkg/borrowers"
	"github.com/libgraph/libgraph/pkg/borrowing"
	"github.com/libgraph/libgraph/pkg/config"
	"github.com/libgraph/libgraph/pkg/descriptions"
	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/gemini"
	"github.com/libgraph/libgraph/pkg/genres"
	"github.com/libgraph/libgraph/pkg/publishers"
	"github.com/libgraph/libgraph/pkg/store"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
)

// New builds the HTTP server. Every handler reads and writes through s, so
// the server does not know which backend is in use.
func New(cfg *config.Config, s store.Store) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	registerAPIRoutes(e.Group("/api"), cfg, s)
	registerFrontendRoutes(e, cfg.StaticDir)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func registerAPIRoutes(api *echo.Group, cfg *config.Config, s store.Store) {
	// Catalog listings
	books.RegisterRoutesWithGroup(api, s)
	authors.RegisterRoutesWithGroup(api, s)
	publishers.RegisterRoutesWithGroup(api, s)
	genres.RegisterRoutesWithGroup(api, s)
	borrowers.RegisterRoutesWithGroup(api, s)

	borrowing.RegisterRoutesWithGroup(api, borrowing.NewService(s))

	descriptionService := descriptions.NewService(s, gemini.New(cfg), cfg.DescriptionMinLength)
	descriptions.RegisterRoutesWithGroup(api, descriptionService)
}

// registerFrontendRoutes serves the browser UI: the two pages sit at the root
// of dir and their scripts under /static.
func registerFrontendRoutes(e *echo.Echo, dir string) {
	e.File("/", filepath.Join(dir, "index.html"))
	e.File("/viewer.html", filepath.Join(dir, "viewer.html"))
	e.Static("/static", dir)
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
