package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/libgraph/libgraph/pkg/config"
	"github.com/libgraph/libgraph/pkg/database"
	"github.com/libgraph/libgraph/pkg/graphdb"
	"github.com/libgraph/libgraph/pkg/migrations"
	"github.com/libgraph/libgraph/pkg/server"
	"github.com/libgraph/libgraph/pkg/store"
	"github.com/libgraph/libgraph/pkg/version"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()
	ctx = log.WithContext(ctx)

	log.Info("starting libgraph", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	s, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Err(err).Fatal("store error")
	}
	log.Info("store ready", logger.Data{"backend": cfg.StoreBackend})

	srv, err := server.New(cfg, s)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}

		log.Info("server started", logger.Data{"addr": listener.Addr().String()})

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	err = closeStore()
	if err != nil {
		log.Err(err).Error("store close error")
	}
	log.Info("store closed")
}

// openStore connects to the backend named by store_backend. The relational
// schema is migrated before use.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func() error, error) {
	log := logger.FromContext(ctx)

	if cfg.StoreBackend == config.BackendGraph {
		client, err := graphdb.New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store.NewGraph(client), func() error { return client.Close(ctx) }, nil
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	return store.NewRelational(db), db.Close, nil
}
