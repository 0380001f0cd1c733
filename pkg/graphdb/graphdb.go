// Package graphdb wraps the Neo4j driver behind a small Runner interface so
// that Cypher-speaking code can be exercised without a live database.
package graphdb

import (
	"context"

	"github.com/libgraph/libgraph/pkg/config"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jconfig "github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// Record is a single result row keyed by the names in the RETURN clause.
type Record map[string]any

// Tx runs statements inside an open transaction.
type Tx interface {
	Run(ctx context.Context, query string, params map[string]any) ([]Record, error)
}

// Runner executes Cypher against a graph database. Write runs work inside a
// single transaction that is committed when work returns nil and rolled back
// otherwise.
type Runner interface {
	Read(ctx context.Context, query string, params map[string]any) ([]Record, error)
	Write(ctx context.Context, work func(tx Tx) error) error
}

type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

// New connects to the graph database and verifies the connection. Sessions
// borrow connections from a pool bounded by cfg.Neo4jMaxPoolSize; callers
// block while the pool is exhausted.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
		func(c *neo4jconfig.Config) {
			c.MaxConnectionPoolSize = cfg.Neo4jMaxPoolSize
		},
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.Wrap(err, "failed to connect to graph database")
	}

	logger.FromContext(ctx).Info("connected to graph database", logger.Data{"uri": cfg.Neo4jURI})

	return &Client{driver: driver, database: cfg.Neo4jDatabase}, nil
}

func (c *Client) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.database,
	})
}

func (c *Client) Read(ctx context.Context, query string, params map[string]any) ([]Record, error) {
	session := c.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return (&managedTx{tx}).Run(ctx, query, params)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	records, _ := result.([]Record)
	return records, nil
}

func (c *Client) Write(ctx context.Context, work func(tx Tx) error) error {
	session := c.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, work(&managedTx{tx})
	})
	return errors.WithStack(err)
}

func (c *Client) Close(ctx context.Context) error {
	return errors.WithStack(c.driver.Close(ctx))
}

type managedTx struct {
	tx neo4j.ManagedTransaction
}

func (m *managedTx) Run(ctx context.Context, query string, params map[string]any) ([]Record, error) {
	result, err := m.tx.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	rows, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.AsMap())
	}
	return records, nil
}
