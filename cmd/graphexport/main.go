package main

import (
	"context"
	"os"

	"github.com/libgraph/libgraph/pkg/config"
	"github.com/libgraph/libgraph/pkg/database"
	"github.com/libgraph/libgraph/pkg/graphdb"
	"github.com/libgraph/libgraph/pkg/graphexport"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	app := &cli.App{
		Name:        "graphexport",
		Usage:       "export the relational catalog as a Cypher script",
		Description: "Reads genres, publishers, authors, borrowers and books and writes the statements that recreate them in Neo4j.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "script path",
				Value:   cfg.MigrationOutputPath,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "print the script instead of writing it",
			},
			&cli.BoolFlag{
				Name:  "load",
				Usage: "also run the statements against the configured graph database",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, cfg, c.String("output"), c.Bool("dry-run"), c.Bool("load"))
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

func run(ctx context.Context, cfg *config.Config, output string, dryRun, load bool) error {
	log := logger.New()
	ctx = log.WithContext(ctx)

	if !cfg.RelationalConfigured() {
		return errors.New("the relational database is not configured")
	}

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	stmts, err := graphexport.NewExporter(db).Statements(ctx)
	if err != nil {
		return err
	}

	if dryRun {
		return graphexport.WriteScript(os.Stdout, stmts)
	}

	if err := graphexport.WriteFile(output, stmts); err != nil {
		return err
	}
	log.Info("script written", logger.Data{"path": output, "statements": len(stmts)})

	if !load {
		return nil
	}

	client, err := graphdb.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	if err := graphexport.Load(ctx, client, stmts); err != nil {
		return err
	}
	log.Info("graph loaded", logger.Data{"statements": len(stmts)})
	return nil
}
