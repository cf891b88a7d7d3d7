// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command foodpoint serves the Foodpoint hypermedia recipe API and
// manages its database schema.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"log/slog"
	"os"

	"github.com/foodpoint/foodpoint/app"
	"github.com/foodpoint/foodpoint/rest"
	"github.com/foodpoint/foodpoint/store/postgres"

	"github.com/urfave/cli/v3"
)

//go:embed config.yaml
var configBytes []byte

func main() {
	cmd := &cli.Command{
		Name:  "foodpoint",
		Usage: "Hypermedia driven recipe API",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			seedCommand(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		log.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the REST API",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rest.Run(bytes.NewReader(configBytes), app.Init)
			return nil
		},
	}
}

func databaseURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "database-url",
		Usage:    "Postgres connection url",
		Sources:  cli.EnvVars("DATABASE_URL"),
		Required: true,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the database schema",
		Flags: []cli.Flag{
			databaseURLFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := postgres.Connect(ctx, cmd.String("database-url"))
			if err != nil {
				return err
			}
			defer s.Close()

			return s.Migrate(ctx)
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Create the database schema and load sample data",
		Flags: []cli.Flag{
			databaseURLFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := postgres.Connect(ctx, cmd.String("database-url"))
			if err != nil {
				return err
			}
			defer s.Close()

			err = s.Migrate(ctx)
			if err != nil {
				return err
			}
			return seed(ctx, s)
		},
	}
}
