package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/corray333/backend-labs/grocery/internal/app"
	"github.com/corray333/backend-labs/grocery/internal/config"
	"github.com/corray333/backend-labs/grocery/internal/dal/postgres"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "grocery-svc",
		Usage: "grocery catalog, inventory and ordering backend",
		Before: func(*cli.Context) error {
			return config.Init()
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP and gRPC servers",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or inspect database migrations",
				Subcommands: []*cli.Command{
					migrateCommand(postgres.MigrateUp, "apply all pending migrations"),
					migrateCommand(postgres.MigrateDown, "roll back the latest migration"),
					migrateCommand(postgres.MigrateStatus, "print migration status"),
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	app.MustNewApp(c.Context).Run()

	return nil
}

func migrateCommand(cmd postgres.MigrateCommand, usage string) *cli.Command {
	return &cli.Command{
		Name:  string(cmd),
		Usage: usage,
		Action: func(c *cli.Context) error {
			return migrate(c.Context, cmd)
		},
	}
}

func migrate(ctx context.Context, cmd postgres.MigrateCommand) error {
	cfg, err := postgres.LoadConfig()
	if err != nil {
		return err
	}

	client, err := postgres.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Migrate(ctx, cmd)
}
