package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"ecospin/internal/datastore"
	"ecospin/internal/pkg/exporting"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "export",
		Commands: []*cli.Command{
			commandExportProofs(),
			commandExportPointEvents(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandExportProofs() *cli.Command {
	return &cli.Command{
		Name: "proofs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Value: "./proofs.csv",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			proofs, err := datastore.ListAllProofs(ctx, db)
			if err != nil {
				return err
			}

			file, err := os.Create(c.String("output"))
			if err != nil {
				return err
			}
			defer file.Close()

			if err := exporting.WriteProofsCSV(file, proofs); err != nil {
				return err
			}

			fmt.Println("Exported", len(proofs), "proofs to", c.String("output"))
			return nil
		},
	}
}

func commandExportPointEvents() *cli.Command {
	return &cli.Command{
		Name: "point-events",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Value: "./point_events.csv",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			events, err := datastore.ListAllPointEvents(ctx, db)
			if err != nil {
				return err
			}

			file, err := os.Create(c.String("output"))
			if err != nil {
				return err
			}
			defer file.Close()

			if err := exporting.WritePointEventsCSV(file, events); err != nil {
				return err
			}

			fmt.Println("Exported", len(events), "point events to", c.String("output"))
			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
