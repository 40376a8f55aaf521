package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"ecospin/internal/datastore"
	"ecospin/internal/models"
	"ecospin/internal/services"

	"github.com/gosimple/slug"
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
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandSeedODDs(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableODD(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUser(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableChallenge(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableQuiz(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableDailySpin(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePendingChallenge(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableProof(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableProofLog(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUserProgress(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePointEvent(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableVote(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableActivity(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert default configs to db
func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-config",
		Description: "Insert default configs to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			configs := []models.Config{
				{Key: services.CONFIG_REFERENCE_TIMEZONE, Value: "UTC"},
				{Key: services.CONFIG_SCENARIO_QUIZ_WEIGHT, Value: "67"},
				{Key: services.CONFIG_QUIZ_DEFAULT_POINTS, Value: "20"},
				{Key: services.CONFIG_CHALLENGE_FALLBACK_PTS, Value: "25"},
				{Key: services.CONFIG_PENDING_GRACE_DAYS, Value: "1"},
				{Key: services.CONFIG_LEADERBOARD_LIMIT, Value: "20"},
				{Key: services.CONFIG_ACTIVITY_FEED_LIMIT, Value: "50"},
				{Key: services.CONFIG_ADMIN_PROOF_LIST_LIMIT, Value: "100"},
				{Key: services.CONFIG_RECONCILE_BATCH_LIMIT, Value: "500"},
				{Key: services.CONFIG_VOTE_LIMIT_PER_MINUTE, Value: "30"},
				{Key: "CRONJOB_TIME_SWEEP", Value: "5 0 * * *"},
				{Key: "CRONJOB_TIME_RECONCILE", Value: "@hourly"},
				{Key: "CRONJOB_TIME_LEADERBOARD", Value: "@every 6h"},
			}

			for _, config := range configs {
				_, err = db.NewInsert().Model(&config).Exec(ctx)
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

type oddSeed struct {
	id        int
	nameEn    string
	nameFr    string
	color     string
	weight    int
	isClimate bool
}

// The 17 goals; climate-adjacent ones carry a heavier wheel weight.
var oddSeeds = []oddSeed{
	{1, "No Poverty", "Pas de pauvreté", "#e5243b", 5, false},
	{2, "Zero Hunger", "Faim zéro", "#dda63a", 5, false},
	{3, "Good Health and Well-being", "Bonne santé et bien-être", "#4c9f38", 5, false},
	{4, "Quality Education", "Éducation de qualité", "#c5192d", 5, false},
	{5, "Gender Equality", "Égalité entre les sexes", "#ff3a21", 5, false},
	{6, "Clean Water and Sanitation", "Eau propre et assainissement", "#26bde2", 8, true},
	{7, "Affordable and Clean Energy", "Énergie propre et d'un coût abordable", "#fcc30b", 8, true},
	{8, "Decent Work and Economic Growth", "Travail décent et croissance économique", "#a21942", 5, false},
	{9, "Industry, Innovation and Infrastructure", "Industrie, innovation et infrastructure", "#fd6925", 5, false},
	{10, "Reduced Inequalities", "Inégalités réduites", "#dd1367", 5, false},
	{11, "Sustainable Cities and Communities", "Villes et communautés durables", "#fd9d24", 8, true},
	{12, "Responsible Consumption and Production", "Consommation et production responsables", "#bf8b2e", 10, true},
	{13, "Climate Action", "Mesures relatives à la lutte contre les changements climatiques", "#3f7e44", 10, true},
	{14, "Life Below Water", "Vie aquatique", "#0a97d9", 8, true},
	{15, "Life on Land", "Vie terrestre", "#56c02b", 8, true},
	{16, "Peace, Justice and Strong Institutions", "Paix, justice et institutions efficaces", "#00689d", 5, false},
	{17, "Partnerships for the Goals", "Partenariats pour la réalisation des objectifs", "#19486a", 5, false},
}

func commandSeedODDs() *cli.Command {
	return &cli.Command{
		Name:        "seed-odds",
		Description: "Insert the 17 sustainable development goals",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			odds := make([]*models.ODD, 0, len(oddSeeds))
			for _, seed := range oddSeeds {
				odds = append(odds, &models.ODD{
					ID:             seed.id,
					Slug:           slug.Make(seed.nameEn),
					NameEn:         seed.nameEn,
					NameFr:         seed.nameFr,
					Icon:           fmt.Sprintf("odd-%d", seed.id),
					Color:          seed.color,
					Weight:         seed.weight,
					IsClimateFocus: seed.isClimate,
					Active:         true,
				})
			}

			if err := datastore.SeedODDs(ctx, db, odds); err != nil {
				log.Fatal(err)
			}

			fmt.Println("Seeded", len(odds), "goals")
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
