package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"ecospin/internal/interfaces"
	"ecospin/internal/pkg/caching"
	"ecospin/internal/pkg/limiter"
	"ecospin/internal/pkg/mediastore"
	"ecospin/internal/services"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
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
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob() *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			container := newContainer()

			serviceConfig, err := do.Invoke[*services.ServiceConfig](container)
			if err != nil {
				return err
			}

			loc := serviceConfig.ReferenceLocation(context.Background())
			cronRunner := cron.New(cron.WithLocation(loc))

			sweepJob, err := NewSweepJob(container)
			if err != nil {
				return err
			}
			sweepJob.Start(cronRunner)

			reconcileJob, err := NewReconcileJob(container)
			if err != nil {
				return err
			}
			reconcileJob.Start(cronRunner)

			leaderboardJob, err := NewLeaderboardJob(container)
			if err != nil {
				return err
			}
			leaderboardJob.Start(cronRunner)

			log.Println("Start cronjob in", loc.String())
			cronRunner.Run()
			return nil
		},
	}
}

func newContainer() *do.Injector {
	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(os.Getenv("DB_DSN")),
			pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.ProvideNamed(injector, "redis-db", func(i *do.Injector) (redis.UniversalClient, error) {
		clusterRedisURL := os.Getenv("CLUSTER_REDIS_URL")
		if clusterRedisURL != "" {
			clusterOpts, err := redis.ParseClusterURL(clusterRedisURL)
			if err != nil {
				return nil, err
			}
			return redis.NewClusterClient(clusterOpts), nil
		}
		return db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		})
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-db")
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-db")
		if err != nil {
			return nil, err
		}

		return limiter.NewLimiter(dbRedis)
	})

	do.Provide(injector, func(i *do.Injector) (*redsync.Redsync, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-db")
		if err != nil {
			return nil, err
		}

		pool := goredis.NewPool(dbRedis)
		return redsync.New(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*mediastore.MediaStore, error) {
		// jobs never upload media
		return nil, nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceConfig, error) {
		return services.NewServiceConfig(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceODD, error) {
		return services.NewServiceODD(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceActivity, error) {
		return services.NewServiceActivity(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServicePoints, error) {
		return services.NewServicePoints(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceSpin, error) {
		return services.NewServiceSpin(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceProof, error) {
		return services.NewServiceProof(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceUser, error) {
		return services.NewServiceUser(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceLeaderboard, error) {
		return services.NewServiceLeaderboard(injector)
	})

	return injector
}
