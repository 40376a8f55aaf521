package main

import (
	"context"
	"log"

	"ecospin/internal/datastore"
	"ecospin/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const defaultLeaderboardSchedule = "@every 6h"

// LeaderboardJob re-projects the points leaderboard from the stored totals.
// Award keeps the ZSet fresh on its own; this job repairs drift after redis
// restarts or missed refreshes.
type LeaderboardJob struct {
	db                 *bun.DB
	serviceLeaderboard *services.ServiceLeaderboard
}

func NewLeaderboardJob(container *do.Injector) (*LeaderboardJob, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](container)
	if err != nil {
		return nil, err
	}

	return &LeaderboardJob{db, serviceLeaderboard}, nil
}

func (j *LeaderboardJob) Start(cronRunner *cron.Cron) {
	schedule := defaultLeaderboardSchedule
	config, err := datastore.GetConfigByKey(context.Background(), j.db, "CRONJOB_TIME_LEADERBOARD")
	if err == nil && config.Value != "" {
		schedule = config.Value
	}

	_, err = cronRunner.AddFunc(schedule, j.run)
	log.Println("Leaderboard cronjob scheduled:", schedule, err)

	// seed the projection once at startup so a fresh redis is usable
	// before the first tick
	j.run()
}

func (j *LeaderboardJob) run() {
	log.Println("Start rebuilding leaderboard ...")
	n, err := j.serviceLeaderboard.Rebuild(context.Background())
	if err != nil {
		log.Println("leaderboard:", err)
		return
	}
	log.Println("Leaderboard rebuilt,", n, "users")
}
