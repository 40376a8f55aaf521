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

const defaultSweepSchedule = "5 0 * * *"

// SweepJob removes day-scoped state shortly after the day boundary:
// unaccepted challenge spins from prior days and PENDING acceptances past the
// grace period.
type SweepJob struct {
	db          *bun.DB
	serviceSpin *services.ServiceSpin
}

func NewSweepJob(container *do.Injector) (*SweepJob, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceSpin, err := do.Invoke[*services.ServiceSpin](container)
	if err != nil {
		return nil, err
	}

	return &SweepJob{db, serviceSpin}, nil
}

func (j *SweepJob) Start(cronRunner *cron.Cron) {
	schedule := defaultSweepSchedule
	config, err := datastore.GetConfigByKey(context.Background(), j.db, "CRONJOB_TIME_SWEEP")
	if err == nil && config.Value != "" {
		schedule = config.Value
	}

	_, err = cronRunner.AddFunc(schedule, j.run)
	log.Println("Sweep cronjob scheduled:", schedule, err)
}

func (j *SweepJob) run() {
	log.Println("Start sweeping stale spins ...")
	if err := j.serviceSpin.Sweep(context.Background()); err != nil {
		log.Println("sweep:", err)
		return
	}
	log.Println("Sweep done")
}
