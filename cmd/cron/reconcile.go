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

const defaultReconcileSchedule = "@hourly"

// ReconcileJob backfills a ProofLog for any proof that lost its pair, and
// checks the log count against the proof count afterwards.
type ReconcileJob struct {
	db           *bun.DB
	serviceProof *services.ServiceProof
}

func NewReconcileJob(container *do.Injector) (*ReconcileJob, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceProof, err := do.Invoke[*services.ServiceProof](container)
	if err != nil {
		return nil, err
	}

	return &ReconcileJob{db, serviceProof}, nil
}

func (j *ReconcileJob) Start(cronRunner *cron.Cron) {
	schedule := defaultReconcileSchedule
	config, err := datastore.GetConfigByKey(context.Background(), j.db, "CRONJOB_TIME_RECONCILE")
	if err == nil && config.Value != "" {
		schedule = config.Value
	}

	_, err = cronRunner.AddFunc(schedule, j.run)
	log.Println("Reconcile cronjob scheduled:", schedule, err)
}

func (j *ReconcileJob) run() {
	ctx := context.Background()

	repaired, err := j.serviceProof.Reconcile(ctx)
	if err != nil {
		log.Println("reconcile:", err)
		return
	}
	if repaired > 0 {
		log.Println("Reconcile repaired", repaired, "proof logs")
	}

	logs, err := datastore.CountProofLogs(ctx, j.db)
	if err != nil {
		log.Println("reconcile: count:", err)
		return
	}
	log.Println("Reconcile done, proof logs:", logs)
}
