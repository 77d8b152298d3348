package reconcile

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron       *cron.Cron
	reconciler *Reconciler
	timeout    time.Duration
}

func NewScheduler(reconciler *Reconciler) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		reconciler: reconciler,
		timeout:    10 * time.Minute,
	}
}

// Start registers the reconcile job on schedule (six fields, seconds first) and
// starts the cron loop.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.runOnce); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}

	log.Printf("Reconcile scheduler started (schedule %q)", schedule)
	s.cron.Start()
	return nil
}

// Stop stops scheduling and waits for a running pass to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	report, err := s.reconciler.Run(ctx)
	if err != nil {
		log.Printf("[error] operation=reconcile error=%v", err)
		return
	}

	log.Printf("[info] operation=reconcile scanned=%d repaired=%d removed=%d duration=%s",
		report.UsersScanned, report.UsersRepaired, report.IDsRemoved, time.Since(start))
}
