package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DraftEvicter is the part of the insight workflow the sweeper needs.
type DraftEvicter interface {
	EvictStaleDrafts(ctx context.Context, ttl time.Duration) (int, error)
}

// IntegrityChecker verifies the record store invariants.
type IntegrityChecker interface {
	CheckIntegrity(ctx context.Context) error
	Counts() (employees, attendanceRecords, reviews, insights int)
}

type MaintenanceJobs struct {
	drafts        DraftEvicter
	store         IntegrityChecker
	draftTTL      time.Duration
	sweepInterval time.Duration
}

func NewMaintenanceJobs(drafts DraftEvicter, store IntegrityChecker, draftTTL, sweepInterval time.Duration) *MaintenanceJobs {
	return &MaintenanceJobs{
		drafts:        drafts,
		store:         store,
		draftTTL:      draftTTL,
		sweepInterval: sweepInterval,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:           "evict_stale_insight_drafts",
		Interval:       j.sweepInterval,
		Fn:             j.EvictStaleDrafts,
		SkipInitialRun: true,
	})
	scheduler.AddJob(Job{
		Name:     "check_record_store_integrity",
		Interval: time.Hour,
		Fn:       j.CheckStoreIntegrity,
	})
}

// EvictStaleDrafts discards unsaved drafts nobody has touched within the TTL.
func (j *MaintenanceJobs) EvictStaleDrafts(ctx context.Context) error {
	evicted, err := j.drafts.EvictStaleDrafts(ctx, j.draftTTL)
	if err != nil {
		return fmt.Errorf("failed to evict stale drafts: %w", err)
	}
	if evicted > 0 {
		slog.Info("Cron: Stale insight drafts evicted", "count", evicted, "ttl", j.draftTTL)
	}
	return nil
}

// CheckStoreIntegrity reports invariant violations. It never repairs them.
func (j *MaintenanceJobs) CheckStoreIntegrity(ctx context.Context) error {
	if err := j.store.CheckIntegrity(ctx); err != nil {
		slog.Error("Cron: Record store integrity check failed", "error", err)
		return err
	}
	employees, attendanceRecords, reviews, insights := j.store.Counts()
	slog.Info("Cron: Record store integrity verified",
		"employees", employees,
		"attendance", attendanceRecords,
		"reviews", reviews,
		"insights", insights,
	)
	return nil
}
