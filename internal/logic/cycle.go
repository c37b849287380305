package logic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/focusclub/leaderboard-api/internal/models"
)

const defaultPersistWorkers = 8

type cycleService struct {
	store          StatStore
	dates          DateSource
	logger         *zap.SugaredLogger
	persistWorkers int
}

// NewCycleService wires the rollover engine, weekly aggregator and
// persistence fan-out into one cycle runner. The caller is responsible for
// serializing invocations; see worker.CycleWorker.
func NewCycleService(store StatStore, dates DateSource, logger *zap.SugaredLogger) CycleService {
	return &cycleService{
		store:          store,
		dates:          dates,
		logger:         logger,
		persistWorkers: defaultPersistWorkers,
	}
}

// RunCycle loads every stat record, settles all rollovers, recomputes weekly
// scores over the settled snapshot and writes back each changed record.
// Per-user storage failures are reported, never fatal; only the initial load
// can fail the whole cycle.
func (s *cycleService) RunCycle(ctx context.Context) (*models.CycleReport, error) {
	report := &models.CycleReport{
		Date:      s.dates.Today(),
		StartedAt: time.Now().UTC(),
		Succeeded: []string{},
		Skipped:   []models.SkippedUser{},
		Failed:    []models.FailedUser{},
	}

	stats, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load user stats: %w", err)
	}

	valid := make([]models.UserStat, 0, len(stats))
	for _, st := range stats {
		if verr := ValidateStat(st); verr != nil {
			s.logger.Warnw("Skipping malformed stat record",
				"owner", st.OwnerID,
				"error", verr,
			)
			report.Skipped = append(report.Skipped, models.SkippedUser{
				OwnerID: st.OwnerID,
				Reason:  verr.Error(),
			})
			continue
		}
		valid = append(valid, st)
	}

	// All rollovers settle before the aggregator reads any daily window.
	rolled := make([]models.UserStat, 0, len(valid))
	for _, st := range valid {
		next, _ := Rollover(st, report.Date)
		rolled = append(rolled, next)
	}

	updated := RecomputeWeeklyScores(rolled)

	// Records are independent; persist concurrently and join. A failed write
	// for one user must not block the rest, so workers never return errors
	// into the group.
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.persistWorkers)

	for i := range updated {
		st := updated[i]
		if st.Equal(valid[i]) {
			mu.Lock()
			report.Succeeded = append(report.Succeeded, st.OwnerID)
			mu.Unlock()
			continue
		}
		report.Changed++

		g.Go(func() error {
			if _, err := s.store.Update(ctx, &st); err != nil {
				serr := &StorageError{OwnerID: st.OwnerID, Op: "update", Err: err}
				s.logger.Errorw("Failed to persist stat record",
					"owner", st.OwnerID,
					"error", err,
				)
				mu.Lock()
				report.Failed = append(report.Failed, models.FailedUser{
					OwnerID: st.OwnerID,
					Error:   serr.Error(),
				})
				mu.Unlock()
				return nil
			}
			mu.Lock()
			report.Succeeded = append(report.Succeeded, st.OwnerID)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	report.FinishedAt = time.Now().UTC()
	s.logger.Infow("Leaderboard cycle finished",
		"date", report.Date,
		"users", len(stats),
		"changed", report.Changed,
		"skipped", len(report.Skipped),
		"failed", len(report.Failed),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report, nil
}
