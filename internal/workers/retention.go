// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/service"
)

type retentionWorker struct {
	plans    service.PlanService
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time

	logger *logger.Logger
}

// NewRetentionWorker returns a worker that deletes plans older than maxAge
// every interval. It returns nil when retention is disabled (maxAge <= 0).
func NewRetentionWorker(plans service.PlanService, interval, maxAge time.Duration, logger *logger.Logger) Worker {
	if maxAge <= 0 || interval <= 0 {
		return nil
	}

	return &retentionWorker{
		plans:    plans,
		interval: interval,
		maxAge:   maxAge,
		now:      time.Now,
		logger:   logger,
	}
}

// Run prunes once immediately and then on every tick until ctx is cancelled.
func (w *retentionWorker) Run(ctx context.Context) {
	w.logger.Info().
		Dur("interval", w.interval).
		Dur("max_age", w.maxAge).
		Msg("retention worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.prune(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info().Msg("retention worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func (w *retentionWorker) prune(ctx context.Context) {
	cutoff := w.now().Add(-w.maxAge)

	deleted, err := w.plans.PrunePlans(ctx, cutoff)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Err(err).Time("cutoff", cutoff).Msg("pruning plans failed")
		return
	}

	w.logger.Debug().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("plans pruned")
}
