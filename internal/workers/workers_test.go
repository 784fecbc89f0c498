// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// countingWorker records how many times Run was called and blocks until ctx
// is cancelled.
type countingWorker struct {
	runs atomic.Int32
}

func (c *countingWorker) Run(ctx context.Context) {
	c.runs.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2 := &countingWorker{}, &countingWorker{}
	ws := NewWorkers(w1, nil, w2)
	require.Equal(t, 2, ws.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	// returns immediately with nothing to wait for
	NewWorkers().Run(context.Background())
}

func TestNewRetentionWorker_Disabled(t *testing.T) {
	assert.Nil(t, NewRetentionWorker(nil, time.Hour, 0, logger.Nop()))
	assert.Nil(t, NewRetentionWorker(nil, 0, time.Hour, logger.Nop()))
}

func TestRetentionWorker_PrunesOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	plans := mock.NewMockPlanService(ctrl)

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	maxAge := 72 * time.Hour

	var calls atomic.Int32
	plans.EXPECT().
		PrunePlans(gomock.Any(), now.Add(-maxAge)).
		DoAndReturn(func(context.Context, time.Time) (int64, error) {
			// the error path must not stop the loop
			if calls.Add(1) == 1 {
				return 0, errors.New("database is locked")
			}
			return 3, nil
		}).
		MinTimes(3)

	w := NewRetentionWorker(plans, 5*time.Millisecond, maxAge, logger.Nop()).(*retentionWorker)
	w.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
