package mq

import (
	"context"
	"github.com/ridgepath/mq/internal"
	"log/slog"
	"time"
)

// CleanConfig defines the scheduling parameters for a CleanWorker.
//
// Interval defines how often the cleaner runs. Clean takes no status or
// time filter of its own — it always removes every acked document — so
// CleanConfig carries nothing beyond scheduling.
type CleanConfig struct {
	Interval time.Duration
}

// CleanWorker periodically invokes a Cleaner implementation.
//
// CleanWorker is intended for background retention management when a
// queue is not configured with a TTL index (CleanAfter) and acked
// documents would otherwise accumulate indefinitely.
//
// CleanWorker does not participate in message processing and does not
// affect visibility timeouts.
//
// CleanWorker has a strict lifecycle:
//   - Start may only be called once.
//   - Stop must be called to terminate the worker.
//   - Stop waits for the internal task to finish or until the timeout
//     expires.
type CleanWorker struct {
	lcBase
	cleaner  Cleaner
	task     internal.TimerTask
	log      *slog.Logger
	interval time.Duration
}

// NewCleanWorker creates a new CleanWorker using the provided Cleaner
// implementation and configuration.
//
// The worker is not started automatically. Call Start to begin periodic
// cleaning.
func NewCleanWorker(cleaner Cleaner, config *CleanConfig, log *slog.Logger) *CleanWorker {
	return &CleanWorker{
		cleaner:  cleaner,
		log:      log,
		interval: config.Interval,
	}
}

func (cw *CleanWorker) clean(ctx context.Context) {
	count, err := cw.cleaner.Clean(ctx)
	if err != nil {
		cw.log.Error("error while cleaning", "error", err)
		return
	}
	cw.log.Info("cleaned messages", "count", count)
}

// Start begins periodic execution of the cleaning task.
//
// Start returns ErrDoubleStarted if the worker has already been started.
//
// The provided context controls cancellation of the background task.
func (cw *CleanWorker) Start(ctx context.Context) error {
	if err := cw.tryStart(); err != nil {
		return err
	}
	cw.task.Start(ctx, cw.clean, cw.interval)
	return nil
}

// Stop terminates the background cleaning task.
//
// Stop waits until the task finishes or the specified timeout expires.
// If shutdown does not complete within the timeout, ErrStopTimeout is
// returned.
//
// Stop returns ErrDoubleStopped if the worker is not running.
func (cw *CleanWorker) Stop(timeout time.Duration) error {
	return cw.tryStop(timeout, cw.task.Stop)
}
