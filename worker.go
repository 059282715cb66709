package mq

import (
	"context"
	"log/slog"
	"time"

	"github.com/ridgepath/mq/internal"
)

// Handler processes a single claimed message.
//
// The provided context is canceled when the worker is shutting down or
// when lease extension fails (the lease was lost to another consumer).
//
// Handlers must be idempotent: mq provides at-least-once delivery, and a
// message may be handled more than once if a prior consumer crashed or
// failed to Ack before its lease expired.
//
// If Handler returns nil, the message is acked. If it returns a non-nil
// error, Worker logs it and leaves the message unacked — this protocol
// has no "return with backoff" operation, so a failed message simply
// becomes reclaimable once its lease elapses.
type Handler func(ctx context.Context, claim *Claim) error

type errChan chan error

// WorkerConfig defines the runtime behavior of a Worker.
//
// Concurrency specifies the number of concurrent handler invocations.
//
// Queue specifies the internal buffering capacity between polling the
// queue and dispatching claims to handlers.
//
// PollInterval defines how often the worker polls the queue for a new
// claim.
//
// Visibility is the lease duration assigned to each claimed message, and
// the duration each Ping extension grants while a handler runs.
type WorkerConfig struct {
	Concurrency  int
	Queue        int
	PollInterval time.Duration
	Visibility   time.Duration
}

// Worker coordinates polling, dispatching and lease extension for
// callers who want an automatic consumption loop instead of calling Get
// directly.
//
// Worker implements an at-least-once processing model:
//
//  1. Periodically Get a claim from the queue.
//  2. Dispatch it to the user-provided Handler.
//  3. Extend the lease via Ping while the handler runs.
//  4. On success, Ack the claim.
//  5. On failure, log and leave the claim unacked.
//
// Worker does not guarantee exactly-once delivery. Handlers must be
// idempotent.
//
// Worker has a strict lifecycle:
//   - Start may only be called once.
//   - Stop gracefully shuts down polling and dispatch goroutines.
//   - Stop waits until all in-flight handlers finish or the timeout expires.
type Worker struct {
	lcBase
	puller     Puller
	pullTask   internal.TimerTask
	pool       *internal.WorkerPool[*Claim]
	log        *slog.Logger
	handler    Handler
	interval   time.Duration
	visibility time.Duration
	halfLease  time.Duration
}

// NewWorker creates a new Worker instance.
//
// The worker is not started automatically. Call Start to begin
// processing.
func NewWorker(puller Puller, handler Handler, config *WorkerConfig, log *slog.Logger) *Worker {
	return &Worker{
		puller:     puller,
		pool:       internal.NewWorkerPool[*Claim](config.Concurrency, config.Queue, log),
		log:        log,
		handler:    handler,
		interval:   config.PollInterval,
		visibility: config.Visibility,
		halfLease:  config.Visibility / 2,
	}
}

func (w *Worker) pull(ctx context.Context) {
	opts := &GetOptions{Visibility: &w.visibility}
	claim, err := w.puller.Get(ctx, opts)
	if err != nil {
		w.log.Error("get failed", "err", err)
		return
	}
	if claim == nil {
		return
	}
	if !w.pool.Push(claim) {
		w.log.Debug("claim push interrupted via shutdown", "id", claim.ID)
	}
}

func do(handler Handler, ctx context.Context, claim *Claim) errChan {
	ret := make(errChan, 1)
	go func() {
		ret <- handler(ctx, claim)
	}()
	return ret
}

func (w *Worker) handleOrExtend(ctx context.Context, claim *Claim) error {
	wrapped, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := do(w.handler, wrapped, claim)
	timer := time.NewTimer(w.halfLease)
	defer timer.Stop()
	opts := &GetOptions{Visibility: &w.visibility}
	for {
		select {
		case <-timer.C:
			if _, err := w.puller.Ping(ctx, claim.Ack, opts); err != nil {
				cancel()
				return err
			}
			timer.Reset(w.halfLease)
		case err := <-errCh:
			return err
		}
	}
}

func (w *Worker) handle(ctx context.Context, claim *Claim) {
	err := w.handleOrExtend(ctx, claim)
	if err == nil {
		if _, err := w.puller.Ack(ctx, claim.Ack); err != nil {
			w.log.Error("cannot ack claim", "id", claim.ID, "err", err)
		}
		return
	}
	if IsAckError(err) {
		w.log.Warn("claim lease lost", "id", claim.ID, "err", err)
		return
	}
	w.log.Warn("handler failed, leaving claim unacked", "id", claim.ID, "err", err)
}

// Start begins background polling and processing of claims.
//
// Start returns ErrDoubleStarted if the worker has already been
// started.
//
// The provided context controls cancellation of the worker. When ctx is
// canceled, polling stops and in-flight handlers receive a canceled
// context.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.tryStart(); err != nil {
		return err
	}
	w.pool.Start(ctx, w.handle)
	w.pullTask.Start(ctx, w.pull, w.interval)
	return nil
}

func (w *Worker) doStop() internal.DoneChan {
	first := w.pullTask.Stop()
	second := w.pool.Stop()
	return internal.Combine(first, second)
}

// Stop initiates graceful shutdown of the worker.
//
// Stop performs the following steps:
//
//  1. Stops periodic polling for new claims.
//  2. Cancels the internal worker pool.
//  3. Waits for all in-flight handlers to complete.
//
// If shutdown does not complete within the specified timeout,
// ErrStopTimeout is returned. In this case, background goroutines may
// still be terminating.
//
// Stop returns ErrDoubleStopped if the worker is not running.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.tryStop(timeout, w.doStop)
}
