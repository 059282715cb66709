package mq_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ridgepath/mq"
)

type mockCleaner struct {
	count atomic.Int64
}

func (m *mockCleaner) Clean(ctx context.Context) (int64, error) {
	m.count.Add(1)
	return 1, nil
}

func TestCleanWorkerRunsPeriodically(t *testing.T) {
	cleaner := &mockCleaner{}
	logger := slog.Default()

	cfg := &mq.CleanConfig{
		Interval: 20 * time.Millisecond,
	}

	w := mq.NewCleanWorker(cleaner, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)

	if err := w.Stop(time.Second); err != nil {
		t.Fatal(err)
	}

	if cleaner.count.Load() < 2 {
		t.Fatalf("expected Clean to run more than once, ran %d times", cleaner.count.Load())
	}
}

func TestCleanWorkerLifecycleErrors(t *testing.T) {
	cleaner := &mockCleaner{}
	logger := slog.Default()

	cfg := &mq.CleanConfig{
		Interval: time.Second,
	}

	w := mq.NewCleanWorker(cleaner, cfg, logger)

	ctx := context.Background()

	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	if err := w.Start(ctx); !errors.Is(err, mq.ErrDoubleStarted) {
		t.Fatal("expected ErrDoubleStarted")
	}

	if err := w.Stop(time.Second); err != nil {
		t.Fatal(err)
	}

	if err := w.Stop(time.Second); !errors.Is(err, mq.ErrDoubleStopped) {
		t.Fatal("expected ErrDoubleStopped")
	}
}
