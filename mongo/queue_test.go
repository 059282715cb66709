package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/ridgepath/mq"
	"github.com/ridgepath/mq/message"
	"github.com/ridgepath/mq/mongo"
)

func TestAddOneWrapsMessage(t *testing.T) {
	db, name := newTestCollection(t)
	ctx := context.Background()

	q, err := mongo.New(db, name)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	id, err := q.AddOne(ctx, message.New("hello"), nil)
	if err != nil {
		t.Fatalf("AddOne: %v", err)
	}
	if id == "" {
		t.Fatal("AddOne returned an empty id")
	}

	claim, err := q.Get(ctx, nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if claim == nil {
		t.Fatal("Get returned no claim for the message added via AddOne")
	}
	if claim.ID != id {
		t.Fatalf("claim id = %q, want %q", claim.ID, id)
	}
	if claim.Payload != "hello" {
		t.Fatalf("claim payload = %v, want hello", claim.Payload)
	}

	if _, err := q.AddOne(ctx, nil, nil); err != mq.ErrConfig {
		t.Fatalf("AddOne(nil) error = %v, want ErrConfig", err)
	}
}

func TestAddGetAck(t *testing.T) {
	db, name := newTestCollection(t)
	ctx := context.Background()

	q, err := mongo.New(db, name)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := q.CreateIndexes(ctx); err != nil {
		t.Fatalf("CreateIndexes: %v", err)
	}

	ids, err := q.Add(ctx, []any{"hello"}, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(ids) != 1 || ids[0] == "" {
		t.Fatalf("Add returned unexpected ids: %v", ids)
	}

	claim, err := q.Get(ctx, nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if claim == nil {
		t.Fatal("Get returned no claim for a pending message")
	}
	if claim.ID != ids[0] {
		t.Fatalf("claim id = %q, want %q", claim.ID, ids[0])
	}
	if claim.Tries != 1 {
		t.Fatalf("claim tries = %d, want 1", claim.Tries)
	}
	if claim.Payload != "hello" {
		t.Fatalf("claim payload = %v, want hello", claim.Payload)
	}

	if again, err := q.Get(ctx, nil); err != nil || again != nil {
		t.Fatalf("Get while leased should return nil, nil; got %v, %v", again, err)
	}

	if _, err := q.Ack(ctx, claim.Ack); err != nil {
		t.Fatalf("Ack: %v", err)
	}
	if _, err := q.Ack(ctx, claim.Ack); !mq.IsAckError(err) {
		t.Fatalf("second Ack should fail with AckError, got %v", err)
	}
}

func TestGetHonorsVisibility(t *testing.T) {
	db, name := newTestCollection(t)
	ctx := context.Background()

	q, err := mongo.New(db, name, mq.WithVisibility(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := q.Add(ctx, []any{"x"}, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	claim, err := q.Get(ctx, nil)
	if err != nil || claim == nil {
		t.Fatalf("first Get: claim=%v err=%v", claim, err)
	}

	time.Sleep(100 * time.Millisecond)

	reclaimed, err := q.Get(ctx, nil)
	if err != nil {
		t.Fatalf("Get after expiry: %v", err)
	}
	if reclaimed == nil {
		t.Fatal("expected expired lease to be reclaimable")
	}
	if reclaimed.Tries != 2 {
		t.Fatalf("reclaimed tries = %d, want 2", reclaimed.Tries)
	}
}

func TestAddDebounceCoalesces(t *testing.T) {
	db, name := newTestCollection(t)
	ctx := context.Background()

	q, err := mongo.New(db, name, mq.WithDelay(time.Hour))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first, err := q.Add(ctx, []any{"v1"}, &mq.AddOptions{Debounce: "k"})
	if err != nil {
		t.Fatalf("Add first: %v", err)
	}
	if first[0] == "(debounced)" {
		t.Fatal("first debounce Add should not report the sentinel")
	}

	second, err := q.Add(ctx, []any{"v2"}, &mq.AddOptions{Debounce: "k"})
	if err != nil {
		t.Fatalf("Add second: %v", err)
	}
	if second[0] != "(debounced)" {
		t.Fatalf("second debounce Add should coalesce, got id %q", second[0])
	}

	total, err := q.Total(ctx)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if total != 1 {
		t.Fatalf("Total = %d, want 1 after coalescing", total)
	}
}

func TestDeadLetterAfterMaxRetries(t *testing.T) {
	db, name := newTestCollection(t)
	deadDB, deadName := db, "dead_"+name
	ctx := context.Background()

	dead, err := mongo.New(deadDB, deadName)
	if err != nil {
		t.Fatalf("New dead: %v", err)
	}

	q, err := mongo.New(db, name,
		mq.WithVisibility(10*time.Millisecond),
		mq.WithDeadQueue(dead),
		mq.WithMaxRetries(1),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := q.Add(ctx, []any{"payload"}, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// First claim: tries becomes 1, within the ceiling of 1.
	claim, err := q.Get(ctx, nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if claim == nil {
		t.Fatal("expected a claim on the first attempt")
	}
	time.Sleep(20 * time.Millisecond) // let the 10ms lease expire

	// Second claim: tries becomes 2, exceeding the ceiling. Get dead-letters
	// the message internally and reports no claim of its own.
	claim, err = q.Get(ctx, nil)
	if err != nil {
		t.Fatalf("Get after ceiling: %v", err)
	}
	if claim != nil {
		t.Fatalf("expected message to be dead-lettered, got claim %v", claim)
	}

	size, err := q.Size(ctx)
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 0 {
		t.Fatalf("Size = %d, want 0 after dead-letter", size)
	}

	deadClaim, err := dead.Get(ctx, nil)
	if err != nil {
		t.Fatalf("Get on dead queue: %v", err)
	}
	if deadClaim == nil {
		t.Fatal("expected the original message on the dead queue")
	}
}

func TestMigrateRewritesLegacyTimestamps(t *testing.T) {
	db, name := newTestCollection(t)
	ctx := context.Background()

	raw := db.Collection(name)
	_, err := raw.InsertOne(ctx, map[string]any{
		"payload": "legacy",
		"visible": time.Now().Add(-time.Minute).UTC().Format(time.RFC3339),
		"tries":   int64(0),
	})
	if err != nil {
		t.Fatalf("seed legacy document: %v", err)
	}

	q, err := mongo.New(db, name)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	n, err := q.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if n != 1 {
		t.Fatalf("Migrate modified %d documents, want 1", n)
	}

	claim, err := q.Get(ctx, nil)
	if err != nil {
		t.Fatalf("Get after migrate: %v", err)
	}
	if claim == nil {
		t.Fatal("expected migrated document to be claimable")
	}
}
