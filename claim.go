package mq

import (
	"context"
	"time"

	"github.com/ridgepath/mq/message"
)

// Claim is the external representation of a message handed to a
// consumer: the stringified document id, the fresh ack token minted for
// this lease, the opaque payload, and the number of times the message
// has now been claimed (including this claim).
type Claim struct {
	ID      string
	Ack     string
	Payload any
	Tries   int64
}

// AddOptions controls a single Add call.
//
// Delay is a pointer so that an explicit zero delay (claim immediately)
// can be distinguished from "use the queue's configured default delay".
type AddOptions struct {
	Delay    *time.Duration
	Debounce string
}

// GetOptions controls a single Get or Ping call.
//
// Visibility is a pointer for the same reason as AddOptions.Delay: an
// explicit zero-length lease is a valid (if unusual) request.
type GetOptions struct {
	Visibility *time.Duration
}

// Pusher enqueues payloads.
type Pusher interface {
	// Add persists each element of payloads as a new or debounce-coalesced
	// document and returns one id per element, in order. A debounce upsert
	// that matched an existing Pending or Delayed document returns the
	// sentinel "(debounced)" in that slot instead of a fresh id.
	//
	// Add fails with ErrConfig if payloads is empty.
	Add(ctx context.Context, payloads []any, opts *AddOptions) ([]string, error)

	// AddOne is the single-message convenience over Add: it wraps msg's
	// payload in a one-element batch and unwraps the single returned id
	// (or the "(debounced)" sentinel, if opts coalesced it into an
	// existing document).
	//
	// AddOne fails with ErrConfig if msg is nil.
	AddOne(ctx context.Context, msg *message.Message, opts *AddOptions) (string, error)
}

// Puller claims, extends and finalizes messages.
type Puller interface {
	// Get atomically claims the oldest currently-visible, undeleted
	// document and returns it as a Claim. It returns (nil, nil) if no
	// document is currently claimable.
	Get(ctx context.Context, opts *GetOptions) (*Claim, error)

	// Ping extends the lease identified by ack. It returns the claimed
	// document's id, or an *AckError if ack does not identify a live
	// lease.
	Ping(ctx context.Context, ack string, opts *GetOptions) (string, error)

	// Ack finalizes the message leased under ack, marking it Done. It
	// returns the document's id, or an *AckError if ack does not identify
	// a live lease.
	Ack(ctx context.Context, ack string) (string, error)
}

// Observer reports best-effort, point-in-time counts. No consistency
// relationship between Observer methods, or between an Observer method
// and a concurrent Pusher/Puller/Cleaner call, is promised.
type Observer interface {
	// Total counts all documents, regardless of state.
	Total(ctx context.Context) (int64, error)

	// Size counts documents currently claimable (Pending, including
	// expired-lease documents that collapse back to Pending).
	Size(ctx context.Context) (int64, error)

	// InFlight counts documents currently under a live lease.
	InFlight(ctx context.Context) (int64, error)

	// Done counts documents that have been acked.
	Done(ctx context.Context) (int64, error)
}

// Cleaner permanently removes acked documents.
type Cleaner interface {
	// Clean deletes every document with deleted set and returns the
	// number of documents removed.
	Clean(ctx context.Context) (int64, error)
}

// Migrator upgrades documents written by a prior schema version.
type Migrator interface {
	// Migrate rewrites documents whose visible or deleted field is stored
	// as a legacy string timestamp into native timestamps, and returns
	// the number of documents modified.
	Migrate(ctx context.Context) (int64, error)
}

// Indexer establishes the indexes the claim query and ack uniqueness
// depend on.
type Indexer interface {
	// CreateIndexes is idempotent and returns the name of the
	// claim-query index.
	CreateIndexes(ctx context.Context) (string, error)
}

// Queue is the full library surface a storage backend must implement.
type Queue interface {
	Pusher
	Puller
	Observer
	Cleaner
	Migrator
	Indexer
}
