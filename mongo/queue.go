package mongo

import (
	"context"
	"fmt"

	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ridgepath/mq"
)

const (
	indexClaim      = "idx_deleted_visible"
	indexAckUnique  = "idx_ack_unique"
	indexDeletedTTL = "idx_deleted_ttl"
)

// Queue is a mq.Queue backed by a single MongoDB collection.
type Queue struct {
	collection *driver.Collection
	opts       mq.Options
}

// New wraps the named collection of db as a Queue, resolving opts
// through mq.Resolve. New does not touch the network or create indexes;
// call CreateIndexes once after construction.
//
// New fails with mq.ErrConfig if db is nil or name is empty.
func New(db *driver.Database, name string, opts ...mq.Option) (*Queue, error) {
	if db == nil || name == "" {
		return nil, mq.ErrConfig
	}
	resolved := mq.Resolve(opts...)
	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return &Queue{
		collection: db.Collection(name),
		opts:       resolved,
	}, nil
}

// MustNew is like New but panics instead of returning an error.
func MustNew(db *driver.Database, name string, opts ...mq.Option) *Queue {
	q, err := New(db, name, opts...)
	if err != nil {
		panic(err)
	}
	return q
}

// Connect dials a MongoDB deployment and verifies connectivity against
// the primary before returning. It is a thin convenience wrapper, not
// part of mq.Queue; callers already holding a *driver.Client should use
// New directly instead.
func Connect(ctx context.Context, uri string) (*driver.Client, error) {
	client, err := driver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return client, nil
}
