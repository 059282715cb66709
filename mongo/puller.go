package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ridgepath/mq"
)

// Get claims the oldest currently-visible, undeleted document and
// returns it as a Claim.
//
// If the claimed document has exceeded the configured retry ceiling,
// Get does not return it to the caller. Instead, following the
// documented loop form rather than recursion, it dead-letters the
// document (when a dead queue is configured), acks it out of this
// queue, and claims again. tries is incremented on every claim
// including this one, so a document that is claimed past the ceiling
// and dead-lettered still counts as one more try against the original
// document before it leaves this collection.
func (q *Queue) Get(ctx context.Context, opts *mq.GetOptions) (*mq.Claim, error) {
	for {
		rec, err := q.claimOne(ctx, opts)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, nil
		}
		if !q.opts.RetryPolicy.Exceeds(rec.Tries) {
			return rec.toClaim(), nil
		}

		if q.opts.DeadQueue != nil {
			dead := rec.toClaim()
			if _, err := q.opts.DeadQueue.Add(ctx, []any{dead}, nil); err != nil {
				return nil, fmt.Errorf("mongo: get: dead-letter add: %w", err)
			}
		}
		if _, err := q.Ack(ctx, *rec.Ack); err != nil {
			return nil, fmt.Errorf("mongo: get: ack after dead-letter: %w", err)
		}
	}
}

func (q *Queue) claimOne(ctx context.Context, opts *mq.GetOptions) (*record, error) {
	now := time.Now()
	visibility := q.opts.Visibility
	if opts != nil && opts.Visibility != nil {
		visibility = *opts.Visibility
	}
	token := newAckToken()

	filter := bson.M{"deleted": nil, "visible": bson.M{"$lte": now}}
	update := bson.M{
		"$inc": bson.M{"tries": int64(1)},
		"$set": bson.M{"ack": token, "visible": now.Add(visibility)},
	}
	fopts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetReturnDocument(options.After)

	var rec record
	err := q.collection.FindOneAndUpdate(ctx, filter, update, fopts).Decode(&rec)
	if errors.Is(err, driver.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: get: %w", err)
	}
	return &rec, nil
}

// Ping extends the lease identified by ack by the queue's configured
// (or per-call) visibility window, provided the lease is still live.
func (q *Queue) Ping(ctx context.Context, ack string, opts *mq.GetOptions) (string, error) {
	now := time.Now()
	visibility := q.opts.Visibility
	if opts != nil && opts.Visibility != nil {
		visibility = *opts.Visibility
	}
	return q.updateLease(ctx, "ping", ack, bson.M{"$set": bson.M{"visible": now.Add(visibility)}}, now)
}

// Ack finalizes the message leased under ack, marking it Done.
func (q *Queue) Ack(ctx context.Context, ack string) (string, error) {
	now := time.Now()
	return q.updateLease(ctx, "ack", ack, bson.M{"$set": bson.M{"deleted": now}}, now)
}

func (q *Queue) updateLease(ctx context.Context, op string, ack string, update bson.M, now time.Time) (string, error) {
	filter := bson.M{"ack": ack, "visible": bson.M{"$gt": now}, "deleted": nil}
	fopts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec record
	err := q.collection.FindOneAndUpdate(ctx, filter, update, fopts).Decode(&rec)
	if errors.Is(err, driver.ErrNoDocuments) {
		return "", &mq.AckError{Token: ack}
	}
	if err != nil {
		return "", fmt.Errorf("mongo: %s: %w", op, err)
	}
	return rec.ID.Hex(), nil
}
