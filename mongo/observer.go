package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Total counts every document in the collection, regardless of state.
func (q *Queue) Total(ctx context.Context) (int64, error) {
	n, err := q.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("mongo: total: %w", err)
	}
	return n, nil
}

// Size counts documents currently claimable: undeleted and visible now
// or in the past. This includes documents whose lease has expired and
// collapsed back to Pending.
func (q *Queue) Size(ctx context.Context) (int64, error) {
	n, err := q.collection.CountDocuments(ctx, bson.M{
		"deleted": nil,
		"visible": bson.M{"$lte": time.Now()},
	})
	if err != nil {
		return 0, fmt.Errorf("mongo: size: %w", err)
	}
	return n, nil
}

// InFlight counts documents currently under a live, unexpired lease.
func (q *Queue) InFlight(ctx context.Context) (int64, error) {
	n, err := q.collection.CountDocuments(ctx, bson.M{
		"ack":     bson.M{"$ne": nil},
		"visible": bson.M{"$gt": time.Now()},
		"deleted": nil,
	})
	if err != nil {
		return 0, fmt.Errorf("mongo: in-flight: %w", err)
	}
	return n, nil
}

// Done counts documents that have been acked.
func (q *Queue) Done(ctx context.Context) (int64, error) {
	n, err := q.collection.CountDocuments(ctx, bson.M{"deleted": bson.M{"$ne": nil}})
	if err != nil {
		return 0, fmt.Errorf("mongo: done: %w", err)
	}
	return n, nil
}
