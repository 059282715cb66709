package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Clean permanently removes every acked document and reports how many
// were deleted. Queues configured with WithCleanAfter rely on the TTL
// index instead and rarely need Clean called directly.
func (q *Queue) Clean(ctx context.Context) (int64, error) {
	res, err := q.collection.DeleteMany(ctx, bson.M{"deleted": bson.M{"$ne": nil}})
	if err != nil {
		return 0, fmt.Errorf("mongo: clean: %w", err)
	}
	return res.DeletedCount, nil
}
