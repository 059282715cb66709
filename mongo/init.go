package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// CreateIndexes establishes the indexes Get, Ping and Ack depend on. It
// is idempotent: creating an index that already exists with the same
// spec is a no-op. The two non-TTL indexes are created concurrently via
// errgroup, matching the pattern of establishing compound and uniqueness
// indexes as independent, parallelizable steps.
func (q *Queue) CreateIndexes(ctx context.Context) (string, error) {
	v := q.collection.Indexes()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := v.CreateOne(gctx, driver.IndexModel{
			Keys:    bson.D{{Key: "ack", Value: 1}},
			Options: options.Index().SetName(indexAckUnique).SetUnique(true).SetSparse(true),
		})
		return err
	})

	g.Go(func() error {
		_, err := v.CreateOne(gctx, driver.IndexModel{
			Keys:    bson.D{{Key: "deleted", Value: 1}, {Key: "visible", Value: 1}},
			Options: options.Index().SetName(indexClaim),
		})
		return err
	})

	if q.opts.CleanAfter != nil {
		seconds := int32(q.opts.CleanAfter.Seconds())
		g.Go(func() error {
			_, err := v.CreateOne(gctx, driver.IndexModel{
				Keys:    bson.D{{Key: "deleted", Value: 1}},
				Options: options.Index().SetName(indexDeletedTTL).SetExpireAfterSeconds(seconds),
			})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("mongo: create indexes: %w", err)
	}
	return indexClaim, nil
}
