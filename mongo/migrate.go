package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
)

// Migrate rewrites documents whose visible or deleted field was stored
// as an RFC 3339 string by a prior schema version into native BSON
// timestamps, and reports how many documents were modified. Migrate is
// safe to run against a collection that has already been migrated: the
// query only matches documents where one of the two fields is still a
// string.
func (q *Queue) Migrate(ctx context.Context) (int64, error) {
	filter := bson.M{"$or": []bson.M{
		{"visible": bson.M{"$type": "string"}},
		{"deleted": bson.M{"$type": "string"}},
	}}
	cursor, err := q.collection.Find(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongo: migrate: find: %w", err)
	}
	defer cursor.Close(ctx)

	var models []driver.WriteModel
	for cursor.Next(ctx) {
		var rec legacyRecord
		if err := cursor.Decode(&rec); err != nil {
			return 0, fmt.Errorf("mongo: migrate: decode: %w", err)
		}
		set := bson.M{}
		if s, ok := rec.Visible.(string); ok {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return 0, fmt.Errorf("mongo: migrate: parse visible %q: %w", s, err)
			}
			set["visible"] = t
		}
		if s, ok := rec.Deleted.(string); ok {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return 0, fmt.Errorf("mongo: migrate: parse deleted %q: %w", s, err)
			}
			set["deleted"] = t
		}
		if len(set) == 0 {
			continue
		}
		models = append(models, driver.NewUpdateOneModel().
			SetFilter(bson.M{"_id": rec.ID}).
			SetUpdate(bson.M{"$set": set}))
	}
	if err := cursor.Err(); err != nil {
		return 0, fmt.Errorf("mongo: migrate: cursor: %w", err)
	}
	if len(models) == 0 {
		return 0, nil
	}

	res, err := q.collection.BulkWrite(ctx, models)
	if err != nil {
		return 0, fmt.Errorf("mongo: migrate: bulk write: %w", err)
	}
	return res.ModifiedCount, nil
}
