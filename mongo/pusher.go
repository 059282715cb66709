package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/ridgepath/mq"
	"github.com/ridgepath/mq/message"
)

const debouncedSentinel = "(debounced)"

// Add persists each payload as a new document, or — when Debounce is
// set — upserts against any live Pending/Delayed document sharing that
// debounce key. All payloads in a call are written via a single
// BulkWrite.
//
// The filter {"ack": nil, "deleted": nil, "debounce": key} relies on a
// MongoDB quirk that is exactly the semantics wanted here: querying a
// field for null matches documents where the field is explicitly null
// *and* documents where the field is absent. Since ack and deleted are
// stored with omitempty, a never-claimed, never-acked document has
// neither field at all, and still matches.
func (q *Queue) Add(ctx context.Context, payloads []any, opts *mq.AddOptions) ([]string, error) {
	if len(payloads) == 0 {
		return nil, mq.ErrConfig
	}

	delay := q.opts.Delay
	debounce := ""
	if opts != nil {
		if opts.Delay != nil {
			delay = *opts.Delay
		}
		debounce = opts.Debounce
	}
	visible := time.Now().Add(delay)

	models := make([]driver.WriteModel, len(payloads))
	preassigned := make([]primitive.ObjectID, len(payloads))
	for i, payload := range payloads {
		if debounce == "" {
			id := primitive.NewObjectID()
			preassigned[i] = id
			models[i] = driver.NewInsertOneModel().SetDocument(&record{
				ID:      id,
				Payload: payload,
				Visible: visible,
				Tries:   0,
			})
			continue
		}
		filter := bson.M{"ack": nil, "deleted": nil, "debounce": debounce}
		update := bson.M{
			"$set": bson.M{"visible": visible, "payload": payload},
			"$setOnInsert": bson.M{
				"tries":    int64(0),
				"debounce": debounce,
			},
		}
		models[i] = driver.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true)
	}

	result, err := q.collection.BulkWrite(ctx, models)
	if err != nil {
		return nil, fmt.Errorf("mongo: add: %w", err)
	}

	ids := make([]string, len(payloads))
	for i := range payloads {
		if preassigned[i] != primitive.NilObjectID {
			ids[i] = preassigned[i].Hex()
			continue
		}
		if upserted, ok := result.UpsertedIDs[int64(i)]; ok {
			if oid, ok := upserted.(primitive.ObjectID); ok {
				ids[i] = oid.Hex()
				continue
			}
		}
		ids[i] = debouncedSentinel
	}
	return ids, nil
}

// AddOne wraps msg's payload in a one-element Add call and unwraps the
// single returned id.
func (q *Queue) AddOne(ctx context.Context, msg *message.Message, opts *mq.AddOptions) (string, error) {
	if msg == nil {
		return "", mq.ErrConfig
	}
	ids, err := q.Add(ctx, []any{msg.Payload}, opts)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}
