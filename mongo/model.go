package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ridgepath/mq"
)

// record is the on-disk representation of a single queue document.
//
// ack and debounce are pointers so that omitempty excludes them from the
// stored document entirely when unset. That absence is load-bearing:
// the ack-uniqueness index is sparse, and the debounce upsert filter
// relies on MongoDB treating a missing field as matching a null query
// (see pusher.go), so a zero-value string would not behave the same.
type record struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Payload  any                `bson:"payload"`
	Visible  time.Time          `bson:"visible"`
	Ack      *string            `bson:"ack,omitempty"`
	Tries    int64              `bson:"tries"`
	Deleted  *time.Time         `bson:"deleted,omitempty"`
	Debounce *string            `bson:"debounce,omitempty"`
}

func (r *record) toClaim() *mq.Claim {
	var ack string
	if r.Ack != nil {
		ack = *r.Ack
	}
	return &mq.Claim{
		ID:      r.ID.Hex(),
		Ack:     ack,
		Payload: r.Payload,
		Tries:   r.Tries,
	}
}

// legacyRecord decodes only the fields migrate.go needs to detect and
// rewrite documents written before visible/deleted were native
// timestamps.
type legacyRecord struct {
	ID      primitive.ObjectID `bson:"_id"`
	Visible any                `bson:"visible"`
	Deleted any                `bson:"deleted"`
}
