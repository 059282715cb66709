package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/ridgepath/mq/mongo"
)

// newTestCollection connects to the deployment named by MQ_TEST_MONGO_URI
// and returns its mq_test database together with a fresh, uniquely named
// collection for the test to use; the collection is dropped when the test
// finishes.
//
// Unlike the teacher's sqlite helper, there is no in-process MongoDB to
// spin up, so tests that need a live server skip instead of failing
// when the environment variable is unset.
func newTestCollection(t *testing.T) (*driver.Database, string) {
	t.Helper()
	uri := os.Getenv("MQ_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MQ_TEST_MONGO_URI not set, skipping mongo integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, uri)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	db := client.Database("mq_test")
	name := "queue_" + uuid.NewString()
	t.Cleanup(func() {
		_ = db.Collection(name).Drop(context.Background())
	})
	return db, name
}
