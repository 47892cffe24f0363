package repository

import (
	"context"
	"os"
	"testing"
	"time"

	bookingserrors "dinebook/internal/bookings/errors"
	"dinebook/pkg/client"
	"dinebook/pkg/config"
	"dinebook/pkg/logger"
	"dinebook/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoTestTimeout = 10 * time.Second

// newMongoTestRepository connects to MONGO_URI and returns a repository on a
// throwaway database carrying the unique slot_key index. It skips the test
// when no server is configured.
func newMongoTestRepository(t *testing.T) (BookingRepository, *mongo.Collection) {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTestTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := mc.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	dbName := "dinebook_test_" + uuid.NewString()[:8]
	coll := mc.Database(dbName).Collection(CollectionName)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slot_key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), mongoTestTimeout)
		defer cancel()
		if err := mc.Database(dbName).Drop(ctx); err != nil {
			t.Logf("warning: failed to drop %s: %v", dbName, err)
		}
		if err := mc.Disconnect(ctx); err != nil {
			t.Logf("warning: failed to disconnect from MongoDB: %v", err)
		}
	})

	cfg := &config.Config{
		MongoDatabaseName: dbName,
		ReadTimeout:       mongoTestTimeout,
		WriteTimeout:      mongoTestTimeout,
		Log:               logger.Discard(),
		Client:            &client.Client{Mongo: mc},
	}
	return NewMongoBookingRepository(cfg), coll
}

func TestMongoRepository_CreateClaimsSlot(t *testing.T) {
	repo, _ := newMongoTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.Create(ctx, booking("a", 20, "19:00", now)))

	err := repo.Create(ctx, booking("b", 20, "19:00", now))
	assert.ErrorIs(t, err, bookingserrors.ErrSlotTaken)

	require.NoError(t, repo.Create(ctx, booking("c", 20, "19:30", now)))
}

func TestMongoRepository_FindBySlot(t *testing.T) {
	repo, coll := newMongoTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.Create(ctx, booking("a", 20, "19:00", now)))

	evening := time.Date(2025, time.December, 20, 21, 15, 0, 0, time.UTC)
	found, err := repo.FindBySlot(ctx, evening, "19:00")
	require.NoError(t, err)
	assert.Equal(t, "a", found.BookingID)
	assert.Equal(t, "2025-12-20|19:00", found.SlotKey)

	_, err = repo.FindBySlot(ctx, evening, "20:00")
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)

	cancelled := booking("x", 21, "18:00", now)
	cancelled.Status = model.StatusCancelled
	cancelled.SlotKey = "cancelled-x"
	_, err = coll.InsertOne(ctx, cancelled)
	require.NoError(t, err)

	_, err = repo.FindBySlot(ctx, cancelled.BookingDate, "18:00")
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)
}

func TestMongoRepository_ListByDay(t *testing.T) {
	repo, _ := newMongoTestRepository(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.Create(ctx, booking("before", 19, "23:00", base)))
	require.NoError(t, repo.Create(ctx, booking("early", 20, "12:00", base.Add(time.Second))))
	require.NoError(t, repo.Create(ctx, booking("late", 20, "22:00", base.Add(2*time.Second))))
	require.NoError(t, repo.Create(ctx, booking("after", 21, "00:00", base.Add(3*time.Second))))

	day := time.Date(2025, time.December, 20, 15, 0, 0, 0, time.UTC)
	list, err := repo.List(ctx, &day)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "late", list[0].BookingID)
	assert.Equal(t, "early", list[1].BookingID)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "after", all[0].BookingID)
}

func TestMongoRepository_Delete(t *testing.T) {
	repo, _ := newMongoTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.Create(ctx, booking("a", 20, "19:00", now)))

	deleted, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", deleted.BookingID)

	_, err = repo.Delete(ctx, "a")
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)

	require.NoError(t, repo.Create(ctx, booking("b", 20, "19:00", now)))
}
