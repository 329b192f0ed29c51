package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMongoStore connects to MONGO_TEST_URI; the tests are skipped without it.
func newTestMongoStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := fmt.Sprintf("exercise_tracker_test_%d", time.Now().UnixNano())
	s, err := NewMongoStore(ctx, uri, dbName)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.client.Database(dbName).Drop(context.Background())
		_ = s.Close()
	})
	return s
}

func TestMongoStoreUsersAndExercises(t *testing.T) {
	s := newTestMongoStore(t)
	ctx := context.Background()

	ivan := models.User{Username: "ivan"}
	require.NoError(t, s.InsertUser(ctx, &ivan))
	assert.Len(t, ivan.ID, 24)
	assert.ErrorIs(t, s.InsertUser(ctx, &models.User{Username: "ivan"}), ErrDuplicate)

	got, err := s.FindUserByID(ctx, ivan.ID)
	require.NoError(t, err)
	assert.Equal(t, ivan, got)

	_, err = s.FindUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindUserByID(ctx, "not-an-object-id")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	for _, d := range []time.Time{day(2023, 1, 1), day(2023, 1, 5), day(2023, 1, 10)} {
		require.NoError(t, s.InsertExercise(ctx, &models.Exercise{UserID: ivan.ID, Description: "run", Duration: 30, Date: d}))
	}

	ranged, err := s.FindExercises(ctx, ExerciseFilter{UserID: ivan.ID, From: day(2023, 1, 5), To: day(2023, 1, 10)})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	limited, err := s.FindExercises(ctx, ExerciseFilter{UserID: ivan.ID, From: time.UnixMilli(0), To: day(2030, 1, 1), Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Sun Jan 01 2023", limited[0].CalendarDate())

	assert.NoError(t, s.Maintain(ctx))
}
