package services

import (
	"context"
	"errors"
	"time"

	"github.com/isdelr/exercise-tracker-be/internal/metrics"
	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/isdelr/exercise-tracker-be/internal/store"
)

// LogQuery carries the raw query parameters of a log request. All fields are optional.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// LogServiceProvider defines the interface for log query services.
type LogServiceProvider interface {
	GetLog(ctx context.Context, userID string, query LogQuery) (models.ExerciseLog, error)
}

// LogService builds filtered exercise logs.
type LogService struct {
	store store.Store
	now   func() time.Time
}

// NewLogService creates a new LogService.
func NewLogService(s store.Store) *LogService {
	return &LogService{store: s, now: time.Now}
}

// GetLog returns userID's exercises dated within [from, to], capped at limit.
// A missing or unparseable from is the epoch; a missing or unparseable to is now.
func (s *LogService) GetLog(ctx context.Context, userID string, query LogQuery) (models.ExerciseLog, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ExerciseLog{}, ErrUserNotFound
		}
		return models.ExerciseLog{}, err
	}

	from, ok := ParseDate(query.From)
	if !ok {
		from = time.UnixMilli(0).UTC()
	}
	to, ok := ParseDate(query.To)
	if !ok {
		to = s.now().UTC()
	}

	exercises, err := s.store.FindExercises(ctx, store.ExerciseFilter{
		UserID: user.ID,
		From:   from,
		To:     to,
		Limit:  ParseLimit(query.Limit),
	})
	if err != nil {
		return models.ExerciseLog{}, err
	}

	entries := make([]models.ExerciseEntry, 0, len(exercises))
	for _, e := range exercises {
		entries = append(entries, models.NewExerciseEntry(e))
	}
	metrics.RecordLogQuery(len(entries))

	return models.ExerciseLog{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(entries),
		Log:      entries,
	}, nil
}
