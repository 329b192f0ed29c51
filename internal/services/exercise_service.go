package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/exercise-tracker-be/internal/metrics"
	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/isdelr/exercise-tracker-be/internal/store"
	"github.com/rs/zerolog/log"
)

// ExerciseInput carries the raw form fields of a new exercise.
type ExerciseInput struct {
	Description string
	Duration    string
	Date        string // Optional; blank means now
}

// ExerciseNotifier is told about every exercise once it is stored.
type ExerciseNotifier interface {
	PublishExercise(userID string, exercise models.LoggedExercise)
}

// ExerciseServiceProvider defines the interface for exercise services.
type ExerciseServiceProvider interface {
	AddExercise(ctx context.Context, userID string, input ExerciseInput) (models.LoggedExercise, error)
}

// ExerciseService appends exercises to existing users.
type ExerciseService struct {
	store    store.Store
	notifier ExerciseNotifier
	now      func() time.Time
}

// NewExerciseService creates a new ExerciseService. notifier may be nil.
func NewExerciseService(s store.Store, notifier ExerciseNotifier) *ExerciseService {
	return &ExerciseService{store: s, notifier: notifier, now: time.Now}
}

// AddExercise stores a new exercise for userID and returns it merged with the user.
func (s *ExerciseService) AddExercise(ctx context.Context, userID string, input ExerciseInput) (models.LoggedExercise, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.LoggedExercise{}, ErrUserNotFound
		}
		return models.LoggedExercise{}, err
	}

	duration, ok := parseDuration(input.Duration)
	if !ok {
		return models.LoggedExercise{}, fmt.Errorf("%w: duration %q is not a number", ErrInvalidInput, input.Duration)
	}

	date := s.now().UTC()
	if input.Date != "" {
		parsed, ok := ParseDate(input.Date)
		if !ok {
			return models.LoggedExercise{}, fmt.Errorf("%w: date %q is not a valid date", ErrInvalidInput, input.Date)
		}
		date = parsed
	}

	exercise := models.Exercise{
		UserID:      user.ID,
		Description: input.Description,
		Duration:    duration,
		Date:        date,
	}
	if err := s.store.InsertExercise(ctx, &exercise); err != nil {
		return models.LoggedExercise{}, err
	}
	metrics.RecordExerciseLogged()

	logged := models.LoggedExercise{
		ID:          user.ID,
		Username:    user.Username,
		Date:        exercise.CalendarDate(),
		Duration:    exercise.Duration,
		Description: exercise.Description,
	}
	if s.notifier != nil {
		s.notifier.PublishExercise(user.ID, logged)
	}
	log.Debug().Str("user_id", user.ID).Str("exercise_id", exercise.ID).Msg("Exercise logged")
	return logged, nil
}
