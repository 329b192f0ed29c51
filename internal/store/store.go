// Package store is the document store holding users and their exercises.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/isdelr/exercise-tracker-be/internal/models"
)

var (
	// ErrNotFound is returned by single-record lookups that match nothing.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("store: duplicate key")
)

// ExerciseFilter selects a user's exercises whose date lies in [From, To].
// A Limit of zero means no cap.
type ExerciseFilter struct {
	UserID string
	From   time.Time
	To     time.Time
	Limit  int
}

// Store is the persistence contract the services depend on.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// InsertUser assigns user.ID.
	InsertUser(ctx context.Context, user *models.User) error
	// InsertExercise assigns exercise.ID.
	InsertExercise(ctx context.Context, exercise *models.Exercise) error
	// FindExercises returns matches in insertion order.
	FindExercises(ctx context.Context, filter ExerciseFilter) ([]models.Exercise, error)
	Ping(ctx context.Context) error
	Close() error
}

// Maintainer is implemented by backends that support periodic housekeeping.
type Maintainer interface {
	Maintain(ctx context.Context) error
}
