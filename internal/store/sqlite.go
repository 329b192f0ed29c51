package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/exercise-tracker-be/internal/models"
)

// SQLStore keeps documents in SQLite tables.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an open, migrated database.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// ListUsers retrieves every user in insertion order.
func (s *SQLStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, username FROM users ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindUserByID retrieves a single user by its ID.
func (s *SQLStore) FindUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, username FROM users WHERE id = ?", id)
	return scanUser(row)
}

// FindUserByUsername retrieves a single user by exact username.
func (s *SQLStore) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, username FROM users WHERE username = ?", username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// InsertUser saves a new user under a fresh UUID.
func (s *SQLStore) InsertUser(ctx context.Context, user *models.User) error {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, "INSERT INTO users (id, username) VALUES (?, ?)", id, user.Username)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

// InsertExercise saves a new exercise under a fresh UUID.
func (s *SQLStore) InsertExercise(ctx context.Context, exercise *models.Exercise) error {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO exercises (id, user_id, description, duration, date_ms) VALUES (?, ?, ?, ?, ?)",
		id, exercise.UserID, exercise.Description, exercise.Duration, exercise.Date.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert exercise: %w", err)
	}
	exercise.ID = id
	return nil
}

// FindExercises retrieves a user's exercises within the filter's inclusive date range.
func (s *SQLStore) FindExercises(ctx context.Context, filter ExerciseFilter) ([]models.Exercise, error) {
	query := `
		SELECT id, user_id, description, duration, date_ms
		FROM exercises
		WHERE user_id = ? AND date_ms >= ? AND date_ms <= ?
		ORDER BY rowid`
	args := []interface{}{filter.UserID, filter.From.UnixMilli(), filter.To.UnixMilli()}
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		var (
			exercise models.Exercise
			dateMs   int64
		)
		if err := rows.Scan(&exercise.ID, &exercise.UserID, &exercise.Description, &exercise.Duration, &dateMs); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercise.Date = time.UnixMilli(dateMs).UTC()
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}
	return exercises, nil
}

// Ping verifies the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Maintain lets SQLite refresh its query planner statistics.
func (s *SQLStore) Maintain(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "PRAGMA optimize")
	return err
}

// Close releases the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var (
	_ Store      = (*SQLStore)(nil)
	_ Maintainer = (*SQLStore)(nil)
)
