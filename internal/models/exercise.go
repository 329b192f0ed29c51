package models

import "time"

// CalendarLayout renders a date without time-of-day, e.g. "Sun Jan 01 2023".
const CalendarLayout = "Mon Jan 02 2006"

// Exercise is a single logged activity belonging to a user.
type Exercise struct {
	ID          string    `json:"-"`
	UserID      string    `json:"-"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"` // minutes
	Date        time.Time `json:"-"`
}

// CalendarDate formats the exercise date in UTC using CalendarLayout.
func (e Exercise) CalendarDate() string {
	return e.Date.UTC().Format(CalendarLayout)
}

// ExerciseEntry is the output shape of an exercise inside a log.
type ExerciseEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// NewExerciseEntry reshapes an exercise for output.
func NewExerciseEntry(e Exercise) ExerciseEntry {
	return ExerciseEntry{
		Description: e.Description,
		Duration:    e.Duration,
		Date:        e.CalendarDate(),
	}
}

// LoggedExercise is returned after an exercise has been added for a user.
type LoggedExercise struct {
	ID          string  `json:"_id"`
	Username    string  `json:"username"`
	Date        string  `json:"date"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

// ExerciseLog is a user's filtered exercise history.
type ExerciseLog struct {
	ID       string          `json:"_id"`
	Username string          `json:"username"`
	Count    int             `json:"count"`
	Log      []ExerciseEntry `json:"log"`
}
