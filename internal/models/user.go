package models

// User represents a registered person whose exercises are tracked.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}
