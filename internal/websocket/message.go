package websocket

// ActionExerciseCreated is sent to a user's subscribers after an exercise is stored.
const ActionExerciseCreated = "exercise.created"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}
