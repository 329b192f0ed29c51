package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected message %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubRoutesExercisesToSubscribers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	ivan := NewClient(nil, "u1")
	ivanTab := NewClient(nil, "u1")
	maria := NewClient(nil, "u2")
	require.True(t, hub.Join(ivan))
	require.True(t, hub.Join(ivanTab))
	require.True(t, hub.Join(maria))

	exercise := models.LoggedExercise{ID: "u1", Username: "ivan", Date: "Sun Jan 01 2023", Duration: 30, Description: "run"}
	hub.PublishExercise("u1", exercise)

	for _, c := range []*Client{ivan, ivanTab} {
		var msg struct {
			Action  string                `json:"action"`
			Payload models.LoggedExercise `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(receive(t, c), &msg))
		assert.Equal(t, ActionExerciseCreated, msg.Action)
		assert.Equal(t, exercise, msg.Payload)
	}
	assertSilent(t, maria)
}

func TestHubLeaveClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	c := NewClient(nil, "u1")
	require.True(t, hub.Join(c))
	hub.Leave(c)

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("send channel not closed")
	}

	// Publishing to a user without subscribers is harmless.
	hub.PublishExercise("u1", models.LoggedExercise{})
}

func TestHubStop(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	c := NewClient(nil, "u1")
	require.True(t, hub.Join(c))
	hub.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	_, ok := <-c.Send
	assert.False(t, ok)

	assert.False(t, hub.Join(NewClient(nil, "u2")))
	hub.Leave(c)
	hub.PublishExercise("u1", models.LoggedExercise{})
}
