package websocket

import (
	"encoding/json"

	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/rs/zerolog/log"
)

type userMessage struct {
	userID  string
	payload []byte
}

// Hub maintains the set of active clients and fans exercise events out to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Messages addressed to the subscribers of one user.
	publish chan userMessage

	// A map of user IDs to a set of clients subscribed to them.
	subscriptions map[string]map[*Client]bool

	done chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		publish:       make(chan userMessage, 64),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		done:          make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. All hub state is owned by this goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client, client.UserID)
			log.Info().Int("total_clients", len(h.clients)).Str("user_id", client.UserID).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.publish:
			for client := range h.subscriptions[msg.userID] {
				select {
				case client.Send <- msg.payload:
				default:
					// Slow consumer; drop it rather than stall every other subscriber.
					h.drop(client)
				}
			}
		case <-h.done:
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

// Join registers client. It returns false once the hub has stopped.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters client; it is a no-op once the hub has stopped.
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// Stop ends the processing loop and closes every client's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// PublishExercise sends an exercise.created message to every client subscribed to userID.
func (h *Hub) PublishExercise(userID string, exercise models.LoggedExercise) {
	payload, err := json.Marshal(Message{Action: ActionExerciseCreated, Payload: exercise})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to encode exercise message")
		return
	}
	select {
	case h.publish <- userMessage{userID: userID, payload: payload}:
	case <-h.done:
	default:
		log.Warn().Str("user_id", userID).Msg("Live feed backlog full, dropping exercise message")
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	h.removeSubscription(client)
}

func (h *Hub) addSubscription(client *Client, userID string) {
	if h.subscriptions[userID] == nil {
		h.subscriptions[userID] = make(map[*Client]bool)
	}
	h.subscriptions[userID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.UserID)
		}
	}
}
