package ws

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hub tracks active WebSocket clients and delivers per-user events. An
// applicant only ever sees their own admission workflow, so delivery is
// keyed by user, not by any shared topic.
type Hub struct {
	// clients maps userID → client. One connection per user; a newer
	// connection replaces the previous one.
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	deliver    chan *userMsg

	log *logrus.Logger
}

type userMsg struct {
	userID uuid.UUID
	data   []byte
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan *userMsg, 256),
		log:        log,
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			// The replaced client's pumps may still be mid-read, so its
			// send channel stays open; done is the only shutdown signal
			// and only this loop closes it, exactly once per client.
			if old, ok := h.clients[client.userID]; ok {
				close(old.done)
			}
			h.clients[client.userID] = client
			h.log.WithField("user_id", client.userID).Debugf("ws hub: connected (%d total)", len(h.clients))

		case client := <-h.unregister:
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.done)
				h.log.WithField("user_id", client.userID).Debugf("ws hub: disconnected (%d total)", len(h.clients))
			}

		case msg := <-h.deliver:
			client, ok := h.clients[msg.userID]
			if !ok {
				continue
			}
			select {
			case client.send <- msg.data:
			default:
				// Client buffer full - disconnect
				delete(h.clients, client.userID)
				close(client.done)
			}
		}
	}
}

// SendToUser queues an event for a specific user's connection, if any.
func (h *Hub) SendToUser(userID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).Error("ws hub: marshal error")
		return
	}
	select {
	case h.deliver <- &userMsg{userID: userID, data: data}:
	default:
	}
}
