package ws

import (
	"github.com/google/uuid"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) ApplicationReceived(userID, courseID uuid.UUID) {
	evt, err := NewEvent(EventTypeApplicationReceived, ApplicationPayload{CourseID: courseID})
	if err != nil {
		n.hub.log.WithError(err).Error("ws notifier: marshal error")
		return
	}
	n.hub.SendToUser(userID, evt)
}

func (n *HubNotifier) StatusChanged(userID uuid.UUID, status string) {
	evt, err := NewEvent(EventTypeStatusChanged, StatusPayload{Status: status})
	if err != nil {
		n.hub.log.WithError(err).Error("ws notifier: marshal error")
		return
	}
	n.hub.SendToUser(userID, evt)
}
