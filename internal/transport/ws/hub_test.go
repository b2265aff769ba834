package ws

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	hub := NewHub(log)
	go hub.Run()
	return hub
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var evt Event
		require.NoError(t, json.Unmarshal(data, &evt))
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func isDone(c *Client) bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func TestHub_DeliversToRegisteredUser(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.register <- client

	evt, err := NewEvent(EventTypeStatusChanged, StatusPayload{Status: "Under Review"})
	require.NoError(t, err)
	hub.SendToUser(userID, evt)

	got := receive(t, client)
	assert.Equal(t, EventTypeStatusChanged, got.Type)

	var payload StatusPayload
	require.NoError(t, json.Unmarshal(got.Payload, &payload))
	assert.Equal(t, "Under Review", payload.Status)

	// Events for users with no connection are dropped without blocking.
	hub.SendToUser(uuid.New(), evt)
}

func TestHub_ReplacementShutsDownOldConnection(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()

	old := NewClient(hub, nil, userID)
	hub.register <- old
	replacement := NewClient(hub, nil, userID)
	hub.register <- replacement

	require.Eventually(t, func() bool { return isDone(old) }, time.Second, 10*time.Millisecond)
	assert.False(t, isDone(replacement))

	// The old connection's read pump can still be mid-read when it is
	// replaced; a late keepalive reply must not bring the process down.
	assert.NotPanics(t, func() { old.sendPong() })

	// Nor may the old connection's eventual unregister evict its successor.
	hub.unregister <- old

	evt, err := NewEvent(EventTypeApplicationReceived, ApplicationPayload{CourseID: uuid.New()})
	require.NoError(t, err)
	hub.SendToUser(userID, evt)
	got := receive(t, replacement)
	assert.Equal(t, EventTypeApplicationReceived, got.Type)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.register <- client

	for i := 0; i < sendBufSize; i++ {
		client.send <- []byte(`{}`)
	}

	evt, err := NewEvent(EventTypeStatusChanged, StatusPayload{Status: "Under Review"})
	require.NoError(t, err)
	hub.SendToUser(userID, evt)

	require.Eventually(t, func() bool { return isDone(client) }, time.Second, 10*time.Millisecond)
}

func TestHubNotifier_BuildsApplicationEvents(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.register <- client

	notifier := NewHubNotifier(hub)
	courseID := uuid.New()

	notifier.ApplicationReceived(userID, courseID)
	got := receive(t, client)
	assert.Equal(t, EventTypeApplicationReceived, got.Type)
	var app ApplicationPayload
	require.NoError(t, json.Unmarshal(got.Payload, &app))
	assert.Equal(t, courseID, app.CourseID)

	notifier.StatusChanged(userID, "Under Review")
	got = receive(t, client)
	assert.Equal(t, EventTypeStatusChanged, got.Type)
}
