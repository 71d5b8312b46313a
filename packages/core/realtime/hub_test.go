package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) Event {
	t.Helper()
	select {
	case data, ok := <-ch:
		require.True(t, ok, "channel closed")
		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubPublishIsScopedToSession(t *testing.T) {
	hub := NewHub(4)
	a, unsubA, err := hub.Subscribe("a")
	require.NoError(t, err)
	defer unsubA()
	b, unsubB, err := hub.Subscribe("b")
	require.NoError(t, err)
	defer unsubB()

	hub.Publish(NewEvent(EventRosterUpdated, "a", map[string]int{"players": 3}))

	ev := receive(t, a)
	assert.Equal(t, EventRosterUpdated, ev.Type)
	assert.Equal(t, "a", ev.SessionID)
	assert.Empty(t, b)
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	hub := NewHub(1)
	ch, unsub, err := hub.Subscribe("s")
	require.NoError(t, err)
	defer unsub()

	hub.Broadcast("s", []byte(`{}`))
	hub.Broadcast("s", []byte(`{}`))

	assert.Equal(t, 0, hub.SubscriberCount("s"))
	<-ch
	_, ok := <-ch
	assert.False(t, ok)
}

func TestHubUnsubscribeAndClose(t *testing.T) {
	hub := NewHub(0)
	_, unsub, err := hub.Subscribe("s")
	require.NoError(t, err)
	assert.Equal(t, 1, hub.SubscriberCount("s"))
	unsub()
	unsub()
	assert.Equal(t, 0, hub.SubscriberCount("s"))

	ch, _, err := hub.Subscribe("s")
	require.NoError(t, err)
	hub.Close()
	_, ok := <-ch
	assert.False(t, ok)

	_, _, err = hub.Subscribe("s")
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestServeSessionStreamsEvents(t *testing.T) {
	hub := NewHub(4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeSession(w, r, "court-night")
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.SubscriberCount("court-night") == 1 },
		2*time.Second, 10*time.Millisecond)

	hub.Publish(NewEvent(EventGameCompleted, "court-night", nil))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	mt, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, mt)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, EventGameCompleted, ev.Type)
}
