package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSendBuffer = 16

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var ErrHubClosed = eris.New("realtime hub is closed")

type subscriber struct {
	send chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

// Hub keeps the websocket subscribers of every session and fans messages out
// to them. A subscriber whose buffer is full is dropped instead of blocking
// the publisher.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*subscriber]struct{}
	closed   bool
	buffer   int
	upgrader websocket.Upgrader
}

func NewHub(sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Hub{
		rooms:  make(map[string]map[*subscriber]struct{}),
		buffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Share links are opened from any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Subscribe registers a listener on a session. The returned channel is
// closed by unsubscribe, when the listener falls behind, or on Close.
func (h *Hub) Subscribe(sessionID string) (<-chan []byte, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, nil, ErrHubClosed
	}

	sub := &subscriber{send: make(chan []byte, h.buffer)}
	room, ok := h.rooms[sessionID]
	if !ok {
		room = make(map[*subscriber]struct{})
		h.rooms[sessionID] = room
	}
	room[sub] = struct{}{}

	return sub.send, func() { h.remove(sessionID, sub) }, nil
}

func (h *Hub) remove(sessionID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sessionID, sub)
}

func (h *Hub) removeLocked(sessionID string, sub *subscriber) {
	room, ok := h.rooms[sessionID]
	if !ok {
		return
	}
	if _, ok := room[sub]; !ok {
		return
	}
	delete(room, sub)
	sub.close()
	if len(room) == 0 {
		delete(h.rooms, sessionID)
	}
}

func (h *Hub) Publish(event Event) {
	data, err := encode(event)
	if err != nil {
		log.Error().Err(err).Str("session_id", event.SessionID).Msg("failed to encode realtime event")
		return
	}
	h.Broadcast(event.SessionID, data)
}

// Broadcast sends an already encoded message to every subscriber of a session.
func (h *Hub) Broadcast(sessionID string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.rooms[sessionID] {
		select {
		case sub.send <- data:
		default:
			log.Warn().Str("session_id", sessionID).Msg("dropping slow realtime subscriber")
			h.removeLocked(sessionID, sub)
		}
	}
}

func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionID])
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, room := range h.rooms {
		for sub := range room {
			sub.close()
		}
		delete(h.rooms, id)
	}
}

// ServeSession upgrades the request to a websocket and streams the session's
// events until either side goes away.
func (h *Hub) ServeSession(w http.ResponseWriter, r *http.Request, sessionID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return eris.Wrap(err, "websocket upgrade failed")
	}
	defer conn.Close()

	messages, unsubscribe, err := h.Subscribe(sessionID)
	if err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		return err
	}
	defer unsubscribe()

	done := make(chan struct{})
	go readUntilClosed(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return nil
		case msg, ok := <-messages:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return eris.Wrap(err, "websocket write failed")
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return eris.Wrap(err, "websocket ping failed")
			}
		}
	}
}

// readUntilClosed drains client frames so pongs and close frames are
// processed. Clients are not expected to send anything else.
func readUntilClosed(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
