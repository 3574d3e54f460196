package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Lifecycle message types pushed as an evaluation progresses
const (
	MsgAnalysisStarted  MessageType = "analysis_started"
	MsgAnalysisComplete MessageType = "analysis_complete"
	MsgAnalysisFailed   MessageType = "analysis_failed"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per user. A user may hold several
// connections (multiple tabs or devices); events go to all of them.
type Hub struct {
	conns map[string]map[*Connection]bool // userID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	send       chan *userMessage

	log *logrus.Entry
}

// Connection represents one WebSocket connection for a user
type Connection struct {
	UserID string
	Send   chan []byte
	Hub    *Hub
}

type userMessage struct {
	UserID  string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub(log *logrus.Entry) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		send:       make(chan *userMessage, 256),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.UserID] == nil {
				h.conns[conn.UserID] = make(map[*Connection]bool)
			}
			h.conns[conn.UserID][conn] = true
			h.mu.Unlock()
			h.log.WithField("user_id", conn.UserID).Debug("websocket connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if users, ok := h.conns[conn.UserID]; ok && users[conn] {
				delete(users, conn)
				close(conn.Send)
				if len(users) == 0 {
					delete(h.conns, conn.UserID)
				}
			}
			h.mu.Unlock()
			h.log.WithField("user_id", conn.UserID).Debug("websocket disconnected")

		case msg := <-h.send:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.UserID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// NotifyUser pushes an event to all of a user's connections (implements
// service.Notifier). Users with no open connection simply miss the push;
// polling remains the source of truth.
func (h *Hub) NotifyUser(userID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.WithField("event", event).WithField("error", err.Error()).
			Warn("failed to marshal websocket payload")
		return
	}
	h.send <- &userMessage{
		UserID: userID,
		Message: &Message{
			Type:    MessageType(event),
			Payload: data,
		},
	}
}
