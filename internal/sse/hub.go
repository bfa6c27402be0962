package sse

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event represents an event sent to stream clients
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	AtMs      float64     `json:"at_ms,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Filter selects which events a client receives
type Filter struct {
	Types     map[string]bool // nil means all types
	SessionID string          // empty means every session
}

// NewFilter builds a filter from a comma separated type list and a session id
func NewFilter(types, sessionID string) Filter {
	f := Filter{SessionID: sessionID}
	for _, t := range strings.Split(types, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if f.Types == nil {
			f.Types = make(map[string]bool)
		}
		f.Types[t] = true
	}
	return f
}

// Match reports whether e passes the filter
func (f Filter) Match(e Event) bool {
	if f.Types != nil && !f.Types[e.Type] {
		return false
	}
	return f.SessionID == "" || f.SessionID == e.SessionID
}

// Client represents a connected stream client
type Client struct {
	ID           string
	EventChannel chan Event
	Filter       Filter
}

// Hub manages stream client connections and event broadcasting
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop shuts the hub down and closes every client channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.EventChannel)
				delete(h.clients, clientID)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if !client.Filter.Match(event) {
					continue
				}
				select {
				case client.EventChannel <- event:
				default:
					slog.Debug(LogMsgClientLagging, "client_id", client.ID, "type", event.Type)
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a new client to the hub. The client is attached once the hub
// loop picks it up.
func (h *Hub) Register(filter Filter) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
		Filter:       filter,
	}

	select {
	case h.register <- client:
	case <-h.shutdown:
		close(client.EventChannel)
	}
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast sends an event to all interested clients. It never blocks; when
// the broadcast buffer is full the event is dropped.
func (h *Hub) Broadcast(event Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	select {
	case h.broadcast <- event:
	default:
		slog.Warn(LogMsgEventDropped, "type", event.Type)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an event for transmission
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	// "id: <id>\nevent: <type>\ndata: <json>\n\n"
	msg := "id: " + event.ID + "\n"
	msg += "event: " + event.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}
