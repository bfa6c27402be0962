package sse

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Handler returns an HTTP handler for SSE connections. Clients may narrow the
// stream with ?types=a,b and ?session=<id>.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		q := r.URL.Query()
		filter := NewFilter(q.Get(QueryParamTypes), q.Get(QueryParamSession))

		client := hub.Register(filter)
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"session_id", filter.SessionID,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		write := func(e Event) bool {
			msg, err := FormatSSEMessage(e)
			if err != nil {
				slog.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				slog.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		if !write(connectedEvent(client)) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					return
				}
				if !write(event) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}

func connectedEvent(client *Client) Event {
	types := make([]string, 0, len(client.Filter.Types))
	for t := range client.Filter.Types {
		types = append(types, t)
	}
	return Event{
		ID:        uuid.New().String(),
		Type:      EventTypeConnected,
		SessionID: client.Filter.SessionID,
		Timestamp: time.Now().Unix(),
		Payload: map[string]interface{}{
			"client_id": client.ID,
			"filters":   types,
		},
	}
}
