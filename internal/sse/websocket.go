package sse

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler streams hub events over a websocket, one JSON message per event.
// It accepts the same filters as Handler.
func WSHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := NewFilter(q.Get(QueryParamTypes), q.Get(QueryParamSession))

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}
		defer conn.Close()

		client := hub.Register(filter)
		slog.Info(LogMsgClientConnected, "client_id", client.ID, "transport", "websocket")
		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID, "transport", "websocket")
		}()

		// Spectators never send anything meaningful; reading only services
		// control frames and notices the peer going away.
		gone := make(chan struct{})
		_ = conn.SetReadDeadline(time.Now().Add(PongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(PongWait))
		})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		write := func(e Event) bool {
			_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
			if err := conn.WriteJSON(e); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					slog.Warn(LogMsgWriteError, "error", err)
				}
				return false
			}
			return true
		}

		if !write(connectedEvent(client)) {
			return
		}

		ping := time.NewTicker(KeepaliveInterval)
		defer ping.Stop()

		for {
			select {
			case <-gone:
				return
			case <-r.Context().Done():
				return
			case event, ok := <-client.EventChannel:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
						time.Now().Add(WriteTimeout))
					return
				}
				if !write(event) {
					return
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
					return
				}
			}
		}
	}
}
