package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 256

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 128

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// Connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to websocket connections
	WriteTimeout = 10 * time.Second

	// PongWait is how long a websocket peer may stay silent
	PongWait = 60 * time.Second
)

// Control event types
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Query parameters accepted by the stream handlers
const (
	QueryParamTypes   = "types"
	QueryParamSession = "session"
)

// Log messages
const (
	LogMsgClientConnected    = "Stream client connected"
	LogMsgClientDisconnected = "Stream client disconnected"
	LogMsgEventDropped       = "Broadcast buffer full, event dropped"
	LogMsgClientLagging      = "Client buffer full, event skipped"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgUpgradeFailed      = "Websocket upgrade failed"
	LogMsgSubscriberReady    = "Stream subscriber registered for playback events"
)

// Error messages
const (
	ErrMsgStreamingUnsupported = "streaming not supported"
)
