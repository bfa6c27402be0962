package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert messages
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "SECURITY ALERT: Blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgServerStopping   = "Server stopping"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderRequestID      = "X-Request-ID"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderRetryAfter     = "Retry-After"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Limits
const (
	MaxRequestBodyBytes      = 1 << 20
	ReadHeaderTimeout        = 5 * time.Second
	RateLimitWindow          = 5 * time.Minute
	RateLimitMaxRequests     = 1000
	RateLimitLogEvery        = 100
	FailedAuthAlertThreshold = 5
	GuardMaxClients          = 10000
	RetryAfterSeconds        = "60"
)

// Paths whose requests are not logged
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/swagger/",
}

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"
