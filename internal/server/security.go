package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/BrandishReveal_Go/internal/logger"
)

// clientWindow counts one client's activity inside the current rate window
type clientWindow struct {
	start      time.Time
	requests   int
	failedAuth int
}

// ClientGuard tracks request rates and failed API key attempts per client IP.
// Clients are held in a bounded cache so a flood of addresses cannot grow it
// without limit.
type ClientGuard struct {
	mu      sync.Mutex
	clients *expirable.LRU[string, *clientWindow]
	trusted map[string]struct{}
	now     func() time.Time
}

// NewClientGuard creates a guard that honours X-Forwarded-For only from the
// given proxy addresses.
func NewClientGuard(trustedProxies []string) *ClientGuard {
	trusted := make(map[string]struct{}, len(trustedProxies))
	for _, p := range trustedProxies {
		if p = strings.TrimSpace(p); p != "" {
			trusted[p] = struct{}{}
		}
	}
	return &ClientGuard{
		clients: expirable.NewLRU[string, *clientWindow](GuardMaxClients, nil, RateLimitWindow),
		trusted: trusted,
		now:     time.Now,
	}
}

// window returns ip's current window, opening a fresh one when the last has
// run out. Caller must hold mu.
func (g *ClientGuard) window(ip string) *clientWindow {
	now := g.now()
	w, ok := g.clients.Get(ip)
	if !ok || now.Sub(w.start) > RateLimitWindow {
		w = &clientWindow{start: now}
		g.clients.Add(ip, w)
	}
	return w
}

// Allow counts a request from ip and reports whether it is within budget
func (g *ClientGuard) Allow(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	w := g.window(ip)
	w.requests++
	if w.requests <= RateLimitMaxRequests {
		return true
	}
	if w.requests%RateLimitLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", w.requests)
	}
	return false
}

// RecordFailedAuth counts a rejected API key and returns the total in the
// current window
func (g *ClientGuard) RecordFailedAuth(ip string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	w := g.window(ip)
	w.failedAuth++
	if w.failedAuth >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", w.failedAuth)
	}
	return w.failedAuth
}

// counts returns ip's requests and failed auths in the current window
func (g *ClientGuard) counts(ip string) (requests, failedAuth int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if w, ok := g.clients.Peek(ip); ok {
		return w.requests, w.failedAuth
	}
	return 0, 0
}

// ClientIP returns the caller's address. X-Forwarded-For is read only when the
// direct peer is a trusted proxy, and then its rightmost hop wins.
func (g *ClientGuard) ClientIP(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	if _, ok := g.trusted[remoteIP]; !ok {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	if hop := strings.TrimSpace(hops[len(hops)-1]); net.ParseIP(hop) != nil {
		return hop
	}
	return remoteIP
}

// AuthMiddleware requires the X-API-Key header to match apiKey. An empty key
// turns the check off.
func AuthMiddleware(apiKey string, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := guard.ClientIP(r)
			failures := guard.RecordFailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"path", r.URL.Path,
				"has_key", providedKey != "",
				"ip", ip,
				"failures", failures)
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RateLimitMiddleware enforces the per-client request budget. A stream counts
// once, when it connects.
func RateLimitMiddleware(guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.Allow(guard.ClientIP(r)) {
				w.Header().Set(HeaderRetryAfter, RetryAfterSeconds)
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

var securityHeaders = [][2]string{
	{HeaderContentType, HeaderValueNoSniff},
	{HeaderFrameOptions, HeaderValueSameOrigin},
	{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
}

// SecurityHeadersMiddleware sets the fixed response hardening headers
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range securityHeaders {
				w.Header().Set(h[0], h[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
