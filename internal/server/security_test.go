package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"

	tests := []struct {
		name           string
		configuredKey  string
		providedKey    string
		expectedStatus int
	}{
		{"valid key", apiKey, apiKey, http.StatusOK},
		{"wrong key", apiKey, "wrong-key", http.StatusUnauthorized},
		{"missing key", apiKey, "", http.StatusUnauthorized},
		{"auth disabled", "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(tt.configuredKey, NewClientGuard(nil))(okHandler())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/playback/battles", nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_RecordsFailures(t *testing.T) {
	guard := NewClientGuard(nil)
	h := AuthMiddleware("k", guard)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	_, failed := guard.counts("10.1.1.1")
	assert.Equal(t, 3, failed)
}

func TestRateLimitMiddleware(t *testing.T) {
	guard := NewClientGuard(nil)
	h := RateLimitMiddleware(guard)(okHandler())

	ip := "192.168.1.100"
	req := httptest.NewRequest(http.MethodGet, "/api/v1/playback", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < RateLimitMaxRequests; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d failed with status %d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, RetryAfterSeconds, rec.Header().Get(HeaderRetryAfter))

	requests, _ := guard.counts(ip)
	assert.Equal(t, RateLimitMaxRequests+1, requests)

	other := httptest.NewRequest(http.MethodGet, "/api/v1/playback", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "budgets are per client")
}

func TestClientGuard_WindowResets(t *testing.T) {
	guard := NewClientGuard(nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	guard.now = func() time.Time { return now }

	for i := 0; i < RateLimitMaxRequests; i++ {
		guard.Allow("1.1.1.1")
	}
	assert.False(t, guard.Allow("1.1.1.1"))

	now = now.Add(RateLimitWindow + time.Second)
	assert.True(t, guard.Allow("1.1.1.1"))
	requests, _ := guard.counts("1.1.1.1")
	assert.Equal(t, 1, requests)
}

func TestClientGuard_Bounded(t *testing.T) {
	guard := NewClientGuard(nil)
	for i := 0; i < GuardMaxClients+10; i++ {
		guard.Allow("client-" + strconv.Itoa(i))
	}
	assert.LessOrEqual(t, guard.clients.Len(), GuardMaxClients)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   []string
		want      string
	}{
		{"direct", "1.2.3.4:80", "", nil, "1.2.3.4"},
		{"untrusted forwarder is ignored", "1.2.3.4:80", "9.9.9.9", nil, "1.2.3.4"},
		{"trusted proxy", "10.0.0.1:80", "9.9.9.9, 8.8.8.8", []string{"10.0.0.1"}, "8.8.8.8"},
		{"trusted proxy without header", "10.0.0.1:80", "", []string{" 10.0.0.1 "}, "10.0.0.1"},
		{"trusted proxy with junk hop", "10.0.0.1:80", "9.9.9.9, not-an-ip", []string{"10.0.0.1"}, "10.0.0.1"},
		{"unparseable remote", "garbage", "", nil, "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, NewClientGuard(tt.trusted).ClientIP(req))
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	h := RequestSizeLimitMiddleware(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 16)
		if _, err := r.Body.Read(buf); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too long"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
