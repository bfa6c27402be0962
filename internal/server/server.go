package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// registers the API description served under /swagger
	_ "github.com/osse101/BrandishReveal_Go/docs"

	"github.com/osse101/BrandishReveal_Go/internal/catalog"
	"github.com/osse101/BrandishReveal_Go/internal/handler"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
	"github.com/osse101/BrandishReveal_Go/internal/metrics"
	"github.com/osse101/BrandishReveal_Go/internal/sse"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	ServiceName    string
	APIKey         string
	TrustedProxies []string
}

// Deps are the services the routes call into
type Deps struct {
	Sessions handler.Sessions
	Catalog  catalog.ItemCatalog
	// Boxes is optional; without it /boxes is not routed
	Boxes handler.BoxLister
	Hub   *sse.Hub
	// Ready lists the dependencies /readyz pings
	Ready []handler.Pinger
}

// Server is the playback HTTP service
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", opts.Port),
			Handler: NewRouter(opts, deps),
			// no write timeout: event streams stay open
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree. Spectator reads are public; starting and
// stopping playback needs the API key.
func NewRouter(opts Options, deps Deps) http.Handler {
	r := chi.NewRouter()
	guard := NewClientGuard(opts.TrustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(guard))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Ready...))
	r.Get("/version", handler.HandleVersion(opts.ServiceName))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	playback := handler.NewPlaybackHandler(deps.Sessions)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/playback", func(r chi.Router) {
			r.Get("/", playback.HandleList)
			r.Get("/{id}", playback.HandleGet)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(opts.APIKey, guard))
				r.Post("/battles", playback.HandleStartBattle)
				r.Post("/spins", playback.HandleStartSpins)
				r.Delete("/{id}", playback.HandleStop)
			})
		})

		if deps.Boxes != nil {
			r.Get("/boxes", handler.HandleListBoxes(deps.Boxes))
		}
		if deps.Catalog != nil {
			r.Get("/boxes/{name}/pool", handler.HandleGetBoxPool(deps.Catalog))
		}

		if deps.Hub != nil {
			r.Get("/events", sse.Handler(deps.Hub))
			r.Get("/ws", sse.WSHandler(deps.Hub))
		}
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called. It returns nil after a graceful stop.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
