package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/job-assistant/internal/aggregate"
	"github.com/jonathan/job-assistant/internal/config"
	"github.com/jonathan/job-assistant/internal/generation"
	"github.com/jonathan/job-assistant/internal/ledger"
	"github.com/jonathan/job-assistant/internal/notify"
	"github.com/jonathan/job-assistant/internal/server/middleware"
	"github.com/jonathan/job-assistant/internal/server/ratelimit"
	"github.com/jonathan/job-assistant/internal/session"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes caps résumé uploads.
const DefaultMaxUploadBytes = 10 << 20

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	aggregator     *aggregate.Aggregator
	generator      *generation.Generator
	ledger         *ledger.Ledger
	sessions       session.Store
	notifier       notify.Notifier
	notifyTo       string
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	logger         *zap.Logger
	now            func() time.Time
	maxUploadBytes int64
}

// Config holds server configuration and the components it serves.
type Config struct {
	Port       int
	Aggregator *aggregate.Aggregator
	Generator  *generation.Generator
	Ledger     *ledger.Ledger
	Sessions   session.Store
	Notifier   notify.Notifier
	NotifyTo   string
	JWT        *config.JWTConfig
	RateLimit  *ratelimit.Config
	Logger     *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Aggregator == nil {
		return nil, fmt.Errorf("server requires an aggregator")
	}
	if cfg.Ledger == nil {
		return nil, fmt.Errorf("server requires a ledger")
	}
	if cfg.JWT == nil {
		return nil, fmt.Errorf("server requires a JWT config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	generator := cfg.Generator
	if generator == nil {
		generator = generation.New(nil, logger)
	}
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = session.NewMemoryStore(session.DefaultTTL)
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}

	s := &Server{
		aggregator:     cfg.Aggregator,
		generator:      generator,
		ledger:         cfg.Ledger,
		sessions:       sessions,
		notifier:       notifier,
		notifyTo:       cfg.NotifyTo,
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		jwtService:     NewJWTService(cfg.JWT),
		logger:         logger,
		now:            time.Now,
		maxUploadBytes: DefaultMaxUploadBytes,
	}

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /sessions", s.handleCreateSession)

	mux.Handle("GET /session", protected(s.handleGetSession))
	mux.Handle("DELETE /session", protected(s.handleDeleteSession))
	mux.Handle("POST /resume", protected(s.handleUploadResume))
	mux.Handle("GET /jobs", protected(s.handleSearchJobs))

	mux.Handle("POST /generate/cover-letter", protected(s.handleCoverLetter))
	mux.Handle("POST /generate/tailor", protected(s.handleTailorResume))
	mux.Handle("POST /generate/interview-questions", protected(s.handleInterviewQuestions))

	mux.Handle("GET /applications", protected(s.handleListApplications))
	mux.Handle("POST /applications", protected(s.handleApply))
	mux.Handle("PATCH /applications/{index}", protected(s.handleUpdateApplication))
	mux.Handle("GET /applications/export", protected(s.handleExportApplications))
	mux.Handle("GET /dashboard", protected(s.handleDashboard))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // Searches wait on every board; generation waits on the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until ctx is done or the
// process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom writes err with the status HTTPStatus maps it to.
// Internal errors are logged and their detail is not exposed.
func (s *Server) errorFrom(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		s.errorResponse(w, status, "internal error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON decodes the request body into dst and validates it.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return validateRequest(dst)
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
