// Package server provides the HTTP REST API for the resume analyzer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/ingest"
	"github.com/jonathan/resume-analyzer/internal/knowledge"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultMaxBody caps request bodies. Resume plus job description text
// fits comfortably under a megabyte.
const DefaultMaxBody = 1 << 20

// Server owns the HTTP listener and the analysis dependencies behind it.
type Server struct {
	httpServer  *http.Server
	engine      *analyzer.Engine
	index       *knowledge.Index
	ingestor    *ingest.Ingestor
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	logger      *zap.Logger
	maxBody     int64
}

// Config carries the listener settings.
type Config struct {
	Addr    string
	JWT     *config.JWTConfig // nil runs the API without authentication
	MaxBody int64
}

// New creates a new server instance. The engine and index are required;
// the ingestor may be nil, which disables the URL analysis endpoint.
func New(cfg Config, engine *analyzer.Engine, index *knowledge.Index, ingestor *ingest.Ingestor, logger *zap.Logger) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("analysis engine is required")
	}
	if index == nil {
		return nil, fmt.Errorf("skill index is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxBody
	}

	s := &Server{
		engine:      engine,
		index:       index,
		ingestor:    ingestor,
		logger:      logger,
		maxBody:     cfg.MaxBody,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}
	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	mux := http.NewServeMux()
	mux.Handle("POST /analyze", s.protect(http.HandlerFunc(s.handleAnalyze)))
	mux.Handle("POST /analyze/url", s.protect(http.HandlerFunc(s.handleAnalyzeURL)))
	mux.HandleFunc("GET /taxonomy/skills/{id}", s.handleGetSkill)
	mux.HandleFunc("GET /taxonomy/search", s.handleSearchSkills)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // URL ingestion may wait on a browser render
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM,
// then drains in-flight requests before returning.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.logger.Info("server stopped")
	return nil
}

// Handler returns the fully wrapped handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// protect wraps a handler with bearer-token authentication when a JWT
// secret is configured; without one the handler runs open
func (s *Server) protect(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return next
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

// withCORS answers preflight requests and marks responses as readable
// cross-origin
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit enforces per-client request budgets. Every limited route
// gets X-RateLimit headers whether the request passed or not.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			s.rejectRateLimited(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rejectRateLimited writes the 429 response. Retry-After is rounded up so
// a client that waits the advertised seconds will find a token.
func (s *Server) rejectRateLimited(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	body := map[string]any{
		"error":     "rate_limit_exceeded",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		seconds := int(math.Ceil(info.RetryAfter.Seconds()))
		body["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, body)
}

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per completed request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// logAnalysis records one completed scoring run. Authenticated requests
// carry the token subject so per-client usage shows up in the log.
func (s *Server) logAnalysis(r *http.Request, report types.AnalysisReport) {
	fields := []zap.Field{
		zap.String("report_id", report.ID),
		zap.Float64("total", report.Composite.Total),
		zap.String("grade", report.Composite.Grade),
	}
	if subject, ok := middleware.Subject(r.Context()); ok {
		fields = append(fields, zap.String("client", subject))
	}
	s.logger.Info("analysis completed", fields...)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps an error to its HTTP status and writes the JSON body
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}

// clientID keys rate limiting by peer address. X-Forwarded-For is ignored
// on purpose: it is client-controlled unless a trusted proxy sits in front.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
