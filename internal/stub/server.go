// Package stub is a local stand-in for the analysis backend. It serves the
// same endpoints from a fixture so the client can be developed and tested
// without generating real analyses.
package stub

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"studyguide/internal/analysis"
	"studyguide/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Messages returned by the stub, matching the real backend.
const (
	ServiceName          = "YouTube AI Analyzer"
	HealthStatus         = "Backend is running"
	ErrInvalidURLs       = "Invalid YouTube URLs"
	ErrInvalidBody       = "Invalid request body"
	ErrForcedFailureBody = "Stub failure"
)

// Health is the GET / response body.
type Health struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}

// Server serves the analysis endpoints from an in-memory fixture.
type Server struct {
	mu         sync.RWMutex
	fixture    []byte
	failStatus int
	delay      time.Duration

	log      *zap.Logger
	validate *validator.Validate
	hits     atomic.Int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDelay adds latency to every analyze response.
func WithDelay(d time.Duration) Option {
	return func(s *Server) { s.delay = d }
}

// WithFailStatus makes every analyze request fail with code.
func WithFailStatus(code int) Option {
	return func(s *Server) { s.failStatus = code }
}

// New returns a server serving the embedded sample fixture.
func New(opts ...Option) *Server {
	s := &Server{
		fixture:  SampleFixture(),
		log:      zap.NewNop(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetFixture replaces the served analysis. Invalid JSON is rejected and the
// previous fixture is kept.
func (s *Server) SetFixture(data []byte) error {
	if err := checkFixture(data); err != nil {
		return err
	}
	s.mu.Lock()
	s.fixture = append([]byte(nil), data...)
	s.mu.Unlock()
	return nil
}

// SetFailStatus forces analyze to answer code. Zero restores normal replies.
func (s *Server) SetFailStatus(code int) {
	s.mu.Lock()
	s.failStatus = code
	s.mu.Unlock()
}

// Hits returns how many analyze requests were received.
func (s *Server) Hits() int64 { return s.hits.Load() }

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleHealth)
	r.Post(analysis.AnalyzePath, s.handleAnalyze)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Health{
		Status:    HealthStatus,
		Service:   ServiceName,
		Endpoints: []string{analysis.AnalyzePath},
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)
	reqID := middleware.GetReqID(r.Context())

	var req analysis.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.StubWarn("[%s] undecodable body: %v", reqID, err)
		writeError(w, http.StatusBadRequest, ErrInvalidBody)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		logging.StubWarn("[%s] rejected request: %v", reqID, err)
		writeError(w, http.StatusBadRequest, ErrInvalidURLs)
		return
	}
	id1, id2 := analysis.ExtractVideoID(req.URL1), analysis.ExtractVideoID(req.URL2)
	if id1 == "" || id2 == "" {
		logging.StubWarn("[%s] no video id in %q or %q", reqID, req.URL1, req.URL2)
		writeError(w, http.StatusBadRequest, ErrInvalidURLs)
		return
	}

	s.mu.RLock()
	fixture, failStatus, delay := s.fixture, s.failStatus, s.delay
	s.mu.RUnlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if failStatus != 0 {
		logging.Stub("[%s] forced failure %d", reqID, failStatus)
		writeError(w, failStatus, ErrForcedFailureBody)
		return
	}

	logging.Stub("[%s] analyze %s vs %s", reqID, id1, id2)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(fixture)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
