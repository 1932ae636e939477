package mockserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/entrhq/pagekit/pkg/logging"
)

// ErrNoRoute is recorded (not returned to callers) when a request matches
// no registered rule; the HTTP response is a JSON 404.
var ErrNoRoute = errors.New("no mock route matches request")

// DefaultRecordLimit caps the request log when Options leaves it zero.
const DefaultRecordLimit = 256

// Options configures a mock server.
type Options struct {
	// Addr is the listen address; empty means 127.0.0.1 on an ephemeral port
	Addr string

	// RecordLimit caps the number of recorded requests (0 means default).
	// When the cap is hit the oldest records are evicted.
	RecordLimit int
}

// Server is a local HTTP server serving mocked API responses.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	logger     *logging.Logger

	mu      sync.RWMutex
	rules   []*rule
	records []RecordedRequest
	limit   int
}

// Start creates a mock server and begins serving.
func Start(opts Options) (*Server, error) {
	addr := opts.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}

	limit := opts.RecordLimit
	if limit <= 0 {
		limit = DefaultRecordLimit
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	logger, _ := logging.NewLogger("mockserver")

	s := &Server{
		listener: listener,
		logger:   logger,
		limit:    limit,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.HandleFunc("/*", s.dispatch)

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("serve failed: %v", err)
		}
	}()

	s.logger.Infof("mock server listening on %s", s.URL())
	return s, nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String()
}

// Close shuts the server down, waiting for in-flight requests.
func (s *Server) Close(ctx context.Context) error {
	defer s.logger.Close()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down mock server: %w", err)
	}
	return nil
}

// Mock registers a canned response for a method and path pattern.
// Later registrations take precedence within the same pattern class.
func (s *Server) Mock(method, pattern string, resp Response) error {
	r, err := newRule(method, pattern, resp)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, r)
	s.logger.Debugf("registered %s %s -> %d", r.method, r.pattern, responseStatus(resp))
	return nil
}

// MockGET registers a GET route returning the given status and JSON body.
func (s *Server) MockGET(pattern string, status int, body interface{}) error {
	return s.Mock(http.MethodGet, pattern, Response{Status: status, JSON: body})
}

// MockPOST registers a POST route returning the given status and JSON body.
func (s *Server) MockPOST(pattern string, status int, body interface{}) error {
	return s.Mock(http.MethodPost, pattern, Response{Status: status, JSON: body})
}

// Requests returns a copy of all recorded requests, oldest first.
func (s *Server) Requests() []RecordedRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RecordedRequest, len(s.records))
	copy(out, s.records)
	return out
}

// RequestsFor returns recorded requests served by the rule registered for
// the given method and pattern.
func (s *Server) RequestsFor(method, pattern string) []RecordedRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []RecordedRequest
	for _, rec := range s.records {
		if rec.Matched == pattern && rec.Method == method {
			out = append(out, rec)
		}
	}
	return out
}

// Reset removes all rules and recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = nil
	s.records = nil
}

// dispatch matches a request against the registered rules and serves the
// canned response. Literal rules win over glob rules; within each class the
// most recent registration wins.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(io.LimitReader(r.Body, 1<<20))

	matched := s.match(r.Method, r.URL.Path)

	rec := RecordedRequest{
		Method:     r.Method,
		Path:       r.URL.Path,
		Query:      r.URL.Query(),
		Header:     r.Header.Clone(),
		Body:       body,
		ReceivedAt: time.Now(),
	}
	if matched != nil {
		rec.Matched = matched.pattern
	}
	s.record(rec)

	if matched == nil {
		s.logger.Warnf("%v: %s %s", ErrNoRoute, r.Method, r.URL.Path)
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("no mock registered for %s %s", r.Method, r.URL.Path),
		})
		return
	}

	s.serve(w, matched.response)
}

// match finds the winning rule for a method and path.
func (s *Server) match(method, path string) *rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first so overrides win
	var globMatch *rule
	for i := len(s.rules) - 1; i >= 0; i-- {
		r := s.rules[i]
		if !r.matches(method, path) {
			continue
		}
		if r.literal {
			return r
		}
		if globMatch == nil {
			globMatch = r
		}
	}
	return globMatch
}

// record appends a request, evicting the oldest past the cap.
func (s *Server) record(rec RecordedRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if len(s.records) > s.limit {
		s.records = s.records[len(s.records)-s.limit:]
	}
}

// serve writes a canned response.
func (s *Server) serve(w http.ResponseWriter, resp Response) {
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}

	status := responseStatus(resp)

	if len(resp.Body) > 0 {
		contentType := resp.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		w.Write(resp.Body)
		return
	}

	if resp.JSON != nil {
		writeJSON(w, status, resp.JSON)
		return
	}

	w.WriteHeader(status)
}

func responseStatus(resp Response) int {
	if resp.Status == 0 {
		return http.StatusOK
	}
	return resp.Status
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
