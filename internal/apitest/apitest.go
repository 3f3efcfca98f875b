// Package apitest runs an in-process fake of the news backend for tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Call is one request the server received.
type Call struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// Server is a chi-routed httptest server. Routes are registered per test with
// Handle; unregistered routes answer 404 with an error body.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	router chi.Router
	calls  []Call
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{router: chi.NewRouter()}
	s.router.Use(middleware.Recoverer)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Route not found"})
	})
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	router := s.router
	s.mu.Unlock()

	router.ServeHTTP(w, r)
}

// Handle registers h for method and chi pattern.
func (s *Server) Handle(method, pattern string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.MethodFunc(method, pattern, h)
}

// Reply registers a handler that always writes v as JSON with status.
func (s *Server) Reply(method, pattern string, status int, v any) {
	s.Handle(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		JSON(w, status, v)
	})
}

// Calls returns a copy of every request received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many requests hit path.
func (s *Server) CallCount(path string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Path == path {
			n++
		}
	}
	return n
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// URLParam exposes chi's path parameter lookup to handlers.
func URLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
