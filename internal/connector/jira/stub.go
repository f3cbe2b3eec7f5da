package jira

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// StubServer hosts an in-memory Jira REST API for tests (no network
// listeners). It serves the search, field-catalog, and serverInfo endpoints
// and records every search request so tests can assert on paging behavior.
type StubServer struct {
	username string
	password string
	baseURL  string

	issues []Ticket
	fields []Field

	mu       sync.Mutex
	searches []SearchCall

	handler   http.Handler
	transport http.RoundTripper
}

// SearchCall records one observed search request.
type SearchCall struct {
	JQL        string
	StartAt    int
	MaxResults int
	Fields     string
}

// NewStubServer constructs a deterministic stub without binding to a port.
func NewStubServer(issues []Ticket, fields []Field) *StubServer {
	s := &StubServer{
		username: "stub-user",
		password: "stub-pass",
		baseURL:  "http://jira.stub.local",
		issues:   issues,
		fields:   fields,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handle)
	s.handler = mux
	s.transport = &stubRoundTripper{handler: mux}
	return s
}

// URL returns the stub base URL (no network listener is used).
func (s *StubServer) URL() string {
	return s.baseURL
}

// Transport returns a RoundTripper that serves requests in-process.
func (s *StubServer) Transport() http.RoundTripper {
	return s.transport
}

// Credentials returns the user/password pair the stub accepts.
func (s *StubServer) Credentials() (string, string) {
	return s.username, s.password
}

// Searches returns the recorded search calls in request order.
func (s *StubServer) Searches() []SearchCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SearchCall, len(s.searches))
	copy(out, s.searches)
	return out
}

func (s *StubServer) handle(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || user != s.username || pass != s.password {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorMessages":["Login required"]}`))
		return
	}

	switch {
	case r.URL.Path == "/rest/api/2/serverInfo":
		writeJSON(w, ServerInfo{
			BaseURL:        s.baseURL,
			Version:        "8.20.0",
			DeploymentType: "Server",
		})
	case r.URL.Path == "/rest/api/2/search":
		s.handleSearch(w, r)
	case r.URL.Path == "/rest/api/2/field":
		writeJSON(w, s.fields)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errorMessages":["not found"]}`))
	}
}

func (s *StubServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jql := q.Get("jql")
	if strings.Contains(jql, "syntax-error") {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorMessages":["Error in the JQL Query"]}`))
		return
	}

	startAt, _ := strconv.Atoi(q.Get("startAt"))
	maxResults, _ := strconv.Atoi(q.Get("maxResults"))

	s.mu.Lock()
	s.searches = append(s.searches, SearchCall{
		JQL:        jql,
		StartAt:    startAt,
		MaxResults: maxResults,
		Fields:     q.Get("fields"),
	})
	s.mu.Unlock()

	end := startAt + maxResults
	if end > len(s.issues) {
		end = len(s.issues)
	}
	page := []Ticket{}
	if startAt < end {
		page = s.issues[startAt:end]
	}

	writeJSON(w, SearchResult{
		StartAt:    startAt,
		MaxResults: maxResults,
		Total:      len(s.issues),
		Issues:     page,
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// StubTicket builds a minimal issue for tests.
func StubTicket(key string, fields map[string]any) Ticket {
	return Ticket{
		"id":     fmt.Sprintf("1%04d", len(key)),
		"key":    key,
		"fields": fields,
	}
}

type stubRoundTripper struct {
	handler http.Handler
}

func (rt *stubRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rr := httptest.NewRecorder()
	rt.handler.ServeHTTP(rr, req)
	res := rr.Result()
	res.Request = req
	return res, nil
}
