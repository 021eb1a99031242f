package testing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// MockGitHubServer serves canned GitHub API responses and release downloads.
// Paths without a response get GitHub's 404 body.
type MockGitHubServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]MockResponse
	requests  []MockRequest
}

// MockResponse is what the server writes for one path
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// MockRequest records one request the server received
type MockRequest struct {
	Method    string
	Path      string
	UserAgent string
	Accept    string
}

// NewMockGitHubServer starts a server that is closed when the test ends
func NewMockGitHubServer(t *testing.T) *MockGitHubServer {
	t.Helper()

	mock := &MockGitHubServer{responses: make(map[string]MockResponse)}
	mock.Server = httptest.NewServer(http.HandlerFunc(mock.serve))
	t.Cleanup(mock.Server.Close)

	return mock
}

func (m *MockGitHubServer) serve(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests = append(m.requests, MockRequest{
		Method:    r.Method,
		Path:      r.URL.Path,
		UserAgent: r.UserAgent(),
		Accept:    r.Header.Get("Accept"),
	})
	response, ok := m.responses[r.URL.Path]
	m.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
		return
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	if response.StatusCode != 0 {
		w.WriteHeader(response.StatusCode)
	}
	w.Write(response.Body)
}

// SetResponse serves data as JSON with status 200
func (m *MockGitHubServer) SetResponse(path string, data interface{}) error {
	return m.setJSON(path, http.StatusOK, data)
}

// SetError serves a GitHub style error body with the given status
func (m *MockGitHubServer) SetError(path string, statusCode int, message string) error {
	return m.setJSON(path, statusCode, map[string]string{"message": message})
}

func (m *MockGitHubServer) setJSON(path string, statusCode int, data interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	m.SetRawResponse(path, statusCode, body, nil)
	return nil
}

// SetRawResponse serves body unchanged
func (m *MockGitHubServer) SetRawResponse(path string, statusCode int, body []byte, headers map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = MockResponse{StatusCode: statusCode, Body: body, Headers: headers}
}

// SetFile serves body as a downloadable file with a known length
func (m *MockGitHubServer) SetFile(path string, body []byte) {
	m.SetRawResponse(path, http.StatusOK, body, map[string]string{
		"Content-Type":   "application/octet-stream",
		"Content-Length": strconv.Itoa(len(body)),
	})
}

// RequestsTo returns the requests received for path, oldest first
func (m *MockGitHubServer) RequestsTo(path string) []MockRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []MockRequest
	for _, req := range m.requests {
		if req.Path == path {
			matched = append(matched, req)
		}
	}
	return matched
}

// GetRequestCount returns the number of requests received for path
func (m *MockGitHubServer) GetRequestCount(path string) int {
	return len(m.RequestsTo(path))
}
