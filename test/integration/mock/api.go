package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RecordedRequest is a request received by ApiMock.
type RecordedRequest struct {
	Headers http.Header
	Body    map[string]any
}

type mockResponse struct {
	status int
	body   any
}

// ApiMock stands in for a third-party HTTP API. Responses are keyed by
// method and path; unknown routes answer 200 with an empty object.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	responses map[string]mockResponse
	requests  map[string][]RecordedRequest
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		responses: map[string]mockResponse{},
		requests:  map[string][]RecordedRequest{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	a.mu.Lock()
	a.requests[key] = append(a.requests[key], RecordedRequest{Headers: r.Header.Clone(), Body: body})
	response, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		response = mockResponse{status: http.StatusOK, body: map[string]any{}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	payload, _ := json.Marshal(response.body)
	_, _ = w.Write(payload)
}

// SetResponse fixes the answer for every later request to method and path.
func (a *ApiMock) SetResponse(method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = mockResponse{status: status, body: response}
}

// GetRequests returns the requests received on method and path, oldest first.
func (a *ApiMock) GetRequests(method, path string) []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]RecordedRequest(nil), a.requests[method+path]...)
}

// Reset drops recorded requests and configured responses.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = map[string]mockResponse{}
	a.requests = map[string][]RecordedRequest{}
}
