package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RemoteRequest is one call received by the fake remote API.
type RemoteRequest struct {
	Headers map[string]string
	Query   map[string]string
	Body    map[string]any
}

type remoteResponse struct {
	status int
	body   any
}

// ApiMock stands in for the remote Anbu REST API. Responses are keyed by
// method and path; a response set for a specific call index wins over the
// default for that route. Unknown routes answer 404.
type ApiMock struct {
	mu       sync.Mutex
	server   *httptest.Server
	received map[string][]RemoteRequest
	indexed  map[string]map[int]remoteResponse
	defaults map[string]remoteResponse
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		received: map[string][]RemoteRequest{},
		indexed:  map[string]map[int]remoteResponse{},
		defaults: map[string]remoteResponse{},
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

// GetUrl returns the base URL the backend should call.
func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	req := RemoteRequest{Headers: map[string]string{}, Query: map[string]string{}, Body: body}
	for name, values := range r.Header {
		req.Headers[name] = values[0]
	}
	for name, values := range r.URL.Query() {
		req.Query[name] = values[0]
	}

	a.mu.Lock()
	index := len(a.received[key])
	a.received[key] = append(a.received[key], req)
	resp, ok := a.indexed[key][index]
	if !ok {
		resp, ok = a.defaults[key]
	}
	a.mu.Unlock()

	if !ok {
		resp = remoteResponse{status: http.StatusNotFound, body: map[string]any{"message": "Route not found"}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}

// SetResponse sets the answer for call index of a route. Index -1 sets the
// default used by every call without its own answer.
func (a *ApiMock) SetResponse(index int, method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + " " + path
	if index == -1 {
		a.defaults[key] = remoteResponse{status: status, body: body}
		return
	}
	if a.indexed[key] == nil {
		a.indexed[key] = map[int]remoteResponse{}
	}
	a.indexed[key][index] = remoteResponse{status: status, body: body}
}

// Requests returns the calls received by a route.
func (a *ApiMock) Requests(method, path string) []RemoteRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]RemoteRequest(nil), a.received[method+" "+path]...)
}

// Reset forgets every response and recorded call.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.received = map[string][]RemoteRequest{}
	a.indexed = map[string]map[int]remoteResponse{}
	a.defaults = map[string]remoteResponse{}
}
