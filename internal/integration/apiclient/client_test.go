package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// stubTokens is a mutable token source that records revocations.
type stubTokens struct {
	mu      sync.Mutex
	token   string
	revoked int
}

func (s *stubTokens) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *stubTokens) RevokeToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.revoked++
	return nil
}

func (s *stubTokens) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// remoteAPI is an httptest server counting hits per path.
type remoteAPI struct {
	*httptest.Server
	mu      sync.Mutex
	hits    map[string]int
	headers []http.Header
}

func newRemoteAPI(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *remoteAPI {
	t.Helper()
	api := &remoteAPI{hits: map[string]int{}}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.hits[r.URL.Path]++
		api.headers = append(api.headers, r.Header.Clone())
		api.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(api.Close)
	return api
}

func (a *remoteAPI) hitCount(path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[path]
}

func (a *remoteAPI) lastHeader() http.Header {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.headers) == 0 {
		return nil
	}
	return a.headers[len(a.headers)-1]
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func sessionCtx() context.Context {
	return adapter.WithSessionID(context.Background(), uuid.New())
}

func TestClient_ReadsTokenOnEveryRequest(t *testing.T) {
	api := newRemoteAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "data": map[string]any{"id": "u1"}})
	})
	tokens := &stubTokens{}
	users := NewUserService(NewClient(api.URL, time.Second, tokens), nil, time.Minute)
	ctx := context.Background()

	if _, err := users.GetUser(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := api.lastHeader().Get("Authorization"); got != "" {
		t.Errorf("expected no Authorization header without token, got %q", got)
	}

	tokens.set("first")
	_, _ = users.GetUser(ctx)
	if got := api.lastHeader().Get("Authorization"); got != "Bearer first" {
		t.Errorf("expected Bearer first, got %q", got)
	}

	tokens.set("second")
	_, _ = users.GetUser(ctx)
	header := api.lastHeader()
	if got := header.Get("Authorization"); got != "Bearer second" {
		t.Errorf("expected Bearer second, got %q", got)
	}
	if header.Get(RequestIDHeader) == "" {
		t.Error("expected a request ID header")
	}
	if header.Get("Content-Type") != "application/json" {
		t.Errorf("expected JSON content type, got %q", header.Get("Content-Type"))
	}
}

func TestClient_AuthFailureRevokesToken(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		revoked int
	}{
		{"unauthorized", http.StatusUnauthorized, 1},
		{"forbidden", http.StatusForbidden, 1},
		{"not found", http.StatusNotFound, 0},
		{"server error", http.StatusInternalServerError, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newRemoteAPI(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]any{"message": "nope"})
			})
			tokens := &stubTokens{token: "abc"}
			users := NewUserService(NewClient(api.URL, time.Second, tokens), nil, time.Minute)

			_, err := users.GetUser(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if got := domainerror.StatusCode(err); got != tt.status {
				t.Errorf("expected status %d through the wrap, got %d", tt.status, got)
			}
			if tokens.revoked != tt.revoked {
				t.Errorf("expected %d revocations, got %d", tt.revoked, tokens.revoked)
			}
		})
	}
}

func TestClient_RejectedLoginKeepsToken(t *testing.T) {
	api := newRemoteAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
	})
	tokens := &stubTokens{token: "abc"}
	auth := NewAuthService(NewClient(api.URL, time.Second, tokens))

	_, err := auth.Login(context.Background(), entity.LoginInput{Email: "ada@example.com", Password: "wrong"})
	if !domainerror.IsAuth(err) {
		t.Fatalf("expected an auth failure, got %v", err)
	}
	if tokens.revoked != 0 {
		t.Errorf("expected the held token kept, got %d revocations", tokens.revoked)
	}
	if got, _ := tokens.AccessToken(context.Background()); got != "abc" {
		t.Errorf("expected token abc, got %q", got)
	}
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message string", `{"message":"Email already exists"}`, "Email already exists"},
		{"message list", `{"message":["name is required","email is invalid"]}`, "name is required, email is invalid"},
		{"error field", `{"error":"Bad Request"}`, "Bad Request"},
		{"empty message falls back to error", `{"message":"","error":"Conflict"}`, "Conflict"},
		{"not json", `oops`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClient_NetworkFailureClassifiesAsNetwork(t *testing.T) {
	api := httptest.NewServer(http.NotFoundHandler())
	url := api.URL
	api.Close()

	users := NewUserService(NewClient(url, time.Second, nil), nil, time.Minute)
	_, err := users.GetUser(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	classified := domainerror.Classify(err)
	if classified.Kind != domainerror.KindNetwork {
		t.Errorf("expected network kind, got %s", classified.Kind)
	}
	if classified.Display() != domainerror.MsgNetworkError {
		t.Errorf("unexpected display message %q", classified.Display())
	}
}

func TestClient_ConcurrentCallersShareOneRequest(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	api := newRemoteAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"id": "p1", "title": "Pad", "price": 1500}}})
	})
	products := NewProductService(NewClient(api.URL, 5*time.Second, nil), newTestCache(), time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := products.GetProductsWithCache(context.Background(), false); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("expected one remote call, got %d", got)
	}
}
