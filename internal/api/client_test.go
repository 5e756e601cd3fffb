package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eora-ai/eora/internal/errors"
	"github.com/eora-ai/eora/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	os.Exit(m.Run())
}

// fakeBackend serves one canned response per path and records requests.
type fakeBackend struct {
	t        *testing.T
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
	requests atomic.Int32

	mu       sync.Mutex
	last     *http.Request
	lastBody []byte
}

func (fb *fakeBackend) lastRequest() (*http.Request, []byte) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.last, fb.lastBody
}

func newFakeBackend(t *testing.T) (*fakeBackend, *Client) {
	t.Helper()
	fb := &fakeBackend{t: t, routes: make(map[string]func(http.ResponseWriter, *http.Request))}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.requests.Add(1)
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.last, fb.lastBody = r, body
		fb.mu.Unlock()
		handler, ok := fb.routes[r.Method+" "+r.URL.EscapedPath()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return fb, New(srv.URL + "/")
}

func (fb *fakeBackend) handle(route string, status int, body string) {
	fb.routes[route] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", JSONContentType)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestListSessions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "bare array with id",
			body: `[{"id":"a","name":"first","created_at":"2024-01-15T10:30:00Z","message_count":3},{"id":"b","name":"second"}]`,
			want: []string{"a", "b"},
		},
		{
			name: "envelope with _id",
			body: `{"sessions":[{"_id":"x","name":"mongo"},{"_id":"y"}]}`,
			want: []string{"x", "y"},
		},
		{
			name: "records without any id are skipped",
			body: `[{"name":"nameless"},{"id":"keep"}]`,
			want: []string{"keep"},
		},
		{
			name: "empty",
			body: `[]`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, c := newFakeBackend(t)
			fb.handle("GET /api/sessions", http.StatusOK, tt.body)

			got, err := c.ListSessions(context.Background())
			if err != nil {
				t.Fatalf("ListSessions() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sessions, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("session[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestListSessions_Fields(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.handle("GET /api/sessions", http.StatusOK,
		`[{"id":"a","name":"첫 세션","created_at":"2024-01-15T10:30:00Z","message_count":3}]`)

	got, err := c.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	s := got[0]
	if s.Name != "첫 세션" || s.MessageCount != 3 {
		t.Errorf("unexpected session: %+v", s)
	}
	if !s.CreatedAt.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", s.CreatedAt)
	}
}

func TestListSessions_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   errors.Kind
	}{
		{"server error", http.StatusInternalServerError, `{"detail":"boom"}`, errors.KindNetwork},
		{"not JSON", http.StatusOK, `<html>`, errors.KindProtocol},
		{"object without sessions", http.StatusOK, `{"items":[]}`, errors.KindProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, c := newFakeBackend(t)
			fb.handle("GET /api/sessions", tt.status, tt.body)

			_, err := c.ListSessions(context.Background())
			if !errors.Is(err, tt.kind) {
				t.Errorf("error = %v, want kind %v", err, tt.kind)
			}
		})
	}
}

func TestStatusError_Message(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.handle("GET /api/sessions", http.StatusServiceUnavailable, `{"detail":"maintenance"}`)

	_, err := c.ListSessions(context.Background())
	var statusErr *StatusError
	if !stderrors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable || statusErr.Message != "maintenance" {
		t.Errorf("unexpected StatusError: %+v", statusErr)
	}
}

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantID  string
		wantErr errors.Kind
	}{
		{"_id", `{"_id":"mongo-1"}`, "mongo-1", errors.KindUnknown},
		{"session_id", `{"session_id":"sess-2"}`, "sess-2", errors.KindUnknown},
		{"_id wins", `{"_id":"first","session_id":"second"}`, "first", errors.KindUnknown},
		{"placeholder _id falls through", `{"_id":"null","session_id":"real"}`, "real", errors.KindUnknown},
		{"missing", `{"success":true}`, "", errors.KindProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, c := newFakeBackend(t)
			fb.handle("POST /api/sessions", http.StatusOK, tt.body)

			id, err := c.CreateSession(context.Background(), "새 세션", "anonymous")
			if tt.wantErr != errors.KindUnknown {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want kind %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateSession() error: %v", err)
			}
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestCreateSession_Request(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.handle("POST /api/sessions", http.StatusCreated, `{"_id":"n"}`)

	if _, err := c.CreateSession(context.Background(), "새 세션 2024. 1. 5.", "anonymous"); err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}

	req, raw := fb.lastRequest()
	var body map[string]string
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if body["name"] != "새 세션 2024. 1. 5." || body["user_id"] != "anonymous" {
		t.Errorf("request body = %v", body)
	}
	if ct := req.Header.Get("Content-Type"); ct != JSONContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if _, err := uuid.Parse(req.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("%s should be a uuid: %v", RequestIDHeader, err)
	}
	if ua := req.Header.Get("User-Agent"); ua != DefaultUserAgent {
		t.Errorf("User-Agent = %q", ua)
	}
}

func TestDeleteSession_EscapesID(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.handle("DELETE /api/sessions/a%2Fb", http.StatusNoContent, "")

	if err := c.DeleteSession(context.Background(), "a/b"); err != nil {
		t.Fatalf("DeleteSession() error: %v", err)
	}
}

func TestDeleteSession_NotFound(t *testing.T) {
	_, c := newFakeBackend(t)

	err := c.DeleteSession(context.Background(), "gone")
	if !errors.Is(err, errors.KindNotFound) {
		t.Errorf("error = %v, want KindNotFound", err)
	}
}

func TestSessionMessages(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.handle("GET /api/sessions/s1/messages", http.StatusOK,
		`{"messages":[{"role":"user","content":"안녕","timestamp":"2024-01-15T10:30:00.123456"},{"role":"assistant","content":"반가워요"}]}`)

	msgs, err := c.SessionMessages(context.Background(), "s1")
	if err != nil {
		t.Fatalf("SessionMessages() error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "안녕" {
		t.Errorf("msgs[0] = %+v", msgs[0])
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 123456000, time.Local)
	if !msgs[0].Timestamp.Equal(want) {
		t.Errorf("zone-less timestamp = %v, want %v", msgs[0].Timestamp, want)
	}
	if !msgs[1].Timestamp.IsZero() {
		t.Error("missing timestamp should be zero")
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPoints  int64
		wantPresent bool
	}{
		{"present", `{"points":2500,"level":3}`, 2500, true},
		{"absent", `{"level":1}`, 0, false},
		{"string is not a number", `{"points":"lots"}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, c := newFakeBackend(t)
			fb.handle("GET /api/user/points", http.StatusOK, tt.body)

			got, err := c.Points(context.Background())
			if err != nil {
				t.Fatalf("Points() error: %v", err)
			}
			if got.Points != tt.wantPoints || got.Present != tt.wantPresent {
				t.Errorf("Points() = %+v", got)
			}
		})
	}
}

func TestChat(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.handle("POST /api/chat", http.StatusOK, `{"response":"hello there"}`)

	reply, err := c.Chat(context.Background(), "s1", "hi")
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if reply != "hello there" {
		t.Errorf("reply = %q", reply)
	}

	_, raw := fb.lastRequest()
	var body map[string]string
	json.Unmarshal(raw, &body)
	if body["session_id"] != "s1" || body["message"] != "hi" {
		t.Errorf("request body = %v", body)
	}
}

func TestChat_MissingResponse(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.handle("POST /api/chat", http.StatusOK, `{"ok":true}`)

	if _, err := c.Chat(context.Background(), "s1", "hi"); !errors.Is(err, errors.KindProtocol) {
		t.Errorf("error = %v, want KindProtocol", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.ListSessions(context.Background())
	if !errors.Is(err, errors.KindNetwork) {
		t.Errorf("error = %v, want KindNetwork", err)
	}
}

func TestCanceledContext(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.handle("GET /api/user/points", http.StatusOK, `{"points":1}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Points(ctx)
	if errors.Is(err, errors.KindTimeout) {
		t.Errorf("a cancel is not a timeout: %v", err)
	}
	if !errors.Is(err, errors.KindNetwork) {
		t.Errorf("error = %v, want KindNetwork", err)
	}
}

// newSlowServer never answers before the request is abandoned.
func newSlowServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestTimeouts(t *testing.T) {
	url := newSlowServer(t)

	t.Run("context deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		if _, err := New(url).Points(ctx); !errors.Is(err, errors.KindTimeout) {
			t.Errorf("error = %v, want KindTimeout", err)
		}
	})

	t.Run("client timeout", func(t *testing.T) {
		c := New(url, WithTimeout(50*time.Millisecond))
		if _, err := c.Points(context.Background()); !errors.Is(err, errors.KindTimeout) {
			t.Errorf("error = %v, want KindTimeout", err)
		}
	})
}

func TestWithTimeout(t *testing.T) {
	c := New("http://example.com", WithTimeout(3*time.Second), WithUserAgent("x"))
	if c.httpClient.Timeout != 3*time.Second || c.userAgent != "x" {
		t.Errorf("options not applied: %+v", c)
	}
}

func TestWithTimeout_CopiesClient(t *testing.T) {
	shared := &http.Client{}
	c := &Client{httpClient: shared}

	WithTimeout(time.Second)(c)

	if shared.Timeout != 0 {
		t.Error("WithTimeout must not change a client it does not own")
	}
	if c.httpClient == shared || c.httpClient.Timeout != time.Second {
		t.Errorf("client timeout = %v", c.httpClient.Timeout)
	}
}
