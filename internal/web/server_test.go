package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/diogo/funkychat/internal/chat"
	"github.com/diogo/funkychat/internal/config"
	"github.com/diogo/funkychat/internal/models"
)

type fakeDispatcher struct{}

func (fakeDispatcher) Send(ctx context.Context, id models.BackendID, text string) models.Reply {
	return models.Reply{Backend: id, Text: string(id) + " says: " + text}
}

type fakeProber struct{}

func (fakeProber) Probe(ctx context.Context, id models.BackendID) models.Status {
	if id == models.BackendLangChain {
		return models.StatusOnline
	}
	return models.StatusOffline
}

var testNow = time.Date(2026, 10, 18, 11, 22, 33, 0, time.Local)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	runner := chat.NewRunner(fakeDispatcher{}, fakeProber{}, chat.WithClock(func() time.Time { return testNow }))
	s := NewServer(Options{
		Runner:         runner,
		APIKey:         config.APIKey{Value: "sk-test"},
		DefaultBackend: models.BackendLangChain,
	})

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type frame struct {
	StateMessage
	Message string `json:"message"`
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return f
}

func writeFrame(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestIndex(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Funky AI ChatBot") {
		t.Error("index page should contain the title")
	}
}

func TestInitialState(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	f := readFrame(t, conn)
	if f.Type != TypeState {
		t.Fatalf("expected state frame, got %q", f.Type)
	}
	if !strings.HasPrefix(f.SessionID, "sess_") {
		t.Errorf("SessionID = %q", f.SessionID)
	}
	if f.Active != models.BackendLangChain {
		t.Errorf("Active = %s", f.Active)
	}
	if len(f.Transcript) != 0 || f.Pending {
		t.Errorf("unexpected initial state %+v", f)
	}
	if !f.APIKeyPresent || f.APIKeyNotice != config.APIKeyLoadedNotice {
		t.Errorf("unexpected API key fields %v %q", f.APIKeyPresent, f.APIKeyNotice)
	}

	if len(f.Backends) != 2 {
		t.Fatalf("expected 2 backends, got %d", len(f.Backends))
	}
	if f.Backends[0].Port != 8000 || f.Backends[0].Label != "🟢 Online" || !f.Backends[0].Active {
		t.Errorf("unexpected LangChain view %+v", f.Backends[0])
	}
	if f.Backends[1].Port != 8001 || f.Backends[1].Status != "Offline" {
		t.Errorf("unexpected LlamaIndex view %+v", f.Backends[1])
	}
}

func TestSubmit(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)

	writeFrame(t, conn, ClientMessage{Type: TypeSubmit, Text: "  hi there  "})

	pending := readFrame(t, conn)
	if !pending.Pending {
		t.Error("first frame after submit should be pending")
	}
	if len(pending.Transcript) != 1 || pending.Transcript[0].Content != "hi there" {
		t.Fatalf("unexpected pending transcript %+v", pending.Transcript)
	}
	if pending.Transcript[0].Timestamp != "11:22:33" {
		t.Errorf("Timestamp = %s", pending.Transcript[0].Timestamp)
	}

	final := readFrame(t, conn)
	if final.Pending {
		t.Error("final frame should not be pending")
	}
	if len(final.Transcript) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(final.Transcript))
	}
	reply := final.Transcript[1]
	if reply.Role != models.RoleAssistant || reply.Content != "LangChain says: hi there" {
		t.Errorf("unexpected reply %+v", reply)
	}
}

func TestSubmit_WhitespaceIgnored(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)

	writeFrame(t, conn, ClientMessage{Type: TypeSubmit, Text: " \t\n "})

	f := readFrame(t, conn)
	if f.Pending || len(f.Transcript) != 0 {
		t.Errorf("whitespace must be ignored, got %+v", f)
	}
}

func TestSwitchClearsTranscript(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)

	writeFrame(t, conn, ClientMessage{Type: TypeSubmit, Text: "hello"})
	readFrame(t, conn)
	readFrame(t, conn)

	writeFrame(t, conn, ClientMessage{Type: TypeSwitch, Backend: "llamaindex"})

	f := readFrame(t, conn)
	if f.Active != models.BackendLlamaIndex {
		t.Errorf("Active = %s, want LlamaIndex", f.Active)
	}
	if len(f.Transcript) != 0 {
		t.Errorf("switching should clear the transcript, got %d messages", len(f.Transcript))
	}
	if !f.Backends[1].Active {
		t.Error("LlamaIndex should be marked active")
	}
}

func TestClear(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)

	writeFrame(t, conn, ClientMessage{Type: TypeSubmit, Text: "hello"})
	readFrame(t, conn)
	readFrame(t, conn)

	writeFrame(t, conn, ClientMessage{Type: TypeClear})

	f := readFrame(t, conn)
	if len(f.Transcript) != 0 || f.Active != models.BackendLangChain {
		t.Errorf("unexpected state after clear %+v", f)
	}
}

func TestBadFrames(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"invalid json", "{not json", "invalid JSON message"},
		{"unknown type", `{"type":"dance"}`, "unknown message type: dance"},
		{"unknown backend", `{"type":"switch","backend":"gpt"}`, `unknown backend "gpt"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newTestServer(t)
			conn := dial(t, ts)
			readFrame(t, conn)

			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.payload)); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			f := readFrame(t, conn)
			if f.Type != TypeError {
				t.Fatalf("expected error frame, got %q", f.Type)
			}
			if f.Message != tt.want {
				t.Errorf("Message = %q, want %q", f.Message, tt.want)
			}
		})
	}
}

func TestHealthz_CountsSessions(t *testing.T) {
	s, ts := newTestServer(t)

	conn := dial(t, ts)
	readFrame(t, conn)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v", body["status"])
	}
	if body["sessions"] != float64(1) {
		t.Errorf("sessions = %v, want 1", body["sessions"])
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for s.SessionCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.SessionCount() != 0 {
		t.Error("session should be dropped on disconnect")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	_, ts := newTestServer(t)

	first := dial(t, ts)
	a := readFrame(t, first)
	second := dial(t, ts)
	b := readFrame(t, second)

	if a.SessionID == b.SessionID {
		t.Error("each connection should get its own session")
	}

	writeFrame(t, first, ClientMessage{Type: TypeSubmit, Text: "only for first"})
	readFrame(t, first)
	readFrame(t, first)

	writeFrame(t, second, ClientMessage{Type: TypeClear})
	f := readFrame(t, second)
	if len(f.Transcript) != 0 {
		t.Error("second session must not see the first session's messages")
	}
}
