package model

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cutui/backend"
)

// driveStream runs the command loop the way the update loop would: apply
// each event, re-issue the wait command, and dispatch the terminal message
// to the matching controller method. onEvent runs after each applied event.
func driveStream(t *testing.T, m *Model, onEvent func(ev backend.Event)) {
	t.Helper()
	cmd := m.StartStream()
	for cmd != nil {
		switch msg := cmd().(type) {
		case StreamEventMsg:
			m.ApplyStreamEvent(msg.Event)
			if onEvent != nil {
				onEvent(msg.Event)
			}
			cmd = m.WaitForStreamEvent()
		case StreamDoneMsg:
			m.CompleteStream()
			return
		case StreamStoppedMsg:
			m.AbortStream()
			return
		case StreamErrorMsg:
			m.FailStream(msg.Err)
			return
		case nil:
			return
		default:
			t.Fatalf("unexpected message %T", msg)
		}
	}
}

func sseBackend(t *testing.T, lines []string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/stream" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n", line)
			flusher.Flush()
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStreamSessionToolTurn(t *testing.T) {
	srv := sseBackend(t, []string{
		`data: {"type": "text", "text": "Taking a screenshot."}`,
		`data: {"id": "t1", "name": "computer", "input": {"action": "screenshot"}}`,
		`data: {"tool_id": "t1", "output": "ok", "base64_image": "iVBORw0KGgo="}`,
		`data: {"messages": [{"role": "user", "content": "take a screenshot"}, {"role": "assistant", "content": "done"}]}`,
	})

	m := newTestModel(t, srv.URL)
	m.AppendUserTurn("take a screenshot")
	m.AppendMessage(RoleUser, Content{Type: ContentText, Text: "take a screenshot"})

	driveStream(t, m, nil)

	if m.Streaming {
		t.Error("session must be idle after the stream completes")
	}

	var results []Message
	for _, msg := range m.Messages {
		if msg.Content.Type == ContentToolResult {
			results = append(results, msg)
		}
	}
	if len(results) != 1 {
		t.Fatalf("tool result messages: got %d, want 1", len(results))
	}
	res := results[0].Content
	if res.ResultToolID != "t1" || res.Output != "ok" || res.Base64Image != "iVBORw0KGgo=" {
		t.Errorf("tool result fields: got %+v", res)
	}

	if len(m.History) != 2 {
		t.Fatalf("history must be replaced by the done event: got %d entries, want 2", len(m.History))
	}
	if m.History[1].Role != RoleAssistant {
		t.Errorf("reconciled history entry 1 role: got %q", m.History[1].Role)
	}
}

func TestStreamSessionAbort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\": \"text\", \"text\": \"Working on it\"}\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	m := newTestModel(t, srv.URL)
	m.AppendUserTurn("do something slow")

	driveStream(t, m, func(ev backend.Event) {
		m.StopStream()
	})

	if m.Streaming {
		t.Error("session must be idle after cancellation")
	}

	var stopped, faults int
	for _, msg := range m.Messages {
		if msg.Content.Type == ContentText && msg.Content.Text == StoppedByUserText {
			stopped++
		}
		if msg.Content.Type == ContentError {
			faults++
		}
	}
	if stopped != 1 {
		t.Errorf("stopped marker entries: got %d, want exactly 1", stopped)
	}
	if faults != 0 {
		t.Errorf("cancellation must not produce error entries, got %d", faults)
	}
}

func TestStreamSessionBackendFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	m := newTestModel(t, srv.URL)
	m.AppendUserTurn("hello")
	historyBefore := len(m.History)

	driveStream(t, m, nil)

	if m.Streaming {
		t.Error("session must be idle after a failed stream")
	}

	var faults []Message
	for _, msg := range m.Messages {
		if msg.Content.Type == ContentError {
			faults = append(faults, msg)
		}
	}
	if len(faults) != 1 {
		t.Fatalf("error entries: got %d, want exactly 1", len(faults))
	}
	if !strings.Contains(faults[0].Content.Error, "status 500") {
		t.Errorf("error entry must carry the HTTP status: %q", faults[0].Content.Error)
	}

	if len(m.History) != historyBefore {
		t.Errorf("history must survive a failed stream unchanged: got %d, want %d",
			len(m.History), historyBefore)
	}
}

func TestStopStreamWhileIdle(t *testing.T) {
	m := newTestModel(t, "http://localhost:8000")

	m.StopStream()

	if m.Streaming {
		t.Error("idle stop must not flip the busy flag")
	}
	if len(m.Messages) != 0 {
		t.Errorf("idle stop must not add transcript entries, got %d", len(m.Messages))
	}
}

func TestCanSendRejectsWhileStreaming(t *testing.T) {
	m := newTestModel(t, "http://localhost:8000")

	if ok, _ := m.CanSend(); !ok {
		t.Fatal("idle session must accept sends")
	}

	m.Streaming = true
	ok, reason := m.CanSend()
	if ok {
		t.Error("streaming session must reject new sends")
	}
	if reason == "" {
		t.Error("rejection must carry a reason for the status line")
	}

	m.Streaming = false
	m.AuthError = "invalid API key"
	if ok, _ := m.CanSend(); ok {
		t.Error("failed auth must block sends")
	}
}

func TestBuildStreamRequest(t *testing.T) {
	m := newTestModel(t, "http://localhost:8000")
	m.Config.APIKey = "sk-test"
	m.AppendUserTurn("hi")

	req := m.BuildStreamRequest()
	if len(req.Messages) != 1 {
		t.Errorf("request must carry the full history, got %d entries", len(req.Messages))
	}
	if req.Model != "claude-sonnet-4-5-20250929" || req.Provider != "anthropic" {
		t.Errorf("model/provider: got %q/%q", req.Model, req.Provider)
	}
	if req.APIKey != "sk-test" {
		t.Errorf("api key: got %q", req.APIKey)
	}
	if req.ThinkingBudget != nil {
		t.Error("thinking budget must be omitted when unset")
	}

	m.Config.Chat.ThinkingBudget = 2048
	req = m.BuildStreamRequest()
	if req.ThinkingBudget == nil || *req.ThinkingBudget != 2048 {
		t.Errorf("thinking budget: got %v", req.ThinkingBudget)
	}
}
