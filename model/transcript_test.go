package model

import (
	"testing"

	"cutui/backend"
	"cutui/config"
)

func newTestModel(t *testing.T, backendURL string) *Model {
	t.Helper()
	client, err := backend.NewClient(backendURL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	cfg := &config.Config{
		Backend: config.BackendConfig{URL: backendURL},
		Chat: config.ChatConfig{
			Provider:              "anthropic",
			Model:                 "claude-sonnet-4-5-20250929",
			MaxTokens:             16384,
			OnlyNMostRecentImages: 3,
			ToolVersion:           "computer_use_20250124",
		},
	}
	return NewModel(cfg, client, "test", "Apache-2.0")
}

func TestAppendMessageIdentity(t *testing.T) {
	m := newTestModel(t, "http://localhost:8000")

	first := m.AppendMessage(RoleUser, Content{Type: ContentText, Text: "hello"})
	second := m.AppendMessage(RoleAssistant, Content{Type: ContentText, Text: "hi"})

	if first.ID == "" || second.ID == "" {
		t.Fatal("messages must get ids at creation")
	}
	if first.ID == second.ID {
		t.Errorf("ids must be unique, both %q", first.ID)
	}
	if first.Timestamp.IsZero() || second.Timestamp.IsZero() {
		t.Error("messages must be timestamped at creation")
	}
	if len(m.Messages) != 2 {
		t.Fatalf("transcript length: got %d, want 2", len(m.Messages))
	}
	if m.Messages[0].ID != first.ID || m.Messages[1].ID != second.ID {
		t.Error("transcript order must match append order")
	}
}

func TestApplyStreamEventRouting(t *testing.T) {
	tests := []struct {
		name        string
		event       backend.Event
		wantRole    string
		wantContent ContentType
	}{
		{
			name:        "text",
			event:       backend.Event{Kind: backend.EventText, Text: "hi"},
			wantRole:    RoleAssistant,
			wantContent: ContentText,
		},
		{
			name:        "thinking",
			event:       backend.Event{Kind: backend.EventThinking, Thinking: "hm"},
			wantRole:    RoleAssistant,
			wantContent: ContentThinking,
		},
		{
			name: "tool use",
			event: backend.Event{
				Kind: backend.EventToolUse, ToolID: "t1", ToolName: "computer",
				Input: map[string]any{"action": "screenshot"},
			},
			wantRole:    RoleAssistant,
			wantContent: ContentToolUse,
		},
		{
			name:        "tool result",
			event:       backend.Event{Kind: backend.EventToolResult, ResultToolID: "t1", Output: "ok"},
			wantRole:    RoleTool,
			wantContent: ContentToolResult,
		},
		{
			name:        "error",
			event:       backend.Event{Kind: backend.EventError, Error: "boom", ErrorType: "APIError"},
			wantRole:    RoleAssistant,
			wantContent: ContentError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, "http://localhost:8000")
			m.ApplyStreamEvent(tt.event)

			if len(m.Messages) != 1 {
				t.Fatalf("transcript length: got %d, want 1", len(m.Messages))
			}
			msg := m.Messages[0]
			if msg.Role != tt.wantRole {
				t.Errorf("role: got %q, want %q", msg.Role, tt.wantRole)
			}
			if msg.Content.Type != tt.wantContent {
				t.Errorf("content type: got %q, want %q", msg.Content.Type, tt.wantContent)
			}
		})
	}
}

func TestApplyStreamEventHTTPLog(t *testing.T) {
	m := newTestModel(t, "http://localhost:8000")

	m.ApplyStreamEvent(backend.Event{Kind: backend.EventHTTPLog, Log: &backend.HTTPLogRecord{
		Request:  backend.HTTPRequestInfo{Method: "POST", URL: "https://api.anthropic.com/v1/messages"},
		Response: &backend.HTTPResponseInfo{StatusCode: 200},
	}})

	if len(m.Messages) != 0 {
		t.Errorf("http_log must not enter the transcript, got %d messages", len(m.Messages))
	}
	if len(m.HTTPLog) != 1 {
		t.Fatalf("exchange log length: got %d, want 1", len(m.HTTPLog))
	}
	entry := m.HTTPLog[0]
	if entry.ID == "" || entry.Timestamp.IsZero() {
		t.Error("log entries must get id and timestamp at creation")
	}
	if entry.Request.Method != "POST" {
		t.Errorf("method: got %q, want POST", entry.Request.Method)
	}
	if entry.Response == nil || entry.Response.StatusCode != 200 {
		t.Errorf("response: got %+v", entry.Response)
	}
}

func TestClearConversation(t *testing.T) {
	m := newTestModel(t, "http://localhost:8000")
	m.AppendUserTurn("hello")
	m.AppendMessage(RoleUser, Content{Type: ContentText, Text: "hello"})
	m.AppendHTTPLog(backend.HTTPLogRecord{Request: backend.HTTPRequestInfo{Method: "GET", URL: "x"}})

	m.ClearConversation()

	if len(m.Messages) != 0 || len(m.HTTPLog) != 0 || len(m.History) != 0 {
		t.Errorf("clear must empty transcript, log and history together: %d/%d/%d",
			len(m.Messages), len(m.HTTPLog), len(m.History))
	}
}
