package backend

import (
	"testing"
)

func TestDecodeLineClassification(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind EventKind
	}{
		{
			name: "text event",
			line: `data: {"type":"text","text":"Hello there"}`,
			kind: EventText,
		},
		{
			name: "text field without type marker is not a text event",
			line: `data: {"text":"orphan"}`,
			kind: EventNone,
		},
		{
			name: "thinking event",
			line: `data: {"thinking":"Let me look at the screen first."}`,
			kind: EventThinking,
		},
		{
			name: "tool use event",
			line: `data: {"id":"toolu_01","name":"computer","input":{"action":"screenshot"}}`,
			kind: EventToolUse,
		},
		{
			name: "name without input is not a tool use",
			line: `data: {"name":"computer"}`,
			kind: EventNone,
		},
		{
			name: "tool result event",
			line: `data: {"tool_id":"toolu_01","output":"ok"}`,
			kind: EventToolResult,
		},
		{
			name: "http log event",
			line: `data: {"request":{"method":"POST","url":"https://api.anthropic.com/v1/messages"},"response":{"status_code":200}}`,
			kind: EventHTTPLog,
		},
		{
			name: "request without method is not an http log",
			line: `data: {"request":{"url":"https://api.anthropic.com/v1/messages"}}`,
			kind: EventNone,
		},
		{
			name: "error event",
			line: `data: {"error":"overloaded","type":"APIError"}`,
			kind: EventError,
		},
		{
			name: "error without type is not an error event",
			line: `data: {"error":"overloaded"}`,
			kind: EventNone,
		},
		{
			name: "done event",
			line: `data: {"messages":[{"role":"user","content":"hi"}]}`,
			kind: EventDone,
		},
		{
			name: "done event with empty history",
			line: `data: {"messages":[]}`,
			kind: EventDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := DecodeLine(tt.line)
			if tt.kind == EventNone {
				if err == nil {
					t.Fatalf("expected decode error for unmatched shape, got kind %v", ev.Kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeLine: %v", err)
			}
			if ev.Kind != tt.kind {
				t.Errorf("kind: got %v, want %v", ev.Kind, tt.kind)
			}
		})
	}
}

// Event shapes are not mutually exclusive by field name, so the priority
// order is the protocol tag. An object carrying both thinking and tool_id
// must classify as thinking because that rule comes first.
func TestDecodeLinePriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind EventKind
	}{
		{
			name: "thinking beats tool_id",
			line: `data: {"thinking":"hm","tool_id":"toolu_02"}`,
			kind: EventThinking,
		},
		{
			name: "text marker beats thinking",
			line: `data: {"type":"text","text":"a","thinking":"b"}`,
			kind: EventText,
		},
		{
			name: "tool use beats tool result",
			line: `data: {"name":"bash","input":{"command":"ls"},"tool_id":"toolu_03"}`,
			kind: EventToolUse,
		},
		{
			name: "tool result beats error",
			line: `data: {"tool_id":"toolu_04","error":"failed","type":"ToolError"}`,
			kind: EventToolResult,
		},
		{
			name: "http log beats error",
			line: `data: {"request":{"method":"GET","url":"x"},"error":"boom","type":"HTTPError"}`,
			kind: EventHTTPLog,
		},
		{
			name: "error beats done",
			line: `data: {"error":"boom","type":"APIError","messages":[]}`,
			kind: EventError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := DecodeLine(tt.line)
			if err != nil {
				t.Fatalf("DecodeLine: %v", err)
			}
			if ev.Kind != tt.kind {
				t.Errorf("kind: got %v, want %v", ev.Kind, tt.kind)
			}
		})
	}
}

func TestDecodeLineFields(t *testing.T) {
	ev, err := DecodeLine(`data: {"tool_id":"t1","output":"ok","base64_image":"iVBOR..."}`)
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if ev.Kind != EventToolResult {
		t.Fatalf("kind: got %v, want %v", ev.Kind, EventToolResult)
	}
	if ev.ResultToolID != "t1" {
		t.Errorf("ResultToolID: got %q, want %q", ev.ResultToolID, "t1")
	}
	if ev.Output != "ok" {
		t.Errorf("Output: got %q, want %q", ev.Output, "ok")
	}
	if ev.Base64Image != "iVBOR..." {
		t.Errorf("Base64Image: got %q, want %q", ev.Base64Image, "iVBOR...")
	}

	ev, err = DecodeLine(`data: {"request":{"method":"POST","url":"https://api.example/v1"},"error":"connection reset"}`)
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if ev.Log == nil {
		t.Fatal("Log is nil")
	}
	if ev.Log.Request.Method != "POST" {
		t.Errorf("method: got %q, want POST", ev.Log.Request.Method)
	}
	if ev.Log.Response != nil {
		t.Errorf("response: got %+v, want nil", ev.Log.Response)
	}
	if ev.Log.Error != "connection reset" {
		t.Errorf("error: got %q", ev.Log.Error)
	}

	ev, err = DecodeLine(`data: {"id":"toolu_05","name":"computer","input":null}`)
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if ev.Input == nil || len(ev.Input) != 0 {
		t.Errorf("null input: got %v, want empty map", ev.Input)
	}
}

func TestDecodeLineIgnorableLines(t *testing.T) {
	for _, line := range []string{
		"",
		"event: tool_use",
		": keep-alive",
		"data:",
		"data:   ",
	} {
		ev, err := DecodeLine(line)
		if err != nil {
			t.Errorf("line %q: unexpected error %v", line, err)
		}
		if ev.Kind != EventNone {
			t.Errorf("line %q: got kind %v, want EventNone", line, ev.Kind)
		}
	}
}

func TestDecodeLineMalformedJSON(t *testing.T) {
	for _, line := range []string{
		`data: {not json`,
		`data: [1,2,3`,
		`data: {"name":"x","input":42}`,
	} {
		if _, err := DecodeLine(line); err == nil {
			t.Errorf("line %q: expected error", line)
		}
	}
}
