package backend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventKind identifies which stream event a data line decoded into.
type EventKind int

const (
	// EventNone marks a line that carries no event (blank keep-alive or an
	// event-name annotation). It is not an error.
	EventNone EventKind = iota
	EventText
	EventThinking
	EventToolUse
	EventToolResult
	EventHTTPLog
	EventError
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventText:
		return "text"
	case EventThinking:
		return "thinking"
	case EventToolUse:
		return "tool_use"
	case EventToolResult:
		return "tool_result"
	case EventHTTPLog:
		return "http_log"
	case EventError:
		return "error"
	case EventDone:
		return "done"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one decoded stream event. Kind selects which fields are
// meaningful; the rest are zero.
type Event struct {
	Kind EventKind

	// EventText
	Text string

	// EventThinking
	Thinking string

	// EventToolUse
	ToolID   string
	ToolName string
	Input    map[string]any

	// EventToolResult
	ResultToolID string
	Output       string
	Error        string // also carries the message for EventError
	Base64Image  string
	System       string

	// EventHTTPLog
	Log *HTTPLogRecord

	// EventError
	ErrorType string

	// EventDone
	Messages []ChatMessage
}

const dataPrefix = "data:"

// wireEvent is the decode envelope. Pointer fields distinguish an absent key
// from a present zero value, which the classification below depends on.
type wireEvent struct {
	Type        *string          `json:"type"`
	Text        *string          `json:"text"`
	Thinking    *string          `json:"thinking"`
	ID          *string          `json:"id"`
	Name        *string          `json:"name"`
	Input       json.RawMessage  `json:"input"`
	ToolID      *string          `json:"tool_id"`
	Output      *string          `json:"output"`
	Error       *string          `json:"error"`
	Base64Image *string          `json:"base64_image"`
	System      *string          `json:"system"`
	Request     *HTTPRequestInfo `json:"request"`
	Response    *HTTPResponseInfo `json:"response"`
	Messages    json.RawMessage  `json:"messages"`
}

// DecodeLine parses one raw line of the event stream.
//
// The backend does not tag an event's type on the wire, so classification is
// by structural shape, checked in a fixed priority order:
//
//  1. text field plus an explicit "text" type marker  -> text
//  2. thinking field                                  -> thinking
//  3. name and input fields                           -> tool_use
//  4. tool_id field                                   -> tool_result
//  5. request field whose object has a method         -> http_log
//  6. error and type fields                           -> error
//  7. messages field                                  -> done
//
// Shapes are not mutually exclusive by field name alone, so this order IS the
// de facto protocol tag. Do not reorder it.
//
// Lines without the data prefix decode to an Event with Kind EventNone and a
// nil error. Malformed JSON and objects matching no rule return an error; the
// caller logs and skips them, the stream continues.
func DecodeLine(line string) (Event, error) {
	if !strings.HasPrefix(line, dataPrefix) {
		return Event{Kind: EventNone}, nil
	}
	payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
	if payload == "" {
		return Event{Kind: EventNone}, nil
	}

	var w wireEvent
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		return Event{Kind: EventNone}, fmt.Errorf("malformed event payload: %w", err)
	}

	switch {
	case w.Text != nil && w.Type != nil && *w.Type == "text":
		return Event{Kind: EventText, Text: *w.Text}, nil

	case w.Thinking != nil:
		return Event{Kind: EventThinking, Thinking: *w.Thinking}, nil

	case w.Name != nil && w.Input != nil:
		ev := Event{Kind: EventToolUse, ToolName: *w.Name}
		if w.ID != nil {
			ev.ToolID = *w.ID
		}
		// Tool inputs are arbitrary structured arguments; a null input is
		// kept as an empty map so callers never see nil.
		ev.Input = map[string]any{}
		if string(w.Input) != "null" {
			if err := json.Unmarshal(w.Input, &ev.Input); err != nil {
				return Event{Kind: EventNone}, fmt.Errorf("malformed tool input: %w", err)
			}
		}
		return ev, nil

	case w.ToolID != nil:
		ev := Event{Kind: EventToolResult, ResultToolID: *w.ToolID}
		if w.Output != nil {
			ev.Output = *w.Output
		}
		if w.Error != nil {
			ev.Error = *w.Error
		}
		if w.Base64Image != nil {
			ev.Base64Image = *w.Base64Image
		}
		if w.System != nil {
			ev.System = *w.System
		}
		return ev, nil

	case w.Request != nil && w.Request.Method != "":
		return Event{Kind: EventHTTPLog, Log: &HTTPLogRecord{
			Request:  *w.Request,
			Response: w.Response,
			Error:    stringOrEmpty(w.Error),
		}}, nil

	case w.Error != nil && w.Type != nil:
		return Event{Kind: EventError, Error: *w.Error, ErrorType: *w.Type}, nil

	case w.Messages != nil:
		var msgs []ChatMessage
		if err := json.Unmarshal(w.Messages, &msgs); err != nil {
			return Event{Kind: EventNone}, fmt.Errorf("malformed final messages: %w", err)
		}
		return Event{Kind: EventDone, Messages: msgs}, nil
	}

	return Event{Kind: EventNone}, fmt.Errorf("event matches no known shape: %s", payload)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
