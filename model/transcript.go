package model

import (
	"time"

	"github.com/google/uuid"

	"cutui/backend"
	"cutui/config"
)

// AppendMessage creates a transcript entry with a fresh unique id and the
// current wall clock, appends it and returns it. This is the only way
// entries enter the transcript.
func (m *Model) AppendMessage(role string, content Content) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	m.Messages = append(m.Messages, msg)
	return msg
}

// ApplyStreamEvent routes one decoded stream event to the transcript, the
// exchange log or the history tracker. Events arrive in backend emission
// order and the transcript reflects that order exactly.
func (m *Model) ApplyStreamEvent(ev backend.Event) {
	switch ev.Kind {
	case backend.EventText:
		m.AppendMessage(RoleAssistant, Content{Type: ContentText, Text: ev.Text})

	case backend.EventThinking:
		m.AppendMessage(RoleAssistant, Content{Type: ContentThinking, Thinking: ev.Thinking})

	case backend.EventToolUse:
		m.AppendMessage(RoleAssistant, Content{
			Type:     ContentToolUse,
			ToolID:   ev.ToolID,
			ToolName: ev.ToolName,
			Input:    ev.Input,
		})

	case backend.EventToolResult:
		m.AppendMessage(RoleTool, Content{
			Type:         ContentToolResult,
			ResultToolID: ev.ResultToolID,
			Output:       ev.Output,
			Error:        ev.Error,
			Base64Image:  ev.Base64Image,
		})

	case backend.EventHTTPLog:
		m.AppendHTTPLog(*ev.Log)

	case backend.EventError:
		m.AppendMessage(RoleAssistant, Content{Type: ContentError, Error: ev.Error})

	case backend.EventDone:
		m.Reconcile(ev.Messages)

	default:
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] Ignoring stream event of kind %v", ev.Kind)
		}
	}
}
