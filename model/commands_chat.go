package model

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"cutui/backend"
	"cutui/config"
)

// StoppedByUserText is the synthetic transcript entry appended when the user
// cancels a stream. Informational, not an error.
const StoppedByUserText = "(stopped by user)"

// CanSend reports whether a new turn may be started, with a reason when not.
func (m *Model) CanSend() (bool, string) {
	if m.Streaming {
		// At most one stream is active per conversation. Starting another
		// would orphan the in-flight cancellation handle, so the send is
		// rejected instead of replacing it.
		return false, "A response is still streaming. Press Esc to stop it first."
	}
	if m.AuthError != "" {
		return false, m.AuthError
	}
	return true, ""
}

// BuildStreamRequest assembles the stream request body from the current
// configuration and the full conversation history.
func (m *Model) BuildStreamRequest() backend.StreamRequest {
	chat := m.Config.Chat
	req := backend.StreamRequest{
		Messages:                m.History,
		Model:                   chat.Model,
		Provider:                chat.Provider,
		APIKey:                  m.Config.APIKey,
		SystemPromptSuffix:      chat.SystemPromptSuffix,
		OnlyNMostRecentImages:   chat.OnlyNMostRecentImages,
		MaxTokens:               chat.MaxTokens,
		ToolVersion:             chat.ToolVersion,
		TokenEfficientToolsBeta: chat.TokenEfficientToolsBeta,
	}
	if chat.ThinkingBudget > 0 {
		budget := chat.ThinkingBudget
		req.ThinkingBudget = &budget
	}
	return req
}

// StartStream opens one streaming request carrying the full history plus
// configuration, captures the cancellation handle and returns the command
// that waits for the first event. Callers must have checked CanSend.
//
// The reading goroutine forwards each decoded event over a channel in
// arrival order; the update loop drains it one message at a time via
// WaitForStreamEvent, so events are applied strictly sequentially.
func (m *Model) StartStream() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan tea.Msg, 32)

	m.Streaming = true
	m.cancelStream = cancel
	m.streamEvents = events

	client := m.Backend
	req := m.BuildStreamRequest()

	go func() {
		err := client.StreamChat(ctx, req, func(ev backend.Event) {
			events <- StreamEventMsg{Event: ev}
		})

		switch {
		case err == nil:
			events <- StreamDoneMsg{}
		case errors.Is(err, context.Canceled):
			events <- StreamStoppedMsg{}
		default:
			events <- StreamErrorMsg{Err: err}
		}
		close(events)
	}()

	return m.WaitForStreamEvent()
}

// WaitForStreamEvent returns a command that blocks until the stream
// goroutine delivers the next message. The update loop re-issues it after
// every StreamEventMsg.
func (m *Model) WaitForStreamEvent() tea.Cmd {
	events := m.streamEvents
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// StopStream signals cancellation on the in-flight stream. Calling it while
// idle is a no-op: no fault, no transcript entry.
func (m *Model) StopStream() {
	if !m.Streaming || m.cancelStream == nil {
		return
	}
	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Model] User cancelled active stream")
	}
	m.cancelStream()
}

// CompleteStream returns the session to idle after natural stream end.
func (m *Model) CompleteStream() {
	m.finishStream()
}

// AbortStream returns the session to idle after user cancellation and marks
// the stop with one synthetic transcript entry.
func (m *Model) AbortStream() {
	m.finishStream()
	m.AppendMessage(RoleAssistant, Content{Type: ContentText, Text: StoppedByUserText})
}

// FailStream returns the session to idle after a transport fault and surfaces
// it as one inline error entry. History and logs are left untouched; a
// subsequent send may retry immediately.
func (m *Model) FailStream(err error) {
	m.finishStream()
	m.AppendMessage(RoleAssistant, Content{Type: ContentError, Error: err.Error()})
}

// finishStream releases the busy flag and the cancellation handle. Every
// terminal path runs through here, whichever way the stream ended.
func (m *Model) finishStream() {
	m.Streaming = false
	if m.cancelStream != nil {
		m.cancelStream()
		m.cancelStream = nil
	}
	m.streamEvents = nil
}
