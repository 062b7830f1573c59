package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cutui/backend"
	"cutui/config"
)

// handleStreamMsg drains the live stream one message at a time. Each event is
// applied in arrival order and the wait command is re-issued; terminal
// messages settle the session and stop the loop.
func (a AppView) handleStreamMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case streamEventMsg:
		a.dataModel.ApplyStreamEvent(msg.Event)

		cmds := []tea.Cmd{a.dataModel.WaitForStreamEvent()}

		// Assistant prose gets the markdown treatment; everything else is
		// rendered structurally by the viewport builder.
		if msg.Event.Kind == backend.EventText {
			messageIndex := len(a.dataModel.Messages) - 1
			cmds = append(cmds, a.renderMarkdownAsync(messageIndex, msg.Event.Text))
		}

		a.updateViewportContent(true)
		return a, tea.Batch(cmds...)

	case streamDoneMsg:
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Stream complete - %d history messages", len(a.dataModel.History))
		}
		a.dataModel.CompleteStream()
		a.updateViewportContent(true)
		return a, nil

	case streamStoppedMsg:
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Stream stopped by user")
		}
		a.dataModel.AbortStream()
		a.updateViewportContent(true)
		return a, nil

	case streamErrorMsg:
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Stream failed: %v", msg.Err)
		}
		a.dataModel.FailStream(msg.Err)
		a.updateViewportContent(true)
		return a, nil
	}
	return a, nil
}
