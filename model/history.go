package model

import (
	"cutui/backend"
	"cutui/config"
)

// AppendUserTurn pushes a user entry onto the conversation history and
// returns the updated full history. The return value matters: the next
// stream request must carry the history including this turn.
func (m *Model) AppendUserTurn(text string) []backend.ChatMessage {
	m.History = append(m.History, backend.ChatMessage{
		Role:    RoleUser,
		Content: text,
	})
	return m.History
}

// Reconcile replaces the entire tracked history with the backend-supplied
// list verbatim. The done event is the authoritative checkpoint: assistant
// and tool turns accumulated piecemeal during streaming are never appended
// client-side, so the displayed transcript and the canonical history cannot
// diverge.
func (m *Model) Reconcile(finalMessages []backend.ChatMessage) {
	m.History = finalMessages
	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Model] History reconciled to %d canonical messages", len(finalMessages))
	}
}
