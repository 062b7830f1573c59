package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"cutui/backend"
	"cutui/config"
)

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config  *config.Config
	Backend *backend.Client

	// Transcript: the ordered, user-facing list of display messages.
	Messages []Message

	// Exchange log: outbound HTTP calls the backend made, independent of
	// the transcript.
	HTTPLog []HTTPLogEntry

	// Conversation history: the canonical message list replayed to the
	// backend on every turn. Overwritten wholesale by the done event.
	History []backend.ChatMessage

	// Backend-reported configuration surface
	BackendConfig *backend.ConfigResponse
	KeyStatus     *backend.APIKeyStatus

	// Non-empty while provider credentials fail validation; blocks sends.
	AuthError string

	// Runtime state (not UI). The busy flag and the cancellation handle are
	// the only mutable state shared with the stream goroutine; the
	// controller is their sole mutator.
	Streaming    bool
	cancelStream context.CancelFunc
	streamEvents chan tea.Msg

	// Application metadata
	Version string
	License string
}

// NewModel creates a new Model with the given configuration
func NewModel(cfg *config.Config, client *backend.Client, version, license string) *Model {
	return &Model{
		Config:  cfg,
		Backend: client,
		Version: version,
		License: license,
	}
}

// ClearConversation empties the transcript, the exchange log and the
// conversation history together. No stale entries survive.
func (m *Model) ClearConversation() {
	m.Messages = nil
	m.HTTPLog = nil
	m.History = nil
}
