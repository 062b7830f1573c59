package model

import "time"

// Roles for transcript messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ContentType tags the variant occupying a Message.
type ContentType string

const (
	ContentText       ContentType = "text"
	ContentThinking   ContentType = "thinking"
	ContentToolUse    ContentType = "tool_use"
	ContentToolResult ContentType = "tool_result"
	ContentError      ContentType = "error"
)

// Content is a tagged union: Type selects which fields are meaningful, the
// rest must be zero and are ignored.
type Content struct {
	Type ContentType

	// ContentText
	Text string

	// ContentThinking
	Thinking string

	// ContentToolUse
	ToolID   string
	ToolName string
	Input    map[string]any

	// ContentToolResult
	ResultToolID string
	Output       string
	Base64Image  string

	// ContentToolResult and ContentError
	Error string
}

// Message is one transcript entry. The transcript is append-only: a message
// is created once with a fresh id and timestamp, never mutated afterwards
// (the cached Rendered string is the only exception) and removed only by a
// full clear.
type Message struct {
	ID        string
	Role      string
	Content   Content
	Rendered  string // Cached rendered markdown
	Timestamp time.Time
}
