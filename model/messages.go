package model

import (
	"cutui/backend"
)

// StreamEventMsg delivers one decoded stream event to the update loop.
type StreamEventMsg struct {
	Event backend.Event
}

// StreamDoneMsg signals natural end of the stream.
type StreamDoneMsg struct{}

// StreamStoppedMsg signals the stream ended because the user cancelled it.
type StreamStoppedMsg struct{}

// StreamErrorMsg signals the stream ended on a transport fault.
type StreamErrorMsg struct {
	Err error
}

type BackendConfigMsg struct {
	Config *backend.ConfigResponse
	Err    error
}

type KeyStatusMsg struct {
	Status *backend.APIKeyStatus
	Err    error
}

type AuthValidatedMsg struct {
	Result *backend.AuthValidateResponse
	Err    error
}

type HealthCheckMsg struct {
	Err error
}

type ResetDoneMsg struct {
	Result *backend.ResetResponse
	Err    error
}

type DesktopOpenedMsg struct {
	Err error
}

type MarkdownRenderedMsg struct {
	MessageIndex int
	Rendered     string
}
