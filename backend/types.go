package backend

// ChatMessage is one entry of the canonical conversation history exchanged
// with the backend. Content is either a plain string or an ordered list of
// content blocks in the backend's native message format (text / tool_use /
// tool_result / thinking / image). The backend echoes the canonical form
// back on the done event, so the client stores it verbatim and never
// reinterprets it.
type ChatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// StreamRequest is the body of POST /api/chat/stream. Field names must match
// the backend byte-for-byte.
type StreamRequest struct {
	Messages                []ChatMessage `json:"messages"`
	Model                   string        `json:"model"`
	Provider                string        `json:"provider"`
	APIKey                  string        `json:"api_key,omitempty"`
	SystemPromptSuffix      string        `json:"system_prompt_suffix"`
	OnlyNMostRecentImages   int           `json:"only_n_most_recent_images"`
	MaxTokens               int           `json:"max_tokens"`
	ToolVersion             string        `json:"tool_version"`
	ThinkingBudget          *int          `json:"thinking_budget,omitempty"`
	TokenEfficientToolsBeta bool          `json:"token_efficient_tools_beta"`
}

// ModelConfig describes one model's capabilities as reported by GET /api/config.
type ModelConfig struct {
	ToolVersion         string `json:"tool_version"`
	MaxOutputTokens     int    `json:"max_output_tokens"`
	DefaultOutputTokens int    `json:"default_output_tokens"`
	HasThinking         bool   `json:"has_thinking"`
}

// ConfigResponse is the body of GET /api/config.
type ConfigResponse struct {
	Providers     []string               `json:"providers"`
	DefaultModels map[string]string      `json:"default_models"`
	ToolVersions  []string               `json:"tool_versions"`
	ModelConfigs  map[string]ModelConfig `json:"model_configs"`
}

// APIKeyStatus is the body of GET /api/api-key.
type APIKeyStatus struct {
	HasKey    bool   `json:"has_key"`
	MaskedKey string `json:"masked_key"`
}

// AuthValidateRequest is the body of POST /api/auth/validate.
type AuthValidateRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key,omitempty"`
}

// AuthValidateResponse is the result of POST /api/auth/validate.
type AuthValidateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ResetResponse is the body of POST /api/reset.
type ResetResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HTTPRequestInfo describes the request half of a logged backend exchange.
type HTTPRequestInfo struct {
	Method string `json:"method"`
	URL    string `json:"url"`
	Body   string `json:"body,omitempty"`
}

// HTTPResponseInfo describes the response half of a logged backend exchange.
// It is absent when no response arrived.
type HTTPResponseInfo struct {
	StatusCode int `json:"status_code"`
}

// HTTPLogRecord is one outbound exchange the backend made to its model
// provider, reported over the stream as an http_log event.
type HTTPLogRecord struct {
	Request  HTTPRequestInfo   `json:"request"`
	Response *HTTPResponseInfo `json:"response,omitempty"`
	Error    string            `json:"error,omitempty"`
}
