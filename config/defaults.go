package config

// Defaults mirror the backend's own defaults for a fresh anthropic setup.
const (
	DefaultBackendURL  = "http://localhost:8000"
	DefaultProvider    = "anthropic"
	DefaultModel       = "claude-sonnet-4-5-20250929"
	DefaultMaxTokens   = 16384
	DefaultRecentImgs  = 3
	DefaultToolVersion = "computer_use_20250124"
)

func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		DataDirectory: "~/.local/share/cutui",
		Backend: BackendConfig{
			URL: DefaultBackendURL,
		},
		Chat: ChatConfig{
			Provider:              DefaultProvider,
			Model:                 DefaultModel,
			MaxTokens:             DefaultMaxTokens,
			OnlyNMostRecentImages: DefaultRecentImgs,
			ToolVersion:           DefaultToolVersion,
		},
	}
}

func GenerateConfigTemplate() string {
	return `# CUTUI Configuration
# Location: ~/.config/cutui/settings.toml
# This file uses TOML format: https://toml.io

# Directory where credentials and the debug log are stored
data_directory = "~/.local/share/cutui"

[backend]
# Computer-use demo backend URL
url = "http://localhost:8000"

# noVNC viewer page for the remote desktop (optional)
# Derived from the backend host on port 6080 when unset
# desktop_url = "http://localhost:6080/vnc.html"

[chat]
# Provider: anthropic, bedrock or vertex
provider = "anthropic"

# Model sent with every turn
model = "claude-sonnet-4-5-20250929"

# Appended to the backend's built-in system prompt (optional)
system_prompt_suffix = ""

# Output token ceiling per turn
max_tokens = 16384

# How many screenshots to keep in the replayed history
only_n_most_recent_images = 3

# Computer-use tool version understood by the chosen model
tool_version = "computer_use_20250124"

# Extended thinking token budget; 0 disables thinking
thinking_budget = 0

# Token-efficient tool use beta flag
token_efficient_tools_beta = false
`
}
