package backend

// FallbackConfig mirrors the backend's built-in configuration tables, for use
// when GET /api/config is unreachable. The settings surface stays usable and
// the values converge once the backend answers.
func FallbackConfig() *ConfigResponse {
	return &ConfigResponse{
		Providers: []string{"anthropic", "bedrock", "vertex"},
		DefaultModels: map[string]string{
			"anthropic": "claude-sonnet-4-5-20250929",
			"bedrock":   "anthropic.claude-3-5-sonnet-20241022-v2:0",
			"vertex":    "claude-3-5-sonnet-v2@20241022",
		},
		ToolVersions: []string{
			"computer_use_20250124",
			"computer_use_20250429",
			"computer_use_20251124",
		},
		ModelConfigs: map[string]ModelConfig{
			"claude-opus-4-1-20250805": {
				ToolVersion:         "computer_use_20250429",
				MaxOutputTokens:     64000,
				DefaultOutputTokens: 16384,
				HasThinking:         true,
			},
			"claude-sonnet-4-20250514": {
				ToolVersion:         "computer_use_20250429",
				MaxOutputTokens:     64000,
				DefaultOutputTokens: 16384,
				HasThinking:         true,
			},
			"claude-opus-4-20250514": {
				ToolVersion:         "computer_use_20250429",
				MaxOutputTokens:     64000,
				DefaultOutputTokens: 16384,
				HasThinking:         true,
			},
			"claude-sonnet-4-5-20250929": {
				ToolVersion:         "computer_use_20250124",
				MaxOutputTokens:     128000,
				DefaultOutputTokens: 16384,
				HasThinking:         true,
			},
			"claude-haiku-4-5-20251001": {
				ToolVersion:         "computer_use_20250124",
				MaxOutputTokens:     8192,
				DefaultOutputTokens: 4096,
				HasThinking:         false,
			},
			"claude-opus-4-5-20251101": {
				ToolVersion:         "computer_use_20251124",
				MaxOutputTokens:     64000,
				DefaultOutputTokens: 16384,
				HasThinking:         true,
			},
		},
	}
}
