package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// BackendConfig points the UI at the computer-use demo backend.
type BackendConfig struct {
	URL        string `toml:"url"`
	DesktopURL string `toml:"desktop_url,omitempty"`
}

// ChatConfig holds the per-turn parameters sent with every stream request.
type ChatConfig struct {
	Provider                string `toml:"provider"`
	Model                   string `toml:"model"`
	SystemPromptSuffix      string `toml:"system_prompt_suffix,omitempty"`
	MaxTokens               int    `toml:"max_tokens"`
	OnlyNMostRecentImages   int    `toml:"only_n_most_recent_images"`
	ToolVersion             string `toml:"tool_version"`
	ThinkingBudget          int    `toml:"thinking_budget,omitempty"`
	TokenEfficientToolsBeta bool   `toml:"token_efficient_tools_beta"`
}

// FileConfig is the on-disk shape of settings.toml.
type FileConfig struct {
	DataDirectory string        `toml:"data_directory"`
	Backend       BackendConfig `toml:"backend"`
	Chat          ChatConfig    `toml:"chat"`
}

// Config is the loaded runtime configuration. The settings surface mutates
// it; the streaming core only reads it.
type Config struct {
	DataDirectory string
	Backend       BackendConfig
	Chat          ChatConfig

	// APIKey overrides the backend's environment key when non-empty. It is
	// kept in the credential store, never in settings.toml.
	APIKey string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// DesktopViewerURL returns the noVNC page for the remote desktop. When not
// configured explicitly it is derived from the backend host on the demo's
// default viewer port.
func (c *Config) DesktopViewerURL() string {
	if c.Backend.DesktopURL != "" {
		return c.Backend.DesktopURL
	}
	return DeriveDesktopURL(c.Backend.URL)
}

func (c *Config) applyEnvOverrides() {
	if backendURL := os.Getenv("CUTUI_BACKEND_URL"); backendURL != "" {
		c.Backend.URL = backendURL
	}
	if desktopURL := os.Getenv("CUTUI_DESKTOP_URL"); desktopURL != "" {
		c.Backend.DesktopURL = desktopURL
	}
	if dataDir := os.Getenv("CUTUI_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("CUTUI_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - debug output includes request URLs and stream payloads
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (CUTUI_DEBUG=%s) ===", os.Getenv("CUTUI_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// Load reads settings.toml (creating it with defaults on first run), applies
// environment overrides and loads the stored API key.
func Load() (*Config, error) {
	fileCfg, err := LoadFileConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDirectory: fileCfg.DataDirectory,
		Backend:       fileCfg.Backend,
		Chat:          fileCfg.Chat,
	}
	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	store := NewCredentialStore(os.Getenv("CUTUI_CREDENTIALS_PASSPHRASE"))
	if err := store.Load(dataDir); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	cfg.APIKey = store.Get(cfg.Chat.Provider)

	return cfg, nil
}

// Save persists the mutable settings to settings.toml and the API key to the
// credential store.
func (c *Config) Save() error {
	fileCfg := &FileConfig{
		DataDirectory: c.DataDirectory,
		Backend:       c.Backend,
		Chat:          c.Chat,
	}
	if err := SaveFileConfig(fileCfg); err != nil {
		return err
	}

	store := NewCredentialStore(os.Getenv("CUTUI_CREDENTIALS_PASSPHRASE"))
	dataDir := c.DataDir()
	if err := store.Load(dataDir); err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if c.APIKey == "" {
		store.Delete(c.Chat.Provider)
	} else {
		store.Set(c.Chat.Provider, c.APIKey)
	}
	return store.Save(dataDir)
}
