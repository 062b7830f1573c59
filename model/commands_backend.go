package model

import (
	"context"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"cutui/config"
)

// FetchBackendConfig retrieves providers, default models, tool versions and
// model capability tables from the backend.
func (m *Model) FetchBackendConfig() tea.Cmd {
	client := m.Backend
	return func() tea.Msg {
		cfg, err := client.GetConfig(context.Background())
		return BackendConfigMsg{Config: cfg, Err: err}
	}
}

// FetchKeyStatus checks whether the backend already holds an API key from
// its environment.
func (m *Model) FetchKeyStatus() tea.Cmd {
	client := m.Backend
	return func() tea.Msg {
		status, err := client.GetAPIKeyStatus(context.Background())
		return KeyStatusMsg{Status: status, Err: err}
	}
}

// ValidateAuth asks the backend to validate the configured provider
// credentials.
func (m *Model) ValidateAuth() tea.Cmd {
	client := m.Backend
	provider := m.Config.Chat.Provider
	apiKey := m.Config.APIKey
	return func() tea.Msg {
		result, err := client.ValidateAuth(context.Background(), provider, apiKey)
		return AuthValidatedMsg{Result: result, Err: err}
	}
}

// CheckHealth pings the backend.
func (m *Model) CheckHealth() tea.Cmd {
	client := m.Backend
	return func() tea.Msg {
		return HealthCheckMsg{Err: client.Health(context.Background())}
	}
}

// ResetEnvironment asks the backend to restart the desktop environment. The
// caller clears the conversation on success.
func (m *Model) ResetEnvironment() tea.Cmd {
	client := m.Backend
	return func() tea.Msg {
		result, err := client.ResetEnvironment(context.Background())
		return ResetDoneMsg{Result: result, Err: err}
	}
}

// OpenDesktopViewer opens the remote desktop's noVNC page in the local
// browser. The desktop protocol itself is delegated wholesale to the viewer.
func (m *Model) OpenDesktopViewer() tea.Cmd {
	viewerURL := m.Config.DesktopViewerURL()
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", viewerURL)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", viewerURL)
		default:
			cmd = exec.Command("xdg-open", viewerURL)
		}

		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] Opening desktop viewer: %s", viewerURL)
		}
		return DesktopOpenedMsg{Err: cmd.Start()}
	}
}
