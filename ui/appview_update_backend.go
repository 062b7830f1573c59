package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"cutui/backend"
	"cutui/config"
)

// handleBackendMsg applies results of the non-streaming backend calls.
func (a AppView) handleBackendMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case backendConfigMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Backend config fetch failed: %v", msg.Err)
			}
			// Built-in tables keep the selector and settings usable offline
			if a.dataModel.BackendConfig == nil {
				a.dataModel.BackendConfig = backend.FallbackConfig()
			}
			a.statusNotice = "Could not fetch backend config. Using built-in defaults."
			return a, nil
		}
		a.dataModel.BackendConfig = msg.Config

		// Clamp the configured tool version to what the backend reports for
		// the selected model.
		if mc, ok := msg.Config.ModelConfigs[a.dataModel.Config.Chat.Model]; ok {
			if a.dataModel.Config.Chat.ToolVersion == "" {
				a.dataModel.Config.Chat.ToolVersion = mc.ToolVersion
			}
			if a.dataModel.Config.Chat.MaxTokens > mc.MaxOutputTokens {
				a.dataModel.Config.Chat.MaxTokens = mc.MaxOutputTokens
			}
		}
		return a, nil

	case keyStatusMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] API key status fetch failed: %v", msg.Err)
			}
			return a, nil
		}
		a.dataModel.KeyStatus = msg.Status

		// No stored key and none in the backend environment: block sends
		// until the user supplies one in settings.
		if !msg.Status.HasKey && a.dataModel.Config.APIKey == "" && a.dataModel.Config.Chat.Provider == "anthropic" {
			a.dataModel.AuthError = "No API key configured"
		}
		return a, nil

	case authValidatedMsg:
		if msg.Err != nil {
			a.dataModel.AuthError = fmt.Sprintf("Auth check failed: %v", msg.Err)
			return a, nil
		}
		if msg.Result.Valid {
			a.dataModel.AuthError = ""
			a.statusNotice = "Credentials validated."
		} else {
			a.dataModel.AuthError = msg.Result.Error
		}
		return a, nil

	case healthCheckMsg:
		a.backendDown = msg.Err != nil
		if msg.Err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Backend health check failed: %v", msg.Err)
		}
		return a, nil

	case resetDoneMsg:
		if msg.Err != nil {
			a.statusNotice = fmt.Sprintf("Reset failed: %v", msg.Err)
			return a, nil
		}
		// A reset restarts the remote desktop; the old transcript, log and
		// history refer to an environment that no longer exists.
		a.dataModel.ClearConversation()
		a.statusNotice = msg.Result.Message
		a.updateViewportContent(true)
		return a, nil

	case desktopOpenedMsg:
		if msg.Err != nil {
			a.statusNotice = fmt.Sprintf("Could not open desktop viewer: %v", msg.Err)
		} else {
			a.statusNotice = "Desktop viewer opened in browser."
		}
		return a, nil
	}
	return a, nil
}
