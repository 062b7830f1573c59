package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cutui/config"
)

// openSettings seeds the settings fields from the live configuration.
func (a *AppView) openSettings() {
	chat := a.dataModel.Config.Chat

	maskedKey := ""
	if a.dataModel.Config.APIKey != "" {
		maskedKey = maskKey(a.dataModel.Config.APIKey)
	} else if a.dataModel.KeyStatus != nil && a.dataModel.KeyStatus.HasKey {
		maskedKey = a.dataModel.KeyStatus.MaskedKey + " (backend env)"
	}

	a.settingsFields = []SettingField{
		{
			Label:        "Provider",
			Value:        chat.Provider,
			DefaultValue: config.DefaultProvider,
			Type:         SettingTypeProvider,
		},
		{
			Label:        "Model",
			Value:        chat.Model,
			DefaultValue: config.DefaultModel,
			Type:         SettingTypeModel,
		},
		{
			Label:        "API Key",
			Value:        maskedKey,
			DefaultValue: "",
			Type:         SettingTypeAPIKey,
			Masked:       true,
		},
		{
			Label:        "System Prompt Suffix",
			Value:        chat.SystemPromptSuffix,
			DefaultValue: "",
			Type:         SettingTypeSystemPromptSuffix,
		},
		{
			Label:        "Max Output Tokens",
			Value:        strconv.Itoa(chat.MaxTokens),
			DefaultValue: strconv.Itoa(config.DefaultMaxTokens),
			Type:         SettingTypeMaxTokens,
		},
		{
			Label:        "Thinking Budget",
			Value:        strconv.Itoa(chat.ThinkingBudget),
			DefaultValue: "0",
			Type:         SettingTypeThinkingBudget,
		},
		{
			Label:        "Recent Images Kept",
			Value:        strconv.Itoa(chat.OnlyNMostRecentImages),
			DefaultValue: strconv.Itoa(config.DefaultRecentImgs),
			Type:         SettingTypeRecentImages,
		},
		{
			Label:        "Tool Version",
			Value:        chat.ToolVersion,
			DefaultValue: config.DefaultToolVersion,
			Type:         SettingTypeToolVersion,
		},
		{
			Label:        "Token-Efficient Tools",
			Value:        boolToString(chat.TokenEfficientToolsBeta),
			DefaultValue: "false",
			Type:         SettingTypeTokenEfficientTools,
		},
	}
	a.selectedSettingIdx = 0
	a.settingsEditMode = false
	a.settingsHasChanges = false
	a.settingsSaveError = ""

	a.settingsEditInput = textinput.New()
	a.settingsEditInput.Width = 50
	a.settingsEditInput.CharLimit = 400
}

func (a AppView) handleSettingsUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.settingsEditMode {
		switch msg.String() {
		case "enter":
			field := &a.settingsFields[a.selectedSettingIdx]
			field.Value = a.settingsEditInput.Value()
			field.ErrorMsg = ""
			if field.Type == SettingTypeAPIKey {
				// Keep the raw key aside so saving stores the real value,
				// not the mask shown in the list.
				a.dataModel.Config.APIKey = a.settingsEditInput.Value()
				field.Value = maskKey(a.settingsEditInput.Value())
			}
			a.settingsEditMode = false
			a.settingsEditInput.Blur()
			a.settingsHasChanges = true
			return a, nil
		case "esc":
			a.settingsEditMode = false
			a.settingsEditInput.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.settingsEditInput, cmd = a.settingsEditInput.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "j", "down":
		if a.selectedSettingIdx < len(a.settingsFields)-1 {
			a.selectedSettingIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedSettingIdx > 0 {
			a.selectedSettingIdx--
		}
		return a, nil

	case "enter":
		field := a.settingsFields[a.selectedSettingIdx]
		if field.Type == SettingTypeTokenEfficientTools {
			// Toggle in place, no edit box for booleans
			a.settingsFields[a.selectedSettingIdx].Value = boolToString(field.Value != "true")
			a.settingsHasChanges = true
			return a, nil
		}

		a.settingsEditMode = true
		a.settingsEditInput.SetValue("")
		if field.Type == SettingTypeAPIKey {
			a.settingsEditInput.EchoMode = textinput.EchoPassword
			a.settingsEditInput.Placeholder = "Enter new API key (blank clears it)"
		} else {
			a.settingsEditInput.EchoMode = textinput.EchoNormal
			a.settingsEditInput.Placeholder = ""
			a.settingsEditInput.SetValue(field.Value)
		}
		a.settingsEditInput.Focus()
		return a, textinput.Blink

	case "d":
		field := &a.settingsFields[a.selectedSettingIdx]
		field.Value = field.DefaultValue
		field.ErrorMsg = ""
		a.settingsHasChanges = true
		return a, nil

	case "s":
		return a.saveSettings()

	case "esc":
		a.showSettings = false
		a.settingsSaveError = ""
		return a, nil
	}
	return a, nil
}

// saveSettings validates the fields, persists them and revalidates auth
// against the backend.
func (a AppView) saveSettings() (tea.Model, tea.Cmd) {
	cfg := a.dataModel.Config
	for i := range a.settingsFields {
		field := &a.settingsFields[i]
		switch field.Type {
		case SettingTypeProvider:
			cfg.Chat.Provider = strings.TrimSpace(field.Value)
		case SettingTypeModel:
			cfg.Chat.Model = strings.TrimSpace(field.Value)
		case SettingTypeAPIKey:
			// cfg.APIKey was set when the field was committed
		case SettingTypeSystemPromptSuffix:
			cfg.Chat.SystemPromptSuffix = field.Value
		case SettingTypeMaxTokens:
			n, err := strconv.Atoi(strings.TrimSpace(field.Value))
			if err != nil || n <= 0 {
				field.ErrorMsg = "must be a positive number"
				a.settingsSaveError = "Fix the highlighted fields first."
				return a, nil
			}
			cfg.Chat.MaxTokens = n
		case SettingTypeThinkingBudget:
			n, err := strconv.Atoi(strings.TrimSpace(field.Value))
			if err != nil || n < 0 {
				field.ErrorMsg = "must be a number >= 0"
				a.settingsSaveError = "Fix the highlighted fields first."
				return a, nil
			}
			cfg.Chat.ThinkingBudget = n
		case SettingTypeRecentImages:
			n, err := strconv.Atoi(strings.TrimSpace(field.Value))
			if err != nil || n < 0 {
				field.ErrorMsg = "must be a number >= 0"
				a.settingsSaveError = "Fix the highlighted fields first."
				return a, nil
			}
			cfg.Chat.OnlyNMostRecentImages = n
		case SettingTypeToolVersion:
			cfg.Chat.ToolVersion = strings.TrimSpace(field.Value)
		case SettingTypeTokenEfficientTools:
			cfg.Chat.TokenEfficientToolsBeta = field.Value == "true"
		}
	}

	if err := cfg.Save(); err != nil {
		a.settingsSaveError = fmt.Sprintf("Save failed: %v", err)
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Settings] Save failed: %v", err)
		}
		return a, nil
	}

	a.settingsHasChanges = false
	a.settingsSaveError = ""
	a.showSettings = false
	a.statusNotice = "Settings saved."

	return a, tea.Batch(
		a.dataModel.ValidateAuth(),
		a.dataModel.FetchBackendConfig(),
	)
}

func renderSettings(fields []SettingField, selectedIdx int, editMode bool, editInput textinput.Model, hasChanges bool, saveError string, width, height int) string {
	modalWidth := width - 10
	if modalWidth > 80 {
		modalWidth = 80
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Settings")

	header := "Streaming parameters for the next turn"
	if hasChanges {
		header = "Unsaved changes"
	}
	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(header)

	var lines []string
	for i, field := range fields {
		indicator := "  "
		if i == selectedIdx {
			indicator = "▶ "
		}

		value := field.Value
		if value == "" {
			value = DimStyle.Render("(not set)")
		}

		line := fmt.Sprintf("%s%-22s %s", indicator, field.Label, value)
		if field.ErrorMsg != "" {
			line += ErrorStyle.Render("  ✗ " + field.ErrorMsg)
		}

		lineStyle := lipgloss.NewStyle()
		if i == selectedIdx {
			lineStyle = lineStyle.Foreground(successColor).Bold(true)
		}
		lines = append(lines, lineStyle.Render(line))

		if editMode && i == selectedIdx {
			lines = append(lines, "    "+editInput.View())
		}
	}

	var footerText string
	if editMode {
		footerText = FormatFooter("Enter", "Apply", "Esc", "Cancel")
	} else {
		footerText = FormatFooter("j/k", "Navigate", "Enter", "Edit", "d", "Default", "s", "Save", "Esc", "Close")
	}
	footerSection := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footerText)

	sections := []string{titleSection, headerSection, ""}
	sections = append(sections, lines...)
	sections = append(sections, "")
	if saveError != "" {
		sections = append(sections, ErrorStyle.Render(saveError), "")
	}
	sections = append(sections, footerSection)

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", 8) + key[len(key)-4:]
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
