package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"cutui/backend"
	"cutui/config"
)

func (a AppView) handleModelSelectorUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modelFilterMode {
		switch msg.String() {
		case "esc":
			a.modelFilterMode = false
			a.modelFilterInput.Blur()
			a.modelFilterInput.SetValue("")
			a.filteredModelList = nil
			return a, nil

		case "enter":
			return a.selectModel()

		case "alt+j", "alt+down":
			if a.selectedModelIdx < len(a.getModelList())-1 {
				a.selectedModelIdx++
			}
			return a, nil

		case "alt+k", "alt+up":
			if a.selectedModelIdx > 0 {
				a.selectedModelIdx--
			}
			return a, nil
		}

		var cmd tea.Cmd
		a.modelFilterInput, cmd = a.modelFilterInput.Update(msg)

		query := a.modelFilterInput.Value()
		if query == "" {
			a.filteredModelList = nil
		} else {
			matches := fuzzy.Find(query, a.modelList)
			a.filteredModelList = make([]string, 0, len(matches))
			for _, m := range matches {
				a.filteredModelList = append(a.filteredModelList, m.Str)
			}
		}
		a.selectedModelIdx = 0
		return a, cmd
	}

	switch msg.String() {
	case "j", "down":
		if a.selectedModelIdx < len(a.getModelList())-1 {
			a.selectedModelIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedModelIdx > 0 {
			a.selectedModelIdx--
		}
		return a, nil

	case "/":
		a.modelFilterMode = true
		a.modelFilterInput.Focus()
		a.modelFilterInput.SetValue("")
		a.filteredModelList = nil
		a.selectedModelIdx = 0
		return a, textinput.Blink

	case "enter":
		return a.selectModel()

	case "esc":
		a.showModelSelector = false
		return a, nil
	}
	return a, nil
}

// selectModel applies the highlighted model and the capability limits the
// backend reports for it, then persists the change.
func (a AppView) selectModel() (tea.Model, tea.Cmd) {
	list := a.getModelList()
	if a.selectedModelIdx < 0 || a.selectedModelIdx >= len(list) {
		return a, nil
	}
	name := list[a.selectedModelIdx]

	cfg := a.dataModel.Config
	cfg.Chat.Model = name
	if a.dataModel.BackendConfig != nil {
		if mc, ok := a.dataModel.BackendConfig.ModelConfigs[name]; ok {
			cfg.Chat.ToolVersion = mc.ToolVersion
			if cfg.Chat.MaxTokens > mc.MaxOutputTokens {
				cfg.Chat.MaxTokens = mc.DefaultOutputTokens
			}
			if !mc.HasThinking {
				cfg.Chat.ThinkingBudget = 0
			}
		}
	}

	if err := cfg.Save(); err != nil {
		a.statusNotice = fmt.Sprintf("Model switched but saving failed: %v", err)
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Model switch save failed: %v", err)
		}
	} else {
		a.statusNotice = "Model: " + name
	}

	a.showModelSelector = false
	a.modelFilterMode = false
	a.modelFilterInput.Blur()
	a.modelFilterInput.SetValue("")
	a.filteredModelList = nil
	return a, nil
}

func renderModelSelector(models []string, selectedIdx int, currentModel string, filterMode bool, filterInput textinput.Model, backendCfg *backend.ConfigResponse, width, height int) string {
	modalWidth := width - 10
	if modalWidth > 80 {
		modalWidth = 80
	}
	modalHeight := height - 6

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Select Model")

	var header string
	if filterMode {
		header = filterInput.View()
	} else {
		header = fmt.Sprintf("%d models", len(models))
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

	var modelLines []string
	maxLines := modalHeight - 8

	if len(models) == 0 {
		emptyMsg := "No models available"
		if filterMode {
			emptyMsg = "No matches found"
		}
		modelLines = append(modelLines, lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render(emptyMsg))
	} else {
		startIdx := 0
		endIdx := len(models)

		if len(models) > maxLines {
			if selectedIdx < maxLines/2 {
				endIdx = maxLines
			} else if selectedIdx >= len(models)-maxLines/2 {
				startIdx = len(models) - maxLines
			} else {
				startIdx = selectedIdx - maxLines/2
				endIdx = startIdx + maxLines
			}
		}

		for i := startIdx; i < endIdx && i < len(models); i++ {
			name := models[i]

			indicator := "  "
			if i == selectedIdx {
				indicator = "▶ "
			}

			currentMarker := ""
			if name == currentModel {
				currentMarker = " (current)"
			}

			// Capability tags from the backend's model table
			capability := ""
			if backendCfg != nil {
				if mc, ok := backendCfg.ModelConfigs[name]; ok {
					capability = fmt.Sprintf("  %s", mc.ToolVersion)
					if mc.HasThinking {
						capability += "  [thinking]"
					}
				}
			}

			line := fmt.Sprintf("%s%s%s%s", indicator, name, currentMarker, DimStyle.Render(capability))

			lineStyle := lipgloss.NewStyle()
			if i == selectedIdx {
				lineStyle = lineStyle.Foreground(successColor).Bold(true)
			} else if name == currentModel {
				lineStyle = lineStyle.Foreground(accentColor).Bold(true)
			}

			modelLines = append(modelLines, lipgloss.NewStyle().
				Width(modalWidth).
				Render(lineStyle.Render(line)))
		}
	}

	emptyLine := strings.Repeat(" ", modalWidth)
	modelLines = append([]string{emptyLine}, modelLines...)
	modelLines = append(modelLines, emptyLine)

	var footerText string
	if filterMode {
		footerText = FormatFooter("Type", "to filter", "Alt+J/K", "Navigate", "Enter", "Select", "Esc", "Cancel")
	} else {
		footerText = FormatFooter("/", "Filter", "j/k", "Navigate", "Enter", "Select", "Esc", "Exit")
	}
	footerSection := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footerText)

	sections := []string{titleSection, headerSection}
	sections = append(sections, modelLines...)
	sections = append(sections, footerSection)

	content := strings.Join(sections, "\n")

	modalStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return modalStyle.Render(content)
}
