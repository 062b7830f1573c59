package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cutui/config"
	appmodel "cutui/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Update spinner FIRST to handle TickMsg before anything else
	if a.dataModel.Streaming {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1), separator (1), textarea (3) and status bar (1)
		viewportHeight := a.height - 6
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)
		return a, nil

	case tea.KeyMsg:
		// PRIORITY 0: Always-global quit
		if msg.String() == "alt+q" {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Alt+Q pressed - quitting")
			}
			a.dataModel.StopStream()
			return a, tea.Quit
		}

		// PRIORITY 1: Modal toggle shortcuts (close current modal, open new one)
		switch msg.String() {
		case "alt+h":
			a.showHelp = !a.showHelp
			return a, nil

		case "alt+a":
			wasOpen := a.showAbout
			a.closeAllModals()
			a.showAbout = !wasOpen
			return a, nil

		case "alt+s":
			wasOpen := a.showSettings
			a.closeAllModals()
			a.showSettings = !wasOpen
			if a.showSettings {
				a.openSettings()
			}
			return a, nil

		case "alt+m":
			wasOpen := a.showModelSelector
			a.closeAllModals()
			a.showModelSelector = !wasOpen
			if a.showModelSelector {
				a.openModelSelector()
			}
			return a, nil

		case "alt+l":
			wasOpen := a.showLogView
			a.closeAllModals()
			a.showLogView = !wasOpen
			if a.showLogView {
				a.selectedLogIdx = len(a.dataModel.HTTPLog) - 1
				if a.selectedLogIdx < 0 {
					a.selectedLogIdx = 0
				}
			}
			return a, nil

		case "alt+r":
			a.closeAllModals()
			a.confirmReset = true
			return a, nil

		case "alt+d":
			a.statusNotice = "Opening desktop viewer..."
			return a, a.dataModel.OpenDesktopViewer()

		case "alt+n":
			// New conversation: everything goes together, no stale entries
			if a.dataModel.Streaming {
				a.statusNotice = "Stop the stream before clearing the conversation."
				return a, nil
			}
			a.closeAllModals()
			a.dataModel.ClearConversation()
			a.textarea.Reset()
			a.statusNotice = ""
			a.updateViewportContent(true)
			return a, nil
		}

		// PRIORITY 2: Modal-specific key handling (order matches View rendering)
		if a.showHelp {
			if msg.String() == "esc" {
				a.showHelp = false
			}
			return a, nil
		}

		if a.confirmReset {
			return a.handleResetConfirmUpdate(msg)
		}

		if a.showModelSelector {
			return a.handleModelSelectorUpdate(msg)
		}

		if a.showSettings {
			return a.handleSettingsUpdate(msg)
		}

		if a.showLogView {
			return a.handleLogViewUpdate(msg)
		}

		if a.showAbout {
			if msg.String() == "esc" || msg.String() == "enter" {
				a.showAbout = false
			}
			return a, nil
		}

		// PRIORITY 3: Tab handling (chat input)
		if msg.String() == "tab" && !a.dataModel.Streaming {
			a.textarea.InsertString("   ")
			return a, nil
		}

		// PRIORITY 4: Streaming cancellation (only if no modal open)
		if msg.String() == "esc" && a.dataModel.Streaming {
			a.dataModel.StopStream()
			return a, nil
		}

		// Handle Enter for sending messages - DON'T let textarea process it.
		// Alt+Enter passes through for newlines.
		if msg.Type == tea.KeyEnter && !msg.Alt {
			if strings.TrimSpace(a.textarea.Value()) == "" {
				return a, nil
			}

			if ok, reason := a.dataModel.CanSend(); !ok {
				a.statusNotice = reason
				return a, nil
			}

			userMsg := a.textarea.Value()
			a.textarea.Reset()
			a.statusNotice = ""

			if config.DebugLog != nil {
				config.DebugLog.Printf("Enter pressed - sending message (%d chars)", len(userMsg))
			}

			a.dataModel.AppendUserTurn(userMsg)
			a.dataModel.AppendMessage(appmodel.RoleUser, appmodel.Content{
				Type: appmodel.ContentText,
				Text: userMsg,
			})
			userMessageIndex := len(a.dataModel.Messages) - 1

			a.loadingSpinner = spinner.New()
			a.loadingSpinner.Spinner = spinner.Dot
			a.loadingSpinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

			a.updateViewportContent(true)

			return a, tea.Batch(
				a.renderMarkdownAsync(userMessageIndex, userMsg),
				a.dataModel.StartStream(),
				a.loadingSpinner.Tick,
			)
		}

		switch msg.String() {
		case "alt+y":
			// Copy last assistant text message
			for i := len(a.dataModel.Messages) - 1; i >= 0; i-- {
				m := a.dataModel.Messages[i]
				if m.Role == appmodel.RoleAssistant && m.Content.Type == appmodel.ContentText {
					clipboard.WriteAll(m.Content.Text)
					a.statusNotice = "Copied last response."
					return a, nil
				}
			}
			return a, nil

		case "alt+c":
			// Copy whole conversation as plain text
			var allText strings.Builder
			for _, m := range a.dataModel.Messages {
				role := m.Role
				switch role {
				case appmodel.RoleUser:
					role = "You"
				case appmodel.RoleAssistant:
					role = "Assistant"
				case appmodel.RoleTool:
					role = "Tool"
				}
				allText.WriteString(fmt.Sprintf("[%s] %s:\n%s\n\n",
					m.Timestamp.Format("15:04"),
					role,
					plainContent(m.Content)))
			}
			clipboard.WriteAll(allText.String())
			a.statusNotice = "Copied conversation."
			return a, nil

		case "alt+j", "alt+down":
			a.viewport.HalfViewDown()
			return a, nil

		case "alt+k", "alt+up":
			a.viewport.HalfViewUp()
			return a, nil

		case "alt+J", "pgdown":
			a.viewport.ViewDown()
			return a, nil

		case "alt+K", "pgup":
			a.viewport.ViewUp()
			return a, nil

		case "alt+g":
			a.viewport.GotoTop()
			return a, nil

		case "alt+G":
			a.viewport.GotoBottom()
			return a, nil
		}

	case streamEventMsg, streamDoneMsg, streamStoppedMsg, streamErrorMsg:
		return a.handleStreamMsg(msg)

	case backendConfigMsg, keyStatusMsg, authValidatedMsg, healthCheckMsg, resetDoneMsg, desktopOpenedMsg:
		return a.handleBackendMsg(msg)

	case markdownRenderedMsg:
		if msg.MessageIndex >= 0 && msg.MessageIndex < len(a.dataModel.Messages) {
			a.dataModel.Messages[msg.MessageIndex].Rendered = msg.Rendered
			a.updateViewportContent(true)
		}
		return a, nil
	}

	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)

	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// openModelSelector seeds the selector from the backend's capability tables.
func (a *AppView) openModelSelector() {
	a.modelList = nil
	if a.dataModel.BackendConfig != nil {
		for name := range a.dataModel.BackendConfig.ModelConfigs {
			a.modelList = append(a.modelList, name)
		}
		sort.Strings(a.modelList)
	}
	if len(a.modelList) == 0 {
		a.showModelSelector = false
		a.statusNotice = "Model list unavailable. Is the backend running?"
		return
	}

	a.selectedModelIdx = 0
	for i, name := range a.modelList {
		if name == a.dataModel.Config.Chat.Model {
			a.selectedModelIdx = i
			break
		}
	}
	a.modelFilterMode = false
	a.modelFilterInput.SetValue("")
	a.filteredModelList = nil
}

func (a AppView) handleResetConfirmUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		a.confirmReset = false
		a.statusNotice = "Resetting desktop environment..."
		return a, a.dataModel.ResetEnvironment()
	case "n", "esc":
		a.confirmReset = false
		return a, nil
	}
	return a, nil
}
