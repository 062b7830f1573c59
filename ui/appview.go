package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cutui/backend"
	"cutui/config"
	appmodel "cutui/model"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// Loading spinner (bubbles/spinner) shown while a response streams
	loadingSpinner spinner.Model

	// Transient one-line notice on the status bar
	statusNotice string

	// Backend reachability (health check result)
	backendDown bool

	showHelp  bool
	showAbout bool

	// Model selector
	showModelSelector bool
	modelList         []string
	selectedModelIdx  int
	modelFilterMode   bool
	modelFilterInput  textinput.Model
	filteredModelList []string

	// Settings modal
	showSettings       bool
	settingsFields     []SettingField
	selectedSettingIdx int
	settingsEditMode   bool
	settingsEditInput  textinput.Model
	settingsHasChanges bool
	settingsSaveError  string

	// Exchange log viewer
	showLogView    bool
	selectedLogIdx int
	logViewNotice  string

	// Reset confirmation modal
	confirmReset bool
}

func NewAppView(cfg *config.Config, client *backend.Client, version, license string) AppView {
	ta := textarea.New()
	ta.Placeholder = "Tell the agent what to do on the remote desktop..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Custom KeyMap: Alt+Enter for newline, Enter alone does nothing (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// Set dynamic prompt: "> " for first line, "| " for subsequent lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	modelFilterInput := textinput.New()
	modelFilterInput.Prompt = "Filter: "
	modelFilterInput.CharLimit = 64

	dataModel := appmodel.NewModel(cfg, client, version, license)

	return AppView{
		dataModel:         dataModel,
		textarea:          ta,
		viewport:          vp,
		ready:             false,
		modelFilterInput:  modelFilterInput,
		filteredModelList: []string{},
		statusNotice:      fmt.Sprintf("Desktop viewer: %s (Alt+D)", cfg.DesktopViewerURL()),
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		a.dataModel.FetchBackendConfig(),
		a.dataModel.FetchKeyStatus(),
		a.dataModel.CheckHealth(),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading CUTUI..."
	}

	// Modal rendering order (top to bottom layers):
	// 1. Help (always on top - can peek while in other modals)
	// 2. Reset confirmation
	// 3. Model selector
	// 4. Settings
	// 5. Exchange log viewer
	// 6. About

	if a.showHelp {
		return renderHelpModal(a.width, a.height)
	}

	if a.confirmReset {
		return renderResetConfirmModal(a.width, a.height)
	}

	if a.showModelSelector {
		return renderModelSelector(a.getModelList(), a.selectedModelIdx, a.dataModel.Config.Chat.Model, a.modelFilterMode, a.modelFilterInput, a.dataModel.BackendConfig, a.width, a.height)
	}

	if a.showSettings {
		return renderSettings(a.settingsFields, a.selectedSettingIdx, a.settingsEditMode, a.settingsEditInput, a.settingsHasChanges, a.settingsSaveError, a.width, a.height)
	}

	if a.showLogView {
		return renderLogView(a.dataModel.HTTPLog, a.selectedLogIdx, a.logViewNotice, a.width, a.height)
	}

	if a.showAbout {
		return renderAboutModal(a.width, a.height, a.dataModel.Version, a.dataModel.License)
	}

	// Title bar - "CUTUI - provider/model"
	titleText := AssistantStyle.Render("CUTUI")
	modelText := TitleStyle.Render(fmt.Sprintf(" - %s/%s", a.dataModel.Config.Chat.Provider, a.dataModel.Config.Chat.Model))

	streamText := ""
	if a.dataModel.Streaming {
		streamText = ToolStyle.Render(fmt.Sprintf(" | streaming %s", a.loadingSpinner.View()))
	}

	healthText := ""
	if a.backendDown {
		healthText = ErrorStyle.Render(" | backend unreachable")
	}

	title := titleText + modelText + streamText + healthText

	// Empty separator line forces spacing below the header
	separator := ""

	viewportView := a.viewport.View()
	inputView := a.textarea.View()

	// Auth banner above the status bar while credentials fail validation
	banner := ""
	if a.dataModel.AuthError != "" {
		banner = ErrorStyle.Render(fmt.Sprintf("⚠ %s (Alt+S to fix)", a.dataModel.AuthError))
	} else if a.statusNotice != "" {
		banner = DimStyle.Render(a.statusNotice)
	}

	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("Alt+Q %s  Alt+S %s  Alt+M %s  Alt+L %s  Alt+D %s  Alt+R %s  Enter %s  Esc %s",
		descStyle.Render("Quit"),
		descStyle.Render("Settings"),
		descStyle.Render("Models"),
		descStyle.Render("HTTP Log"),
		descStyle.Render("Desktop"),
		descStyle.Render("Reset"),
		descStyle.Render("Send"),
		descStyle.Render("Stop"),
	)
	statusBar = StatusStyle.Render(statusBar)

	parts := []string{title, separator, viewportView, inputView}
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a AppView) getModelList() []string {
	if a.modelFilterMode && len(a.filteredModelList) > 0 {
		return a.filteredModelList
	}
	return a.modelList
}

func (a *AppView) closeAllModals() {
	a.showHelp = false
	a.showAbout = false
	a.showModelSelector = false
	a.showSettings = false
	a.showLogView = false
	a.confirmReset = false

	a.modelFilterMode = false
	a.settingsEditMode = false
	a.logViewNotice = ""

	if a.modelFilterInput.Focused() {
		a.modelFilterInput.Blur()
	}
	if a.settingsEditInput.Focused() {
		a.settingsEditInput.Blur()
	}
}
