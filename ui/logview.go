package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	appmodel "cutui/model"
)

func (a AppView) handleLogViewUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.selectedLogIdx < len(a.dataModel.HTTPLog)-1 {
			a.selectedLogIdx++
			a.logViewNotice = ""
		}
		return a, nil

	case "k", "up":
		if a.selectedLogIdx > 0 {
			a.selectedLogIdx--
			a.logViewNotice = ""
		}
		return a, nil

	case "g":
		a.selectedLogIdx = 0
		return a, nil

	case "G":
		if len(a.dataModel.HTTPLog) > 0 {
			a.selectedLogIdx = len(a.dataModel.HTTPLog) - 1
		}
		return a, nil

	case "y":
		if a.selectedLogIdx >= 0 && a.selectedLogIdx < len(a.dataModel.HTTPLog) {
			entry := a.dataModel.HTTPLog[a.selectedLogIdx]
			clipboard.WriteAll(formatLogEntryText(entry))
			a.logViewNotice = "Exchange copied to clipboard."
		}
		return a, nil

	case "esc":
		a.showLogView = false
		a.logViewNotice = ""
		return a, nil
	}
	return a, nil
}

func renderLogView(entries []appmodel.HTTPLogEntry, selectedIdx int, notice string, width, height int) string {
	modalWidth := width - 6
	if modalWidth > 100 {
		modalWidth = 100
	}
	modalHeight := height - 4

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("HTTP Exchange Log")

	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(fmt.Sprintf("%d exchanges with the model provider", len(entries)))

	var lines []string
	if len(entries) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render("No exchanges logged yet"))
	} else {
		// Reserve space for title, borders, detail pane and footer
		maxLines := modalHeight - 14
		if maxLines < 3 {
			maxLines = 3
		}

		startIdx := 0
		if len(entries) > maxLines && selectedIdx >= maxLines {
			startIdx = selectedIdx - maxLines + 1
		}

		for i := startIdx; i < len(entries) && i < startIdx+maxLines; i++ {
			entry := entries[i]

			indicator := "  "
			if i == selectedIdx {
				indicator = "▶ "
			}

			line := fmt.Sprintf("%s%s %s %s %s",
				indicator,
				entry.Timestamp.Format("[15:04:05]"),
				entry.Request.Method,
				runewidth.Truncate(entry.Request.URL, modalWidth-30, "..."),
				formatLogOutcome(entry))

			lineStyle := lipgloss.NewStyle()
			if i == selectedIdx {
				lineStyle = lineStyle.Foreground(successColor).Bold(true)
			}
			lines = append(lines, lineStyle.Render(runewidth.Truncate(line, modalWidth, "...")))
		}

		lines = append(lines, "")
		lines = append(lines, renderLogDetail(entries[selectedIdx], modalWidth)...)
	}

	if notice != "" {
		lines = append(lines, "", DimStyle.Render(notice))
	}

	footerSection := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(FormatFooter("j/k", "Navigate", "g/G", "Top/Bottom", "y", "Copy", "Esc", "Close"))

	sections := []string{titleSection, headerSection, ""}
	sections = append(sections, lines...)
	sections = append(sections, "", footerSection)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

// renderLogDetail shows the selected exchange expanded under the list.
func renderLogDetail(entry appmodel.HTTPLogEntry, modalWidth int) []string {
	detail := []string{
		DimStyle.Render(strings.Repeat("─", modalWidth)),
		fmt.Sprintf("%s %s", TitleStyle.Render(entry.Request.Method), entry.Request.URL),
	}

	switch {
	case entry.Response != nil:
		statusStyle := AssistantStyle
		if entry.Response.StatusCode >= 400 {
			statusStyle = ErrorStyle
		}
		detail = append(detail, "Status: "+statusStyle.Render(fmt.Sprintf("%d", entry.Response.StatusCode)))
	case entry.Error != "":
		detail = append(detail, "Error: "+ErrorStyle.Render(entry.Error))
	default:
		detail = append(detail, DimStyle.Render("No response recorded"))
	}

	if entry.Request.Body != "" {
		body := entry.Request.Body
		if len(body) > 500 {
			body = body[:500] + "..."
		}
		detail = append(detail, "", DimStyle.Render("Request body:"))
		for _, line := range strings.Split(body, "\n") {
			detail = append(detail, runewidth.Truncate(line, modalWidth, "..."))
		}
	}

	return detail
}

func formatLogOutcome(entry appmodel.HTTPLogEntry) string {
	switch {
	case entry.Response != nil && entry.Response.StatusCode >= 400:
		return ErrorStyle.Render(fmt.Sprintf("→ %d", entry.Response.StatusCode))
	case entry.Response != nil:
		return fmt.Sprintf("→ %d", entry.Response.StatusCode)
	case entry.Error != "":
		return ErrorStyle.Render("→ error")
	}
	return DimStyle.Render("→ pending")
}

func formatLogEntryText(entry appmodel.HTTPLogEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", entry.Timestamp.Format("15:04:05"), entry.Request.Method, entry.Request.URL)
	if entry.Response != nil {
		fmt.Fprintf(&b, "Status: %d\n", entry.Response.StatusCode)
	}
	if entry.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", entry.Error)
	}
	if entry.Request.Body != "" {
		fmt.Fprintf(&b, "Body:\n%s\n", entry.Request.Body)
	}
	return b.String()
}
