package ui

import (
	"github.com/charmbracelet/lipgloss"
)

func renderResetConfirmModal(width, height int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(warningColor).
		Render("⚠  Reset Desktop Environment")

	message := lipgloss.JoinVertical(
		lipgloss.Left,
		"This restarts the remote desktop and clears the conversation,",
		"the exchange log and the message history.",
		"",
		"The agent loses everything it was doing.",
	)

	footer := FormatFooter("y/Enter", "Reset", "n/Esc", "Cancel")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		"",
		footer,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(warningColor).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(content))
}
