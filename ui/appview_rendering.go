package ui

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"cutui/config"
	appmodel "cutui/model"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	if len(a.dataModel.Messages) == 0 {
		a.viewport.SetContent("No messages yet. Tell the agent what to do on the remote desktop.")
		return
	}

	var content strings.Builder

	for _, msg := range a.dataModel.Messages {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

		if msg.Role == appmodel.RoleUser {
			content.WriteString(formatUserMessage(timestamp, UserStyle.Render("You"), renderedOrPlain(msg)))
			continue
		}

		switch msg.Content.Type {
		case appmodel.ContentThinking:
			header := fmt.Sprintf("%s %s", timestamp, ThinkingStyle.Render("Thinking"))
			body := ThinkingStyle.Render(msg.Content.Thinking)
			content.WriteString(fmt.Sprintf("%s\n%s\n\n", header, body))

		case appmodel.ContentToolUse:
			header := fmt.Sprintf("%s %s", timestamp, ToolStyle.Render("Tool"))
			body := ToolStyle.Render(formatToolUse(msg.Content))
			content.WriteString(fmt.Sprintf("%s\n%s\n\n", header, body))

		case appmodel.ContentToolResult:
			header := fmt.Sprintf("%s %s", timestamp, ToolStyle.Render("Tool Result"))
			content.WriteString(fmt.Sprintf("%s\n%s\n\n", header, formatToolResult(msg.Content)))

		case appmodel.ContentError:
			header := fmt.Sprintf("%s %s", timestamp, ErrorStyle.Render("Error"))
			body := ErrorStyle.Render(msg.Content.Error)
			content.WriteString(fmt.Sprintf("%s\n%s\n\n", header, body))

		default:
			header := fmt.Sprintf("%s %s", timestamp, AssistantStyle.Render("Assistant"))
			content.WriteString(fmt.Sprintf("%s\n%s\n\n", header, renderedOrPlain(msg)))
		}
	}

	// Spinner trails the newest entry while a response is still streaming
	if a.dataModel.Streaming {
		content.WriteString(fmt.Sprintf("%s %s\n\n", a.loadingSpinner.View(), DimStyle.Render("waiting for the agent...")))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func renderedOrPlain(msg Message) string {
	if msg.Rendered != "" {
		return msg.Rendered
	}
	return plainContent(msg.Content)
}

// plainContent flattens one content variant to unstyled text, for clipboard
// export and as the pre-markdown fallback.
func plainContent(c appmodel.Content) string {
	switch c.Type {
	case appmodel.ContentText:
		return c.Text
	case appmodel.ContentThinking:
		return c.Thinking
	case appmodel.ContentToolUse:
		return formatToolUse(c)
	case appmodel.ContentToolResult:
		var parts []string
		if c.Output != "" {
			parts = append(parts, c.Output)
		}
		if c.Error != "" {
			parts = append(parts, "error: "+c.Error)
		}
		if c.Base64Image != "" {
			parts = append(parts, "[screenshot]")
		}
		return strings.Join(parts, "\n")
	case appmodel.ContentError:
		return c.Error
	}
	return ""
}

// formatToolUse renders a tool invocation as name(key=value, ...) with the
// keys in stable order.
func formatToolUse(c appmodel.Content) string {
	keys := make([]string, 0, len(c.Input))
	for k := range c.Input {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, fmt.Sprintf("%s=%v", k, c.Input[k]))
	}
	return fmt.Sprintf("%s(%s)", c.ToolName, strings.Join(args, ", "))
}

func formatToolResult(c appmodel.Content) string {
	var b strings.Builder
	if c.Output != "" {
		b.WriteString(c.Output)
	}
	if c.Error != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(ErrorStyle.Render(c.Error))
	}
	if c.Base64Image != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		// Decoded size, close enough from the base64 length
		kb := len(c.Base64Image) * 3 / 4 / 1024
		b.WriteString(DimStyle.Render(fmt.Sprintf("[screenshot captured, %d KB - view it in the desktop viewer, Alt+D]", kb)))
	}
	if b.Len() == 0 {
		return DimStyle.Render("(no output)")
	}
	return b.String()
}

func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	lines := strings.Split(content, "\n")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))
	for _, line := range lines {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}
	result.WriteString("\n")

	return result.String()
}

func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		startTime := time.Now()

		// Strip markdown link syntax so links appear as plain colored URLs
		// and the terminal emulator keeps them clickable.
		content = preprocessLinks(content)

		// Autolink is disabled so plain URLs stay plain text.
		defaultExt := markdown.Extensions()
		customExt := defaultExt &^ parser.Autolink
		p := parser.NewWithExtensions(customExt)
		r := markdown.NewRenderer(width-4, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		processed := fixMarkdownLinks(fixInlineCode(string(rendered)))

		if config.DebugLog != nil {
			config.DebugLog.Printf("Markdown rendered for message %d in %v", messageIndex, time.Since(startTime))
		}

		return markdownRenderedMsg{
			MessageIndex: messageIndex,
			Rendered:     strings.TrimRight(processed, "\n"),
		}
	}
}

func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

func fixInlineCode(s string) string {
	// Blue background + italic from the renderer reads badly on transparent
	// terminals; plain red text instead.
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func fixMarkdownLinks(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		// Skip code blocks (they carry the ┃ prefix from the renderer)
		if !strings.Contains(line, "┃") {
			lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
		}
	}
	return strings.Join(lines, "\n")
}
