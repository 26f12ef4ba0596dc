package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// StatusStyle picks a color for the conventional status values; anything
// unrecognized renders as open.
func StatusStyle(status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case "done", "closed":
		return doneStyle
	case "in-progress", "in_progress":
		return activeStyle
	case "blocked":
		return urgentStyle
	default:
		return openStyle
	}
}

// PriorityStyle highlights high/critical priorities.
func PriorityStyle(priority string) lipgloss.Style {
	switch strings.ToLower(priority) {
	case "high", "critical":
		return urgentStyle
	default:
		return openStyle
	}
}

func RenderField(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func RenderStatus(status string) string {
	return StatusStyle(status).Render(status)
}

func RenderCardHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}
