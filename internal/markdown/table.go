package markdown

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/geekbozu/CopilotTaskMaster/internal/model"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
)

func RenderTaskTable(tasks []model.Summary) string {
	if len(tasks) == 0 {
		return "No tasks found."
	}
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		status, _ := t.Metadata.Get(model.KeyStatus)
		priority, _ := t.Metadata.Get(model.KeyPriority)
		tags, _ := t.Metadata.Get(model.KeyTags)
		rows[i] = []string{
			t.Path,
			t.Title,
			RenderStatus(status.Scalar()),
			PriorityStyle(priority.Scalar()).Render(priority.Scalar()),
			tags.String(),
		}
	}
	return RenderTable([]string{"Path", "Title", "Status", "Pri", "Tags"}, rows)
}

// RenderTable draws a bordered table for arbitrary rows. Callers that rank
// or annotate their rows build them and come here.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}
