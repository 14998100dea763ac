package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uitable"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable(headers ...string) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = headerStyle.Render(h)
	}
	tbl.AddRow(row...)
	return tbl
}

// ratingBar renders a rating as filled and empty blocks.
func ratingBar(rating float64, max int) string {
	filled := int(rating + 0.5)
	if filled > max {
		filled = max
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + dimStyle.Render(strings.Repeat("░", max-filled))
}
