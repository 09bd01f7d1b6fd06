package prompt

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles renders operator-facing messages for one writer. Colour is
// dropped automatically when the writer is not a terminal.
type Styles struct {
	Question lipgloss.Style
	Error    lipgloss.Style
	Tip      lipgloss.Style
}

// NewStyles builds Styles bound to w's terminal capabilities.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Question: r.NewStyle().Bold(true),
		Error:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Tip:      r.NewStyle().Faint(true),
	}
}
