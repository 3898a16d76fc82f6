package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Position shows where the learner is in a lesson, e.g. "Word 3 of 10",
// followed by a bar filled up to the current item.
type Position struct {
	Noun    string
	Current int // 1-based
	Total   int
	Width   int
}

// NewPosition creates a Position for item current of total.
func NewPosition(noun string, current, total, width int) Position {
	return Position{Noun: noun, Current: current, Total: total, Width: width}
}

// Label is the text shown before the bar.
func (p Position) Label() string {
	return fmt.Sprintf("%s %d of %d", p.Noun, p.Current, p.Total)
}

// filled returns how many of barWidth cells are filled.
func (p Position) filled(barWidth int) int {
	if p.Total <= 0 {
		return 0
	}
	n := barWidth * p.Current / p.Total
	return min(max(n, 0), barWidth)
}

func (p Position) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label()) + "  "
	barWidth := max(p.Width-lipgloss.Width(label), 4)
	n := p.filled(barWidth)

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", n)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-n))
}
