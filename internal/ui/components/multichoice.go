package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// ChoiceMark is how an option is drawn once the answer is locked in.
type ChoiceMark int

const (
	ChoicePlain   ChoiceMark = iota // Dimmed
	ChoiceCorrect                   // The right answer
	ChoiceWrong                     // The chosen answer, when wrong
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector. It only moves the cursor; the
// owning screen decides what Enter does and locks the component with the
// marks to show.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	marks    []ChoiceMark
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Arrow keys move the cursor; a letter
// or digit jumps to that option.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked() {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	}

	if idx, ok := optionIndex(key); ok && idx < len(m.Options) {
		m.Cursor = idx
	}
	return m, nil
}

// optionIndex maps "a".."f" and "1".."6" to an option index.
func optionIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= 'a' && c < 'a'+byte(len(choiceLabels)):
		return int(c - 'a'), true
	case c >= '1' && c < '1'+byte(len(choiceLabels)):
		return int(c - '1'), true
	}
	return 0, false
}

// Chosen returns the option under the cursor.
func (m MultiChoice) Chosen() string {
	if m.Cursor < 0 || m.Cursor >= len(m.Options) {
		return ""
	}
	return m.Options[m.Cursor]
}

// Lock freezes the cursor and shows marks, one per option.
func (m MultiChoice) Lock(marks []ChoiceMark) MultiChoice {
	m.marks = marks
	return m
}

// Locked reports whether the answer has been locked in.
func (m MultiChoice) Locked() bool {
	return m.marks != nil
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	var b strings.Builder
	b.WriteString(questionStyle.Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}
		prefix := "  "
		if i == m.Cursor && !m.Locked() {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Locked() && i < len(m.marks) && m.marks[i] == ChoiceCorrect:
			style = theme.Correct
			line += "  ✓"
		case m.Locked() && i < len(m.marks) && m.marks[i] == ChoiceWrong:
			style = theme.Incorrect
			line += "  ✗"
		case m.Locked():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
