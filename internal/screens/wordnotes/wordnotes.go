// Package wordnotes is the personal word list: a form to add or edit notes
// and the list of notes taken this session.
package wordnotes

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/notes"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

const (
	fieldWord = iota
	fieldTranslation
	fieldNote
	fieldCount

	// focusList is the focus index of the note list, after the form fields.
	focusList = fieldCount
)

// WordNotesScreen edits the notes book.
type WordNotesScreen struct {
	deps     *screen.Deps
	fields   [fieldCount]components.TextInput
	language notes.Language
	focus    int

	selected int
	editing  int // index being edited, or -1
	status   string
	errMsg   string
}

var _ screen.Screen = (*WordNotesScreen)(nil)
var _ screen.KeyHintProvider = (*WordNotesScreen)(nil)

// New creates a WordNotesScreen.
func New(deps *screen.Deps) *WordNotesScreen {
	s := &WordNotesScreen{deps: deps, language: notes.English, editing: -1}
	s.fields[fieldWord] = components.NewTextInput("Word", "e.g. serendipity", false, 64)
	s.fields[fieldTranslation] = components.NewTextInput("Translation", "", false, 128)
	s.fields[fieldNote] = components.NewTextInput("Note", "optional", false, 256)
	return s
}

func (s *WordNotesScreen) Init() tea.Cmd {
	return s.fields[fieldWord].Focus()
}

func (s *WordNotesScreen) Title() string {
	return "Word Notes"
}

func (s *WordNotesScreen) KeyHints() []layout.KeyHint {
	if s.focus == focusList {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Select"},
			{Key: "E", Description: "Edit"},
			{Key: "D", Description: "Delete"},
			{Key: "Tab", Description: "Form"},
			{Key: "Esc", Description: "Back"},
		}
	}
	save := "Add"
	if s.editing >= 0 {
		save = "Save"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+L", Description: "Language"},
		{Key: "Enter", Description: save},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WordNotesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.focus < focusList {
			var cmd tea.Cmd
			s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "tab":
		return s, s.setFocus((s.focus + 1) % (focusList + 1))
	case "shift+tab":
		return s, s.setFocus((s.focus + focusList) % (focusList + 1))
	case "ctrl+l":
		s.toggleLanguage()
		return s, nil
	}

	if s.focus == focusList {
		return s.updateList(kmsg)
	}

	if kmsg.String() == "enter" {
		return s, s.submit()
	}
	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *WordNotesScreen) updateList(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	n := s.deps.Notes.Len()
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < n-1 {
			s.selected++
		}
	case "e":
		if n == 0 {
			return s, nil
		}
		note := s.deps.Notes.List()[s.selected]
		s.fields[fieldWord].SetValue(note.Word)
		s.fields[fieldTranslation].SetValue(note.Translation)
		s.fields[fieldNote].SetValue(note.Note)
		s.language = note.Language
		s.editing = s.selected
		s.status = ""
		return s, s.setFocus(fieldWord)
	case "d":
		if n == 0 {
			return s, nil
		}
		return s, s.remove()
	}
	return s, nil
}

func (s *WordNotesScreen) setFocus(i int) tea.Cmd {
	if s.focus < focusList {
		s.fields[s.focus].Blur()
	}
	s.focus = i
	if i < focusList {
		return s.fields[i].Focus()
	}
	return nil
}

func (s *WordNotesScreen) toggleLanguage() {
	if s.language == notes.English {
		s.language = notes.German
	} else {
		s.language = notes.English
	}
}

func (s *WordNotesScreen) draft() notes.Draft {
	return notes.Draft{
		Word:        s.fields[fieldWord].Value(),
		Translation: s.fields[fieldTranslation].Value(),
		Language:    s.language,
		Note:        s.fields[fieldNote].Value(),
	}
}

func (s *WordNotesScreen) submit() tea.Cmd {
	s.errMsg = ""
	if s.editing >= 0 {
		n, err := s.deps.Notes.Update(s.editing, s.draft())
		if err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.status = fmt.Sprintf("Updated %q", n.Word)
		s.clearForm()
		return nil
	}

	n, err := s.deps.Notes.Add(context.Background(), s.draft())
	if n.Word == "" {
		s.errMsg = err.Error()
		return nil
	}
	s.clearForm()
	if err != nil {
		// The note was kept but the word count could not be saved.
		s.errMsg = err.Error()
	} else {
		s.status = fmt.Sprintf("Added %q", n.Word)
	}
	return tea.Batch(screen.StatsChanged, s.setFocus(fieldWord))
}

func (s *WordNotesScreen) remove() tea.Cmd {
	word := s.deps.Notes.List()[s.selected].Word
	err := s.deps.Notes.Remove(context.Background(), s.selected)
	if s.editing == s.selected {
		s.clearForm()
	} else if s.editing > s.selected {
		s.editing--
	}
	if n := s.deps.Notes.Len(); s.selected >= n && n > 0 {
		s.selected = n - 1
	}
	if err != nil {
		s.errMsg = err.Error()
	} else {
		s.errMsg = ""
		s.status = fmt.Sprintf("Removed %q", word)
	}
	return screen.StatsChanged
}

func (s *WordNotesScreen) clearForm() {
	for i := range s.fields {
		s.fields[i].Reset()
	}
	s.editing = -1
}

func (s *WordNotesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var form strings.Builder
	heading := "New note"
	if s.editing >= 0 {
		heading = "Edit note"
	}
	form.WriteString(theme.Title.Width(cw - 6).Render(heading))
	form.WriteString("\n\n")
	for i := range s.fields {
		form.WriteString(s.fields[i].View())
		form.WriteString("\n")
	}
	form.WriteString("\n")
	form.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(14).Render("Language"))
	form.WriteString(theme.Translation.Render(languageName(s.language)))
	form.WriteString("\n")

	switch {
	case s.errMsg != "":
		form.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	case s.status != "":
		form.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Success).Render(s.status))
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		components.Card(form.String(), cw),
		"",
		s.viewList(cw),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, body)
}

func (s *WordNotesScreen) viewList(cw int) string {
	list := s.deps.Notes.List()
	if len(list) == 0 {
		return theme.Hint.Render("No notes yet. Add your first word above.")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Your notes (%d)", len(list))))
	b.WriteString("\n\n")
	for i, n := range list {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if s.focus == focusList && i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s → %s  (%s, %s)", prefix, n.Word, n.Translation, languageName(n.Language), n.Date)
		b.WriteString(style.Width(cw).Render(line))
		b.WriteString("\n")
		if n.Note != "" {
			b.WriteString(theme.Hint.Width(cw).Render("    " + n.Note))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func languageName(l notes.Language) string {
	switch l {
	case notes.German:
		return "German"
	default:
		return "English"
	}
}
