// Package login is the sign-in and sign-up form.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/auth"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

type loginResultMsg struct {
	Profile auth.Profile
	Err     error
}

// LoginScreen collects credentials and signs the user in.
type LoginScreen struct {
	deps    *screen.Deps
	signUp  bool
	fields  [fieldCount]components.TextInput
	focus   int
	pending bool
	errMsg  string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen in sign-in mode.
func New(deps *screen.Deps) *LoginScreen {
	s := &LoginScreen{deps: deps}
	s.fields[fieldName] = components.NewTextInput("Name", "Your name", false, 64)
	s.fields[fieldEmail] = components.NewTextInput("Email", "you@example.com", false, 128)
	s.fields[fieldPassword] = components.NewTextInput("Password", "", true, 128)
	s.focus = fieldEmail
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.fields[s.focus].Focus()
}

func (s *LoginScreen) Title() string {
	if s.signUp {
		return "Sign Up"
	}
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	toggle := "Create account"
	if s.signUp {
		toggle = "Have an account"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+T", Description: toggle},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.deps.User = msg.Profile
		home := s.deps.NewHome()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }

	case tea.KeyMsg:
		if s.pending {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "ctrl+t":
			s.signUp = !s.signUp
			s.errMsg = ""
			if !s.signUp && s.focus == fieldName {
				return s, s.setFocus(fieldEmail)
			}
			return s, nil
		case "enter":
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

// moveFocus cycles through the visible fields.
func (s *LoginScreen) moveFocus(delta int) tea.Cmd {
	first := fieldEmail
	if s.signUp {
		first = fieldName
	}
	n := fieldCount - first
	next := first + ((s.focus-first+delta)%n+n)%n
	return s.setFocus(next)
}

func (s *LoginScreen) setFocus(i int) tea.Cmd {
	s.fields[s.focus].Blur()
	s.focus = i
	return s.fields[i].Focus()
}

func (s *LoginScreen) submit() tea.Cmd {
	creds := auth.Credentials{
		Email:    s.fields[fieldEmail].Value(),
		Password: s.fields[fieldPassword].Value(),
	}
	signUp := s.signUp
	if signUp {
		creds.Name = s.fields[fieldName].Value()
	}

	s.pending = true
	s.errMsg = ""
	svc := s.deps.Auth
	return func() tea.Msg {
		ctx := context.Background()
		var (
			p   auth.Profile
			err error
		)
		if signUp {
			p, err = svc.SignUp(ctx, creds)
		} else {
			p, err = svc.Login(ctx, creds)
		}
		return loginResultMsg{Profile: p, Err: err}
	}
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	heading := "Welcome back"
	if s.signUp {
		heading = "Create your account"
	}
	b.WriteString(theme.Title.Width(cw).Render(heading))
	b.WriteString("\n\n")

	for i := range s.fields {
		if i == fieldName && !s.signUp {
			continue
		}
		b.WriteString(s.fields[i].View())
		b.WriteString("\n\n")
	}

	switch {
	case s.pending:
		b.WriteString(theme.Hint.Render("Signing in..."))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}
