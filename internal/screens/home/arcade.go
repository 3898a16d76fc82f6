package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/profile"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = ` ██╗    ██╗ ██████╗ ██████╗ ██████╗ ██╗███████╗
 ██║    ██║██╔═══██╗██╔══██╗██╔══██╗██║╚══███╔╝
 ██║ █╗ ██║██║   ██║██████╔╝██║  ██║██║  ███╔╝
 ██║███╗██║██║   ██║██╔══██╗██║  ██║██║ ███╔╝
 ╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝██║███████╗
  ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝╚══════╝`

const arcadeTitleCompact = "W · O · R · D · I · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

func renderGreeting(name string, cw int) string {
	text := "Welcome!"
	if name != "" {
		text = fmt.Sprintf("Welcome, %s!", name)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderStatsBar renders the dashboard counters in a bordered box matching
// content width.
func renderStatsBar(sum profile.Summary, cw int, compact bool) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	wordStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	correctStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	st := sum.Stats
	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			streakStyle.Render(fmt.Sprintf("★%d", sum.CurrentStreak)),
			wordStyle.Render(fmt.Sprintf("✎%d", st.LearnedWords)),
			correctStyle.Render(fmt.Sprintf("✓%d", st.CorrectAnswers)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			streakStyle.Render(fmt.Sprintf("★ %d DAY STREAK", sum.CurrentStreak)),
			wordStyle.Render(fmt.Sprintf("✎ %d WORDS", st.LearnedWords)),
			correctStyle.Render(fmt.Sprintf("✓ %d CORRECT", st.CorrectAnswers)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
