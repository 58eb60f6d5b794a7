package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("22")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("108"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleRoomName = lipgloss.NewStyle().
			Foreground(lipgloss.Color("149")).
			Bold(true)

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("108"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("167"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind decides how a transcript line is styled.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindRoomName
	kindYouSee
	kindBanner
	kindInput
	kindSystem
	kindError
	kindTrace
)

// classifyLine picks a style for a line of game output.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "You see: "):
		return kindYouSee
	case strings.Contains(line, "***"):
		return kindBanner
	case isRoomName(line):
		return kindRoomName
	default:
		return kindNarrative
	}
}

// isRoomName reports whether line looks like a room heading: a short
// capitalized phrase without closing punctuation.
func isRoomName(line string) bool {
	if line == "" || len(line) > 40 {
		return false
	}
	if c := line[0]; c < 'A' || c > 'Z' {
		return false
	}
	return !strings.ContainsAny(line[len(line)-1:], ".!?:\"'")
}

func render(text string, kind lineKind) string {
	switch kind {
	case kindRoomName:
		return styleRoomName.Render(text)
	case kindYouSee:
		return styledYouSee(text)
	case kindBanner:
		return styleBanner.Render(text)
	case kindInput:
		return stylePlayerInput.Render(text)
	case kindSystem:
		return styleSystem.Render("[" + text + "]")
	case kindError:
		return styleError.Render(text)
	case kindTrace:
		return styleTrace.Render(text)
	default:
		return styleNarrative.Render(text)
	}
}

// styledYouSee renders "You see: a, b." with the names in bold.
func styledYouSee(line string) string {
	const prefix = "You see: "
	return styleNarrative.Render(prefix) + styleYouSee.Render(strings.TrimPrefix(line, prefix))
}
