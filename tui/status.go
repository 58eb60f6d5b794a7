package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/types"
)

// openExits lists the directions out of room that lead somewhere.
func openExits(w *world.World, room types.ID) []string {
	var dirs []string
	for _, d := range w.Exits(room) {
		if l, ok := w.Follow(room, d); ok && !l.IsDeadEnd() {
			dirs = append(dirs, string(d))
		}
	}
	return dirs
}

// statusBar renders a full-width line with the room, its exits, what the
// player carries and the clock.
func (m Model) statusBar() string {
	w := m.engine.World
	here := w.Here()

	left := fmt.Sprintf(" %s | Exits: %s", w.Name(here), strings.Join(openExits(w, here), ","))
	right := fmt.Sprintf("T:%d ", w.Clock())

	// Name the items if they fit, otherwise just count them.
	if held := w.Contents(w.PlayerID()); len(held) > 0 {
		names := make([]string, len(held))
		for i, id := range held {
			names[i] = w.Name(id)
		}
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(names, ", "), w.Clock())
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", len(held), w.Clock())
		}
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
