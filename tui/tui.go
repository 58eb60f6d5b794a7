// Package tui is a Bubble Tea front end: a scrolling transcript, a status
// bar and a prompt with command history.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/thicket/engine"
	"github.com/nathoo/thicket/engine/debug"
)

// entry is one unstyled transcript line. Lines are kept raw so they can be
// re-wrapped when the terminal is resized.
type entry struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model.
type Model struct {
	engine *engine.Engine
	title  string
	intro  string

	viewport viewport.Model
	input    textinput.Model
	history  *History

	transcript []entry

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// openingMsg carries the banner and starting room into Update.
type openingMsg struct {
	lines []string
}

// New creates a model for eng. title and intro head the transcript.
func New(eng *engine.Engine, title, intro string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		title:   title,
		intro:   intro,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(eng *engine.Engine, title, intro string, trace bool) error {
	m := New(eng, title, intro)
	m.trace = trace
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init blinks the cursor and queues the opening text.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.opening())
}

func (m Model) opening() tea.Cmd {
	return func() tea.Msg {
		var lines []string
		if m.title != "" {
			lines = append(lines, m.title, "")
		}
		if m.intro != "" {
			lines = append(lines, m.intro, "")
		}
		lines = append(lines, m.engine.Start()...)
		return openingMsg{lines: lines}
	}
}

// Update handles key presses, resizes and the opening text.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := max(m.height-2, 1) // status bar + prompt
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
			}
			return m, nil

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case openingMsg:
		m.appendLines(msg.lines, kindNarrative)
		m.endTurn()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the line in the prompt.
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.history.Push(input)
	m.history.ResetCursor()
	m.transcript = append(m.transcript, entry{text: "> " + input, kind: kindInput})

	if strings.HasPrefix(input, "/") {
		lines, quit := m.handleMeta(input)
		m.appendLines(lines, kindSystem)
		m.endTurn()
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m.appendLines([]string{"Nothing to repeat."}, kindSystem)
			m.endTurn()
			return m, nil
		}
		input = m.lastCmd
	} else if input != "" {
		m.lastCmd = input
	}

	result := m.engine.Step(input)
	kind := kindNarrative
	if result.Failed {
		kind = kindError
	}
	m.appendLines(result.Output, kind)
	if m.trace {
		m.appendLines(debug.Trace(m.engine.World, result), kindTrace)
	}
	m.endTurn()

	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// appendLines adds output to the transcript. Narrative lines are classified
// individually; other kinds apply to every line.
func (m *Model) appendLines(lines []string, kind lineKind) {
	for _, line := range lines {
		k := kind
		if k == kindNarrative {
			k = classifyLine(line)
		}
		m.transcript = append(m.transcript, entry{text: line, kind: k})
	}
}

// endTurn separates turns with a blank line and redraws.
func (m *Model) endTurn() {
	m.transcript = append(m.transcript, entry{})
	m.refresh()
}

// refresh re-wraps and re-styles the transcript at the current width.
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	width := max(m.width, 10)
	styled := make([]string, 0, len(m.transcript))
	for _, e := range m.transcript {
		if e.text == "" {
			styled = append(styled, "")
			continue
		}
		styled = append(styled, render(wordWrap(e.text, width), e.kind))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap breaks each paragraph of text at word boundaries so that no line
// is wider than width. Existing newlines are kept.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	paras := strings.Split(text, "\n")
	for i, p := range paras {
		paras[i] = wrapParagraph(p, width)
	}
	return strings.Join(paras, "\n")
}

func wrapParagraph(text string, width int) string {
	if len(text) <= width {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		switch {
		case i == 0:
		case lineLen+1+len(word) > width:
			b.WriteString("\n")
			lineLen = 0
		default:
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}

// View renders the transcript, the status bar and the prompt.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.statusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return helpLines, false

	case "/state":
		return debug.State(m.engine.World), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

var helpLines = []string{
	"System:",
	"  /quit   Exit game",
	"  /help   Show this help",
	"  /state  Debug: show clock, location and flags",
	"  /trace  Toggle rule trace output",
	"",
	"Game commands:",
	"  look (l)             Describe the room",
	"  examine <thing> (x)  Look closely at something",
	"  read <thing>         Read what is written on it",
	"  go <dir>             Move (or just type n/s/e/w/u/d)",
	"  get/take <thing>     Pick something up",
	"  drop <thing>         Put something down",
	"  wash hands           If there's water about",
	"  inventory (i)        Check what you're carrying",
	"  again (g)            Repeat your last command",
	"",
	"PgUp/PgDn scroll, Up/Down recall earlier commands.",
}

// viewportKeyMap leaves Up/Down to the command history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
