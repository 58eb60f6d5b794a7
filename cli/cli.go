// Package cli is the line-oriented driver: it reads commands, feeds them to
// the engine and prints what comes back.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/thicket/engine"
	"github.com/nathoo/thicket/engine/debug"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Title     string
	Intro     string
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI on stdin and stdout.
func New(eng *engine.Engine, title, intro string) *CLI {
	return &CLI{
		Engine: eng,
		Title:  title,
		Intro:  intro,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run shows the banner and the starting room, then loops:
// prompt → input → step → output. It returns when the player quits or the
// input runs out.
func (c *CLI) Run() {
	if c.Title != "" {
		c.printLine(c.Title)
		c.printLine("")
	}
	if c.Intro != "" {
		c.printLine(c.Intro)
		c.printLine("")
	}
	c.printLines(c.Engine.Start())

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			c.printLine("")
			return
		}
		input := strings.TrimSpace(scanner.Text())
		// Comment lines in script files.
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else if input != "" {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printLines(result.Output)
		if c.Trace {
			c.printLines(debug.Trace(c.Engine.World, result))
		}
		if result.Quit {
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
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
		"  dump [id], list      Debug: inspect entities",
	}
	c.printLines(help)
}

func (c *CLI) cmdState() {
	for _, line := range debug.State(c.Engine.World) {
		c.printSystem(line)
	}
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
