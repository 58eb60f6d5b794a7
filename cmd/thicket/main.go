// Thicket plays small text adventures: the built-in woodland trail, or a
// game written in Lua.
//
// Usage: thicket [--version] [--config <file>] [--plain|--tui] [--script <file>] [--trace] [game_directory]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/nathoo/thicket/cli"
	"github.com/nathoo/thicket/config"
	"github.com/nathoo/thicket/engine"
	"github.com/nathoo/thicket/engine/world"
	"github.com/nathoo/thicket/loader"
	"github.com/nathoo/thicket/logging"
	"github.com/nathoo/thicket/scenario"
	"github.com/nathoo/thicket/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: thicket [--version] [--config <file>] [--plain|--tui] [--script <file>] [--trace] [game_directory]"

var errUsage = errors.New(usage)

// options are the command-line settings. Set fields override the config file.
type options struct {
	configPath string
	gameDir    string
	scriptFile string
	mode       string
	trace      bool
	version    bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (options, error) {
	var opts options
	value := func(i *int) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", args[*i])
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "--version":
			opts.version = true
		case "--plain":
			opts.mode = config.ModePlain
		case "--tui":
			opts.mode = config.ModeTUI
		case "--trace":
			opts.trace = true
		case "--config":
			opts.configPath, err = value(&i)
		case "--script":
			opts.scriptFile, err = value(&i)
		case "--game":
			opts.gameDir, err = value(&i)
		default:
			if len(args[i]) > 1 && args[i][0] == '-' {
				return opts, fmt.Errorf("unknown flag %s\n%w", args[i], errUsage)
			}
			if opts.gameDir == "" {
				opts.gameDir = args[i]
			}
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func run(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Printf("thicket %s (commit %s, built %s)\n", version, commit, date)
		return nil
	}

	path, required := config.DefaultPath, false
	if opts.configPath != "" {
		path, required = opts.configPath, true
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	if opts.gameDir != "" {
		cfg.Game.Dir = opts.gameDir
	}
	if opts.mode != "" {
		cfg.UI.Mode = opts.mode
	}
	if opts.trace {
		cfg.UI.Trace = true
	}

	log, done, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer done()

	w, banner, intro, err := loadGame(cfg.Game, log)
	if err != nil {
		return err
	}
	eng := engine.New(w, log)
	log.Info("game started",
		zap.String("title", banner),
		zap.String("dir", cfg.Game.Dir),
		zap.Int("entities", w.Len()))

	// Script mode: plain output, commands echoed.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		c := cli.New(eng, banner, intro)
		c.In = f
		c.EchoInput = true
		c.Trace = cfg.UI.Trace
		c.Run()
		return nil
	}

	if usePlain(cfg.UI.Mode) {
		c := cli.New(eng, banner, intro)
		c.EchoInput = cfg.UI.Echo
		c.Trace = cfg.UI.Trace
		c.Run()
		return nil
	}
	return tui.Run(eng, banner, intro, cfg.UI.Trace)
}

// loadGame builds the world from a Lua game directory, or the built-in demo
// when none is configured. It also returns the banner line and intro text.
func loadGame(gc config.GameConfig, log *zap.Logger) (*world.World, string, string, error) {
	if gc.Dir == "" {
		title := scenario.Title
		if gc.Title != "" {
			title = gc.Title
		}
		return scenario.Build(), title, "", nil
	}

	g, err := loader.Load(gc.Dir)
	if err != nil {
		return nil, "", "", fmt.Errorf("loading game: %w", err)
	}
	for _, warning := range g.Warnings {
		log.Warn("game definition", zap.String("dir", gc.Dir), zap.String("warning", warning))
	}

	banner := g.Title
	if gc.Title != "" {
		banner = gc.Title
	}
	if g.Version != "" {
		banner += " v" + g.Version
	}
	if g.Author != "" {
		banner += " by " + g.Author
	}
	return g.World, banner, g.Intro, nil
}

// usePlain picks the line-oriented driver for "plain", and for "auto" when
// stdout is not a terminal.
func usePlain(mode string) bool {
	switch mode {
	case config.ModePlain:
		return true
	case config.ModeTUI:
		return false
	default:
		fd := os.Stdout.Fd()
		return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	}
}
