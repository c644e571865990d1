// Command grove is the terminal entrypoint: it loads config, builds the
// multiplexer adapter and capture engine, and runs the bubbletea program
// (spec.md §1, §6.3).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/jordangarrison/grove/internal/app"
	"github.com/jordangarrison/grove/internal/config"
	"github.com/jordangarrison/grove/internal/eventlog"
	"github.com/jordangarrison/grove/internal/multiplexer"
)

// version is set at build time via ldflags.
var version = ""

func main() {
	cliApp := &cli.App{
		Name:  "grove",
		Usage: "a TUI operator console for driving AI coding agents across git worktrees",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to config file"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
			&cli.StringFlag{Name: "log-file", Usage: "append structured events to this file instead of the in-memory ring only"},
		},
		Action: run,
	}
	cliApp.Version = effectiveVersion(version)

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "grove: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	events, err := openEventLog(c.String("log-file"))
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}
	defer events.Close()

	adapter := multiplexer.New(cfg.Multiplexer)

	state := app.New(cfg, adapter, events)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		state.Width, state.Height = w, h
	}
	model := app.NewModel(state)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func openEventLog(path string) (*eventlog.Log, error) {
	if path != "" {
		return eventlog.Open(path)
	}
	return eventlog.New(), nil
}

// effectiveVersion returns the version string, falling back to VCS build
// info the way `go install` builds report it.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}
	ver := "devel+" + revision
	if len(ver) > 20 {
		ver = ver[:20]
	}
	if dirty {
		ver += "+dirty"
	}
	return ver
}
