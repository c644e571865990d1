package multiplexer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ZellijAdapter drives zellij via its CLI. Several tmux primitives have no
// direct zellij equivalent (history-limit, explicit resize, cursor-flag
// query); those are documented capability gaps, not bugs — see
// SPEC_FULL.md §4.2.1.
type ZellijAdapter struct{}

func (a *ZellijAdapter) Kind() Kind { return Zellij }

func zellijRun(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "zellij", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("zellij %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

func (a *ZellijAdapter) SpawnDetachedSession(ctx context.Context, name, cwd string, width, height int) error {
	cmd := exec.CommandContext(ctx, "zellij", "--session", name, "options", "--default-cwd", cwd)
	cmd.SysProcAttr = detachedSysProcAttr()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("zellij spawn %s: %w", name, err)
	}
	// history-limit has no zellij analog; nothing to configure.
	// Explicit resize is likewise unsupported (zellij sizes from its
	// attached terminal), so width/height are accepted but unused here.
	return nil
}

func (a *ZellijAdapter) SendLiteral(ctx context.Context, session, text string) error {
	_, err := zellijRun(ctx, "-s", session, "action", "write-chars", text)
	return err
}

func (a *ZellijAdapter) SendNamed(ctx context.Context, session, keyName string) error {
	code, ok := zellijKeyCodes[keyName]
	if !ok {
		return fmt.Errorf("zellij: no keycode mapping for %q", keyName)
	}
	_, err := zellijRun(ctx, "-s", session, "action", "write", code)
	return err
}

func (a *ZellijAdapter) PasteBuffer(ctx context.Context, session, text string) error {
	// zellij has no dedicated paste-buffer primitive; chunk the write
	// through write-chars to preserve multi-line fidelity reasonably well.
	const chunkSize = 4096
	for len(text) > 0 {
		n := chunkSize
		if n > len(text) {
			n = len(text)
		}
		if _, err := zellijRun(ctx, "-s", session, "action", "write-chars", text[:n]); err != nil {
			return err
		}
		text = text[n:]
	}
	return nil
}

func (a *ZellijAdapter) CapturePane(ctx context.Context, session string, scrollback int, includeEscapeSequences bool) (string, error) {
	tmp, err := os.CreateTemp("", "grove-zellij-dump-*.txt")
	if err != nil {
		return "", err
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if _, err := zellijRun(ctx, "-s", session, "action", "dump-screen", path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > scrollback {
		lines = lines[len(lines)-scrollback:]
	}
	return strings.Join(lines, "\n"), nil
}

func (a *ZellijAdapter) CaptureCursor(ctx context.Context, session string) (CursorReport, error) {
	// zellij exposes no cursor-position query; always report hidden. This
	// is a documented capability gap (SPEC_FULL.md §4.2.1), not a bug.
	return CursorReport{Visible: false}, nil
}

func (a *ZellijAdapter) ResizeWindow(ctx context.Context, session string, width, height int) error {
	// No explicit-resize primitive; zellij panes size from the attached
	// terminal. No-op.
	return nil
}

func (a *ZellijAdapter) KillSession(ctx context.Context, session string) error {
	_, err := zellijRun(ctx, "kill-session", session)
	if err != nil && IsMissingSessionError(err) {
		return nil
	}
	return err
}

func (a *ZellijAdapter) ListRunningSessions(ctx context.Context) (map[string]bool, error) {
	out, err := zellijRun(ctx, "list-sessions", "-s")
	if err != nil {
		if IsMissingSessionError(err) {
			return map[string]bool{}, nil
		}
		return nil, err
	}
	sessions := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line != "" {
			sessions[line] = true
		}
	}
	return sessions, nil
}

// zellijKeyCodes maps the symbolic key names Grove's interactive layer
// uses onto zellij's `action write <code>` numeric keycodes for the
// handful of control keys Grove forwards by name.
var zellijKeyCodes = map[string]string{
	"Enter":     "13",
	"Escape":    "27",
	"BTab":      "9",
	"Tab":       "9",
	"C-c":       "3",
	"Backspace": "127",
	"Up":        "65",
	"Down":      "66",
	"Right":     "67",
	"Left":      "68",
}
