package lifecycle

import (
	"context"
	"fmt"

	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/multiplexer"
)

// sessionWidth/sessionHeight are the tmux/zellij window size Start and
// StartShell spawn with when the caller has not yet observed a real
// terminal size (spec.md §4.2's default spawn geometry).
const (
	sessionWidth  = 120
	sessionHeight = 40
)

// Start implements spec.md §4.6.1: write the dialog-gathered markers and
// launch script, spawn (or reuse) the workspace's agent session, and run
// the generated script inside it. SpawnDetachedSession is itself
// idempotent against an already-running session (spec.md §7), so Start is
// also how Grove resumes an Idle workspace's agent.
func Start(ctx context.Context, adapter multiplexer.Adapter, ws *domain.Workspace, cfg StartConfig, width, height int) error {
	if width <= 0 {
		width = sessionWidth
	}
	if height <= 0 {
		height = sessionHeight
	}

	scriptPath, err := GenerateStartScript(ws.Path, cfg)
	if err != nil {
		return fmt.Errorf("generate start script: %w", err)
	}
	if err := WritePromptMarker(ws.Path, cfg.Prompt); err != nil {
		return fmt.Errorf("write prompt marker: %w", err)
	}
	if err := WriteSkipPermissionsMarker(ws.Path, cfg.Unsafe); err != nil {
		return fmt.Errorf("write skip-permissions marker: %w", err)
	}
	if err := WriteAgentMarker(ws.Path, cfg.Agent); err != nil {
		return fmt.Errorf("write agent marker: %w", err)
	}

	session := ws.AgentSessionNameOf()
	if err := adapter.SpawnDetachedSession(ctx, session, ws.Path, width, height); err != nil {
		return fmt.Errorf("spawn agent session: %w", err)
	}
	if err := adapter.SendLiteral(ctx, session, "sh "+scriptPath); err != nil {
		return fmt.Errorf("send launch command: %w", err)
	}
	if err := adapter.SendNamed(ctx, session, "Enter"); err != nil {
		return fmt.Errorf("send launch enter: %w", err)
	}
	return nil
}

// Stop tears down an agent session (spec.md §4.6). A missing session is
// not an error — KillSession already treats that as success (spec.md §7).
func Stop(ctx context.Context, adapter multiplexer.Adapter, session string) error {
	if session == "" {
		return nil
	}
	if err := adapter.KillSession(ctx, session); err != nil {
		return fmt.Errorf("kill agent session: %w", err)
	}
	return nil
}

// Restart stops the workspace's current agent session, then Starts it
// again with cfg (spec.md §4.6, the `r` keybinding's restart operation).
func Restart(ctx context.Context, adapter multiplexer.Adapter, ws *domain.Workspace, cfg StartConfig, width, height int) error {
	if err := Stop(ctx, adapter, ws.AgentSessionNameOf()); err != nil {
		return err
	}
	return Start(ctx, adapter, ws, cfg, width, height)
}

// StartShell spawns (or reuses) a workspace's companion shell session,
// rooted at the workspace path (spec.md §4.7 "Create dialog specifics":
// every successful create auto-launches a companion shell regardless of
// whether the agent itself is auto-started).
func StartShell(ctx context.Context, adapter multiplexer.Adapter, ws *domain.Workspace, width, height int) error {
	if width <= 0 {
		width = sessionWidth
	}
	if height <= 0 {
		height = sessionHeight
	}
	session := domain.ShellSessionNameOf(ws.AgentSessionNameOf())
	if err := adapter.SpawnDetachedSession(ctx, session, ws.Path, width, height); err != nil {
		return fmt.Errorf("spawn shell session: %w", err)
	}
	return nil
}
