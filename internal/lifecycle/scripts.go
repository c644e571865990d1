package lifecycle

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jordangarrison/grove/internal/domain"
)

// RunSetupScript runs .grove-setup.sh at the repo root, if present, with
// MAIN_WORKTREE/WORKTREE_BRANCH/WORKTREE_PATH in its environment (spec.md
// §4.6). Failure is a warning string, never an error — creation still
// succeeds.
func RunSetupScript(ctx context.Context, repoPath, workspacePath, branch string) (warning string) {
	scriptPath := filepath.Join(repoPath, domain.SetupScriptFile)
	if _, err := os.Stat(scriptPath); err != nil {
		return ""
	}

	cmd := exec.CommandContext(ctx, "/bin/sh", scriptPath)
	cmd.Dir = workspacePath
	cmd.Env = append(os.Environ(),
		"MAIN_WORKTREE="+repoPath,
		"WORKTREE_BRANCH="+branch,
		"WORKTREE_PATH="+workspacePath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Sprintf("setup script failed: %v: %s", err, stderr.String())
	}
	return ""
}

// StartConfig is the dialog-gathered configuration used to generate a
// workspace's launch script (spec.md §4.7 Create dialog specifics,
// SPEC_FULL.md §4.6.1).
type StartConfig struct {
	Agent       domain.AgentKind
	Prompt      string
	InitCommand string
	Unsafe      bool
}

// GenerateStartScript writes .grove-start.sh into workspacePath: an
// optional init-command line, then an exec of the agent binary with the
// unsafe flag and prompt baked in, mirroring the generated-launcher
// convention original_source uses for its agent invocation.
func GenerateStartScript(workspacePath string, cfg StartConfig) (string, error) {
	binary, ok := domain.AgentCommands[cfg.Agent]
	if !ok || binary == "" {
		return "", fmt.Errorf("generate start script: unsupported agent %q", cfg.Agent)
	}

	var b bytes.Buffer
	b.WriteString("#!/bin/sh\nset -e\n")
	if cfg.InitCommand != "" {
		fmt.Fprintf(&b, "%s\n", cfg.InitCommand)
	}

	args := binary
	if cfg.Unsafe {
		if flag := domain.SkipPermissionsFlags[cfg.Agent]; flag != "" {
			args += " " + flag
		}
	}
	if cfg.Prompt != "" {
		args += fmt.Sprintf(" %q", cfg.Prompt)
	}
	fmt.Fprintf(&b, "exec %s\n", args)

	path := filepath.Join(workspacePath, domain.StartScriptFile)
	if err := os.WriteFile(path, b.Bytes(), 0o755); err != nil {
		return "", fmt.Errorf("write start script: %w", err)
	}
	return path, nil
}

// WritePromptMarker persists the dialog's prompt text to .grove-prompt so
// it survives across restarts (spec.md §6.3).
func WritePromptMarker(workspacePath, prompt string) error {
	if prompt == "" {
		return nil
	}
	return os.WriteFile(filepath.Join(workspacePath, domain.PromptMarkerFile), []byte(prompt), 0o644)
}

// WriteSkipPermissionsMarker persists the unsafe toggle to
// .grove/skip_permissions.
func WriteSkipPermissionsMarker(workspacePath string, unsafe bool) error {
	dir := filepath.Join(workspacePath, domain.GroveDir)
	if !unsafe {
		_ = os.Remove(filepath.Join(dir, "skip_permissions"))
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "skip_permissions"), []byte("1\n"), 0o644)
}
