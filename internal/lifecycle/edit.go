package lifecycle

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jordangarrison/grove/internal/domain"
)

// EditRequest is the validated input to Edit (spec.md §4.6). Agent and
// BaseBranch are nil when left unchanged by the dialog.
type EditRequest struct {
	WorkspacePath string
	Agent         *domain.AgentKind
	BaseBranch    *string
	IsMain        bool
	SwitchBranch  string // only applied when IsMain is true
}

// Edit implements spec.md §4.6's Edit operation: updates the agent and
// base-branch markers, and, only for the main workspace, may switch HEAD
// to a new branch (creating it if needed). Non-main workspaces never
// change HEAD here.
func Edit(ctx context.Context, req EditRequest) error {
	if req.Agent != nil {
		if err := WriteAgentMarker(req.WorkspacePath, *req.Agent); err != nil {
			return fmt.Errorf("update agent marker: %w", err)
		}
	}
	if req.BaseBranch != nil {
		if err := WriteBaseMarker(req.WorkspacePath, *req.BaseBranch); err != nil {
			return fmt.Errorf("update base marker: %w", err)
		}
	}

	if req.IsMain && req.SwitchBranch != "" {
		cmd := exec.CommandContext(ctx, "git", "switch", req.SwitchBranch)
		cmd.Dir = req.WorkspacePath
		if out, err := cmd.CombinedOutput(); err != nil {
			create := exec.CommandContext(ctx, "git", "switch", "-c", req.SwitchBranch)
			create.Dir = req.WorkspacePath
			if out2, err2 := create.CombinedOutput(); err2 != nil {
				return fmt.Errorf("git switch %s: %w: %s / %s", req.SwitchBranch, err2, strings.TrimSpace(string(out)), strings.TrimSpace(string(out2)))
			}
		}
	}
	return nil
}
