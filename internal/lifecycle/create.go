package lifecycle

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jordangarrison/grove/internal/domain"
)

// workspaceNamePattern is spec.md §4.6's Create validation rule: ASCII
// alphanumeric, '-', '_', non-empty.
var workspaceNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// BranchMode selects whether Create makes a new branch off a base, or
// attaches to an existing branch (spec.md §4.6, original_source
// BranchMode enum).
type BranchMode struct {
	NewBranch      string // base branch to branch from; "" if ExistingBranch is set
	ExistingBranch string
}

// CreateRequest is the validated input to Create.
type CreateRequest struct {
	ProjectPath string
	WorkspaceName string
	Branch        BranchMode
	Agent         domain.AgentKind
}

// Validate implements spec.md §4.6's Create validation: workspace name
// must be non-empty ASCII alphanumeric/-/_, and exactly one of
// NewBranch/ExistingBranch must be set.
func (r *CreateRequest) Validate() error {
	if r.WorkspaceName == "" || !workspaceNamePattern.MatchString(r.WorkspaceName) {
		return fmt.Errorf("invalid workspace name %q: must be non-empty and contain only letters, digits, '-', '_'", r.WorkspaceName)
	}
	hasNew := r.Branch.NewBranch != ""
	hasExisting := r.Branch.ExistingBranch != ""
	if hasNew == hasExisting {
		return fmt.Errorf("create requires exactly one of a new base branch or an existing branch")
	}
	return nil
}

// BranchName returns the git branch name Create will check out: the
// workspace name itself for a new branch, or the existing branch name.
func (r *CreateRequest) BranchName() string {
	if r.Branch.ExistingBranch != "" {
		return r.Branch.ExistingBranch
	}
	return r.WorkspaceName
}

// MarkerBaseBranch returns the value Create writes to .grove-base.
func (r *CreateRequest) MarkerBaseBranch() string {
	if r.Branch.NewBranch != "" {
		return r.Branch.NewBranch
	}
	return r.Branch.ExistingBranch
}

// WorkspaceDir derives a workspace's directory per spec.md §4.6:
// {parent(repo)}/{repo_name}-{workspace_name}.
func WorkspaceDir(repoPath, repoName, workspaceName string) string {
	return filepath.Join(filepath.Dir(repoPath), repoName+"-"+workspaceName)
}

// Create runs spec.md §4.6's Create operation: `git worktree add`, marker
// files, .gitignore entries, env-file copy, and (best-effort) the setup
// script. Setup-script failure is a warning, not a create failure — it is
// surfaced through the returned SetupWarning field, never as an error.
type CreateResult struct {
	WorkspacePath string
	SetupWarning  string
}

func Create(ctx context.Context, req CreateRequest, repoName string) (*CreateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	workspacePath := WorkspaceDir(req.ProjectPath, repoName, req.WorkspaceName)

	args := []string{"worktree", "add"}
	if req.Branch.NewBranch != "" {
		args = append(args, "-b", req.WorkspaceName, workspacePath, req.Branch.NewBranch)
	} else {
		args = append(args, workspacePath, req.Branch.ExistingBranch)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = req.ProjectPath
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("git worktree add: %w: %s", err, strings.TrimSpace(string(out)))
	}

	if err := WriteAgentMarker(workspacePath, req.Agent); err != nil {
		return nil, fmt.Errorf("write agent marker: %w", err)
	}
	if err := WriteBaseMarker(workspacePath, req.MarkerBaseBranch()); err != nil {
		return nil, fmt.Errorf("write base marker: %w", err)
	}
	if err := AppendGitignoreEntries(workspacePath); err != nil {
		return nil, fmt.Errorf("append gitignore entries: %w", err)
	}
	if err := CopyEnvFiles(req.ProjectPath, workspacePath); err != nil {
		return nil, fmt.Errorf("copy env files: %w", err)
	}

	result := &CreateResult{WorkspacePath: workspacePath}
	if warning := RunSetupScript(ctx, req.ProjectPath, workspacePath, req.MarkerBaseBranch()); warning != "" {
		result.SetupWarning = warning
	}
	return result, nil
}
