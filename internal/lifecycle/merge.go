package lifecycle

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// MergeWorkflowStep enumerates the merge dialog's steps (spec.md §4.7,
// grounded on the teacher's MergeWorkflowStep enum).
type MergeWorkflowStep int

const (
	MergeStepReview MergeWorkflowStep = iota
	MergeStepMerging
	MergeStepConflict
	MergeStepDone
)

// MergeRequest is the validated input to Merge.
type MergeRequest struct {
	RepoPath         string
	BaseBranch       string
	WorkspaceBranch  string
	RemoveWorkspace  bool
	RemoveLocalBranch bool
}

// MergeResult reports the outcome of Merge.
type MergeResult struct {
	Conflict bool
	Message  string
}

// Merge implements spec.md §4.6's Merge operation: on the base branch,
// `git merge --no-ff`. On conflict it surfaces a compact message and does
// not abort the merge — the operator resolves manually in the base
// worktree.
func Merge(ctx context.Context, req MergeRequest) (*MergeResult, error) {
	checkout := exec.CommandContext(ctx, "git", "switch", req.BaseBranch)
	checkout.Dir = req.RepoPath
	if out, err := checkout.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("git switch %s: %w: %s", req.BaseBranch, err, strings.TrimSpace(string(out)))
	}

	merge := exec.CommandContext(ctx, "git", "merge", "--no-ff", req.WorkspaceBranch)
	merge.Dir = req.RepoPath
	out, err := merge.CombinedOutput()
	if err != nil {
		if strings.Contains(strings.ToLower(string(out)), "conflict") {
			return &MergeResult{
				Conflict: true,
				Message:  "merge conflict — resolve in base worktree",
			}, nil
		}
		return nil, fmt.Errorf("git merge --no-ff %s: %w: %s", req.WorkspaceBranch, err, strings.TrimSpace(string(out)))
	}

	return &MergeResult{Message: "merged " + req.WorkspaceBranch + " into " + req.BaseBranch}, nil
}

// UpdateFromBaseMode selects how Update-from-base reconciles a feature
// workspace with its base branch.
type UpdateFromBaseMode int

const (
	UpdateMerge UpdateFromBaseMode = iota
	UpdateFastForward
)

// UpdateFromBaseRequest is the validated input to UpdateFromBase.
type UpdateFromBaseRequest struct {
	WorkspacePath string
	BaseBranch    string
	Mode          UpdateFromBaseMode
	IsMainWorkspace bool
}

// UpdateFromBase implements spec.md §4.6's Update-from-base operation: for
// a feature workspace, merges or fast-forwards the base branch into the
// workspace branch; for the main workspace, pulls from upstream.
func UpdateFromBase(ctx context.Context, req UpdateFromBaseRequest) error {
	if req.IsMainWorkspace {
		cmd := exec.CommandContext(ctx, "git", "pull")
		cmd.Dir = req.WorkspacePath
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git pull: %w: %s", err, strings.TrimSpace(string(out)))
		}
		return nil
	}

	fetch := exec.CommandContext(ctx, "git", "fetch", "origin", req.BaseBranch)
	fetch.Dir = req.WorkspacePath
	if out, err := fetch.CombinedOutput(); err != nil {
		return fmt.Errorf("git fetch origin %s: %w: %s", req.BaseBranch, err, strings.TrimSpace(string(out)))
	}

	var args []string
	if req.Mode == UpdateFastForward {
		args = []string{"merge", "--ff-only", "origin/" + req.BaseBranch}
	} else {
		args = []string{"merge", "--no-ff", "origin/" + req.BaseBranch}
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = req.WorkspacePath
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

