package lifecycle

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jordangarrison/grove/internal/domain"
)

// WriteAgentMarker writes the .grove-agent marker file recording which
// agent kind a workspace was created with.
func WriteAgentMarker(workspacePath string, agent domain.AgentKind) error {
	return os.WriteFile(filepath.Join(workspacePath, domain.AgentMarkerFile), []byte(string(agent)+"\n"), 0o644)
}

// WriteBaseMarker writes the .grove-base marker file recording the
// workspace's base/tracking branch.
func WriteBaseMarker(workspacePath, baseBranch string) error {
	return os.WriteFile(filepath.Join(workspacePath, domain.BaseMarkerFile), []byte(baseBranch+"\n"), 0o644)
}

// ReadMarkers reads a worktree's .grove-agent and .grove-base marker
// files (spec.md §4.6 "Marker reading"). An unknown agent value yields
// Unsupported; missing markers yield Idle with supportedAgent=false.
func ReadMarkers(workspacePath string) (agent domain.AgentKind, baseBranch string, status domain.WorkspaceStatus, supportedAgent bool) {
	agentRaw, err := readMarkerFile(filepath.Join(workspacePath, domain.AgentMarkerFile))
	if err != nil {
		return domain.AgentNone, "", domain.StatusIdle, false
	}
	agent = domain.AgentKind(agentRaw)
	if _, known := domain.AgentCommands[agent]; !known {
		return agent, "", domain.StatusUnsupported, false
	}
	baseBranch, _ = readMarkerFile(filepath.Join(workspacePath, domain.BaseMarkerFile))
	return agent, baseBranch, domain.StatusIdle, true
}

func readMarkerFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// AppendGitignoreEntries idempotently appends Grove's marker filenames to
// a workspace's .gitignore (spec.md §4.6). Existing lines are matched
// exactly before appending, so re-running create never duplicates them.
func AppendGitignoreEntries(workspacePath string) error {
	path := filepath.Join(workspacePath, ".gitignore")
	existing := map[string]bool{}

	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			existing[strings.TrimSpace(scanner.Text())] = true
		}
		f.Close()
	}

	var toAdd []string
	for _, entry := range domain.GitignoreEntries {
		if !existing[entry] {
			toAdd = append(toAdd, entry)
		}
	}
	if len(toAdd) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open .gitignore: %w", err)
	}
	defer f.Close()

	for _, entry := range toAdd {
		if _, err := fmt.Fprintln(f, entry); err != nil {
			return err
		}
	}
	return nil
}

// CopyEnvFiles copies the fixed allowlist of env files from the repo root
// into the new workspace when present, never overwriting a file that
// already exists in the worktree (spec.md §4.6, SPEC_FULL.md §3.1).
func CopyEnvFiles(repoRoot, workspacePath string) error {
	for _, name := range domain.EnvFilesToCopy {
		src := filepath.Join(repoRoot, name)
		dst := filepath.Join(workspacePath, name)

		srcInfo, err := os.Stat(src)
		if err != nil || srcInfo.IsDir() {
			continue // not present at repo root; skip
		}
		if _, err := os.Stat(dst); err == nil {
			continue // already present in the worktree; never overwrite
		}

		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := os.WriteFile(dst, data, srcInfo.Mode().Perm()); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
