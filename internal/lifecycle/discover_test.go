package lifecycle

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jordangarrison/grove/internal/domain"
	"github.com/stretchr/testify/require"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "git %s: %s", strings.Join(args, " "), out)
}

func TestDiscoverProjectMainWorktree(t *testing.T) {
	repo := t.TempDir()
	runGit(t, repo, "init", "-b", "main")
	runGit(t, repo, "config", "user.email", "test@example.com")
	runGit(t, repo, "config", "user.name", "test")
	require.NoError(t, os.WriteFile(filepath.Join(repo, "README.md"), []byte("hello"), 0o644))
	runGit(t, repo, "add", ".")
	runGit(t, repo, "commit", "-m", "initial")

	project := domain.Project{Name: "myrepo", Path: repo}
	workspaces := DiscoverProject(project)
	require.Len(t, workspaces, 1)

	main := workspaces[0]
	require.True(t, main.IsMain)
	require.Equal(t, domain.StatusMain, main.Status)
	require.True(t, main.SupportedAgent)
	require.Equal(t, "myrepo", main.Name)
	require.Equal(t, repo, main.ProjectPath)
	require.Equal(t, "myrepo", main.ProjectName)
}

func TestDiscoverProjectWorkspaceWithMarkers(t *testing.T) {
	repo := t.TempDir()
	runGit(t, repo, "init", "-b", "main")
	runGit(t, repo, "config", "user.email", "test@example.com")
	runGit(t, repo, "config", "user.name", "test")
	require.NoError(t, os.WriteFile(filepath.Join(repo, "README.md"), []byte("hello"), 0o644))
	runGit(t, repo, "add", ".")
	runGit(t, repo, "commit", "-m", "initial")

	wsPath := filepath.Join(filepath.Dir(repo), "myrepo-feature-a")
	runGit(t, repo, "worktree", "add", "-b", "feature-a", wsPath, "main")
	t.Cleanup(func() { runGit(t, repo, "worktree", "remove", "--force", wsPath) })

	require.NoError(t, WriteAgentMarker(wsPath, domain.AgentClaude))
	require.NoError(t, WriteBaseMarker(wsPath, "main"))

	project := domain.Project{Name: "myrepo", Path: repo}
	workspaces := DiscoverProject(project)
	require.Len(t, workspaces, 2)

	var ws *domain.Workspace
	for _, w := range workspaces {
		if !w.IsMain {
			ws = w
		}
	}
	require.NotNil(t, ws)
	require.Equal(t, "feature-a", ws.Branch)
	require.Equal(t, "feature-a", ws.Name)
	require.Equal(t, domain.AgentClaude, ws.Agent)
	require.Equal(t, "main", ws.BaseBranch)
	require.True(t, ws.SupportedAgent)
	require.False(t, ws.IsOrphaned)
	require.Equal(t, ws.AgentSessionNameOf(), ws.AgentSession)
	require.Equal(t, domain.ShellSessionNameOf(ws.AgentSession), ws.ShellSession)
	require.Equal(t, domain.GitSessionNameOf(ws.AgentSession), ws.GitSession)
}

func TestDiscoverProjectOrphanedWorkspace(t *testing.T) {
	repo := t.TempDir()
	runGit(t, repo, "init", "-b", "main")
	runGit(t, repo, "config", "user.email", "test@example.com")
	runGit(t, repo, "config", "user.name", "test")
	require.NoError(t, os.WriteFile(filepath.Join(repo, "README.md"), []byte("hello"), 0o644))
	runGit(t, repo, "add", ".")
	runGit(t, repo, "commit", "-m", "initial")

	wsPath := filepath.Join(filepath.Dir(repo), "myrepo-orphan")
	runGit(t, repo, "worktree", "add", "-b", "orphan", wsPath, "main")
	t.Cleanup(func() { runGit(t, repo, "worktree", "remove", "--force", wsPath) })

	project := domain.Project{Name: "myrepo", Path: repo}
	workspaces := DiscoverProject(project)

	var ws *domain.Workspace
	for _, w := range workspaces {
		if !w.IsMain {
			ws = w
		}
	}
	require.NotNil(t, ws)
	require.False(t, ws.SupportedAgent)
	require.True(t, ws.IsOrphaned)
	require.Equal(t, domain.AgentNone, ws.Agent)
}

func TestDiscoverAllAcrossProjects(t *testing.T) {
	repoA := t.TempDir()
	runGit(t, repoA, "init", "-b", "main")
	runGit(t, repoA, "config", "user.email", "test@example.com")
	runGit(t, repoA, "config", "user.name", "test")
	require.NoError(t, os.WriteFile(filepath.Join(repoA, "README.md"), []byte("a"), 0o644))
	runGit(t, repoA, "add", ".")
	runGit(t, repoA, "commit", "-m", "initial")

	repoB := t.TempDir()
	runGit(t, repoB, "init", "-b", "main")
	runGit(t, repoB, "config", "user.email", "test@example.com")
	runGit(t, repoB, "config", "user.name", "test")
	require.NoError(t, os.WriteFile(filepath.Join(repoB, "README.md"), []byte("b"), 0o644))
	runGit(t, repoB, "add", ".")
	runGit(t, repoB, "commit", "-m", "initial")

	all := DiscoverAll([]domain.Project{
		{Name: "a", Path: repoA},
		{Name: "b", Path: repoB},
	})
	require.Len(t, all, 2)
}
