package lifecycle

import (
	"github.com/jordangarrison/grove/internal/domain"
)

// DiscoverProject walks one configured project's worktrees via `git
// worktree list` and reads each one's Grove markers, producing the
// workspace list Refresh populates AppState with (spec.md §4.6 "Refresh").
// Session name fields are set from the canonical naming helpers, without
// checking which sessions are actually running (ListRunningSessions is a
// bootstrap-only call — see internal/multiplexer's package doc).
func DiscoverProject(project domain.Project) []*domain.Workspace {
	worktrees := GetWorktrees(project.Path)
	if worktrees == nil {
		return nil
	}

	out := make([]*domain.Workspace, 0, len(worktrees))
	for _, wt := range worktrees {
		ws := &domain.Workspace{
			Path:        wt.Path,
			Branch:      wt.Branch,
			IsMain:      wt.IsMain,
			ProjectPath: project.Path,
			ProjectName: project.Name,
		}
		if wt.Branch == "" {
			ws.Branch = domain.DetachedBranchSentinel
		}
		ws.Name = workspaceDisplayName(wt, project)

		if wt.IsMain {
			ws.Status = domain.StatusMain
			ws.SupportedAgent = true
		} else {
			agent, base, status, supported := ReadMarkers(wt.Path)
			ws.Agent = agent
			ws.BaseBranch = base
			ws.Status = status
			ws.SupportedAgent = supported
			ws.IsOrphaned = !supported && agent == domain.AgentNone
		}

		ws.AgentSession = ws.AgentSessionNameOf()
		ws.ShellSession = domain.ShellSessionNameOf(ws.AgentSession)
		ws.GitSession = domain.GitSessionNameOf(ws.AgentSession)

		out = append(out, ws)
	}
	return out
}

func workspaceDisplayName(wt WorktreeInfo, project domain.Project) string {
	if wt.IsMain {
		return project.Name
	}
	if wt.Branch != "" {
		return wt.Branch
	}
	return wt.Path
}

// DiscoverAll runs DiscoverProject over every configured project in order.
func DiscoverAll(projects []domain.Project) []*domain.Workspace {
	var all []*domain.Workspace
	for _, p := range projects {
		all = append(all, DiscoverProject(p)...)
	}
	return all
}
