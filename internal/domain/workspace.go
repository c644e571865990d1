// Package domain holds Grove's core entity types: Workspace, Project, and
// the agent/status vocabulary shared by the capture, lifecycle, and app
// packages.
package domain

import "time"

// AgentKind identifies which external coding agent a workspace drives.
type AgentKind string

const (
	AgentNone     AgentKind = ""
	AgentClaude   AgentKind = "claude"
	AgentCodex    AgentKind = "codex"
	AgentOpenCode AgentKind = "opencode"
)

// AgentCommands maps agent kinds to the CLI binary Grove launches inside a
// multiplexer session.
var AgentCommands = map[AgentKind]string{
	AgentClaude:   "claude",
	AgentCodex:    "codex",
	AgentOpenCode: "opencode",
}

// AgentDisplayNames provides the human-readable label for each agent kind.
var AgentDisplayNames = map[AgentKind]string{
	AgentNone:     "None (attach only)",
	AgentClaude:   "Claude Code",
	AgentCodex:    "Codex CLI",
	AgentOpenCode: "OpenCode",
}

// SkipPermissionsFlags maps agent kinds to their "unsafe" / skip-approval
// CLI flag, toggled by the '!' keybinding before starting an agent.
var SkipPermissionsFlags = map[AgentKind]string{
	AgentClaude:   "--dangerously-skip-permissions",
	AgentCodex:    "--dangerously-bypass-approvals-and-sandbox",
	AgentOpenCode: "",
}

// AgentTypeOrder is the display order for agent-selection UI.
var AgentTypeOrder = []AgentKind{AgentClaude, AgentCodex, AgentOpenCode}

// WorkspaceStatus is the lifecycle/activity status of a workspace.
type WorkspaceStatus int

const (
	StatusMain WorkspaceStatus = iota
	StatusIdle
	StatusActive
	StatusThinking
	StatusWaiting
	StatusDone
	StatusError
	StatusUnknown
	StatusUnsupported
)

func (s WorkspaceStatus) String() string {
	switch s {
	case StatusMain:
		return "main"
	case StatusIdle:
		return "idle"
	case StatusActive:
		return "active"
	case StatusThinking:
		return "thinking"
	case StatusWaiting:
		return "waiting"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	case StatusUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Icon returns the sidebar status glyph for a status.
func (s WorkspaceStatus) Icon() string {
	switch s {
	case StatusMain:
		return "⌂"
	case StatusIdle:
		return "⏸"
	case StatusActive:
		return "●"
	case StatusThinking:
		return "◌"
	case StatusWaiting:
		return "◆"
	case StatusDone:
		return "✓"
	case StatusError:
		return "✗"
	case StatusUnsupported:
		return "⊘"
	default:
		return "?"
	}
}

// NeedsAttention reports whether a status should set the workspace's "needs
// attention" flag when the workspace is not selected.
func (s WorkspaceStatus) NeedsAttention() bool {
	switch s {
	case StatusWaiting, StatusError, StatusDone:
		return true
	default:
		return false
	}
}

// Marker file names Grove writes into a workspace worktree. Literal and
// exact — downstream tooling and the generated start script depend on
// these names.
const (
	AgentMarkerFile     = ".grove-agent"
	BaseMarkerFile      = ".grove-base"
	SetupScriptFile     = ".grove-setup.sh"
	StartScriptFile     = ".grove-start.sh"
	PromptMarkerFile    = ".grove-prompt"
	SkipPermissionsFile = ".grove/skip_permissions"
	GroveDir            = ".grove"
)

// GitignoreEntries are appended idempotently to a new workspace's
// .gitignore at creation time.
var GitignoreEntries = []string{
	AgentMarkerFile,
	BaseMarkerFile,
	StartScriptFile,
	SetupScriptFile,
}

// EnvFilesToCopy is the fixed allowlist of env files copied from the repo
// root into a new workspace, when present, without overwriting an existing
// copy.
var EnvFilesToCopy = []string{
	".env",
	".env.local",
	".env.development",
	".env.development.local",
}

// Scrollback depths are hard-coded policy (see SPEC_FULL.md §3.1): the live
// preview captures more history than a copy/selection snapshot needs.
const (
	LiveCaptureScrollback = 600
	CopyCaptureScrollback = 200
)

// Workspace represents one git worktree of one project, with Grove's
// marker metadata and (possibly) a running agent multiplexer session.
type Workspace struct {
	Name           string
	Branch         string
	BaseBranch     string
	Path           string
	Agent          AgentKind
	Status         WorkspaceStatus
	IsMain         bool
	IsOrphaned     bool
	SupportedAgent bool
	NeedsAttention bool
	ProjectPath    string
	ProjectName    string

	AgentSession string // tmux/zellij session name hosting the agent
	ShellSession string // companion shell session name
	GitSession   string // lazygit session name

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DetachedBranchSentinel is the display value for a workspace whose HEAD
// is detached.
const DetachedBranchSentinel = "(detached)"

// AgentSessionNameOf returns the canonical tmux/zellij session name for this
// workspace's agent, e.g. "grove-ws-feature-a".
func (w *Workspace) AgentSessionNameOf() string {
	return "grove-ws-" + w.Name
}

// ShellSessionNameOf returns the canonical companion shell session name.
func ShellSessionNameOf(agentSession string) string {
	return agentSession + "-shell"
}

// GitSessionNameOf returns the canonical lazygit session name.
func GitSessionNameOf(agentSession string) string {
	return agentSession + "-git"
}

// ProjectDefaults holds per-project defaults applied to new workspaces.
type ProjectDefaults struct {
	BaseBranch          string
	WorkspaceInitCommand string
	AgentEnv            map[AgentKind][]string
}

// Project is a repository root participating in Grove.
type Project struct {
	Name     string
	Path     string
	Defaults ProjectDefaults
}
