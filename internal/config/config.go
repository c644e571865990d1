// Package config persists Grove's configuration: the project list,
// multiplexer choice, and UI prefs (spec.md §6.3). Config unknown fields
// are preserved across rewrite where feasible; a rewrite is always a
// whole-file replacement written atomically (see saver.go).
package config

import (
	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/multiplexer"
)

// Config is Grove's root persisted configuration (spec.md §6.3).
type Config struct {
	Projects               []ProjectConfig  `json:"projects"`
	Multiplexer            multiplexer.Kind `json:"multiplexer"`
	LaunchSkipPermissions  bool             `json:"launch_skip_permissions"`
	SidebarWidthPct        int              `json:"sidebar_width_pct"`

	// unknown holds any fields Grove doesn't recognize, preserved
	// verbatim across a rewrite (spec.md §6.3).
	unknown map[string]any
}

// ProjectConfig is one project entry in the persisted projects list.
type ProjectConfig struct {
	Name     string                 `json:"name"`
	Path     string                 `json:"path"`
	Defaults ProjectDefaultsConfig  `json:"defaults"`
}

// ProjectDefaultsConfig mirrors domain.ProjectDefaults in a
// JSON-serializable shape.
type ProjectDefaultsConfig struct {
	BaseBranch           string              `json:"base_branch"`
	WorkspaceInitCommand string              `json:"workspace_init_command"`
	AgentEnv             map[string][]string `json:"agent_env"`
}

// ToDomain converts a persisted project entry into a domain.Project.
func (p ProjectConfig) ToDomain() domain.Project {
	agentEnv := make(map[domain.AgentKind][]string, len(p.Defaults.AgentEnv))
	for k, v := range p.Defaults.AgentEnv {
		agentEnv[domain.AgentKind(k)] = v
	}
	return domain.Project{
		Name: p.Name,
		Path: p.Path,
		Defaults: domain.ProjectDefaults{
			BaseBranch:           p.Defaults.BaseBranch,
			WorkspaceInitCommand: p.Defaults.WorkspaceInitCommand,
			AgentEnv:             agentEnv,
		},
	}
}

// FromDomain converts a domain.Project into its persisted shape.
func FromDomain(p domain.Project) ProjectConfig {
	agentEnv := make(map[string][]string, len(p.Defaults.AgentEnv))
	for k, v := range p.Defaults.AgentEnv {
		agentEnv[string(k)] = v
	}
	return ProjectConfig{
		Name: p.Name,
		Path: p.Path,
		Defaults: ProjectDefaultsConfig{
			BaseBranch:           p.Defaults.BaseBranch,
			WorkspaceInitCommand: p.Defaults.WorkspaceInitCommand,
			AgentEnv:             agentEnv,
		},
	}
}

// MinSidebarPct and MaxSidebarPct bound the persisted sidebar ratio
// (spec.md §6.3: "a single integer in [10,90]").
const (
	MinSidebarPct = 10
	MaxSidebarPct = 90
)

// Default returns Grove's default configuration.
func Default() *Config {
	return &Config{
		Projects:              nil,
		Multiplexer:           multiplexer.Tmux,
		LaunchSkipPermissions: false,
		SidebarWidthPct:       33,
	}
}

// Validate clamps out-of-range persisted values rather than failing
// outright, consistent with the teacher's own defensive Validate().
func (c *Config) Validate() error {
	if c.SidebarWidthPct < MinSidebarPct {
		c.SidebarWidthPct = MinSidebarPct
	}
	if c.SidebarWidthPct > MaxSidebarPct {
		c.SidebarWidthPct = MaxSidebarPct
	}
	if c.Multiplexer != multiplexer.Tmux && c.Multiplexer != multiplexer.Zellij {
		c.Multiplexer = multiplexer.Tmux
	}
	return nil
}

// ClampSidebarPct clamps a candidate sidebar width percentage into
// [MinSidebarPct, MaxSidebarPct], used by the divider-drag handler
// (spec.md §4.8, E6).
func ClampSidebarPct(pct int) int {
	if pct < MinSidebarPct {
		return MinSidebarPct
	}
	if pct > MaxSidebarPct {
		return MaxSidebarPct
	}
	return pct
}
