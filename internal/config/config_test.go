package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jordangarrison/grove/internal/domain"
	"github.com/jordangarrison/grove/internal/multiplexer"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, multiplexer.Tmux, cfg.Multiplexer)
	require.Equal(t, 33, cfg.SidebarWidthPct)
}

func TestValidateClampsSidebarWidth(t *testing.T) {
	cfg := Default()
	cfg.SidebarWidthPct = 5
	require.NoError(t, cfg.Validate())
	require.Equal(t, MinSidebarPct, cfg.SidebarWidthPct)

	cfg.SidebarWidthPct = 95
	require.NoError(t, cfg.Validate())
	require.Equal(t, MaxSidebarPct, cfg.SidebarWidthPct)
}

func TestValidateRejectsUnknownMultiplexer(t *testing.T) {
	cfg := Default()
	cfg.Multiplexer = multiplexer.Kind("screen")
	require.NoError(t, cfg.Validate())
	require.Equal(t, multiplexer.Tmux, cfg.Multiplexer)
}

func TestProjectRoundTrip(t *testing.T) {
	p := domain.Project{
		Name: "grove",
		Path: "/repos/grove",
		Defaults: domain.ProjectDefaults{
			BaseBranch:           "main",
			WorkspaceInitCommand: "make setup",
			AgentEnv: map[domain.AgentKind][]string{
				domain.AgentClaude: {"FOO=bar"},
			},
		},
	}
	pc := FromDomain(p)
	got := pc.ToDomain()
	require.Equal(t, p.Name, got.Name)
	require.Equal(t, p.Path, got.Path)
	require.Equal(t, p.Defaults.BaseBranch, got.Defaults.BaseBranch)
	require.Equal(t, []string{"FOO=bar"}, got.Defaults.AgentEnv[domain.AgentClaude])
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Projects = []ProjectConfig{FromDomain(domain.Project{Name: "grove", Path: "/repos/grove"})}
	cfg.Multiplexer = multiplexer.Zellij
	cfg.SidebarWidthPct = 40

	require.NoError(t, SaveTo(path, cfg))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, multiplexer.Zellij, loaded.Multiplexer)
	require.Equal(t, 40, loaded.SidebarWidthPct)
	require.Len(t, loaded.Projects, 1)
	require.Equal(t, "grove", loaded.Projects[0].Name)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(dir, "does-not-exist.json"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadPreservesUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	raw := map[string]any{
		"projects":                 []any{},
		"multiplexer":              "tmux",
		"launch_skip_permissions":  false,
		"sidebar_width_pct":        33,
		"experimental_feature_foo": true,
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, true, cfg.unknown["experimental_feature_foo"])

	require.NoError(t, SaveTo(path, cfg))
	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, true, reloaded.unknown["experimental_feature_foo"])
}

func TestClampSidebarPctClampsToMax(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := Default()
	require.NoError(t, SaveTo(path, cfg))

	cfg.SidebarWidthPct = ClampSidebarPct(150)
	require.Equal(t, MaxSidebarPct, cfg.SidebarWidthPct)
}
