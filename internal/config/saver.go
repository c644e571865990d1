package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// saveConfig is the JSON-marshaling shape for Config's known fields.
type saveConfig struct {
	Projects              []ProjectConfig `json:"projects"`
	Multiplexer           string          `json:"multiplexer"`
	LaunchSkipPermissions bool            `json:"launch_skip_permissions"`
	SidebarWidthPct       int             `json:"sidebar_width_pct"`
}

// toSaveConfig converts Config to a JSON-serializable map, re-merging in
// any unrecognized top-level fields preserved from Load so a round trip
// never drops data written by a newer Grove version.
func toSaveConfig(cfg *Config) map[string]any {
	sc := saveConfig{
		Projects:              cfg.Projects,
		Multiplexer:           string(cfg.Multiplexer),
		LaunchSkipPermissions: cfg.LaunchSkipPermissions,
		SidebarWidthPct:       cfg.SidebarWidthPct,
	}
	data, _ := json.Marshal(sc)
	out := make(map[string]any)
	_ = json.Unmarshal(data, &out)
	for k, v := range cfg.unknown {
		if _, known := out[k]; !known {
			out[k] = v
		}
	}
	return out
}

// Save writes cfg to ConfigPath atomically: content is written to a
// sibling temp file under an exclusive flock, then renamed over the
// target, so a crash mid-write never leaves a truncated config
// (locking re-wired from the teacher's shell-manifest feature onto
// config persistence, since Grove drops shell manifests entirely).
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes cfg to an explicit path; used by tests.
func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(toSaveConfig(cfg), "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// SetSidebarWidthPct persists a new sidebar divider position, clamping to
// the valid range (spec.md §4.8, E6).
func SetSidebarWidthPct(cfg *Config, pct int) error {
	cfg.SidebarWidthPct = ClampSidebarPct(pct)
	return Save(cfg)
}

// SetLaunchSkipPermissions persists the default skip-permissions toggle
// used to pre-fill the create-workspace dialog (spec.md §6.3).
func SetLaunchSkipPermissions(cfg *Config, unsafe bool) error {
	cfg.LaunchSkipPermissions = unsafe
	return Save(cfg)
}
