package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigPath returns the path to Grove's persisted config file,
// $XDG_CONFIG_HOME/grove/config.json (falling back to ~/.config).
func ConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "grove", "config.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".grove-config.json")
	}
	return filepath.Join(home, ".config", "grove", "config.json")
}

// Load reads the config file at ConfigPath, returning Default() if it
// does not yet exist. Unrecognized top-level fields are preserved in
// Config.unknown so a round trip through Load/Save does not silently
// drop fields written by a newer Grove version.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads and validates a config file at an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	known := map[string]bool{
		"projects": true, "multiplexer": true,
		"launch_skip_permissions": true, "sidebar_width_pct": true,
	}
	unknown := make(map[string]any)
	for k, v := range raw {
		if known[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err == nil {
			unknown[k] = val
		}
	}
	cfg.unknown = unknown

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watcher notifies on external edits to the config file (e.g. hand edits
// made while Grove is running), re-wired from the teacher's shell-manifest
// file watcher onto the config path instead.
type Watcher struct {
	fw   *fsnotify.Watcher
	path string
}

// WatchConfig starts watching ConfigPath for writes/renames (editors
// commonly replace-via-rename rather than write-in-place).
func WatchConfig() (*Watcher, error) {
	return WatchPath(ConfigPath())
}

// WatchPath starts watching an explicit config path.
func WatchPath(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{fw: fw, path: path}, nil
}

// Events returns a channel of fsnotify events restricted to the watched
// config file's own path; callers should reload on Write/Create/Rename.
func (w *Watcher) Events() <-chan fsnotify.Event {
	out := make(chan fsnotify.Event)
	go func() {
		defer close(out)
		for ev := range w.fw.Events {
			if filepath.Clean(ev.Name) == filepath.Clean(w.path) {
				out <- ev
			}
		}
	}()
	return out
}

// Errors surfaces the underlying watcher's error channel.
func (w *Watcher) Errors() <-chan error {
	return w.fw.Errors
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
