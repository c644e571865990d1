package lifecycle

import (
	"fmt"
	"regexp"
	"strings"
)

// envKeyPattern is spec.md §6.4's validation rule for project agent-env
// entries: KEY must match [A-Za-z_][A-Za-z0-9_]*.
var envKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateAgentEnv parses a project's per-agent env lines (`KEY=VALUE`) and
// validates every key. An invalid key fails the whole list with the exact
// message spec.md §6.4 specifies, and produces no multiplexer writes — the
// caller must check the error before issuing any start/restart command.
func ValidateAgentEnv(lines []string) (map[string]string, error) {
	env := make(map[string]string, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, "=")
		if idx == -1 {
			return nil, fmt.Errorf("invalid project agent env: invalid env key '%s'", line)
		}
		key := line[:idx]
		value := line[idx+1:]
		if !envKeyPattern.MatchString(key) {
			return nil, fmt.Errorf("invalid project agent env: invalid env key '%s'", key)
		}
		env[key] = value
	}
	return env, nil
}
