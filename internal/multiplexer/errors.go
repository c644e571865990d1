package multiplexer

import "strings"

// IsMissingSessionError reports whether err's text matches tmux/zellij's
// "no such session"/"can't find pane" failure signature. The preview engine
// treats this as orphan evidence (spec.md §4.3, §7), not a generic failure.
func IsMissingSessionError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	signatures := []string{
		"can't find pane",
		"can't find session",
		"no such session",
		"no server running",
		"session not found",
		"failed to attach",
	}
	for _, sig := range signatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// IsDuplicateSessionError reports whether err is tmux/zellij's
// "duplicate session" failure — treated as success per spec.md §7.
func IsDuplicateSessionError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate session") || strings.Contains(msg, "already exists")
}
