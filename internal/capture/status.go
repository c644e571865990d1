package capture

import (
	"regexp"

	"github.com/jordangarrison/grove/internal/domain"
)

// statusRule is one priority-ordered pattern rule (spec.md §4.4). Rules are
// tested in table order; the first match wins.
type statusRule struct {
	name    string
	pattern *regexp.Regexp
	status  domain.WorkspaceStatus
}

// statusRules implements spec.md §4.4's five-rule priority table. Matching
// is performed against cleaned, ANSI-stripped text only — control-sequence
// regions (OSC titles in particular) must not trigger a false "Done" match,
// which is why rule 4 excludes text captured from an OSC/title sequence
// (StripAll already removes those sequences before this table runs, so the
// pattern itself stays simple).
var statusRules = []statusRule{
	{
		name:    "waiting",
		pattern: regexp.MustCompile(`(?i)(approve\s+command\?\s*\[y/n\]|do you want to proceed\?|waiting for (your )?(input|approval|confirmation)|\(y/n\)|press enter to continue)`),
		status:  domain.StatusWaiting,
	},
	{
		name:    "thinking",
		pattern: regexp.MustCompile(`(?i)(thinking(\.{3}|…)?|generating(\.{3}|…)?|[⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏]\s*\w)`),
		status:  domain.StatusThinking,
	},
	{
		name:    "error",
		pattern: regexp.MustCompile(`(?i)(error:|panic:|fatal:|traceback \(most recent call last\)|command failed|✗\s*(error|failed))`),
		status:  domain.StatusError,
	},
	{
		name:    "done",
		pattern: regexp.MustCompile(`(?i)(task completed|^done\.?$|all tests passed|✓\s*done|finished successfully)`),
		status:  domain.StatusDone,
	},
}

// InferStatus implements spec.md §4.4: given cleaned captured text, returns
// the inferred status. Input must already have ANSI control sequences
// stripped (see StripAll) so patterns never match inside escape sequences.
// outputRecentlyChanging is accepted to mirror spec.md's rule 5 ("default
// when output was recently changing → Active") even though Active is also
// the rule's only fallback value today — callers that later add an idle
// fallback have the signal already threaded through.
func InferStatus(cleanedText string, outputRecentlyChanging bool) domain.WorkspaceStatus {
	for _, rule := range statusRules {
		if rule.pattern.MatchString(cleanedText) {
			return rule.status
		}
	}
	return domain.StatusActive
}
