package shellsup

import (
	"fmt"
	"strings"
)

// summarize builds the Check() response's message field, applying
// spec.md §4.7's five ordered rules. Called with s.mu held.
func summarize(s *Shell) string {
	switch {
	case s.transition == transitionCrashed:
		return fmt.Sprintf("shell crashed: exit=%s", exitDescriptor(s.exitCode, s.exitSignal))

	case s.transition == transitionVerifyMatched:
		pattern := ""
		if s.verifyPattern != nil {
			pattern = s.verifyPattern.String()
		}
		return fmt.Sprintf("verification matched: %s", pattern)

	case s.transition == transitionVerifyTimedOut:
		return fmt.Sprintf("verification timed out after %dms; continuing", s.verifyTimeoutMs)
	}

	if parts := notableParts(s.sincePoll); len(parts) > 0 {
		return strings.Join(parts, ", ") + " since last check"
	}

	return "no notable events"
}

// notableParts renders non-zero counters in a fixed kind order, omitting
// zero-count kinds, per spec.md §4.7 rule 4.
func notableParts(counts map[EventKind]int) []string {
	order := []struct {
		kind  EventKind
		label string
	}{
		{EventError, "error"},
		{EventWarning, "warning"},
		{EventURL, "url"},
		{EventPrompt, "prompt"},
		{EventCustom, "custom event"},
	}

	var parts []string
	for _, o := range order {
		n := counts[o.kind]
		if n == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s(s)", n, o.label))
	}
	return parts
}

func exitDescriptor(code *int, signal *string) string {
	if signal != nil {
		return *signal
	}
	if code != nil {
		return fmt.Sprintf("%d", *code)
	}
	return "unknown"
}
