package shellsup

import (
	"regexp"
	"strings"
)

// EventKind is one of the notable-event categories from spec.md §4.2.
type EventKind string

const (
	EventError   EventKind = "error"
	EventWarning EventKind = "warning"
	EventURL     EventKind = "url"
	EventPrompt  EventKind = "prompt"
	EventCustom  EventKind = "custom"
)

// verificationContextLines is the N in spec.md §4.2's "tests the line (and
// also the most recent N <= 20 lines concatenated...)".
const verificationContextLines = 20

var (
	defaultErrorRegex   = regexp.MustCompile(`(?i)error|exception|fatal|panic`)
	defaultWarningRegex = regexp.MustCompile(`(?i)warn(ing)?`)
	defaultURLRegex     = regexp.MustCompile(`https?://[^\s]+`)
)

// Classifier applies the pure predicates of spec.md §4.2 to appended lines.
// Regexes and the custom notable pattern are injected per §9's design note
// keeping the classifier a pure, unit-testable component with no
// package-level regex state.
type Classifier struct {
	errorRe   *regexp.Regexp
	warningRe *regexp.Regexp
	urlRe     *regexp.Regexp
	customRe  *regexp.Regexp // nil if start_shell didn't supply notable_pattern
}

// NewClassifier builds a Classifier with the default error/warning/url
// regexes from spec.md §4.2 and the given optional custom pattern.
func NewClassifier(custom *regexp.Regexp) *Classifier {
	return &Classifier{
		errorRe:   defaultErrorRegex,
		warningRe: defaultWarningRegex,
		urlRe:     defaultURLRegex,
		customRe:  custom,
	}
}

// WithRegexes overrides the error/warning/url regexes, for tests that need
// to pin classifier behavior independent of the production defaults.
func (c *Classifier) WithRegexes(errorRe, warningRe, urlRe *regexp.Regexp) *Classifier {
	if errorRe != nil {
		c.errorRe = errorRe
	}
	if warningRe != nil {
		c.warningRe = warningRe
	}
	if urlRe != nil {
		c.urlRe = urlRe
	}
	return c
}

// Kinds returns every notable-event kind the given line matches, per the
// error/warning/url/custom rules of spec.md §4.2. Prompt detection needs
// pty-quiescence state the classifier doesn't have, so it's evaluated
// separately via IsPromptCandidate + the caller's own quiet-timer.
func (c *Classifier) Kinds(line string) []EventKind {
	var kinds []EventKind
	if c.errorRe.MatchString(line) || strings.HasPrefix(line, "Error:") {
		kinds = append(kinds, EventError)
	}
	if c.warningRe.MatchString(line) {
		kinds = append(kinds, EventWarning)
	}
	if c.urlRe.MatchString(line) {
		kinds = append(kinds, EventURL)
	}
	if c.customRe != nil && c.customRe.MatchString(line) {
		kinds = append(kinds, EventCustom)
	}
	return kinds
}

// IsPromptCandidate reports whether line ends with ':' or '?', the textual
// half of spec.md §4.2's prompt rule (the other half — quiescence for >=
// 100ms after the line — is the settle-timer's job, evaluated by the
// Shell/scheduler since it depends on wall-clock state).
func (c *Classifier) IsPromptCandidate(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	if trimmed == "" {
		return false
	}
	last := trimmed[len(trimmed)-1]
	return last == ':' || last == '?'
}

// VerificationMatches tests newLine and, to tolerate patterns spanning
// fragments, the concatenation of the most recent verificationContextLines
// lines (including newLine), against pattern. A nil pattern never matches
// (callers should already have skipped verification when no pattern was
// given — see spec.md §4.4 "absent pattern implies immediate active").
func VerificationMatches(pattern *regexp.Regexp, recentLines []string, newLine string) bool {
	if pattern == nil {
		return false
	}
	if pattern.MatchString(newLine) {
		return true
	}
	ctx := recentLines
	if len(ctx) > verificationContextLines {
		ctx = ctx[len(ctx)-verificationContextLines:]
	}
	return pattern.MatchString(strings.Join(ctx, "\n"))
}
