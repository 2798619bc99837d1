package shellsup

import (
	"regexp"
	"strconv"
	"testing"
)

func TestClassifier_Kinds(t *testing.T) {
	c := NewClassifier(regexp.MustCompile(`DEPLOY_DONE`))

	cases := []struct {
		line string
		want []EventKind
	}{
		{"panic: nil pointer dereference", []EventKind{EventError}},
		{"Error: connection refused", []EventKind{EventError}},
		{"Warning: disk space low", []EventKind{EventWarning}},
		{"see https://example.com/docs for details", []EventKind{EventURL}},
		{"DEPLOY_DONE revision 42", []EventKind{EventCustom}},
		{"all systems nominal", nil},
	}

	for _, tc := range cases {
		got := c.Kinds(tc.line)
		if len(got) != len(tc.want) {
			t.Errorf("Kinds(%q) = %v, want %v", tc.line, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("Kinds(%q) = %v, want %v", tc.line, got, tc.want)
			}
		}
	}
}

func TestClassifier_IsPromptCandidate(t *testing.T) {
	c := NewClassifier(nil)

	truthy := []string{"Continue?", "Enter password:", "proceed?   "}
	for _, line := range truthy {
		if !c.IsPromptCandidate(line) {
			t.Errorf("expected %q to be a prompt candidate", line)
		}
	}

	falsy := []string{"", "   ", "done.", "building project"}
	for _, line := range falsy {
		if c.IsPromptCandidate(line) {
			t.Errorf("expected %q to not be a prompt candidate", line)
		}
	}
}

func TestVerificationMatches_DirectLine(t *testing.T) {
	pattern := regexp.MustCompile(`listening on port \d+`)
	if !VerificationMatches(pattern, nil, "server listening on port 8080") {
		t.Fatal("expected direct line match")
	}
}

func TestVerificationMatches_SpansRecentContext(t *testing.T) {
	pattern := regexp.MustCompile(`(?s)Build succeeded.*Ready`)
	recent := []string{"Build succeeded", "Ready"}
	if !VerificationMatches(pattern, recent, "Ready") {
		t.Fatal("expected pattern to match across the joined recent-lines window")
	}
}

func TestVerificationMatches_WindowCappedAt20Lines(t *testing.T) {
	pattern := regexp.MustCompile(`marker-0\b`)
	var recent []string
	for i := 0; i < 25; i++ {
		recent = append(recent, "marker-"+strconv.Itoa(i))
	}
	if VerificationMatches(pattern, recent, "tail") {
		t.Fatal("expected marker-0 (outside the 20-line window) to not match")
	}
}

func TestVerificationMatches_NilPatternNeverMatches(t *testing.T) {
	if VerificationMatches(nil, []string{"anything"}, "anything") {
		t.Fatal("expected nil pattern to never match")
	}
}
