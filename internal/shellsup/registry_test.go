package shellsup

import "testing"

func newTestShell(label string) *Shell {
	return NewShell(StartSpec{Label: label, Command: "/bin/true"}, 50, 0, 0, 0)
}

func TestRegistry_DuplicateLabelRejected(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Insert("build", newTestShell("build")); err != nil {
		t.Fatalf("unexpected error on first insert: %v", err)
	}
	err := reg.Insert("build", newTestShell("build"))
	if err == nil {
		t.Fatal("expected duplicate label to be rejected")
	}
	se, ok := AsError(err)
	if !ok || se.Kind != KindDuplicateLabel {
		t.Fatalf("expected KindDuplicateLabel, got %v", err)
	}
}

func TestRegistry_GetMissingLabel(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get("missing")
	se, ok := AsError(err)
	if !ok || se.Kind != KindNotFound {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestRegistry_RemoveAndList(t *testing.T) {
	reg := NewRegistry()
	reg.Insert("a", newTestShell("a"))
	reg.Insert("b", newTestShell("b"))
	if len(reg.List()) != 2 {
		t.Fatalf("expected 2 shells, got %d", len(reg.List()))
	}
	reg.Remove("a")
	if len(reg.List()) != 1 {
		t.Fatalf("expected 1 shell after remove, got %d", len(reg.List()))
	}
	if _, err := reg.Get("a"); err == nil {
		t.Fatal("expected removed label to be gone")
	}
}

func TestRegistry_RemoveUnknownLabelIsNoop(t *testing.T) {
	reg := NewRegistry()
	reg.Remove("never-existed")
}
