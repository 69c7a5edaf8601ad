package registry

import (
	"testing"

	"github.com/example/menubridge/internal/menutree"
)

func TestRegisterLookupUnregister(t *testing.T) {
	r := New()

	if _, ok := r.Lookup("refresh"); ok {
		t.Fatalf("expected empty registry to miss")
	}

	ref := menutree.ActionRef{Action: "menubridge:item:1"}
	r.Register("refresh", ref)

	got, ok := r.Lookup("refresh")
	if !ok || got.Action != ref.Action {
		t.Fatalf("expected %q, got %q (ok=%t)", ref.Action, got.Action, ok)
	}

	r.Unregister("refresh")
	if _, ok := r.Lookup("refresh"); ok {
		t.Fatalf("expected lookup to miss after unregister")
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d entries", r.Len())
	}
}

func TestReRegisterIsLastWriteWins(t *testing.T) {
	r := New()
	r.Register("refresh", menutree.ActionRef{Action: "menubridge:item:1"})
	r.Register("refresh", menutree.ActionRef{Action: "menubridge:item:2"})

	got, ok := r.Lookup("refresh")
	if !ok || got.Action != "menubridge:item:2" {
		t.Fatalf("expected the later binding to win, got %q", got.Action)
	}
	if r.Len() != 1 {
		t.Fatalf("expected a single binding, got %d", r.Len())
	}
}

func TestUnregisterUnknownIsNoop(t *testing.T) {
	r := New()
	r.Unregister("never-registered")
}
