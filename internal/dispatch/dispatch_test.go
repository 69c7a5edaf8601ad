package dispatch

import "testing"

func TestAllocateYieldsUniqueActions(t *testing.T) {
	d := New()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		ref := d.Allocate("item", nil)
		if ref.Target != d {
			t.Fatalf("expected dispatcher as target")
		}
		if seen[ref.Action] {
			t.Fatalf("duplicate action reference %q", ref.Action)
		}
		seen[ref.Action] = true
	}
}

func TestPerformInvokesBoundHandler(t *testing.T) {
	d := New()

	var got []string
	ref := d.Allocate("refresh", func(itemID string) {
		got = append(got, itemID)
	})

	d.Perform(ref.Action, nil)
	if len(got) != 1 || got[0] != "refresh" {
		t.Fatalf("expected handler invocation with item id, got %v", got)
	}
}

func TestPerformUnknownActionIsSilent(t *testing.T) {
	d := New()
	d.Perform("menubridge:item:missing", nil)
}

func TestReleaseDropsBinding(t *testing.T) {
	d := New()

	calls := 0
	ref := d.Allocate("refresh", func(string) { calls++ })
	d.Release(ref.Action)

	d.Perform(ref.Action, nil)
	if calls != 0 {
		t.Fatalf("released binding must not fire, got %d calls", calls)
	}
	if d.Len() != 0 {
		t.Fatalf("expected no live bindings, got %d", d.Len())
	}
}
