package menutree

import "testing"

func TestInsertClampsIndex(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		wantPos  int
		existing int
	}{
		{name: "front", index: 0, wantPos: 0, existing: 3},
		{name: "middle", index: 1, wantPos: 1, existing: 3},
		{name: "exact end", index: 3, wantPos: 3, existing: 3},
		{name: "past end appends", index: 999, wantPos: 3, existing: 3},
		{name: "negative appends", index: -1, wantPos: 3, existing: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Node{Title: "View"}
			for i := 0; i < tt.existing; i++ {
				n.Insert(&Item{Title: "existing"}, -1)
			}

			marker := &Item{Title: "marker"}
			n.Insert(marker, tt.index)

			if len(n.Items) != tt.existing+1 {
				t.Fatalf("expected %d items, got %d", tt.existing+1, len(n.Items))
			}
			if n.Items[tt.wantPos] != marker {
				t.Fatalf("expected marker at position %d", tt.wantPos)
			}
		})
	}
}

func TestDetachRemovesNestedItem(t *testing.T) {
	root := testBar()
	item := FindItemByID(root, "deep")

	if !root.Detach(item) {
		t.Fatalf("expected detach to succeed")
	}
	if FindItemByID(root, "deep") != nil {
		t.Fatalf("expected item to be gone after detach")
	}
	if root.Detach(item) {
		t.Fatalf("expected second detach to fail")
	}
}

type recordingTarget struct {
	actions []string
	senders []*Item
}

func (r *recordingTarget) Perform(action string, sender *Item) {
	r.actions = append(r.actions, action)
	r.senders = append(r.senders, sender)
}

func TestDispatch(t *testing.T) {
	target := &recordingTarget{}
	item := &Item{Title: "Copy", Enabled: true, Action: ActionRef{Target: target, Action: ActionCopy}}

	item.Dispatch()
	if len(target.actions) != 1 || target.actions[0] != ActionCopy {
		t.Fatalf("expected one copy dispatch, got %v", target.actions)
	}
	if target.senders[0] != item {
		t.Fatalf("expected the item itself as sender")
	}

	item.Enabled = false
	item.Dispatch()
	if len(target.actions) != 1 {
		t.Fatalf("disabled item must not dispatch")
	}

	bare := &Item{Title: "Bare", Enabled: true}
	bare.Dispatch() // no target bound; must not panic
}

func TestNewStandardBarLayout(t *testing.T) {
	target := &recordingTarget{}
	root := NewStandardBar(target)

	edit := FindMenu(root, "Edit")
	if edit == nil {
		t.Fatalf("expected an Edit menu")
	}
	if len(edit.Items) != 4 {
		t.Fatalf("expected 4 standard edit items, got %d", len(edit.Items))
	}

	for _, action := range []string{ActionCut, ActionCopy, ActionPaste, ActionSelectAll} {
		item := FindItemByAction(root, action)
		if item == nil {
			t.Fatalf("expected standard item for %s", action)
		}
		if !item.Modifiers.Has(ModCommand) {
			t.Fatalf("expected command modifier on %s", action)
		}
	}

	if FindMenu(root, "View") == nil {
		t.Fatalf("expected a View menu")
	}
}
