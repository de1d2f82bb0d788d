package reorder

import "testing"

type recordingStore struct {
	calls []string
	moved bool
}

func (r *recordingStore) Reorder(fromID, toID, categoryFilter string) bool {
	r.calls = append(r.calls, fromID+"->"+toID+"/"+categoryFilter)
	return r.moved
}

func TestController_CompletedGesture(t *testing.T) {
	store := &recordingStore{moved: true}
	c := NewController(store)

	c.Begin("a", "all")
	if !c.Active() || c.Source() != "a" {
		t.Fatalf("Expected active gesture on 'a', got active=%v source=%q", c.Active(), c.Source())
	}

	if !c.Drop("b") {
		t.Error("Expected drop to report a move")
	}
	if len(store.calls) != 1 || store.calls[0] != "a->b/all" {
		t.Errorf("Expected exactly one reorder call a->b/all, got %v", store.calls)
	}
	if c.Active() {
		t.Error("Expected gesture cleared after drop")
	}
}

func TestController_Cancel(t *testing.T) {
	store := &recordingStore{moved: true}
	c := NewController(store)

	c.Begin("a", "all")
	c.Cancel()

	if c.Active() {
		t.Error("Expected gesture cleared after cancel")
	}
	if len(store.calls) != 0 {
		t.Errorf("Expected zero store calls after cancel, got %v", store.calls)
	}

	// A drop after cancel is an orphan release: still no mutation
	if c.Drop("b") {
		t.Error("Expected orphan drop to report no move")
	}
	if len(store.calls) != 0 {
		t.Errorf("Expected zero store calls, got %v", store.calls)
	}
}

func TestController_DropOverSelf(t *testing.T) {
	store := &recordingStore{moved: true}
	c := NewController(store)

	c.Begin("a", "all")
	if c.Drop("a") {
		t.Error("Expected self-drop to report no move")
	}
	if len(store.calls) != 0 {
		t.Errorf("Expected zero store calls, got %v", store.calls)
	}
}

func TestController_DropOverNoTarget(t *testing.T) {
	store := &recordingStore{moved: true}
	c := NewController(store)

	c.Begin("a", "all")
	if c.Drop("") {
		t.Error("Expected drop outside any target to report no move")
	}
	if len(store.calls) != 0 {
		t.Errorf("Expected zero store calls, got %v", store.calls)
	}
}

func TestController_BeginReplacesGesture(t *testing.T) {
	store := &recordingStore{moved: true}
	c := NewController(store)

	c.Begin("a", "all")
	c.Begin("b", "work")
	c.Drop("c")

	if len(store.calls) != 1 || store.calls[0] != "b->c/work" {
		t.Errorf("Expected reorder from the replacing gesture, got %v", store.calls)
	}
}

func TestController_StoreRefusalPropagates(t *testing.T) {
	store := &recordingStore{moved: false}
	c := NewController(store)

	c.Begin("a", "work")
	if c.Drop("b") {
		t.Error("Expected drop to report no move when the store refuses")
	}
}
