package history

import (
	"slices"
	"testing"
)

func cloneInts(v []int) []int { return slices.Clone(v) }

func TestEmptyManager(t *testing.T) {
	m := New(3, cloneInts)

	if m.CanUndo() || m.CanRedo() {
		t.Error("empty manager should not allow undo or redo")
	}
	if m.Index() != -1 {
		t.Errorf("Index() = %d, want -1", m.Index())
	}
	if _, ok := m.Undo(); ok {
		t.Error("Undo on empty manager should return nothing")
	}
	if _, ok := m.Redo(); ok {
		t.Error("Redo on empty manager should return nothing")
	}
}

func TestSaveUndoRedo(t *testing.T) {
	m := New[int](10, nil)
	for i := range 3 {
		m.Save(i)
	}

	if m.Index() != 2 || m.Len() != 3 {
		t.Fatalf("after 3 saves index=%d len=%d", m.Index(), m.Len())
	}
	if !m.CanUndo() || m.CanRedo() {
		t.Fatal("at the end: expected canUndo and !canRedo")
	}

	v, ok := m.Undo()
	if !ok || v != 1 {
		t.Fatalf("Undo() = %d, %v; want 1, true", v, ok)
	}
	v, ok = m.Undo()
	if !ok || v != 0 {
		t.Fatalf("Undo() = %d, %v; want 0, true", v, ok)
	}
	if _, ok := m.Undo(); ok {
		t.Error("Undo at index 0 should return nothing")
	}
	if m.Index() != 0 {
		t.Errorf("failed undo moved index to %d", m.Index())
	}

	v, ok = m.Redo()
	if !ok || v != 1 {
		t.Fatalf("Redo() = %d, %v; want 1, true", v, ok)
	}
	if !m.CanRedo() {
		t.Error("one more redo should be available")
	}
}

func TestSaveTruncatesFuture(t *testing.T) {
	m := New[int](10, nil)
	m.Save(1)
	m.Save(2)
	m.Save(3)
	m.Undo()
	m.Undo()

	m.Save(42)
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after truncating future", m.Len())
	}
	if m.CanRedo() {
		t.Error("saving should discard the redo branch")
	}
	if v, _ := m.Undo(); v != 1 {
		t.Errorf("Undo() = %d, want 1", v)
	}
}

func TestEvictsOldest(t *testing.T) {
	const maxSize = 10
	m := New[int](maxSize, nil)
	for i := range maxSize + 1 {
		m.Save(i)
	}

	if m.Len() != maxSize {
		t.Fatalf("Len() = %d, want %d", m.Len(), maxSize)
	}
	if m.Index() != maxSize-1 {
		t.Errorf("Index() = %d, want %d", m.Index(), maxSize-1)
	}
	if !m.CanUndo() {
		t.Error("CanUndo should remain true after eviction")
	}

	var oldest int
	for m.CanUndo() {
		oldest, _ = m.Undo()
	}
	if oldest != 1 {
		t.Errorf("oldest remaining snapshot = %d, want 1 (0 evicted)", oldest)
	}
	if _, ok := m.Undo(); ok {
		t.Error("Undo at index 0 should return nothing")
	}
}

func TestSnapshotsAreIndependentCopies(t *testing.T) {
	m := New(5, cloneInts)
	state := []int{1, 2, 3}
	m.Save(state)
	m.Save([]int{9})

	state[0] = 100
	got, _ := m.Undo()
	if got[0] != 1 {
		t.Errorf("stored snapshot aliased caller state: %v", got)
	}

	got[1] = 200
	m.Redo()
	again, _ := m.Undo()
	if again[1] != 2 {
		t.Errorf("returned snapshot aliased stored state: %v", again)
	}
}

func TestClear(t *testing.T) {
	m := New[int](0, nil)
	if m.MaxSize() != DefaultMaxSize {
		t.Errorf("MaxSize() = %d, want default %d", m.MaxSize(), DefaultMaxSize)
	}
	m.Save(1)
	m.Save(2)
	m.Clear()

	if m.Len() != 0 || m.Index() != -1 {
		t.Errorf("after Clear len=%d index=%d", m.Len(), m.Index())
	}
	if m.CanUndo() || m.CanRedo() {
		t.Error("cleared manager should not allow undo or redo")
	}
}
