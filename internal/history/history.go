// Package history provides a bounded, linear undo/redo log of snapshots.
package history

// DefaultMaxSize is the number of snapshots kept when no size is given.
const DefaultMaxSize = 10

// Manager stores deep copies of snapshots and a cursor into them.
// The zero value is not usable; create one with New.
type Manager[T any] struct {
	states  []T
	index   int
	maxSize int
	clone   func(T) T
}

// New creates a manager that keeps at most maxSize snapshots.
// clone must return an independent deep copy of a snapshot.
func New[T any](maxSize int, clone func(T) T) *Manager[T] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Manager[T]{
		index:   -1,
		maxSize: maxSize,
		clone:   clone,
	}
}

// Save drops any redo-able future, appends a copy of state and evicts the
// oldest snapshot when over capacity. The new snapshot becomes current.
func (m *Manager[T]) Save(state T) {
	m.states = append(m.states[:m.index+1], m.clone(state))

	if len(m.states) > m.maxSize {
		var zero T
		m.states[0] = zero
		m.states = m.states[1:]
	}
	m.index = len(m.states) - 1
}

// Undo steps back one snapshot and returns a copy of it.
func (m *Manager[T]) Undo() (T, bool) {
	if !m.CanUndo() {
		var zero T
		return zero, false
	}
	m.index--
	return m.clone(m.states[m.index]), true
}

// Redo steps forward one snapshot and returns a copy of it.
func (m *Manager[T]) Redo() (T, bool) {
	if !m.CanRedo() {
		var zero T
		return zero, false
	}
	m.index++
	return m.clone(m.states[m.index]), true
}

// CanUndo reports whether Undo would return a snapshot.
func (m *Manager[T]) CanUndo() bool {
	return m.index > 0
}

// CanRedo reports whether Redo would return a snapshot.
func (m *Manager[T]) CanRedo() bool {
	return m.index < len(m.states)-1
}

// Clear empties the log.
func (m *Manager[T]) Clear() {
	m.states = nil
	m.index = -1
}

// Len returns the number of stored snapshots.
func (m *Manager[T]) Len() int {
	return len(m.states)
}

// Index returns the current position, -1 when empty.
func (m *Manager[T]) Index() int {
	return m.index
}

// MaxSize returns the capacity.
func (m *Manager[T]) MaxSize() int {
	return m.maxSize
}
