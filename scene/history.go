package scene

const defaultMaxDepth = 50

// snapshot captures the element map, paint order, and layer list at a
// point in time. Layers are included so undoing a layer removal never
// leaves elements referencing a layer that no longer exists. Snapshots
// are deep copies: undo/redo never shares mutable state with the live
// scene.
type snapshot struct {
	elements map[string]*Element
	order    []string
	layers   []Layer
}

// History manages undo/redo stacks of scene snapshots. The undo stack
// is capped: pushing past the cap evicts the oldest entry, so undo
// depth is bounded rather than unlimited.
type History struct {
	undoStack []snapshot
	redoStack []snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// push saves a snapshot onto the undo stack and clears the redo stack.
// Called before the modification is applied.
func (h *History) push(s snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// undo pops the most recent snapshot from the undo stack and pushes the
// current state onto the redo stack. Returns false if nothing to undo.
func (h *History) undo(current snapshot) (snapshot, bool) {
	if len(h.undoStack) == 0 {
		return snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// redo is the mirror of undo.
func (h *History) redo(current snapshot) (snapshot, bool) {
	if len(h.redoStack) == 0 {
		return snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// captureState deep-copies the live element map, paint order, and
// layer list.
func (s *Store) captureState() snapshot {
	elements := make(map[string]*Element, len(s.elements))
	for id, el := range s.elements {
		elements[id] = el.Clone()
	}
	return snapshot{
		elements: elements,
		order:    append([]string(nil), s.order...),
		layers:   append([]Layer(nil), s.layers...),
	}
}

// restoreState replaces the live state with a snapshot. Selection and
// any in-progress inline edit are abandoned; the frame registry is
// rebuilt from the restored frame elements.
func (s *Store) restoreState(snap snapshot) {
	s.elements = snap.elements
	s.order = snap.order
	s.layers = snap.layers
	s.selection = make(map[string]struct{})
	s.lasso = nil
	s.editingID = ""
	s.rebuildFrames()
	s.reindex()
}

// Checkpoint pushes a deep snapshot of the current state onto the undo
// stack. Every batch-mutating entry point calls this before touching
// state; gesture handlers call it once at gesture start and then issue
// plain Updates.
func (s *Store) Checkpoint() {
	s.history.push(s.captureState())
}

// Undo restores the most recent checkpoint. Returns false when the
// undo stack is empty.
func (s *Store) Undo() bool {
	snap, ok := s.history.undo(s.captureState())
	if !ok {
		return false
	}
	s.restoreState(snap)
	return true
}

// Redo reverses the most recent Undo. Returns false when the redo
// stack is empty.
func (s *Store) Redo() bool {
	snap, ok := s.history.redo(s.captureState())
	if !ok {
		return false
	}
	s.restoreState(snap)
	return true
}

// CanUndo reports whether an undo step is available.
func (s *Store) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Store) CanRedo() bool { return s.history.CanRedo() }
