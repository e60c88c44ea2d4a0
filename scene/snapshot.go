package scene

import (
	"fmt"
	"time"
)

// SnapshotVersion is the current snapshot shape version. Backward-
// incompatible shape changes must bump it.
const SnapshotVersion = 2

// Snapshot is the versioned, self-contained serialization of a scene.
// It is a pure in-memory record; persisting it is the caller's
// responsibility (see the project package).
type Snapshot struct {
	Version      int                 `json:"version"`
	Timestamp    string              `json:"timestamp"`
	Elements     map[string]*Element `json:"elements"`
	ElementOrder []string            `json:"element_order"`
	GridSize     float64             `json:"grid_size"`
	Layers       []Layer             `json:"layers"`
	Frames       []FrameRef          `json:"frames"`
}

// Export produces a deep-copied snapshot of the full scene state.
func (s *Store) Export() Snapshot {
	elements := make(map[string]*Element, len(s.elements))
	for id, el := range s.elements {
		elements[id] = el.Clone()
	}
	return Snapshot{
		Version:      SnapshotVersion,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Elements:     elements,
		ElementOrder: append([]string(nil), s.order...),
		GridSize:     s.gridSize,
		Layers:       append([]Layer(nil), s.layers...),
		Frames:       append([]FrameRef(nil), s.frames...),
	}
}

// ImportResult reports the outcome of an Import. A failed import
// leaves the prior live state completely untouched.
type ImportResult struct {
	OK      bool
	Message string
}

// validateSnapshot checks that the payload is well formed: a non-nil
// element map, an order list that is a bijection with it, and payloads
// matching each element's kind.
func validateSnapshot(snap Snapshot) error {
	if snap.Elements == nil {
		return fmt.Errorf("missing element map")
	}
	if snap.ElementOrder == nil {
		return fmt.Errorf("missing element order")
	}
	if len(snap.ElementOrder) != len(snap.Elements) {
		return fmt.Errorf("element order has %d entries for %d elements",
			len(snap.ElementOrder), len(snap.Elements))
	}
	seen := make(map[string]struct{}, len(snap.ElementOrder))
	for _, id := range snap.ElementOrder {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate id %q in element order", id)
		}
		seen[id] = struct{}{}
		el, ok := snap.Elements[id]
		if !ok {
			return fmt.Errorf("order references unknown element %q", id)
		}
		if el == nil {
			return fmt.Errorf("element %q is null", id)
		}
		if el.ID != id {
			return fmt.Errorf("element %q keyed under %q", el.ID, id)
		}
		if !el.payloadMatchesKind() {
			return fmt.Errorf("element %q has kind %q without matching payload", id, el.Kind)
		}
	}
	return nil
}

// Import replaces the live state wholesale with the snapshot as one
// checkpointed operation, resetting selection and any in-progress
// inline edit. Malformed payloads are rejected with a structured
// failure result and the prior state is left untouched.
func (s *Store) Import(snap Snapshot) ImportResult {
	if err := validateSnapshot(snap); err != nil {
		return ImportResult{OK: false, Message: err.Error()}
	}
	s.Checkpoint()

	elements := make(map[string]*Element, len(snap.Elements))
	for id, el := range snap.Elements {
		elements[id] = el.Clone()
	}

	layers := append([]Layer(nil), snap.Layers...)
	hasDefault := false
	for _, l := range layers {
		if l.ID == DefaultLayerID {
			hasDefault = true
			break
		}
	}
	if !hasDefault {
		layers = append([]Layer{defaultLayer()}, layers...)
	}
	known := make(map[string]struct{}, len(layers))
	for _, l := range layers {
		known[l.ID] = struct{}{}
	}
	for _, el := range elements {
		if _, ok := known[el.LayerID]; !ok {
			el.LayerID = DefaultLayerID
		}
	}

	s.elements = elements
	s.order = append([]string(nil), snap.ElementOrder...)
	s.layers = layers
	s.frames = append([]FrameRef(nil), snap.Frames...)
	if snap.GridSize >= 1 {
		s.gridSize = snap.GridSize
	}
	s.selection = make(map[string]struct{})
	s.lasso = nil
	s.editingID = ""
	s.rebuildFrames()
	s.reindex()
	return ImportResult{OK: true}
}
