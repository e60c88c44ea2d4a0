package scene

import "github.com/drawdeck/drawdeck/geom"

// DefaultLayerID identifies the permanent layer every element belongs
// to unless assigned elsewhere. It cannot be removed.
const DefaultLayerID = "default"

// Layer is a named visibility/lock scope that elements opt into. The
// effective visibility and lock of an element is the conjunction of its
// own flags and its owning layer's flags.
type Layer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Visible bool    `json:"visible"`
	Locked  bool    `json:"locked"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

func defaultLayer() Layer {
	return Layer{
		ID:      DefaultLayerID,
		Name:    "Default",
		Visible: true,
		Locked:  false,
		Color:   "#808080",
		Opacity: 1,
	}
}

// AddLayer creates a new layer as one checkpointed operation and
// returns it.
func (s *Store) AddLayer(name, color string) Layer {
	s.Checkpoint()
	layer := Layer{
		ID:      geom.NewID(),
		Name:    name,
		Visible: true,
		Locked:  false,
		Color:   color,
		Opacity: 1,
	}
	s.layers = append(s.layers, layer)
	return layer
}

// RemoveLayer deletes a layer, reassigning its members to the default
// layer first. The default layer cannot be removed; attempting to does
// nothing and returns false.
func (s *Store) RemoveLayer(id string) bool {
	if id == DefaultLayerID {
		return false
	}
	idx := -1
	for i := range s.layers {
		if s.layers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Checkpoint()
	for _, el := range s.elements {
		if el.LayerID == id {
			el.LayerID = DefaultLayerID
		}
	}
	s.layers = append(s.layers[:idx], s.layers[idx+1:]...)
	return true
}

// Layers returns a copy of the layer list.
func (s *Store) Layers() []Layer {
	return append([]Layer(nil), s.layers...)
}

// LayerByID returns the layer with the given id, or false.
func (s *Store) LayerByID(id string) (Layer, bool) {
	for _, l := range s.layers {
		if l.ID == id {
			return l, true
		}
	}
	return Layer{}, false
}

// SetLayerVisible toggles a layer's visibility flag.
func (s *Store) SetLayerVisible(id string, visible bool) bool {
	for i := range s.layers {
		if s.layers[i].ID == id {
			s.layers[i].Visible = visible
			return true
		}
	}
	return false
}

// SetLayerLocked toggles a layer's lock flag.
func (s *Store) SetLayerLocked(id string, locked bool) bool {
	for i := range s.layers {
		if s.layers[i].ID == id {
			s.layers[i].Locked = locked
			return true
		}
	}
	return false
}

// MoveToLayer assigns the given elements to a layer as one checkpointed
// batch. Ids that don't resolve, or a layer that doesn't exist, are
// silently skipped.
func (s *Store) MoveToLayer(ids []string, layerID string) {
	if _, ok := s.LayerByID(layerID); !ok {
		return
	}
	var targets []*Element
	for _, id := range ids {
		if el, ok := s.elements[id]; ok {
			targets = append(targets, el)
		}
	}
	if len(targets) == 0 {
		return
	}
	s.Checkpoint()
	for _, el := range targets {
		el.LayerID = layerID
	}
}

// layerVisible reports the owning layer's visibility; unknown layers
// are treated as visible so a stale reference never hides content.
func (s *Store) layerVisible(layerID string) bool {
	if l, ok := s.LayerByID(layerID); ok {
		return l.Visible
	}
	return true
}

// layerLocked reports the owning layer's lock flag.
func (s *Store) layerLocked(layerID string) bool {
	if l, ok := s.LayerByID(layerID); ok {
		return l.Locked
	}
	return false
}

// EffectiveVisible reports whether the element is visible after
// combining its own flag with its layer's.
func (s *Store) EffectiveVisible(el *Element) bool {
	return el.Visible && s.layerVisible(el.LayerID)
}

// EffectiveLocked reports whether the element is locked after combining
// its own flag with its layer's.
func (s *Store) EffectiveLocked(el *Element) bool {
	return el.Locked || s.layerLocked(el.LayerID)
}
