package scene

import "github.com/drawdeck/drawdeck/geom"

// Select replaces the selection with {id}, or toggles membership when
// additive is true. Unknown ids are a silent no-op.
func (s *Store) Select(id string, additive bool) {
	if _, ok := s.elements[id]; !ok {
		return
	}
	if !additive {
		s.selection = map[string]struct{}{id: {}}
		return
	}
	if _, selected := s.selection[id]; selected {
		delete(s.selection, id)
	} else {
		s.selection[id] = struct{}{}
	}
}

// SelectAll selects every element that is effectively unlocked and
// visible (own flags combined with the owning layer's).
func (s *Store) SelectAll() {
	s.selection = make(map[string]struct{})
	for _, id := range s.order {
		el := s.elements[id]
		if s.EffectiveVisible(el) && !s.EffectiveLocked(el) {
			s.selection[id] = struct{}{}
		}
	}
}

// ClearSelection empties the selection set and any pending lasso.
func (s *Store) ClearSelection() {
	s.selection = make(map[string]struct{})
	s.lasso = nil
}

// IsSelected reports whether the element is in the selection set.
func (s *Store) IsSelected(id string) bool {
	_, ok := s.selection[id]
	return ok
}

// Selection returns the selected ids in paint order.
func (s *Store) Selection() []string {
	out := make([]string, 0, len(s.selection))
	for _, id := range s.order {
		if _, ok := s.selection[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// SelectedElements returns the selected live elements in paint order.
func (s *Store) SelectedElements() []*Element {
	ids := s.Selection()
	out := make([]*Element, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.elements[id])
	}
	return out
}

// SetLasso records an in-progress lasso rectangle for the renderer to
// draw. Resolved and cleared by SelectByLasso.
func (s *Store) SetLasso(r geom.Rect) {
	lasso := r
	s.lasso = &lasso
}

// Lasso returns the pending lasso rectangle, or false when none is in
// progress.
func (s *Store) Lasso() (geom.Rect, bool) {
	if s.lasso == nil {
		return geom.Rect{}, false
	}
	return *s.lasso, true
}

// SelectByLasso selects every effectively unlocked, visible element
// whose bounding box intersects the rect, replacing the previous
// selection and clearing any pending lasso.
func (s *Store) SelectByLasso(r geom.Rect) {
	s.selection = make(map[string]struct{})
	for _, id := range s.order {
		el := s.elements[id]
		if !s.EffectiveVisible(el) || s.EffectiveLocked(el) {
			continue
		}
		if el.Bounds().Intersects(r) {
			s.selection[id] = struct{}{}
		}
	}
	s.lasso = nil
}

// HitTest returns the topmost effectively visible element whose
// bounding box contains the point, or false. Locked elements still hit
// so they can be explicitly targeted.
func (s *Store) HitTest(p geom.Point) (*Element, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		el := s.elements[s.order[i]]
		if !s.EffectiveVisible(el) {
			continue
		}
		if el.Bounds().Contains(p) {
			return el, true
		}
	}
	return nil, false
}
