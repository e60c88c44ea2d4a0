package scene

import "sort"

// FrameRef is one entry of the ordered presentation registry. The
// registry is independent of the frame elements' paint order, so the
// slideshow sequence can be rearranged without touching z-order.
type FrameRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// registerFrame appends a registry entry for a newly inserted frame.
func (s *Store) registerFrame(el *Element) {
	s.frames = append(s.frames, FrameRef{
		ID:    el.ID,
		Label: el.Frame.Name,
		Order: len(s.frames),
	})
}

// unregisterFrame drops a frame's registry entry and renumbers.
func (s *Store) unregisterFrame(id string) {
	for i, ref := range s.frames {
		if ref.ID == id {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			break
		}
	}
	s.renumberFrames()
}

// renameFrame keeps the registry label in sync with the frame element.
func (s *Store) renameFrame(id, label string) {
	for i := range s.frames {
		if s.frames[i].ID == id {
			s.frames[i].Label = label
			return
		}
	}
}

// rebuildFrames reconciles the registry after a snapshot restore or
// import: entries for surviving frames keep their presentation order,
// restored frames without an entry are appended, dead entries drop.
func (s *Store) rebuildFrames() {
	existing := make(map[string]int, len(s.frames))
	for i, ref := range s.frames {
		existing[ref.ID] = i
	}
	var refs []FrameRef
	for _, id := range s.order {
		el := s.elements[id]
		if el.Kind != KindFrame {
			continue
		}
		if i, ok := existing[id]; ok {
			refs = append(refs, FrameRef{ID: id, Label: el.Frame.Name, Order: s.frames[i].Order})
		} else {
			refs = append(refs, FrameRef{ID: id, Label: el.Frame.Name, Order: len(s.frames) + len(refs)})
		}
	}
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Order < refs[j].Order })
	s.frames = refs
	s.renumberFrames()
}

// renumberFrames restores dense 0..n-1 order values.
func (s *Store) renumberFrames() {
	for i := range s.frames {
		s.frames[i].Order = i
	}
}

// Frames returns a copy of the presentation registry in order.
func (s *Store) Frames() []FrameRef {
	return append([]FrameRef(nil), s.frames...)
}

// ReorderFrame moves a frame to the given position in the presentation
// sequence. Positions are clamped to the registry bounds. Element paint
// order is untouched.
func (s *Store) ReorderFrame(id string, position int) bool {
	from := -1
	for i, ref := range s.frames {
		if ref.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	if position < 0 {
		position = 0
	}
	if position >= len(s.frames) {
		position = len(s.frames) - 1
	}
	ref := s.frames[from]
	s.frames = append(s.frames[:from], s.frames[from+1:]...)
	s.frames = append(s.frames[:position], append([]FrameRef{ref}, s.frames[position:]...)...)
	s.renumberFrames()
	return true
}
