package scene

import "github.com/drawdeck/drawdeck/geom"

// PasteOffset is the pixel delta applied to pasted and duplicated
// elements so they don't land exactly on their originals.
const PasteOffset = 20.0

// Copy deep-clones the selected elements into the clipboard buffer,
// replacing any previous contents. Copying an empty selection leaves
// the buffer untouched.
func (s *Store) Copy() {
	selected := s.SelectedElements()
	if len(selected) == 0 {
		return
	}
	buf := make([]*Element, 0, len(selected))
	for _, el := range selected {
		buf = append(buf, el.Clone())
	}
	s.clipboard = buf
}

// Paste inserts a fresh copy of every clipboard entry as one
// checkpointed batch and selects the pasted ids. Pasted elements get
// new ids, an offset position, severed line connections, and cleared
// group membership — pasted content never silently aliases or attaches
// to the originals. Returns the pasted ids.
func (s *Store) Paste() []string {
	if len(s.clipboard) == 0 {
		return nil
	}
	s.Checkpoint()
	pasted := make([]string, 0, len(s.clipboard))
	newSelection := make(map[string]struct{})
	for _, entry := range s.clipboard {
		el := entry.Clone()
		el.ID = newCloneID()
		b := el.Bounds()
		s.moveTo(el, b.X+PasteOffset, b.Y+PasteOffset)
		el.GroupID = ""
		el.ParentID = ""
		switch el.Kind {
		case KindLine:
			el.Line.StartConn = nil
			el.Line.EndConn = nil
		case KindGroup:
			el.Group.ChildIDs = nil
		case KindShape:
			el.Shape.ChildIDs = nil
		case KindText, KindImage, KindFrame:
		}
		s.insert(el)
		pasted = append(pasted, el.ID)
		newSelection[el.ID] = struct{}{}
	}
	s.selection = newSelection
	s.lasso = nil
	return pasted
}

// newCloneID mints ids for pasted and duplicated elements.
var newCloneID = geom.NewID

// Duplicate clones the live selection in place as one checkpointed
// batch. Unlike Paste, duplication preserves internal structure: a
// selected group pulls its children in transitively, and all old→new id
// mappings are built first so duplicated groups' child lists and
// duplicated lines' connections are remapped to the new sibling ids
// rather than cleared. Connections to elements outside the duplicated
// set are severed. Only the top-level duplicates (the originally
// selected elements) enter the new selection. Returns the new top-level
// ids.
func (s *Store) Duplicate() []string {
	selected := s.Selection()
	if len(selected) == 0 {
		return nil
	}

	// Expand the set with transitive group/container children, in
	// paint order for stable output.
	include := make(map[string]struct{})
	var visit func(id string)
	visit = func(id string) {
		el, ok := s.elements[id]
		if !ok {
			return
		}
		if _, seen := include[id]; seen {
			return
		}
		include[id] = struct{}{}
		switch el.Kind {
		case KindGroup:
			for _, child := range el.Group.ChildIDs {
				visit(child)
			}
		case KindShape:
			for _, child := range el.Shape.ChildIDs {
				visit(child)
			}
		case KindText, KindLine, KindImage, KindFrame:
		}
	}
	for _, id := range selected {
		visit(id)
	}

	// First pass: mint every new id.
	idMap := make(map[string]string, len(include))
	for id := range include {
		idMap[id] = newCloneID()
	}

	s.Checkpoint()

	// Second pass: clone in paint order, remapping references.
	topLevel := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		topLevel[id] = struct{}{}
	}
	var newTop []string
	newSelection := make(map[string]struct{})
	for _, id := range s.order {
		if _, ok := include[id]; !ok {
			continue
		}
		el := s.elements[id].Clone()
		el.ID = idMap[id]
		b := el.Bounds()
		s.moveTo(el, b.X+PasteOffset, b.Y+PasteOffset)
		el.GroupID = idMap[el.GroupID]
		el.ParentID = idMap[el.ParentID]
		switch el.Kind {
		case KindGroup:
			el.Group.ChildIDs = remapIDs(el.Group.ChildIDs, idMap)
		case KindShape:
			el.Shape.ChildIDs = remapIDs(el.Shape.ChildIDs, idMap)
		case KindLine:
			el.Line.StartConn = remapConn(el.Line.StartConn, idMap)
			el.Line.EndConn = remapConn(el.Line.EndConn, idMap)
		case KindText, KindImage, KindFrame:
		}
		s.insert(el)
		if _, ok := topLevel[id]; ok {
			newTop = append(newTop, el.ID)
			newSelection[el.ID] = struct{}{}
		}
	}
	s.selection = newSelection
	s.lasso = nil
	return newTop
}

// remapIDs rewrites each id through the mapping, dropping ids that
// point outside the duplicated set.
func remapIDs(ids []string, idMap map[string]string) []string {
	var out []string
	for _, id := range ids {
		if mapped, ok := idMap[id]; ok {
			out = append(out, mapped)
		}
	}
	return out
}

// remapConn rewrites a line connection through the mapping, severing
// connections that point outside the duplicated set.
func remapConn(c *Connection, idMap map[string]string) *Connection {
	if c == nil {
		return nil
	}
	mapped, ok := idMap[c.ElementID]
	if !ok {
		return nil
	}
	return &Connection{ElementID: mapped, Side: c.Side}
}
