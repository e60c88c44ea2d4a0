package scene

// Group wraps the current selection (two or more elements) in a new
// synthetic group element whose bounds are the combined bounds of the
// members. Membership moves: a member that already belonged to a group
// is pruned from the old group's child list, and a group record drained
// of its last member is removed. The new group becomes the sole
// selection. Returns the group id, or false when the selection is below
// the two-element minimum.
func (s *Store) Group() (string, bool) {
	ids := s.Selection()
	if len(ids) < 2 {
		return "", false
	}
	s.Checkpoint()
	members := make([]*Element, 0, len(ids))
	for _, id := range ids {
		members = append(members, s.elements[id])
	}
	bounds, _ := combinedBounds(members)
	group := newGroup(bounds, append([]string(nil), ids...))
	s.insert(group)
	emptied := make(map[string]struct{})
	for _, el := range members {
		if old, ok := s.elements[el.GroupID]; ok && old.Kind == KindGroup {
			old.Group.ChildIDs = removeID(old.Group.ChildIDs, el.ID)
			if len(old.Group.ChildIDs) == 0 {
				emptied[old.ID] = struct{}{}
			}
		}
		el.GroupID = group.ID
	}
	if len(emptied) > 0 {
		s.removeCollected(emptied)
	}
	s.selection = map[string]struct{}{group.ID: {}}
	return group.ID, true
}

// Ungroup dissolves every selected group: its children are freed and
// the group record is removed. Non-group selected elements pass through
// unaffected. The resulting selection is the union of all freed
// children and the non-group elements that were selected. A selection
// with no groups is a silent no-op.
func (s *Store) Ungroup() {
	ids := s.Selection()
	var groups []*Element
	var passthrough []string
	for _, id := range ids {
		el := s.elements[id]
		if el.Kind == KindGroup {
			groups = append(groups, el)
		} else {
			passthrough = append(passthrough, id)
		}
	}
	if len(groups) == 0 {
		return
	}
	s.Checkpoint()
	newSelection := make(map[string]struct{})
	for _, id := range passthrough {
		newSelection[id] = struct{}{}
	}
	for _, group := range groups {
		for _, childID := range group.Group.ChildIDs {
			if child, ok := s.elements[childID]; ok {
				child.GroupID = ""
				newSelection[childID] = struct{}{}
			}
		}
		delete(s.elements, group.ID)
		s.order = removeID(s.order, group.ID)
	}
	s.reindex()
	s.selection = newSelection
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// BringToFront moves the selected subset to the end of the paint order,
// preserving the subset's relative order.
func (s *Store) BringToFront() {
	if len(s.selection) == 0 {
		return
	}
	s.Checkpoint()
	rest, moved := s.partitionOrder()
	s.order = append(rest, moved...)
	s.reindex()
}

// SendToBack moves the selected subset to the start of the paint order,
// preserving the subset's relative order.
func (s *Store) SendToBack() {
	if len(s.selection) == 0 {
		return
	}
	s.Checkpoint()
	rest, moved := s.partitionOrder()
	s.order = append(moved, rest...)
	s.reindex()
}

// partitionOrder splits the paint order into unselected and selected
// runs, both preserving relative order.
func (s *Store) partitionOrder() (rest, moved []string) {
	rest = make([]string, 0, len(s.order))
	moved = make([]string, 0, len(s.selection))
	for _, id := range s.order {
		if _, ok := s.selection[id]; ok {
			moved = append(moved, id)
		} else {
			rest = append(rest, id)
		}
	}
	return rest, moved
}

// BringForward swaps each selected element one step toward the front.
// Scanning back-to-front prevents an element from being swapped twice
// in one call; a selected element already blocked by another selected
// element stays put.
func (s *Store) BringForward() {
	if len(s.selection) == 0 {
		return
	}
	s.Checkpoint()
	for i := len(s.order) - 2; i >= 0; i-- {
		id := s.order[i]
		if _, ok := s.selection[id]; !ok {
			continue
		}
		if _, ok := s.selection[s.order[i+1]]; ok {
			continue
		}
		s.order[i], s.order[i+1] = s.order[i+1], s.order[i]
	}
	s.reindex()
}

// SendBackward swaps each selected element one step toward the back,
// scanning front-to-back for the same single-swap guarantee.
func (s *Store) SendBackward() {
	if len(s.selection) == 0 {
		return
	}
	s.Checkpoint()
	for i := 1; i < len(s.order); i++ {
		id := s.order[i]
		if _, ok := s.selection[id]; !ok {
			continue
		}
		if _, ok := s.selection[s.order[i-1]]; ok {
			continue
		}
		s.order[i], s.order[i-1] = s.order[i-1], s.order[i]
	}
	s.reindex()
}

// AttachChild nests an element inside a container shape, keeping the
// container's child list and the child's parent back-reference in sync.
// The container must be a shape with the container flag; an element
// already nested elsewhere is re-parented.
func (s *Store) AttachChild(containerID, childID string) bool {
	container, ok := s.elements[containerID]
	if !ok || container.Kind != KindShape || !container.Shape.Container {
		return false
	}
	child, ok := s.elements[childID]
	if !ok || childID == containerID {
		return false
	}
	s.Checkpoint()
	if child.ParentID != "" {
		if old, ok := s.elements[child.ParentID]; ok && old.Kind == KindShape {
			old.Shape.ChildIDs = removeID(old.Shape.ChildIDs, childID)
		}
	}
	container.Shape.ChildIDs = append(container.Shape.ChildIDs, childID)
	child.ParentID = containerID
	return true
}

// DetachChild removes an element from its container.
func (s *Store) DetachChild(childID string) bool {
	child, ok := s.elements[childID]
	if !ok || child.ParentID == "" {
		return false
	}
	s.Checkpoint()
	if parent, ok := s.elements[child.ParentID]; ok && parent.Kind == KindShape {
		parent.Shape.ChildIDs = removeID(parent.Shape.ChildIDs, childID)
	}
	child.ParentID = ""
	return true
}

// ToggleLock flips the lock flag of each given element independently as
// one checkpointed batch. Unknown ids are skipped.
func (s *Store) ToggleLock(ids ...string) {
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
		el.Locked = !el.Locked
	}
}
