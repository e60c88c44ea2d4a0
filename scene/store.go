package scene

import "github.com/drawdeck/drawdeck/geom"

// Numeric clamp ranges applied by Update.
const (
	MinElementSize = 10.0
	MinStrokeWidth = 0.5
	MaxStrokeWidth = 20.0
)

// DefaultGridSize is the initial grid spacing of a new scene.
const DefaultGridSize = 20.0

// Store is the authoritative owner of every element in one editing
// session: the id-keyed element map, the paint-order list, layers, the
// frame registry, selection state, the clipboard buffer, and history.
//
// The paint-order list is authoritative for stacking; ZIndex fields are
// re-stamped after every structural change so they stay dense and
// consistent for external readers.
type Store struct {
	elements map[string]*Element
	order    []string

	layers []Layer
	frames []FrameRef

	selection map[string]struct{}
	lasso     *geom.Rect
	clipboard []*Element

	history  *History
	gridSize float64

	// editingID tracks an in-progress inline text edit; undo/redo and
	// import abandon it.
	editingID string
}

// New creates an empty scene with the permanent default layer.
func New() *Store {
	return &Store{
		elements:  make(map[string]*Element),
		order:     []string{},
		layers:    []Layer{defaultLayer()},
		selection: make(map[string]struct{}),
		history:   NewHistory(),
		gridSize:  DefaultGridSize,
	}
}

// Len returns the number of elements in the scene.
func (s *Store) Len() int { return len(s.elements) }

// GridSize returns the current grid spacing.
func (s *Store) GridSize() float64 { return s.gridSize }

// SetGridSize updates the grid spacing, floored to 1.
func (s *Store) SetGridSize(size float64) {
	if size < 1 {
		size = 1
	}
	s.gridSize = size
}

// Get returns the live element with the given id. Callers must route
// mutations through the store's operations; direct writes bypass
// history and invariant maintenance.
func (s *Store) Get(id string) (*Element, bool) {
	el, ok := s.elements[id]
	return el, ok
}

// Order returns a copy of the paint-order list.
func (s *Store) Order() []string {
	return append([]string(nil), s.order...)
}

// Elements returns the live elements in paint order.
func (s *Store) Elements() []*Element {
	out := make([]*Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.elements[id])
	}
	return out
}

// CombinedBounds returns the union of every element's bounding box.
// The second return is false for an empty scene.
func (s *Store) CombinedBounds() (geom.Rect, bool) {
	return combinedBounds(s.Elements())
}

func combinedBounds(els []*Element) (geom.Rect, bool) {
	if len(els) == 0 {
		return geom.Rect{}, false
	}
	bounds := els[0].Bounds()
	for _, el := range els[1:] {
		b := el.Bounds()
		minX := min(bounds.X, b.X)
		minY := min(bounds.Y, b.Y)
		maxX := max(bounds.MaxX(), b.MaxX())
		maxY := max(bounds.MaxY(), b.MaxY())
		bounds = geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	}
	return bounds, true
}

// Add inserts an element at the top of the paint order as one
// checkpointed operation. A missing id is assigned; optional fields are
// normalized to explicit defaults. Adding an id that already exists is
// a silent no-op.
func (s *Store) Add(el *Element) {
	if el == nil {
		return
	}
	if el.ID == "" {
		el.ID = geom.NewID()
	}
	if _, exists := s.elements[el.ID]; exists {
		return
	}
	s.Checkpoint()
	s.insert(el)
}

// AddBatch inserts several elements under a single checkpoint and
// selects them. Elements whose ids already exist are skipped. Returns
// the inserted ids.
func (s *Store) AddBatch(els []*Element) []string {
	var fresh []*Element
	for _, el := range els {
		if el == nil {
			continue
		}
		if el.ID == "" {
			el.ID = geom.NewID()
		}
		if _, exists := s.elements[el.ID]; exists {
			continue
		}
		fresh = append(fresh, el)
	}
	if len(fresh) == 0 {
		return nil
	}
	s.Checkpoint()
	newSelection := make(map[string]struct{}, len(fresh))
	ids := make([]string, 0, len(fresh))
	for _, el := range fresh {
		s.insert(el)
		ids = append(ids, el.ID)
		newSelection[el.ID] = struct{}{}
	}
	s.selection = newSelection
	s.lasso = nil
	return ids
}

// insert places the element without taking a checkpoint. Shared by Add
// and the batch entry points (paste, duplicate, templates) that take a
// single checkpoint for the whole batch.
func (s *Store) insert(el *Element) {
	if el.LayerID == "" {
		el.LayerID = DefaultLayerID
	}
	if _, ok := s.LayerByID(el.LayerID); !ok {
		el.LayerID = DefaultLayerID
	}
	el.ZIndex = len(s.order)
	s.elements[el.ID] = el
	s.order = append(s.order, el.ID)
	if el.Kind == KindFrame {
		s.registerFrame(el)
	}
}

// Update applies a partial update to one element. Unknown ids are a
// silent no-op. Numeric fields are clamped rather than rejected.
// Locked elements only accept lock and visibility changes.
//
// Update never takes a checkpoint: callers performing incremental
// updates (a drag gesture, a resize) call Checkpoint once at gesture
// start.
func (s *Store) Update(id string, u Update) {
	el, ok := s.elements[id]
	if !ok {
		return
	}
	if u.Locked != nil {
		el.Locked = *u.Locked
	}
	if u.Visible != nil {
		el.Visible = *u.Visible
	}
	if s.EffectiveLocked(el) {
		return
	}
	if u.X != nil {
		s.moveTo(el, *u.X, el.Bounds().Y)
	}
	if u.Y != nil {
		s.moveTo(el, el.Bounds().X, *u.Y)
	}
	if u.Width != nil && el.Kind != KindLine {
		el.Width = max(*u.Width, MinElementSize)
	}
	if u.Height != nil && el.Kind != KindLine {
		el.Height = max(*u.Height, MinElementSize)
	}
	s.applyPayloadUpdate(el, u)
	if u.Metadata != nil {
		if el.Metadata == nil {
			el.Metadata = make(map[string]string, len(u.Metadata))
		}
		for k, v := range u.Metadata {
			el.Metadata[k] = v
		}
	}
	if u.PLMNodeID != nil {
		el.PLMNodeID = *u.PLMNodeID
	}
}

// applyPayloadUpdate merges the kind-specific fields of an update.
func (s *Store) applyPayloadUpdate(el *Element, u Update) {
	switch el.Kind {
	case KindShape:
		if u.Fill != nil {
			el.Shape.Fill = *u.Fill
		}
		if u.Stroke != nil {
			el.Shape.Stroke = *u.Stroke
		}
		if u.StrokeWidth != nil {
			el.Shape.StrokeWidth = geom.Clamp(*u.StrokeWidth, MinStrokeWidth, MaxStrokeWidth)
		}
		if u.FillOpacity != nil {
			el.Shape.FillOpacity = geom.Clamp(*u.FillOpacity, 0, 1)
		}
		if u.Label != nil {
			el.Shape.Label = *u.Label
		}
	case KindText:
		if u.Content != nil {
			el.Text.Content = *u.Content
		}
		if u.FontSize != nil {
			el.Text.FontSize = max(*u.FontSize, 1)
		}
		if u.Align != nil {
			el.Text.Align = *u.Align
		}
	case KindLine:
		if u.Stroke != nil {
			el.Line.Stroke = *u.Stroke
		}
		if u.StrokeWidth != nil {
			el.Line.StrokeWidth = geom.Clamp(*u.StrokeWidth, MinStrokeWidth, MaxStrokeWidth)
		}
		if u.LineStart != nil {
			el.Line.Start = *u.LineStart
		}
		if u.LineEnd != nil {
			el.Line.End = *u.LineEnd
		}
	case KindFrame:
		if u.Name != nil {
			el.Frame.Name = *u.Name
			s.renameFrame(el.ID, *u.Name)
		}
	case KindImage, KindGroup:
		// no payload fields are updatable
	}
}

// Update is the partial-update payload for Store.Update. Nil fields are
// left untouched.
type Update struct {
	X, Y          *float64
	Width, Height *float64
	Locked        *bool
	Visible       *bool

	Fill        *string
	Stroke      *string
	StrokeWidth *float64
	FillOpacity *float64
	Label       *string

	Content  *string
	FontSize *float64
	Align    *string

	LineStart *geom.Point
	LineEnd   *geom.Point

	Name *string

	Metadata  map[string]string
	PLMNodeID *string
}

// moveTo repositions an element so its bounding box origin lands at
// (x, y). Lines translate both endpoints; boxes set position directly.
func (s *Store) moveTo(el *Element, x, y float64) {
	if el.Kind == KindLine {
		b := el.Bounds()
		dx, dy := x-b.X, y-b.Y
		el.Line.Start.X += dx
		el.Line.Start.Y += dy
		el.Line.End.X += dx
		el.Line.End.Y += dy
		return
	}
	el.X = x
	el.Y = y
}

// MoveTo repositions an element by id without taking a checkpoint.
// Locked elements and unknown ids are silent no-ops.
func (s *Store) MoveTo(id string, x, y float64) {
	el, ok := s.elements[id]
	if !ok || s.EffectiveLocked(el) {
		return
	}
	s.moveTo(el, x, y)
}

// Remove deletes the given elements as one checkpointed batch,
// cascading per the scene invariants: group children are removed
// recursively, back-references from groups, containers, and line
// connections are repaired, and the selection is pruned. Unknown ids
// are skipped; an all-unknown batch pushes no history.
func (s *Store) Remove(ids ...string) {
	doomed := s.collectRemoval(ids)
	if len(doomed) == 0 {
		return
	}
	s.Checkpoint()
	s.removeCollected(doomed)
}

// collectRemoval expands the requested ids with transitive group and
// container children, returning the full doomed set.
func (s *Store) collectRemoval(ids []string) map[string]struct{} {
	doomed := make(map[string]struct{})
	var visit func(id string)
	visit = func(id string) {
		el, ok := s.elements[id]
		if !ok {
			return
		}
		if _, seen := doomed[id]; seen {
			return
		}
		doomed[id] = struct{}{}
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
	for _, id := range ids {
		visit(id)
	}
	return doomed
}

// removeCollected drops the doomed set and repairs every reference to
// it from the surviving elements.
func (s *Store) removeCollected(doomed map[string]struct{}) {
	for id := range doomed {
		if el := s.elements[id]; el != nil && el.Kind == KindFrame {
			s.unregisterFrame(id)
		}
		delete(s.elements, id)
		delete(s.selection, id)
	}

	kept := s.order[:0]
	for _, id := range s.order {
		if _, dead := doomed[id]; !dead {
			kept = append(kept, id)
		}
	}
	s.order = kept
	s.reindex()

	for _, el := range s.elements {
		if _, dead := doomed[el.GroupID]; dead {
			el.GroupID = ""
		}
		if _, dead := doomed[el.ParentID]; dead {
			el.ParentID = ""
		}
		switch el.Kind {
		case KindGroup:
			el.Group.ChildIDs = pruneIDs(el.Group.ChildIDs, doomed)
		case KindShape:
			el.Shape.ChildIDs = pruneIDs(el.Shape.ChildIDs, doomed)
		case KindLine:
			if c := el.Line.StartConn; c != nil {
				if _, dead := doomed[c.ElementID]; dead {
					el.Line.StartConn = nil
				}
			}
			if c := el.Line.EndConn; c != nil {
				if _, dead := doomed[c.ElementID]; dead {
					el.Line.EndConn = nil
				}
			}
		case KindText, KindImage, KindFrame:
		}
	}
}

func pruneIDs(ids []string, doomed map[string]struct{}) []string {
	if len(ids) == 0 {
		return ids
	}
	kept := ids[:0]
	for _, id := range ids {
		if _, dead := doomed[id]; !dead {
			kept = append(kept, id)
		}
	}
	return kept
}

// Clear removes every element as one checkpointed operation. Layers
// and the grid survive; the frame registry does not.
func (s *Store) Clear() {
	if len(s.elements) == 0 {
		return
	}
	s.Checkpoint()
	s.elements = make(map[string]*Element)
	s.order = []string{}
	s.frames = nil
	s.selection = make(map[string]struct{})
	s.editingID = ""
}

// ConnectLine attaches a line endpoint to an element's side. The line,
// the target, and the endpoint name must all resolve.
func (s *Store) ConnectLine(lineID, targetID string, side Side, atStart bool) bool {
	line, ok := s.elements[lineID]
	if !ok || line.Kind != KindLine {
		return false
	}
	if _, ok := s.elements[targetID]; !ok {
		return false
	}
	conn := &Connection{ElementID: targetID, Side: side}
	if atStart {
		line.Line.StartConn = conn
	} else {
		line.Line.EndConn = conn
	}
	return true
}

// DisconnectLine clears a line endpoint connection.
func (s *Store) DisconnectLine(lineID string, atStart bool) {
	line, ok := s.elements[lineID]
	if !ok || line.Kind != KindLine {
		return
	}
	if atStart {
		line.Line.StartConn = nil
	} else {
		line.Line.EndConn = nil
	}
}

// StartEditing marks an element as being inline-edited. Undo, redo, and
// import abandon the edit.
func (s *Store) StartEditing(id string) {
	if _, ok := s.elements[id]; ok {
		s.editingID = id
	}
}

// StopEditing clears the in-progress inline edit marker.
func (s *Store) StopEditing() { s.editingID = "" }

// EditingID returns the id of the element being inline-edited, or "".
func (s *Store) EditingID() string { return s.editingID }

// reindex re-stamps ZIndex from the paint-order list.
func (s *Store) reindex() {
	for i, id := range s.order {
		s.elements[id].ZIndex = i
	}
}
