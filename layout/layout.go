// Package layout implements alignment, distribution, and auto-layout
// placement over the current selection of a scene store. Every
// operation is pure repositioning on bounding boxes: nothing is
// resized, and calls below each operation's minimum selection size are
// silent no-ops that push no history.
package layout

import (
	"math"
	"sort"

	"github.com/drawdeck/drawdeck/geom"
	"github.com/drawdeck/drawdeck/scene"
)

// Edge names an alignment target.
type Edge string

const (
	AlignLeft    Edge = "left"
	AlignCenterH Edge = "center-h"
	AlignRight   Edge = "right"
	AlignTop     Edge = "top"
	AlignCenterV Edge = "center-v"
	AlignBottom  Edge = "bottom"
)

// Axis names a distribution direction.
type Axis string

const (
	Horizontal Axis = "horizontal"
	Vertical   Axis = "vertical"
)

// Mode names an auto-layout placement strategy.
type Mode string

const (
	ModeGrid       Mode = "grid"
	ModeTree       Mode = "tree"
	ModeCircle     Mode = "circle"
	ModeHorizontal Mode = "horizontal"
	ModeVertical   Mode = "vertical"
)

// Options carries the spacing constants used by the placement
// strategies. The defaults are reasonable spacing, not derived values;
// hosts may override them.
type Options struct {
	Padding float64
}

// DefaultOptions returns the stock spacing.
func DefaultOptions() Options {
	return Options{Padding: 30}
}

// targets returns the selected, effectively unlocked elements in paint
// order. Locked elements are excluded from layout per the selection
// rules; lines are additionally excluded when includeLines is false.
func targets(s *scene.Store, includeLines bool) []*scene.Element {
	var out []*scene.Element
	for _, el := range s.SelectedElements() {
		if s.EffectiveLocked(el) {
			continue
		}
		if !includeLines && el.Kind == scene.KindLine {
			continue
		}
		out = append(out, el)
	}
	return out
}

// Align repositions each selected element so all share the target
// coordinate. Requires at least two eligible elements.
func Align(s *scene.Store, edge Edge) {
	els := targets(s, true)
	if len(els) < 2 {
		return
	}
	s.Checkpoint()
	switch edge {
	case AlignLeft:
		target := math.Inf(1)
		for _, el := range els {
			target = min(target, el.Bounds().X)
		}
		for _, el := range els {
			b := el.Bounds()
			s.MoveTo(el.ID, target, b.Y)
		}
	case AlignRight:
		target := math.Inf(-1)
		for _, el := range els {
			target = max(target, el.Bounds().MaxX())
		}
		for _, el := range els {
			b := el.Bounds()
			s.MoveTo(el.ID, target-b.Width, b.Y)
		}
	case AlignCenterH:
		bounds := combined(els)
		cx := bounds.Center().X
		for _, el := range els {
			b := el.Bounds()
			s.MoveTo(el.ID, cx-b.Width/2, b.Y)
		}
	case AlignTop:
		target := math.Inf(1)
		for _, el := range els {
			target = min(target, el.Bounds().Y)
		}
		for _, el := range els {
			b := el.Bounds()
			s.MoveTo(el.ID, b.X, target)
		}
	case AlignBottom:
		target := math.Inf(-1)
		for _, el := range els {
			target = max(target, el.Bounds().MaxY())
		}
		for _, el := range els {
			b := el.Bounds()
			s.MoveTo(el.ID, b.X, target-b.Height)
		}
	case AlignCenterV:
		bounds := combined(els)
		cy := bounds.Center().Y
		for _, el := range els {
			b := el.Bounds()
			s.MoveTo(el.ID, b.X, cy-b.Height/2)
		}
	}
}

// Distribute spaces the selected elements with equal gaps along one
// axis: the span between the outer edges minus the sum of element
// extents, divided over count-1 gaps. Requires at least three eligible
// elements.
func Distribute(s *scene.Store, axis Axis) {
	els := targets(s, true)
	if len(els) < 3 {
		return
	}
	s.Checkpoint()
	sorted := append([]*scene.Element(nil), els...)
	if axis == Horizontal {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Bounds().X < sorted[j].Bounds().X
		})
		first := sorted[0].Bounds()
		span := 0.0
		total := 0.0
		for _, el := range sorted {
			b := el.Bounds()
			span = max(span, b.MaxX())
			total += b.Width
		}
		gap := (span - first.X - total) / float64(len(sorted)-1)
		cursor := first.X
		for _, el := range sorted {
			b := el.Bounds()
			s.MoveTo(el.ID, cursor, b.Y)
			cursor += b.Width + gap
		}
		return
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Bounds().Y < sorted[j].Bounds().Y
	})
	first := sorted[0].Bounds()
	span := 0.0
	total := 0.0
	for _, el := range sorted {
		b := el.Bounds()
		span = max(span, b.MaxY())
		total += b.Height
	}
	gap := (span - first.Y - total) / float64(len(sorted)-1)
	cursor := first.Y
	for _, el := range sorted {
		b := el.Bounds()
		s.MoveTo(el.ID, b.X, cursor)
		cursor += b.Height + gap
	}
}

// Apply runs one of the auto-layout placement strategies over the
// selection. Lines are excluded; at least two eligible elements are
// required. Positions change, sizes never do.
func Apply(s *scene.Store, mode Mode, opts Options) {
	els := targets(s, false)
	if len(els) < 2 {
		return
	}
	if opts.Padding <= 0 {
		opts = DefaultOptions()
	}
	s.Checkpoint()
	switch mode {
	case ModeGrid:
		layoutGrid(s, els, opts)
	case ModeTree:
		layoutTree(s, els, opts)
	case ModeCircle:
		layoutCircle(s, els, opts)
	case ModeHorizontal:
		layoutRow(s, els, opts, true)
	case ModeVertical:
		layoutRow(s, els, opts, false)
	}
}

// layoutGrid places elements row-major on a square-ish grid. Cell size
// is the max element width by max height plus padding; the grid anchors
// at the first element's original position.
func layoutGrid(s *scene.Store, els []*scene.Element, opts Options) {
	cols := int(math.Ceil(math.Sqrt(float64(len(els)))))
	cellW, cellH := 0.0, 0.0
	for _, el := range els {
		b := el.Bounds()
		cellW = max(cellW, b.Width)
		cellH = max(cellH, b.Height)
	}
	cellW += opts.Padding
	cellH += opts.Padding
	origin := els[0].Bounds()
	for i, el := range els {
		row := i / cols
		col := i % cols
		s.MoveTo(el.ID, origin.X+float64(col)*cellW, origin.Y+float64(row)*cellH)
	}
}

// layoutTree keeps the first element as the root and spreads the rest
// in one horizontal row beneath it, centered under the root.
func layoutTree(s *scene.Store, els []*scene.Element, opts Options) {
	root := els[0].Bounds()
	children := els[1:]
	rowWidth := 0.0
	for _, el := range children {
		rowWidth += el.Bounds().Width
	}
	rowWidth += opts.Padding * float64(len(children)-1)
	cursor := root.Center().X - rowWidth/2
	y := root.MaxY() + opts.Padding*2
	for _, el := range children {
		b := el.Bounds()
		s.MoveTo(el.ID, cursor, y)
		cursor += b.Width + opts.Padding
	}
}

// layoutCircle places elements evenly on a circle around the selection
// center, starting at the top and proceeding clockwise. The radius is
// the larger of 1.5x the largest element dimension and the radius
// needed for even perimeter spacing.
func layoutCircle(s *scene.Store, els []*scene.Element, opts Options) {
	bounds := combined(els)
	center := bounds.Center()
	largest := 0.0
	perimeter := 0.0
	for _, el := range els {
		b := el.Bounds()
		largest = max(largest, max(b.Width, b.Height))
		perimeter += max(b.Width, b.Height) + opts.Padding
	}
	radius := max(1.5*largest, perimeter/(2*math.Pi))
	step := 2 * math.Pi / float64(len(els))
	for i, el := range els {
		angle := -math.Pi/2 + step*float64(i)
		b := el.Bounds()
		x := center.X + radius*math.Cos(angle) - b.Width/2
		y := center.Y + radius*math.Sin(angle) - b.Height/2
		s.MoveTo(el.ID, x, y)
	}
}

// layoutRow places elements sequentially along one axis from the first
// element's original position, centered on the cross axis.
func layoutRow(s *scene.Store, els []*scene.Element, opts Options, horizontal bool) {
	origin := els[0].Bounds()
	if horizontal {
		centerY := origin.Center().Y
		cursor := origin.X
		for _, el := range els {
			b := el.Bounds()
			s.MoveTo(el.ID, cursor, centerY-b.Height/2)
			cursor += b.Width + opts.Padding
		}
		return
	}
	centerX := origin.Center().X
	cursor := origin.Y
	for _, el := range els {
		b := el.Bounds()
		s.MoveTo(el.ID, centerX-b.Width/2, cursor)
		cursor += b.Height + opts.Padding
	}
}

// combined folds the elements' bounding boxes. Degenerate boxes (a
// perfectly horizontal or vertical line) still contribute their edges.
func combined(els []*scene.Element) geom.Rect {
	b := els[0].Bounds()
	minX, minY := b.X, b.Y
	maxX, maxY := b.MaxX(), b.MaxY()
	for _, el := range els[1:] {
		b = el.Bounds()
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.MaxX())
		maxY = max(maxY, b.MaxY())
	}
	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
