package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawdeck/drawdeck/geom"
	"github.com/drawdeck/drawdeck/scene"
)

func addSelected(s *scene.Store, els ...*scene.Element) {
	for i, el := range els {
		s.Add(el)
		s.Select(el.ID, i > 0)
	}
}

func TestAlignLeft(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 40, 10, 60, 30)
	b := scene.NewShape(scene.VariantRectangle, 120, 80, 80, 30)
	addSelected(s, a, b)

	Align(s, AlignLeft)

	ga, _ := s.Get(a.ID)
	gb, _ := s.Get(b.ID)
	assert.Equal(t, 40.0, ga.X)
	assert.Equal(t, 40.0, gb.X)
	assert.Equal(t, 10.0, ga.Y, "align-left must not move elements vertically")
	assert.Equal(t, 80.0, gb.Y)
}

func TestAlignRight(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 0, 0, 60, 30)
	b := scene.NewShape(scene.VariantRectangle, 100, 50, 80, 30)
	addSelected(s, a, b)

	Align(s, AlignRight)

	ga, _ := s.Get(a.ID)
	gb, _ := s.Get(b.ID)
	assert.Equal(t, 180.0, ga.X+ga.Width)
	assert.Equal(t, 180.0, gb.X+gb.Width)
}

func TestAlignCenters(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 0, 0, 100, 100)
	b := scene.NewShape(scene.VariantRectangle, 200, 200, 50, 50)
	addSelected(s, a, b)

	Align(s, AlignCenterH)
	ga, _ := s.Get(a.ID)
	gb, _ := s.Get(b.ID)
	assert.InDelta(t, ga.X+ga.Width/2, gb.X+gb.Width/2, 1e-9,
		"horizontal centers should coincide")

	Align(s, AlignCenterV)
	ga, _ = s.Get(a.ID)
	gb, _ = s.Get(b.ID)
	assert.InDelta(t, ga.Y+ga.Height/2, gb.Y+gb.Height/2, 1e-9,
		"vertical centers should coincide")
}

func TestAlignTopAndBottom(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 0, 30, 50, 40)
	b := scene.NewShape(scene.VariantRectangle, 100, 90, 50, 20)
	addSelected(s, a, b)

	Align(s, AlignTop)
	ga, _ := s.Get(a.ID)
	gb, _ := s.Get(b.ID)
	assert.Equal(t, 30.0, ga.Y)
	assert.Equal(t, 30.0, gb.Y)

	Align(s, AlignBottom)
	ga, _ = s.Get(a.ID)
	gb, _ = s.Get(b.ID)
	assert.Equal(t, ga.Y+ga.Height, gb.Y+gb.Height)
}

func TestAlignRequiresTwoElements(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 40, 10, 60, 30)
	s.Add(a)
	s.Select(a.ID, false)
	for s.CanUndo() {
		s.Undo()
	}

	Align(s, AlignLeft)
	assert.False(t, s.CanUndo(), "a no-op align must not push history")
}

func TestDistributeHorizontal(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 0, 0, 50, 50)
	b := scene.NewShape(scene.VariantRectangle, 100, 0, 50, 50)
	c := scene.NewShape(scene.VariantRectangle, 250, 0, 50, 50)
	addSelected(s, a, b, c)

	Distribute(s, Horizontal)

	// span 0..300, three extents of 50 leave 150 over two gaps
	ga, _ := s.Get(a.ID)
	gb, _ := s.Get(b.ID)
	gc, _ := s.Get(c.ID)
	assert.Equal(t, 0.0, ga.X)
	assert.Equal(t, 125.0, gb.X)
	assert.Equal(t, 250.0, gc.X)
}

func TestDistributeVerticalUnequalSizes(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 0, 0, 50, 40)
	b := scene.NewShape(scene.VariantRectangle, 0, 300, 50, 100)
	c := scene.NewShape(scene.VariantRectangle, 0, 60, 50, 60)
	addSelected(s, a, b, c)

	Distribute(s, Vertical)

	// sorted by top edge: a(40) c(60) b(100); span 0..400, gap = (400-200)/2
	ga, _ := s.Get(a.ID)
	gb, _ := s.Get(b.ID)
	gc, _ := s.Get(c.ID)
	assert.Equal(t, 0.0, ga.Y)
	assert.Equal(t, 140.0, gc.Y)
	assert.Equal(t, 300.0, gb.Y)
}

func TestDistributeRequiresThreeElements(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 0, 0, 50, 50)
	b := scene.NewShape(scene.VariantRectangle, 100, 0, 50, 50)
	addSelected(s, a, b)

	Distribute(s, Horizontal)
	ga, _ := s.Get(a.ID)
	assert.Equal(t, 0.0, ga.X, "below-threshold distribute must not move anything")

	// the only history entries are the two adds
	require.True(t, s.Undo())
	require.True(t, s.Undo())
	assert.False(t, s.CanUndo(), "a no-op distribute must not push history")
}

func TestLayoutExcludesLockedElements(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 40, 0, 50, 50)
	b := scene.NewShape(scene.VariantRectangle, 120, 0, 50, 50)
	locked := scene.NewShape(scene.VariantRectangle, 500, 500, 50, 50)
	locked.Locked = true
	addSelected(s, a, b)
	s.Add(locked)
	s.Select(locked.ID, true)

	Align(s, AlignLeft)
	got, _ := s.Get(locked.ID)
	assert.Equal(t, 500.0, got.X, "locked elements never participate in layout")
}

func TestGridLayout(t *testing.T) {
	s := scene.New()
	els := make([]*scene.Element, 5)
	for i := range els {
		els[i] = scene.NewShape(scene.VariantRectangle, float64(i)*7, float64(i)*3, 60, 40)
	}
	addSelected(s, els...)

	Apply(s, ModeGrid, DefaultOptions())

	// 5 elements -> 3 columns, cell 90x70, anchored at the first element
	want := []geom.Point{
		{X: 0, Y: 0}, {X: 90, Y: 0}, {X: 180, Y: 0},
		{X: 0, Y: 70}, {X: 90, Y: 70},
	}
	for i, el := range els {
		got, _ := s.Get(el.ID)
		assert.Equal(t, want[i].X, got.X, "element %d x", i)
		assert.Equal(t, want[i].Y, got.Y, "element %d y", i)
		assert.Equal(t, 60.0, got.Width, "layout must never resize")
	}
}

func TestTreeLayout(t *testing.T) {
	s := scene.New()
	root := scene.NewShape(scene.VariantRectangle, 100, 0, 100, 50)
	c1 := scene.NewShape(scene.VariantRectangle, 0, 0, 60, 40)
	c2 := scene.NewShape(scene.VariantRectangle, 0, 0, 60, 40)
	addSelected(s, root, c1, c2)

	Apply(s, ModeTree, DefaultOptions())

	gr, _ := s.Get(root.ID)
	assert.Equal(t, 100.0, gr.X, "the root stays put")
	assert.Equal(t, 0.0, gr.Y)

	g1, _ := s.Get(c1.ID)
	g2, _ := s.Get(c2.ID)
	assert.Equal(t, gr.Y+gr.Height+60, g1.Y, "children sit one padded tier below")
	assert.Equal(t, g1.Y, g2.Y)
	// row of 150 centered under root center x=150
	assert.Equal(t, 75.0, g1.X)
	assert.Equal(t, 165.0, g2.X)
}

func TestCircleLayout(t *testing.T) {
	s := scene.New()
	els := make([]*scene.Element, 4)
	for i := range els {
		els[i] = scene.NewShape(scene.VariantRectangle, float64(i)*50, 0, 40, 40)
	}
	addSelected(s, els...)

	Apply(s, ModeCircle, DefaultOptions())

	// all centers equidistant from the common center
	var cx, cy float64
	centers := make([]geom.Point, len(els))
	for i, el := range els {
		got, _ := s.Get(el.ID)
		centers[i] = geom.Point{X: got.X + got.Width/2, Y: got.Y + got.Height/2}
		cx += centers[i].X
		cy += centers[i].Y
	}
	cx /= float64(len(els))
	cy /= float64(len(els))
	r0 := math.Hypot(centers[0].X-cx, centers[0].Y-cy)
	require.Greater(t, r0, 0.0)
	for _, c := range centers[1:] {
		assert.InDelta(t, r0, math.Hypot(c.X-cx, c.Y-cy), 1e-6)
	}
	// first element sits at the top of the circle
	assert.InDelta(t, cx, centers[0].X, 1e-6)
	assert.Less(t, centers[0].Y, cy)
}

func TestRowAndColumnLayout(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 10, 10, 50, 20)
	b := scene.NewShape(scene.VariantRectangle, 0, 0, 30, 60)
	addSelected(s, a, b)

	Apply(s, ModeHorizontal, Options{Padding: 10})
	ga, _ := s.Get(a.ID)
	gb, _ := s.Get(b.ID)
	assert.Equal(t, 10.0, ga.X)
	assert.Equal(t, 70.0, gb.X)
	assert.InDelta(t, ga.Y+ga.Height/2, gb.Y+gb.Height/2, 1e-9,
		"row layout centers on the cross axis")

	Apply(s, ModeVertical, Options{Padding: 10})
	ga, _ = s.Get(a.ID)
	gb, _ = s.Get(b.ID)
	assert.Equal(t, ga.Y+ga.Height+10, gb.Y)
	assert.InDelta(t, ga.X+ga.Width/2, gb.X+gb.Width/2, 1e-9)
}

func TestAutoLayoutExcludesLines(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 0, 0, 50, 50)
	b := scene.NewShape(scene.VariantRectangle, 200, 0, 50, 50)
	line := scene.NewLine(geom.Point{X: 50, Y: 25}, geom.Point{X: 200, Y: 25})
	addSelected(s, a, b)
	s.Add(line)
	s.Select(line.ID, true)

	Apply(s, ModeVertical, DefaultOptions())

	got, _ := s.Get(line.ID)
	assert.Equal(t, geom.Point{X: 50, Y: 25}, got.Line.Start,
		"connectors are not repositioned by auto-layout")
}

func TestAutoLayoutIsUndoableAsOneStep(t *testing.T) {
	s := scene.New()
	a := scene.NewShape(scene.VariantRectangle, 0, 0, 50, 50)
	b := scene.NewShape(scene.VariantRectangle, 200, 300, 50, 50)
	addSelected(s, a, b)

	Apply(s, ModeGrid, DefaultOptions())
	require.True(t, s.Undo())

	ga, _ := s.Get(a.ID)
	gb, _ := s.Get(b.ID)
	assert.Equal(t, 0.0, ga.X)
	assert.Equal(t, 200.0, gb.X)
	assert.Equal(t, 300.0, gb.Y)
}
