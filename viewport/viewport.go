// Package viewport owns the pan/zoom transform of the canvas view and
// the presentation navigation math. It never mutates scene elements:
// screen = world*zoom + pan.
package viewport

import (
	"github.com/drawdeck/drawdeck/geom"
	"github.com/drawdeck/drawdeck/scene"
)

// Zoom limits. Stepped zoom snaps to the preset list; zoom-to-fit is
// additionally capped at 3 so fitting a tiny scene doesn't blow the
// view up past legibility.
const (
	MinZoom    = 0.1
	MaxZoom    = 5.0
	MaxFitZoom = 3.0
	FitPadding = 40.0
)

var zoomPresets = []float64{0.1, 0.25, 0.5, 0.75, 1, 1.25, 1.5, 2, 3, 4, 5}

// Viewport is the pan/zoom state for one canvas view of the scene.
type Viewport struct {
	Zoom   float64
	PanX   float64
	PanY   float64
	Width  float64
	Height float64
}

// New creates a viewport of the given pixel size at identity transform.
func New(width, height float64) *Viewport {
	return &Viewport{Zoom: 1, Width: width, Height: height}
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	v.Zoom = 1
	v.PanX = 0
	v.PanY = 0
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = geom.Clamp(z, MinZoom, MaxZoom)
}

// ZoomIn steps to the nearest preset strictly above the current zoom.
// Already at or past the top preset is a no-op.
func (v *Viewport) ZoomIn() {
	for _, p := range zoomPresets {
		if p > v.Zoom {
			v.Zoom = p
			return
		}
	}
}

// ZoomOut steps to the nearest preset strictly below the current zoom.
func (v *Viewport) ZoomOut() {
	for i := len(zoomPresets) - 1; i >= 0; i-- {
		if zoomPresets[i] < v.Zoom {
			v.Zoom = zoomPresets[i]
			return
		}
	}
}

// Pan shifts the view by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// WorldToScreen maps a scene coordinate to the screen.
func (v *Viewport) WorldToScreen(p geom.Point) geom.Point {
	return geom.Point{X: p.X*v.Zoom + v.PanX, Y: p.Y*v.Zoom + v.PanY}
}

// ScreenToWorld maps a screen coordinate back into the scene.
func (v *Viewport) ScreenToWorld(p geom.Point) geom.Point {
	return geom.Point{X: (p.X - v.PanX) / v.Zoom, Y: (p.Y - v.PanY) / v.Zoom}
}

// FitRect picks the zoom that fits the rect on both axes within the
// viewport minus padding, clamped to [MinZoom, MaxFitZoom], and centers
// the rect. Degenerate rects center at zoom 1.
func (v *Viewport) FitRect(r geom.Rect) {
	if r.Width <= 0 && r.Height <= 0 {
		v.Reset()
		return
	}
	availW := v.Width - 2*FitPadding
	availH := v.Height - 2*FitPadding
	zoom := 1.0
	if r.Width > 0 && r.Height > 0 && availW > 0 && availH > 0 {
		zoom = min(availW/r.Width, availH/r.Height)
	}
	v.Zoom = geom.Clamp(zoom, MinZoom, MaxFitZoom)
	center := r.Center()
	v.PanX = v.Width/2 - center.X*v.Zoom
	v.PanY = v.Height/2 - center.Y*v.Zoom
}

// ZoomToFit frames the whole scene. An empty scene resets to the
// identity transform.
func (v *Viewport) ZoomToFit(s *scene.Store) {
	bounds, ok := s.CombinedBounds()
	if !ok {
		v.Reset()
		return
	}
	v.FitRect(bounds)
}

// NavigateToFrame frames a single presentation frame. Returns false
// when the id doesn't resolve to a frame element.
func (v *Viewport) NavigateToFrame(s *scene.Store, frameID string) bool {
	el, ok := s.Get(frameID)
	if !ok || el.Kind != scene.KindFrame {
		return false
	}
	v.FitRect(el.Bounds())
	return true
}

// NextFrame navigates to the frame after the given one in presentation
// order, wrapping at the end. An empty current id targets the first
// frame. Returns the id shown, or false when the scene has no frames.
func (v *Viewport) NextFrame(s *scene.Store, currentID string) (string, bool) {
	frames := s.Frames()
	if len(frames) == 0 {
		return "", false
	}
	next := frames[0]
	if currentID != "" {
		for i, ref := range frames {
			if ref.ID == currentID {
				next = frames[(i+1)%len(frames)]
				break
			}
		}
	}
	if !v.NavigateToFrame(s, next.ID) {
		return "", false
	}
	return next.ID, true
}

// PrevFrame is the reverse of NextFrame.
func (v *Viewport) PrevFrame(s *scene.Store, currentID string) (string, bool) {
	frames := s.Frames()
	if len(frames) == 0 {
		return "", false
	}
	prev := frames[len(frames)-1]
	if currentID != "" {
		for i, ref := range frames {
			if ref.ID == currentID {
				prev = frames[(i-1+len(frames))%len(frames)]
				break
			}
		}
	}
	if !v.NavigateToFrame(s, prev.ID) {
		return "", false
	}
	return prev.ID, true
}
