// Package export writes the scene out to CAD interchange formats and
// builds QR-code image payloads for PLM cross-references.
package export

import (
	"fmt"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/drawdeck/drawdeck/scene"
)

// WriteDXF exports the effectively visible elements of the scene to a
// DXF file, one DXF layer per scene layer. Shapes and frames become
// line outlines (ellipses become circles), lines become LINE entities,
// text becomes TEXT. Groups carry no visual payload and are skipped.
func WriteDXF(s *scene.Store, path string) error {
	if s.Len() == 0 {
		return fmt.Errorf("scene is empty")
	}

	d := dxf.NewDrawing()
	used := map[string]bool{}

	for _, layer := range s.Layers() {
		if !layer.Visible {
			continue
		}
		name := dxfLayerName(layer.Name, used)
		d.AddLayer(name, dxf.DefaultColor, dxf.DefaultLineType, true)

		for _, el := range s.Elements() {
			if el.LayerID != layer.ID || !s.EffectiveVisible(el) {
				continue
			}
			drawElement(d, s, el)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF file: %w", err)
	}
	return nil
}

// dxfLayerName sanitizes a display name into a unique DXF layer name.
func dxfLayerName(name string, used map[string]bool) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		out = "LAYER"
	}
	base := out
	for i := 2; used[out]; i++ {
		out = fmt.Sprintf("%s_%d", base, i)
	}
	used[out] = true
	return out
}

// drawElement emits the DXF entities for one element onto the current
// DXF layer.
func drawElement(d *drawing.Drawing, s *scene.Store, el *scene.Element) {
	b := el.Bounds()
	switch el.Kind {
	case scene.KindShape:
		switch el.Shape.Variant {
		case scene.VariantEllipse:
			c := b.Center()
			d.Circle(c.X, c.Y, 0, min(b.Width, b.Height)/2)
		case scene.VariantDiamond:
			c := b.Center()
			drawClosed(d, [][2]float64{
				{c.X, b.Y},
				{b.MaxX(), c.Y},
				{c.X, b.MaxY()},
				{b.X, c.Y},
			})
		case scene.VariantRectangle, scene.VariantSticky:
			drawRect(d, b.X, b.Y, b.Width, b.Height)
		default:
			drawRect(d, b.X, b.Y, b.Width, b.Height)
		}
		if el.Shape.Label != "" {
			c := b.Center()
			d.Text(el.Shape.Label, c.X, c.Y, 0, 12)
		}
	case scene.KindText:
		d.Text(el.Text.Content, b.X, b.Y, 0, el.Text.FontSize)
	case scene.KindLine:
		d.Line(el.Line.Start.X, el.Line.Start.Y, 0, el.Line.End.X, el.Line.End.Y, 0)
	case scene.KindImage:
		drawRect(d, b.X, b.Y, b.Width, b.Height)
	case scene.KindFrame:
		drawRect(d, b.X, b.Y, b.Width, b.Height)
		d.Text(el.Frame.Name, b.X, b.Y-14, 0, 12)
	case scene.KindGroup:
		// no visual payload
	}
}

func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	drawClosed(d, [][2]float64{
		{x, y},
		{x + w, y},
		{x + w, y + h},
		{x, y + h},
	})
}

func drawClosed(d *drawing.Drawing, pts [][2]float64) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		d.Line(a[0], a[1], 0, b[0], b[1], 0)
	}
}
