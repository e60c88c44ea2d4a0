package scene

import "github.com/drawdeck/drawdeck/geom"

// Template is one entry of the procedural scene catalog. Build returns
// a self-contained element set in paint order with internally
// consistent fresh ids, so loading the same template twice never
// collides.
type Template struct {
	ID          string
	Name        string
	Description string
	Build       func() []*Element
}

// Templates returns the built-in template catalog.
func Templates() []Template {
	return []Template{
		{
			ID:          "flowchart",
			Name:        "Basic Flowchart",
			Description: "Start, process, decision, and end nodes with connectors",
			Build:       buildFlowchart,
		},
		{
			ID:          "layers",
			Name:        "Layered Architecture",
			Description: "Stacked presentation, logic, and data tiers",
			Build:       buildLayeredArchitecture,
		},
		{
			ID:          "mindmap",
			Name:        "Mind Map",
			Description: "Central topic with radial branches",
			Build:       buildMindMap,
		},
		{
			ID:          "swimlane",
			Name:        "Swimlane",
			Description: "Three horizontal lanes inside a frame",
			Build:       buildSwimlane,
		},
	}
}

// TemplateByID looks a template up in the catalog.
func TemplateByID(id string) (Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// LoadTemplate merges a template's output into the live scene as one
// checkpointed additive operation and selects the new ids. Returns the
// added ids, or false for an unknown template id.
func (s *Store) LoadTemplate(id string) ([]string, bool) {
	tpl, ok := TemplateByID(id)
	if !ok {
		return nil, false
	}
	elements := tpl.Build()
	if len(elements) == 0 {
		return nil, false
	}
	s.Checkpoint()
	newSelection := make(map[string]struct{}, len(elements))
	ids := make([]string, 0, len(elements))
	for _, el := range elements {
		s.insert(el)
		ids = append(ids, el.ID)
		newSelection[el.ID] = struct{}{}
	}
	s.selection = newSelection
	s.lasso = nil
	return ids, true
}

// connect wires a line between two shapes' facing sides.
func connect(from, to *Element, fromSide, toSide Side) *Element {
	line := NewLine(anchor(from, fromSide), anchor(to, toSide))
	line.Line.StartConn = &Connection{ElementID: from.ID, Side: fromSide}
	line.Line.EndConn = &Connection{ElementID: to.ID, Side: toSide}
	return line
}

// anchor returns the midpoint of an element's side.
func anchor(el *Element, side Side) geom.Point {
	b := el.Bounds()
	switch side {
	case SideTop:
		return geom.Point{X: b.X + b.Width/2, Y: b.Y}
	case SideRight:
		return geom.Point{X: b.MaxX(), Y: b.Y + b.Height/2}
	case SideBottom:
		return geom.Point{X: b.X + b.Width/2, Y: b.MaxY()}
	case SideLeft:
		return geom.Point{X: b.X, Y: b.Y + b.Height/2}
	default:
		return b.Center()
	}
}

func buildFlowchart() []*Element {
	start := NewShape(VariantEllipse, 200, 40, 140, 60)
	start.Shape.Label = "Start"
	process := NewShape(VariantRectangle, 200, 160, 140, 60)
	process.Shape.Label = "Process"
	decision := NewShape(VariantDiamond, 190, 280, 160, 80)
	decision.Shape.Label = "Decision?"
	end := NewShape(VariantEllipse, 200, 420, 140, 60)
	end.Shape.Label = "End"
	alt := NewShape(VariantRectangle, 440, 290, 140, 60)
	alt.Shape.Label = "Alternative"

	return []*Element{
		start, process, decision, end, alt,
		connect(start, process, SideBottom, SideTop),
		connect(process, decision, SideBottom, SideTop),
		connect(decision, end, SideBottom, SideTop),
		connect(decision, alt, SideRight, SideLeft),
	}
}

func buildLayeredArchitecture() []*Element {
	tiers := []string{"Presentation", "Business Logic", "Data Access"}
	out := make([]*Element, 0, len(tiers)*3)
	var prev *Element
	for i, name := range tiers {
		tier := NewShape(VariantRectangle, 100, 60+float64(i)*140, 460, 100)
		tier.Shape.Label = name
		tier.Shape.Container = true
		tier.Shape.FillOpacity = 0.2
		out = append(out, tier)
		if prev != nil {
			out = append(out, connect(prev, tier, SideBottom, SideTop))
		}
		prev = tier
	}
	return out
}

func buildMindMap() []*Element {
	center := NewShape(VariantEllipse, 360, 260, 160, 80)
	center.Shape.Label = "Topic"
	out := []*Element{center}

	branches := []struct {
		label string
		x, y  float64
	}{
		{"Branch 1", 120, 80},
		{"Branch 2", 620, 80},
		{"Branch 3", 60, 280},
		{"Branch 4", 700, 280},
		{"Branch 5", 120, 480},
		{"Branch 6", 620, 480},
	}
	for _, b := range branches {
		node := NewShape(VariantSticky, b.x, b.y, 130, 60)
		node.Shape.Label = b.label
		node.Shape.Fill = "#fff3b0"
		line := NewLine(center.Bounds().Center(), node.Bounds().Center())
		line.Line.StartConn = &Connection{ElementID: center.ID, Side: SideRight}
		line.Line.EndConn = &Connection{ElementID: node.ID, Side: SideLeft}
		out = append(out, node, line)
	}
	return out
}

func buildSwimlane() []*Element {
	frame := NewFrame("Swimlanes", 60, 60, 720, 480)
	out := []*Element{frame}
	lanes := []string{"Lane A", "Lane B", "Lane C"}
	for i, name := range lanes {
		lane := NewShape(VariantRectangle, 60, 60+float64(i)*160, 720, 160)
		lane.Shape.Label = name
		lane.Shape.Container = true
		lane.Shape.FillOpacity = 0.1
		out = append(out, lane)
	}
	return out
}
