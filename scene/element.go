// Package scene implements the in-memory scene graph for the diagramming
// canvas: the element store and paint order, snapshot-based undo/redo,
// selection and hit-testing, structural operations (grouping, z-order,
// locking, layers), clipboard, serialization, and procedural templates.
//
// The store is a plain constructible object owned by the host session.
// It is single-writer: callers must not run mutating operations
// concurrently. Every mutating batch entry point takes a history
// checkpoint before touching state; Update alone does not, so gesture
// handlers call Checkpoint once up front.
package scene

import (
	"github.com/drawdeck/drawdeck/geom"
)

// Kind discriminates the element union. Every consumer switches
// exhaustively over these values.
type Kind string

const (
	KindShape Kind = "shape"
	KindText  Kind = "text"
	KindLine  Kind = "line"
	KindImage Kind = "image"
	KindFrame Kind = "frame"
	KindGroup Kind = "group"
)

// ShapeVariant selects the geometry drawn for a shape element.
type ShapeVariant string

const (
	VariantRectangle ShapeVariant = "rectangle"
	VariantEllipse   ShapeVariant = "ellipse"
	VariantDiamond   ShapeVariant = "diamond"
	VariantSticky    ShapeVariant = "sticky"
)

// Side names the edge of an element a line endpoint attaches to.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Connection is a soft reference from a line endpoint to another
// element. Used for auto-routing when the referenced element moves.
// Deleting the referenced element nulls the connection out.
type Connection struct {
	ElementID string `json:"element_id"`
	Side      Side   `json:"side"`
}

// ShapeProps is the payload for KindShape.
type ShapeProps struct {
	Variant     ShapeVariant `json:"variant"`
	Fill        string       `json:"fill"`
	Stroke      string       `json:"stroke"`
	StrokeWidth float64      `json:"stroke_width"`
	FillOpacity float64      `json:"fill_opacity"`
	Label       string       `json:"label"` // text attached to the shape
	Container   bool         `json:"container"`
	ChildIDs    []string     `json:"child_ids,omitempty"` // nested children when Container
}

// TextProps is the payload for KindText.
type TextProps struct {
	Content    string  `json:"content"`
	FontSize   float64 `json:"font_size"`
	FontFamily string  `json:"font_family"`
	Align      string  `json:"align"` // "left", "center", "right"
}

// LineProps is the payload for KindLine. Lines are positioned by their
// two endpoints; the common X/Y/Width/Height fields are ignored and the
// bounding box is derived from Start and End.
type LineProps struct {
	Start       geom.Point  `json:"start"`
	End         geom.Point  `json:"end"`
	Stroke      string      `json:"stroke"`
	StrokeWidth float64     `json:"stroke_width"`
	StartConn   *Connection `json:"start_conn,omitempty"`
	EndConn     *Connection `json:"end_conn,omitempty"`
}

// ImageProps is the payload for KindImage.
type ImageProps struct {
	Data          []byte  `json:"data"` // raster payload (PNG/JPEG bytes)
	NaturalWidth  float64 `json:"natural_width"`
	NaturalHeight float64 `json:"natural_height"`
}

// FrameProps is the payload for KindFrame.
type FrameProps struct {
	Name string `json:"name"`
}

// GroupProps is the payload for KindGroup. A group has no visual
// payload of its own; its bounds are the combined bounds of its members
// at creation time.
type GroupProps struct {
	ChildIDs []string `json:"child_ids"`
}

// Element is one addressable drawable unit in the scene. Exactly one
// payload pointer is non-nil, matching Kind; the factory functions
// below enforce this and populate every common field explicitly.
type Element struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// ZIndex mirrors the element's position in the paint-order list.
	// The list is authoritative; the store re-stamps this after every
	// reorder so external readers always see dense, gap-free indices.
	ZIndex int `json:"z_index"`

	GroupID  string `json:"group_id"`  // owning group, "" = none
	ParentID string `json:"parent_id"` // owning container shape, "" = none
	Locked   bool   `json:"locked"`
	Visible  bool   `json:"visible"`
	LayerID  string `json:"layer_id"`

	// Metadata carries host-assigned key/value pairs; PLMNodeID
	// cross-links the element to an external requirement node.
	Metadata  map[string]string `json:"metadata,omitempty"`
	PLMNodeID string            `json:"plm_node_id,omitempty"`

	Shape *ShapeProps `json:"shape,omitempty"`
	Text  *TextProps  `json:"text,omitempty"`
	Line  *LineProps  `json:"line,omitempty"`
	Image *ImageProps `json:"image,omitempty"`
	Frame *FrameProps `json:"frame,omitempty"`
	Group *GroupProps `json:"group,omitempty"`
}

// newBase returns an element with every common field populated.
func newBase(kind Kind, x, y, w, h float64) *Element {
	return &Element{
		ID:       geom.NewID(),
		Kind:     kind,
		X:        x,
		Y:        y,
		Width:    w,
		Height:   h,
		GroupID:  "",
		ParentID: "",
		Locked:   false,
		Visible:  true,
		LayerID:  DefaultLayerID,
	}
}

// NewShape creates a shape element with default styling.
func NewShape(variant ShapeVariant, x, y, w, h float64) *Element {
	el := newBase(KindShape, x, y, w, h)
	el.Shape = &ShapeProps{
		Variant:     variant,
		Fill:        "#ffffff",
		Stroke:      "#1a1a1a",
		StrokeWidth: 2,
		FillOpacity: 1,
	}
	return el
}

// NewText creates a standalone text element.
func NewText(content string, x, y, w, h float64) *Element {
	el := newBase(KindText, x, y, w, h)
	el.Text = &TextProps{
		Content:    content,
		FontSize:   14,
		FontFamily: "sans-serif",
		Align:      "left",
	}
	return el
}

// NewLine creates a free-floating line between two points.
func NewLine(start, end geom.Point) *Element {
	el := newBase(KindLine, 0, 0, 0, 0)
	el.Line = &LineProps{
		Start:       start,
		End:         end,
		Stroke:      "#1a1a1a",
		StrokeWidth: 2,
	}
	return el
}

// NewImage creates an image element from a raster payload.
func NewImage(data []byte, x, y, w, h float64) *Element {
	el := newBase(KindImage, x, y, w, h)
	el.Image = &ImageProps{
		Data:          data,
		NaturalWidth:  w,
		NaturalHeight: h,
	}
	return el
}

// NewFrame creates a named presentation frame.
func NewFrame(name string, x, y, w, h float64) *Element {
	el := newBase(KindFrame, x, y, w, h)
	el.Frame = &FrameProps{Name: name}
	return el
}

// newGroup creates the synthetic group record for the given members'
// combined bounds. Groups are only created through Store.Group.
func newGroup(bounds geom.Rect, childIDs []string) *Element {
	el := newBase(KindGroup, bounds.X, bounds.Y, bounds.Width, bounds.Height)
	el.Group = &GroupProps{ChildIDs: childIDs}
	return el
}

// Bounds returns the element's axis-aligned bounding box. Lines span
// their two endpoints; every other kind uses position and size.
func (e *Element) Bounds() geom.Rect {
	switch e.Kind {
	case KindLine:
		return geom.FromCorners(e.Line.Start, e.Line.End)
	case KindShape, KindText, KindImage, KindFrame, KindGroup:
		return geom.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
	default:
		return geom.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
	}
}

// Clone returns a deep copy of the element. Payload structs, slices,
// raster data, and metadata are all copied so the clone shares no
// mutable state with the original.
func (e *Element) Clone() *Element {
	cp := *e
	if e.Metadata != nil {
		cp.Metadata = make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			cp.Metadata[k] = v
		}
	}
	switch e.Kind {
	case KindShape:
		props := *e.Shape
		if e.Shape.ChildIDs != nil {
			props.ChildIDs = append([]string(nil), e.Shape.ChildIDs...)
		}
		cp.Shape = &props
	case KindText:
		props := *e.Text
		cp.Text = &props
	case KindLine:
		props := *e.Line
		if e.Line.StartConn != nil {
			conn := *e.Line.StartConn
			props.StartConn = &conn
		}
		if e.Line.EndConn != nil {
			conn := *e.Line.EndConn
			props.EndConn = &conn
		}
		cp.Line = &props
	case KindImage:
		props := *e.Image
		if e.Image.Data != nil {
			props.Data = append([]byte(nil), e.Image.Data...)
		}
		cp.Image = &props
	case KindFrame:
		props := *e.Frame
		cp.Frame = &props
	case KindGroup:
		props := *e.Group
		if e.Group.ChildIDs != nil {
			props.ChildIDs = append([]string(nil), e.Group.ChildIDs...)
		}
		cp.Group = &props
	}
	return &cp
}

// payloadMatchesKind reports whether exactly the payload for the
// element's kind is set. Used by import validation.
func (e *Element) payloadMatchesKind() bool {
	switch e.Kind {
	case KindShape:
		return e.Shape != nil
	case KindText:
		return e.Text != nil
	case KindLine:
		return e.Line != nil
	case KindImage:
		return e.Image != nil
	case KindFrame:
		return e.Frame != nil
	case KindGroup:
		return e.Group != nil
	default:
		return false
	}
}
