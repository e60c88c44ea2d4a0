package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drawdeck/drawdeck/geom"
	"github.com/drawdeck/drawdeck/scene"
)

// buildTestScene creates a realistic mixed scene for export testing.
func buildTestScene() *scene.Store {
	s := scene.New()
	box := scene.NewShape(scene.VariantRectangle, 10, 10, 120, 80)
	box.Shape.Label = "Pump"
	disc := scene.NewShape(scene.VariantEllipse, 200, 10, 80, 80)
	decision := scene.NewShape(scene.VariantDiamond, 10, 200, 100, 60)
	note := scene.NewText("inspect weekly", 320, 10, 140, 30)
	line := scene.NewLine(geom.Point{X: 130, Y: 50}, geom.Point{X: 200, Y: 50})
	frame := scene.NewFrame("Overview", 0, 0, 500, 400)
	s.Add(box)
	s.Add(disc)
	s.Add(decision)
	s.Add(note)
	s.Add(line)
	s.Add(frame)
	return s
}

func TestWriteDXF(t *testing.T) {
	s := buildTestScene()
	path := filepath.Join(t.TempDir(), "scene.dxf")

	if err := WriteDXF(s, path); err != nil {
		t.Fatalf("WriteDXF failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("DXF output should not be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	for _, want := range []string{"LINE", "CIRCLE", "TEXT", "Pump", "inspect weekly"} {
		if !strings.Contains(content, want) {
			t.Errorf("DXF output missing %q", want)
		}
	}
}

func TestWriteDXF_EmptyScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	if err := WriteDXF(scene.New(), path); err == nil {
		t.Error("exporting an empty scene should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("a failed export should not leave a file behind")
	}
}

func TestWriteDXF_SkipsHiddenElements(t *testing.T) {
	s := scene.New()
	shown := scene.NewShape(scene.VariantRectangle, 0, 0, 100, 100)
	shown.Shape.Label = "shown-element"
	hidden := scene.NewShape(scene.VariantRectangle, 200, 0, 100, 100)
	hidden.Shape.Label = "hidden-element"
	hidden.Visible = false
	s.Add(shown)
	s.Add(hidden)

	path := filepath.Join(t.TempDir(), "scene.dxf")
	if err := WriteDXF(s, path); err != nil {
		t.Fatalf("WriteDXF failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden-element") {
		t.Error("hidden elements must not be exported")
	}
	if !strings.Contains(string(data), "shown-element") {
		t.Error("visible elements should be exported")
	}
}

func TestWriteDXF_SkipsHiddenLayers(t *testing.T) {
	s := scene.New()
	layer := s.AddLayer("annotations", "#ff0000")
	el := scene.NewShape(scene.VariantRectangle, 0, 0, 100, 100)
	el.Shape.Label = "annotation-box"
	keep := scene.NewShape(scene.VariantRectangle, 200, 0, 100, 100)
	s.Add(el)
	s.Add(keep)
	s.MoveToLayer([]string{el.ID}, layer.ID)
	s.SetLayerVisible(layer.ID, false)

	path := filepath.Join(t.TempDir(), "scene.dxf")
	if err := WriteDXF(s, path); err != nil {
		t.Fatalf("WriteDXF failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "annotation-box") {
		t.Error("elements on hidden layers must not be exported")
	}
}

func TestDXFLayerName(t *testing.T) {
	used := map[string]bool{}
	if got := dxfLayerName("Default Layer", used); got != "Default_Layer" {
		t.Errorf("expected Default_Layer, got %q", got)
	}
	if got := dxfLayerName("Default Layer", used); got != "Default_Layer_2" {
		t.Errorf("duplicate names should get a suffix, got %q", got)
	}
	if got := dxfLayerName("***", used); got != "___" {
		t.Errorf("expected ___, got %q", got)
	}
	if got := dxfLayerName("", used); got != "LAYER" {
		t.Errorf("empty names should fall back, got %q", got)
	}
}

func TestQRImageElement(t *testing.T) {
	el, err := QRImageElement("https://example.com/scene/42", 128)
	if err != nil {
		t.Fatalf("QRImageElement failed: %v", err)
	}
	if el.Kind != scene.KindImage {
		t.Errorf("expected an image element, got %v", el.Kind)
	}
	if len(el.Image.Data) == 0 {
		t.Error("QR element should carry PNG data")
	}
	if el.Width != 128 || el.Height != 128 {
		t.Errorf("expected 128x128, got %fx%f", el.Width, el.Height)
	}
	if el.Metadata["qr_content"] != "https://example.com/scene/42" {
		t.Error("QR content should be recorded in metadata")
	}
}

func TestQRImageElement_Validation(t *testing.T) {
	if _, err := QRImageElement("", 128); err == nil {
		t.Error("empty content should be rejected")
	}
	el, err := QRImageElement("x", 1)
	if err != nil {
		t.Fatalf("tiny size should be floored, not rejected: %v", err)
	}
	if el.Width != 64 {
		t.Errorf("expected floor at 64, got %f", el.Width)
	}
}

func TestPLMBadge(t *testing.T) {
	el, err := PLMBadge("REQ-42", 128)
	if err != nil {
		t.Fatalf("PLMBadge failed: %v", err)
	}
	if el.PLMNodeID != "REQ-42" {
		t.Errorf("expected PLM node link, got %q", el.PLMNodeID)
	}
	if el.Metadata["qr_content"] != "plm://node/REQ-42" {
		t.Errorf("unexpected QR content %q", el.Metadata["qr_content"])
	}

	if _, err := PLMBadge("", 128); err == nil {
		t.Error("empty node id should be rejected")
	}
}
