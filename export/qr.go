package export

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/drawdeck/drawdeck/scene"
)

// QRImageElement encodes the given content (typically a PLM requirement
// node reference or a share URL) as a PNG QR code wrapped in an image
// element, ready to be added to a scene. The element is created at the
// origin; callers position it.
func QRImageElement(content string, size int) (*scene.Element, error) {
	if content == "" {
		return nil, fmt.Errorf("QR content is empty")
	}
	if size < 64 {
		size = 64
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	el := scene.NewImage(png, 0, 0, float64(size), float64(size))
	el.Metadata = map[string]string{"qr_content": content}
	return el, nil
}

// PLMBadge builds a QR image element cross-linked to a requirement
// node, so scanning a printed diagram jumps to the node.
func PLMBadge(nodeID string, size int) (*scene.Element, error) {
	if nodeID == "" {
		return nil, fmt.Errorf("PLM node id is empty")
	}
	el, err := QRImageElement("plm://node/"+nodeID, size)
	if err != nil {
		return nil, err
	}
	el.PLMNodeID = nodeID
	return el, nil
}
