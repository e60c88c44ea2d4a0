package scene

import "github.com/drawdeck/drawdeck/geom"

// PLMSnapshot is a read-only projection of the scene for the external
// requirements/document subsystem. Everything in it is a deep copy;
// there is no write path back into the engine.
type PLMSnapshot struct {
	Elements     map[string]*Element `json:"elements"`
	ElementOrder []string            `json:"element_order"`
	Bounds       geom.Rect           `json:"bounds"`
}

// PLMSnapshot returns a deep copy of the live state plus its combined
// bounding box.
func (s *Store) PLMSnapshot() PLMSnapshot {
	elements := make(map[string]*Element, len(s.elements))
	for id, el := range s.elements {
		elements[id] = el.Clone()
	}
	bounds, _ := s.CombinedBounds()
	return PLMSnapshot{
		Elements:     elements,
		ElementOrder: append([]string(nil), s.order...),
		Bounds:       bounds,
	}
}

// SetMetadata sets one metadata key on an element. Unknown ids are a
// silent no-op and return false.
func (s *Store) SetMetadata(id, key, value string) bool {
	el, ok := s.elements[id]
	if !ok {
		return false
	}
	if el.Metadata == nil {
		el.Metadata = make(map[string]string)
	}
	el.Metadata[key] = value
	return true
}

// Metadata returns a copy of an element's metadata map.
func (s *Store) Metadata(id string) map[string]string {
	el, ok := s.elements[id]
	if !ok || el.Metadata == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(el.Metadata))
	for k, v := range el.Metadata {
		out[k] = v
	}
	return out
}

// SetPLMNode cross-links an element to an external requirement node.
// An empty node id clears the link.
func (s *Store) SetPLMNode(id, nodeID string) bool {
	el, ok := s.elements[id]
	if !ok {
		return false
	}
	el.PLMNodeID = nodeID
	return true
}

// ElementsForPLMNode returns, in paint order, the ids of elements
// linked to the given requirement node.
func (s *Store) ElementsForPLMNode(nodeID string) []string {
	if nodeID == "" {
		return nil
	}
	var out []string
	for _, id := range s.order {
		if s.elements[id].PLMNodeID == nodeID {
			out = append(out, id)
		}
	}
	return out
}
