package formats

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Segment kinds.
const (
	SegmentStraight = "straight"
	SegmentCurve    = "curve"
)

// LayoutDocument places track objects in the world.
//
//	profiles:
//	  mainline: profiles/mainline.yaml
//	objects:
//	  - id: 1
//	    profile: mainline
//	    tile: [0, 0]
//	    position: [12.5, 0, -300]
//	    yaw: 90
//	    segments:
//	      - {kind: straight, length: 50}
//	      - {kind: curve, angle: 30, radius: 400}
type LayoutDocument struct {
	Name string `yaml:"name,omitempty"`
	// Profiles maps a profile name to its document path, relative to
	// the layout file.
	Profiles map[string]string `yaml:"profiles,omitempty"`
	Objects  []LayoutObject    `yaml:"objects"`
}

// LayoutObject is one placed track object.
type LayoutObject struct {
	ID       int             `yaml:"id"`
	Profile  string          `yaml:"profile,omitempty"`
	Tile     [2]int          `yaml:"tile,flow"`
	Position [3]float64      `yaml:"position,flow"`
	Yaw      float64         `yaml:"yaw,omitempty"`   // degrees
	Pitch    float64         `yaml:"pitch,omitempty"` // degrees
	Segments []LayoutSegment `yaml:"segments"`
}

// LayoutSegment is one path segment of an object.
type LayoutSegment struct {
	Kind      string  `yaml:"kind"`
	Length    float64 `yaml:"length,omitempty"`
	Angle     float64 `yaml:"angle,omitempty"` // degrees, positive turns toward +X
	Radius    float64 `yaml:"radius,omitempty"`
	Elevation float64 `yaml:"elevation,omitempty"`
	Index     *int    `yaml:"index,omitempty"`
}

// ParseLayout parses a YAML layout document.
func ParseLayout(data []byte) (*LayoutDocument, error) {
	doc := &LayoutDocument{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %v: %w", err, ErrInvalidLayoutDocument)
	}
	seen := make(map[int]bool, len(doc.Objects))
	for i, obj := range doc.Objects {
		if seen[obj.ID] {
			return nil, fmt.Errorf("object %d: duplicate id %d: %w", i, obj.ID, ErrInvalidLayoutDocument)
		}
		seen[obj.ID] = true
		for j, seg := range obj.Segments {
			if seg.Kind != SegmentStraight && seg.Kind != SegmentCurve {
				return nil, fmt.Errorf("object %d segment %d: kind %q: %w", obj.ID, j, seg.Kind, ErrInvalidLayoutDocument)
			}
		}
	}
	return doc, nil
}

// LoadLayout reads and parses a layout document from disk.
func LoadLayout(path string) (*LayoutDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	doc, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
