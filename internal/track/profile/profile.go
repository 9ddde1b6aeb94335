// Package profile defines the track profile: the reusable cross-section
// recipe from which dynamic track meshes are generated.
//
// A profile is built once with New and is read-only afterwards. The same
// *Profile is shared by every segment built from it, so nothing in the
// tree may be modified after construction.
package profile

import (
	"errors"
	"fmt"
)

// Profile construction errors.
var (
	ErrNoDetailLevels     = errors.New("profile has no detail levels")
	ErrNoDetailItems      = errors.New("detail level has no items")
	ErrNoPolylines        = errors.New("detail item has no polylines")
	ErrTooFewVertices     = errors.New("polyline needs at least two vertices")
	ErrZeroDeltaTexCoord  = errors.New("polyline delta texcoord is zero")
	ErrInvalidChordSpan   = errors.New("chord span must be positive")
	ErrInvalidPitchScalar = errors.New("pitch control scalar must be positive")
	ErrInvalidCutoff      = errors.New("cutoff radius must be positive")
	ErrUnknownOption      = errors.New("unknown option")
)

// LODMethod selects how detail levels combine when drawn.
type LODMethod int

const (
	// ComponentAdditive draws the matched level and every coarser level.
	ComponentAdditive LODMethod = iota
	// CompleteReplacement draws only the matched level.
	CompleteReplacement
)

func (m LODMethod) String() string {
	switch m {
	case ComponentAdditive:
		return "ComponentAdditive"
	case CompleteReplacement:
		return "CompleteReplacement"
	default:
		return fmt.Sprintf("LODMethod(%d)", int(m))
	}
}

// ParseLODMethod resolves a LOD method name. Empty means ComponentAdditive.
func ParseLODMethod(s string) (LODMethod, error) {
	switch s {
	case "", "ComponentAdditive", "Additive":
		return ComponentAdditive, nil
	case "CompleteReplacement", "Replacement":
		return CompleteReplacement, nil
	}
	return 0, fmt.Errorf("lod method %q: %w", s, ErrUnknownOption)
}

// PitchControl selects the geometric error bound applied to curves.
type PitchControl int

const (
	PitchNone PitchControl = iota
	// PitchChordLength bounds the straight distance between adjacent cross-sections.
	PitchChordLength
	// PitchChordDisplacement bounds the sagitta between chord and arc.
	PitchChordDisplacement
)

func (p PitchControl) String() string {
	switch p {
	case PitchNone:
		return "None"
	case PitchChordLength:
		return "ChordLength"
	case PitchChordDisplacement:
		return "ChordDisplacement"
	default:
		return fmt.Sprintf("PitchControl(%d)", int(p))
	}
}

// ParsePitchControl resolves a pitch control name. Empty means none.
func ParsePitchControl(s string) (PitchControl, error) {
	switch s {
	case "", "None":
		return PitchNone, nil
	case "ChordLength":
		return PitchChordLength, nil
	case "ChordDisplacement":
		return PitchChordDisplacement, nil
	}
	return 0, fmt.Errorf("pitch control %q: %w", s, ErrUnknownOption)
}

// Vertex is one authored cross-section vertex.
type Vertex struct {
	Position [3]float32 // X lateral, Y up; Z is normally 0
	Normal   [3]float32
	TexCoord [2]float32
}

// Polyline is a chain of vertices replicated along the path.
type Polyline struct {
	Name string
	// DeltaTexCoord is the texture coordinate advance per metre of path.
	DeltaTexCoord [2]float32
	Vertices      []Vertex
}

// DetailItem is one material-bound group of polylines.
type DetailItem struct {
	Name      string
	Material  Material
	Polylines []Polyline

	// Running totals filled in as polylines are added; used to size
	// buffers before generation.
	VertexCount  int
	SegmentCount int
}

// AddPolyline appends p and updates the running totals.
func (d *DetailItem) AddPolyline(p Polyline) {
	d.Polylines = append(d.Polylines, p)
	d.VertexCount += len(p.Vertices)
	if len(p.Vertices) > 1 {
		d.SegmentCount += len(p.Vertices) - 1
	}
}

// DetailLevel is a distance-bounded bundle of items.
type DetailLevel struct {
	// CutoffRadius is the distance in metres beyond which the level is not drawn.
	CutoffRadius float64
	Items        []DetailItem
}

// Params holds the global tessellation controls of a profile.
type Params struct {
	Name      string
	LODMethod LODMethod
	// ChordSpan is the baseline angular step of curves, in degrees.
	ChordSpan          float64
	PitchControl       PitchControl
	PitchControlScalar float64
}

// Profile is the immutable root of the recipe.
type Profile struct {
	Params
	Levels []DetailLevel
}

// New validates params and levels and returns the profile. Item totals
// are recomputed from the polylines, so callers need not fill them in.
// No partial profile is returned on error.
func New(params Params, levels []DetailLevel) (*Profile, error) {
	if !(params.ChordSpan > 0) {
		return nil, fmt.Errorf("chord span %v: %w", params.ChordSpan, ErrInvalidChordSpan)
	}
	if params.PitchControl != PitchNone && !(params.PitchControlScalar > 0) {
		return nil, fmt.Errorf("%s scalar %v: %w", params.PitchControl, params.PitchControlScalar, ErrInvalidPitchScalar)
	}
	if len(levels) == 0 {
		return nil, ErrNoDetailLevels
	}

	p := &Profile{Params: params, Levels: make([]DetailLevel, len(levels))}
	for i, lvl := range levels {
		if !(lvl.CutoffRadius > 0) {
			return nil, fmt.Errorf("level %d cutoff %v: %w", i, lvl.CutoffRadius, ErrInvalidCutoff)
		}
		if len(lvl.Items) == 0 {
			return nil, fmt.Errorf("level %d: %w", i, ErrNoDetailItems)
		}
		built := DetailLevel{CutoffRadius: lvl.CutoffRadius, Items: make([]DetailItem, len(lvl.Items))}
		for j, item := range lvl.Items {
			it, err := newItem(item)
			if err != nil {
				return nil, fmt.Errorf("level %d item %q: %w", i, item.Name, err)
			}
			built.Items[j] = it
		}
		p.Levels[i] = built
	}
	return p, nil
}

func newItem(src DetailItem) (DetailItem, error) {
	if len(src.Polylines) == 0 {
		return DetailItem{}, ErrNoPolylines
	}
	item := DetailItem{Name: src.Name, Material: src.Material}
	for _, pl := range src.Polylines {
		if len(pl.Vertices) < 2 {
			return DetailItem{}, fmt.Errorf("polyline %q: %w", pl.Name, ErrTooFewVertices)
		}
		if pl.DeltaTexCoord == [2]float32{} {
			return DetailItem{}, fmt.Errorf("polyline %q: %w", pl.Name, ErrZeroDeltaTexCoord)
		}
		verts := make([]Vertex, len(pl.Vertices))
		copy(verts, pl.Vertices)
		pl.Vertices = verts
		item.AddPolyline(pl)
	}
	return item, nil
}

// Primitives returns the number of (level, item) pairs in the profile.
func (p *Profile) Primitives() int {
	n := 0
	for i := range p.Levels {
		n += len(p.Levels[i].Items)
	}
	return n
}
