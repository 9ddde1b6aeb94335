// Package lod picks, once per frame, which detail levels of a built
// track mesh to draw.
package lod

import (
	"github.com/Faultbox/dyntrack/internal/track/mesh"
	"github.com/Faultbox/dyntrack/internal/track/profile"
	"github.com/Faultbox/dyntrack/internal/world"
)

// Viewer is the distance and field-of-view test of the camera.
type Viewer interface {
	InRange(center world.Location, objectRadius, cutoffRadius float64) bool
	InFieldOfView(center world.Location, objectRadius float64) bool
}

// Selection is the part of a mesh to draw this frame. Levels are stored
// contiguously, so any selection is a single primitive range.
type Selection struct {
	Mesh       *mesh.BuiltMesh
	FirstLevel int
	LastLevel  int
	Primitives mesh.Range
}

// Levels returns the number of detail levels submitted.
func (s Selection) Levels() int {
	return s.LastLevel - s.FirstLevel + 1
}

// Select returns what to draw of m, or false when m is not drawn this
// frame: outside the view cone, or beyond every level's cutoff.
func Select(v Viewer, m *mesh.BuiltMesh) (Selection, bool) {
	if len(m.Levels) == 0 || !v.InFieldOfView(m.Center, m.ObjectRadius) {
		return Selection{}, false
	}

	for i, cutoff := range m.Cutoffs {
		if !v.InRange(m.Center, m.ObjectRadius, cutoff) {
			continue
		}
		last := i
		if m.LODMethod == profile.ComponentAdditive {
			last = len(m.Levels) - 1
		}
		return Selection{
			Mesh:       m,
			FirstLevel: i,
			LastLevel:  last,
			Primitives: mesh.Range{Start: m.Levels[i].Start, Stop: m.Levels[last].Stop},
		}, true
	}
	return Selection{}, false
}

// SelectAll appends the selections of every visible mesh to dst and
// returns it. Passing last frame's slice truncated to zero keeps the
// per-frame path free of allocations once it has grown.
func SelectAll(v Viewer, meshes []*mesh.BuiltMesh, dst []Selection) []Selection {
	for _, m := range meshes {
		if sel, ok := Select(v, m); ok {
			dst = append(dst, sel)
		}
	}
	return dst
}
