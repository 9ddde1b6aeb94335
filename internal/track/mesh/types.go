// Package mesh builds the vertex and index buffers of one dynamic track
// segment by sweeping the cross-sections of a track profile along it.
package mesh

import (
	"github.com/Faultbox/dyntrack/internal/track/profile"
	"github.com/Faultbox/dyntrack/internal/world"
)

// Vertex is the GPU vertex layout of track meshes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Primitive holds the buffers of one (detail level, detail item) pair.
type Primitive struct {
	Level    int
	Item     *profile.DetailItem // shared, read-only
	Vertices []Vertex
	Indices  []uint32
}

// Range is a half-open index range [Start, Stop).
type Range struct {
	Start, Stop int
}

// Len returns the number of elements in the range.
func (r Range) Len() int {
	return r.Stop - r.Start
}

// BuiltMesh is the immutable render data of one segment instance.
type BuiltMesh struct {
	Primitives []Primitive
	// Levels holds, per detail level, its range in Primitives.
	Levels    []Range
	Cutoffs   []float64
	LODMethod profile.LODMethod
	Sections  int

	// ObjectRadius is the bounding sphere radius around Center.
	ObjectRadius float64
	Center       world.Location
	// Placement is the model transform; vertices are in its frame.
	Placement world.Transform
}

// VertexCount returns the total number of vertices across primitives.
func (m *BuiltMesh) VertexCount() int {
	n := 0
	for i := range m.Primitives {
		n += len(m.Primitives[i].Vertices)
	}
	return n
}

// IndexCount returns the total number of indices across primitives.
func (m *BuiltMesh) IndexCount() int {
	n := 0
	for i := range m.Primitives {
		n += len(m.Primitives[i].Indices)
	}
	return n
}
