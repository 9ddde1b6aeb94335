package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dyntrack/internal/track/profile"
	"github.com/Faultbox/dyntrack/internal/track/section"
	"github.com/Faultbox/dyntrack/internal/world"
)

// Build errors.
var (
	ErrInvalidRadius  = errors.New("curved segment radius must be positive")
	ErrNoDetailLevels = profile.ErrNoDetailLevels
)

// MaxSections caps the section count so 32-bit indices cannot overflow.
const MaxSections = 1 << 16

// SectionCount returns the number of sections a segment is split into.
// Straight segments always use one. Curves start from the ChordSpan
// baseline; pitch control recomputes the count only when the baseline
// chord (or sagitta) is above the profile's scalar.
func SectionCount(seg section.PathSegment, p *profile.Profile) int {
	if !seg.Curved {
		return 1
	}

	angle := math.Abs(seg.Angle)
	n := atLeastOne(math.Floor(mgl64.RadToDeg(angle)/p.ChordSpan + 1e-9))

	r, s := seg.Radius, p.PitchControlScalar
	switch p.PitchControl {
	case profile.PitchChordLength:
		if ChordLength(r, angle, n) > s {
			n = atLeastOne(math.Ceil(angle/(2*math.Asin(0.5*s/r)) - 1e-9))
		}
	case profile.PitchChordDisplacement:
		if Sagitta(r, angle, n) > s {
			n = atLeastOne(math.Ceil(angle/(2*math.Acos(1-s/r)) - 1e-9))
		}
	}
	return n
}

// ChordLength returns the chord between adjacent sections of an arc of
// the given radius and sweep split into n sections.
func ChordLength(radius, angle float64, n int) float64 {
	return 2 * radius * math.Sin(0.5*math.Abs(angle)/float64(n))
}

// Sagitta returns the distance between chord and arc midpoint of one
// section of an arc split into n sections.
func Sagitta(radius, angle float64, n int) float64 {
	return radius * (1 - math.Cos(0.5*math.Abs(angle)/float64(n)))
}

// atLeastOne converts a computed count to int, clamping degenerate
// (zero, negative, NaN) results to 1 and huge ones to MaxSections.
func atLeastOne(f float64) int {
	if !(f >= 1) {
		return 1
	}
	if f > MaxSections {
		return MaxSections
	}
	return int(f)
}

// ObjectRadius returns the bounding sphere radius of a segment: half
// its length, or half the chord subtended by its arc.
func ObjectRadius(seg section.PathSegment) float64 {
	if seg.Curved {
		return seg.Radius * math.Sin(math.Abs(seg.Angle)/2)
	}
	return seg.Length / 2
}

// Build generates the mesh of one segment instance. Vertices are in the
// frame of inst.Start. Build keeps all generation state local, so
// instances sharing a profile may be built concurrently.
func Build(inst section.Instance) (*BuiltMesh, error) {
	p := inst.Profile
	if p == nil || len(p.Levels) == 0 {
		return nil, ErrNoDetailLevels
	}
	seg := inst.Segment
	if seg.Curved && !(seg.Radius > 0) {
		return nil, fmt.Errorf("segment %d radius %v: %w", seg.Index, seg.Radius, ErrInvalidRadius)
	}

	sw := newSweep(seg, SectionCount(seg, p))
	m := &BuiltMesh{
		Primitives:   make([]Primitive, 0, p.Primitives()),
		Levels:       make([]Range, len(p.Levels)),
		Cutoffs:      make([]float64, len(p.Levels)),
		LODMethod:    p.LODMethod,
		Sections:     sw.sections,
		ObjectRadius: ObjectRadius(seg),
		Center:       world.Midpoint(inst.Start.Location, inst.End.Location),
		Placement:    inst.Start,
	}

	for li := range p.Levels {
		lvl := &p.Levels[li]
		start := len(m.Primitives)
		for ii := range lvl.Items {
			m.Primitives = append(m.Primitives, buildPrimitive(li, &lvl.Items[ii], sw))
		}
		m.Levels[li] = Range{Start: start, Stop: len(m.Primitives)}
		m.Cutoffs[li] = lvl.CutoffRadius
	}
	return m, nil
}

// sweep is the per-section motion of a segment, fixed for one build.
type sweep struct {
	sections int
	curved   bool
	step     mgl64.Vec3 // straight displacement per section
	center   mgl64.Vec3 // arc centre in the start frame
	rotation mgl64.Mat3 // curve rotation per section
	// texAdvance is the centreline distance credited to texture
	// coordinates per section.
	texAdvance float64
}

func newSweep(seg section.PathSegment, n int) sweep {
	sw := sweep{sections: n, curved: seg.Curved, rotation: mgl64.Ident3()}
	if !seg.Curved {
		sw.step = mgl64.Vec3{0, seg.ElevationDelta / float64(n), seg.Length / float64(n)}
		sw.texAdvance = sw.step.Len()
		return sw
	}

	side := 1.0
	if seg.Angle < 0 {
		side = -1
	}
	sw.center = mgl64.Vec3{side * seg.Radius, 0, 0}
	sw.rotation = mgl64.Rotate3DY(seg.Angle / float64(n))
	sw.texAdvance = ChordLength(seg.Radius, seg.Angle, n)
	return sw
}

// next returns the centreline point one section after c.
func (sw sweep) next(c mgl64.Vec3) mgl64.Vec3 {
	if !sw.curved {
		return c.Add(sw.step)
	}
	return sw.center.Add(sw.rotation.Mul3x1(c.Sub(sw.center)))
}

// ringVertex is a vertex of the previous cross-section kept at full
// precision so long curves do not accumulate float32 error.
type ringVertex struct {
	pos, normal mgl64.Vec3
	tex         [2]float64
}

// cursor is the generation state threaded through one primitive build.
type cursor struct {
	vertex     int
	index      int
	centerline mgl64.Vec3
}

func buildPrimitive(level int, item *profile.DetailItem, sw sweep) Primitive {
	prim := Primitive{
		Level:    level,
		Item:     item,
		Vertices: make([]Vertex, item.VertexCount*(sw.sections+1)),
		Indices:  make([]uint32, item.SegmentCount*sw.sections*6),
	}

	ring := make([]ringVertex, 0, item.VertexCount)
	var c cursor
	c, ring = emitBase(prim.Vertices, item, c, ring)
	for i := 1; i <= sw.sections; i++ {
		c = emitSection(&prim, item, sw, c, ring)
	}
	return prim
}

// emitBase copies the authored cross-section as section 0.
func emitBase(dst []Vertex, item *profile.DetailItem, c cursor, ring []ringVertex) (cursor, []ringVertex) {
	for _, pl := range item.Polylines {
		for _, v := range pl.Vertices {
			dst[c.vertex] = Vertex(v)
			ring = append(ring, ringVertex{
				pos:    vec64(v.Position),
				normal: vec64(v.Normal),
				tex:    [2]float64{float64(v.TexCoord[0]), float64(v.TexCoord[1])},
			})
			c.vertex++
		}
	}
	return c, ring
}

// emitSection derives one cross-section from the previous one held in
// ring, updates ring in place and stitches both with two triangles per
// polyline edge.
func emitSection(prim *Primitive, item *profile.DetailItem, sw sweep, c cursor, ring []ringVertex) cursor {
	ringSize := uint32(item.VertexCount)
	next := sw.next(c.centerline)

	k := 0
	for _, pl := range item.Polylines {
		du := float64(pl.DeltaTexCoord[0]) * sw.texAdvance
		dv := float64(pl.DeltaTexCoord[1]) * sw.texAdvance

		for j := range pl.Vertices {
			rv := &ring[k]
			if sw.curved {
				rv.pos = next.Add(sw.rotation.Mul3x1(rv.pos.Sub(c.centerline)))
				rv.normal = sw.rotation.Mul3x1(rv.normal)
			} else {
				rv.pos = rv.pos.Add(sw.step)
			}
			rv.tex[0] += du
			rv.tex[1] += dv
			prim.Vertices[c.vertex] = rv.vertex()

			if j > 0 {
				cur := uint32(c.vertex)
				prev := cur - ringSize
				idx := prim.Indices[c.index : c.index+6]
				idx[0], idx[1], idx[2] = prev-1, cur-1, prev
				idx[3], idx[4], idx[5] = prev, cur-1, cur
				c.index += 6
			}
			c.vertex++
			k++
		}
	}

	c.centerline = next
	return c
}

func (rv *ringVertex) vertex() Vertex {
	return Vertex{
		Position: vec32(rv.pos),
		Normal:   vec32(rv.normal),
		TexCoord: [2]float32{float32(rv.tex[0]), float32(rv.tex[1])},
	}
}

func vec64(v [3]float32) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

func vec32(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
