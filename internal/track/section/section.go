// Package section splits multi-segment dynamic track paths into
// independent single-segment instances with chained world transforms.
package section

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dyntrack/internal/track/profile"
	"github.com/Faultbox/dyntrack/internal/world"
)

// InvalidIndex marks a segment that must be skipped.
const InvalidIndex = -1

// PathSegment is one straight or circular-arc piece of a track path.
type PathSegment struct {
	Curved bool
	Length float64 // straight, metres
	// Angle is the curve sweep in radians. Positive turns the heading
	// from +Z toward +X.
	Angle  float64
	Radius float64 // curved, metres
	// ElevationDelta is the rise across a straight segment, in metres.
	ElevationDelta float64
	Index          int
}

// Vacuous reports whether the segment produces no geometry.
func (s PathSegment) Vacuous() bool {
	return s.Index == InvalidIndex || (s.Length == 0 && s.Angle == 0)
}

// Instance is a single segment placed in the world.
type Instance struct {
	Segment PathSegment
	Profile *profile.Profile
	Start   world.Transform
	End     world.Transform
}

// Decompose walks segs in order starting at root and returns one
// instance per non-vacuous segment. Each instance starts where the
// previous one ended. Segment numerics are not validated here.
func Decompose(root world.Transform, prof *profile.Profile, segs []PathSegment) []Instance {
	out := make([]Instance, 0, len(segs))

	var offset mgl64.Vec3
	heading := mgl64.Ident3()
	start := root

	for _, seg := range segs {
		if seg.Vacuous() {
			continue
		}

		if seg.Curved {
			offset = advanceCurve(offset, heading, seg)
			heading = mgl64.Rotate3DY(seg.Angle).Mul3(heading)
		} else {
			offset = offset.Add(heading.Mul3x1(world.Forward).Mul(seg.Length))
			offset[1] += seg.ElevationDelta
		}

		end := world.Transform{
			Location: world.Location{
				TileX:    root.TileX,
				TileZ:    root.TileZ,
				Position: root.Position.Add(root.Orientation.Mul3x1(offset)),
			}.Normalize(),
			Orientation: root.Orientation.Mul3(heading),
		}

		out = append(out, Instance{
			Segment: seg,
			Profile: prof,
			Start:   start,
			End:     end,
		})
		start = end
	}
	return out
}

// advanceCurve rotates the running offset about the arc centre, which
// lies Radius to the side the curve turns toward.
func advanceCurve(offset mgl64.Vec3, heading mgl64.Mat3, seg PathSegment) mgl64.Vec3 {
	side := 1.0
	if seg.Angle < 0 {
		side = -1
	}
	right := heading.Mul3x1(mgl64.Vec3{1, 0, 0})
	center := offset.Add(right.Mul(side * seg.Radius))
	rel := offset.Sub(center)
	return center.Add(mgl64.Rotate3DY(seg.Angle).Mul3x1(rel))
}
