package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dyntrack/internal/world"
	"github.com/Faultbox/dyntrack/pkg/math"
)

// Lens holds the projection and culling settings of a frame.
type Lens struct {
	FovY   float64 // radians
	Aspect float64 // width / height
	Near   float64
	Far    float64
	// ViewingDistance limits how far objects are drawn; 0 disables it.
	ViewingDistance float64
	// LODBias scales detail cutoffs in percent; 0 keeps them, 100 doubles them.
	LODBias float64
}

// Frame is the render context of one frame. It is built once per frame
// and passed explicitly to everything that needs the camera.
type Frame struct {
	Location world.Location
	Forward  mgl64.Vec3 // unit
	Lens     Lens

	View       math.Mat4
	Projection math.Mat4
	ViewProj   math.Mat4

	halfAngle float64 // half diagonal field of view
}

// NewFrame builds a frame for a camera at loc looking along forward.
func NewFrame(loc world.Location, forward mgl64.Vec3, view math.Mat4, lens Lens) Frame {
	proj := math.Perspective(float32(lens.FovY), float32(lens.Aspect), float32(lens.Near), float32(lens.Far))
	return Frame{
		Location:   loc,
		Forward:    forward.Normalize(),
		Lens:       lens,
		View:       view,
		Projection: proj,
		ViewProj:   proj.Mul(view),
		halfAngle:  gomath.Atan(gomath.Tan(lens.FovY/2) * gomath.Sqrt(1+lens.Aspect*lens.Aspect)),
	}
}

// Frame returns the render context of the orbit camera. The camera's
// coordinates are taken relative to the centre of tile (tileX, tileZ).
func (c *OrbitCamera) Frame(tileX, tileZ int, lens Lens) Frame {
	pos := c.Position()
	center := c.Center()
	loc := world.Location{
		TileX:    tileX,
		TileZ:    tileZ,
		Position: mgl64.Vec3{float64(pos.X), float64(pos.Y), float64(pos.Z)},
	}
	dir := center.Sub(pos)
	forward := mgl64.Vec3{float64(dir.X), float64(dir.Y), float64(dir.Z)}
	return NewFrame(loc, forward, c.ViewMatrix(), lens)
}

// Relative returns center in the camera's local frame: the vector from
// the camera to center.
func (f *Frame) Relative(center world.Location) mgl64.Vec3 {
	return center.Sub(f.Location)
}

// InRange reports whether an object is within cutoff of the camera,
// measured on the ground plane and widened by its radius and the LOD bias.
func (f *Frame) InRange(center world.Location, objectRadius, cutoff float64) bool {
	d := f.Relative(center)
	r := objectRadius + cutoff*(1+f.Lens.LODBias/100)
	return d[0]*d[0]+d[2]*d[2] < r*r
}

// InFieldOfView reports whether a bounding sphere may be visible: within
// the viewing distance and inside the view cone widened by the sphere.
func (f *Frame) InFieldOfView(center world.Location, objectRadius float64) bool {
	d := f.Relative(center)
	dist := d.Len()
	if dist <= objectRadius {
		return true
	}
	if f.Lens.ViewingDistance > 0 && dist-objectRadius > f.Lens.ViewingDistance {
		return false
	}
	limit := f.halfAngle + gomath.Asin(objectRadius/dist)
	if limit >= gomath.Pi {
		return true
	}
	return d.Dot(f.Forward)/dist >= gomath.Cos(limit)
}
