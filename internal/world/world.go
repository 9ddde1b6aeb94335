// Package world provides tile-based world coordinates for placing track.
//
// A world location is a coarse tile index plus a position local to the
// centre of that tile. Keeping the local part small preserves float
// precision for vertex data that is later narrowed to float32.
// Y is up; a heading of +Z is "forward".
package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TileSize is the edge length of one world tile in metres.
const TileSize = 2048.0

// Forward is the local heading of an unrotated transform.
var Forward = mgl64.Vec3{0, 0, 1}

// Location is a position in the world.
type Location struct {
	TileX, TileZ int
	Position     mgl64.Vec3 // relative to the tile centre
}

// Normalize moves the tile index so the local position lies within
// half a tile of the tile centre.
func (l Location) Normalize() Location {
	dx := math.Floor((l.Position[0] + TileSize/2) / TileSize)
	dz := math.Floor((l.Position[2] + TileSize/2) / TileSize)
	if dx == 0 && dz == 0 {
		return l
	}
	l.TileX += int(dx)
	l.TileZ += int(dz)
	l.Position[0] -= dx * TileSize
	l.Position[2] -= dz * TileSize
	return l
}

// RelativeTo expresses the location in the frame of the given tile centre.
func (l Location) RelativeTo(tileX, tileZ int) mgl64.Vec3 {
	return mgl64.Vec3{
		l.Position[0] + float64(l.TileX-tileX)*TileSize,
		l.Position[1],
		l.Position[2] + float64(l.TileZ-tileZ)*TileSize,
	}
}

// Sub returns the vector from other to l.
func (l Location) Sub(other Location) mgl64.Vec3 {
	return l.RelativeTo(other.TileX, other.TileZ).Sub(other.Position)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Location) Location {
	half := b.Sub(a).Mul(0.5)
	return Location{
		TileX:    a.TileX,
		TileZ:    a.TileZ,
		Position: a.Position.Add(half),
	}.Normalize()
}

// Transform places an object in the world. Orientation is always a pure
// rotation; translation lives in Location.
type Transform struct {
	Location
	Orientation mgl64.Mat3
}

// NewTransform builds a transform at loc rotated by yaw (about +Y) and
// then pitch (about +X), both in radians.
func NewTransform(loc Location, yaw, pitch float64) Transform {
	return Transform{
		Location:    loc,
		Orientation: mgl64.Rotate3DY(yaw).Mul3(mgl64.Rotate3DX(pitch)),
	}
}

// Identity returns an unrotated transform at loc.
func Identity(loc Location) Transform {
	return Transform{Location: loc, Orientation: mgl64.Ident3()}
}

// Heading returns the world direction of local forward.
func (t Transform) Heading() mgl64.Vec3 {
	return t.Orientation.Mul3x1(Forward)
}

// Matrix returns the model matrix of the transform relative to the
// centre of tile (tileX, tileZ).
func (t Transform) Matrix(tileX, tileZ int) mgl64.Mat4 {
	m := t.Orientation.Mat4()
	p := t.RelativeTo(tileX, tileZ)
	m.SetCol(3, mgl64.Vec4{p[0], p[1], p[2], 1})
	return m
}

// ApproxEqual reports whether both transforms describe the same
// placement within eps.
func (t Transform) ApproxEqual(other Transform, eps float64) bool {
	if !t.Orientation.ApproxEqualThreshold(other.Orientation, eps) {
		return false
	}
	return t.Sub(other.Location).Len() <= eps
}
