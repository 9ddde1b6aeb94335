// Package picking casts rays from the screen into the world and finds
// the track mesh they hit.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dyntrack/internal/track/mesh"
	"github.com/Faultbox/dyntrack/pkg/math"
)

// Ray is a half line in the frame of one tile centre.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // unit
}

// ScreenToRay converts pixel coordinates to a ray. viewProj is the
// view-projection matrix the frame was drawn with.
func ScreenToRay(screenX, screenY float64, viewportW, viewportH int, viewProj math.Mat4) (Ray, bool) {
	var m mgl64.Mat4
	for i, v := range viewProj {
		m[i] = float64(v)
	}
	if gomath.Abs(m.Det()) < 1e-12 || viewportW <= 0 || viewportH <= 0 {
		return Ray{}, false
	}
	inv := m.Inv()

	ndcX := 2*screenX/float64(viewportW) - 1
	ndcY := 1 - 2*screenY/float64(viewportH)

	near := mgl64.TransformCoordinate(mgl64.Vec3{ndcX, ndcY, -1}, inv)
	far := mgl64.TransformCoordinate(mgl64.Vec3{ndcX, ndcY, 1}, inv)
	dir := far.Sub(near)
	if dir.Len() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: dir.Normalize()}, true
}

// IntersectSphere returns the distance along the ray to the sphere.
// A ray starting inside the sphere hits at distance 0.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	c := oc.Dot(oc) - radius*radius
	if c <= 0 {
		return 0, true
	}
	b := oc.Dot(r.Direction)
	if b > 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	return -b - gomath.Sqrt(disc), true
}

// Pick returns the index of the nearest mesh whose bounding sphere the
// ray hits, or -1. The ray is in the frame of tile (tileX, tileZ).
func Pick(r Ray, meshes []*mesh.BuiltMesh, tileX, tileZ int) int {
	best, bestT := -1, gomath.Inf(1)
	for i, m := range meshes {
		t, ok := r.IntersectSphere(m.Center.RelativeTo(tileX, tileZ), m.ObjectRadius)
		if ok && t < bestT {
			best, bestT = i, t
		}
	}
	return best
}
