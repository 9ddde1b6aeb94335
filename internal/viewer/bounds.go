package viewer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dyntrack/internal/track/mesh"
	"github.com/Faultbox/dyntrack/pkg/math"
)

// Bounds returns a sphere enclosing every mesh's bounding sphere, in
// coordinates relative to tile (tileX, tileZ).
func Bounds(meshes []*mesh.BuiltMesh, tileX, tileZ int) (math.Vec3, float32) {
	if len(meshes) == 0 {
		return math.Vec3{}, 0
	}

	lo := mgl64.Vec3{1e300, 1e300, 1e300}
	hi := lo.Mul(-1)
	for _, m := range meshes {
		c := m.Center.RelativeTo(tileX, tileZ)
		r := m.ObjectRadius
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], c[i]-r)
			hi[i] = max(hi[i], c[i]+r)
		}
	}
	center := lo.Add(hi).Mul(0.5)

	radius := 0.0
	for _, m := range meshes {
		d := m.Center.RelativeTo(tileX, tileZ).Sub(center).Len() + m.ObjectRadius
		radius = max(radius, d)
	}
	return math.Vec3{X: float32(center[0]), Y: float32(center[1]), Z: float32(center[2])}, float32(radius)
}
