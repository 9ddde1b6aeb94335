package viewer

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dyntrack/internal/track/mesh"
	"github.com/Faultbox/dyntrack/internal/world"
	"github.com/Faultbox/dyntrack/pkg/math"
)

func builtAt(tileX, tileZ int, pos mgl64.Vec3, radius float64) *mesh.BuiltMesh {
	return &mesh.BuiltMesh{
		Center:       world.Location{TileX: tileX, TileZ: tileZ, Position: pos},
		ObjectRadius: radius,
	}
}

func TestBounds_Empty(t *testing.T) {
	c, r := Bounds(nil, 0, 0)
	if c != (math.Vec3{}) || r != 0 {
		t.Errorf("empty: got %v %v", c, r)
	}
}

func TestBounds_Single(t *testing.T) {
	c, r := Bounds([]*mesh.BuiltMesh{builtAt(0, 0, mgl64.Vec3{10, 0, 20}, 5)}, 0, 0)
	if c != (math.Vec3{X: 10, Z: 20}) || r != 5 {
		t.Errorf("single: got %v %v", c, r)
	}
}

func TestBounds_AcrossTiles(t *testing.T) {
	meshes := []*mesh.BuiltMesh{
		builtAt(0, 0, mgl64.Vec3{1000, 0, 0}, 10),
		// 1048 m further along +X, on the next tile.
		builtAt(1, 0, mgl64.Vec3{0, 0, 0}, 10),
	}
	c, r := Bounds(meshes, 0, 0)
	if gomath.Abs(float64(c.X)-1524) > 1e-3 || c.Z != 0 {
		t.Errorf("center: got %v", c)
	}
	if gomath.Abs(float64(r)-534) > 1e-3 {
		t.Errorf("radius: got %v, want 534", r)
	}
	for _, m := range meshes {
		d := m.Center.RelativeTo(0, 0).Sub(mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z)}).Len()
		if d+m.ObjectRadius > float64(r)+1e-3 {
			t.Errorf("mesh at %v not enclosed", m.Center)
		}
	}
}
