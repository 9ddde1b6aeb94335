package picking

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dyntrack/internal/track/mesh"
	"github.com/Faultbox/dyntrack/internal/world"
	"github.com/Faultbox/dyntrack/pkg/math"
)

func TestIntersectSphere(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, 0, 0}, Direction: mgl64.Vec3{0, 0, 1}}

	tests := []struct {
		name   string
		center mgl64.Vec3
		radius float64
		hit    bool
		dist   float64
	}{
		{"ahead", mgl64.Vec3{0, 0, 10}, 2, true, 8},
		{"behind", mgl64.Vec3{0, 0, -10}, 2, false, 0},
		{"beside", mgl64.Vec3{5, 0, 10}, 2, false, 0},
		{"inside", mgl64.Vec3{0, 0, 1}, 2, true, 0},
		{"grazing", mgl64.Vec3{2, 0, 10}, 2, true, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := r.IntersectSphere(tt.center, tt.radius)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && gomath.Abs(d-tt.dist) > 1e-9 {
				t.Errorf("distance = %v, want %v", d, tt.dist)
			}
		})
	}
}

func TestScreenToRayCentre(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: -10}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(1, 1, 0.5, 100)

	r, ok := ScreenToRay(50, 50, 100, 100, proj.Mul(view))
	if !ok {
		t.Fatal("no ray")
	}
	if r.Direction.Sub(mgl64.Vec3{0, 0, 1}).Len() > 1e-4 {
		t.Errorf("direction = %v, want +Z", r.Direction)
	}
	if gomath.Abs(r.Origin[0]) > 1e-4 || gomath.Abs(r.Origin[1]) > 1e-4 {
		t.Errorf("origin = %v, want on the Z axis", r.Origin)
	}
}

func TestScreenToRaySingular(t *testing.T) {
	if _, ok := ScreenToRay(0, 0, 100, 100, math.Mat4{}); ok {
		t.Error("singular matrix produced a ray")
	}
	if _, ok := ScreenToRay(0, 0, 0, 100, math.Identity()); ok {
		t.Error("empty viewport produced a ray")
	}
}

func TestPickNearest(t *testing.T) {
	at := func(tileZ int, z, radius float64) *mesh.BuiltMesh {
		return &mesh.BuiltMesh{
			Center:       world.Location{TileZ: tileZ, Position: mgl64.Vec3{0, 0, z}},
			ObjectRadius: radius,
		}
	}
	meshes := []*mesh.BuiltMesh{
		at(0, 100, 5),
		at(0, 20, 5),
		at(0, -20, 5),
		at(1, -2048+10, 1), // z = 10 relative to tile 0
	}
	r := Ray{Direction: mgl64.Vec3{0, 0, 1}}

	if got := Pick(r, meshes, 0, 0); got != 3 {
		t.Errorf("Pick = %d, want 3", got)
	}
	if got := Pick(r, meshes[:3], 0, 0); got != 1 {
		t.Errorf("Pick = %d, want 1", got)
	}
	if got := Pick(Ray{Direction: mgl64.Vec3{1, 0, 0}}, meshes, 0, 0); got != -1 {
		t.Errorf("Pick = %d, want -1", got)
	}
}
