package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLocationNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Location
		wantTile [2]int
		wantPos  mgl64.Vec3
	}{
		{"inside", Location{Position: mgl64.Vec3{10, 5, -20}}, [2]int{0, 0}, mgl64.Vec3{10, 5, -20}},
		{"east", Location{Position: mgl64.Vec3{1500, 0, 0}}, [2]int{1, 0}, mgl64.Vec3{1500 - TileSize, 0, 0}},
		{"south west", Location{TileX: 3, TileZ: 3, Position: mgl64.Vec3{-3000, 0, -1100}}, [2]int{2, 2}, mgl64.Vec3{-3000 + TileSize, 0, -1100 + TileSize}},
		{"two tiles", Location{Position: mgl64.Vec3{0, 0, 4200}}, [2]int{0, 2}, mgl64.Vec3{0, 0, 4200 - 2*TileSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.TileX != tt.wantTile[0] || got.TileZ != tt.wantTile[1] {
				t.Errorf("tile: got (%d,%d), want %v", got.TileX, got.TileZ, tt.wantTile)
			}
			if !got.Position.ApproxEqualThreshold(tt.wantPos, 1e-9) {
				t.Errorf("position: got %v, want %v", got.Position, tt.wantPos)
			}
			if got.Sub(tt.in).Len() > 1e-9 {
				t.Error("normalize moved the location")
			}
		})
	}
}

func TestMidpointAcrossTiles(t *testing.T) {
	a := Location{TileX: 0, Position: mgl64.Vec3{1000, 0, 0}}
	b := Location{TileX: 1, Position: mgl64.Vec3{-1000, 10, 0}}

	m := Midpoint(a, b)
	if d := m.Sub(a).Len(); math.Abs(d-math.Hypot(24, 5)) > 1e-9 {
		t.Errorf("midpoint distance from a: got %v", d)
	}
	if d1, d2 := m.Sub(a).Len(), b.Sub(m).Len(); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("midpoint not equidistant: %v vs %v", d1, d2)
	}
}

func TestTransformHeading(t *testing.T) {
	tr := NewTransform(Location{}, math.Pi/2, 0)
	h := tr.Heading()
	if !h.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("yaw 90 heading: got %v, want (1,0,0)", h)
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := Identity(Location{TileX: 2, TileZ: -1, Position: mgl64.Vec3{5, 1, 7}})
	m := tr.Matrix(1, -1)
	p := m.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	want := mgl64.Vec4{5 + TileSize, 1, 7, 1}
	if !p.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("origin maps to %v, want %v", p, want)
	}
}

func TestTransformApproxEqual(t *testing.T) {
	a := NewTransform(Location{Position: mgl64.Vec3{1, 2, 3}}, 0.3, 0)
	b := a
	b.Position[0] += 1e-12
	if !a.ApproxEqual(b, 1e-9) {
		t.Error("expected transforms to be equal")
	}
	b.Orientation = mgl64.Rotate3DY(0.31)
	if a.ApproxEqual(b, 1e-9) {
		t.Error("expected different orientation to differ")
	}
}
