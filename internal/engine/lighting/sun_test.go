package lighting

import (
	"math"
	"testing"
)

func TestSunToSun(t *testing.T) {
	tests := []struct {
		name               string
		azimuth, elevation float64
		x, y, z            float64
	}{
		{"zenith", 0, 90, 0, 1, 0},
		{"north horizon", 0, 0, 0, 0, 1},
		{"east horizon", 90, 0, 1, 0, 0},
		{"west 45", 270, 45, -math.Sqrt2 / 2, math.Sqrt2 / 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Sun{Azimuth: tt.azimuth, Elevation: tt.elevation}.ToSun()
			if math.Abs(float64(v.X)-tt.x) > 1e-6 || math.Abs(float64(v.Y)-tt.y) > 1e-6 || math.Abs(float64(v.Z)-tt.z) > 1e-6 {
				t.Errorf("got %v, want (%v, %v, %v)", v, tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestSunDirectionPointsDown(t *testing.T) {
	s := DefaultSun()
	d := s.Direction()
	if d.Y >= 0 {
		t.Errorf("light above the horizon should travel downward, got %v", d)
	}
	if math.Abs(float64(d.Length())-1) > 1e-6 {
		t.Errorf("direction should be unit length, got %v", d.Length())
	}
	if d.Add(s.ToSun()).Length() > 1e-6 {
		t.Error("Direction should be the negated ToSun")
	}
}
