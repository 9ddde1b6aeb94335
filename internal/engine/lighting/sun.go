// Package lighting provides the directional light of the track scene.
package lighting

import (
	"math"

	gmath "github.com/Faultbox/dyntrack/pkg/math"
)

// Sun is a directional light given by compass angles in degrees.
// Azimuth 0 puts the sun toward +Z and 90 toward +X; elevation is
// measured from the horizon.
type Sun struct {
	Azimuth   float64
	Elevation float64
	Ambient   gmath.Vec3
}

// DefaultSun is a mid-afternoon sun with a cool ambient term.
func DefaultSun() Sun {
	return Sun{
		Azimuth:   225,
		Elevation: 50,
		Ambient:   gmath.Vec3{X: 0.35, Y: 0.35, Z: 0.4},
	}
}

// ToSun returns the unit vector pointing from the ground toward the sun.
func (s Sun) ToSun() gmath.Vec3 {
	az := s.Azimuth * math.Pi / 180
	el := s.Elevation * math.Pi / 180
	return gmath.Vec3{
		X: float32(math.Cos(el) * math.Sin(az)),
		Y: float32(math.Sin(el)),
		Z: float32(math.Cos(el) * math.Cos(az)),
	}
}

// Direction returns the direction the light travels.
func (s Sun) Direction() gmath.Vec3 {
	return s.ToSun().Scale(-1)
}
