package profile

// Standard gauge dimensions of the built-in profile, in metres.
const (
	ballastHalfWidth = 2.5
	ballastTop       = 0.2
	railTop          = 0.325
	railInner        = 0.7175
	railOuter        = 0.7875
)

var (
	up    = [3]float32{0, 1, 0}
	plusX = [3]float32{1, 0, 0}
	minX  = [3]float32{-1, 0, 0}
)

// Default returns the built-in profile used when no profile file is
// given or the configured one fails to load: rail sides, rail tops and a
// ballast strip stacked additively.
func Default() *Profile {
	railSideDelta := [2]float32{0, 0.0744}
	sides := DetailItem{
		Name:     "Railsides",
		Material: Material{Texture: "DynTrackRail.png", Lighting: LightingHalfBright},
	}
	sides.AddPolyline(side("left outer", -railOuter, minX, true, railSideDelta))
	sides.AddPolyline(side("left inner", -railInner, plusX, false, railSideDelta))
	sides.AddPolyline(side("right inner", railInner, minX, true, railSideDelta))
	sides.AddPolyline(side("right outer", railOuter, plusX, false, railSideDelta))

	tops := DetailItem{
		Name:     "Railtops",
		Material: Material{Texture: "DynTrackRail.png", Lighting: LightingFullBright},
	}
	tops.AddPolyline(flat("left", -railOuter, -railInner, railTop, 0.232, 0.133, [2]float32{0, 0.0744}))
	tops.AddPolyline(flat("right", railInner, railOuter, railTop, 0.232, 0.133, [2]float32{0, 0.0744}))

	ballast := DetailItem{
		Name:     "Ballast",
		Material: Material{Texture: "DynTrackBallast.png"},
	}
	ballast.AddPolyline(flat("ballast", -ballastHalfWidth, ballastHalfWidth, ballastTop, -0.153, 0.862, [2]float32{0, 0.2088}))

	p, err := New(Params{
		Name:               "Default",
		LODMethod:          ComponentAdditive,
		ChordSpan:          1,
		PitchControl:       PitchChordLength,
		PitchControlScalar: 10,
	}, []DetailLevel{
		{CutoffRadius: 700, Items: []DetailItem{sides}},
		{CutoffRadius: 1200, Items: []DetailItem{tops}},
		{CutoffRadius: 2000, Items: []DetailItem{ballast}},
	})
	if err != nil {
		panic("default track profile: " + err.Error())
	}
	return p
}

// side is a vertical rail face at x. Faces looking toward +X run top to
// bottom, faces looking toward -X run bottom to top, so the generated
// quads wind toward the normal.
func side(name string, x float32, normal [3]float32, bottomFirst bool, delta [2]float32) Polyline {
	lo := Vertex{Position: [3]float32{x, ballastTop, 0}, Normal: normal, TexCoord: [2]float32{-0.139, 0}}
	hi := Vertex{Position: [3]float32{x, railTop, 0}, Normal: normal, TexCoord: [2]float32{-0.101, 0}}
	if bottomFirst {
		return Polyline{Name: name, DeltaTexCoord: delta, Vertices: []Vertex{lo, hi}}
	}
	return Polyline{Name: name, DeltaTexCoord: delta, Vertices: []Vertex{hi, lo}}
}

// flat is an upward-facing strip from x0 to x1 at height y.
func flat(name string, x0, x1, y, u0, u1 float32, delta [2]float32) Polyline {
	return Polyline{
		Name:          name,
		DeltaTexCoord: delta,
		Vertices: []Vertex{
			{Position: [3]float32{x0, y, 0}, Normal: up, TexCoord: [2]float32{u0, 0}},
			{Position: [3]float32{x1, y, 0}, Normal: up, TexCoord: [2]float32{u1, 0}},
		},
	}
}
