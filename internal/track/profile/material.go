package profile

import "fmt"

// ShaderKind is the blend/shading variant of a material.
type ShaderKind int

const (
	ShaderTexDiff       ShaderKind = iota // opaque, diffuse lit
	ShaderBlendATexDiff                   // alpha blended, diffuse lit
	ShaderAddATex                         // additive alpha, unlit
)

func (k ShaderKind) String() string {
	switch k {
	case ShaderTexDiff:
		return "TexDiff"
	case ShaderBlendATexDiff:
		return "BlendATexDiff"
	case ShaderAddATex:
		return "AddATex"
	default:
		return fmt.Sprintf("ShaderKind(%d)", int(k))
	}
}

// LightingKind scales how a material reacts to scene lighting.
type LightingKind int

const (
	LightingNormal LightingKind = iota
	LightingDarkShade
	LightingHalfBright
	LightingFullBright
	LightingCruciform
)

func (k LightingKind) String() string {
	switch k {
	case LightingNormal:
		return "Normal"
	case LightingDarkShade:
		return "DarkShade"
	case LightingHalfBright:
		return "HalfBright"
	case LightingFullBright:
		return "FullBright"
	case LightingCruciform:
		return "Cruciform"
	default:
		return fmt.Sprintf("LightingKind(%d)", int(k))
	}
}

// Material is the resolved render binding of a detail item.
type Material struct {
	Texture    string
	Shader     ShaderKind
	Lighting   LightingKind
	AlphaTest  bool
	MipMapBias float32
}

// Blended reports whether the material needs alpha blending.
func (m Material) Blended() bool {
	return m.Shader != ShaderTexDiff
}

// Brightness returns the diffuse multiplier for the lighting variant.
func (m Material) Brightness() float32 {
	switch m.Lighting {
	case LightingDarkShade:
		return 0.5
	case LightingHalfBright:
		return 0.75
	case LightingFullBright:
		return 1.5
	default:
		return 1
	}
}

var shaderNames = map[string]ShaderKind{
	"":              ShaderTexDiff,
	"TexDiff":       ShaderTexDiff,
	"BlendATexDiff": ShaderBlendATexDiff,
	"AddATex":       ShaderAddATex,
}

var lightingNames = map[string]LightingKind{
	"":              LightingNormal,
	"Normal":        LightingNormal,
	"DarkShade":     LightingDarkShade,
	"OptHalfBright": LightingHalfBright,
	"HalfBright":    LightingHalfBright,
	"OptFullBright": LightingFullBright,
	"FullBright":    LightingFullBright,
	"Cruciform":     LightingCruciform,
	"CruciformLong": LightingCruciform,
}

// ResolveMaterial turns the option names of a profile document into a
// Material. alphaTest follows the file convention: 0 off, 1 on.
func ResolveMaterial(texture, shader, lighting string, alphaTest int, mipMapBias float32) (Material, error) {
	sk, ok := shaderNames[shader]
	if !ok {
		return Material{}, fmt.Errorf("shader %q: %w", shader, ErrUnknownOption)
	}
	lk, ok := lightingNames[lighting]
	if !ok {
		return Material{}, fmt.Errorf("lighting %q: %w", lighting, ErrUnknownOption)
	}
	if alphaTest != 0 && alphaTest != 1 {
		return Material{}, fmt.Errorf("alpha test mode %d: %w", alphaTest, ErrUnknownOption)
	}
	return Material{
		Texture:    texture,
		Shader:     sk,
		Lighting:   lk,
		AlphaTest:  alphaTest == 1,
		MipMapBias: mipMapBias,
	}, nil
}
