package renderer

import "github.com/Faultbox/dyntrack/internal/track/profile"

type blendMode int

const (
	blendNone blendMode = iota
	blendAlpha
	blendAdditive
)

// alphaRef is the alpha test threshold.
const alphaRef = 0.5

// materialState is the GL state of one material, resolved once at upload.
type materialState struct {
	blend      blendMode
	alphaTest  bool
	lit        bool
	brightness float32
}

func resolveState(m profile.Material) materialState {
	st := materialState{
		alphaTest:  m.AlphaTest,
		lit:        true,
		brightness: m.Brightness(),
	}
	if !m.Blended() {
		return st
	}
	st.blend = blendAlpha
	if m.Shader == profile.ShaderAddATex {
		st.blend = blendAdditive
		st.lit = false
	}
	return st
}

func (s materialState) alphaThreshold() float32 {
	if s.alphaTest {
		return alphaRef
	}
	return 0
}
