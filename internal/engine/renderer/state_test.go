package renderer

import (
	"testing"

	"github.com/Faultbox/dyntrack/internal/track/profile"
)

func TestResolveState(t *testing.T) {
	tests := []struct {
		name      string
		mat       profile.Material
		blend     blendMode
		lit       bool
		threshold float32
		bright    float32
	}{
		{"opaque", profile.Material{}, blendNone, true, 0, 1},
		{"alpha tested", profile.Material{AlphaTest: true}, blendNone, true, alphaRef, 1},
		{"blended dark", profile.Material{Shader: profile.ShaderBlendATexDiff, Lighting: profile.LightingDarkShade}, blendAlpha, true, 0, 0.5},
		{"additive", profile.Material{Shader: profile.ShaderAddATex, Lighting: profile.LightingFullBright}, blendAdditive, false, 0, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := resolveState(tt.mat)
			if st.blend != tt.blend {
				t.Errorf("blend: got %v, want %v", st.blend, tt.blend)
			}
			if st.lit != tt.lit {
				t.Errorf("lit: got %v, want %v", st.lit, tt.lit)
			}
			if st.alphaThreshold() != tt.threshold {
				t.Errorf("alpha threshold: got %v, want %v", st.alphaThreshold(), tt.threshold)
			}
			if st.brightness != tt.bright {
				t.Errorf("brightness: got %v, want %v", st.brightness, tt.bright)
			}
		})
	}
}

func TestResolveState_DefaultProfile(t *testing.T) {
	// Every built-in material resolves to an opaque lit state.
	for _, lvl := range profile.Default().Levels {
		for _, item := range lvl.Items {
			st := resolveState(item.Material)
			if st.blend != blendNone || !st.lit {
				t.Errorf("%s: got %+v", item.Name, st)
			}
		}
	}
}

func TestResolveState_BlendMatchesMaterial(t *testing.T) {
	for _, k := range []profile.ShaderKind{profile.ShaderTexDiff, profile.ShaderBlendATexDiff, profile.ShaderAddATex} {
		m := profile.Material{Shader: k}
		if got := resolveState(m).blend != blendNone; got != m.Blended() {
			t.Errorf("%v: blended state %v, material says %v", k, got, m.Blended())
		}
	}
}
