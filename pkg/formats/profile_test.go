package formats

import (
	"errors"
	"strings"
	"testing"
)

const testProfileYAML = `
name: test
lod_method: CompleteReplacement
chord_span: 1
pitch_control: ChordLength
pitch_control_scalar: 10
levels:
  - cutoff_radius: 800
    items:
      - name: rails
        texture: rails.png
        shader: BlendATexDiff
        alpha_test: 1
        polylines:
          - name: top
            delta_texcoord: [0, 0.2]
            vertices:
              - {position: [-0.8, 0.3, 0], normal: [0, 1, 0], texcoord: [0, 0]}
              - {position: [0.8, 0.3, 0], normal: [0, 1, 0], texcoord: [1, 0]}
`

const testProfileXML = `<?xml version="1.0"?>
<TrackProfile Name="test" LODMethod="CompleteReplacement" ChordSpan="1" PitchControl="ChordLength" PitchControlScalar="10">
  <DetailLevel CutoffRadius="800">
    <DetailItem Name="rails" Texture="rails.png" Shader="BlendATexDiff" AlphaTest="1">
      <Polyline Name="top" DeltaTexCoord="0 0.2">
        <Vertex Position="-0.8 0.3 0" Normal="0 1 0" TexCoord="0 0"/>
        <Vertex Position="0.8, 0.3, 0" Normal="0 1 0" TexCoord="1 0"/>
      </Polyline>
    </DetailItem>
  </DetailLevel>
</TrackProfile>`

func checkTestProfile(t *testing.T, doc *ProfileDocument) {
	t.Helper()
	if doc.Name != "test" || doc.LODMethod != "CompleteReplacement" {
		t.Errorf("header: got %q %q", doc.Name, doc.LODMethod)
	}
	if doc.ChordSpan != 1 || doc.PitchControl != "ChordLength" || doc.PitchControlScalar != 10 {
		t.Errorf("params: got %v %q %v", doc.ChordSpan, doc.PitchControl, doc.PitchControlScalar)
	}
	if len(doc.Levels) != 1 || doc.Levels[0].CutoffRadius != 800 {
		t.Fatalf("levels: got %+v", doc.Levels)
	}
	item := doc.Levels[0].Items[0]
	if item.Texture != "rails.png" || item.Shader != "BlendATexDiff" || item.AlphaTest != 1 {
		t.Errorf("item: got %+v", item)
	}
	pl := item.Polylines[0]
	if pl.DeltaTexCoord != (Pair{0, 0.2}) {
		t.Errorf("delta texcoord: got %v", pl.DeltaTexCoord)
	}
	if len(pl.Vertices) != 2 {
		t.Fatalf("vertices: got %d", len(pl.Vertices))
	}
	if pl.Vertices[1].Position != (Triple{0.8, 0.3, 0}) {
		t.Errorf("vertex position: got %v", pl.Vertices[1].Position)
	}
	if pl.Vertices[1].TexCoord != (Pair{1, 0}) {
		t.Errorf("vertex texcoord: got %v", pl.Vertices[1].TexCoord)
	}
}

func TestParseProfile_YAML(t *testing.T) {
	doc, err := ParseProfile([]byte(testProfileYAML))
	if err != nil {
		t.Fatalf("ParseProfile failed: %v", err)
	}
	checkTestProfile(t, doc)
}

func TestParseProfile_XML(t *testing.T) {
	doc, err := ParseProfile([]byte("\n  " + testProfileXML))
	if err != nil {
		t.Fatalf("ParseProfile failed: %v", err)
	}
	checkTestProfile(t, doc)
}

func TestParseProfile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"no levels", "name: x\nchord_span: 1\n"},
		{"level without items", "name: x\nlevels:\n  - cutoff_radius: 10\n"},
		{"item without polylines", "name: x\nlevels:\n  - cutoff_radius: 10\n    items:\n      - name: a\n"},
		{"bad yaml", "name: [unterminated"},
		{"short vector", "name: x\nlevels:\n  - cutoff_radius: 10\n    items:\n      - name: a\n        polylines:\n          - delta_texcoord: [1]\n"},
		{"bad xml", "<TrackProfile><DetailLevel>"},
		{"bad xml vector", `<TrackProfile><DetailLevel CutoffRadius="1"><DetailItem><Polyline DeltaTexCoord="a b"/></DetailItem></DetailLevel></TrackProfile>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.data))
			if !errors.Is(err, ErrInvalidProfileDocument) {
				t.Errorf("expected ErrInvalidProfileDocument, got %v", err)
			}
		})
	}
}

func TestProfileDocument_EncodeRoundTrip(t *testing.T) {
	doc, err := ParseProfileYAML([]byte(testProfileYAML))
	if err != nil {
		t.Fatalf("ParseProfileYAML failed: %v", err)
	}

	y, err := doc.EncodeYAML()
	if err != nil {
		t.Fatalf("EncodeYAML failed: %v", err)
	}
	fromYAML, err := ParseProfile(y)
	if err != nil {
		t.Fatalf("reparse yaml failed: %v\n%s", err, y)
	}
	checkTestProfile(t, fromYAML)

	x, err := doc.EncodeXML()
	if err != nil {
		t.Fatalf("EncodeXML failed: %v", err)
	}
	if !strings.Contains(string(x), `DeltaTexCoord="0 0.2"`) {
		t.Errorf("xml vectors should be space separated:\n%s", x)
	}
	fromXML, err := ParseProfile(x)
	if err != nil {
		t.Fatalf("reparse xml failed: %v\n%s", err, x)
	}
	checkTestProfile(t, fromXML)
}
