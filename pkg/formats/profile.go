package formats

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProfileDocument is the on-disk form of a track profile. Option fields
// are kept as strings; resolving them into profile enums is the loader's job.
type ProfileDocument struct {
	XMLName            xml.Name        `yaml:"-" xml:"TrackProfile"`
	Name               string          `yaml:"name" xml:"Name,attr"`
	LODMethod          string          `yaml:"lod_method,omitempty" xml:"LODMethod,attr,omitempty"`
	ChordSpan          float64         `yaml:"chord_span" xml:"ChordSpan,attr"`
	PitchControl       string          `yaml:"pitch_control,omitempty" xml:"PitchControl,attr,omitempty"`
	PitchControlScalar float64         `yaml:"pitch_control_scalar,omitempty" xml:"PitchControlScalar,attr,omitempty"`
	Levels             []LevelDocument `yaml:"levels" xml:"DetailLevel"`
}

// LevelDocument is one detail level.
type LevelDocument struct {
	CutoffRadius float64        `yaml:"cutoff_radius" xml:"CutoffRadius,attr"`
	Items        []ItemDocument `yaml:"items" xml:"DetailItem"`
}

// ItemDocument is one material-bound detail item.
type ItemDocument struct {
	Name       string             `yaml:"name" xml:"Name,attr"`
	Texture    string             `yaml:"texture" xml:"Texture,attr"`
	Shader     string             `yaml:"shader,omitempty" xml:"Shader,attr,omitempty"`
	Lighting   string             `yaml:"lighting,omitempty" xml:"Lighting,attr,omitempty"`
	AlphaTest  int                `yaml:"alpha_test,omitempty" xml:"AlphaTest,attr,omitempty"`
	MipMapBias float32            `yaml:"mipmap_bias,omitempty" xml:"MipMapBias,attr,omitempty"`
	Polylines  []PolylineDocument `yaml:"polylines" xml:"Polyline"`
}

// PolylineDocument is one cross-section polyline.
type PolylineDocument struct {
	Name          string           `yaml:"name,omitempty" xml:"Name,attr,omitempty"`
	DeltaTexCoord Pair             `yaml:"delta_texcoord,flow" xml:"DeltaTexCoord,attr"`
	Vertices      []VertexDocument `yaml:"vertices" xml:"Vertex"`
}

// VertexDocument is one cross-section vertex.
type VertexDocument struct {
	Position Triple `yaml:"position,flow" xml:"Position,attr"`
	Normal   Triple `yaml:"normal,flow" xml:"Normal,attr"`
	TexCoord Pair   `yaml:"texcoord,flow" xml:"TexCoord,attr"`
}

// ParseProfile parses a profile document, detecting XML by its leading '<'
// and treating anything else as YAML.
func ParseProfile(data []byte) (*ProfileDocument, error) {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return ParseProfileXML(trimmed)
	}
	return ParseProfileYAML(data)
}

// ParseProfileYAML parses a YAML profile document.
func ParseProfileYAML(data []byte) (*ProfileDocument, error) {
	doc := &ProfileDocument{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %v: %w", err, ErrInvalidProfileDocument)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseProfileXML parses an XML profile document.
func ParseProfileXML(data []byte) (*ProfileDocument, error) {
	doc := &ProfileDocument{}
	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing xml: %v: %w", err, ErrInvalidProfileDocument)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadProfileDocument reads and parses a profile document from disk.
func LoadProfileDocument(path string) (*ProfileDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	doc, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// EncodeYAML encodes the document as YAML.
func (d *ProfileDocument) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeXML encodes the document as indented XML.
func (d *ProfileDocument) EncodeXML() ([]byte, error) {
	out, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// validate checks the structure the schema cannot express. Value ranges
// are left to profile.New.
func (d *ProfileDocument) validate() error {
	if len(d.Levels) == 0 {
		return fmt.Errorf("profile %q has no detail levels: %w", d.Name, ErrInvalidProfileDocument)
	}
	for i, lvl := range d.Levels {
		if len(lvl.Items) == 0 {
			return fmt.Errorf("profile %q level %d has no items: %w", d.Name, i, ErrInvalidProfileDocument)
		}
		for _, item := range lvl.Items {
			if len(item.Polylines) == 0 {
				return fmt.Errorf("profile %q item %q has no polylines: %w", d.Name, item.Name, ErrInvalidProfileDocument)
			}
		}
	}
	return nil
}
