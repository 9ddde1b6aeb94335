// Package formats provides readers for the track definition files: the
// profile document describing a cross-section recipe and the layout
// document placing track objects in the world.
package formats

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Document errors.
var (
	ErrInvalidProfileDocument = errors.New("invalid profile document")
	ErrInvalidLayoutDocument  = errors.New("invalid layout document")
)

// Triple is three floats. In YAML it is a flow sequence; as an XML
// attribute it is space separated, e.g. Position="-0.8 0.3 0".
type Triple [3]float32

// Pair is two floats, encoded like Triple.
type Pair [2]float32

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (t *Triple) UnmarshalXMLAttr(attr xml.Attr) error {
	return parseFloats(attr.Name.Local, attr.Value, t[:])
}

// MarshalXMLAttr implements xml.MarshalerAttr.
func (t Triple) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: formatFloats(t[:])}, nil
}

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (p *Pair) UnmarshalXMLAttr(attr xml.Attr) error {
	return parseFloats(attr.Name.Local, attr.Value, p[:])
}

// MarshalXMLAttr implements xml.MarshalerAttr.
func (p Pair) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: formatFloats(p[:])}, nil
}

func parseFloats(name, s string, dst []float32) error {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != len(dst) {
		return fmt.Errorf("%s: want %d values, got %d: %w", name, len(dst), len(fields), ErrInvalidProfileDocument)
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return fmt.Errorf("%s: %v: %w", name, err, ErrInvalidProfileDocument)
		}
		dst[i] = float32(v)
	}
	return nil
}

func formatFloats(src []float32) string {
	parts := make([]string, len(src))
	for i, v := range src {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(parts, " ")
}
