package loader

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dyntrack/internal/track/profile"
	"github.com/Faultbox/dyntrack/internal/track/section"
	"github.com/Faultbox/dyntrack/internal/world"
	"github.com/Faultbox/dyntrack/pkg/formats"
)

// ErrUnknownProfile is returned when a layout object names a profile
// the layout does not declare.
var ErrUnknownProfile = errors.New("unknown profile")

// Object is one placed dynamic track object.
type Object struct {
	ID       int
	Root     world.Transform
	Segments []section.PathSegment
	Profile  *profile.Profile
}

// ObjectsFromLayout converts layout objects, resolving profile names
// through profiles. An empty name selects profiles[""].
func ObjectsFromLayout(doc *formats.LayoutDocument, profiles map[string]*profile.Profile) ([]Object, error) {
	out := make([]Object, 0, len(doc.Objects))
	for _, lo := range doc.Objects {
		prof, ok := profiles[lo.Profile]
		if !ok || prof == nil {
			return nil, fmt.Errorf("object %d profile %q: %w", lo.ID, lo.Profile, ErrUnknownProfile)
		}
		loc := world.Location{
			TileX:    lo.Tile[0],
			TileZ:    lo.Tile[1],
			Position: mgl64.Vec3(lo.Position),
		}.Normalize()

		obj := Object{
			ID:       lo.ID,
			Root:     world.NewTransform(loc, mgl64.DegToRad(lo.Yaw), mgl64.DegToRad(lo.Pitch)),
			Segments: make([]section.PathSegment, len(lo.Segments)),
			Profile:  prof,
		}
		for i, ls := range lo.Segments {
			obj.Segments[i] = segmentFromLayout(ls, i)
		}
		out = append(out, obj)
	}
	return out, nil
}

func segmentFromLayout(ls formats.LayoutSegment, pos int) section.PathSegment {
	seg := section.PathSegment{
		Curved:         ls.Kind == formats.SegmentCurve,
		Length:         ls.Length,
		Angle:          mgl64.DegToRad(ls.Angle),
		Radius:         ls.Radius,
		ElevationDelta: ls.Elevation,
		Index:          pos,
	}
	if ls.Index != nil {
		seg.Index = *ls.Index
	}
	if seg.Curved {
		seg.Length = 0
	} else {
		seg.Angle = 0
	}
	return seg
}
