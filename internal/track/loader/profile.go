// Package loader turns profile and layout documents into track objects
// and builds their meshes on a bounded worker pool.
package loader

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/dyntrack/internal/logger"
	"github.com/Faultbox/dyntrack/internal/track/profile"
	"github.com/Faultbox/dyntrack/pkg/formats"
)

// ProfileFromDocument resolves the option names of doc and constructs
// the profile.
func ProfileFromDocument(doc *formats.ProfileDocument) (*profile.Profile, error) {
	method, err := profile.ParseLODMethod(doc.LODMethod)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", doc.Name, err)
	}
	pitch, err := profile.ParsePitchControl(doc.PitchControl)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", doc.Name, err)
	}
	params := profile.Params{
		Name:               doc.Name,
		LODMethod:          method,
		ChordSpan:          doc.ChordSpan,
		PitchControl:       pitch,
		PitchControlScalar: doc.PitchControlScalar,
	}

	levels := make([]profile.DetailLevel, len(doc.Levels))
	for i, ld := range doc.Levels {
		lvl := profile.DetailLevel{CutoffRadius: ld.CutoffRadius}
		for _, id := range ld.Items {
			mat, err := profile.ResolveMaterial(id.Texture, id.Shader, id.Lighting, id.AlphaTest, id.MipMapBias)
			if err != nil {
				return nil, fmt.Errorf("profile %q item %q: %w", doc.Name, id.Name, err)
			}
			item := profile.DetailItem{Name: id.Name, Material: mat}
			for _, pd := range id.Polylines {
				pl := profile.Polyline{
					Name:          pd.Name,
					DeltaTexCoord: pd.DeltaTexCoord,
					Vertices:      make([]profile.Vertex, len(pd.Vertices)),
				}
				for k, vd := range pd.Vertices {
					pl.Vertices[k] = profile.Vertex{Position: vd.Position, Normal: vd.Normal, TexCoord: vd.TexCoord}
				}
				item.Polylines = append(item.Polylines, pl)
			}
			lvl.Items = append(lvl.Items, item)
		}
		levels[i] = lvl
	}

	p, err := profile.New(params, levels)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", doc.Name, err)
	}
	return p, nil
}

// DocumentFromProfile is the inverse of ProfileFromDocument.
func DocumentFromProfile(p *profile.Profile) *formats.ProfileDocument {
	doc := &formats.ProfileDocument{
		Name:      p.Name,
		LODMethod: p.LODMethod.String(),
		ChordSpan: p.ChordSpan,
	}
	if p.PitchControl != profile.PitchNone {
		doc.PitchControl = p.PitchControl.String()
		doc.PitchControlScalar = p.PitchControlScalar
	}
	for _, lvl := range p.Levels {
		ld := formats.LevelDocument{CutoffRadius: lvl.CutoffRadius}
		for _, item := range lvl.Items {
			id := formats.ItemDocument{
				Name:       item.Name,
				Texture:    item.Material.Texture,
				Shader:     item.Material.Shader.String(),
				Lighting:   item.Material.Lighting.String(),
				MipMapBias: item.Material.MipMapBias,
			}
			if item.Material.AlphaTest {
				id.AlphaTest = 1
			}
			for _, pl := range item.Polylines {
				pd := formats.PolylineDocument{Name: pl.Name, DeltaTexCoord: pl.DeltaTexCoord}
				for _, v := range pl.Vertices {
					pd.Vertices = append(pd.Vertices, formats.VertexDocument{
						Position: v.Position,
						Normal:   v.Normal,
						TexCoord: v.TexCoord,
					})
				}
				id.Polylines = append(id.Polylines, pd)
			}
			ld.Items = append(ld.Items, id)
		}
		doc.Levels = append(doc.Levels, ld)
	}
	return doc
}

// LoadProfile reads the profile at path. An empty path, an unreadable
// file or an invalid definition all yield the built-in profile; failures
// are logged as warnings.
func LoadProfile(path string, log *zap.Logger) *profile.Profile {
	log = logger.OrNop(log)
	if path == "" {
		log.Debug("no profile configured, using built-in")
		return profile.Default()
	}

	p, err := loadProfile(path)
	if err != nil {
		log.Warn("profile unusable, falling back to built-in",
			zap.String("path", path), zap.Error(err))
		return profile.Default()
	}
	log.Info("profile loaded",
		zap.String("path", path),
		zap.String("name", p.Name),
		zap.Int("levels", len(p.Levels)),
		zap.Int("primitives", p.Primitives()))
	return p
}

func loadProfile(path string) (*profile.Profile, error) {
	doc, err := formats.LoadProfileDocument(path)
	if err != nil {
		return nil, err
	}
	return ProfileFromDocument(doc)
}

// LoadProfiles loads every profile named by a layout. Paths are relative
// to dir. The result always maps "" to fallback.
func LoadProfiles(doc *formats.LayoutDocument, dir string, fallback *profile.Profile, log *zap.Logger) map[string]*profile.Profile {
	out := map[string]*profile.Profile{"": fallback}

	names := make([]string, 0, len(doc.Profiles))
	for name := range doc.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := doc.Profiles[name]
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		out[name] = LoadProfile(path, log)
	}
	return out
}
