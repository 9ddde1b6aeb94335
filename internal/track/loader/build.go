package loader

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/dyntrack/internal/logger"
	"github.com/Faultbox/dyntrack/internal/track/mesh"
	"github.com/Faultbox/dyntrack/internal/track/section"
	"github.com/Faultbox/dyntrack/internal/world"
)

// Built is the result for one object: its decomposed instances and the
// meshes of those that built, in path order.
type Built struct {
	Object    *Object
	Instances []section.Instance
	Meshes    []*mesh.BuiltMesh
}

// End returns where the object's track ends: the end of its last
// instance, or its root when every segment was vacuous.
func (b *Built) End() world.Transform {
	if n := len(b.Instances); n > 0 {
		return b.Instances[n-1].End
	}
	return b.Object.Root
}

// Closed reports whether the track returns to its root, position and
// heading, within eps.
func (b *Built) Closed(eps float64) bool {
	return len(b.Instances) > 0 && b.End().ApproxEqual(b.Object.Root, eps)
}

// Build decomposes every object and builds all instances with at most
// workers concurrent builds. A failed instance is left out of its
// object's meshes and reported in the combined error; it never stops
// other instances. The result is complete even when the error is non-nil.
func Build(objs []Object, workers int, log *zap.Logger) ([]Built, error) {
	log = logger.OrNop(log)
	start := time.Now()

	out := make([]Built, len(objs))
	type job struct{ obj, inst int }
	var jobs []job
	for i := range objs {
		obj := &objs[i]
		insts := section.Decompose(obj.Root, obj.Profile, obj.Segments)
		if skipped := len(obj.Segments) - len(insts); skipped > 0 {
			log.Debug("vacuous segments skipped", zap.Int("object", obj.ID), zap.Int("count", skipped))
		}
		out[i] = Built{Object: obj, Instances: insts}
		for j := range insts {
			jobs = append(jobs, job{i, j})
		}
	}

	meshes := make([]*mesh.BuiltMesh, len(jobs))
	errs := make([]error, len(jobs))

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for k, jb := range jobs {
		g.Go(func() error {
			b := &out[jb.obj]
			m, err := mesh.Build(b.Instances[jb.inst])
			if err != nil {
				errs[k] = fmt.Errorf("object %d segment %d: %w", b.Object.ID, b.Instances[jb.inst].Segment.Index, err)
				return nil
			}
			meshes[k] = m
			return nil
		})
	}
	g.Wait()

	for k, jb := range jobs {
		if meshes[k] != nil {
			out[jb.obj].Meshes = append(out[jb.obj].Meshes, meshes[k])
		}
	}
	err := multierr.Combine(errs...)

	stats := Summarize(out)
	log.Info("track built",
		zap.Int("objects", stats.Objects),
		zap.Int("instances", stats.Instances),
		zap.Int("meshes", stats.Meshes),
		zap.Int("vertices", stats.Vertices),
		zap.Int("indices", stats.Indices),
		zap.Int("failed", len(multierr.Errors(err))),
		zap.Duration("elapsed", time.Since(start)))
	return out, err
}

// Meshes flattens the built meshes of every object.
func Meshes(built []Built) []*mesh.BuiltMesh {
	var out []*mesh.BuiltMesh
	for i := range built {
		out = append(out, built[i].Meshes...)
	}
	return out
}

// Stats summarises a build.
type Stats struct {
	Objects    int
	Instances  int
	Meshes     int
	Sections   int
	Primitives int
	Vertices   int
	Indices    int
}

// Summarize totals the built meshes.
func Summarize(built []Built) Stats {
	s := Stats{Objects: len(built)}
	for i := range built {
		s.Instances += len(built[i].Instances)
		for _, m := range built[i].Meshes {
			s.Meshes++
			s.Sections += m.Sections
			s.Primitives += len(m.Primitives)
			s.Vertices += m.VertexCount()
			s.Indices += m.IndexCount()
		}
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("%d objects, %d instances, %d meshes, %d sections, %d primitives, %d vertices, %d indices",
		s.Objects, s.Instances, s.Meshes, s.Sections, s.Primitives, s.Vertices, s.Indices)
}
