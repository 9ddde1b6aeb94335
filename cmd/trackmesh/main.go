// trackmesh is a CLI utility for inspecting track profiles and layouts
// and the meshes generated from them.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dyntrack/internal/logger"
	"github.com/Faultbox/dyntrack/internal/track/loader"
	"github.com/Faultbox/dyntrack/internal/track/mesh"
	"github.com/Faultbox/dyntrack/internal/track/profile"
	"github.com/Faultbox/dyntrack/internal/track/section"
	"github.com/Faultbox/dyntrack/internal/world"
	"github.com/Faultbox/dyntrack/pkg/formats"
)

// closeTolerance is how near, in metres and rotation terms, a track's
// end must come to its root to count as a closed loop.
const closeTolerance = 1e-3

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "profile", "info":
		cmdProfile(args)
	case "export":
		cmdExport(args)
	case "sections":
		cmdSections(args)
	case "build":
		cmdBuild(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`trackmesh - dynamic track mesh utility

Usage:
  trackmesh <command> [options]

Commands:
  profile [file]                        Show a profile (built-in when omitted)
  export [-xml] [file]                  Print a profile as YAML or XML
  sections [-profile f] -radius R -angle A
                                        Show curve tessellation for a profile
  build [-workers n] [-v] <layout.yaml> Build a layout and print mesh statistics

Examples:
  trackmesh profile profiles/mainline.xml
  trackmesh export -xml > builtin.xml
  trackmesh sections -radius 400 -angle 30
  trackmesh build -workers 4 yard.yaml`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// openProfile loads path strictly; the CLI reports errors instead of
// falling back.
func openProfile(path string) *profile.Profile {
	if path == "" {
		return profile.Default()
	}
	doc, err := formats.LoadProfileDocument(path)
	if err != nil {
		fail("%v", err)
	}
	p, err := loader.ProfileFromDocument(doc)
	if err != nil {
		fail("%s: %v", path, err)
	}
	return p
}

func cmdProfile(args []string) {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	fs.Parse(args)

	p := openProfile(fs.Arg(0))

	name := p.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("Profile:       %s\n", name)
	fmt.Printf("LOD method:    %s\n", p.LODMethod)
	fmt.Printf("Chord span:    %g deg\n", p.ChordSpan)
	if p.PitchControl != profile.PitchNone {
		fmt.Printf("Pitch control: %s (%g m)\n", p.PitchControl, p.PitchControlScalar)
	} else {
		fmt.Printf("Pitch control: %s\n", p.PitchControl)
	}
	fmt.Printf("Primitives:    %d\n", p.Primitives())
	fmt.Println()

	for i, lvl := range p.Levels {
		fmt.Printf("Level %d  cutoff %g m\n", i, lvl.CutoffRadius)
		for _, item := range lvl.Items {
			m := item.Material
			fmt.Printf("  %-14s %-22s %s/%s  polylines %d  vertices %d  segments %d\n",
				item.Name, m.Texture, m.Shader, m.Lighting,
				len(item.Polylines), item.VertexCount, item.SegmentCount)
		}
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	asXML := fs.Bool("xml", false, "Write XML instead of YAML")
	fs.Parse(args)

	doc := loader.DocumentFromProfile(openProfile(fs.Arg(0)))
	var (
		out []byte
		err error
	)
	if *asXML {
		out, err = doc.EncodeXML()
	} else {
		out, err = doc.EncodeYAML()
	}
	if err != nil {
		fail("%v", err)
	}
	os.Stdout.Write(out)
}

func cmdSections(args []string) {
	fs := flag.NewFlagSet("sections", flag.ExitOnError)
	path := fs.String("profile", "", "Profile file (built-in when empty)")
	radius := fs.Float64("radius", 0, "Curve radius in metres")
	angle := fs.Float64("angle", 0, "Curve angle in degrees")
	length := fs.Float64("length", 0, "Straight length in metres (when no radius)")
	fs.Parse(args)

	p := openProfile(*path)

	seg := section.PathSegment{Length: *length}
	if *radius > 0 {
		seg = section.PathSegment{Curved: true, Radius: *radius, Angle: *angle * math.Pi / 180}
	}
	if seg.Vacuous() {
		fail("segment has no extent; give -length or -radius and -angle")
	}

	n := mesh.SectionCount(seg, p)
	fmt.Printf("Sections:      %d\n", n)
	fmt.Printf("Object radius: %.3f m\n", mesh.ObjectRadius(seg))
	if seg.Curved {
		fmt.Printf("Step:          %.4f deg\n", *angle/float64(n))
		fmt.Printf("Chord:         %.4f m\n", mesh.ChordLength(seg.Radius, seg.Angle, n))
		fmt.Printf("Sagitta:       %.4f m\n", mesh.Sagitta(seg.Radius, seg.Angle, n))
	} else {
		fmt.Printf("Step:          %.4f m\n", seg.Length/float64(n))
	}

	inst := section.Decompose(world.Identity(world.Location{}), p, []section.PathSegment{seg})
	m, err := mesh.Build(inst[0])
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Vertices:      %d\n", m.VertexCount())
	fmt.Printf("Indices:       %d\n", m.IndexCount())
}

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	workers := fs.Int("workers", 0, "Concurrent builds (0 = one per CPU)")
	profilePath := fs.String("profile", "", "Profile for objects that name none")
	verbose := fs.Bool("v", false, "Log progress to stderr")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trackmesh build [-workers n] [-profile f] [-v] <layout.yaml>")
		os.Exit(1)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.Setup(logger.Options{Level: level, Console: os.Stderr}); err != nil {
		fail("%v", err)
	}
	defer logger.Sync()
	log := logger.Named("build")

	path := fs.Arg(0)
	doc, err := formats.LoadLayout(path)
	if err != nil {
		fail("%v", err)
	}
	fallback := loader.LoadProfile(*profilePath, log)
	profiles := loader.LoadProfiles(doc, filepath.Dir(path), fallback, log)
	objs, err := loader.ObjectsFromLayout(doc, profiles)
	if err != nil {
		fail("%v", err)
	}

	built, buildErr := loader.Build(objs, *workers, log)
	for i := range built {
		b := &built[i]
		s := loader.Summarize(built[i : i+1])
		fmt.Printf("object %-6d %3d/%-3d segments  %6d sections  %8d vertices  %8d indices\n",
			b.Object.ID, s.Meshes, s.Instances, s.Sections, s.Vertices, s.Indices)

		end := b.End()
		h := end.Heading()
		shape := "open"
		if b.Closed(closeTolerance) {
			shape = "closed"
		}
		fmt.Printf("       ends tile (%d, %d) at (%.2f, %.2f, %.2f) heading %.1f°, %s\n",
			end.TileX, end.TileZ, end.Position[0], end.Position[1], end.Position[2],
			mgl64.RadToDeg(math.Atan2(h[0], h[2])), shape)
	}
	fmt.Println()
	fmt.Printf("Total: %s\n", loader.Summarize(built))

	if buildErr != nil {
		fail("%v", buildErr)
	}
}
