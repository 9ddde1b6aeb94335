// Package viewer implements the interactive track viewer loop.
package viewer

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/dyntrack/internal/config"
	"github.com/Faultbox/dyntrack/internal/engine/camera"
	"github.com/Faultbox/dyntrack/internal/engine/lighting"
	"github.com/Faultbox/dyntrack/internal/engine/picking"
	"github.com/Faultbox/dyntrack/internal/engine/renderer"
	"github.com/Faultbox/dyntrack/internal/engine/screenshot"
	"github.com/Faultbox/dyntrack/internal/engine/window"
	"github.com/Faultbox/dyntrack/internal/logger"
	"github.com/Faultbox/dyntrack/internal/track/lod"
	"github.com/Faultbox/dyntrack/internal/track/mesh"
)

const (
	nearPlane = 0.5
	farPlane  = 10000
	// biasStep is the LOD bias change per key press, in percent.
	biasStep = 10
)

// Viewer shows a set of built track meshes.
type Viewer struct {
	cfg      *config.Config
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	camera   *camera.OrbitCamera
	lens     camera.Lens

	meshes     []*mesh.BuiltMesh
	tileX      int
	tileZ      int
	selections []lod.Selection
	frame      camera.Frame

	shots   *screenshot.Saver
	capture bool
}

// New opens the window and uploads meshes.
func New(cfg *config.Config, meshes []*mesh.BuiltMesh, log *zap.Logger) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		log:    logger.OrNop(log),
		camera: camera.NewOrbitCamera(),
		meshes: meshes,
		lens: camera.Lens{
			FovY:            cfg.Graphics.FOVDegrees * gomath.Pi / 180,
			Aspect:          float64(cfg.Graphics.Width) / float64(cfg.Graphics.Height),
			Near:            nearPlane,
			Far:             farPlane,
			ViewingDistance: cfg.Track.ViewingDistance,
			LODBias:         cfg.Track.LODBias,
		},
		selections: make([]lod.Selection, 0, len(meshes)),
		shots:      screenshot.NewSaver("screenshots", "dyntrack"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "dyntrack",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, v.log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window created.
	width, height := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		TextureDir: cfg.Track.TextureDir,
	}, v.log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.resize(width, height)
	v.renderer.SetSun(sunFromConfig(cfg.Graphics))

	for _, m := range meshes {
		v.renderer.Upload(m)
	}
	v.fit()

	v.log.Info("viewer initialized", zap.Int("meshes", len(meshes)))
	return v, nil
}

// Run runs the frame loop until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	drawn := 0
	fpsTimer := time.Now()

	for v.running {
		v.handleEvents()

		// Reused across frames; a local would escape through lod.Viewer.
		v.frame = v.camera.Frame(v.tileX, v.tileZ, v.lens)
		v.selections = lod.SelectAll(&v.frame, v.meshes, v.selections[:0])

		v.renderer.Begin()
		v.renderer.Draw(&v.frame, v.selections)
		if v.capture {
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		drawn += len(v.selections)
		if since := time.Since(fpsTimer); since >= time.Second {
			fps := float64(frameCount) / since.Seconds()
			v.window.SetTitle(fmt.Sprintf("dyntrack - %.0f fps - %d/%d segments - bias %+.0f%%",
				fps, len(v.selections), len(v.meshes), v.lens.LODBias))
			v.log.Debug("frame stats",
				zap.Float64("fps", fps),
				zap.Int("avg_drawn", drawn/frameCount))
			frameCount, drawn = 0, 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, ev := range v.window.PollEvents() {
		switch ev.Type {
		case window.EventQuit:
			v.running = false
		case window.EventResize:
			v.resize(ev.Width, ev.Height)
		case window.EventDrag:
			if ev.Pan {
				v.camera.HandleMovement(ev.DY*0.1, -ev.DX*0.1, 0)
			} else {
				v.camera.HandleDrag(ev.DX, ev.DY)
			}
		case window.EventZoom:
			v.camera.HandleZoom(ev.DY)
		case window.EventKeyDown:
			v.handleKey(ev.Key)
		case window.EventClick:
			v.pick(ev.X, ev.Y)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Keycode) {
	switch key {
	case sdl.K_ESCAPE:
		v.running = false
	case sdl.K_w:
		v.camera.HandleMovement(1, 0, 0)
	case sdl.K_s:
		v.camera.HandleMovement(-1, 0, 0)
	case sdl.K_a:
		v.camera.HandleMovement(0, -1, 0)
	case sdl.K_d:
		v.camera.HandleMovement(0, 1, 0)
	case sdl.K_f:
		v.fit()
	case sdl.K_F12:
		v.capture = true
	case sdl.K_RIGHTBRACKET:
		v.lens.LODBias += biasStep
	case sdl.K_LEFTBRACKET:
		if v.lens.LODBias-biasStep > -100 {
			v.lens.LODBias -= biasStep
		}
	}
}

// pick logs the track segment under the cursor and orbits around it.
func (v *Viewer) pick(x, y int) {
	w, h := v.window.PointSize()
	ray, ok := picking.ScreenToRay(float64(x)+0.5, float64(y)+0.5, w, h, v.frame.ViewProj)
	if !ok {
		return
	}
	i := picking.Pick(ray, v.meshes, v.tileX, v.tileZ)
	if i < 0 {
		return
	}
	m := v.meshes[i]
	c := m.Center.RelativeTo(v.tileX, v.tileZ)
	v.camera.SetCenter(float32(c[0]), float32(c[1]), float32(c[2]))
	v.log.Info("segment picked",
		zap.Int("mesh", i),
		zap.Int("tile_x", m.Center.TileX),
		zap.Int("tile_z", m.Center.TileZ),
		zap.Float64("radius", m.ObjectRadius),
		zap.Int("sections", m.Sections),
		zap.Int("levels", len(m.Levels)),
		zap.Int("vertices", m.VertexCount()))
}

func sunFromConfig(g config.GraphicsConfig) lighting.Sun {
	sun := lighting.DefaultSun()
	sun.Azimuth = g.SunAzimuth
	sun.Elevation = g.SunElevation
	return sun
}

func (v *Viewer) saveScreenshot() {
	v.capture = false
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.SavePixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.renderer.Resize(width, height)
	v.lens.Aspect = float64(width) / float64(height)
}

// fit frames every mesh, anchoring the camera on the first mesh's tile.
func (v *Viewer) fit() {
	if len(v.meshes) == 0 {
		return
	}
	v.tileX = v.meshes[0].Center.TileX
	v.tileZ = v.meshes[0].Center.TileZ
	center, radius := Bounds(v.meshes, v.tileX, v.tileZ)
	v.camera.FitToSphere(center, radius)
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
