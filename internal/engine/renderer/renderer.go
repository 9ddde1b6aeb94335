// Package renderer draws built track meshes with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/dyntrack/internal/engine/camera"
	"github.com/Faultbox/dyntrack/internal/engine/lighting"
	"github.com/Faultbox/dyntrack/internal/engine/shader"
	"github.com/Faultbox/dyntrack/internal/engine/texture"
	"github.com/Faultbox/dyntrack/internal/logger"
	"github.com/Faultbox/dyntrack/internal/track/lod"
	"github.com/Faultbox/dyntrack/internal/track/mesh"
	"github.com/Faultbox/dyntrack/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	TextureDir string
}

// Renderer uploads track meshes once and draws LOD selections of them.
type Renderer struct {
	config   Config
	log      *zap.Logger
	program  *shader.Program
	textures *texture.Cache
	meshes   map[*mesh.BuiltMesh][]gpuPrimitive
	sun      lighting.Sun
}

type gpuPrimitive struct {
	vao, vbo, ebo uint32
	count         int32
	texture       uint32
	state         materialState
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.OrNop(log),
		meshes:   make(map[*mesh.BuiltMesh][]gpuPrimitive),
		sun:      lighting.DefaultSun(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.55, 0.68, 0.8, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewProgram(trackVertexShader, trackFragmentShader, trackUniforms...)
	if err != nil {
		return nil, fmt.Errorf("track shader: %w", err)
	}
	r.textures = texture.NewCache(cfg.TextureDir, r.log.Named("texture"))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for m := range r.meshes {
		r.Release(m)
	}
	r.textures.Close()
	r.program.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Upload copies every primitive of m to the GPU. Uploading the same mesh
// twice is a no-op.
func (r *Renderer) Upload(m *mesh.BuiltMesh) {
	if _, ok := r.meshes[m]; ok {
		return
	}
	prims := make([]gpuPrimitive, len(m.Primitives))
	for i := range m.Primitives {
		p := &m.Primitives[i]
		mat := p.Item.Material
		prims[i] = uploadPrimitive(p)
		prims[i].texture = r.textures.Get(mat.Texture, mat.MipMapBias)
		prims[i].state = resolveState(mat)
	}
	r.meshes[m] = prims
}

// Release frees the GPU buffers of m.
func (r *Renderer) Release(m *mesh.BuiltMesh) {
	for _, gp := range r.meshes[m] {
		gl.DeleteVertexArrays(1, &gp.vao)
		gl.DeleteBuffers(1, &gp.vbo)
		gl.DeleteBuffers(1, &gp.ebo)
	}
	delete(r.meshes, m)
}

func uploadPrimitive(p *mesh.Primitive) gpuPrimitive {
	var gp gpuPrimitive
	gl.GenVertexArrays(1, &gp.vao)
	gl.BindVertexArray(gp.vao)

	gl.GenBuffers(1, &gp.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gp.vbo)
	vertexSize := int(unsafe.Sizeof(mesh.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(p.Vertices)*vertexSize, unsafe.Pointer(&p.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &gp.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gp.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(p.Indices)*4, unsafe.Pointer(&p.Indices[0]), gl.STATIC_DRAW)

	gp.count = int32(len(p.Indices))
	gl.BindVertexArray(0)
	return gp
}

// SetSun replaces the scene light.
func (r *Renderer) SetSun(sun lighting.Sun) {
	r.sun = sun
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the selected primitives. Opaque materials are drawn
// first, blended ones after with depth writes off.
func (r *Renderer) Draw(f *camera.Frame, sels []lod.Selection) {
	r.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.program.Uniform("uTexture"), 0)
	dir := r.sun.Direction()
	gl.Uniform3f(r.program.Uniform("uLightDir"), dir.X, dir.Y, dir.Z)
	gl.Uniform3f(r.program.Uniform("uAmbient"), r.sun.Ambient.X, r.sun.Ambient.Y, r.sun.Ambient.Z)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	r.drawPass(f, sels, false)

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	r.drawPass(f, sels, true)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	gl.BindVertexArray(0)
}

func (r *Renderer) drawPass(f *camera.Frame, sels []lod.Selection, blended bool) {
	locMVP := r.program.Uniform("uMVP")
	locNormal := r.program.Uniform("uNormalMatrix")
	locBright := r.program.Uniform("uBrightness")
	locAlpha := r.program.Uniform("uAlphaRef")
	locLit := r.program.Uniform("uLit")

	for i := range sels {
		sel := &sels[i]
		prims, ok := r.meshes[sel.Mesh]
		if !ok {
			continue
		}
		model := math.FromFloat64(sel.Mesh.Placement.Matrix(f.Location.TileX, f.Location.TileZ))
		mvp := f.ViewProj.Mul(model)
		normal := model.Mat3x3()
		gl.UniformMatrix4fv(locMVP, 1, false, mvp.Ptr())
		gl.UniformMatrix3fv(locNormal, 1, false, &normal[0])

		for pi := sel.Primitives.Start; pi < sel.Primitives.Stop; pi++ {
			gp := &prims[pi]
			if (gp.state.blend != blendNone) != blended {
				continue
			}
			switch gp.state.blend {
			case blendAlpha:
				gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			case blendAdditive:
				gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
			}
			gl.Uniform1f(locBright, gp.state.brightness)
			gl.Uniform1f(locAlpha, gp.state.alphaThreshold())
			lit := int32(0)
			if gp.state.lit {
				lit = 1
			}
			gl.Uniform1i(locLit, lit)
			gl.BindTexture(gl.TEXTURE_2D, gp.texture)
			gl.BindVertexArray(gp.vao)
			gl.DrawElements(gl.TRIANGLES, gp.count, gl.UNSIGNED_INT, nil)
		}
	}
}
