package texture

import (
	"image"
	"path/filepath"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/dyntrack/internal/logger"
)

// Upload creates a mipmapped, repeating GL texture from img. mipMapBias
// shifts mip selection; positive values blur.
func Upload(img *image.RGBA, mipMapBias float32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_LOD_BIAS, mipMapBias)
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 8.0)

	return tex
}

// White creates the 1x1 white texture drawn in place of missing ones.
func White() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	white := []uint8{255, 255, 255, 255}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return tex
}

type cacheKey struct {
	name string
	bias float32
}

// Cache loads each texture file once. Must be used on the GL thread.
type Cache struct {
	dir      string
	log      *zap.Logger
	fallback uint32
	loaded   map[cacheKey]uint32
}

// NewCache returns a cache resolving names against dir.
func NewCache(dir string, log *zap.Logger) *Cache {
	return &Cache{
		dir:    dir,
		log:    logger.OrNop(log),
		loaded: make(map[cacheKey]uint32),
	}
}

// Get returns the texture for name, falling back to white when the file
// is missing or cannot be decoded.
func (c *Cache) Get(name string, mipMapBias float32) uint32 {
	key := cacheKey{name, mipMapBias}
	if tex, ok := c.loaded[key]; ok {
		return tex
	}

	tex := c.white()
	if name != "" {
		img, err := DecodeFile(filepath.Join(c.dir, name))
		if err != nil {
			c.log.Warn("texture unavailable, using white", zap.String("texture", name), zap.Error(err))
		} else {
			tex = Upload(img, mipMapBias)
			c.log.Debug("texture loaded", zap.String("texture", name),
				zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
		}
	}
	c.loaded[key] = tex
	return tex
}

func (c *Cache) white() uint32 {
	if c.fallback == 0 {
		c.fallback = White()
	}
	return c.fallback
}

// Close deletes every texture the cache created.
func (c *Cache) Close() {
	seen := make(map[uint32]bool, len(c.loaded)+1)
	for _, tex := range c.loaded {
		seen[tex] = true
	}
	if c.fallback != 0 {
		seen[c.fallback] = true
	}
	for tex := range seen {
		gl.DeleteTextures(1, &tex)
	}
	c.loaded = make(map[cacheKey]uint32)
	c.fallback = 0
}
