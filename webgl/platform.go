package webgl

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/graphics"
)

// Platform identifies a hardware profile with its own initialization routine
// for every Feature.
type Platform int

const (
	PlatformDefault Platform = iota
	PlatformLinux
	PlatformVita
)

// ParsePlatform maps a platform name to its profile. Empty and unknown names
// select PlatformDefault.
func ParsePlatform(name string) Platform {
	switch strings.ToLower(name) {
	case "linux":
		return PlatformLinux
	case "vita":
		return PlatformVita
	default:
		return PlatformDefault
	}
}

func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformVita:
		return "vita"
	default:
		return "default"
	}
}

// Feature is one platform dependent step of context initialization.
type Feature int

const (
	FeatureTextureUnits Feature = iota
	FeatureAllocateDrawingBuffer
	FeatureDefaultBindings
	FeatureViewport
	FeatureScissor
	FeatureClearBuffer
)

// Features lists every feature in initialization order.
var Features = []Feature{
	FeatureTextureUnits,
	FeatureAllocateDrawingBuffer,
	FeatureDefaultBindings,
	FeatureViewport,
	FeatureScissor,
	FeatureClearBuffer,
}

func (f Feature) String() string {
	switch f {
	case FeatureTextureUnits:
		return "texture-units"
	case FeatureAllocateDrawingBuffer:
		return "allocate-drawing-buffer"
	case FeatureDefaultBindings:
		return "default-bindings"
	case FeatureViewport:
		return "viewport"
	case FeatureScissor:
		return "scissor"
	case FeatureClearBuffer:
		return "clear-buffer"
	}
	return fmt.Sprintf("feature(%d)", int(f))
}

// Profile supplies the initialization routine for every Feature. Being an
// interface, a profile that misses one of them does not compile.
type Profile interface {
	TextureUnits(c *Context) error
	AllocateDrawingBuffer(c *Context, hasWindow bool) error
	DefaultBindings(c *Context) error
	Viewport(c *Context) error
	Scissor(c *Context) error
	ClearBuffer(c *Context) error
}

// Profile returns the initialization profile of p.
func (p Platform) Profile() Profile {
	switch p {
	case PlatformVita:
		return vitaProfile{}
	case PlatformDefault, PlatformLinux:
		return defaultProfile{}
	}
	return defaultProfile{}
}

// ApplyFeature runs the handler registered for feature on the named platform.
// Unknown platform names fall back to the default profile. hasWindow is only
// consulted by FeatureAllocateDrawingBuffer.
func ApplyFeature(platform string, feature Feature, c *Context, hasWindow bool) error {
	return ParsePlatform(platform).apply(feature, c, hasWindow)
}

func (p Platform) apply(feature Feature, c *Context, hasWindow bool) error {
	log.Debugf("Applying feature %s for platform %s", feature, p)
	prof := p.Profile()
	switch feature {
	case FeatureTextureUnits:
		return prof.TextureUnits(c)
	case FeatureAllocateDrawingBuffer:
		return prof.AllocateDrawingBuffer(c, hasWindow)
	case FeatureDefaultBindings:
		return prof.DefaultBindings(c)
	case FeatureViewport:
		return prof.Viewport(c)
	case FeatureScissor:
		return prof.Scissor(c)
	case FeatureClearBuffer:
		return prof.ClearBuffer(c)
	}
	panic(fmt.Sprintf("webgl: no handler for %s", feature))
}

// defaultProfile is the full featured desktop/EGL profile.
type defaultProfile struct{}

func (defaultProfile) TextureUnits(c *Context) error {
	n := int(c.driver.GetInteger(graphics.MAX_COMBINED_TEXTURE_IMAGE_UNITS))
	if n < 0 {
		n = 0
	}
	c.textureUnits = make([]*TextureUnit, n)
	for i := range c.textureUnits {
		c.textureUnits[i] = &TextureUnit{index: i}
	}
	c.activeTextureUnit = 0
	c.ActiveTexture(graphics.TEXTURE0)
	return nil
}

func (defaultProfile) AllocateDrawingBuffer(c *Context, hasWindow bool) error {
	return c.allocateDrawingBuffer(c.drawingBufferWidth, c.drawingBufferHeight, hasWindow)
}

func (defaultProfile) DefaultBindings(c *Context) error {
	c.BindBuffer(graphics.ARRAY_BUFFER, nil)
	c.BindBuffer(graphics.ELEMENT_ARRAY_BUFFER, nil)
	c.BindFramebuffer(graphics.FRAMEBUFFER, nil)
	c.BindRenderbuffer(graphics.RENDERBUFFER, nil)
	return nil
}

func (defaultProfile) Viewport(c *Context) error {
	c.Viewport(0, 0, int32(c.drawingBufferWidth), int32(c.drawingBufferHeight))
	return nil
}

func (defaultProfile) Scissor(c *Context) error {
	c.Scissor(0, 0, int32(c.drawingBufferWidth), int32(c.drawingBufferHeight))
	return nil
}

func (defaultProfile) ClearBuffer(c *Context) error {
	c.ClearDepth(1)
	c.ClearColor(0, 0, 0, 0)
	c.ClearStencil(0)
	c.Clear(graphics.COLOR_BUFFER_BIT | graphics.DEPTH_BUFFER_BIT | graphics.STENCIL_BUFFER_BIT)
	return nil
}

// vitaProfile targets the PS Vita GXM backend. It has no per-unit texture
// table, always renders to the display surface and only clears color.
type vitaProfile struct{}

func (vitaProfile) TextureUnits(c *Context) error { return nil }

func (vitaProfile) AllocateDrawingBuffer(c *Context, _ bool) error {
	return c.allocateDrawingBuffer(c.drawingBufferWidth, c.drawingBufferHeight, true)
}

func (vitaProfile) DefaultBindings(c *Context) error { return nil }

func (vitaProfile) Viewport(c *Context) error { return defaultProfile{}.Viewport(c) }

func (vitaProfile) Scissor(c *Context) error { return defaultProfile{}.Scissor(c) }

func (vitaProfile) ClearBuffer(c *Context) error {
	c.ClearColor(0, 0, 0, 0)
	c.Clear(graphics.COLOR_BUFFER_BIT)
	return nil
}
