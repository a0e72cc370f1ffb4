package webgl

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/graphics"
)

// drawingBuffer is the offscreen render target used when the context has no
// window surface. Its native objects are not visible through the object
// tables.
type drawingBuffer struct {
	framebuffer  uint32
	color        uint32
	depthStencil uint32
	width        int
	height       int
}

// preferredDepthFormat picks the deepest depth renderbuffer format the native
// extensions allow.
func preferredDepthFormat(native map[string]bool) graphics.Enum {
	switch {
	case native["GL_OES_depth32"]:
		return graphics.DEPTH_COMPONENT32_OES
	case native["GL_OES_depth24"]:
		return graphics.DEPTH_COMPONENT24_OES
	default:
		return graphics.DEPTH_COMPONENT16
	}
}

// allocateDrawingBuffer (re)creates the drawing buffer at width x height.
// With a window the native default framebuffer is used as is.
func (c *Context) allocateDrawingBuffer(width, height int, hasWindow bool) error {
	c.freeDrawingBuffer()
	d := c.driver
	if hasWindow {
		d.BindFramebuffer(graphics.FRAMEBUFFER, 0)
		return nil
	}

	db := &drawingBuffer{width: width, height: height}
	db.framebuffer = d.CreateFramebuffer()
	db.color = d.CreateTexture()
	if db.framebuffer == 0 || db.color == 0 {
		c.drawingBuffer = db
		c.freeDrawingBuffer()
		return fmt.Errorf("%w: out of native objects", ErrDrawingBuffer)
	}
	c.drawingBuffer = db

	w, h := int32(width), int32(height)
	format := graphics.RGBA
	if !c.attributes.Alpha {
		format = graphics.RGB
	}
	d.BindFramebuffer(graphics.FRAMEBUFFER, db.framebuffer)
	d.BindTexture(graphics.TEXTURE_2D, db.color)
	d.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_MIN_FILTER, int32(graphics.NEAREST))
	d.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_MAG_FILTER, int32(graphics.NEAREST))
	d.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_WRAP_S, int32(graphics.CLAMP_TO_EDGE))
	d.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_WRAP_T, int32(graphics.CLAMP_TO_EDGE))
	d.TexImage2D(graphics.TEXTURE_2D, 0, format, w, h, format, graphics.UNSIGNED_BYTE, nil)
	d.FramebufferTexture2D(graphics.FRAMEBUFFER, graphics.COLOR_ATTACHMENT0, graphics.TEXTURE_2D, db.color, 0)

	var storage, attachment graphics.Enum
	switch {
	case c.attributes.Depth && c.attributes.Stencil:
		storage, attachment = graphics.DEPTH24_STENCIL8, graphics.DEPTH_STENCIL_ATTACHMENT
	case c.attributes.Depth:
		storage, attachment = c.preferredDepth, graphics.DEPTH_ATTACHMENT
	case c.attributes.Stencil:
		storage, attachment = graphics.STENCIL_INDEX8, graphics.STENCIL_ATTACHMENT
	}
	if storage != 0 {
		db.depthStencil = d.CreateRenderbuffer()
		d.BindRenderbuffer(graphics.RENDERBUFFER, db.depthStencil)
		d.RenderbufferStorage(graphics.RENDERBUFFER, storage, w, h)
		d.FramebufferRenderbuffer(graphics.FRAMEBUFFER, attachment, graphics.RENDERBUFFER, db.depthStencil)
	}

	status := d.CheckFramebufferStatus(graphics.FRAMEBUFFER)
	c.restoreBindings()
	if status != graphics.FRAMEBUFFER_COMPLETE {
		c.freeDrawingBuffer()
		return fmt.Errorf("%w: framebuffer status 0x%04x", ErrDrawingBuffer, uint32(status))
	}
	log.Debugf("Context %d: allocated %dx%d drawing buffer", c.id, width, height)
	return nil
}

// restoreBindings rebinds the application's texture, renderbuffer and
// framebuffer after the drawing buffer was built with raw driver calls.
func (c *Context) restoreBindings() {
	d := c.driver
	if unit := c.activeUnit(); unit != nil {
		var tex uint32
		if unit.texture2D != nil {
			tex = unit.texture2D.name
		}
		d.BindTexture(graphics.TEXTURE_2D, tex)
	}
	var rb uint32
	if c.activeRenderbuffer != nil {
		rb = c.activeRenderbuffer.name
	}
	d.BindRenderbuffer(graphics.RENDERBUFFER, rb)
	if c.activeFramebuffer != nil {
		d.BindFramebuffer(graphics.FRAMEBUFFER, c.activeFramebuffer.name)
	} else {
		d.BindFramebuffer(graphics.FRAMEBUFFER, c.defaultFramebuffer())
	}
}

func (c *Context) freeDrawingBuffer() {
	db := c.drawingBuffer
	if db == nil {
		return
	}
	c.drawingBuffer = nil
	d := c.driver
	if db.depthStencil != 0 {
		d.DeleteRenderbuffer(db.depthStencil)
	}
	if db.color != 0 {
		d.DeleteTexture(db.color)
	}
	if db.framebuffer != 0 {
		d.DeleteFramebuffer(db.framebuffer)
	}
}

// DrawingBufferWidth returns the current drawing buffer width.
func (c *Context) DrawingBufferWidth() int { return c.drawingBufferWidth }

// DrawingBufferHeight returns the current drawing buffer height.
func (c *Context) DrawingBufferHeight() int { return c.drawingBufferHeight }

// SurfaceSize returns the native surface's framebuffer size in pixels. It
// can differ from the drawing buffer on scaled displays.
func (c *Context) SurfaceSize() (int, int) {
	if !c.alive() {
		return 0, 0
	}
	return c.surface.GetFramebufferSize()
}

// IsOffscreen reports whether rendering goes to an offscreen drawing buffer
// rather than a window surface.
func (c *Context) IsOffscreen() bool { return c.drawingBuffer != nil }

// resize reallocates the drawing buffer and resets the viewport and scissor
// through the platform profile.
func (c *Context) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		c.setError(graphics.INVALID_VALUE)
		return ErrInvalidDimensions
	}
	oldWidth, oldHeight := c.drawingBufferWidth, c.drawingBufferHeight
	c.drawingBufferWidth, c.drawingBufferHeight = width, height
	name := c.platform.String()
	if err := ApplyFeature(name, FeatureAllocateDrawingBuffer, c, c.hasWindow); err != nil {
		c.drawingBufferWidth, c.drawingBufferHeight = oldWidth, oldHeight
		c.state = stateError
		return err
	}
	for _, f := range []Feature{FeatureViewport, FeatureScissor} {
		if err := ApplyFeature(name, f, c, c.hasWindow); err != nil {
			c.state = stateError
			return err
		}
	}
	return nil
}
