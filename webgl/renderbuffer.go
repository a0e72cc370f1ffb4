package webgl

import (
	"github.com/richinsley/gowebgl/graphics"
)

// Renderbuffer is a WebGLRenderbuffer.
type Renderbuffer struct {
	linkable
	format graphics.Enum
	width  int32
	height int32
}

func (r *Renderbuffer) base() *linkable {
	if r == nil {
		return nil
	}
	return &r.linkable
}

func (r *Renderbuffer) kind() objectKind { return kindRenderbuffer }

// Format returns the internal format given to RenderbufferStorage.
func (r *Renderbuffer) Format() graphics.Enum { return r.format }

// Size returns the allocated dimensions.
func (r *Renderbuffer) Size() (int32, int32) { return r.width, r.height }

// CreateRenderbuffer allocates a renderbuffer object.
func (c *Context) CreateRenderbuffer() *Renderbuffer {
	if !c.alive() {
		return nil
	}
	name := c.driver.CreateRenderbuffer()
	if name == 0 {
		c.setError(graphics.OUT_OF_MEMORY)
		return nil
	}
	r := &Renderbuffer{linkable: linkable{name: name, owner: c.id}}
	c.renderbuffers.insert(r)
	return r
}

// Renderbuffer looks up a live renderbuffer by identity.
func (c *Context) Renderbuffer(name uint32) (*Renderbuffer, error) {
	return lookupObject(c.renderbuffers, kindRenderbuffer, name)
}

// BindRenderbuffer binds r; nil unbinds.
func (c *Context) BindRenderbuffer(target graphics.Enum, r *Renderbuffer) {
	if !c.alive() {
		return
	}
	if target != graphics.RENDERBUFFER {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	if r != nil && !c.owns(r) {
		return
	}
	prev := c.activeRenderbuffer
	c.retain(r)
	c.activeRenderbuffer = r
	if r != nil {
		c.driver.BindRenderbuffer(target, r.name)
	} else {
		c.driver.BindRenderbuffer(target, 0)
	}
	c.unref(prev)
}

// ActiveRenderbuffer returns the bound renderbuffer.
func (c *Context) ActiveRenderbuffer() *Renderbuffer { return c.activeRenderbuffer }

// nativeRenderbufferFormat maps a WebGL renderbuffer format to the one passed
// to the driver, 0 when the format is not accepted.
func nativeRenderbufferFormat(format graphics.Enum) graphics.Enum {
	switch format {
	case graphics.RGBA4, graphics.RGB5_A1, graphics.RGB565,
		graphics.DEPTH_COMPONENT16, graphics.STENCIL_INDEX8:
		return format
	case graphics.DEPTH_STENCIL:
		return graphics.DEPTH24_STENCIL8
	}
	return 0
}

// RenderbufferStorage allocates storage for the bound renderbuffer.
func (c *Context) RenderbufferStorage(target, internalFormat graphics.Enum, width, height int32) {
	if !c.alive() {
		return
	}
	if target != graphics.RENDERBUFFER {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	r := c.activeRenderbuffer
	if r == nil {
		c.setError(graphics.INVALID_OPERATION)
		return
	}
	native := nativeRenderbufferFormat(internalFormat)
	if native == 0 {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	if width < 0 || height < 0 || int(width) > c.maxRenderbufferSize || int(height) > c.maxRenderbufferSize {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	c.driver.RenderbufferStorage(target, native, width, height)
	r.format, r.width, r.height = internalFormat, width, height
}

// DeleteRenderbuffer deletes r. A renderbuffer still bound or attached is
// released when the last reference goes away.
func (c *Context) DeleteRenderbuffer(r *Renderbuffer) {
	if r == nil || !c.alive() || r.owner != c.id {
		return
	}
	c.deleteObject(r, c.renderbuffers.remove)
}
