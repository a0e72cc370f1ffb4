package webgl

import (
	"github.com/richinsley/gowebgl/graphics"
)

// Framebuffer is a WebGLFramebuffer. Each attachment holds a reference on the
// attached texture or renderbuffer.
type Framebuffer struct {
	linkable
	attachments map[graphics.Enum]object
}

func (f *Framebuffer) base() *linkable {
	if f == nil {
		return nil
	}
	return &f.linkable
}

func (f *Framebuffer) kind() objectKind { return kindFramebuffer }

// Attachment returns the texture or renderbuffer attached at attachment.
func (f *Framebuffer) Attachment(attachment graphics.Enum) any {
	return f.attachments[attachment]
}

// CreateFramebuffer allocates a framebuffer object.
func (c *Context) CreateFramebuffer() *Framebuffer {
	if !c.alive() {
		return nil
	}
	name := c.driver.CreateFramebuffer()
	if name == 0 {
		c.setError(graphics.OUT_OF_MEMORY)
		return nil
	}
	f := &Framebuffer{
		linkable:    linkable{name: name, owner: c.id},
		attachments: make(map[graphics.Enum]object),
	}
	c.framebuffers.insert(f)
	return f
}

// Framebuffer looks up a live framebuffer by identity.
func (c *Context) Framebuffer(name uint32) (*Framebuffer, error) {
	return lookupObject(c.framebuffers, kindFramebuffer, name)
}

// defaultFramebuffer is the native name standing in for the null
// framebuffer: the offscreen drawing buffer, or 0 for a window surface.
func (c *Context) defaultFramebuffer() uint32 {
	if c.drawingBuffer != nil {
		return c.drawingBuffer.framebuffer
	}
	return 0
}

// BindFramebuffer binds f; nil binds the drawing buffer.
func (c *Context) BindFramebuffer(target graphics.Enum, f *Framebuffer) {
	if !c.alive() {
		return
	}
	if target != graphics.FRAMEBUFFER {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	if f != nil && !c.owns(f) {
		return
	}
	prev := c.activeFramebuffer
	c.retain(f)
	c.activeFramebuffer = f
	if f != nil {
		c.driver.BindFramebuffer(target, f.name)
	} else {
		c.driver.BindFramebuffer(target, c.defaultFramebuffer())
	}
	c.unref(prev)
}

// ActiveFramebuffer returns the bound framebuffer, nil for the drawing buffer.
func (c *Context) ActiveFramebuffer() *Framebuffer { return c.activeFramebuffer }

func (c *Context) validAttachment(attachment graphics.Enum) bool {
	switch attachment {
	case graphics.DEPTH_ATTACHMENT, graphics.STENCIL_ATTACHMENT, graphics.DEPTH_STENCIL_ATTACHMENT:
		return true
	}
	end := graphics.COLOR_ATTACHMENT0 + graphics.Enum(c.maxColorAttachments)
	return attachment >= graphics.COLOR_ATTACHMENT0 && attachment < end
}

// framebufferForAttach returns the bound framebuffer after validating the
// target and attachment point of an attach call.
func (c *Context) framebufferForAttach(target, attachment graphics.Enum) *Framebuffer {
	if target != graphics.FRAMEBUFFER || !c.validAttachment(attachment) {
		c.setError(graphics.INVALID_ENUM)
		return nil
	}
	if c.activeFramebuffer == nil {
		c.setError(graphics.INVALID_OPERATION)
		return nil
	}
	return c.activeFramebuffer
}

func (c *Context) setAttachment(f *Framebuffer, attachment graphics.Enum, o object) {
	prev := f.attachments[attachment]
	if o.base() != nil {
		c.retain(o)
		f.attachments[attachment] = o
	} else {
		delete(f.attachments, attachment)
	}
	if prev != nil {
		c.unref(prev)
	}
}

// FramebufferTexture2D attaches level 0 of t to the bound framebuffer; nil
// detaches.
func (c *Context) FramebufferTexture2D(target, attachment, texTarget graphics.Enum, t *Texture, level int32) {
	if !c.alive() {
		return
	}
	f := c.framebufferForAttach(target, attachment)
	if f == nil {
		return
	}
	if textureBindTarget(texTarget) == 0 {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	if level != 0 {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	var name uint32
	if t != nil {
		if !c.owns(t) {
			return
		}
		name = t.name
	}
	c.driver.FramebufferTexture2D(target, attachment, texTarget, name, level)
	c.setAttachment(f, attachment, t)
}

// FramebufferRenderbuffer attaches r to the bound framebuffer; nil detaches.
func (c *Context) FramebufferRenderbuffer(target, attachment, rbTarget graphics.Enum, r *Renderbuffer) {
	if !c.alive() {
		return
	}
	f := c.framebufferForAttach(target, attachment)
	if f == nil {
		return
	}
	if rbTarget != graphics.RENDERBUFFER {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	var name uint32
	if r != nil {
		if !c.owns(r) {
			return
		}
		name = r.name
	}
	c.driver.FramebufferRenderbuffer(target, attachment, rbTarget, name)
	c.setAttachment(f, attachment, r)
}

// CheckFramebufferStatus reports completeness of the bound framebuffer. The
// drawing buffer is always complete.
func (c *Context) CheckFramebufferStatus(target graphics.Enum) graphics.Enum {
	if !c.alive() {
		return graphics.FRAMEBUFFER_UNSUPPORTED
	}
	if target != graphics.FRAMEBUFFER {
		c.setError(graphics.INVALID_ENUM)
		return 0
	}
	if c.activeFramebuffer == nil {
		return graphics.FRAMEBUFFER_COMPLETE
	}
	if len(c.activeFramebuffer.attachments) == 0 {
		return graphics.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
	}
	return c.driver.CheckFramebufferStatus(target)
}

// DeleteFramebuffer deletes f. A bound framebuffer is released once another
// framebuffer is bound.
func (c *Context) DeleteFramebuffer(f *Framebuffer) {
	if f == nil || !c.alive() || f.owner != c.id {
		return
	}
	c.deleteObject(f, c.framebuffers.remove)
}
