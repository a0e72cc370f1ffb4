package webgl

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/graphics"
)

// extension describes one entry of the registry. supported is consulted
// against the native extension set; create builds the wrapper object handed
// to the application.
type extension struct {
	name      string
	supported func(c *Context) bool
	create    func(c *Context) any
}

func always(*Context) bool { return true }

func requires(native ...string) func(c *Context) bool {
	return func(c *Context) bool {
		for _, n := range native {
			if !c.nativeExtensions[n] {
				return false
			}
		}
		return true
	}
}

var extensionRegistry = []extension{
	{
		name:      "STACKGL_destroy_context",
		supported: always,
		create:    func(c *Context) any { return &DestroyContext{c: c} },
	},
	{
		name:      "STACKGL_resize_drawingbuffer",
		supported: always,
		create:    func(c *Context) any { return &ResizeDrawingBuffer{c: c} },
	},
	{
		name:      "OES_vertex_array_object",
		supported: requires("GL_OES_vertex_array_object"),
		create:    newVertexArrayObjectExtension,
	},
	{
		name:      "WEBGL_draw_buffers",
		supported: requires("GL_EXT_draw_buffers"),
		create:    newDrawBuffersExtension,
	},
}

func lookupExtension(name string) (extension, bool) {
	for _, e := range extensionRegistry {
		if strings.EqualFold(e.name, name) {
			return e, true
		}
	}
	return extension{}, false
}

// GetExtension returns the extension object for name, building it on first
// request. Later requests return the same object. Unknown or unsupported
// names return nil.
func (c *Context) GetExtension(name string) any {
	if !c.alive() {
		return nil
	}
	key := strings.ToLower(name)
	if ext, ok := c.extensions[key]; ok {
		return ext
	}
	e, ok := lookupExtension(name)
	if !ok || !e.supported(c) {
		return nil
	}
	ext := e.create(c)
	c.extensions[key] = ext
	log.Debugf("Context %d: enabled extension %s", c.id, e.name)
	return ext
}

// GetSupportedExtensions lists the extensions GetExtension can return.
func (c *Context) GetSupportedExtensions() []string {
	var out []string
	for _, e := range extensionRegistry {
		if e.supported(c) {
			out = append(out, e.name)
		}
	}
	sort.Strings(out)
	return out
}

// DestroyContext is the STACKGL_destroy_context extension.
type DestroyContext struct {
	c *Context
}

// Destroy tears the context down.
func (e *DestroyContext) Destroy() { e.c.Destroy() }

// ResizeDrawingBuffer is the STACKGL_resize_drawingbuffer extension.
type ResizeDrawingBuffer struct {
	c *Context
}

// Resize reallocates the drawing buffer at width x height and resets the
// viewport and scissor to cover it.
func (e *ResizeDrawingBuffer) Resize(width, height int) error {
	if !e.c.alive() {
		return ErrContextLost
	}
	return e.c.resize(width, height)
}

// VertexArrayObjectExtension is OES_vertex_array_object. Vertex array
// objects live in the extension's own table rather than in the context's.
type VertexArrayObjectExtension struct {
	c      *Context
	arrays *objectTable[*VertexArray]
	bound  *VertexArray
}

func newVertexArrayObjectExtension(c *Context) any {
	e := &VertexArrayObjectExtension{c: c, arrays: newObjectTable[*VertexArray]()}
	c.vertexArrays = e
	return e
}

// CreateVertexArrayOES allocates a vertex array object with its own
// attribute scope.
func (e *VertexArrayObjectExtension) CreateVertexArrayOES() *VertexArray {
	c := e.c
	if !c.alive() {
		return nil
	}
	name := c.driver.CreateVertexArray()
	if name == 0 {
		c.setError(graphics.OUT_OF_MEMORY)
		return nil
	}
	v := &VertexArray{
		linkable: linkable{name: name, owner: c.id},
		state:    newVertexArrayObjectState(len(c.vertexGlobalState.values)),
	}
	e.arrays.insert(v)
	return v
}

// VertexArray looks up a live vertex array object by identity.
func (e *VertexArrayObjectExtension) VertexArray(name uint32) (*VertexArray, error) {
	return lookupObject(e.arrays, kindVertexArray, name)
}

// IsVertexArrayOES reports whether v is a live vertex array object of this
// context.
func (e *VertexArrayObjectExtension) IsVertexArrayOES(v *VertexArray) bool {
	if v == nil || v.owner != e.c.id || v.pendingDelete {
		return false
	}
	_, ok := e.arrays.lookup(v.name)
	return ok
}

// BindVertexArrayOES switches attribute calls to v's scope; nil restores the
// default scope.
func (e *VertexArrayObjectExtension) BindVertexArrayOES(v *VertexArray) {
	c := e.c
	if !c.alive() {
		return
	}
	if v != nil && !c.owns(v) {
		return
	}
	prev := e.bound
	c.retain(v)
	e.bound = v
	if v != nil {
		c.vertexObjectState = v.state
		c.driver.BindVertexArray(v.name)
	} else {
		c.vertexObjectState = c.defaultVertexObjectState
		c.driver.BindVertexArray(0)
	}
	c.unref(prev)
}

// BoundVertexArrayOES returns the bound vertex array object.
func (e *VertexArrayObjectExtension) BoundVertexArrayOES() *VertexArray { return e.bound }

// DeleteVertexArrayOES deletes v. Deleting the bound object rebinds the
// default scope first.
func (e *VertexArrayObjectExtension) DeleteVertexArrayOES(v *VertexArray) {
	c := e.c
	if v == nil || !c.alive() || v.owner != c.id {
		return
	}
	if e.bound == v {
		e.BindVertexArrayOES(nil)
	}
	c.deleteObject(v, e.arrays.remove)
}

func (e *VertexArrayObjectExtension) releaseAll() {
	if e.bound != nil {
		prev := e.bound
		e.bound = nil
		e.c.unref(prev)
	}
	for _, v := range e.arrays.all() {
		e.c.deleteObject(v, e.arrays.remove)
	}
}

// DrawBuffersExtension is WEBGL_draw_buffers.
type DrawBuffersExtension struct {
	c              *Context
	maxDrawBuffers int
}

func newDrawBuffersExtension(c *Context) any {
	c.maxColorAttachments = int(c.driver.GetInteger(graphics.MAX_COLOR_ATTACHMENTS_WEBGL))
	return &DrawBuffersExtension{
		c:              c,
		maxDrawBuffers: int(c.driver.GetInteger(graphics.MAX_DRAW_BUFFERS_WEBGL)),
	}
}

// MaxDrawBuffers returns MAX_DRAW_BUFFERS_WEBGL.
func (e *DrawBuffersExtension) MaxDrawBuffers() int { return e.maxDrawBuffers }

// DrawBuffersWEBGL selects the color attachments fragment outputs write to.
// Buffer i must be COLOR_ATTACHMENTi or NONE; the drawing buffer accepts a
// single BACK or NONE entry.
func (e *DrawBuffersExtension) DrawBuffersWEBGL(buffers []graphics.Enum) {
	c := e.c
	if !c.alive() {
		return
	}
	if len(buffers) > e.maxDrawBuffers {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	if c.activeFramebuffer == nil {
		if len(buffers) != 1 || (buffers[0] != graphics.BACK && buffers[0] != graphics.NONE) {
			c.setError(graphics.INVALID_OPERATION)
			return
		}
		if c.drawingBuffer != nil && buffers[0] == graphics.BACK {
			buffers = []graphics.Enum{graphics.COLOR_ATTACHMENT0}
		}
	} else {
		for i, b := range buffers {
			if b != graphics.NONE && b != graphics.COLOR_ATTACHMENT0+graphics.Enum(i) {
				c.setError(graphics.INVALID_OPERATION)
				return
			}
		}
	}
	c.driver.DrawBuffers(buffers)
}
