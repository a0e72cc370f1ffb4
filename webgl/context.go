package webgl

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/graphics"
	"github.com/richinsley/gowebgl/options"
)

// requiredExtension must be present on every native context: the drawing
// buffer and DEPTH_STENCIL renderbuffers depend on it.
const requiredExtension = "GL_OES_packed_depth_stencil"

type contextState int

const (
	stateInit contextState = iota
	stateOK
	stateDestroyed
	stateError
)

func (s contextState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateOK:
		return "ok"
	case stateDestroyed:
		return "destroyed"
	case stateError:
		return "error"
	}
	return "unknown"
}

// contextCounter is the identity the next successfully created context
// receives. Contexts are only created from the thread owning the GL
// context, so it needs no synchronization.
var contextCounter int

// liveContexts holds every context that was created and not yet destroyed.
var liveContexts = make(map[int]*Context)

// Context is a WebGL 1.0 rendering context emulated over a native driver.
// A Context belongs to the thread that created it.
type Context struct {
	id       int
	state    contextState
	surface  graphics.Surface
	driver   graphics.Driver
	platform Platform

	drawingBufferWidth  int
	drawingBufferHeight int
	attributes          ContextAttributes
	hasWindow           bool
	drawingBuffer       *drawingBuffer
	preferredDepth      graphics.Enum

	attrib0Buffer   *Buffer
	attrib0Vertices int
	attrib0Value    [4]float32

	nativeExtensions map[string]bool
	extensions       map[string]any
	vertexArrays     *VertexArrayObjectExtension

	shaders       *objectTable[*Shader]
	programs      *objectTable[*Program]
	buffers       *objectTable[*Buffer]
	textures      *objectTable[*Texture]
	framebuffers  *objectTable[*Framebuffer]
	renderbuffers *objectTable[*Renderbuffer]
	deferred      map[*linkable]object

	activeProgram      *Program
	activeFramebuffer  *Framebuffer
	activeRenderbuffer *Renderbuffer
	activeTextureUnit  int
	textureUnits       []*TextureUnit

	errors []graphics.Enum

	defaultVertexObjectState *VertexArrayObjectState
	vertexObjectState        *VertexArrayObjectState
	vertexGlobalState        *VertexArrayGlobalState

	maxTextureSize      int
	maxTextureLevel     int
	maxCubeMapSize      int
	maxCubeMapLevel     int
	maxRenderbufferSize int
	maxColorAttachments int

	unpackAlignment            int
	packAlignment              int
	unpackFlipY                bool
	unpackPremultiplyAlpha     bool
	unpackColorspaceConversion graphics.Enum

	viewport     [4]int32
	scissor      [4]int32
	clearColor   [4]float32
	clearDepth   float32
	clearStencil int32
}

// CreateContext builds a WebGL context with a width x height drawing buffer
// on a native context obtained from acq.
//
// Either a fully initialized context or an error is returned, never both. No
// native resource is requested when the dimensions are not positive, and a
// failed creation does not consume a context identity.
func CreateContext(acq graphics.Acquirer, width, height int, opts *options.ContextOptions) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	attrs := ResolveAttributes(opts)
	hasWindow := opts.HasWindow()
	platform := ParsePlatform(opts.PlatformName())

	msaa := opts.MSAA()
	if msaa == 0 && attrs.Antialias {
		msaa = 4
	}
	cfg := graphics.SurfaceConfig{
		Width:                 width,
		Height:                height,
		Alpha:                 attrs.Alpha,
		Depth:                 attrs.Depth,
		Stencil:               attrs.Stencil,
		Antialias:             attrs.Antialias,
		PreserveDrawingBuffer: attrs.PreserveDrawingBuffer,
		PreferLowPower:        attrs.PreferLowPowerToHighPerformance,
		Platform:              platform.String(),
		MSAA:                  msaa,
	}
	// A falsy window handle asks for an offscreen pbuffer, same as none.
	if hasWindow {
		cfg.Window = opts.Window
	}
	surface, driver, err := acquire(acq, cfg)
	if err != nil {
		log.Warnf("Failed to create WebGL context: %v", err)
		return nil, err
	}

	native := make(map[string]bool)
	for _, e := range driver.Extensions() {
		native[e] = true
	}
	if !native[requiredExtension] {
		surface.Shutdown()
		err := fmt.Errorf("%w: %s", ErrMissingExtension, requiredExtension)
		log.Warnf("Failed to create WebGL context: %v", err)
		return nil, err
	}

	c := &Context{
		id:                  contextCounter,
		state:               stateOK,
		surface:             surface,
		driver:              driver,
		platform:            platform,
		drawingBufferWidth:  width,
		drawingBufferHeight: height,
		attributes:          attrs,
		hasWindow:           hasWindow,
		preferredDepth:      preferredDepthFormat(native),
		nativeExtensions:    native,
		extensions:          make(map[string]any),
		shaders:             newObjectTable[*Shader](),
		programs:            newObjectTable[*Program](),
		buffers:             newObjectTable[*Buffer](),
		textures:            newObjectTable[*Texture](),
		framebuffers:        newObjectTable[*Framebuffer](),
		renderbuffers:       newObjectTable[*Renderbuffer](),
		deferred:            make(map[*linkable]object),
		maxColorAttachments: 1,
		clearDepth:          1,
	}
	if err := c.initialize(); err != nil {
		c.teardown()
		c.state = stateError
		log.Warnf("Failed to create WebGL context: %v", err)
		return nil, err
	}

	contextCounter++
	liveContexts[c.id] = c
	log.Infof("Created WebGL context %d (%dx%d, platform %s, window %v)", c.id, width, height, platform, hasWindow)
	return c, nil
}

// acquire runs native acquisition, turning a panic into an error.
func acquire(acq graphics.Acquirer, cfg graphics.SurfaceConfig) (surface graphics.Surface, driver graphics.Driver, err error) {
	defer func() {
		if r := recover(); r != nil {
			surface, driver = nil, nil
			err = fmt.Errorf("%w: %v", ErrAcquire, r)
		}
	}()
	surface, driver, err = acq.Acquire(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	if surface == nil || driver == nil {
		return nil, nil, fmt.Errorf("%w: no native context returned", ErrAcquire)
	}
	return surface, driver, nil
}

// initialize runs the platform dependent part of creation. Each step stops
// the sequence on failure.
func (c *Context) initialize() error {
	apply := func(f Feature) error {
		if err := ApplyFeature(c.platform.String(), f, c, c.hasWindow); err != nil {
			return fmt.Errorf("webgl: %s: %w", f, err)
		}
		return nil
	}
	d := c.driver

	if err := apply(FeatureTextureUnits); err != nil {
		return err
	}

	c.errors = nil
	attribs := max(int(d.GetInteger(graphics.MAX_VERTEX_ATTRIBS)), 0)
	c.defaultVertexObjectState = newVertexArrayObjectState(attribs)
	c.vertexObjectState = c.defaultVertexObjectState
	c.vertexGlobalState = newVertexArrayGlobalState(attribs)

	c.maxTextureSize = int(d.GetInteger(graphics.MAX_TEXTURE_SIZE))
	c.maxTextureLevel = mipLevels(c.maxTextureSize)
	c.maxCubeMapSize = int(d.GetInteger(graphics.MAX_CUBE_MAP_TEXTURE_SIZE))
	c.maxCubeMapLevel = mipLevels(c.maxCubeMapSize)
	c.maxRenderbufferSize = int(d.GetInteger(graphics.MAX_RENDERBUFFER_SIZE))

	c.PixelStorei(graphics.UNPACK_ALIGNMENT, 4)
	c.PixelStorei(graphics.PACK_ALIGNMENT, 4)
	c.unpackColorspaceConversion = graphics.BROWSER_DEFAULT_WEBGL

	if err := apply(FeatureAllocateDrawingBuffer); err != nil {
		return err
	}

	name := d.CreateBuffer()
	if name == 0 {
		return fmt.Errorf("webgl: attribute 0 buffer: %w", ErrDrawingBuffer)
	}
	c.attrib0Buffer = &Buffer{linkable: linkable{name: name, owner: c.id}, target: graphics.ARRAY_BUFFER}

	for _, f := range []Feature{FeatureDefaultBindings, FeatureViewport, FeatureScissor, FeatureClearBuffer} {
		if err := apply(f); err != nil {
			return err
		}
	}
	return nil
}

// ID returns the process-wide identity of the context.
func (c *Context) ID() int { return c.id }

// ContextAttributes returns the attributes resolved at creation.
func (c *Context) ContextAttributes() ContextAttributes { return c.attributes }

// Platform returns the platform profile the context was initialized with.
func (c *Context) Platform() Platform { return c.platform }

// IsContextLost reports whether the context was destroyed or failed.
func (c *Context) IsContextLost() bool { return c.state != stateOK }

// MaxTextureSize returns MAX_TEXTURE_SIZE as reported at creation.
func (c *Context) MaxTextureSize() int { return c.maxTextureSize }

// MaxTextureLevel returns the highest mip level a 2D texture can have.
func (c *Context) MaxTextureLevel() int { return c.maxTextureLevel }

// MaxCubeMapSize returns MAX_CUBE_MAP_TEXTURE_SIZE as reported at creation.
func (c *Context) MaxCubeMapSize() int { return c.maxCubeMapSize }

// MaxCubeMapLevel returns the highest mip level a cube map can have.
func (c *Context) MaxCubeMapLevel() int { return c.maxCubeMapLevel }

// GetString forwards VENDOR, RENDERER and VERSION queries to the driver.
func (c *Context) GetString(pname graphics.Enum) string {
	if !c.alive() {
		return ""
	}
	switch pname {
	case graphics.VENDOR, graphics.RENDERER, graphics.VERSION:
		return c.driver.GetString(pname)
	}
	c.setError(graphics.INVALID_ENUM)
	return ""
}

// Swap presents the drawing buffer. A failing swap loses the context.
func (c *Context) Swap() error {
	if !c.alive() {
		return ErrContextLost
	}
	if err := c.surface.SwapBuffers(); err != nil {
		c.state = stateError
		log.Errorf("Context %d: swap failed: %v", c.id, err)
		return fmt.Errorf("webgl: swap: %w", err)
	}
	return nil
}

// Destroy releases every object of the context, the drawing buffer and the
// native surface. It is safe to call more than once.
func (c *Context) Destroy() {
	if c.state == stateDestroyed {
		return
	}
	delete(liveContexts, c.id)
	c.teardown()
	c.state = stateDestroyed
	log.Infof("Destroyed WebGL context %d", c.id)
}

// DisposeAll destroys every live context, oldest first.
func DisposeAll() {
	ids := make([]int, 0, len(liveContexts))
	for id := range liveContexts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		liveContexts[id].Destroy()
	}
}

// LiveContexts returns the number of created contexts not yet destroyed.
func LiveContexts() int { return len(liveContexts) }

func releaseTable[T object](c *Context, t *objectTable[T]) {
	for _, o := range t.all() {
		c.deleteObject(o, t.remove)
	}
}

// teardown drops every binding, then releases every object. It also runs on
// partially initialized contexts.
func (c *Context) teardown() {
	if c.vertexArrays != nil {
		c.vertexArrays.releaseAll()
	}
	c.unbindAll()

	releaseTable(c, c.shaders)
	releaseTable(c, c.programs)
	releaseTable(c, c.buffers)
	releaseTable(c, c.textures)
	releaseTable(c, c.framebuffers)
	releaseTable(c, c.renderbuffers)
	for _, o := range c.deferred {
		c.release(o)
	}

	if c.attrib0Buffer != nil {
		c.driver.DeleteBuffer(c.attrib0Buffer.name)
		c.attrib0Buffer = nil
	}
	c.freeDrawingBuffer()
	c.surface.Shutdown()
}

func (c *Context) unbindAll() {
	if p := c.activeProgram; p != nil {
		c.activeProgram = nil
		c.unref(p)
	}
	if f := c.activeFramebuffer; f != nil {
		c.activeFramebuffer = nil
		c.unref(f)
	}
	if r := c.activeRenderbuffer; r != nil {
		c.activeRenderbuffer = nil
		c.unref(r)
	}
	for _, u := range c.textureUnits {
		for _, target := range []graphics.Enum{graphics.TEXTURE_2D, graphics.TEXTURE_CUBE_MAP} {
			slot := u.slot(target)
			if t := *slot; t != nil {
				*slot = nil
				c.unref(t)
			}
		}
	}
	if c.vertexGlobalState != nil {
		c.vertexGlobalState.releaseBindings(c)
	}
	if c.defaultVertexObjectState != nil {
		c.defaultVertexObjectState.releaseBindings(c)
	}
}
