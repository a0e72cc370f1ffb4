// Package fakegl is an in-memory graphics.Driver used to test the WebGL layer
// without a GPU. It keeps per-kind live object sets and records the state
// changing calls tests assert on.
package fakegl

import (
	"fmt"
	"strings"

	"github.com/richinsley/gowebgl/graphics"
)

// Kind names a class of native objects.
type Kind int

const (
	Shader Kind = iota
	Program
	Buffer
	Texture
	Framebuffer
	Renderbuffer
	VertexArray
)

type shader struct {
	kind     graphics.Enum
	source   string
	compiled bool
	log      string
}

type program struct {
	attached map[uint32]bool
	linked   bool
	log      string
}

// Driver implements graphics.Driver in memory.
type Driver struct {
	// Limits answers GetInteger.
	Limits map[graphics.Enum]int32
	// ExtensionList is returned by Extensions.
	ExtensionList []string
	// FramebufferStatus is returned by CheckFramebufferStatus.
	FramebufferStatus graphics.Enum
	// FailCreate makes every Create* call of the kind return 0.
	FailCreate map[Kind]bool

	next          uint32
	live          map[Kind]map[uint32]bool
	shaders       map[uint32]*shader
	programs      map[uint32]*program
	DoubleDeletes int

	Bindings       map[graphics.Enum]uint32
	CurrentProgram uint32
	ActiveUnit     graphics.Enum
	PixelStore     map[graphics.Enum]int32
	Enabled        map[uint32]bool
	Viewports      [][4]int32
	Scissors       [][4]int32
	Clears         []graphics.Enum
	Color          [4]float32
	Draws          int
	TexImages      [][]byte
	BufferUploads  int
	Errors         []graphics.Enum
}

// New returns a driver reporting 8 combined texture units, 16 vertex
// attributes, 4096 texel textures and the extensions the WebGL layer needs.
func New() *Driver {
	return &Driver{
		Limits: map[graphics.Enum]int32{
			graphics.MAX_COMBINED_TEXTURE_IMAGE_UNITS: 8,
			graphics.MAX_VERTEX_ATTRIBS:               16,
			graphics.MAX_TEXTURE_SIZE:                 4096,
			graphics.MAX_CUBE_MAP_TEXTURE_SIZE:        4096,
			graphics.MAX_RENDERBUFFER_SIZE:            4096,
			graphics.MAX_COLOR_ATTACHMENTS_WEBGL:      4,
			graphics.MAX_DRAW_BUFFERS_WEBGL:           4,
		},
		ExtensionList: []string{
			"GL_OES_packed_depth_stencil",
			"GL_OES_depth24",
			"GL_OES_vertex_array_object",
			"GL_EXT_draw_buffers",
		},
		FramebufferStatus: graphics.FRAMEBUFFER_COMPLETE,
		FailCreate:        make(map[Kind]bool),
		live:              make(map[Kind]map[uint32]bool),
		shaders:           make(map[uint32]*shader),
		programs:          make(map[uint32]*program),
		Bindings:          make(map[graphics.Enum]uint32),
		PixelStore:        make(map[graphics.Enum]int32),
		Enabled:           make(map[uint32]bool),
	}
}

// Live returns the number of native objects of kind not yet deleted.
func (d *Driver) Live(kind Kind) int { return len(d.live[kind]) }

// IsLive reports whether name is a live object of kind.
func (d *Driver) IsLive(kind Kind, name uint32) bool { return d.live[kind][name] }

func (d *Driver) create(kind Kind) uint32 {
	if d.FailCreate[kind] {
		return 0
	}
	d.next++
	if d.live[kind] == nil {
		d.live[kind] = make(map[uint32]bool)
	}
	d.live[kind][d.next] = true
	return d.next
}

func (d *Driver) delete(kind Kind, name uint32) {
	if name == 0 {
		return
	}
	if !d.live[kind][name] {
		d.DoubleDeletes++
		return
	}
	delete(d.live[kind], name)
}

func (d *Driver) GetError() graphics.Enum {
	if len(d.Errors) == 0 {
		return graphics.NO_ERROR
	}
	e := d.Errors[0]
	d.Errors = d.Errors[1:]
	return e
}

func (d *Driver) GetInteger(pname graphics.Enum) int32 { return d.Limits[pname] }

func (d *Driver) GetString(pname graphics.Enum) string {
	switch pname {
	case graphics.VENDOR:
		return "fakegl"
	case graphics.RENDERER:
		return "fakegl software"
	case graphics.VERSION:
		return "OpenGL ES 2.0 fakegl"
	case graphics.EXTENSIONS:
		return strings.Join(d.ExtensionList, " ")
	}
	return ""
}

func (d *Driver) Extensions() []string { return d.ExtensionList }

func (d *Driver) CreateShader(kind graphics.Enum) uint32 {
	name := d.create(Shader)
	if name != 0 {
		d.shaders[name] = &shader{kind: kind}
	}
	return name
}

func (d *Driver) ShaderSource(name uint32, source string) {
	if s := d.shaders[name]; s != nil {
		s.source = source
	}
}

// CompileShader accepts any source declaring main.
func (d *Driver) CompileShader(name uint32) {
	s := d.shaders[name]
	if s == nil {
		return
	}
	s.compiled = strings.Contains(s.source, "void main")
	s.log = ""
	if !s.compiled {
		s.log = "ERROR: 0:1: 'main' : function not defined"
	}
}

func (d *Driver) GetShaderi(name uint32, pname graphics.Enum) int32 {
	s := d.shaders[name]
	if s == nil {
		return 0
	}
	switch pname {
	case graphics.COMPILE_STATUS:
		return boolInt(s.compiled)
	case graphics.SHADER_TYPE:
		return int32(s.kind)
	case graphics.DELETE_STATUS:
		return boolInt(!d.live[Shader][name])
	}
	return 0
}

func (d *Driver) GetShaderInfoLog(name uint32) string {
	if s := d.shaders[name]; s != nil {
		return s.log
	}
	return ""
}

func (d *Driver) DeleteShader(name uint32) { d.delete(Shader, name) }

func (d *Driver) CreateProgram() uint32 {
	name := d.create(Program)
	if name != 0 {
		d.programs[name] = &program{attached: make(map[uint32]bool)}
	}
	return name
}

func (d *Driver) AttachShader(p, s uint32) {
	if prog := d.programs[p]; prog != nil {
		prog.attached[s] = true
	}
}

func (d *Driver) DetachShader(p, s uint32) {
	if prog := d.programs[p]; prog != nil {
		delete(prog.attached, s)
	}
}

// LinkProgram succeeds when one compiled shader of each stage is attached.
func (d *Driver) LinkProgram(p uint32) {
	prog := d.programs[p]
	if prog == nil {
		return
	}
	stages := make(map[graphics.Enum]bool)
	for name := range prog.attached {
		if s := d.shaders[name]; s != nil && s.compiled {
			stages[s.kind] = true
		}
	}
	prog.linked = stages[graphics.VERTEX_SHADER] && stages[graphics.FRAGMENT_SHADER]
	prog.log = ""
	if !prog.linked {
		prog.log = fmt.Sprintf("ERROR: program %d: missing compiled vertex or fragment shader", p)
	}
}

func (d *Driver) GetProgrami(p uint32, pname graphics.Enum) int32 {
	prog := d.programs[p]
	if prog == nil {
		return 0
	}
	if pname == graphics.LINK_STATUS {
		return boolInt(prog.linked)
	}
	return 0
}

func (d *Driver) GetProgramInfoLog(p uint32) string {
	if prog := d.programs[p]; prog != nil {
		return prog.log
	}
	return ""
}

func (d *Driver) UseProgram(p uint32) { d.CurrentProgram = p }

func (d *Driver) DeleteProgram(p uint32) { d.delete(Program, p) }

func (d *Driver) CreateBuffer() uint32 { return d.create(Buffer) }

func (d *Driver) BindBuffer(target graphics.Enum, b uint32) { d.Bindings[target] = b }

func (d *Driver) BufferData(target graphics.Enum, size int, data []byte, usage graphics.Enum) {
	d.BufferUploads++
}

func (d *Driver) BufferSubData(target graphics.Enum, offset int, data []byte) {}

func (d *Driver) DeleteBuffer(b uint32) { d.delete(Buffer, b) }

func (d *Driver) CreateTexture() uint32 { return d.create(Texture) }

func (d *Driver) ActiveTexture(unit graphics.Enum) { d.ActiveUnit = unit }

func (d *Driver) BindTexture(target graphics.Enum, t uint32) { d.Bindings[target] = t }

func (d *Driver) TexImage2D(target graphics.Enum, level int32, internalFormat graphics.Enum, width, height int32, format, ty graphics.Enum, pixels []byte) {
	d.TexImages = append(d.TexImages, pixels)
}

func (d *Driver) TexParameteri(target, pname graphics.Enum, param int32) {}

func (d *Driver) DeleteTexture(t uint32) { d.delete(Texture, t) }

func (d *Driver) CreateFramebuffer() uint32 { return d.create(Framebuffer) }

func (d *Driver) BindFramebuffer(target graphics.Enum, f uint32) { d.Bindings[target] = f }

func (d *Driver) FramebufferTexture2D(target, attachment, texTarget graphics.Enum, texture uint32, level int32) {
}

func (d *Driver) FramebufferRenderbuffer(target, attachment, rbTarget graphics.Enum, rb uint32) {}

func (d *Driver) CheckFramebufferStatus(target graphics.Enum) graphics.Enum {
	return d.FramebufferStatus
}

func (d *Driver) DrawBuffers(buffers []graphics.Enum) {}

func (d *Driver) DeleteFramebuffer(f uint32) { d.delete(Framebuffer, f) }

func (d *Driver) CreateRenderbuffer() uint32 { return d.create(Renderbuffer) }

func (d *Driver) BindRenderbuffer(target graphics.Enum, rb uint32) { d.Bindings[target] = rb }

func (d *Driver) RenderbufferStorage(target, internalFormat graphics.Enum, width, height int32) {}

func (d *Driver) DeleteRenderbuffer(rb uint32) { d.delete(Renderbuffer, rb) }

func (d *Driver) CreateVertexArray() uint32 { return d.create(VertexArray) }

func (d *Driver) BindVertexArray(a uint32) { d.Bindings[graphics.VERTEX_ARRAY_BINDING_OES] = a }

func (d *Driver) DeleteVertexArray(a uint32) { d.delete(VertexArray, a) }

func (d *Driver) EnableVertexAttribArray(index uint32) { d.Enabled[index] = true }

func (d *Driver) DisableVertexAttribArray(index uint32) { delete(d.Enabled, index) }

func (d *Driver) VertexAttribPointer(index uint32, size int32, ty graphics.Enum, normalized bool, stride int32, offset int) {
}

func (d *Driver) VertexAttrib4f(index uint32, x, y, z, w float32) {}

func (d *Driver) PixelStorei(pname graphics.Enum, param int32) { d.PixelStore[pname] = param }

func (d *Driver) Viewport(x, y, width, height int32) {
	d.Viewports = append(d.Viewports, [4]int32{x, y, width, height})
}

func (d *Driver) Scissor(x, y, width, height int32) {
	d.Scissors = append(d.Scissors, [4]int32{x, y, width, height})
}

func (d *Driver) ClearColor(r, g, b, a float32) { d.Color = [4]float32{r, g, b, a} }

func (d *Driver) ClearDepthf(depth float32) {}

func (d *Driver) ClearStencil(s int32) {}

func (d *Driver) Clear(mask graphics.Enum) { d.Clears = append(d.Clears, mask) }

func (d *Driver) DrawArrays(mode graphics.Enum, first, count int32) { d.Draws++ }

func (d *Driver) DrawElements(mode graphics.Enum, count int32, ty graphics.Enum, offset int) {
	d.Draws++
}

// ReadPixels fills dst with the current clear color.
func (d *Driver) ReadPixels(x, y, width, height int32, format, ty graphics.Enum, dst []byte) {
	var px [4]byte
	for i, v := range d.Color {
		px[i] = byte(v*255 + 0.5)
	}
	for i := 0; i+3 < len(dst); i += 4 {
		copy(dst[i:], px[:])
	}
}

func (d *Driver) Flush() {}

func (d *Driver) Finish() {}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
