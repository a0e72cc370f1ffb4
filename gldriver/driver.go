// Package gldriver implements graphics.Driver on a desktop OpenGL 4.1 core
// profile context.
package gldriver

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/graphics"
	"github.com/richinsley/gowebgl/translator"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// Extensions the WebGL layer asks for that are part of core 4.1 and so never
// show up in the native extension list.
var coreExtensions = []string{
	"GL_OES_packed_depth_stencil",
	"GL_OES_depth24",
	"GL_OES_depth32",
	"GL_OES_vertex_array_object",
	"GL_EXT_draw_buffers",
}

// Driver issues GL calls on the context current on the calling thread.
type Driver struct {
	defaultVAO uint32
	extensions []string

	sources map[uint32]string
	// translation diagnostics of shaders that never reached the compiler
	rejected map[uint32]string
}

// New loads the GL entry points on first use and prepares the current
// context. A context must be current on the calling thread.
func New() (*Driver, error) {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}

	d := &Driver{
		sources:  make(map[uint32]string),
		rejected: make(map[uint32]string),
	}
	// A core profile has no usable vertex array 0.
	gl.GenVertexArrays(1, &d.defaultVAO)
	gl.BindVertexArray(d.defaultVAO)

	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	seen := make(map[string]bool)
	for i := int32(0); i < n; i++ {
		name := gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i)))
		seen[name] = true
		d.extensions = append(d.extensions, name)
	}
	for _, name := range coreExtensions {
		if !seen[name] {
			d.extensions = append(d.extensions, name)
		}
	}
	log.Infof("OpenGL %s on %s, %d extensions", d.GetString(graphics.VERSION), d.GetString(graphics.RENDERER), len(d.extensions))
	return d, nil
}

// Release frees the driver's own objects. The context must still be current.
func (d *Driver) Release() {
	if d.defaultVAO != 0 {
		gl.DeleteVertexArrays(1, &d.defaultVAO)
		d.defaultVAO = 0
	}
}

func (d *Driver) GetError() graphics.Enum { return graphics.Enum(gl.GetError()) }

func (d *Driver) GetInteger(pname graphics.Enum) int32 {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return v
}

func (d *Driver) GetString(pname graphics.Enum) string {
	if pname == graphics.EXTENSIONS {
		return strings.Join(d.extensions, " ")
	}
	p := gl.GetString(uint32(pname))
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (d *Driver) Extensions() []string { return d.extensions }

func (d *Driver) CreateShader(kind graphics.Enum) uint32 { return gl.CreateShader(uint32(kind)) }

func (d *Driver) ShaderSource(shader uint32, source string) { d.sources[shader] = source }

// CompileShader translates the stored source and hands the result to the
// native compiler. A translation failure is reported as a compile failure
// carrying the translator's diagnostic.
func (d *Driver) CompileShader(shader uint32) {
	src := d.sources[shader]
	delete(d.rejected, shader)
	var kind int32
	gl.GetShaderiv(shader, gl.SHADER_TYPE, &kind)
	stage := "vertex"
	if uint32(kind) == gl.FRAGMENT_SHADER {
		stage = "fragment"
	}
	src, err := translator.Translate(stage, src)
	if err != nil {
		d.rejected[shader] = err.Error()
		return
	}
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)
}

func (d *Driver) GetShaderi(shader uint32, pname graphics.Enum) int32 {
	if _, ok := d.rejected[shader]; ok && pname == graphics.COMPILE_STATUS {
		return gl.FALSE
	}
	var v int32
	gl.GetShaderiv(shader, uint32(pname), &v)
	return v
}

func (d *Driver) GetShaderInfoLog(shader uint32) string {
	if diag, ok := d.rejected[shader]; ok {
		return diag
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *Driver) DeleteShader(shader uint32) {
	delete(d.sources, shader)
	delete(d.rejected, shader)
	gl.DeleteShader(shader)
}

func (d *Driver) CreateProgram() uint32               { return gl.CreateProgram() }
func (d *Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (d *Driver) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }
func (d *Driver) LinkProgram(program uint32)          { gl.LinkProgram(program) }
func (d *Driver) UseProgram(program uint32)           { gl.UseProgram(program) }
func (d *Driver) DeleteProgram(program uint32)        { gl.DeleteProgram(program) }

func (d *Driver) GetProgrami(program uint32, pname graphics.Enum) int32 {
	var v int32
	gl.GetProgramiv(program, uint32(pname), &v)
	return v
}

func (d *Driver) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *Driver) CreateBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (d *Driver) BindBuffer(target graphics.Enum, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

func (d *Driver) BufferData(target graphics.Enum, size int, data []byte, usage graphics.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), size, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), size, gl.Ptr(data), uint32(usage))
}

func (d *Driver) BufferSubData(target graphics.Enum, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(uint32(target), offset, len(data), gl.Ptr(data))
}

func (d *Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *Driver) CreateTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (d *Driver) ActiveTexture(unit graphics.Enum) { gl.ActiveTexture(uint32(unit)) }

func (d *Driver) BindTexture(target graphics.Enum, texture uint32) {
	gl.BindTexture(uint32(target), texture)
}

func (d *Driver) TexImage2D(target graphics.Enum, level int32, internalFormat graphics.Enum, width, height int32, format, ty graphics.Enum, pixels []byte) {
	var p unsafe.Pointer
	if len(pixels) > 0 {
		p = gl.Ptr(pixels)
	}
	gl.TexImage2D(uint32(target), level, int32(internalFormat), width, height, 0, uint32(format), uint32(ty), p)
}

func (d *Driver) TexParameteri(target, pname graphics.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (d *Driver) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (d *Driver) CreateFramebuffer() uint32 {
	var f uint32
	gl.GenFramebuffers(1, &f)
	return f
}

func (d *Driver) BindFramebuffer(target graphics.Enum, framebuffer uint32) {
	gl.BindFramebuffer(uint32(target), framebuffer)
}

func (d *Driver) FramebufferTexture2D(target, attachment, texTarget graphics.Enum, texture uint32, level int32) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), texture, level)
}

func (d *Driver) FramebufferRenderbuffer(target, attachment, rbTarget graphics.Enum, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(rbTarget), renderbuffer)
}

func (d *Driver) CheckFramebufferStatus(target graphics.Enum) graphics.Enum {
	return graphics.Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (d *Driver) DrawBuffers(buffers []graphics.Enum) {
	if len(buffers) == 0 {
		return
	}
	bufs := make([]uint32, len(buffers))
	for i, b := range buffers {
		bufs[i] = uint32(b)
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (d *Driver) DeleteFramebuffer(framebuffer uint32) { gl.DeleteFramebuffers(1, &framebuffer) }

func (d *Driver) CreateRenderbuffer() uint32 {
	var r uint32
	gl.GenRenderbuffers(1, &r)
	return r
}

func (d *Driver) BindRenderbuffer(target graphics.Enum, renderbuffer uint32) {
	gl.BindRenderbuffer(uint32(target), renderbuffer)
}

func (d *Driver) RenderbufferStorage(target, internalFormat graphics.Enum, width, height int32) {
	gl.RenderbufferStorage(uint32(target), uint32(internalFormat), width, height)
}

func (d *Driver) DeleteRenderbuffer(renderbuffer uint32) { gl.DeleteRenderbuffers(1, &renderbuffer) }

func (d *Driver) CreateVertexArray() uint32 {
	var v uint32
	gl.GenVertexArrays(1, &v)
	return v
}

// BindVertexArray maps array 0 to the driver's default vertex array.
func (d *Driver) BindVertexArray(array uint32) {
	if array == 0 {
		array = d.defaultVAO
	}
	gl.BindVertexArray(array)
}

func (d *Driver) DeleteVertexArray(array uint32) { gl.DeleteVertexArrays(1, &array) }

func (d *Driver) EnableVertexAttribArray(index uint32)  { gl.EnableVertexAttribArray(index) }
func (d *Driver) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (d *Driver) VertexAttribPointer(index uint32, size int32, ty graphics.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, uint32(ty), normalized, stride, gl.PtrOffset(offset))
}

func (d *Driver) VertexAttrib4f(index uint32, x, y, z, w float32) {
	gl.VertexAttrib4f(index, x, y, z, w)
}

func (d *Driver) PixelStorei(pname graphics.Enum, param int32) { gl.PixelStorei(uint32(pname), param) }
func (d *Driver) Viewport(x, y, width, height int32)           { gl.Viewport(x, y, width, height) }
func (d *Driver) Scissor(x, y, width, height int32)            { gl.Scissor(x, y, width, height) }
func (d *Driver) ClearColor(r, g, b, a float32)                { gl.ClearColor(r, g, b, a) }
func (d *Driver) ClearDepthf(depth float32)                    { gl.ClearDepth(float64(depth)) }
func (d *Driver) ClearStencil(s int32)                         { gl.ClearStencil(s) }
func (d *Driver) Clear(mask graphics.Enum)                     { gl.Clear(uint32(mask)) }

func (d *Driver) DrawArrays(mode graphics.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (d *Driver) DrawElements(mode graphics.Enum, count int32, ty graphics.Enum, offset int) {
	gl.DrawElements(uint32(mode), count, uint32(ty), gl.PtrOffset(offset))
}

func (d *Driver) ReadPixels(x, y, width, height int32, format, ty graphics.Enum, dst []byte) {
	if len(dst) == 0 {
		return
	}
	gl.ReadPixels(x, y, width, height, uint32(format), uint32(ty), gl.Ptr(dst))
}

func (d *Driver) Flush()  { gl.Flush() }
func (d *Driver) Finish() { gl.Finish() }

var _ graphics.Driver = (*Driver)(nil)
