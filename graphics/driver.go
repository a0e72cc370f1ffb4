package graphics

// Driver is the narrow set of native GL primitives the WebGL layer sequences.
// Object names returned by the Create* methods are never 0 on success; 0
// means the driver refused to allocate.
//
// A Driver is bound to the thread that made its context current and is never
// used concurrently.
type Driver interface {
	GetError() Enum
	GetInteger(pname Enum) int32
	GetString(pname Enum) string
	// Extensions lists the native extension names available on the context.
	Extensions() []string

	CreateShader(kind Enum) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderi(shader uint32, pname Enum) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program uint32, pname Enum) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	CreateBuffer() uint32
	BindBuffer(target Enum, buffer uint32)
	BufferData(target Enum, size int, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)
	DeleteBuffer(buffer uint32)

	CreateTexture() uint32
	ActiveTexture(unit Enum)
	BindTexture(target Enum, texture uint32)
	TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, ty Enum, pixels []byte)
	TexParameteri(target, pname Enum, param int32)
	DeleteTexture(texture uint32)

	CreateFramebuffer() uint32
	BindFramebuffer(target Enum, framebuffer uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, renderbuffer uint32)
	CheckFramebufferStatus(target Enum) Enum
	DrawBuffers(buffers []Enum)
	DeleteFramebuffer(framebuffer uint32)

	CreateRenderbuffer() uint32
	BindRenderbuffer(target Enum, renderbuffer uint32)
	RenderbufferStorage(target, internalFormat Enum, width, height int32)
	DeleteRenderbuffer(renderbuffer uint32)

	CreateVertexArray() uint32
	BindVertexArray(array uint32)
	DeleteVertexArray(array uint32)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, ty Enum, normalized bool, stride int32, offset int)
	VertexAttrib4f(index uint32, x, y, z, w float32)

	PixelStorei(pname Enum, param int32)
	Viewport(x, y, width, height int32)
	Scissor(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	ClearDepthf(depth float32)
	ClearStencil(s int32)
	Clear(mask Enum)
	DrawArrays(mode Enum, first, count int32)
	DrawElements(mode Enum, count int32, ty Enum, offset int)
	ReadPixels(x, y, width, height int32, format, ty Enum, dst []byte)
	Flush()
	Finish()
}
