package shader

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/graphics"
	"github.com/richinsley/gowebgl/webgl"
)

var (
	// ErrCompile is returned by NewProgram when a stage fails to compile.
	ErrCompile = errors.New("shader: compile failed")
	// ErrLink is returned by NewProgram when the program fails to link.
	ErrLink = errors.New("shader: link failed")
)

// ──────────────────────────────── WebGL 1.0 GLSL ────────────────────────────────

const vertexShaderSource = `attribute vec2 in_vert;
varying vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const solidFragmentShaderSource = `precision mediump float;
uniform vec4 u_color;
void main() { gl_FragColor = u_color; }
`

const blitFragmentShaderSourceFlip = `precision mediump float;
varying vec2 frag_uv;
uniform sampler2D u_texture;
void main() { gl_FragColor = texture2D(u_texture, vec2(frag_uv.x, 1.0 - frag_uv.y)); }
`

const blitFragmentShaderSource = `precision mediump float;
varying vec2 frag_uv;
uniform sampler2D u_texture;
void main() { gl_FragColor = texture2D(u_texture, frag_uv); }
`

// ────────────────────────────────── Public API ─────────────────────────────────

// VertexShader returns a full-screen quad vertex shader reading a vec2
// position from attribute 0.
func VertexShader() string { return vertexShaderSource }

// SolidFragmentShader returns a fragment shader writing the u_color uniform.
func SolidFragmentShader() string { return solidFragmentShaderSource }

// BlitFragmentShader returns a fragment shader sampling u_texture, optionally
// flipped vertically.
func BlitFragmentShader(flip bool) string {
	if flip {
		return blitFragmentShaderSourceFlip
	}
	return blitFragmentShaderSource
}

func stageName(kind graphics.Enum) string {
	switch kind {
	case graphics.VERTEX_SHADER:
		return "vertex"
	case graphics.FRAGMENT_SHADER:
		return "fragment"
	}
	return fmt.Sprintf("0x%x", uint32(kind))
}

// Compile creates and compiles a shader of the given stage. On failure the
// shader is deleted and nil is returned with the compiler's diagnostic.
func Compile(c *webgl.Context, kind graphics.Enum, src string) (*webgl.Shader, string) {
	s := c.CreateShader(kind)
	if s == nil {
		return nil, fmt.Sprintf("could not create %s shader", stageName(kind))
	}
	c.ShaderSource(s, src)
	c.CompileShader(s)
	if !s.CompileStatus() {
		diag := c.GetShaderInfoLog(s)
		c.DeleteShader(s)
		log.Warnf("%s shader failed to compile: %s", stageName(kind), diag)
		return nil, diag
	}
	return s, ""
}

// Link creates a program from a compiled vertex and fragment shader. On
// failure the program is deleted and nil is returned with the linker's
// diagnostic. The shaders are left to the caller.
func Link(c *webgl.Context, vs, fs *webgl.Shader) (*webgl.Program, string) {
	p := c.CreateProgram()
	if p == nil {
		return nil, "could not create program"
	}
	if vs != nil {
		c.AttachShader(p, vs)
	}
	if fs != nil {
		c.AttachShader(p, fs)
	}
	c.LinkProgram(p)
	if !p.LinkStatus() {
		diag := c.GetProgramInfoLog(p)
		c.DeleteProgram(p)
		log.Warnf("program failed to link: %s", diag)
		return nil, diag
	}
	return p, ""
}

// NewProgram compiles both stages and links them. The shaders are deleted
// once attached, so they are released together with the program.
func NewProgram(c *webgl.Context, vertexSrc, fragmentSrc string) (*webgl.Program, error) {
	vs, diag := Compile(c, graphics.VERTEX_SHADER, vertexSrc)
	if vs == nil {
		return nil, fmt.Errorf("%w: vertex: %s", ErrCompile, diag)
	}
	defer c.DeleteShader(vs)

	fs, diag := Compile(c, graphics.FRAGMENT_SHADER, fragmentSrc)
	if fs == nil {
		return nil, fmt.Errorf("%w: fragment: %s", ErrCompile, diag)
	}
	defer c.DeleteShader(fs)

	p, diag := Link(c, vs, fs)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrLink, diag)
	}
	return p, nil
}
