package webgl

import (
	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/graphics"
)

// Shader is a WebGLShader.
type Shader struct {
	linkable
	shaderType    graphics.Enum
	source        string
	compileStatus bool
	infoLog       string
}

func (s *Shader) base() *linkable {
	if s == nil {
		return nil
	}
	return &s.linkable
}

func (s *Shader) kind() objectKind { return kindShader }

// Type returns VERTEX_SHADER or FRAGMENT_SHADER.
func (s *Shader) Type() graphics.Enum { return s.shaderType }

// CompileStatus reports whether the last compilation succeeded.
func (s *Shader) CompileStatus() bool { return s.compileStatus }

// CreateShader allocates a shader of the given stage.
func (c *Context) CreateShader(shaderType graphics.Enum) *Shader {
	if !c.alive() {
		return nil
	}
	if shaderType != graphics.VERTEX_SHADER && shaderType != graphics.FRAGMENT_SHADER {
		c.setError(graphics.INVALID_ENUM)
		return nil
	}
	name := c.driver.CreateShader(shaderType)
	if name == 0 {
		c.setError(graphics.OUT_OF_MEMORY)
		return nil
	}
	s := &Shader{linkable: linkable{name: name, owner: c.id}, shaderType: shaderType}
	c.shaders.insert(s)
	return s
}

// Shader looks up a live shader by identity.
func (c *Context) Shader(name uint32) (*Shader, error) {
	return lookupObject(c.shaders, kindShader, name)
}

// ShaderSource replaces the source of s. The source reaches the driver on
// CompileShader.
func (c *Context) ShaderSource(s *Shader, source string) {
	if !c.alive() || !c.owns(s) {
		return
	}
	s.source = source
}

// GetShaderSource returns the last source given to s.
func (c *Context) GetShaderSource(s *Shader) string {
	if !c.owns(s) {
		return ""
	}
	return s.source
}

// CompileShader compiles s and records the status and info log.
func (c *Context) CompileShader(s *Shader) {
	if !c.alive() || !c.owns(s) {
		return
	}
	d := c.driver
	d.ShaderSource(s.name, s.source)
	d.CompileShader(s.name)
	s.compileStatus = d.GetShaderi(s.name, graphics.COMPILE_STATUS) != 0
	s.infoLog = d.GetShaderInfoLog(s.name)
	if !s.compileStatus {
		log.Debugf("Context %d: shader %d failed to compile: %s", c.id, s.name, s.infoLog)
	}
}

// GetShaderInfoLog returns the diagnostic of the last compilation.
func (c *Context) GetShaderInfoLog(s *Shader) string {
	if !c.owns(s) {
		return ""
	}
	return s.infoLog
}

// DeleteShader deletes s. A shader still attached to a program is released
// when the program lets go of it.
func (c *Context) DeleteShader(s *Shader) {
	if s == nil || !c.alive() || s.owner != c.id {
		return
	}
	c.deleteObject(s, c.shaders.remove)
}
