package webgl

import (
	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/graphics"
)

// Program is a WebGLProgram. It holds a reference on each attached shader.
type Program struct {
	linkable
	vertex     *Shader
	fragment   *Shader
	linkStatus bool
	infoLog    string
}

func (p *Program) base() *linkable {
	if p == nil {
		return nil
	}
	return &p.linkable
}

func (p *Program) kind() objectKind { return kindProgram }

// LinkStatus reports whether the last link succeeded.
func (p *Program) LinkStatus() bool { return p.linkStatus }

func (p *Program) attachedShaders() []*Shader {
	var out []*Shader
	if p.vertex != nil {
		out = append(out, p.vertex)
	}
	if p.fragment != nil {
		out = append(out, p.fragment)
	}
	return out
}

func (p *Program) slot(shaderType graphics.Enum) **Shader {
	if shaderType == graphics.VERTEX_SHADER {
		return &p.vertex
	}
	return &p.fragment
}

// CreateProgram allocates an empty program.
func (c *Context) CreateProgram() *Program {
	if !c.alive() {
		return nil
	}
	name := c.driver.CreateProgram()
	if name == 0 {
		c.setError(graphics.OUT_OF_MEMORY)
		return nil
	}
	p := &Program{linkable: linkable{name: name, owner: c.id}}
	c.programs.insert(p)
	return p
}

// Program looks up a live program by identity.
func (c *Context) Program(name uint32) (*Program, error) {
	return lookupObject(c.programs, kindProgram, name)
}

// GetAttachedShaders returns the shaders attached to p.
func (c *Context) GetAttachedShaders(p *Program) []*Shader {
	if !c.owns(p) {
		return nil
	}
	return p.attachedShaders()
}

// AttachShader attaches s to p. Only one shader per stage may be attached.
func (c *Context) AttachShader(p *Program, s *Shader) {
	if !c.alive() || !c.owns(p) || !c.owns(s) {
		return
	}
	slot := p.slot(s.shaderType)
	if *slot != nil {
		c.setError(graphics.INVALID_OPERATION)
		return
	}
	c.retain(s)
	*slot = s
	c.driver.AttachShader(p.name, s.name)
}

// DetachShader detaches s from p, releasing s if it was deleted meanwhile.
func (c *Context) DetachShader(p *Program, s *Shader) {
	if !c.alive() || !c.owns(p) || s == nil {
		return
	}
	slot := p.slot(s.shaderType)
	if *slot != s {
		c.setError(graphics.INVALID_OPERATION)
		return
	}
	c.driver.DetachShader(p.name, s.name)
	*slot = nil
	c.unref(s)
}

// LinkProgram links p and records the status and info log.
func (c *Context) LinkProgram(p *Program) {
	if !c.alive() || !c.owns(p) {
		return
	}
	d := c.driver
	d.LinkProgram(p.name)
	p.linkStatus = d.GetProgrami(p.name, graphics.LINK_STATUS) != 0
	p.infoLog = d.GetProgramInfoLog(p.name)
	if !p.linkStatus {
		log.Debugf("Context %d: program %d failed to link: %s", c.id, p.name, p.infoLog)
	}
}

// GetProgramInfoLog returns the diagnostic of the last link.
func (c *Context) GetProgramInfoLog(p *Program) string {
	if !c.owns(p) {
		return ""
	}
	return p.infoLog
}

// UseProgram makes p the active program; nil clears it. The previously active
// program is released if it was deleted while in use.
func (c *Context) UseProgram(p *Program) {
	if !c.alive() {
		return
	}
	if p != nil {
		if !c.owns(p) {
			return
		}
		if !p.linkStatus {
			c.setError(graphics.INVALID_OPERATION)
			return
		}
	}
	prev := c.activeProgram
	c.retain(p)
	c.activeProgram = p
	if p != nil {
		c.driver.UseProgram(p.name)
	} else {
		c.driver.UseProgram(0)
	}
	c.unref(prev)
}

// ActiveProgram returns the program set by UseProgram.
func (c *Context) ActiveProgram() *Program { return c.activeProgram }

// DeleteProgram deletes p. The active program is released once replaced.
func (c *Context) DeleteProgram(p *Program) {
	if p == nil || !c.alive() || p.owner != c.id {
		return
	}
	c.deleteObject(p, c.programs.remove)
}
