package webgl

import (
	"github.com/richinsley/gowebgl/graphics"
)

// VertexAttribute is the layout recorded for one attribute slot by
// VertexAttribPointer.
type VertexAttribute struct {
	Enabled    bool
	Buffer     *Buffer
	Size       int32
	Type       graphics.Enum
	Normalized bool
	Stride     int32
	Offset     int
}

// VertexArrayObjectState is the part of vertex input captured by a vertex
// array object: attribute layouts and the element array binding.
type VertexArrayObjectState struct {
	attribs            []VertexAttribute
	elementArrayBuffer *Buffer
}

func newVertexArrayObjectState(n int) *VertexArrayObjectState {
	s := &VertexArrayObjectState{attribs: make([]VertexAttribute, n)}
	for i := range s.attribs {
		s.attribs[i] = VertexAttribute{Size: 4, Type: graphics.FLOAT}
	}
	return s
}

// Attribute returns the layout of slot index.
func (s *VertexArrayObjectState) Attribute(index int) VertexAttribute {
	return s.attribs[index]
}

// ElementArrayBuffer returns the element array binding of this scope.
func (s *VertexArrayObjectState) ElementArrayBuffer() *Buffer {
	return s.elementArrayBuffer
}

// releaseBindings drops the references the scope holds on buffers.
func (s *VertexArrayObjectState) releaseBindings(c *Context) {
	for i := range s.attribs {
		if b := s.attribs[i].Buffer; b != nil {
			s.attribs[i].Buffer = nil
			c.unref(b)
		}
	}
	if b := s.elementArrayBuffer; b != nil {
		s.elementArrayBuffer = nil
		c.unref(b)
	}
}

// VertexArrayGlobalState is vertex input state no vertex array object
// captures: the ARRAY_BUFFER binding and the generic attribute values.
type VertexArrayGlobalState struct {
	arrayBuffer *Buffer
	values      [][4]float32
}

func newVertexArrayGlobalState(n int) *VertexArrayGlobalState {
	s := &VertexArrayGlobalState{values: make([][4]float32, n)}
	for i := range s.values {
		s.values[i] = [4]float32{0, 0, 0, 1}
	}
	return s
}

// ArrayBuffer returns the ARRAY_BUFFER binding.
func (s *VertexArrayGlobalState) ArrayBuffer() *Buffer { return s.arrayBuffer }

// Value returns the generic value of attribute index.
func (s *VertexArrayGlobalState) Value(index int) [4]float32 { return s.values[index] }

func (s *VertexArrayGlobalState) releaseBindings(c *Context) {
	if b := s.arrayBuffer; b != nil {
		s.arrayBuffer = nil
		c.unref(b)
	}
}

// VertexObjectState returns the scope attribute calls currently mutate: the
// bound vertex array object's, or the default one.
func (c *Context) VertexObjectState() *VertexArrayObjectState { return c.vertexObjectState }

// DefaultVertexObjectState returns the scope used when no vertex array object
// is bound.
func (c *Context) DefaultVertexObjectState() *VertexArrayObjectState {
	return c.defaultVertexObjectState
}

// VertexGlobalState returns the state shared by every vertex array object.
func (c *Context) VertexGlobalState() *VertexArrayGlobalState { return c.vertexGlobalState }

func (c *Context) attribIndex(index uint32) bool {
	if int(index) >= len(c.vertexGlobalState.values) {
		c.setError(graphics.INVALID_VALUE)
		return false
	}
	return true
}

// EnableVertexAttribArray enables attribute slot index in the current scope.
func (c *Context) EnableVertexAttribArray(index uint32) {
	if !c.alive() || !c.attribIndex(index) {
		return
	}
	c.vertexObjectState.attribs[index].Enabled = true
	c.driver.EnableVertexAttribArray(index)
}

// DisableVertexAttribArray disables attribute slot index in the current scope.
func (c *Context) DisableVertexAttribArray(index uint32) {
	if !c.alive() || !c.attribIndex(index) {
		return
	}
	c.vertexObjectState.attribs[index].Enabled = false
	c.driver.DisableVertexAttribArray(index)
}

func attribTypeSize(ty graphics.Enum) int {
	switch ty {
	case graphics.BYTE, graphics.UNSIGNED_BYTE:
		return 1
	case graphics.SHORT, graphics.UNSIGNED_SHORT:
		return 2
	case graphics.FLOAT:
		return 4
	}
	return 0
}

// VertexAttribPointer sources attribute index from the buffer bound to
// ARRAY_BUFFER.
func (c *Context) VertexAttribPointer(index uint32, size int32, ty graphics.Enum, normalized bool, stride int32, offset int) {
	if !c.alive() || !c.attribIndex(index) {
		return
	}
	typeSize := attribTypeSize(ty)
	if typeSize == 0 {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	if size < 1 || size > 4 || stride < 0 || stride > 255 || offset < 0 {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	if int(stride)%typeSize != 0 || offset%typeSize != 0 {
		c.setError(graphics.INVALID_OPERATION)
		return
	}
	b := c.vertexGlobalState.arrayBuffer
	if b == nil {
		c.setError(graphics.INVALID_OPERATION)
		return
	}
	attr := &c.vertexObjectState.attribs[index]
	prev := attr.Buffer
	c.retain(b)
	enabled := attr.Enabled
	*attr = VertexAttribute{
		Enabled:    enabled,
		Buffer:     b,
		Size:       size,
		Type:       ty,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	}
	c.driver.VertexAttribPointer(index, size, ty, normalized, stride, offset)
	c.unref(prev)
}

// VertexAttrib4f sets the generic value of attribute index, used when the
// slot is disabled.
func (c *Context) VertexAttrib4f(index uint32, x, y, z, w float32) {
	if !c.alive() || !c.attribIndex(index) {
		return
	}
	c.vertexGlobalState.values[index] = [4]float32{x, y, z, w}
	c.driver.VertexAttrib4f(index, x, y, z, w)
}

// VertexArray is a vertex array object created through
// OES_vertex_array_object. It owns one attribute scope.
type VertexArray struct {
	linkable
	state *VertexArrayObjectState
}

func (v *VertexArray) base() *linkable {
	if v == nil {
		return nil
	}
	return &v.linkable
}

func (v *VertexArray) kind() objectKind { return kindVertexArray }

// State returns the attribute scope captured by v.
func (v *VertexArray) State() *VertexArrayObjectState { return v.state }
