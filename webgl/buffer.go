package webgl

import (
	"github.com/richinsley/gowebgl/graphics"
)

// Buffer is a WebGLBuffer. Element array buffers keep a shadow copy of their
// contents so draw calls can be validated against it.
type Buffer struct {
	linkable
	target   graphics.Enum
	size     int
	usage    graphics.Enum
	elements []byte
}

func (b *Buffer) base() *linkable {
	if b == nil {
		return nil
	}
	return &b.linkable
}

func (b *Buffer) kind() objectKind { return kindBuffer }

// Size returns the allocated size in bytes.
func (b *Buffer) Size() int { return b.size }

// CreateBuffer allocates a buffer object.
func (c *Context) CreateBuffer() *Buffer {
	if !c.alive() {
		return nil
	}
	name := c.driver.CreateBuffer()
	if name == 0 {
		c.setError(graphics.OUT_OF_MEMORY)
		return nil
	}
	b := &Buffer{linkable: linkable{name: name, owner: c.id}}
	c.buffers.insert(b)
	return b
}

// Buffer looks up a live buffer by identity.
func (c *Context) Buffer(name uint32) (*Buffer, error) {
	return lookupObject(c.buffers, kindBuffer, name)
}

// bufferSlot returns the binding point for target: ARRAY_BUFFER lives in the
// global vertex state, ELEMENT_ARRAY_BUFFER in the bound vertex array.
func (c *Context) bufferSlot(target graphics.Enum) **Buffer {
	switch target {
	case graphics.ARRAY_BUFFER:
		return &c.vertexGlobalState.arrayBuffer
	case graphics.ELEMENT_ARRAY_BUFFER:
		return &c.vertexObjectState.elementArrayBuffer
	}
	return nil
}

// BindBuffer binds b to target; nil unbinds. A buffer keeps the target it was
// first bound to.
func (c *Context) BindBuffer(target graphics.Enum, b *Buffer) {
	if !c.alive() {
		return
	}
	slot := c.bufferSlot(target)
	if slot == nil {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	if b != nil {
		if !c.owns(b) {
			return
		}
		if b.target != 0 && b.target != target {
			c.setError(graphics.INVALID_OPERATION)
			return
		}
		b.target = target
	}
	prev := *slot
	c.retain(b)
	*slot = b
	if b != nil {
		c.driver.BindBuffer(target, b.name)
	} else {
		c.driver.BindBuffer(target, 0)
	}
	c.unref(prev)
}

func validBufferUsage(usage graphics.Enum) bool {
	switch usage {
	case graphics.STREAM_DRAW, graphics.STATIC_DRAW, graphics.DYNAMIC_DRAW:
		return true
	}
	return false
}

func (c *Context) boundBuffer(target graphics.Enum) *Buffer {
	slot := c.bufferSlot(target)
	if slot == nil {
		c.setError(graphics.INVALID_ENUM)
		return nil
	}
	if *slot == nil {
		c.setError(graphics.INVALID_OPERATION)
		return nil
	}
	return *slot
}

// BufferData uploads data into the buffer bound to target.
func (c *Context) BufferData(target graphics.Enum, data []byte, usage graphics.Enum) {
	if !c.alive() {
		return
	}
	if !validBufferUsage(usage) {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	b := c.boundBuffer(target)
	if b == nil {
		return
	}
	c.driver.BufferData(target, len(data), data, usage)
	b.size, b.usage = len(data), usage
	if target == graphics.ELEMENT_ARRAY_BUFFER {
		b.elements = append(b.elements[:0], data...)
	}
}

// BufferDataSize allocates size zeroed bytes for the buffer bound to target.
func (c *Context) BufferDataSize(target graphics.Enum, size int, usage graphics.Enum) {
	if !c.alive() {
		return
	}
	if size < 0 {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	if !validBufferUsage(usage) {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	b := c.boundBuffer(target)
	if b == nil {
		return
	}
	c.driver.BufferData(target, size, nil, usage)
	b.size, b.usage = size, usage
	if target == graphics.ELEMENT_ARRAY_BUFFER {
		b.elements = make([]byte, size)
	}
}

// BufferSubData overwrites part of the buffer bound to target.
func (c *Context) BufferSubData(target graphics.Enum, offset int, data []byte) {
	if !c.alive() {
		return
	}
	if offset < 0 {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	b := c.boundBuffer(target)
	if b == nil {
		return
	}
	if offset > b.size || len(data) > b.size-offset {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	c.driver.BufferSubData(target, offset, data)
	if target == graphics.ELEMENT_ARRAY_BUFFER {
		copy(b.elements[offset:], data)
	}
}

// DeleteBuffer deletes b. A buffer still bound or referenced by a vertex
// attribute is released when the last reference goes away.
func (c *Context) DeleteBuffer(b *Buffer) {
	if b == nil || !c.alive() || b.owner != c.id {
		return
	}
	c.deleteObject(b, c.buffers.remove)
}
