package webgl

import (
	"encoding/binary"
	"math"

	"github.com/richinsley/gowebgl/graphics"
)

func validDrawMode(mode graphics.Enum) bool {
	switch mode {
	case graphics.POINTS, graphics.LINES, graphics.LINE_LOOP, graphics.LINE_STRIP,
		graphics.TRIANGLES, graphics.TRIANGLE_STRIP, graphics.TRIANGLE_FAN:
		return true
	}
	return false
}

// checkDraw validates state shared by both draw calls. vertices is the
// number of vertices the call reads from every enabled attribute.
func (c *Context) checkDraw(mode graphics.Enum, vertices int) bool {
	if !validDrawMode(mode) {
		c.setError(graphics.INVALID_ENUM)
		return false
	}
	if c.activeProgram == nil || !c.activeProgram.linkStatus {
		c.setError(graphics.INVALID_OPERATION)
		return false
	}
	if c.activeFramebuffer != nil && c.CheckFramebufferStatus(graphics.FRAMEBUFFER) != graphics.FRAMEBUFFER_COMPLETE {
		c.setError(graphics.INVALID_FRAMEBUFFER_OPERATION)
		return false
	}
	for _, a := range c.vertexObjectState.attribs {
		if !a.Enabled {
			continue
		}
		if a.Buffer == nil {
			c.setError(graphics.INVALID_OPERATION)
			return false
		}
		if vertices == 0 {
			continue
		}
		elem := int(a.Size) * attribTypeSize(a.Type)
		stride := int(a.Stride)
		if stride == 0 {
			stride = elem
		}
		avail := a.Buffer.size - a.Offset
		if a.Offset > a.Buffer.size || elem > avail || vertices-1 > (avail-elem)/stride {
			c.setError(graphics.INVALID_OPERATION)
			return false
		}
	}
	return true
}

// DrawArrays renders count vertices starting at first.
func (c *Context) DrawArrays(mode graphics.Enum, first, count int32) {
	if !c.alive() {
		return
	}
	if first < 0 || count < 0 {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	vertices := 0
	if count > 0 {
		vertices = int(first) + int(count)
	}
	if !c.checkDraw(mode, vertices) || count == 0 {
		return
	}
	emulated := c.beginAttrib0(vertices)
	c.driver.DrawArrays(mode, first, count)
	if emulated {
		c.endAttrib0()
	}
}

func indexSize(ty graphics.Enum) int {
	switch ty {
	case graphics.UNSIGNED_BYTE:
		return 1
	case graphics.UNSIGNED_SHORT:
		return 2
	}
	return 0
}

// maxIndex scans count indices of type ty in the element array shadow copy.
func maxIndex(elements []byte, ty graphics.Enum, offset, count int) int {
	top := -1
	for i := 0; i < count; i++ {
		var v int
		if ty == graphics.UNSIGNED_BYTE {
			v = int(elements[offset+i])
		} else {
			v = int(binary.LittleEndian.Uint16(elements[offset+2*i:]))
		}
		if v > top {
			top = v
		}
	}
	return top
}

// DrawElements renders count indexed vertices read from the element array
// buffer at byte offset.
func (c *Context) DrawElements(mode graphics.Enum, count int32, ty graphics.Enum, offset int) {
	if !c.alive() {
		return
	}
	size := indexSize(ty)
	if size == 0 {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	if count < 0 || offset < 0 {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	elements := c.vertexObjectState.elementArrayBuffer
	if elements == nil || offset%size != 0 || offset > len(elements.elements) ||
		int(count) > (len(elements.elements)-offset)/size {
		c.setError(graphics.INVALID_OPERATION)
		return
	}
	vertices := maxIndex(elements.elements, ty, offset, int(count)) + 1
	if !c.checkDraw(mode, vertices) || count == 0 {
		return
	}
	emulated := c.beginAttrib0(vertices)
	c.driver.DrawElements(mode, count, ty, offset)
	if emulated {
		c.endAttrib0()
	}
}

// beginAttrib0 feeds attribute 0 from the reserved buffer when the
// application left it disabled, replicating its generic value per vertex.
func (c *Context) beginAttrib0(vertices int) bool {
	if c.attrib0Buffer == nil || len(c.vertexObjectState.attribs) == 0 || c.vertexObjectState.attribs[0].Enabled {
		return false
	}
	d := c.driver
	value := c.vertexGlobalState.values[0]
	d.BindBuffer(graphics.ARRAY_BUFFER, c.attrib0Buffer.name)
	if vertices > c.attrib0Vertices || value != c.attrib0Value {
		data := make([]byte, 16*vertices)
		for i := 0; i < vertices; i++ {
			for j, f := range value {
				binary.LittleEndian.PutUint32(data[16*i+4*j:], math.Float32bits(f))
			}
		}
		d.BufferData(graphics.ARRAY_BUFFER, len(data), data, graphics.STREAM_DRAW)
		c.attrib0Buffer.size = len(data)
		c.attrib0Vertices, c.attrib0Value = vertices, value
	}
	d.EnableVertexAttribArray(0)
	d.VertexAttribPointer(0, 4, graphics.FLOAT, false, 0, 0)
	return true
}

// endAttrib0 puts slot 0 and the ARRAY_BUFFER binding back the way the
// application left them.
func (c *Context) endAttrib0() {
	d := c.driver
	a := c.vertexObjectState.attribs[0]
	d.DisableVertexAttribArray(0)
	if a.Buffer != nil {
		d.BindBuffer(graphics.ARRAY_BUFFER, a.Buffer.name)
		d.VertexAttribPointer(0, a.Size, a.Type, a.Normalized, a.Stride, a.Offset)
	}
	var array uint32
	if b := c.vertexGlobalState.arrayBuffer; b != nil {
		array = b.name
	}
	d.BindBuffer(graphics.ARRAY_BUFFER, array)
}

// Clear clears the buffers selected by mask.
func (c *Context) Clear(mask graphics.Enum) {
	if !c.alive() {
		return
	}
	if mask&^(graphics.COLOR_BUFFER_BIT|graphics.DEPTH_BUFFER_BIT|graphics.STENCIL_BUFFER_BIT) != 0 {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	c.driver.Clear(mask)
}

// ClearColor sets the color used by Clear.
func (c *Context) ClearColor(r, g, b, a float32) {
	if !c.alive() {
		return
	}
	c.clearColor = [4]float32{r, g, b, a}
	c.driver.ClearColor(r, g, b, a)
}

// ClearDepth sets the depth used by Clear, clamped to [0, 1].
func (c *Context) ClearDepth(depth float32) {
	if !c.alive() {
		return
	}
	depth = min(max(depth, 0), 1)
	c.clearDepth = depth
	c.driver.ClearDepthf(depth)
}

// ClearStencil sets the stencil value used by Clear.
func (c *Context) ClearStencil(s int32) {
	if !c.alive() {
		return
	}
	c.clearStencil = s
	c.driver.ClearStencil(s)
}

// ClearValues returns the color, depth and stencil values Clear uses.
func (c *Context) ClearValues() ([4]float32, float32, int32) {
	return c.clearColor, c.clearDepth, c.clearStencil
}

// Viewport sets the viewport rectangle.
func (c *Context) Viewport(x, y, width, height int32) {
	if !c.alive() {
		return
	}
	if width < 0 || height < 0 {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	c.viewport = [4]int32{x, y, width, height}
	c.driver.Viewport(x, y, width, height)
}

// ViewportRect returns the last viewport set.
func (c *Context) ViewportRect() [4]int32 { return c.viewport }

// Scissor sets the scissor box.
func (c *Context) Scissor(x, y, width, height int32) {
	if !c.alive() {
		return
	}
	if width < 0 || height < 0 {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	c.scissor = [4]int32{x, y, width, height}
	c.driver.Scissor(x, y, width, height)
}

// ScissorBox returns the last scissor box set.
func (c *Context) ScissorBox() [4]int32 { return c.scissor }

// PixelStorei sets a pixel storage parameter. The WebGL-only parameters are
// applied in software by TexImage2D and never reach the driver.
func (c *Context) PixelStorei(pname graphics.Enum, param int32) {
	if !c.alive() {
		return
	}
	switch pname {
	case graphics.UNPACK_FLIP_Y_WEBGL:
		c.unpackFlipY = param != 0
	case graphics.UNPACK_PREMULTIPLY_ALPHA_WEBGL:
		c.unpackPremultiplyAlpha = param != 0
	case graphics.UNPACK_COLORSPACE_CONVERSION_WEBGL:
		if graphics.Enum(param) != graphics.NONE && graphics.Enum(param) != graphics.BROWSER_DEFAULT_WEBGL {
			c.setError(graphics.INVALID_VALUE)
			return
		}
		c.unpackColorspaceConversion = graphics.Enum(param)
	case graphics.PACK_ALIGNMENT, graphics.UNPACK_ALIGNMENT:
		switch param {
		case 1, 2, 4, 8:
		default:
			c.setError(graphics.INVALID_VALUE)
			return
		}
		if pname == graphics.PACK_ALIGNMENT {
			c.packAlignment = int(param)
		} else {
			c.unpackAlignment = int(param)
		}
		c.driver.PixelStorei(pname, param)
	default:
		c.setError(graphics.INVALID_ENUM)
	}
}

// PackAlignment returns the PACK_ALIGNMENT in effect.
func (c *Context) PackAlignment() int { return c.packAlignment }

// UnpackAlignment returns the UNPACK_ALIGNMENT in effect.
func (c *Context) UnpackAlignment() int { return c.unpackAlignment }

// ReadPixels reads a rectangle of the current framebuffer into dst, rows
// padded to PACK_ALIGNMENT. Only RGBA/UNSIGNED_BYTE is supported.
func (c *Context) ReadPixels(x, y, width, height int32, format, ty graphics.Enum, dst []byte) {
	if !c.alive() {
		return
	}
	if format != graphics.RGBA || ty != graphics.UNSIGNED_BYTE {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	if width < 0 || height < 0 {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	if c.activeFramebuffer != nil && c.CheckFramebufferStatus(graphics.FRAMEBUFFER) != graphics.FRAMEBUFFER_COMPLETE {
		c.setError(graphics.INVALID_FRAMEBUFFER_OPERATION)
		return
	}
	size, _ := imageSize(width, height, 4, c.packAlignment)
	if len(dst) < size {
		c.setError(graphics.INVALID_OPERATION)
		return
	}
	if size == 0 {
		return
	}
	c.driver.ReadPixels(x, y, width, height, format, ty, dst[:size])
}

// Flush forwards to the driver.
func (c *Context) Flush() {
	if c.alive() {
		c.driver.Flush()
	}
}

// Finish blocks until the driver has executed all issued commands.
func (c *Context) Finish() {
	if c.alive() {
		c.driver.Finish()
	}
}
