package webgl

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/richinsley/gowebgl/graphics"
)

func TestDrawValidation(t *testing.T) {
	c, acq := newTestContext(t, nil)

	c.DrawArrays(graphics.TRIANGLES, 0, 3)
	if got := c.GetError(); got != graphics.INVALID_OPERATION {
		t.Errorf("Draw without a program: got 0x%x, want INVALID_OPERATION", got)
	}

	c.UseProgram(linkedProgram(t, c))
	c.DrawArrays(graphics.TRIANGLES, -1, 3)
	if got := c.GetError(); got != graphics.INVALID_VALUE {
		t.Errorf("Negative first: got 0x%x, want INVALID_VALUE", got)
	}
	c.DrawArrays(graphics.Enum(0x1234), 0, 3)
	if got := c.GetError(); got != graphics.INVALID_ENUM {
		t.Errorf("Bad mode: got 0x%x, want INVALID_ENUM", got)
	}

	c.EnableVertexAttribArray(1)
	c.DrawArrays(graphics.TRIANGLES, 0, 3)
	if got := c.GetError(); got != graphics.INVALID_OPERATION {
		t.Errorf("Enabled attribute without buffer: got 0x%x, want INVALID_OPERATION", got)
	}

	b := c.CreateBuffer()
	c.BindBuffer(graphics.ARRAY_BUFFER, b)
	c.BufferDataSize(graphics.ARRAY_BUFFER, 2*8, graphics.STATIC_DRAW)
	c.VertexAttribPointer(1, 2, graphics.FLOAT, false, 0, 0)
	c.DrawArrays(graphics.TRIANGLES, 0, 3)
	if got := c.GetError(); got != graphics.INVALID_OPERATION {
		t.Errorf("Draw past the end of the buffer: got 0x%x, want INVALID_OPERATION", got)
	}
	c.DrawArrays(graphics.LINES, 0, 2)
	if got := c.GetError(); got != graphics.NO_ERROR {
		t.Errorf("Valid draw: got 0x%x", got)
	}
	if acq.Driver.Draws != 1 {
		t.Errorf("Got %d draws reaching the driver, want 1", acq.Driver.Draws)
	}
}

func TestAttribute0Emulation(t *testing.T) {
	c, acq := newTestContext(t, nil)
	d := acq.Driver
	c.UseProgram(linkedProgram(t, c))
	array := c.CreateBuffer()
	c.BindBuffer(graphics.ARRAY_BUFFER, array)

	c.VertexAttrib4f(0, 1, 0, 0, 1)
	uploads := d.BufferUploads
	c.DrawArrays(graphics.TRIANGLES, 0, 3)
	if got := c.GetError(); got != graphics.NO_ERROR {
		t.Fatalf("Draw failed with 0x%x", got)
	}
	if d.BufferUploads != uploads+1 {
		t.Errorf("Attribute 0 data was not uploaded")
	}
	if got, want := c.attrib0Buffer.Size(), 3*16; got != want {
		t.Errorf("Got %d bytes of attribute 0 data, want %d", got, want)
	}
	if d.Enabled[0] {
		t.Errorf("Attribute 0 left enabled after the draw")
	}
	if got := d.Bindings[graphics.ARRAY_BUFFER]; got != array.Name() {
		t.Errorf("ARRAY_BUFFER binding not restored: got %d, want %d", got, array.Name())
	}

	// Same value and fewer vertices reuse the uploaded data.
	c.DrawArrays(graphics.TRIANGLES, 0, 2)
	if d.BufferUploads != uploads+1 {
		t.Errorf("Attribute 0 data was uploaded again")
	}

	c.EnableVertexAttribArray(0)
	c.VertexAttribPointer(0, 4, graphics.FLOAT, false, 0, 0)
	c.BufferDataSize(graphics.ARRAY_BUFFER, 16*3, graphics.STATIC_DRAW)
	uploads = d.BufferUploads
	c.DrawArrays(graphics.TRIANGLES, 0, 3)
	if d.BufferUploads != uploads {
		t.Errorf("Attribute 0 emulated although the application enabled it")
	}
}

func TestDrawElements(t *testing.T) {
	c, acq := newTestContext(t, nil)
	c.UseProgram(linkedProgram(t, c))

	c.DrawElements(graphics.TRIANGLES, 3, graphics.UNSIGNED_SHORT, 0)
	if got := c.GetError(); got != graphics.INVALID_OPERATION {
		t.Errorf("Draw without element buffer: got 0x%x, want INVALID_OPERATION", got)
	}

	e := c.CreateBuffer()
	c.BindBuffer(graphics.ELEMENT_ARRAY_BUFFER, e)
	c.BufferData(graphics.ELEMENT_ARRAY_BUFFER, []byte{0, 0, 1, 0, 7, 0}, graphics.STATIC_DRAW)

	c.DrawElements(graphics.TRIANGLES, 4, graphics.UNSIGNED_SHORT, 0)
	if got := c.GetError(); got != graphics.INVALID_OPERATION {
		t.Errorf("Indices past the buffer: got 0x%x, want INVALID_OPERATION", got)
	}
	c.DrawElements(graphics.TRIANGLES, 1, graphics.UNSIGNED_SHORT, 1)
	if got := c.GetError(); got != graphics.INVALID_OPERATION {
		t.Errorf("Misaligned offset: got 0x%x, want INVALID_OPERATION", got)
	}
	c.DrawElements(graphics.TRIANGLES, 3, graphics.UNSIGNED_INT, 0)
	if got := c.GetError(); got != graphics.INVALID_ENUM {
		t.Errorf("UNSIGNED_INT indices: got 0x%x, want INVALID_ENUM", got)
	}

	c.DrawElements(graphics.TRIANGLES, 3, graphics.UNSIGNED_SHORT, 0)
	if got := c.GetError(); got != graphics.NO_ERROR {
		t.Fatalf("Valid draw failed with 0x%x", got)
	}
	if got, want := c.attrib0Buffer.Size(), 8*16; got != want {
		t.Errorf("Attribute 0 data covers %d bytes, want %d for max index 7", got, want)
	}
	if acq.Driver.Draws != 1 {
		t.Errorf("Got %d draws, want 1", acq.Driver.Draws)
	}
}

func TestHugeOffsetsAreRejected(t *testing.T) {
	c, acq := newTestContext(t, nil)
	c.UseProgram(linkedProgram(t, c))

	e := c.CreateBuffer()
	c.BindBuffer(graphics.ELEMENT_ARRAY_BUFFER, e)
	c.BufferData(graphics.ELEMENT_ARRAY_BUFFER, []byte{0, 0, 1, 0}, graphics.STATIC_DRAW)
	c.DrawElements(graphics.TRIANGLES, 1, graphics.UNSIGNED_SHORT, math.MaxInt-1)
	if got := c.GetError(); got != graphics.INVALID_OPERATION {
		t.Errorf("DrawElements at offset MaxInt-1: got 0x%x, want INVALID_OPERATION", got)
	}
	c.BufferSubData(graphics.ELEMENT_ARRAY_BUFFER, math.MaxInt-1, []byte{1, 0})
	if got := c.GetError(); got != graphics.INVALID_VALUE {
		t.Errorf("BufferSubData at offset MaxInt-1: got 0x%x, want INVALID_VALUE", got)
	}

	b := c.CreateBuffer()
	c.BindBuffer(graphics.ARRAY_BUFFER, b)
	c.BufferDataSize(graphics.ARRAY_BUFFER, 64, graphics.STATIC_DRAW)
	c.EnableVertexAttribArray(1)
	c.VertexAttribPointer(1, 2, graphics.FLOAT, false, 0, math.MaxInt-3)
	if got := c.GetError(); got != graphics.NO_ERROR {
		t.Fatalf("VertexAttribPointer failed with 0x%x", got)
	}
	c.DrawArrays(graphics.TRIANGLES, 0, 3)
	if got := c.GetError(); got != graphics.INVALID_OPERATION {
		t.Errorf("DrawArrays with attribute offset MaxInt-3: got 0x%x, want INVALID_OPERATION", got)
	}
	if acq.Driver.Draws != 0 {
		t.Errorf("Got %d draws reaching the driver, want 0", acq.Driver.Draws)
	}
}

func TestPixelStorei(t *testing.T) {
	c, acq := newTestContext(t, nil)

	c.PixelStorei(graphics.UNPACK_ALIGNMENT, 3)
	if got := c.GetError(); got != graphics.INVALID_VALUE {
		t.Errorf("Alignment 3: got 0x%x, want INVALID_VALUE", got)
	}
	c.PixelStorei(graphics.PACK_ALIGNMENT, 8)
	if c.PackAlignment() != 8 || acq.Driver.PixelStore[graphics.PACK_ALIGNMENT] != 8 {
		t.Errorf("PACK_ALIGNMENT 8 was not applied")
	}
	c.PixelStorei(graphics.UNPACK_FLIP_Y_WEBGL, 1)
	if _, ok := acq.Driver.PixelStore[graphics.UNPACK_FLIP_Y_WEBGL]; ok {
		t.Errorf("UNPACK_FLIP_Y_WEBGL reached the driver")
	}
	c.PixelStorei(graphics.UNPACK_COLORSPACE_CONVERSION_WEBGL, 7)
	if got := c.GetError(); got != graphics.INVALID_VALUE {
		t.Errorf("Bad colorspace conversion: got 0x%x, want INVALID_VALUE", got)
	}
	c.PixelStorei(graphics.Enum(0xbeef), 1)
	if got := c.GetError(); got != graphics.INVALID_ENUM {
		t.Errorf("Unknown pname: got 0x%x, want INVALID_ENUM", got)
	}
}

func TestReadPixels(t *testing.T) {
	c, _ := newTestContext(t, nil)
	c.ClearColor(1, 0, 0, 1)

	c.PixelStorei(graphics.PACK_ALIGNMENT, 8)
	short := make([]byte, 3*4*2)
	c.ReadPixels(0, 0, 3, 2, graphics.RGBA, graphics.UNSIGNED_BYTE, short)
	if got := c.GetError(); got != graphics.INVALID_OPERATION {
		t.Errorf("Undersized destination: got 0x%x, want INVALID_OPERATION", got)
	}

	c.PixelStorei(graphics.PACK_ALIGNMENT, 4)
	dst := make([]byte, 4*2*2)
	c.ReadPixels(0, 0, 2, 2, graphics.RGBA, graphics.UNSIGNED_BYTE, dst)
	want := []byte{255, 0, 0, 255, 255, 0, 0, 255, 255, 0, 0, 255, 255, 0, 0, 255}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Errorf("Pixels differ (-want,+got):\n%s", diff)
	}

	c.ReadPixels(0, 0, 2, 2, graphics.RGB, graphics.UNSIGNED_BYTE, dst)
	if got := c.GetError(); got != graphics.INVALID_ENUM {
		t.Errorf("RGB readback: got 0x%x, want INVALID_ENUM", got)
	}
}

func TestTexImage2DValidation(t *testing.T) {
	tests := []struct {
		name   string
		target graphics.Enum
		level  int32
		ifmt   graphics.Enum
		w, h   int32
		border int32
		format graphics.Enum
		ty     graphics.Enum
		pixels []byte
		want   graphics.Enum
	}{
		{name: "valid", target: graphics.TEXTURE_2D, ifmt: graphics.RGBA, w: 2, h: 2, format: graphics.RGBA, ty: graphics.UNSIGNED_BYTE, pixels: make([]byte, 16), want: graphics.NO_ERROR},
		{name: "nil pixels", target: graphics.TEXTURE_2D, ifmt: graphics.RGB, w: 64, h: 64, format: graphics.RGB, ty: graphics.UNSIGNED_BYTE, want: graphics.NO_ERROR},
		{name: "level too high", target: graphics.TEXTURE_2D, level: 13, ifmt: graphics.RGBA, w: 1, h: 1, format: graphics.RGBA, ty: graphics.UNSIGNED_BYTE, want: graphics.INVALID_VALUE},
		{name: "too large for level", target: graphics.TEXTURE_2D, level: 4, ifmt: graphics.RGBA, w: 512, h: 1, format: graphics.RGBA, ty: graphics.UNSIGNED_BYTE, want: graphics.INVALID_VALUE},
		{name: "border", target: graphics.TEXTURE_2D, ifmt: graphics.RGBA, w: 1, h: 1, border: 1, format: graphics.RGBA, ty: graphics.UNSIGNED_BYTE, want: graphics.INVALID_VALUE},
		{name: "format mismatch", target: graphics.TEXTURE_2D, ifmt: graphics.RGB, w: 1, h: 1, format: graphics.RGBA, ty: graphics.UNSIGNED_BYTE, want: graphics.INVALID_OPERATION},
		{name: "bad type", target: graphics.TEXTURE_2D, ifmt: graphics.RGB, w: 1, h: 1, format: graphics.RGB, ty: graphics.UNSIGNED_SHORT_4_4_4_4, want: graphics.INVALID_ENUM},
		{name: "short data", target: graphics.TEXTURE_2D, ifmt: graphics.RGB, w: 3, h: 2, format: graphics.RGB, ty: graphics.UNSIGNED_BYTE, pixels: make([]byte, 18), want: graphics.INVALID_OPERATION},
		{name: "aligned rows", target: graphics.TEXTURE_2D, ifmt: graphics.RGB, w: 3, h: 2, format: graphics.RGB, ty: graphics.UNSIGNED_BYTE, pixels: make([]byte, 21), want: graphics.NO_ERROR},
		{name: "cube not square", target: graphics.TEXTURE_CUBE_MAP_POSITIVE_X, ifmt: graphics.RGBA, w: 2, h: 1, format: graphics.RGBA, ty: graphics.UNSIGNED_BYTE, want: graphics.INVALID_VALUE},
		{name: "bad target", target: graphics.TEXTURE_CUBE_MAP, ifmt: graphics.RGBA, w: 1, h: 1, format: graphics.RGBA, ty: graphics.UNSIGNED_BYTE, want: graphics.INVALID_ENUM},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, _ := newTestContext(t, nil)
			c.BindTexture(graphics.TEXTURE_2D, c.CreateTexture())
			c.BindTexture(graphics.TEXTURE_CUBE_MAP, c.CreateTexture())
			c.TexImage2D(test.target, test.level, test.ifmt, test.w, test.h, test.border, test.format, test.ty, test.pixels)
			if got := c.GetError(); got != test.want {
				t.Errorf("Got error 0x%x, want 0x%x", got, test.want)
			}
		})
	}
}

func TestTexImage2DUnpack(t *testing.T) {
	c, acq := newTestContext(t, nil)
	tex := c.CreateTexture()
	c.BindTexture(graphics.TEXTURE_2D, tex)
	c.PixelStorei(graphics.UNPACK_FLIP_Y_WEBGL, 1)
	c.PixelStorei(graphics.UNPACK_PREMULTIPLY_ALPHA_WEBGL, 1)

	pixels := []byte{
		255, 255, 255, 0, // row 0
		200, 100, 50, 255, // row 1
	}
	c.TexImage2D(graphics.TEXTURE_2D, 0, graphics.RGBA, 1, 2, 0, graphics.RGBA, graphics.UNSIGNED_BYTE, pixels)
	if got := c.GetError(); got != graphics.NO_ERROR {
		t.Fatalf("TexImage2D failed with 0x%x", got)
	}
	uploaded := acq.Driver.TexImages[len(acq.Driver.TexImages)-1]
	want := []byte{
		200, 100, 50, 255,
		0, 0, 0, 0,
	}
	if diff := cmp.Diff(want, uploaded); diff != "" {
		t.Errorf("Uploaded pixels differ (-want,+got):\n%s", diff)
	}
	if pixels[0] != 255 {
		t.Errorf("Caller's pixel data was modified")
	}
	if w, h := tex.Size(); w != 1 || h != 2 {
		t.Errorf("Got texture size %dx%d, want 1x2", w, h)
	}
}
