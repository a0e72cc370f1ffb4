package webgl

import (
	"github.com/richinsley/gowebgl/graphics"
)

// Texture is a WebGLTexture. target is fixed by the first BindTexture.
type Texture struct {
	linkable
	target graphics.Enum
	width  int32
	height int32
	format graphics.Enum
	ty     graphics.Enum
}

func (t *Texture) base() *linkable {
	if t == nil {
		return nil
	}
	return &t.linkable
}

func (t *Texture) kind() objectKind { return kindTexture }

// Target returns TEXTURE_2D, TEXTURE_CUBE_MAP or 0 if never bound.
func (t *Texture) Target() graphics.Enum { return t.target }

// Size returns the dimensions of level 0.
func (t *Texture) Size() (int32, int32) { return t.width, t.height }

// CreateTexture allocates a texture object.
func (c *Context) CreateTexture() *Texture {
	if !c.alive() {
		return nil
	}
	name := c.driver.CreateTexture()
	if name == 0 {
		c.setError(graphics.OUT_OF_MEMORY)
		return nil
	}
	t := &Texture{linkable: linkable{name: name, owner: c.id}}
	c.textures.insert(t)
	return t
}

// Texture looks up a live texture by identity.
func (c *Context) Texture(name uint32) (*Texture, error) {
	return lookupObject(c.textures, kindTexture, name)
}

// BindTexture binds t to target on the active texture unit; nil unbinds.
// When the platform does not track texture units the binding goes straight
// to the driver.
func (c *Context) BindTexture(target graphics.Enum, t *Texture) {
	if !c.alive() {
		return
	}
	if target != graphics.TEXTURE_2D && target != graphics.TEXTURE_CUBE_MAP {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	if t != nil {
		if !c.owns(t) {
			return
		}
		if t.target != 0 && t.target != target {
			c.setError(graphics.INVALID_OPERATION)
			return
		}
		t.target = target
	}
	var name uint32
	if t != nil {
		name = t.name
	}
	unit := c.activeUnit()
	if unit == nil {
		c.driver.BindTexture(target, name)
		return
	}
	slot := unit.slot(target)
	prev := *slot
	c.retain(t)
	*slot = t
	c.driver.BindTexture(target, name)
	c.unref(prev)
}

func textureBindTarget(target graphics.Enum) graphics.Enum {
	switch target {
	case graphics.TEXTURE_2D:
		return graphics.TEXTURE_2D
	case graphics.TEXTURE_CUBE_MAP_POSITIVE_X, graphics.TEXTURE_CUBE_MAP_NEGATIVE_X,
		graphics.TEXTURE_CUBE_MAP_POSITIVE_Y, graphics.TEXTURE_CUBE_MAP_NEGATIVE_Y,
		graphics.TEXTURE_CUBE_MAP_POSITIVE_Z, graphics.TEXTURE_CUBE_MAP_NEGATIVE_Z:
		return graphics.TEXTURE_CUBE_MAP
	}
	return 0
}

// pixelSize returns the bytes per pixel of a format/type pair, 0 when the
// combination is not valid in WebGL 1.0.
func pixelSize(format, ty graphics.Enum) int {
	channels := 0
	switch format {
	case graphics.ALPHA, graphics.LUMINANCE:
		channels = 1
	case graphics.LUMINANCE_ALPHA:
		channels = 2
	case graphics.RGB:
		channels = 3
	case graphics.RGBA:
		channels = 4
	default:
		return 0
	}
	switch ty {
	case graphics.UNSIGNED_BYTE:
		return channels
	case graphics.FLOAT:
		return channels * 4
	case graphics.UNSIGNED_SHORT_5_6_5:
		if format == graphics.RGB {
			return 2
		}
	case graphics.UNSIGNED_SHORT_4_4_4_4, graphics.UNSIGNED_SHORT_5_5_5_1:
		if format == graphics.RGBA {
			return 2
		}
	}
	return 0
}

// imageSize returns the bytes needed for a width x height image whose rows are
// padded to alignment, and the padded row stride.
func imageSize(width, height int32, bpp, alignment int) (size, stride int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	row := int(width) * bpp
	stride = (row + alignment - 1) / alignment * alignment
	return stride*(int(height)-1) + row, stride
}

// TexImage2D specifies a texture image on the texture bound to target. Pixel
// data is flipped and premultiplied in software when the corresponding
// UNPACK_*_WEBGL flags are set.
func (c *Context) TexImage2D(target graphics.Enum, level int32, internalFormat graphics.Enum, width, height, border int32, format, ty graphics.Enum, pixels []byte) {
	if !c.alive() {
		return
	}
	bindTarget := textureBindTarget(target)
	if bindTarget == 0 {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	bpp := pixelSize(format, ty)
	if bpp == 0 {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	if internalFormat != format {
		c.setError(graphics.INVALID_OPERATION)
		return
	}
	maxLevel, maxSize := c.maxTextureLevel, c.maxTextureSize
	if bindTarget == graphics.TEXTURE_CUBE_MAP {
		maxLevel, maxSize = c.maxCubeMapLevel, c.maxCubeMapSize
		if width != height {
			c.setError(graphics.INVALID_VALUE)
			return
		}
	}
	if level < 0 || int(level) > maxLevel || border != 0 || width < 0 || height < 0 ||
		int(width) > maxSize>>level || int(height) > maxSize>>level {
		c.setError(graphics.INVALID_VALUE)
		return
	}
	var t *Texture
	if unit := c.activeUnit(); unit != nil {
		t = unit.Texture(bindTarget)
		if t == nil {
			c.setError(graphics.INVALID_OPERATION)
			return
		}
	}
	size, stride := imageSize(width, height, bpp, c.unpackAlignment)
	if pixels != nil {
		if len(pixels) < size {
			c.setError(graphics.INVALID_OPERATION)
			return
		}
		pixels = c.unpackPixels(pixels[:size], int(height), stride, format, ty)
	}
	c.driver.TexImage2D(target, level, internalFormat, width, height, format, ty, pixels)
	if t != nil && level == 0 {
		t.width, t.height, t.format, t.ty = width, height, format, ty
	}
}

// unpackPixels applies UNPACK_FLIP_Y_WEBGL and UNPACK_PREMULTIPLY_ALPHA_WEBGL,
// copying only when one of them is set.
func (c *Context) unpackPixels(pixels []byte, height, stride int, format, ty graphics.Enum) []byte {
	premultiply := c.unpackPremultiplyAlpha && format == graphics.RGBA && ty == graphics.UNSIGNED_BYTE
	if !c.unpackFlipY && !premultiply {
		return pixels
	}
	out := make([]byte, len(pixels))
	copy(out, pixels)
	if c.unpackFlipY && height > 1 {
		row := len(pixels) - stride*(height-1)
		for y := 0; y < height; y++ {
			src := pixels[y*stride : y*stride+row]
			copy(out[(height-1-y)*stride:], src)
		}
	}
	if premultiply {
		for i := 0; i+3 < len(out); i += 4 {
			a := uint32(out[i+3])
			out[i] = byte(uint32(out[i]) * a / 255)
			out[i+1] = byte(uint32(out[i+1]) * a / 255)
			out[i+2] = byte(uint32(out[i+2]) * a / 255)
		}
	}
	return out
}

// TexParameteri sets a sampling parameter on the texture bound to target.
func (c *Context) TexParameteri(target, pname graphics.Enum, param int32) {
	if !c.alive() {
		return
	}
	if target != graphics.TEXTURE_2D && target != graphics.TEXTURE_CUBE_MAP {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	switch pname {
	case graphics.TEXTURE_MIN_FILTER, graphics.TEXTURE_MAG_FILTER, graphics.TEXTURE_WRAP_S, graphics.TEXTURE_WRAP_T:
	default:
		c.setError(graphics.INVALID_ENUM)
		return
	}
	c.driver.TexParameteri(target, pname, param)
}

// DeleteTexture deletes t. A texture still bound to a unit or attached to a
// framebuffer is released when the last reference goes away.
func (c *Context) DeleteTexture(t *Texture) {
	if t == nil || !c.alive() || t.owner != c.id {
		return
	}
	c.deleteObject(t, c.textures.remove)
}
