package webgl

import (
	"github.com/richinsley/gowebgl/graphics"
)

// TextureUnit tracks the textures bound to one hardware texture unit.
type TextureUnit struct {
	index       int
	texture2D   *Texture
	textureCube *Texture
}

// Index returns the unit number.
func (u *TextureUnit) Index() int { return u.index }

// Texture returns the texture bound to target on this unit.
func (u *TextureUnit) Texture(target graphics.Enum) *Texture {
	if slot := u.slot(target); slot != nil {
		return *slot
	}
	return nil
}

func (u *TextureUnit) slot(target graphics.Enum) **Texture {
	switch target {
	case graphics.TEXTURE_2D:
		return &u.texture2D
	case graphics.TEXTURE_CUBE_MAP:
		return &u.textureCube
	}
	return nil
}

// TextureUnits returns the units discovered at creation. Profiles that do not
// track units return an empty slice.
func (c *Context) TextureUnits() []*TextureUnit { return c.textureUnits }

// ActiveTextureUnit returns the index selected by ActiveTexture.
func (c *Context) ActiveTextureUnit() int { return c.activeTextureUnit }

// ActiveTexture selects the unit subsequent texture bindings apply to.
func (c *Context) ActiveTexture(unit graphics.Enum) {
	if !c.alive() {
		return
	}
	idx := int(unit) - int(graphics.TEXTURE0)
	if idx < 0 || (len(c.textureUnits) > 0 && idx >= len(c.textureUnits)) {
		c.setError(graphics.INVALID_ENUM)
		return
	}
	c.activeTextureUnit = idx
	c.driver.ActiveTexture(unit)
}

func (c *Context) activeUnit() *TextureUnit {
	if c.activeTextureUnit < len(c.textureUnits) {
		return c.textureUnits[c.activeTextureUnit]
	}
	return nil
}
