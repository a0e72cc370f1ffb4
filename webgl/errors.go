package webgl

import (
	"errors"

	"github.com/richinsley/gowebgl/graphics"
)

var (
	// ErrInvalidDimensions is returned when a context is requested with a
	// non-positive drawing buffer size.
	ErrInvalidDimensions = errors.New("webgl: drawing buffer dimensions must be positive")
	// ErrAcquire wraps any failure of the native context acquisition.
	ErrAcquire = errors.New("webgl: native context acquisition failed")
	// ErrMissingExtension is returned when the native context lacks an
	// extension the emulation depends on.
	ErrMissingExtension = errors.New("webgl: required native extension missing")
	// ErrDrawingBuffer is returned when the offscreen drawing buffer cannot be
	// allocated or is incomplete.
	ErrDrawingBuffer = errors.New("webgl: drawing buffer allocation failed")
	// ErrNoSuchObject is returned when looking up an identity that is not in
	// the context's object table.
	ErrNoSuchObject = errors.New("webgl: no such object")
	// ErrContextLost is returned by operations on a destroyed or failed context.
	ErrContextLost = errors.New("webgl: context lost")
)

// setError records a synthetic GL error. Like the GL error flags, a code
// already pending is not queued twice.
func (c *Context) setError(code graphics.Enum) {
	if code == graphics.NO_ERROR {
		return
	}
	for _, e := range c.errors {
		if e == code {
			return
		}
	}
	c.errors = append(c.errors, code)
}

// SetError lets extension and binding code outside the package report a GL
// error against the context.
func (c *Context) SetError(code graphics.Enum) {
	c.setError(code)
}

// GetError returns the oldest pending error, preferring errors raised by the
// emulation layer over those reported by the driver.
func (c *Context) GetError() graphics.Enum {
	if len(c.errors) > 0 {
		e := c.errors[0]
		c.errors = c.errors[1:]
		return e
	}
	if c.state != stateOK {
		return graphics.NO_ERROR
	}
	return c.driver.GetError()
}

// alive reports whether the context can still issue driver calls, recording
// CONTEXT_LOST_WEBGL when it cannot.
func (c *Context) alive() bool {
	if c.state == stateOK {
		return true
	}
	c.setError(graphics.CONTEXT_LOST_WEBGL)
	return false
}
