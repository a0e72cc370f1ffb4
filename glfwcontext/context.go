package glfwcontext

import (
	"fmt"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/gldriver"
	"github.com/richinsley/gowebgl/graphics"
)

// Context is a GLFW window together with its GL context.
type Context struct {
	window *glfw.Window
	driver *gldriver.Driver
	owned  bool
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
}

func bits(on bool, n int) int {
	if on {
		return n
	}
	return 0
}

// Acquire opens a window sized to the drawing buffer and makes its context
// current. A *glfw.Window passed as cfg.Window is adopted instead; its
// context must have been created with a 4.1 core profile.
func Acquire(cfg graphics.SurfaceConfig) (graphics.Surface, graphics.Driver, error) {
	c := &Context{keyCallbacks: make(map[glfw.Key]func())}
	if win, ok := cfg.Window.(*glfw.Window); ok {
		c.window = win
	} else {
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		glfw.WindowHint(glfw.AlphaBits, bits(cfg.Alpha, 8))
		glfw.WindowHint(glfw.DepthBits, bits(cfg.Depth, 24))
		glfw.WindowHint(glfw.StencilBits, bits(cfg.Stencil, 8))
		glfw.WindowHint(glfw.Samples, cfg.MSAA)
		glfw.WindowHint(glfw.Resizable, glfw.False)

		win, err := glfw.CreateWindow(cfg.Width, cfg.Height, "gowebgl", nil, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create window: %w", err)
		}
		c.window = win
		c.owned = true
	}
	c.window.SetKeyCallback(c.glfwKeyCallback)

	if err := c.MakeCurrent(); err != nil {
		c.Shutdown()
		return nil, nil, err
	}
	d, err := gldriver.New()
	if err != nil {
		c.Shutdown()
		return nil, nil, err
	}
	c.driver = d
	return c, d, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// MakeCurrent makes the context current for the calling thread.
func (c *Context) MakeCurrent() error {
	c.window.MakeContextCurrent()
	return nil
}

// SwapBuffers presents the window and processes pending events.
func (c *Context) SwapBuffers() error {
	c.window.SwapBuffers()
	glfw.PollEvents()
	return nil
}

// Shutdown destroys the window unless it was adopted from the caller.
func (c *Context) Shutdown() {
	if c.driver != nil {
		c.driver.Release()
		c.driver = nil
	}
	if c.owned {
		c.window.Destroy()
	}
	c.window = nil
}

func (c *Context) ShouldClose() bool {
	return c.window == nil || c.window.ShouldClose()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Info("GLFW initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Info("GLFW terminated")
}
