package graphics

// Surface is a native rendering context together with the surface it draws to.
type Surface interface {
	MakeCurrent() error
	// SwapBuffers presents the surface. Pbuffer surfaces treat it as a flush.
	SwapBuffers() error
	Shutdown()
	GetFramebufferSize() (int, int)
}

// SurfaceConfig carries everything native acquisition needs: the resolved
// context attributes plus the window and platform parameters.
type SurfaceConfig struct {
	Width                 int
	Height                int
	Alpha                 bool
	Depth                 bool
	Stencil               bool
	Antialias             bool
	PreserveDrawingBuffer bool
	PreferLowPower        bool
	// Window is an opaque native window handle, nil for offscreen surfaces.
	Window   any
	Platform string
	// MSAA is the platform multisample request, 0 when not given.
	MSAA int
}

// Acquirer creates native contexts. Implementations make the new context
// current before returning.
type Acquirer interface {
	Acquire(cfg SurfaceConfig) (Surface, Driver, error)
}

// AcquirerFunc adapts a plain function to Acquirer.
type AcquirerFunc func(cfg SurfaceConfig) (Surface, Driver, error)

func (f AcquirerFunc) Acquire(cfg SurfaceConfig) (Surface, Driver, error) {
	return f(cfg)
}
