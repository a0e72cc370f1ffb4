package fakegl

import (
	"github.com/richinsley/gowebgl/graphics"
)

// Surface is a native surface that only counts swaps.
type Surface struct {
	Width    int
	Height   int
	Swaps    int
	SwapErr  error
	ShutDown bool
}

func (s *Surface) MakeCurrent() error { return nil }

func (s *Surface) SwapBuffers() error {
	if s.SwapErr != nil {
		return s.SwapErr
	}
	s.Swaps++
	return nil
}

func (s *Surface) Shutdown() { s.ShutDown = true }

func (s *Surface) GetFramebufferSize() (int, int) { return s.Width, s.Height }

// Acquirer hands out Driver on every Acquire call, or fails as configured.
type Acquirer struct {
	Driver *Driver
	// Err is returned by Acquire when set.
	Err error
	// Panic makes Acquire panic with the value when set.
	Panic any

	Calls      int
	LastConfig graphics.SurfaceConfig
	Surface    *Surface
}

// NewAcquirer returns an Acquirer backed by a fresh New driver.
func NewAcquirer() *Acquirer {
	return &Acquirer{Driver: New()}
}

func (a *Acquirer) Acquire(cfg graphics.SurfaceConfig) (graphics.Surface, graphics.Driver, error) {
	a.Calls++
	a.LastConfig = cfg
	if a.Panic != nil {
		panic(a.Panic)
	}
	if a.Err != nil {
		return nil, nil, a.Err
	}
	if a.Driver == nil {
		a.Driver = New()
	}
	a.Surface = &Surface{Width: cfg.Width, Height: cfg.Height}
	return a.Surface, a.Driver, nil
}
