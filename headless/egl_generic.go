//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/gowebgl/graphics"
)

func Acquire(cfg graphics.SurfaceConfig) (graphics.Surface, graphics.Driver, error) {
	return nil, nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}

func Terminate() {}
