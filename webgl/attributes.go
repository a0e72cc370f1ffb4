package webgl

import (
	"github.com/richinsley/gowebgl/options"
)

// ContextAttributes is the resolved, immutable set of capabilities a context
// was created with.
type ContextAttributes struct {
	Alpha                           bool
	Depth                           bool
	Stencil                         bool
	Antialias                       bool
	PremultipliedAlpha              bool
	PreserveDrawingBuffer           bool
	PreferLowPowerToHighPerformance bool
	FailIfMajorPerformanceCaveat    bool
}

// DefaultContextAttributes returns the attributes used when no options are
// given.
func DefaultContextAttributes() ContextAttributes {
	return ContextAttributes{
		Alpha:              true,
		Depth:              true,
		Stencil:            false,
		Antialias:          false,
		PremultipliedAlpha: true,
	}
}

// ResolveAttributes merges the caller's partial options over the defaults.
// Premultiplied alpha is only kept when the drawing buffer has an alpha
// channel.
func ResolveAttributes(o *options.ContextOptions) ContextAttributes {
	a := DefaultContextAttributes()
	if o == nil {
		return a
	}
	a.Alpha = flag(o.Alpha, a.Alpha)
	a.Depth = flag(o.Depth, a.Depth)
	a.Stencil = flag(o.Stencil, a.Stencil)
	a.Antialias = flag(o.Antialias, a.Antialias)
	a.PremultipliedAlpha = flag(o.PremultipliedAlpha, a.PremultipliedAlpha)
	a.PreserveDrawingBuffer = flag(o.PreserveDrawingBuffer, a.PreserveDrawingBuffer)
	a.PreferLowPowerToHighPerformance = flag(o.PreferLowPowerToHighPerformance, a.PreferLowPowerToHighPerformance)
	a.FailIfMajorPerformanceCaveat = flag(o.FailIfMajorPerformanceCaveat, a.FailIfMajorPerformanceCaveat)

	a.PremultipliedAlpha = a.PremultipliedAlpha && a.Alpha
	return a
}

func flag(v *bool, dflt bool) bool {
	if v == nil {
		return dflt
	}
	return *v
}
