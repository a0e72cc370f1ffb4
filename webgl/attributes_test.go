package webgl

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/richinsley/gowebgl/options"
)

func TestResolveAttributesDefaults(t *testing.T) {
	want := ContextAttributes{Alpha: true, Depth: true, PremultipliedAlpha: true}
	for _, o := range []*options.ContextOptions{nil, {}} {
		if diff := cmp.Diff(want, ResolveAttributes(o)); diff != "" {
			t.Errorf("ResolveAttributes(%v) returned diff (-want,+got):\n%s", o, diff)
		}
	}
}

func TestResolveAttributesOverrides(t *testing.T) {
	o := &options.ContextOptions{
		Depth:                 options.Bool(false),
		Stencil:               options.Bool(true),
		Antialias:             options.Bool(true),
		PreserveDrawingBuffer: options.Bool(true),
	}
	want := ContextAttributes{
		Alpha:                 true,
		Stencil:               true,
		Antialias:             true,
		PremultipliedAlpha:    true,
		PreserveDrawingBuffer: true,
	}
	if diff := cmp.Diff(want, ResolveAttributes(o)); diff != "" {
		t.Errorf("ResolveAttributes returned diff (-want,+got):\n%s", diff)
	}
}

func TestNoAlphaForcesNoPremultiply(t *testing.T) {
	// Every combination of the seven other flags, each either absent, false
	// or true.
	choices := []*bool{nil, options.Bool(false), options.Bool(true)}
	combos := 1
	for i := 0; i < 7; i++ {
		combos *= len(choices)
	}
	for n := 0; n < combos; n++ {
		pick := func(i int) *bool {
			v := n
			for ; i > 0; i-- {
				v /= len(choices)
			}
			return choices[v%len(choices)]
		}
		o := &options.ContextOptions{
			Alpha:                           options.Bool(false),
			Depth:                           pick(0),
			Stencil:                         pick(1),
			Antialias:                       pick(2),
			PremultipliedAlpha:              pick(3),
			PreserveDrawingBuffer:           pick(4),
			PreferLowPowerToHighPerformance: pick(5),
			FailIfMajorPerformanceCaveat:    pick(6),
		}
		a := ResolveAttributes(o)
		if a.Alpha || a.PremultipliedAlpha {
			t.Fatalf("combination %d: got alpha=%v premultipliedAlpha=%v, want both false", n, a.Alpha, a.PremultipliedAlpha)
		}
	}
}

func TestMipLevels(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{size: 0, want: 0},
		{size: 1, want: 0},
		{size: 2, want: 1},
		{size: 3, want: 2},
		{size: 3000, want: 12},
		{size: 4096, want: 12},
		{size: 4097, want: 13},
	}
	for _, test := range tests {
		if got := mipLevels(test.size); got != test.want {
			t.Errorf("mipLevels(%d) = %d, want %d", test.size, got, test.want)
		}
	}
}
