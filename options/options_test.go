package options

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromMap(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want *ContextOptions
	}{
		{
			name: "nil",
			in:   nil,
			want: nil,
		},
		{
			name: "empty",
			in:   map[string]any{},
			want: &ContextOptions{},
		},
		{
			name: "bools",
			in:   map[string]any{"alpha": false, "stencil": true},
			want: &ContextOptions{Alpha: Bool(false), Stencil: Bool(true)},
		},
		{
			name: "numbers",
			in:   map[string]any{"depth": 0, "antialias": 1.5, "premultipliedAlpha": math.NaN()},
			want: &ContextOptions{Depth: Bool(false), Antialias: Bool(true), PremultipliedAlpha: Bool(false)},
		},
		{
			name: "strings",
			in:   map[string]any{"preserveDrawingBuffer": "yes", "failIfMajorPerformanceCaveat": ""},
			want: &ContextOptions{PreserveDrawingBuffer: Bool(true), FailIfMajorPerformanceCaveat: Bool(false)},
		},
		{
			name: "unsupported types are absent",
			in:   map[string]any{"alpha": nil, "depth": []int{1}, "unknownFlag": true},
			want: &ContextOptions{},
		},
		{
			name: "platform",
			in: map[string]any{
				"platform": map[string]any{"name": "vita", "msaa": 4.0},
			},
			want: &ContextOptions{Platform: &PlatformOptions{Name: "vita", MSAA: Int(4)}},
		},
		{
			name: "platform without msaa",
			in: map[string]any{
				"platform": map[string]any{"name": "default", "msaa": math.Inf(1)},
			},
			want: &ContextOptions{Platform: &PlatformOptions{Name: "default"}},
		},
		{
			name: "falsy window",
			in:   map[string]any{"window": uintptr(0)},
			want: &ContextOptions{},
		},
		{
			name: "window",
			in:   map[string]any{"window": uintptr(0xdead)},
			want: &ContextOptions{Window: uintptr(0xdead)},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, FromMap(test.in)); diff != "" {
				t.Errorf("FromMap returned diff (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestAccessorsOnAbsentOptions(t *testing.T) {
	var o *ContextOptions
	if o.PlatformName() != "" || o.MSAA() != 0 || o.HasWindow() {
		t.Errorf("nil options reported a platform, msaa or window")
	}
	o = &ContextOptions{Platform: &PlatformOptions{Name: "vita", MSAA: Int(2)}, Window: "handle"}
	if o.PlatformName() != "vita" || o.MSAA() != 2 || !o.HasWindow() {
		t.Errorf("Got platform %q msaa %d window %v", o.PlatformName(), o.MSAA(), o.HasWindow())
	}
}
