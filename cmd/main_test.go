package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/richinsley/gowebgl/graphics"
	"github.com/richinsley/gowebgl/internal/fakegl"
	"github.com/richinsley/gowebgl/options"
	"github.com/richinsley/gowebgl/webgl"
)

func TestContextOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want *options.ContextOptions
	}{
		{
			name: "defaults stay absent",
			args: nil,
			want: &options.ContextOptions{Platform: &options.PlatformOptions{Name: "default"}},
		},
		{
			name: "explicit flags",
			args: []string{"--alpha=false", "--stencil", "--platform=vita", "--msaa=2"},
			want: &options.ContextOptions{
				Alpha:    options.Bool(false),
				Stencil:  options.Bool(true),
				Platform: &options.PlatformOptions{Name: "vita", MSAA: options.Int(2)},
			},
		},
		{
			name: "glfw backend renders to its window",
			args: []string{"--backend=glfw"},
			want: &options.ContextOptions{Platform: &options.PlatformOptions{Name: "default"}, Window: true},
		},
		{
			name: "native window id",
			args: []string{"--window=4242"},
			want: &options.ContextOptions{Platform: &options.PlatformOptions{Name: "default"}, Window: uintptr(4242)},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := &settings{}
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			s.bindFlags(fs)
			if err := fs.Parse(test.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := cmp.Diff(test.want, s.contextOptions(fs)); diff != "" {
				t.Errorf("contextOptions returned diff (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestCheckerQuad(t *testing.T) {
	acq := fakegl.NewAcquirer()
	c, err := webgl.CreateContext(acq, 16, 16, nil)
	if err != nil {
		t.Fatalf("CreateContext failed: %v", err)
	}
	defer c.Destroy()

	draw, err := checkerQuad(c)
	if err != nil {
		t.Fatalf("checkerQuad failed: %v", err)
	}
	draw()
	draw()
	if got := c.GetError(); got != graphics.NO_ERROR {
		t.Fatalf("Drawing the quad raised 0x%x", got)
	}
	if got := acq.Driver.Draws; got != 2 {
		t.Errorf("Got %d draws, want 2", got)
	}
}

func TestHue(t *testing.T) {
	r, g, b := hue(0)
	if r != 1 || g >= r || b >= r {
		t.Errorf("hue(0) = %v %v %v, want red dominant", r, g, b)
	}
	r2, g2, b2 := hue(1)
	if r != r2 || g != g2 || b != b2 {
		t.Errorf("hue is not periodic")
	}
}
