package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/richinsley/gowebgl/graphics"
	"github.com/richinsley/gowebgl/internal/fakegl"
	"github.com/richinsley/gowebgl/webgl"
)

func newContext(t *testing.T) (*webgl.Context, *fakegl.Driver) {
	t.Helper()
	acq := fakegl.NewAcquirer()
	c, err := webgl.CreateContext(acq, 64, 64, nil)
	if err != nil {
		t.Fatalf("CreateContext failed: %v", err)
	}
	t.Cleanup(c.Destroy)
	return c, acq.Driver
}

func TestCompileFailureDeletesShader(t *testing.T) {
	c, d := newContext(t)
	before := d.Live(fakegl.Shader)

	s, diag := Compile(c, graphics.FRAGMENT_SHADER, "precision mediump float;")
	if s != nil {
		t.Fatalf("Compile returned a shader for invalid source")
	}
	if diag == "" {
		t.Errorf("Compile returned no diagnostic")
	}
	if got := d.Live(fakegl.Shader); got != before {
		t.Errorf("Got %d live shaders after a failed compile, want %d", got, before)
	}
}

func TestCompileBuiltins(t *testing.T) {
	c, d := newContext(t)
	sources := []struct {
		kind graphics.Enum
		src  string
	}{
		{graphics.VERTEX_SHADER, VertexShader()},
		{graphics.FRAGMENT_SHADER, SolidFragmentShader()},
		{graphics.FRAGMENT_SHADER, BlitFragmentShader(false)},
		{graphics.FRAGMENT_SHADER, BlitFragmentShader(true)},
	}
	for i, s := range sources {
		sh, diag := Compile(c, s.kind, s.src)
		if sh == nil {
			t.Fatalf("source %d failed to compile: %s", i, diag)
		}
		if sh.Type() != s.kind {
			t.Errorf("source %d: got shader type 0x%x, want 0x%x", i, sh.Type(), s.kind)
		}
	}
	if got := d.Live(fakegl.Shader); got != len(sources) {
		t.Errorf("Got %d live shaders, want %d", got, len(sources))
	}
}

func TestCompileBadStage(t *testing.T) {
	c, _ := newContext(t)
	if s, diag := Compile(c, graphics.ARRAY_BUFFER, VertexShader()); s != nil || diag == "" {
		t.Errorf("Compile with a bad stage returned %v, %q", s, diag)
	}
	if got := c.GetError(); got != graphics.INVALID_ENUM {
		t.Errorf("Got 0x%x, want INVALID_ENUM", got)
	}
}

func TestLinkFailureDeletesProgram(t *testing.T) {
	c, d := newContext(t)
	vs, _ := Compile(c, graphics.VERTEX_SHADER, VertexShader())

	p, diag := Link(c, vs, nil)
	if p != nil {
		t.Fatalf("Link succeeded without a fragment shader")
	}
	if diag == "" {
		t.Errorf("Link returned no diagnostic")
	}
	if got := d.Live(fakegl.Program); got != 0 {
		t.Errorf("Got %d live programs after a failed link, want 0", got)
	}
	// The program's reference on the vertex shader went away with it.
	c.DeleteShader(vs)
	if got := d.Live(fakegl.Shader); got != 0 {
		t.Errorf("Got %d live shaders, want 0", got)
	}
}

func TestNewProgram(t *testing.T) {
	c, d := newContext(t)
	p, err := NewProgram(c, VertexShader(), SolidFragmentShader())
	if err != nil {
		t.Fatalf("NewProgram failed: %v", err)
	}
	if !p.LinkStatus() {
		t.Errorf("Program is not linked")
	}
	// The shaders are already deleted but stay alive while attached.
	for _, s := range c.GetAttachedShaders(p) {
		if !s.IsDeleted() || s.IsReleased() {
			t.Errorf("Attached shader %d: deleted=%v released=%v", s.Name(), s.IsDeleted(), s.IsReleased())
		}
	}
	c.DeleteProgram(p)
	if d.Live(fakegl.Shader) != 0 || d.Live(fakegl.Program) != 0 {
		t.Errorf("Got %d shaders and %d programs live, want none", d.Live(fakegl.Shader), d.Live(fakegl.Program))
	}
}

func TestNewProgramErrors(t *testing.T) {
	tests := []struct {
		name     string
		vertex   string
		fragment string
		want     error
		stage    string
	}{
		{name: "vertex", vertex: "attribute vec2 p;", fragment: SolidFragmentShader(), want: ErrCompile, stage: "vertex"},
		{name: "fragment", vertex: VertexShader(), fragment: "uniform vec4 c;", want: ErrCompile, stage: "fragment"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, d := newContext(t)
			p, err := NewProgram(c, test.vertex, test.fragment)
			if p != nil || !errors.Is(err, test.want) {
				t.Fatalf("NewProgram returned %v, %v; want %v", p, err, test.want)
			}
			if !strings.Contains(err.Error(), test.stage) {
				t.Errorf("Error %q does not name the %s stage", err, test.stage)
			}
			if d.Live(fakegl.Shader) != 0 || d.Live(fakegl.Program) != 0 {
				t.Errorf("Failed NewProgram leaked %d shaders and %d programs", d.Live(fakegl.Shader), d.Live(fakegl.Program))
			}
		})
	}
}
