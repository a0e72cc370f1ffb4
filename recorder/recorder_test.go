package recorder

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/richinsley/gowebgl/graphics"
	"github.com/richinsley/gowebgl/internal/fakegl"
	"github.com/richinsley/gowebgl/webgl"
)

type fakeRunner struct {
	args []string
	data bytes.Buffer
	err  error
}

func (f *fakeRunner) run(cmd *ffmpeg.Stream, in io.Reader) error {
	f.args = cmd.GetArgs()
	if _, err := io.Copy(&f.data, in); err != nil {
		return err
	}
	return f.err
}

func newContext(t *testing.T, width, height int) *webgl.Context {
	t.Helper()
	c, err := webgl.CreateContext(fakegl.NewAcquirer(), width, height, nil)
	if err != nil {
		t.Fatalf("CreateContext failed: %v", err)
	}
	t.Cleanup(c.Destroy)
	return c
}

func TestRecordFrames(t *testing.T) {
	c := newContext(t, 4, 2)
	f := &fakeRunner{}
	r, err := New(c, Options{Output: "out.mp4", FPS: 30, Codec: "hevc"}, f.run)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c.ClearColor(1, 0, 0, 1)
	c.Clear(graphics.COLOR_BUFFER_BIT)
	for i := 0; i < 3; i++ {
		if err := r.Capture(); err != nil {
			t.Fatalf("Capture %d failed: %v", i, err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if r.Frames() != 3 {
		t.Errorf("Got %d frames, want 3", r.Frames())
	}
	want := bytes.Repeat([]byte{255, 0, 0, 255}, 4*2*3)
	if diff := cmp.Diff(want, f.data.Bytes()); diff != "" {
		t.Errorf("Encoded data differs (-want,+got):\n%s", diff)
	}
	args := strings.Join(f.args, " ")
	for _, arg := range []string{"-f rawvideo", "-pix_fmt rgba", "-s 4x2", "-framerate 30", "-vf vflip", "-c:v libx265", "-tag:v hvc1", "out.mp4"} {
		if !strings.Contains(args, arg) {
			t.Errorf("ffmpeg arguments %q lack %q", args, arg)
		}
	}
	if err := r.Capture(); !errors.Is(err, ErrClosed) {
		t.Errorf("Capture after Close returned %v, want ErrClosed", err)
	}
}

func TestCaptureReadsDrawingBuffer(t *testing.T) {
	c := newContext(t, 2, 2)
	f := &fakeRunner{}
	r, err := New(c, Options{Output: "out.mkv", FPS: 25}, f.run)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	fb := c.CreateFramebuffer()
	c.BindFramebuffer(graphics.FRAMEBUFFER, fb)
	if err := r.Capture(); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if c.ActiveFramebuffer() != fb {
		t.Errorf("Capture did not restore the bound framebuffer")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := f.data.Len(); got != 2*2*4 {
		t.Errorf("Got %d bytes, want %d", got, 2*2*4)
	}
	if args := strings.Join(f.args, " "); !strings.Contains(args, "-c:v libx264") || strings.Contains(args, "hvc1") {
		t.Errorf("Unexpected ffmpeg arguments %q", args)
	}
}

func TestPackAlignmentPadding(t *testing.T) {
	c := newContext(t, 3, 2)
	c.PixelStorei(graphics.PACK_ALIGNMENT, 8)
	f := &fakeRunner{}
	r, err := New(c, Options{Output: "out.mp4", FPS: 1}, f.run)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := r.Capture(); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := f.data.Len(); got != 3*2*4 {
		t.Errorf("Got %d bytes for a padded readback, want %d", got, 3*2*4)
	}
}

func TestEncoderFailure(t *testing.T) {
	c := newContext(t, 2, 2)
	boom := errors.New("boom")
	r, err := New(c, Options{Output: "out.mp4", FPS: 30}, func(*ffmpeg.Stream, io.Reader) error { return boom })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// The encoder is gone, so the frame cannot be delivered.
	if err := r.Capture(); err == nil {
		t.Errorf("Capture succeeded without an encoder")
	}
	if err := r.Close(); !errors.Is(err, boom) {
		t.Errorf("Close returned %v, want the encoder error", err)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	c := newContext(t, 2, 2)
	for _, opts := range []Options{{FPS: 30}, {Output: "out.mp4"}} {
		if _, err := New(c, opts, nil); err == nil {
			t.Errorf("New(%+v) succeeded", opts)
		}
	}
	c.Destroy()
	if _, err := New(c, Options{Output: "out.mp4", FPS: 30}, nil); !errors.Is(err, webgl.ErrContextLost) {
		t.Errorf("New on a destroyed context returned %v", err)
	}
}
