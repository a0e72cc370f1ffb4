// Package recorder encodes the frames a context presents by piping drawing
// buffer readbacks into ffmpeg.
package recorder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/richinsley/gowebgl/graphics"
	"github.com/richinsley/gowebgl/webgl"
)

// ErrClosed is returned by Capture after Close.
var ErrClosed = errors.New("recorder: closed")

// Options configures the encoder process.
type Options struct {
	Output     string
	FPS        int
	Codec      string // h264, hevc or any encoder name ffmpeg knows
	FFmpegPath string
}

// Runner executes an ffmpeg invocation that reads raw RGBA frames from in.
type Runner func(cmd *ffmpeg.Stream, in io.Reader) error

func runFFmpeg(cmd *ffmpeg.Stream, in io.Reader) error {
	return cmd.WithInput(in).ErrorToStdOut().Run()
}

// Recorder reads the drawing buffer of one context once per Capture call.
type Recorder struct {
	c      *webgl.Context
	width  int
	height int
	stride int
	frame  []byte
	packed []byte
	frames int

	pw   *io.PipeWriter
	errc chan error
}

func encoderFor(codec string) string {
	switch codec {
	case "", "h264":
		return "libx264"
	case "hevc":
		return "libx265"
	}
	return codec
}

func (r *Recorder) args(opts Options) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", r.width, r.height),
		"framerate": opts.FPS,
	}
	// GL rows run bottom to top.
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"c:v":     encoderFor(opts.Codec),
		"pix_fmt": "yuv420p",
	}
	if opts.Codec == "hevc" && strings.HasSuffix(opts.Output, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// New starts an encoder sized to c's drawing buffer. run may be nil to use
// the ffmpeg binary.
func New(c *webgl.Context, opts Options, run Runner) (*Recorder, error) {
	if opts.Output == "" {
		return nil, fmt.Errorf("recorder: no output file")
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("recorder: invalid frame rate %d", opts.FPS)
	}
	if c.IsContextLost() {
		return nil, webgl.ErrContextLost
	}
	if run == nil {
		run = runFFmpeg
	}

	r := &Recorder{
		c:      c,
		width:  c.DrawingBufferWidth(),
		height: c.DrawingBufferHeight(),
		errc:   make(chan error, 1),
	}
	a := c.PackAlignment()
	r.stride = (r.width*4 + a - 1) / a * a
	r.frame = make([]byte, r.stride*(r.height-1)+r.width*4)
	if r.stride != r.width*4 {
		r.packed = make([]byte, r.width*4*r.height)
	}

	inputArgs, outputArgs := r.args(opts)
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.Output, outputArgs).
		OverWriteOutput()
	if opts.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(opts.FFmpegPath)
	}

	pr, pw := io.Pipe()
	r.pw = pw
	go func() {
		err := run(cmd, pr)
		// Unblock Capture if the encoder went away early.
		pr.CloseWithError(ErrClosed)
		r.errc <- err
	}()
	log.Infof("Recording %dx%d at %d fps to %s", r.width, r.height, opts.FPS, opts.Output)
	return r, nil
}

// Capture reads the drawing buffer and hands it to the encoder. It must run
// before the context's Swap when the drawing buffer is not preserved.
func (r *Recorder) Capture() error {
	if r.pw == nil {
		return ErrClosed
	}
	c := r.c
	if c.IsContextLost() {
		return webgl.ErrContextLost
	}
	if prev := c.ActiveFramebuffer(); prev != nil {
		c.BindFramebuffer(graphics.FRAMEBUFFER, nil)
		defer c.BindFramebuffer(graphics.FRAMEBUFFER, prev)
	}
	c.ReadPixels(0, 0, int32(r.width), int32(r.height), graphics.RGBA, graphics.UNSIGNED_BYTE, r.frame)

	out := r.frame
	if r.packed != nil {
		tight := r.width * 4
		for y := 0; y < r.height; y++ {
			copy(r.packed[y*tight:(y+1)*tight], r.frame[y*r.stride:])
		}
		out = r.packed
	}
	if _, err := r.pw.Write(out); err != nil {
		return fmt.Errorf("failed to write frame %d to ffmpeg: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames captured so far.
func (r *Recorder) Frames() int { return r.frames }

// Close ends the stream and waits for the encoder to finish.
func (r *Recorder) Close() error {
	if r.pw == nil {
		return nil
	}
	r.pw.Close()
	r.pw = nil
	err := <-r.errc
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	log.Infof("Recorded %d frames", r.frames)
	return nil
}
