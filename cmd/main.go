package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/richinsley/gowebgl/glfwcontext"
	"github.com/richinsley/gowebgl/graphics"
	"github.com/richinsley/gowebgl/headless"
	"github.com/richinsley/gowebgl/options"
	"github.com/richinsley/gowebgl/recorder"
	"github.com/richinsley/gowebgl/shader"
	"github.com/richinsley/gowebgl/webgl"
)

type settings struct {
	backend  string
	width    int
	height   int
	platform string
	msaa     int
	window   uint64
	verbose  bool

	alpha, depth, stencil, antialias, premultipliedAlpha, preserveDrawingBuffer bool

	frames     int
	quad       bool
	record     string
	fps        int
	codec      string
	ffmpegPath string
}

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:          "gowebgl",
		Short:        "WebGL 1.0 contexts over native OpenGL",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if s.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	s.bindFlags(root.PersistentFlags())
	root.AddCommand(newInfoCommand(s), newClearCommand(s))
	return root
}

func (s *settings) bindFlags(pf *pflag.FlagSet) {
	pf.StringVar(&s.backend, "backend", "headless", "native context backend: headless (EGL) or glfw")
	pf.IntVar(&s.width, "width", 640, "drawing buffer width")
	pf.IntVar(&s.height, "height", 480, "drawing buffer height")
	pf.StringVar(&s.platform, "platform", "default", "initialization profile (default, vita)")
	pf.IntVar(&s.msaa, "msaa", 0, "multisample request forwarded to the native surface")
	pf.Uint64Var(&s.window, "window", 0, "native window id to render into (headless backend)")
	pf.BoolVarP(&s.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&s.alpha, "alpha", true, "drawing buffer has an alpha channel")
	pf.BoolVar(&s.depth, "depth", true, "drawing buffer has a depth buffer")
	pf.BoolVar(&s.stencil, "stencil", false, "drawing buffer has a stencil buffer")
	pf.BoolVar(&s.antialias, "antialias", false, "request a multisampled drawing buffer")
	pf.BoolVar(&s.premultipliedAlpha, "premultiplied-alpha", true, "drawing buffer colors are premultiplied")
	pf.BoolVar(&s.preserveDrawingBuffer, "preserve-drawing-buffer", false, "keep the drawing buffer across swaps")
}

// contextOptions only sets the attributes given on the command line, so the
// library defaults apply to the rest.
func (s *settings) contextOptions(fs *pflag.FlagSet) *options.ContextOptions {
	o := &options.ContextOptions{
		Platform: &options.PlatformOptions{Name: s.platform},
	}
	if fs.Changed("msaa") {
		o.Platform.MSAA = options.Int(s.msaa)
	}
	for name, dst := range map[string]struct {
		v *bool
		p **bool
	}{
		"alpha":                   {&s.alpha, &o.Alpha},
		"depth":                   {&s.depth, &o.Depth},
		"stencil":                 {&s.stencil, &o.Stencil},
		"antialias":               {&s.antialias, &o.Antialias},
		"premultiplied-alpha":     {&s.premultipliedAlpha, &o.PremultipliedAlpha},
		"preserve-drawing-buffer": {&s.preserveDrawingBuffer, &o.PreserveDrawingBuffer},
	} {
		if fs.Changed(name) {
			*dst.p = options.Bool(*dst.v)
		}
	}
	switch {
	case s.backend == "glfw":
		o.Window = true
	case s.window != 0:
		o.Window = uintptr(s.window)
	}
	return o
}

// session owns a context and the native backend behind it.
type session struct {
	ctx    *webgl.Context
	window *glfwcontext.Context
	close  func()
}

func (s *settings) open(cmd *cobra.Command) (*session, error) {
	sess := &session{}
	var acq graphics.Acquirer
	switch s.backend {
	case "headless":
		acq = graphics.AcquirerFunc(headless.Acquire)
		sess.close = headless.Terminate
	case "glfw":
		if err := glfwcontext.InitGraphics(); err != nil {
			return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
		}
		acq = graphics.AcquirerFunc(func(cfg graphics.SurfaceConfig) (graphics.Surface, graphics.Driver, error) {
			surface, driver, err := glfwcontext.Acquire(cfg)
			if err == nil {
				sess.window = surface.(*glfwcontext.Context)
			}
			return surface, driver, err
		})
		sess.close = glfwcontext.TerminateGraphics
	default:
		return nil, fmt.Errorf("unknown backend %q", s.backend)
	}

	c, err := webgl.CreateContext(acq, s.width, s.height, s.contextOptions(cmd.Flags()))
	if err != nil {
		sess.close()
		return nil, err
	}
	sess.ctx = c
	return sess, nil
}

func (sess *session) Close() {
	webgl.DisposeAll()
	sess.close()
}

func newInfoCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Create a context and print its limits and extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := s.open(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			c := sess.ctx
			out := cmd.OutOrStdout()

			a := c.ContextAttributes()
			fmt.Fprintf(out, "context:        %d (%s)\n", c.ID(), c.Platform())
			fmt.Fprintf(out, "vendor:         %s\n", c.GetString(graphics.VENDOR))
			fmt.Fprintf(out, "renderer:       %s\n", c.GetString(graphics.RENDERER))
			fmt.Fprintf(out, "version:        %s\n", c.GetString(graphics.VERSION))
			fmt.Fprintf(out, "drawing buffer: %dx%d offscreen=%v\n", c.DrawingBufferWidth(), c.DrawingBufferHeight(), c.IsOffscreen())
			sw, sh := c.SurfaceSize()
			fmt.Fprintf(out, "surface:        %dx%d\n", sw, sh)
			fmt.Fprintf(out, "attributes:     %+v\n", a)
			fmt.Fprintf(out, "texture units:  %d\n", len(c.TextureUnits()))
			fmt.Fprintf(out, "texture size:   %d (%d levels)\n", c.MaxTextureSize(), c.MaxTextureLevel()+1)
			fmt.Fprintf(out, "cube map size:  %d (%d levels)\n", c.MaxCubeMapSize(), c.MaxCubeMapLevel()+1)
			fmt.Fprintln(out, "extensions:")
			for _, name := range c.GetSupportedExtensions() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}
}

func newClearCommand(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the drawing buffer through a color cycle, optionally recording it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runClear(cmd)
		},
	}
	f := cmd.Flags()
	f.IntVar(&s.frames, "frames", 120, "number of frames to present, 0 runs until the window closes")
	f.BoolVar(&s.quad, "quad", false, "draw a textured quad over the cleared color")
	f.StringVar(&s.record, "record", "", "encode the presented frames to this file")
	f.IntVar(&s.fps, "fps", 60, "frame rate of the recording")
	f.StringVar(&s.codec, "codec", "h264", "video codec of the recording (h264, hevc)")
	f.StringVar(&s.ffmpegPath, "ffmpeg", "", "path to the ffmpeg executable")
	return cmd
}

func (s *settings) runClear(cmd *cobra.Command) error {
	if s.frames <= 0 && s.backend != "glfw" {
		return fmt.Errorf("--frames must be positive without a window")
	}
	sess, err := s.open(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()
	c := sess.ctx

	var draw func()
	if s.quad {
		if draw, err = checkerQuad(c); err != nil {
			return err
		}
	}

	var rec *recorder.Recorder
	if s.record != "" {
		rec, err = recorder.New(c, recorder.Options{
			Output:     s.record,
			FPS:        s.fps,
			Codec:      s.codec,
			FFmpegPath: s.ffmpegPath,
		}, nil)
		if err != nil {
			return err
		}
	}

	// Space pauses the color cycle on the glfw backend.
	paused := false
	if sess.window != nil {
		sess.window.RegisterKeyCallback(glfw.KeySpace, func() { paused = !paused })
	}
	step := 0
	for frame := 0; s.frames == 0 || frame < s.frames; frame++ {
		if sess.window != nil && sess.window.ShouldClose() {
			break
		}
		r, g, b := hue(float64(step) / 120)
		if !paused {
			step++
		}
		c.ClearColor(r, g, b, 1)
		c.Clear(graphics.COLOR_BUFFER_BIT | graphics.DEPTH_BUFFER_BIT)
		if draw != nil {
			draw()
		}
		if e := c.GetError(); e != graphics.NO_ERROR {
			log.Warnf("Frame %d: GL error 0x%x", frame, uint32(e))
		}
		if rec != nil {
			if err := rec.Capture(); err != nil {
				rec.Close()
				return err
			}
		}
		if err := c.Swap(); err != nil {
			return err
		}
	}
	if rec != nil {
		return rec.Close()
	}
	return nil
}

// hue maps t in [0, 1) around the color wheel.
func hue(t float64) (float32, float32, float32) {
	t -= math.Floor(t)
	channel := func(offset float64) float32 {
		return float32(0.5 + 0.5*math.Cos(2*math.Pi*(t+offset)))
	}
	return channel(0), channel(2.0 / 3), channel(1.0 / 3)
}

// checkerQuad uploads a 2x2 checkerboard and returns a function drawing it
// over the whole viewport.
func checkerQuad(c *webgl.Context) (func(), error) {
	p, err := shader.NewProgram(c, shader.VertexShader(), shader.BlitFragmentShader(false))
	if err != nil {
		return nil, err
	}

	corners := []float32{-1, -1, 1, -1, -1, 1, 1, 1}
	vertices := make([]byte, 4*len(corners))
	for i, v := range corners {
		binary.LittleEndian.PutUint32(vertices[4*i:], math.Float32bits(v))
	}
	vbo := c.CreateBuffer()
	c.BindBuffer(graphics.ARRAY_BUFFER, vbo)
	c.BufferData(graphics.ARRAY_BUFFER, vertices, graphics.STATIC_DRAW)

	tex := c.CreateTexture()
	c.ActiveTexture(graphics.TEXTURE0)
	c.BindTexture(graphics.TEXTURE_2D, tex)
	c.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_MIN_FILTER, int32(graphics.NEAREST))
	c.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_MAG_FILTER, int32(graphics.NEAREST))
	c.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_WRAP_S, int32(graphics.CLAMP_TO_EDGE))
	c.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_WRAP_T, int32(graphics.CLAMP_TO_EDGE))
	checker := []byte{
		255, 255, 255, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 255, 255, 255, 255,
	}
	c.TexImage2D(graphics.TEXTURE_2D, 0, graphics.RGBA, 2, 2, 0, graphics.RGBA, graphics.UNSIGNED_BYTE, checker)

	return func() {
		c.UseProgram(p)
		c.BindBuffer(graphics.ARRAY_BUFFER, vbo)
		c.EnableVertexAttribArray(0)
		c.VertexAttribPointer(0, 2, graphics.FLOAT, false, 0, 0)
		c.DrawArrays(graphics.TRIANGLE_STRIP, 0, 4)
	}, nil
}
