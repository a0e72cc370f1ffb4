//go:build linux

package headless

import (
	"fmt"
	"sync"
	"unsafe"

	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/gldriver"
	"github.com/richinsley/gowebgl/graphics"
)

/*
#cgo LDFLAGS: -lEGL
#include <EGL/egl.h>
#include <EGL/eglext.h>

// Go doesn't have a great way to call function pointers from C,
// so we'll create simple wrappers for the extension functions.
static PFNEGLQUERYDEVICESEXTPROC eglQueryDevicesEXT_ptr = NULL;
static PFNEGLGETPLATFORMDISPLAYEXTPROC eglGetPlatformDisplayEXT_ptr = NULL;

static void initialize_egl_extension_pointers() {
    eglQueryDevicesEXT_ptr = (PFNEGLQUERYDEVICESEXTPROC) eglGetProcAddress("eglQueryDevicesEXT");
    eglGetPlatformDisplayEXT_ptr = (PFNEGLGETPLATFORMDISPLAYEXTPROC) eglGetProcAddress("eglGetPlatformDisplayEXT");
}

static EGLDisplay get_platform_display(EGLenum platform, void *native_display, const EGLint *attrib_list) {
    if (eglGetPlatformDisplayEXT_ptr) {
        return eglGetPlatformDisplayEXT_ptr(platform, native_display, attrib_list);
    }
    return EGL_NO_DISPLAY;
}

static EGLBoolean query_devices(EGLint max_devices, EGLDeviceEXT *devices, EGLint *num_devices) {
    if (eglQueryDevicesEXT_ptr) {
        return eglQueryDevicesEXT_ptr(max_devices, devices, num_devices);
    }
    return EGL_FALSE;
}
*/
import "C"

var (
	displayOnce sync.Once
	display     C.EGLDisplay
	displayErr  error
)

// Surface is an EGL context with its pbuffer or window surface.
type Surface struct {
	context C.EGLContext
	surface C.EGLSurface
	width   int
	height  int
	driver  *gldriver.Driver
}

// getEGLDisplay tries the device enumeration extension first, falling back
// to the default display.
func getEGLDisplay() (C.EGLDisplay, error) {
	C.initialize_egl_extension_pointers()

	var numDevices C.EGLint
	if C.query_devices(0, nil, &numDevices) == C.EGL_FALSE || numDevices == 0 {
		log.Warn("EGL_EXT_device_query not supported or no devices found, falling back to EGL_DEFAULT_DISPLAY")
		d := C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
		if d == C.EGLDisplay(C.EGL_NO_DISPLAY) {
			return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("fallback to eglGetDisplay(EGL_DEFAULT_DISPLAY) failed")
		}
		return d, nil
	}

	log.Debugf("Found %d EGL device(s)", numDevices)
	devices := make([]C.EGLDeviceEXT, numDevices)
	if C.query_devices(numDevices, &devices[0], &numDevices) == C.EGL_FALSE {
		return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("failed to query EGL devices")
	}
	for i := 0; i < int(numDevices); i++ {
		d := C.get_platform_display(C.EGL_PLATFORM_DEVICE_EXT, unsafe.Pointer(devices[i]), nil)
		if d != C.EGLDisplay(C.EGL_NO_DISPLAY) {
			log.Debugf("Got EGL display from device %d", i)
			return d, nil
		}
	}
	return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("could not get a valid EGL display from any available device")
}

// initDisplay opens and initializes the process-wide EGL display once.
func initDisplay() (C.EGLDisplay, error) {
	displayOnce.Do(func() {
		d, err := getEGLDisplay()
		if err != nil {
			displayErr = fmt.Errorf("failed to get EGL display: %w", err)
			return
		}
		var major, minor C.EGLint
		if C.eglInitialize(d, &major, &minor) == C.EGL_FALSE {
			displayErr = fmt.Errorf("failed to initialize EGL")
			return
		}
		if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
			displayErr = fmt.Errorf("EGL display does not support desktop OpenGL")
			return
		}
		log.Infof("EGL initialized, version %d.%d", major, minor)
		display = d
	})
	return display, displayErr
}

func bits(on bool, n C.EGLint) C.EGLint {
	if on {
		return n
	}
	return 0
}

// windowHandle extracts the native window id from cfg.Window. A nil or zero
// handle selects a pbuffer.
func windowHandle(w any) (uintptr, error) {
	switch h := w.(type) {
	case nil:
		return 0, nil
	case uintptr:
		return h, nil
	}
	return 0, fmt.Errorf("unsupported window handle %T", w)
}

func configAttribs(cfg graphics.SurfaceConfig, window bool) []C.EGLint {
	surfaceType := C.EGLint(C.EGL_PBUFFER_BIT)
	if window {
		surfaceType = C.EGL_WINDOW_BIT
	}
	attribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, surfaceType,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, bits(cfg.Alpha, 8),
		C.EGL_DEPTH_SIZE, bits(cfg.Depth, 24),
		C.EGL_STENCIL_SIZE, bits(cfg.Stencil, 8),
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
	}
	if cfg.MSAA > 0 {
		attribs = append(attribs, C.EGL_SAMPLE_BUFFERS, 1, C.EGL_SAMPLES, C.EGLint(cfg.MSAA))
	}
	return append(attribs, C.EGL_NONE)
}

// Acquire creates a desktop OpenGL 4.1 core context on the shared EGL
// display and makes it current. Without a window the context renders to a
// pbuffer of the requested size; a window handle must be a native window id
// passed as a uintptr.
func Acquire(cfg graphics.SurfaceConfig) (graphics.Surface, graphics.Driver, error) {
	handle, err := windowHandle(cfg.Window)
	if err != nil {
		return nil, nil, err
	}
	dpy, err := initDisplay()
	if err != nil {
		return nil, nil, err
	}

	attribs := configAttribs(cfg, handle != 0)
	var config C.EGLConfig
	var numConfig C.EGLint
	if C.eglChooseConfig(dpy, &attribs[0], &config, 1, &numConfig) == C.EGL_FALSE || numConfig == 0 {
		return nil, nil, fmt.Errorf("failed to choose EGL config")
	}

	s := &Surface{width: cfg.Width, height: cfg.Height}
	if handle != 0 {
		s.surface = C.eglCreateWindowSurface(dpy, config, C.EGLNativeWindowType(handle), nil)
	} else {
		pbufferAttribs := []C.EGLint{
			C.EGL_WIDTH, C.EGLint(cfg.Width),
			C.EGL_HEIGHT, C.EGLint(cfg.Height),
			C.EGL_NONE,
		}
		s.surface = C.eglCreatePbufferSurface(dpy, config, &pbufferAttribs[0])
	}
	if s.surface == C.EGLSurface(C.EGL_NO_SURFACE) {
		return nil, nil, fmt.Errorf("failed to create EGL surface (0x%x)", C.eglGetError())
	}

	contextAttribs := []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION, 4,
		C.EGL_CONTEXT_MINOR_VERSION, 1,
		C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		C.EGL_NONE,
	}
	s.context = C.eglCreateContext(dpy, config, C.EGLContext(C.EGL_NO_CONTEXT), &contextAttribs[0])
	if s.context == C.EGLContext(C.EGL_NO_CONTEXT) {
		s.Shutdown()
		return nil, nil, fmt.Errorf("failed to create EGL context (0x%x)", C.eglGetError())
	}
	if err := s.MakeCurrent(); err != nil {
		s.Shutdown()
		return nil, nil, err
	}

	s.driver, err = gldriver.New()
	if err != nil {
		s.Shutdown()
		return nil, nil, err
	}
	return s, s.driver, nil
}

func (s *Surface) MakeCurrent() error {
	if C.eglMakeCurrent(display, s.surface, s.surface, s.context) == C.EGL_FALSE {
		return fmt.Errorf("failed to make EGL context current (0x%x)", C.eglGetError())
	}
	return nil
}

func (s *Surface) SwapBuffers() error {
	if C.eglSwapBuffers(display, s.surface) == C.EGL_FALSE {
		return fmt.Errorf("eglSwapBuffers failed (0x%x)", C.eglGetError())
	}
	return nil
}

func (s *Surface) GetFramebufferSize() (int, int) {
	var w, h C.EGLint
	if C.eglQuerySurface(display, s.surface, C.EGL_WIDTH, &w) == C.EGL_FALSE ||
		C.eglQuerySurface(display, s.surface, C.EGL_HEIGHT, &h) == C.EGL_FALSE {
		return s.width, s.height
	}
	return int(w), int(h)
}

// Shutdown releases the context and its surface. The shared display stays
// initialized for later contexts.
func (s *Surface) Shutdown() {
	if s.driver != nil {
		s.driver.Release()
		s.driver = nil
	}
	C.eglMakeCurrent(display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
	if s.context != C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroyContext(display, s.context)
		s.context = C.EGLContext(C.EGL_NO_CONTEXT)
	}
	if s.surface != C.EGLSurface(C.EGL_NO_SURFACE) {
		C.eglDestroySurface(display, s.surface)
		s.surface = C.EGLSurface(C.EGL_NO_SURFACE)
	}
}

// Terminate releases the shared EGL display. No context may be used
// afterwards.
func Terminate() {
	if display != C.EGLDisplay(C.EGL_NO_DISPLAY) {
		C.eglTerminate(display)
		log.Info("EGL terminated")
	}
}
