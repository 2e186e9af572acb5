//go:build linux

package egl

import (
	"context"
	"fmt"

	"github.com/asticode/go-astikit"
	"github.com/xaionaro-go/drmprime/glconv"
	"github.com/xaionaro-go/drmprime/logger"
)

const (
	ExtensionPlatformSurfaceless = "EGL_MESA_platform_surfaceless"
	ExtensionSurfacelessContext  = "EGL_KHR_surfaceless_context"
)

// HeadlessContext is a GLES2 context current without any surface.
//
// EGL contexts are current per OS thread: the goroutine creating it has to
// be locked to its thread (runtime.LockOSThread) and use it from there.
type HeadlessContext struct {
	closer   *astikit.Closer
	display  uintptr
	context  uintptr
	platform *Platform
	major    int32
	minor    int32
}

// NewHeadlessContext creates a headless context and makes it current.
func NewHeadlessContext(ctx context.Context) (*HeadlessContext, error) {
	return NewHeadlessContextWithConfig(ctx, DefaultConfig())
}

func NewHeadlessContextWithConfig(
	ctx context.Context,
	cfg Config,
) (_ret *HeadlessContext, _err error) {
	logger.Debugf(ctx, "NewHeadlessContext(%#+v)", cfg)
	defer func() { logger.Debugf(ctx, "/NewHeadlessContext(%#+v): %v", cfg, _err) }()

	if err := LoadWithConfig(cfg); err != nil {
		return nil, err
	}

	c := &HeadlessContext{
		closer: astikit.NewCloser(),
	}
	defer func() {
		if _err != nil {
			if err := c.closer.Close(); err != nil {
				logger.Errorf(ctx, "unable to tear down the partially created context: %v", err)
			}
		}
	}()

	c.display = openDisplay(ctx, cfg)
	if c.display == 0 {
		return nil, fmt.Errorf("unable to get an EGL display: %w", lastError())
	}

	if eglInitialize(c.display, &c.major, &c.minor) == 0 {
		return nil, fmt.Errorf("eglInitialize: %w", lastError())
	}
	dpy := c.display
	c.closer.Add(func() {
		eglTerminate(dpy)
	})
	c.platform = &Platform{Display: dpy}
	logger.Debugf(ctx, "EGL %d.%d, vendor '%s'", c.major, c.minor, c.platform.Vendor())

	if !glconv.HasExtension(c.platform.EGLExtensions(), ExtensionSurfacelessContext) {
		return nil, fmt.Errorf("the display does not support %s", ExtensionSurfacelessContext)
	}

	if eglBindAPI(eglOpenGLESAPI) == 0 {
		return nil, fmt.Errorf("eglBindAPI: %w", lastError())
	}

	configAttrs := []int32{
		eglRenderableType, eglOpenGLES2Bit,
		eglNone,
	}
	var config uintptr
	var numConfig int32
	if eglChooseConfig(dpy, &configAttrs[0], &config, 1, &numConfig) == 0 {
		return nil, fmt.Errorf("eglChooseConfig: %w", lastError())
	}
	if numConfig < 1 {
		return nil, ErrorNoMatchingConfig
	}

	contextAttrs := []int32{
		eglContextVersion, 2,
		eglNone,
	}
	c.context = eglCreateContext(dpy, config, 0, &contextAttrs[0])
	if c.context == 0 {
		return nil, fmt.Errorf("eglCreateContext: %w", lastError())
	}
	glCtx := c.context
	c.closer.Add(func() {
		eglDestroyContext(dpy, glCtx)
	})

	if eglMakeCurrent(dpy, 0, 0, glCtx) == 0 {
		return nil, fmt.Errorf("eglMakeCurrent: %w", lastError())
	}
	c.closer.Add(func() {
		eglMakeCurrent(dpy, 0, 0, 0)
	})
	logger.Debugf(ctx, "GL renderer: '%s'", c.platform.Renderer())
	return c, nil
}

func openDisplay(
	ctx context.Context,
	cfg Config,
) uintptr {
	if cfg.Surfaceless && eglGetPlatformDisplayEXT != nil {
		clientExts := goString(eglQueryString(0, eglExtensions))
		if glconv.HasExtension(clientExts, ExtensionPlatformSurfaceless) {
			attrs := []int32{eglNone}
			if dpy := eglGetPlatformDisplayEXT(eglPlatformSurfaceless, 0, &attrs[0]); dpy != 0 {
				return dpy
			}
			logger.Debugf(ctx, "unable to open the surfaceless display: %v", lastError())
		}
	}
	return eglGetDisplay(0)
}

// Platform returns the import layer on the display of the context.
func (c *HeadlessContext) Platform() *Platform {
	return c.platform
}

func (c *HeadlessContext) Version() (major, minor int32) {
	return c.major, c.minor
}

func (c *HeadlessContext) Close() error {
	return c.closer.Close()
}
