//go:build linux

// lib.go binds libEGL and libGLESv2 at runtime.

// Package egl is a dynamically loaded binding of libEGL/libGLESv2
// implementing the GPU import layer of glconv, and a headless context
// for tools and tests.
package egl

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// values from EGL/egl.h, EGL/eglext.h and GLES2/gl2.h
const (
	eglExtensions          = 0x3055
	eglVendor              = 0x3053
	eglVersion             = 0x3054
	eglNone                = 0x3038
	eglRenderableType      = 0x3040
	eglOpenGLES2Bit        = 0x0004
	eglOpenGLESAPI         = 0x30A0
	eglContextVersion      = 0x3098
	eglPlatformSurfaceless = 0x31DD

	glExtensions = 0x1F03
	glRenderer   = 0x1F01
)

var (
	libOnce sync.Once
	libErr  error

	eglGetProcAddress    func(name string) uintptr
	eglQueryString       func(dpy uintptr, name int32) uintptr
	eglGetCurrentDisplay func() uintptr
	eglGetError          func() int32
	eglGetDisplay        func(nativeDisplay uintptr) uintptr
	eglInitialize        func(dpy uintptr, major, minor *int32) uint32
	eglTerminate         func(dpy uintptr) uint32
	eglBindAPI           func(api uint32) uint32
	eglChooseConfig      func(dpy uintptr, attrs *int32, configs *uintptr, configSize int32, numConfig *int32) uint32
	eglCreateContext     func(dpy, config, shareContext uintptr, attrs *int32) uintptr
	eglDestroyContext    func(dpy, ctx uintptr) uint32
	eglMakeCurrent       func(dpy, draw, read, ctx uintptr) uint32

	glGetString      func(name uint32) uintptr
	glBindTexture    func(target, texture uint32)
	glGenTextures    func(n int32, textures *uint32)
	glDeleteTextures func(n int32, textures *uint32)

	// resolved through eglGetProcAddress; nil if not available
	eglGetPlatformDisplayEXT     func(platform uint32, nativeDisplay uintptr, attrs *int32) uintptr
	eglCreateImageKHR            func(dpy, ctx uintptr, target uint32, buffer uintptr, attrs *int32) uintptr
	eglDestroyImageKHR           func(dpy, image uintptr) uint32
	glEGLImageTargetTexture2DOES func(target uint32, image uintptr)
)

// Load loads the libraries with the default configuration.
func Load() error {
	return LoadWithConfig(DefaultConfig())
}

// LoadWithConfig loads the libraries. Only the first call has an effect.
func LoadWithConfig(cfg Config) error {
	libOnce.Do(func() {
		libErr = load(cfg)
	})
	return libErr
}

func load(cfg Config) error {
	libEGL, err := purego.Dlopen(cfg.EGLLibPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("unable to load '%s': %w", cfg.EGLLibPath, err)
	}
	libGLES, err := purego.Dlopen(cfg.GLESLibPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		purego.Dlclose(libEGL)
		return fmt.Errorf("unable to load '%s': %w", cfg.GLESLibPath, err)
	}

	for _, sym := range []struct {
		fptr   any
		handle uintptr
		name   string
	}{
		{&eglGetProcAddress, libEGL, "eglGetProcAddress"},
		{&eglQueryString, libEGL, "eglQueryString"},
		{&eglGetCurrentDisplay, libEGL, "eglGetCurrentDisplay"},
		{&eglGetError, libEGL, "eglGetError"},
		{&eglGetDisplay, libEGL, "eglGetDisplay"},
		{&eglInitialize, libEGL, "eglInitialize"},
		{&eglTerminate, libEGL, "eglTerminate"},
		{&eglBindAPI, libEGL, "eglBindAPI"},
		{&eglChooseConfig, libEGL, "eglChooseConfig"},
		{&eglCreateContext, libEGL, "eglCreateContext"},
		{&eglDestroyContext, libEGL, "eglDestroyContext"},
		{&eglMakeCurrent, libEGL, "eglMakeCurrent"},
		{&glGetString, libGLES, "glGetString"},
		{&glBindTexture, libGLES, "glBindTexture"},
		{&glGenTextures, libGLES, "glGenTextures"},
		{&glDeleteTextures, libGLES, "glDeleteTextures"},
	} {
		addr, err := purego.Dlsym(sym.handle, sym.name)
		if err != nil {
			purego.Dlclose(libGLES)
			purego.Dlclose(libEGL)
			return fmt.Errorf("unable to find symbol '%s': %w", sym.name, err)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}

	registerProc(&eglGetPlatformDisplayEXT, "eglGetPlatformDisplayEXT")
	registerProc(&eglCreateImageKHR, "eglCreateImageKHR")
	registerProc(&eglDestroyImageKHR, "eglDestroyImageKHR")
	registerProc(&glEGLImageTargetTexture2DOES, "glEGLImageTargetTexture2DOES")
	return nil
}

func registerProc(fptr any, name string) {
	addr := eglGetProcAddress(name)
	if addr == 0 {
		return
	}
	purego.RegisterFunc(fptr, addr)
}

func lastError() error {
	return Error(eglGetError())
}

// goString converts a NUL-terminated C string owned by the library.
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	p := unsafe.Pointer(ptr)
	length := 0
	for *(*byte)(unsafe.Add(p, length)) != 0 {
		length++
	}
	return string(unsafe.Slice((*byte)(p), length))
}
