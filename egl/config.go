package egl

import (
	"os"
)

const (
	EnvEGLLibPath  = "DRMPRIME_EGL_LIB_PATH"
	EnvGLESLibPath = "DRMPRIME_GLES_LIB_PATH"
)

type Config struct {
	EGLLibPath  string `yaml:"egl_lib_path"`
	GLESLibPath string `yaml:"gles_lib_path"`

	// Surfaceless makes NewHeadlessContext prefer the
	// EGL_MESA_platform_surfaceless display over the default one.
	Surfaceless bool `yaml:"surfaceless"`
}

// DefaultConfig returns the configuration with the library paths taken
// from the environment, if set.
func DefaultConfig() Config {
	cfg := Config{
		EGLLibPath:  "libEGL.so.1",
		GLESLibPath: "libGLESv2.so.2",
		Surfaceless: true,
	}
	if path := os.Getenv(EnvEGLLibPath); path != "" {
		cfg.EGLLibPath = path
	}
	if path := os.Getenv(EnvGLESLibPath); path != "" {
		cfg.GLESLibPath = path
	}
	return cfg
}
