package egl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "EGL error: bad match", ErrorBadMatch.Error())
	require.Equal(t, "EGL error: no matching config", ErrorNoMatchingConfig.Error())
	require.Equal(t, "unknown EGL error: 0x1234", Error(0x1234).Error())
}

func TestDefaultConfigEnv(t *testing.T) {
	t.Setenv(EnvEGLLibPath, "/opt/egl/libEGL.so")
	cfg := DefaultConfig()
	require.Equal(t, "/opt/egl/libEGL.so", cfg.EGLLibPath)
	require.Equal(t, "libGLESv2.so.2", cfg.GLESLibPath)
}
