package egl

import (
	"fmt"
)

// Error is an EGL error code as returned by eglGetError.
type Error int32

const (
	ErrorNoMatchingConfig  = Error(-1)
	ErrorSuccess           = Error(0x3000)
	ErrorNotInitialized    = Error(0x3001)
	ErrorBadAccess         = Error(0x3002)
	ErrorBadAlloc          = Error(0x3003)
	ErrorBadAttribute      = Error(0x3004)
	ErrorBadConfig         = Error(0x3005)
	ErrorBadContext        = Error(0x3006)
	ErrorBadCurrentSurface = Error(0x3007)
	ErrorBadDisplay        = Error(0x3008)
	ErrorBadMatch          = Error(0x3009)
	ErrorBadNativePixmap   = Error(0x300A)
	ErrorBadNativeWindow   = Error(0x300B)
	ErrorBadParameter      = Error(0x300C)
	ErrorBadSurface        = Error(0x300D)
	ErrorContextLost       = Error(0x300E)
)

func (err Error) Error() string {
	var str string
	switch err {
	case ErrorNoMatchingConfig:
		str = "no matching config"
	case ErrorSuccess:
		str = "success"
	case ErrorNotInitialized:
		str = "not initialized"
	case ErrorBadAccess:
		str = "bad access"
	case ErrorBadAlloc:
		str = "bad alloc"
	case ErrorBadAttribute:
		str = "bad attribute"
	case ErrorBadConfig:
		str = "bad config"
	case ErrorBadContext:
		str = "bad context"
	case ErrorBadCurrentSurface:
		str = "bad current surface"
	case ErrorBadDisplay:
		str = "bad display"
	case ErrorBadMatch:
		str = "bad match"
	case ErrorBadNativePixmap:
		str = "bad native pixmap"
	case ErrorBadNativeWindow:
		str = "bad native window"
	case ErrorBadParameter:
		str = "bad parameter"
	case ErrorBadSurface:
		str = "bad surface"
	case ErrorContextLost:
		str = "context lost"
	default:
		return fmt.Sprintf("unknown EGL error: 0x%04X", int32(err))
	}
	return "EGL error: " + str
}
