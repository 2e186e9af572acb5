package logger

import (
	"strings"

	"github.com/asticode/go-astiav"
)

// LevelToAstiav returns the libav log level matching the logger level.
func LevelToAstiav(level Level) astiav.LogLevel {
	switch level {
	case LevelTrace:
		return astiav.LogLevelTrace
	case LevelDebug:
		return astiav.LogLevelDebug
	case LevelInfo:
		return astiav.LogLevelInfo
	case LevelWarning:
		return astiav.LogLevelWarning
	case LevelError:
		return astiav.LogLevelError
	case LevelPanic:
		return astiav.LogLevelPanic
	case LevelFatal:
		return astiav.LogLevelFatal
	}
	return astiav.LogLevelQuiet
}

func LevelFromAstiav(level astiav.LogLevel) Level {
	switch {
	case level <= astiav.LogLevelPanic:
		return LevelPanic
	case level <= astiav.LogLevelFatal:
		return LevelFatal
	case level <= astiav.LogLevelError:
		return LevelError
	case level <= astiav.LogLevelWarning:
		return LevelWarning
	case level <= astiav.LogLevelInfo:
		return LevelInfo
	case level <= astiav.LogLevelDebug:
		return LevelDebug
	}
	return LevelTrace
}

// RedirectAstiav makes libav log through l.
func RedirectAstiav(l Logger) {
	astiav.SetLogLevel(LevelToAstiav(l.Level()))
	astiav.SetLogCallback(func(c astiav.Classer, level astiav.LogLevel, fmt, msg string) {
		var cs string
		if c != nil {
			if cl := c.Class(); cl != nil {
				cs = " - class: " + cl.String()
			}
		}
		l.Logf(LevelFromAstiav(level), "%s%s", strings.TrimSpace(msg), cs)
	})
}
