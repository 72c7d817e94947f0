package logger

import (
	"fmt"
	"os"
)

// Init sets up the default logger before the environment is known.
// InitStructured replaces it once APP_ENV is resolved.
func Init() {
	InitStructuredTo(os.Stdout, "production")
}

// Info logs a formatted message at info level
func Info(format string, args ...interface{}) {
	zlog.Info().Msg(fmt.Sprintf(format, args...))
}

// Warn logs a formatted message at warn level
func Warn(format string, args ...interface{}) {
	zlog.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs a formatted message at error level
func Error(format string, args ...interface{}) {
	zlog.Error().Msg(fmt.Sprintf(format, args...))
}
