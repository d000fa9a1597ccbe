package logger

import "gitlab.com/rt2-ephem.net/internal/adapter/logging"

// Logger is the process-wide fallback logger for code that runs before
// dependency wiring finishes.
var Logger = logging.NewZapLogger()

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
