package logger

import (
	"fmt"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// KitLogger bridges a go-kit logger into the Logger interface, mapping the
// formatted calls onto leveled structured records.
type KitLogger struct {
	kit kitlog.Logger
}

// NewKitLogger wraps a go-kit logger.
func NewKitLogger(kit kitlog.Logger) *KitLogger {
	return &KitLogger{kit: kit}
}

// Printf logs at info level.
func (l *KitLogger) Printf(format string, v ...interface{}) {
	_ = level.Info(l.kit).Log("msg", fmt.Sprintf(format, v...))
}

// Warnf logs at warn level.
func (l *KitLogger) Warnf(format string, v ...interface{}) {
	_ = level.Warn(l.kit).Log("msg", fmt.Sprintf(format, v...))
}

// Errorf logs at error level.
func (l *KitLogger) Errorf(format string, v ...interface{}) {
	_ = level.Error(l.kit).Log("msg", fmt.Sprintf(format, v...))
}

// Fatalf logs at error level and terminates the program.
func (l *KitLogger) Fatalf(format string, v ...interface{}) {
	_ = level.Error(l.kit).Log("msg", fmt.Sprintf(format, v...))
	os.Exit(1)
}
