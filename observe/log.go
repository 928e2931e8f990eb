package observe

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// Logger returns the logger used by this module. It defaults to slog.Default.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// SetLogger replaces the module logger, nil restores the default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}
