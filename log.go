package icon

import (
	"sync/atomic"

	"golang.org/x/exp/slog"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used to report recoverable icon errors.
// A nil logger restores slog.Default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func log() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}
