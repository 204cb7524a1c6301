package libled

import (
	"fmt"
	"os"
	"sync/atomic"
)

var debugEnabled atomic.Bool

// SetDebug turns diagnostic logging on or off.
func SetDebug(on bool) { debugEnabled.Store(on) }

// Debug reports whether diagnostic logging is on.
func Debug() bool { return debugEnabled.Load() }

// debugf prints a diagnostic line to stderr when debug logging is on.
func debugf(format string, args ...any) {
	if !debugEnabled.Load() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[libled] "+format+"\n", args...)
}

// warnf always prints to stderr.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[libled] warning: "+format+"\n", args...)
}

// Warnf prints a warning to stderr with the library prefix. Subpackages use
// it so every diagnostic line looks the same.
func Warnf(format string, args ...any) { warnf(format, args...) }

// Debugf prints a diagnostic line when debug logging is on.
func Debugf(format string, args ...any) { debugf(format, args...) }
