package entropy

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-tick timing and population metrics.
// Only populated when Engine.debug is true.
type debugStats struct {
	tickStats
	dt       float64
	tickTime time.Duration
}

// debugLog prints per-tick stats to stderr.
func (e *Engine) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[entropy] dt: %.4fs | tick: %v | alive: %d | spawned: %d | culled: %d\n",
		stats.dt, stats.tickTime, stats.alive, stats.spawned, stats.culled)
}

// debugf prints a one-off diagnostic to stderr in debug mode.
func (e *Engine) debugf(format string, args ...any) {
	if !e.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[entropy] "+format+"\n", args...)
}

// warnf prints a diagnostic to stderr regardless of debug mode. Used for
// failures on paths that have no error return, such as input callbacks.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[entropy] warning: "+format+"\n", args...)
}
