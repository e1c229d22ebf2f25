// Package monitoring carries the engine's diagnostic logging seam.
package monitoring

import "log"

// Logf is the package-level diagnostic logger used by the engine for batch
// progress and configuration reporting. It defaults to log.Printf but may be
// replaced by SetLogger; host glue typically redirects it into its own
// logging stream, and tests mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
