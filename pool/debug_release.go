//go:build !debug

package pool

// debugLog is a no-op without -tags debug; see debug.go.
func debugLog(format string, args ...interface{}) {}
