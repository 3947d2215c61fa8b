//go:build !debug

package channel

// debugLog is a no-op without -tags debug; see debug.go.
func debugLog(format string, args ...interface{}) {}
