//go:build darwin

package affinity

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// ThreadID returns a best-effort OS thread identifier. Darwin exposes no
// cheap unprivileged syscall for the calling thread's kernel id through
// golang.org/x/sys/unix, so the process id is used as a stable-enough
// substitute for a single-threaded-per-worker identity check; it is not a
// true per-thread id.
func ThreadID() int64 {
	return int64(unix.Getpid())
}

// SetupWorkerAffinity locks the calling goroutine to its OS thread.
// CPU pinning is not available on macOS without cgo.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}
}
