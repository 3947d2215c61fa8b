//go:build linux

package affinity

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// ThreadID returns the kernel thread id (tid) of the calling OS thread.
// Callers must hold runtime.LockOSThread() for the id to stay meaningful
// across the life of the worker.
func ThreadID() int64 {
	return int64(unix.Gettid())
}

// SetupWorkerAffinity locks the calling goroutine to its OS thread so
// ThreadID stays stable for the worker's whole life. It does not pin the
// thread to a CPU core: the pool's parallelism is the worker count, and
// pinning worker i to core i%NumCPU would crowd cores when workerCount
// exceeds NumCPU and leave cores idle when it doesn't, for no benefit the
// channel/pool design asks for. Returns a cleanup function that must be
// deferred to release the OS thread lock.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}
}
