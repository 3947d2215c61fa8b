package pool

import "time"

// TaskContext is a read-only record passed into every task that opts in
// to receiving one (see SubmitCtx). It is never shared between workers:
// each worker builds its own TaskContext value per task it runs.
type TaskContext struct {
	// WorkerIndex is this worker's position in [0, pool size).
	WorkerIndex int

	// ThreadID is the OS thread identifier the worker's goroutine is
	// locked to (see internal/affinity). On platforms where a real
	// per-thread id isn't cheaply available this is a best-effort
	// substitute — see internal/affinity's platform files.
	ThreadID int64

	// ProcessedTasks is the number of tasks this worker had completed
	// before starting the current one.
	ProcessedTasks uint64

	// StartTime is the wall-clock time this worker began running.
	StartTime time.Time
}
