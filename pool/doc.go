// Package pool provides a fixed-size worker pool built on top of
// github.com/jowillianto/threadplus-go/channel. It executes
// heterogeneous tasks — each Submit/SubmitCtx call can carry a
// different callable and a different result type — and hands back a
// Future per submission so the caller can await a typed result
// asynchronously.
//
// # Basic Usage
//
//	p := pool.New(4)
//	defer p.Kill()
//
//	futures := make([]*pool.Future[int], 100)
//	for i := range futures {
//	    i := i
//	    futures[i], _ = pool.Submit(p, func() (int, error) {
//	        return i * i, nil
//	    })
//	}
//
//	for _, f := range futures {
//	    v, err := f.Get()
//	    _ = v
//	    _ = err
//	}
//
//	_ = p.Join()
//
// # Opting Into TaskContext
//
// A callable that wants to know which worker is running it, how many
// tasks that worker has already processed, or when the worker started,
// uses SubmitCtx instead of Submit:
//
//	future, err := pool.SubmitCtx(p, func(ctx pool.TaskContext) (string, error) {
//	    return fmt.Sprintf("worker %d, task #%d", ctx.WorkerIndex, ctx.ProcessedTasks), nil
//	})
//
// # Shutdown
//
// Join drains the pool: every accepted task runs to completion before
// Join returns. Kill is abrupt: queued-but-unstarted tasks are
// abandoned (their Future resolves to ErrTaskAbandoned) while any task
// already running is allowed to finish. Both block until every worker
// goroutine has exited.
package pool
