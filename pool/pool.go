package pool

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jowillianto/threadplus-go/channel"
	"github.com/jowillianto/threadplus-go/internal/affinity"
)

// Pool owns a fixed vector of worker goroutines and a single
// channel.Channel[runnable]. See spec.md §4.3 for the full contract.
type Pool struct {
	ch             *channel.Channel[runnable]
	size           int
	rateLimiter    rateLimiter
	done           chan struct{}
	shutdown       context.Context
	cancelShutdown context.CancelFunc
}

// rateLimiter is the subset of *rate.Limiter the pool needs, named here
// so config.go's nil case doesn't need a type assertion.
type rateLimiter interface {
	Wait(ctx context.Context) error
}

// New constructs a Pool with n workers, eagerly spawned, and returns
// immediately — construction never blocks on a task. n must be > 0.
func New(n int, opts ...Option) *Pool {
	if n <= 0 {
		panic("pool: worker count must be > 0")
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	shutdown, cancelShutdown := context.WithCancel(context.Background())
	p := &Pool{
		ch:             channel.New[runnable](),
		size:           n,
		done:           make(chan struct{}),
		shutdown:       shutdown,
		cancelShutdown: cancelShutdown,
	}
	if cfg.rateLimiter != nil {
		p.rateLimiter = cfg.rateLimiter
	}

	var g errgroup.Group
	for i := 0; i < n; i++ {
		workerIndex := i
		g.Go(func() error {
			p.runWorker(workerIndex)
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		cancelShutdown()
		close(p.done)
	}()

	debugLog("pool: started with %d workers", n)
	return p
}

// Submit constructs a task from fn, enqueues it, and returns a Future
// for its eventual result. It fails with ErrPoolNotListening if the
// pool has already been asked to Join or Kill.
func Submit[R any](p *Pool, fn func() (R, error)) (*Future[R], error) {
	future := newFuture[R]()
	t := &task[R]{fn: fn, future: future}
	if err := p.ch.Send(runnable(t)); err != nil {
		return nil, ErrPoolNotListening
	}
	return future, nil
}

// SubmitCtx is Submit's variant for callables that want the running
// worker's TaskContext as their first argument.
func SubmitCtx[R any](p *Pool, fn func(TaskContext) (R, error)) (*Future[R], error) {
	future := newFuture[R]()
	t := &task[R]{fnCtx: fn, future: future}
	if err := p.ch.Send(runnable(t)); err != nil {
		return nil, ErrPoolNotListening
	}
	return future, nil
}

// Size reports the number of workers the pool was constructed with.
func (p *Pool) Size() int {
	return p.size
}

// Joinable reports whether the pool is still accepting submissions.
func (p *Pool) Joinable() bool {
	return p.ch.Joinable()
}

// Join drains and stops the pool: every task already accepted runs to
// completion, further Submit/SubmitCtx calls fail, and Join blocks
// until every worker has exited.
func (p *Pool) Join() error {
	if err := p.ch.Join(func() {}); err != nil {
		return err
	}
	<-p.done
	return nil
}

// Kill stops the pool abruptly: tasks already queued but not yet
// started are abandoned (their Future resolves to ErrTaskAbandoned
// without the callable ever running); tasks already in flight are
// allowed to complete. Kill cancels any worker currently blocked in the
// optional rate limiter so it can observe the drop and exit, then blocks
// until every worker has exited.
func (p *Pool) Kill() {
	dropped := p.ch.Kill()
	p.cancelShutdown()
	for _, r := range dropped {
		r.abandon()
	}
	debugLog("pool: kill abandoned %d queued task(s)", len(dropped))
	<-p.done
}

func (p *Pool) runWorker(index int) {
	releaseAffinity := affinity.SetupWorkerAffinity(index)
	defer releaseAffinity()

	ctx := TaskContext{
		WorkerIndex: index,
		ThreadID:    affinity.ThreadID(),
		StartTime:   time.Now(),
	}
	debugLog("worker %d: started, thread id=%d", index, ctx.ThreadID)

	var processed uint64
	for {
		r, err := p.ch.Recv()
		if err != nil {
			debugLog("worker %d: exiting after %d task(s)", index, processed)
			return
		}

		if p.rateLimiter != nil {
			// p.shutdown is cancelled by Kill so a worker waiting here can
			// still notice a kill and move on to run (and finish) the task
			// it already dequeued, rather than wait out the limiter.
			_ = p.rateLimiter.Wait(p.shutdown)
		}

		ctx.ProcessedTasks = processed
		r.run(ctx)
		processed++
	}
}
