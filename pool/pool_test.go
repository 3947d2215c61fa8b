package pool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolArithmetic(t *testing.T) {
	p := New(4)
	defer p.Kill()

	futures := make([]*Future[int], 100)
	for i := 0; i < 100; i++ {
		i := i
		f, err := Submit(p, func() (int, error) {
			return i * i, nil
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		futures[i] = f
	}

	got := make(map[int]int)
	for i, f := range futures {
		v, err := f.Get()
		if err != nil {
			t.Fatalf("future %d: %v", i, err)
		}
		got[v]++
	}

	if err := p.Join(); err != nil {
		t.Fatalf("join: %v", err)
	}

	for i := 0; i < 100; i++ {
		if got[i*i] == 0 {
			t.Fatalf("missing result %d from the multiset", i*i)
		}
		got[i*i]--
	}
}

func TestTaskFailureIsolation(t *testing.T) {
	p := New(2)
	defer p.Kill()

	boom := errors.New("boom")
	outcomes := []func() (int, error){
		func() (int, error) { return 1, nil },
		func() (int, error) { return 0, boom },
		func() (int, error) { return 2, nil },
		func() (int, error) { return 0, boom },
		func() (int, error) { return 3, nil },
	}

	futures := make([]*Future[int], len(outcomes))
	for i, fn := range outcomes {
		f, err := Submit(p, fn)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		futures[i] = f
	}

	var okCount, failCount int
	for _, f := range futures {
		_, err := f.Get()
		if err != nil {
			failCount++
		} else {
			okCount++
		}
	}

	if okCount != 3 || failCount != 2 {
		t.Fatalf("expected 3 ok / 2 fail, got %d ok / %d fail", okCount, failCount)
	}

	if !p.Joinable() {
		t.Fatal("pool should still be joinable before Join is called")
	}

	if err := p.Join(); err != nil {
		t.Fatalf("join: %v", err)
	}
}

func TestTaskPanicIsolatedFromSiblings(t *testing.T) {
	p := New(1)
	defer p.Kill()

	f1, _ := Submit(p, func() (int, error) {
		panic("boom")
	})
	f2, _ := Submit(p, func() (int, error) {
		return 42, nil
	})

	_, err := f1.Get()
	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("expected *PanicError, got %v (%T)", err, err)
	}

	v, err := f2.Get()
	if err != nil {
		t.Fatalf("sibling task should have run fine: %v", err)
	}
	if v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}

	if err := p.Join(); err != nil {
		t.Fatalf("join: %v", err)
	}
}

func TestSubmitCtxProvidesWorkerContext(t *testing.T) {
	p := New(1)
	defer p.Kill()

	f1, _ := SubmitCtx(p, func(ctx TaskContext) (uint64, error) {
		return ctx.ProcessedTasks, nil
	})
	f2, _ := SubmitCtx(p, func(ctx TaskContext) (uint64, error) {
		return ctx.ProcessedTasks, nil
	})

	first, err := f1.Get()
	if err != nil {
		t.Fatal(err)
	}
	second, err := f2.Get()
	if err != nil {
		t.Fatal(err)
	}
	if first != 0 {
		t.Fatalf("first task should see ProcessedTasks=0, got %d", first)
	}
	if second != first+1 {
		t.Fatalf("ProcessedTasks should increase by exactly 1 per task, got %d then %d", first, second)
	}

	if err := p.Join(); err != nil {
		t.Fatalf("join: %v", err)
	}
}

func TestPoolJoinRunsEveryAcceptedTask(t *testing.T) {
	p := New(4)

	var ran atomic.Int64
	const n = 200
	futures := make([]*Future[struct{}], n)
	for i := 0; i < n; i++ {
		f, err := Submit(p, func() (struct{}, error) {
			ran.Add(1)
			return struct{}{}, nil
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		futures[i] = f
	}

	if err := p.Join(); err != nil {
		t.Fatalf("join: %v", err)
	}

	if ran.Load() != n {
		t.Fatalf("expected %d tasks to have run, got %d", n, ran.Load())
	}

	for _, f := range futures {
		if !f.Ready() {
			t.Fatal("future should be resolved after Join returns")
		}
	}

	if _, err := Submit(p, func() (int, error) { return 0, nil }); err != ErrPoolNotListening {
		t.Fatalf("expected ErrPoolNotListening after Join, got %v", err)
	}
}

func TestPoolKillAbandonsUnstartedTasks(t *testing.T) {
	p := New(1)

	blockFirst := make(chan struct{})
	unblock := make(chan struct{})
	_, err := Submit(p, func() (int, error) {
		close(blockFirst)
		<-unblock
		return 1, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	<-blockFirst // the only worker is now stuck in the first task

	var futures []*Future[int]
	for i := 0; i < 50; i++ {
		f, err := Submit(p, func() (int, error) { return 0, nil })
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		futures = append(futures, f)
	}

	killDone := make(chan struct{})
	go func() {
		p.Kill()
		close(killDone)
	}()
	// Wait until Kill has taken the queue away from the worker; unblocking
	// earlier would let the worker start queued tasks before Kill drops them.
	for p.Joinable() {
		time.Sleep(time.Millisecond)
	}
	close(unblock) // let the in-flight task finish so the worker can exit and Kill can return
	<-killDone

	for _, f := range futures {
		if _, err := f.Get(); err != ErrTaskAbandoned {
			t.Fatalf("expected ErrTaskAbandoned, got %v", err)
		}
	}
}

func TestRateLimitThrottlesTaskStarts(t *testing.T) {
	p := New(1, WithRateLimit(1000, 1))
	defer p.Kill()

	var started []time.Time
	var mu sync.Mutex
	var futures []*Future[struct{}]
	for i := 0; i < 3; i++ {
		f, err := Submit(p, func() (struct{}, error) {
			mu.Lock()
			started = append(started, time.Now())
			mu.Unlock()
			return struct{}{}, nil
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		futures = append(futures, f)
	}
	for _, f := range futures {
		if _, err := f.Get(); err != nil {
			t.Fatalf("task: %v", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(started) != 3 {
		t.Fatalf("expected 3 tasks to start, got %d", len(started))
	}
	for i := 1; i < len(started); i++ {
		if gap := started[i].Sub(started[i-1]); gap < 500*time.Microsecond {
			t.Fatalf("task %d started only %v after task %d, rate limit not applied", i, gap, i-1)
		}
	}
}

func TestKillUnblocksWorkerWaitingOnRateLimit(t *testing.T) {
	// A burst of 1 exhausted by the first task forces every later task to
	// wait on the limiter; Kill must cancel that wait so the worker can
	// exit instead of waiting out the rate indefinitely.
	p := New(1, WithRateLimit(0.001, 1))

	first, err := Submit(p, func() (int, error) { return 1, nil })
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.Get(); err != nil {
		t.Fatalf("first task: %v", err)
	}

	second, err := Submit(p, func() (int, error) { return 2, nil })
	if err != nil {
		t.Fatal(err)
	}

	killDone := make(chan struct{})
	go func() {
		p.Kill()
		close(killDone)
	}()

	select {
	case <-killDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Kill did not return promptly; worker stuck waiting on rate limiter")
	}

	if _, err := second.Get(); err != nil && err != ErrTaskAbandoned {
		t.Fatalf("expected the second task to either run or be abandoned, got %v", err)
	}
}

func TestPoolSize(t *testing.T) {
	p := New(7)
	defer p.Kill()
	if p.Size() != 7 {
		t.Fatalf("expected size 7, got %d", p.Size())
	}
}

func TestNewPanicsOnNonPositiveWorkerCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected New(0) to panic")
		}
	}()
	New(0)
}

func TestConcurrentSubmitters(t *testing.T) {
	p := New(8)
	defer p.Kill()

	const submitters = 20
	const perSubmitter = 50

	var wg sync.WaitGroup
	results := make(chan int, submitters*perSubmitter)
	wg.Add(submitters)
	for s := 0; s < submitters; s++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perSubmitter; i++ {
				f, err := Submit(p, func() (int, error) { return 1, nil })
				if err != nil {
					t.Errorf("submit: %v", err)
					return
				}
				v, err := f.Get()
				if err != nil {
					t.Errorf("get: %v", err)
					return
				}
				results <- v
			}
		}()
	}
	wg.Wait()
	close(results)

	count := 0
	for v := range results {
		count += v
	}
	if count != submitters*perSubmitter {
		t.Fatalf("expected %d, got %d", submitters*perSubmitter, count)
	}
}
