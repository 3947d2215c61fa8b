package pool

import "golang.org/x/time/rate"

// Option configures a Pool at construction time.
type Option func(*config)

type config struct {
	rateLimiter *rate.Limiter
}

// WithRateLimit throttles how often workers start new tasks to at most
// tasksPerSecond, with bursts up to burst. This controls throughput, not
// queue capacity: the channel backing the pool remains unbounded exactly
// as spec.md §1 Non-goals requires, and the limiter never drops, retries
// or reorders a task — it only delays when a worker may begin the next
// one.
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}
