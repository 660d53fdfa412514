package bench

import (
	"time"

	"optimus-bench/internal/api"
)

// Resolver maps a language tag to its job template. A resolution failure is
// fatal and happens before any request is dispatched.
type Resolver func(language string) (api.JobSpec, error)

// Config describes one benchmark run. It is immutable for the run's duration.
type Config struct {
	TargetURL   string
	Mix         Mix
	Concurrency int
	Requests    int
	Timeout     time.Duration

	// Rate caps dispatches per second when > 0. The default of 0 leaves
	// dispatch unpaced; the worker pool bound is the only throttle.
	Rate float64

	// IdempotencyKeys attaches a unique Idempotency-Key header per request.
	IdempotencyKeys bool

	// LogEvery controls how often progress is logged, in completed requests.
	// 0 disables progress logging.
	LogEvery int
}

// Outcome records the result of one dispatched request. It is created exactly
// once by the worker that executed the request and never mutated afterwards.
type Outcome struct {
	RequestID  int
	Language   string
	Success    bool
	LatencyMS  float64
	StatusCode int
	JobID      string
	Err        string
}

// maxErrorLen bounds error text stored on an Outcome so that reports and
// error grouping stay compact.
const maxErrorLen = 100

func truncate(s string) string {
	if len(s) > maxErrorLen {
		return s[:maxErrorLen]
	}
	return s
}
