package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"optimus-bench/internal/api"
)

type job struct {
	id       int
	language string
	body     []byte
}

// Run dispatches cfg.Requests submissions against cfg.TargetURL using a
// fixed pool of cfg.Concurrency workers and returns one Outcome per request,
// in completion order, together with the wall-clock time the run took.
//
// The pool size is an upper bound on in-flight requests, not a pacer: a free
// worker picks up the next request immediately. Per-request errors never
// escape a worker; the only errors Run itself returns are configuration
// problems found before anything is dispatched.
func Run(cfg Config, resolve Resolver) ([]Outcome, time.Duration, error) {
	jobs, err := buildJobs(cfg, resolve)
	if err != nil {
		return nil, 0, err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	var limiter *rate.Limiter
	if cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), 1)
	}

	jobCh := make(chan job)
	outCh := make(chan Outcome)
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				if limiter != nil {
					limiter.Wait(context.Background())
				}
				outCh <- send(client, cfg, j)
			}
		}()
	}

	go func() {
		for _, j := range jobs {
			jobCh <- j
		}
		close(jobCh)
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	prog := newProgress(len(jobs), cfg.LogEvery)
	outcomes := make([]Outcome, 0, len(jobs))
	for out := range outCh {
		outcomes = append(outcomes, out)
		prog.observe(out)
	}
	return outcomes, time.Since(start), nil
}

// buildJobs validates the config and resolves every language in the mix up
// front, so an unknown language is rejected before any network call. Each
// language's template is marshalled once and the bytes shared by all of its
// requests.
func buildJobs(cfg Config, resolve Resolver) ([]job, error) {
	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", cfg.Concurrency)
	}
	if cfg.Requests < 1 {
		return nil, fmt.Errorf("request count must be >= 1, got %d", cfg.Requests)
	}
	if len(cfg.Mix) == 0 {
		return nil, fmt.Errorf("no languages configured")
	}

	bodies := make(map[string][]byte, len(cfg.Mix))
	for _, lang := range cfg.Mix.Languages() {
		spec, err := resolve(lang)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(spec)
		if err != nil {
			return nil, fmt.Errorf("marshal job spec for %s: %w", lang, err)
		}
		bodies[lang] = body
	}

	langs := cfg.Mix.Expand(cfg.Requests)
	jobs := make([]job, len(langs))
	for i, lang := range langs {
		jobs[i] = job{id: i + 1, language: lang, body: bodies[lang]}
	}
	return jobs, nil
}

// send issues one blocking POST and classifies the result. One attempt per
// request; whatever happens becomes the final Outcome.
func send(client *http.Client, cfg Config, j job) Outcome {
	req, err := http.NewRequest(http.MethodPost, cfg.TargetURL+"/execute", bytes.NewReader(j.body))
	if err != nil {
		return Outcome{RequestID: j.id, Language: j.language, Err: truncate(err.Error())}
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.IdempotencyKeys {
		req.Header.Set("Idempotency-Key", fmt.Sprintf("bench-%d-%s", j.id, uuid.NewString()))
	}

	start := time.Now()
	resp, err := client.Do(req)
	latency := float64(time.Since(start)) / float64(time.Millisecond)
	if err != nil {
		return classify(j, cfg.Timeout, err)
	}
	defer resp.Body.Close()

	out := Outcome{
		RequestID:  j.id,
		Language:   j.language,
		LatencyMS:  latency,
		StatusCode: resp.StatusCode,
	}
	var submit api.SubmitResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&submit); decodeErr == nil {
		out.JobID = submit.JobID
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		out.Success = true
	}
	return out
}

// classify maps a transport error onto the failure taxonomy. Timeouts are
// charged the full configured timeout; connection errors carry zero latency
// since nothing was ever in flight.
func classify(j job, timeout time.Duration, err error) Outcome {
	out := Outcome{RequestID: j.id, Language: j.language}

	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		out.LatencyMS = float64(timeout) / float64(time.Millisecond)
		out.Err = "Timeout"
		return out
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		out.Err = truncate("Connection error: " + opErr.Error())
		return out
	}

	out.Err = truncate(err.Error())
	return out
}

// HealthCheck probes GET {targetURL}/health. An unreachable target is an
// error and aborts the run; a non-2xx answer is only worth a warning.
func HealthCheck(targetURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(targetURL + "/health")
	if err != nil {
		return fmt.Errorf("target not reachable at %s: %w", targetURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warnf("health check returned status %d", resp.StatusCode)
	}
	return nil
}
