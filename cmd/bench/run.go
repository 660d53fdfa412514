package main

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"optimus-bench/internal/bench"
	"optimus-bench/internal/payload"
)

var runFlags struct {
	url             string
	language        string
	concurrency     int
	requests        int
	timeout         time.Duration
	rate            float64
	idempotencyKeys bool
	skipHealthCheck bool
}

func addLoadFlags(f *pflag.FlagSet) {
	f.StringVar(&runFlags.url, "url", cfg.APIURL, "API base URL")
	f.IntVarP(&runFlags.concurrency, "concurrency", "c", cfg.Concurrency, "number of concurrent requests")
	f.IntVarP(&runFlags.requests, "requests", "n", cfg.Requests, "total number of requests")
	f.DurationVarP(&runFlags.timeout, "timeout", "t", cfg.RequestTimeout, "per-request timeout")
	f.Float64Var(&runFlags.rate, "rate", 0, "cap dispatches per second (0 = unpaced)")
	f.BoolVar(&runFlags.idempotencyKeys, "idempotency-keys", false, "send a unique Idempotency-Key header per request")
	f.BoolVar(&runFlags.skipHealthCheck, "skip-health-check", false, "skip the startup health probe")
}

func init() {
	addLoadFlags(runCmd.Flags())
	runCmd.Flags().StringVarP(&runFlags.language, "language", "l", "python", "language template to submit")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single-language benchmark",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchmark(bench.SingleLanguage(runFlags.language))
	},
}

func runBenchmark(mix bench.Mix) error {
	runCfg := bench.Config{
		TargetURL:       runFlags.url,
		Mix:             mix,
		Concurrency:     runFlags.concurrency,
		Requests:        runFlags.requests,
		Timeout:         runFlags.timeout,
		Rate:            runFlags.rate,
		IdempotencyKeys: runFlags.idempotencyKeys,
		LogEvery:        10,
	}

	// an unregistered language is fatal before anything touches the network,
	// health probe included
	for _, lang := range mix.Languages() {
		if _, err := payload.ForLanguage(lang); err != nil {
			return err
		}
	}

	if !runFlags.skipHealthCheck {
		if err := bench.HealthCheck(runCfg.TargetURL, 5*time.Second); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{
		"url":         runCfg.TargetURL,
		"mix":         mix.String(),
		"concurrency": runCfg.Concurrency,
		"requests":    runCfg.Requests,
	}).Info("starting benchmark")

	outcomes, elapsed, err := bench.Run(runCfg, payload.ForLanguage)
	if err != nil {
		return err
	}

	report := bench.Summarize(outcomes, elapsed)
	report.Render(os.Stdout)
	return nil
}
