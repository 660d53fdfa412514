package main

import (
	"github.com/spf13/cobra"

	"optimus-bench/internal/bench"
)

var spamDistribution string

func init() {
	addLoadFlags(spamCmd.Flags())
	spamCmd.Flags().StringVar(&spamDistribution, "distribution", "python=50,java=40,rust=10",
		"language=weight pairs describing the request mix")
	rootCmd.AddCommand(spamCmd)
}

var spamCmd = &cobra.Command{
	Use:   "spam",
	Short: "Run a mixed-language load test",
	Long: `spam fires requests distributed across several language templates,
the way production traffic mixes languages, and reports per-language stats
alongside the usual latency summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mix, err := bench.ParseMix(spamDistribution)
		if err != nil {
			return err
		}
		return runBenchmark(mix)
	},
}
