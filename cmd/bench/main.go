package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"optimus-bench/internal/config"
)

var cfg = config.LoadConfig()

var rootCmd = &cobra.Command{
	Use:   "bench",
	Short: "Load-generation and benchmarking tool for the OptimusV2 execution API",
	Long: `bench drives the OptimusV2 code execution API with synthetic job
submissions and reports throughput, success rate and latency percentiles.
The job templates it submits are fixed per language; run "bench languages"
to list them.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
