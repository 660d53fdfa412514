package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"optimus-bench/internal/payload"
	"optimus-bench/internal/sandbox"
)

var verifyLanguage string

func init() {
	verifyCmd.Flags().StringVarP(&verifyLanguage, "language", "l", "python", "language template to verify")
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run a language template locally in a docker sandbox",
	Long: `verify executes a job template's test cases in throwaway containers on
the local docker daemon, so a broken template is caught before a load test
points it at a cluster.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := payload.ForLanguage(verifyLanguage)
		if err != nil {
			return err
		}

		results, err := sandbox.RunJob(context.Background(), spec, cfg)
		if err != nil {
			return err
		}

		failed := 0
		for _, res := range results {
			if res.Passed {
				log.Infof("case %d passed", res.Case.ID)
				continue
			}
			failed++
			log.WithFields(log.Fields{
				"case": res.Case.ID,
				"exit": res.ExitCode,
			}).Errorf("case failed: got %q, want %q", res.Stdout, res.Case.ExpectedOutput)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d test cases failed for %s", failed, len(results), verifyLanguage)
		}
		log.Infof("all %d test cases passed for %s", len(results), verifyLanguage)
		return nil
	},
}
