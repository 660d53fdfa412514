package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"optimus-bench/internal/payload"
)

func init() {
	rootCmd.AddCommand(languagesCmd)
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the registered job templates",
	Run: func(cmd *cobra.Command, args []string) {
		for _, lang := range payload.Languages() {
			spec, _ := payload.ForLanguage(lang)
			fmt.Printf("%-8s %d test case(s), timeout %dms\n", lang, len(spec.TestCases), spec.TimeoutMS)
		}
	},
}
