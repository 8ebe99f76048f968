package main

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Generate the market report from the bounty snapshot",
	Long:  "Generate the market report from the bounty snapshot.\nA failed LLM call still writes a placeholder report and exits 0.",
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	e, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	_, err = e.RunAnalyze(cmd.Context())
	return err
}
