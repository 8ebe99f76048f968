package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run collect and then analyze",
	RunE:  runOnce,
}

func runOnce(cmd *cobra.Command, _ []string) error {
	e, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	return e.Run(cmd.Context())
}
