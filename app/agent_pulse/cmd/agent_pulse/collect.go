package main

import (
	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Search GitHub for bounty issues and write the bounty snapshot",
	RunE:  runCollect,
}

func runCollect(cmd *cobra.Command, _ []string) error {
	e, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	_, err = e.RunCollect(cmd.Context())
	return err
}
