package main

import (
	"github.com/spf13/cobra"

	"ikill/cmd/ikill/snapshot"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the aligned process list without selecting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCorpus(cmd, snapshot.System{})
		},
	}
}
