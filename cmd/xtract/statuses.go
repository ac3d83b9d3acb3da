package main

import (
	"github.com/spf13/cobra"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/cli"
)

func statusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List the known invoice statuses and what they mean",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.RenderStatuses(cmd.OutOrStdout())
		},
	}
}
