package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/cli"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/common"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/config"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/report"
)

func summaryCmd() *cobra.Command {
	var status, vendor string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard figures in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			filter := summaryFilter(status, vendor, cmd.Flags().Changed("status"))
			return runSummary(cmd.OutOrStdout(), cfg, filter)
		},
	}

	cmd.Flags().StringVar(&status, "status", report.All, `only show invoices with this status ("" for a blank status)`)
	cmd.Flags().StringVar(&vendor, "vendor", report.All, "only show invoices from this vendor")

	return cmd
}

// summaryFilter builds the filter from the flags. An explicit empty --status
// selects the invoices whose status cell is blank.
func summaryFilter(status, vendor string, statusSet bool) report.Filter {
	if statusSet && status == "" {
		status = report.Blank
	}
	return report.NewFilter(status, vendor)
}

func runSummary(w io.Writer, cfg config.Config, filter report.Filter) error {
	table, err := newLoader(cfg).Table()
	if err != nil {
		msg := fmt.Sprintf("No se pudo cargar el archivo '%s'", cfg.DataFileName())
		return common.NewUserError(msg, err)
	}

	v := report.Build(table.Records, table.Columns, filter, table.LoadedAt)
	return cli.RenderView(w, v)
}
