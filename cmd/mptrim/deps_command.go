package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mptrim/internal/config"
	"mptrim/internal/deps"
)

func newDepsCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of the external engine binaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := writerIsTerminal(out)
			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			for _, status := range statuses {
				kind := statusOK
				msg := status.Command
				if !status.Available {
					kind = statusError
					msg = status.Detail
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, msg, colorize))
			}

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required binaries missing", len(missing))
			}
			return nil
		},
	}
}
