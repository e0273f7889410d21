package cli

import (
	"github.com/spf13/cobra"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/report"
)

func (a *app) scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <path>...",
		Short: "Scan SVG files and print a JSON report",
		Long: `Scan sanitizes every file given, in order, and prints one JSON report
on stdout. The exit status is 0 when no file had any problem and 1
otherwise, including when no paths are given. Every argument is a path,
even one starting with a dash; use "svg-scanner help scan" for help.`,
		Args:                  cobra.ArbitraryArgs,
		DisableFlagParsing:    true,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, paths []string) error {
			_, agg, err := a.components()
			if err != nil {
				return err
			}

			code, err := report.Write(cmd.OutOrStdout(), agg.RunAll(paths))
			if err != nil {
				return err
			}
			a.exitCode = code
			return nil
		},
	}
}
