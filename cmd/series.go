package cmd

import (
	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series <slug>",
	Short: "Show a series' details and chapter list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(globalOptions(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), a.cfg.Format, a.client.SeriesDetail(cmd.Context(), args[0]))
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <slug>",
	Short: "Same as series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(globalOptions(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), a.cfg.Format, a.client.Info(cmd.Context(), args[0]))
	},
}

func init() {
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(infoCmd)
}
