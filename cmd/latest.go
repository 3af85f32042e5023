package cmd

import (
	"github.com/spf13/cobra"
)

var flagPage int

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List recently updated series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(globalOptions(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), a.cfg.Format, a.client.Latest(cmd.Context(), flagPage))
	},
}

func init() {
	latestCmd.Flags().IntVar(&flagPage, "page", 1, "listing page, values below 1 mean 1")
	rootCmd.AddCommand(latestCmd)
}
