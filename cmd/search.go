package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search series by title",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(globalOptions(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		hits := a.client.Search(cmd.Context(), strings.Join(args, " "))
		return render(cmd.OutOrStdout(), a.cfg.Format, hits)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
