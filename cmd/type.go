package cmd

import (
	"github.com/spf13/cobra"
)

var typeCmd = &cobra.Command{
	Use:     "type <type>",
	Short:   "List series of one type (manga, manhwa, manhua)",
	Args:    cobra.ExactArgs(1),
	Example: "  komikcast type manhwa --format table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(globalOptions(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), a.cfg.Format, a.client.ByType(cmd.Context(), args[0]))
	},
}

func init() {
	rootCmd.AddCommand(typeCmd)
}
