package cmd

import (
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <chapter-slug>",
	Short: "List the page images of a chapter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(globalOptions(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), a.cfg.Format, a.client.ChapterRead(cmd.Context(), args[0]))
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
