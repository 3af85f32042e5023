package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]
		out := cmd.OutOrStdout()

		active, _ := store.CurrentLabel()
		if label == active && !forceRemove {
			if !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Config %q is currently active. Remove it anyway?", label)) {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		switched, err := store.Remove(label)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Removed configuration %q\n", label)
		if switched {
			fmt.Fprintln(out, "Switched to: Default")
		}
		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "remove the active config without asking")
	configCmd.AddCommand(configRemoveCmd)
}
