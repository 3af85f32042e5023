package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/brogergvhs/komikcast/internal/config"

	"github.com/spf13/cobra"
)

var flagFrom string

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new config, optionally copied from a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			fmt.Fprint(out, "Enter label for new config: ")
			label, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		}
		label = strings.TrimSpace(label)

		var (
			path string
			err  error
		)
		if flagFrom != "" {
			path, err = store.Import(label, flagFrom)
		} else {
			path, err = store.Create(label, config.DefaultConfig())
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&flagFrom, "from", "", "copy settings from this YAML file")
	configCmd.AddCommand(configAddCmd)
}
