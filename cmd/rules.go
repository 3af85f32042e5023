package cmd

import (
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the extraction rules",
}

var rulesDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective rules as YAML, usable as a --rules-file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(globalOptions(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		b, err := a.client.Rules().YAML()
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

func init() {
	rulesCmd.AddCommand(rulesDumpCmd)
	rootCmd.AddCommand(rulesCmd)
}
