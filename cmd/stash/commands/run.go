package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file> [args...]",
		Short: "Compile a source file and execute it in the configured host",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.app.Run(cmd.Context(), args[0], args[1:], c.opts)
		},
	}
	// Flags after the file belong to the module.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
