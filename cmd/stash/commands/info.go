package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the effective cache configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := c.app.Info(cmd.Context(), c.opts)
			if err != nil {
				return err
			}

			state := "enabled"
			if !info.Enabled {
				state = "disabled"
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "root:       %s\n", info.Root)
			_, _ = fmt.Fprintf(out, "compiler:   %s %s\n", info.Compiler, info.Version)
			_, _ = fmt.Fprintf(out, "extensions: %s\n", strings.Join(info.Extensions, ", "))
			_, _ = fmt.Fprintf(out, "mime type:  %s\n", info.MimeType)
			_, _ = fmt.Fprintf(out, "hash:       %s\n", info.Hash)
			_, _ = fmt.Fprintf(out, "cache:      %s (%s)\n", info.CacheDir, state)
			_, _ = fmt.Fprintf(out, "namespace:  %s\n", info.Namespace)
			return nil
		},
	}
}
