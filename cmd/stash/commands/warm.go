package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.trai.ch/stash/internal/app"
)

func (c *CLI) newWarmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warm [dir]",
		Short: "Compile every matching file below a directory into the cache",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			watch, _ := cmd.Flags().GetBool("watch")

			opts := app.WarmOptions{Options: c.opts, Jobs: jobs, Watch: watch}
			if len(args) == 1 {
				opts.Dir = args[0]
			}

			stats, err := c.app.Warm(cmd.Context(), opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d cached, %d compiled\n", stats.Hits, stats.Misses)
			return err
		},
	}
	cmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "Number of files to compile concurrently")
	cmd.Flags().BoolP("watch", "w", false, "Keep recompiling files as they change")
	return cmd
}
