// Package commands implements the CLI commands for stash.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/stash/internal/app"
	"go.trai.ch/stash/internal/build"
	"go.trai.ch/stash/internal/core/domain"
)

// CLI represents the command line interface for stash.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.Options
	quiet   bool
	verbose bool
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, path string, opts app.Options) ([]byte, error)
	Run(ctx context.Context, path string, args []string, opts app.Options) error
	Warm(ctx context.Context, opts app.WarmOptions) (domain.Stats, error)
	Info(ctx context.Context, opts app.Options) (*app.Info, error)
	Clean(ctx context.Context, opts app.Options) error
	SetLogLevel(level domain.LogLevel)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "stash",
		Short:         "A cache for compiled source files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.opts.ConfigPath, "config", "c", ".", "Path to stash.yaml or a directory to search from")
	flags.StringVar(&c.opts.CacheDir, "cache-dir", "", "Override the cache directory")
	flags.BoolVarP(&c.opts.NoCache, "no-cache", "n", false, "Compile without reading or writing the cache")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "Only log warnings and errors")
	flags.BoolVar(&c.verbose, "verbose", false, "Log debug output")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		switch {
		case c.quiet:
			c.app.SetLogLevel(domain.LogLevelWarn)
		case c.verbose:
			c.app.SetLogLevel(domain.LogLevelDebug)
		}
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newWarmCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
