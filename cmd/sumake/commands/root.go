// Package commands implements the CLI commands for the sumake build runner.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cathywu/sumosims/internal/app"
)

// CLI represents the command line interface for sumake.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:   "sumake",
		Short: "A freshness-driven runner for the SUMO toolchain",
		Long: `sumake derives simulation networks from node/edge definitions and runs
the simulator against them, rebuilding only what is out of date.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}
