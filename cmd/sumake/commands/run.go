package commands

import (
	"github.com/spf13/cobra"

	"github.com/cathywu/sumosims/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Bring the named targets up to date",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error.
				_ = cmd.Help()
				return nil
			}

			parallelism, _ := cmd.Flags().GetInt("jobs")
			checksum, _ := cmd.Flags().GetBool("checksum")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			return c.app.Run(cmd.Context(), app.RunOptions{
				Targets:     args,
				Parallelism: parallelism,
				Checksum:    checksum,
				DryRun:      dryRun,
			})
		},
	}

	cmd.Flags().IntP("jobs", "j", 1, "Number of actions to run in parallel")
	cmd.Flags().Bool("checksum", false, "Decide freshness by input fingerprints instead of timestamps")
	cmd.Flags().BoolP("dry-run", "n", false, "Print what would be built without running anything")

	return cmd
}
