package commands

import (
	"github.com/spf13/cobra"

	"github.com/cathywu/sumosims/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [targets...]",
		Short: "Rebuild the named targets whenever their sources change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parallelism, _ := cmd.Flags().GetInt("jobs")
			checksum, _ := cmd.Flags().GetBool("checksum")

			return c.app.Watch(cmd.Context(), app.RunOptions{
				Targets:     args,
				Parallelism: parallelism,
				Checksum:    checksum,
			})
		},
	}

	cmd.Flags().IntP("jobs", "j", 1, "Number of actions to run in parallel")
	cmd.Flags().Bool("checksum", false, "Decide freshness by input fingerprints instead of timestamps")

	return cmd
}
