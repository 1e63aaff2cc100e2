package commands

import (
	"github.com/spf13/cobra"

	"github.com/hsmctl/hsmctl/cmd/hsmctl/handlers"
)

// Destroy returns the command for tearing down a cluster and its network.
func Destroy() *cobra.Command {
	var (
		configPath string
		dryRun     bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the HSM cluster and its network",
		Long: `Delete the CloudHSM cluster, its HSM nodes, and the network
resources created for it.

Deleting a cluster is irreversible: key material stored in the HSMs is
destroyed with them. The command refuses to run without --force unless
--dry-run is given.

Examples:
  # Preview the teardown
  hsmctl destroy --dry-run

  # Actually delete everything
  hsmctl destroy --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), handlers.DestroyOptions{
				ConfigPath: configPath,
				DryRun:     dryRun,
				Force:      force,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: hsmctl.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report intended deletions without contacting the provider")
	cmd.Flags().BoolVar(&force, "force", false, "Confirm deletion of the cluster and its key material")

	return cmd
}
