package commands

import (
	"github.com/spf13/cobra"

	"github.com/hsmctl/hsmctl/cmd/hsmctl/handlers"
)

// Apply returns the command for provisioning and initializing a cluster.
//
// This command handles the complete lifecycle: loading configuration,
// ensuring the network, creating the cluster and its first HSM, waiting
// for convergence, signing the cluster's CSR with a locally generated CA,
// initializing the cluster, and adding the second HSM once initialized.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect hsmctl.yaml)
//	--dry-run:    Report intended changes without contacting the provider
//	--plain:      Disable the interactive progress view
func Apply() *cobra.Command {
	var (
		configPath string
		dryRun     bool
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the HSM cluster",
		Long: `Create or update your CloudHSM cluster.

This command provisions the VPC and subnets, creates the cluster and its
first HSM node, waits for the cluster to converge, signs the cluster's
certificate-signing request with a locally generated certificate authority,
initializes the cluster, and finally adds a second HSM node.

If no config file is specified, it looks for hsmctl.yaml in the current
directory. Use 'hsmctl init' to create a configuration file.

Examples:
  # Create cluster using hsmctl.yaml in current directory
  hsmctl apply

  # Create cluster using a specific config file
  hsmctl apply -c production.yaml

  # Preview without touching real infrastructure
  hsmctl apply --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), handlers.ApplyOptions{
				ConfigPath: configPath,
				DryRun:     dryRun,
				Plain:      plain,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: hsmctl.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report intended changes without contacting the provider")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the interactive progress view")

	return cmd
}
