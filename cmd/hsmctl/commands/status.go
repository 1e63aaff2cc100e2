package commands

import (
	"github.com/spf13/cobra"

	"github.com/hsmctl/hsmctl/cmd/hsmctl/handlers"
)

// Status returns the command for inspecting the current cluster state.
func Status() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current state of the HSM cluster",
		Long: `Query the provider for the cluster's current lifecycle state
and print a snapshot: state, security group, HSM nodes and, before
initialization, the certificate-signing request.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: hsmctl.yaml)")

	return cmd
}
