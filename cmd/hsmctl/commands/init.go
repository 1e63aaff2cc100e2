package commands

import (
	"github.com/spf13/cobra"

	"github.com/hsmctl/hsmctl/cmd/hsmctl/handlers"
)

// Init returns the command that generates a configuration file.
func Init() *cobra.Command {
	var (
		name           string
		region         string
		output         string
		nonInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an hsmctl configuration file",
		Long: `Create an hsmctl.yaml configuration file.

Without flags, an interactive wizard asks for the cluster name, region and
HSM type. With --name and --region the file is written non-interactively
with defaults for everything else.

Examples:
  # Interactive wizard
  hsmctl init

  # Non-interactive
  hsmctl init --name payments-hsm --region eu-central-1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), handlers.InitOptions{
				Name:           name,
				Region:         region,
				Output:         output,
				NonInteractive: nonInteractive || (name != "" && region != ""),
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Cluster name")
	cmd.Flags().StringVar(&region, "region", "", "Target region")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: hsmctl.yaml)")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Skip the wizard and use defaults")

	return cmd
}
