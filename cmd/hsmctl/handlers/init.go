package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/hsmctl/hsmctl/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfigFile writes the config to a file.
	writeConfigFile = config.WriteYAML
)

// InitOptions carries the init command's flags.
type InitOptions struct {
	Name           string
	Region         string
	Output         string
	NonInteractive bool
}

// Init creates a configuration file, either through the interactive
// wizard or from flags.
func Init(ctx context.Context, opts InitOptions) error {
	output := opts.Output
	if output == "" {
		output = config.DefaultFileName
	}

	if fileExists(output) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", output)
	}

	var cfg *config.Config
	if opts.NonInteractive {
		if opts.Name == "" || opts.Region == "" {
			return fmt.Errorf("--name and --region are required in non-interactive mode")
		}
		result := &config.WizardResult{
			ClusterName: opts.Name,
			Region:      opts.Region,
			HSMType:     "hsm1.medium",
		}
		cfg = result.ToConfig()
	} else {
		printWelcome()
		result, err := runWizard(ctx)
		if err != nil {
			return err
		}
		cfg = result.ToConfig()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generated configuration is invalid: %w", err)
	}

	if err := writeConfigFile(cfg, output); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(output, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("hsmctl - CloudHSM cluster provisioning")
	fmt.Println("======================================")
	fmt.Println()
	fmt.Println("This wizard creates a cluster configuration with sensible defaults.")
	fmt.Println("Just answer a few questions.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Cluster Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:     %s\n", cfg.ClusterName)
	fmt.Printf("  Region:   %s\n", cfg.Region)
	fmt.Printf("  HSM type: %s\n", cfg.HSM.Type)
	fmt.Printf("  VPC CIDR: %s\n", cfg.Network.VpcCIDR)
	for _, subnet := range cfg.Network.Subnets {
		fmt.Printf("  Subnet:   %s (%s)\n", subnet.CIDR, subnet.AvailabilityZone)
	}
	if cfg.Artifacts.Enabled() {
		fmt.Printf("  Artifacts: s3://%s/%s\n", cfg.Artifacts.Bucket, cfg.Artifacts.Prefix)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Provide credentials, either via a profile in the config or:")
	fmt.Println("     export HSMCTL_ACCESS_KEY=<access-key>")
	fmt.Println("     export HSMCTL_SECRET_KEY=<secret-key>")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Create your cluster:")
	fmt.Println("     hsmctl apply")
	fmt.Println()
}
