package config

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	ClusterName string
	Region      string
	HSMType     string
	Bucket      string
}

// RunWizard walks the user through the minimal set of questions needed
// for a working configuration. Everything else falls back to defaults.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		Region:  "eu-central-1",
		HSMType: "hsm1.medium",
	}

	form := huh.NewForm(
		// Cluster identity
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster name").
				Description("A unique name for your HSM cluster (DNS-safe, lowercase)").
				Placeholder("my-hsm").
				Value(&result.ClusterName).
				Validate(validateWizardName),
		),

		// Region selection
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("AWS region for the cluster and its network").
				Options(
					huh.NewOption("Frankfurt (eu-central-1)", "eu-central-1"),
					huh.NewOption("Ireland (eu-west-1)", "eu-west-1"),
					huh.NewOption("N. Virginia (us-east-1)", "us-east-1"),
					huh.NewOption("Ohio (us-east-2)", "us-east-2"),
					huh.NewOption("Oregon (us-west-2)", "us-west-2"),
					huh.NewOption("Singapore (ap-southeast-1)", "ap-southeast-1"),
				).
				Value(&result.Region),
		),

		// HSM instance type
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("HSM type").
				Description("Instance type for the HSM nodes").
				Options(
					huh.NewOption("hsm1.medium (general purpose)", "hsm1.medium"),
					huh.NewOption("hsm2m.medium (higher key capacity)", "hsm2m.medium"),
				).
				Value(&result.HSMType),
		),

		// Optional artifact bucket
		huh.NewGroup(
			huh.NewInput().
				Title("Artifact bucket (optional)").
				Description("S3 bucket for archiving the CSR and issued certificates. Leave empty to skip.").
				Placeholder("my-hsm-artifacts").
				Value(&result.Bucket),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result into a full Config with defaults
// applied.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		ClusterName: r.ClusterName,
		Region:      r.Region,
		HSM:         HSMConfig{Type: r.HSMType},
		Artifacts:   ArtifactsConfig{Bucket: r.Bucket},
	}
	cfg.applyDefaults()
	return cfg
}

func validateWizardName(s string) error {
	if s == "" {
		return fmt.Errorf("cluster name is required")
	}
	if !clusterNameRe.MatchString(s) {
		return fmt.Errorf("use lowercase letters, numbers and hyphens only")
	}
	return nil
}
