// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/hsmctl/hsmctl/internal/config"
	"github.com/hsmctl/hsmctl/internal/orchestration"
	"github.com/hsmctl/hsmctl/internal/platform/awsconf"
	"github.com/hsmctl/hsmctl/internal/platform/cloudhsm"
	"github.com/hsmctl/hsmctl/internal/platform/ec2"
	s3store "github.com/hsmctl/hsmctl/internal/platform/s3"
	"github.com/hsmctl/hsmctl/internal/provisioning"
	"github.com/hsmctl/hsmctl/internal/ui/tui"
)

// outputsFile is where apply persists the converged cluster outputs.
const outputsFile = "hsmctl-outputs.yaml"

// Reconciler interface for testing - matches orchestration.Reconciler.
type Reconciler interface {
	Reconcile(ctx context.Context) (*orchestration.Outputs, error)
	Destroy(ctx context.Context) error
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadAWSConfig resolves the provider SDK configuration.
	loadAWSConfig = awsconf.Load

	// newHSMClient creates the CloudHSM provider client.
	newHSMClient = func(awsCfg aws.Config, t *config.Timeouts) cloudhsm.Manager {
		return cloudhsm.NewRealClient(awsCfg, cloudhsm.WithTimeouts(t))
	}

	// newNetClient creates the EC2 network client.
	newNetClient = func(awsCfg aws.Config, t *config.Timeouts) ec2.InfrastructureManager {
		return ec2.NewRealClient(awsCfg, ec2.WithTimeouts(t))
	}

	// newArtifactStore creates the S3 artifact store.
	newArtifactStore = func(awsCfg aws.Config, bucket, prefix string) provisioning.ArtifactStore {
		return s3store.NewClient(awsCfg, bucket, prefix)
	}

	// newReconciler creates a new workflow reconciler.
	newReconciler = func(hsm cloudhsm.Manager, net ec2.InfrastructureManager, cfg *config.Config, opts ...orchestration.Option) Reconciler {
		return orchestration.NewReconciler(hsm, net, cfg, opts...)
	}

	// loadTimeouts reads operation timeouts from the environment.
	loadTimeouts = config.LoadTimeouts

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default config file (for testing injection).
	findConfigFile = config.FindConfigFile

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile

	// stdoutIsTerminal reports whether stdout is an interactive terminal.
	stdoutIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd())
	}

	// runTUI runs the interactive progress view (for testing injection).
	runTUI = tui.Run
)

// ApplyOptions carries the apply command's flags.
type ApplyOptions struct {
	ConfigPath string
	DryRun     bool
	Plain      bool
}

// Apply provisions and initializes a CloudHSM cluster.
//
// This function orchestrates the complete provisioning workflow:
//  1. Loads and validates the cluster configuration
//  2. Resolves provider credentials for the configured region and profile
//  3. Ensures the VPC, subnets and optional client key pair
//  4. Creates the cluster and its first HSM, then waits for convergence
//  5. Signs the cluster's CSR with a locally generated CA and initializes
//     the cluster, archiving the PKI material if an artifact bucket is
//     configured
//  6. Adds a second HSM once the cluster is initialized
//
// Outputs are written to hsmctl-outputs.yaml after the workflow converges.
func Apply(ctx context.Context, opts ApplyOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		return err
	}

	timeouts := loadTimeouts()
	hsm := newHSMClient(awsCfg, timeouts)
	net := newNetClient(awsCfg, timeouts)

	baseOpts := []orchestration.Option{
		orchestration.WithTimeouts(timeouts),
		orchestration.WithDryRun(opts.DryRun),
	}
	if cfg.Artifacts.Enabled() {
		store := newArtifactStore(awsCfg, cfg.Artifacts.Bucket, cfg.Artifacts.Prefix)
		baseOpts = append(baseOpts, orchestration.WithArtifactStore(store))
	}

	var outputs *orchestration.Outputs
	if useInteractiveView(opts) {
		err = runTUI(tui.NewApplyModel(cfg.ClusterName, cfg.Region), func(obs provisioning.Observer) error {
			r := newReconciler(hsm, net, cfg, append(baseOpts, orchestration.WithObserver(obs))...)
			var rErr error
			outputs, rErr = r.Reconcile(ctx)
			return rErr
		})
	} else {
		log.Printf("Applying configuration for cluster: %s", cfg.ClusterName)
		r := newReconciler(hsm, net, cfg, baseOpts...)
		outputs, err = r.Reconcile(ctx)
	}
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if err := writeOutputs(outputs); err != nil {
		return err
	}

	printApplySuccess(outputs)
	return nil
}

// useInteractiveView decides between the TUI and plain log output. Dry
// runs stay plain so the planned actions land on stdout.
func useInteractiveView(opts ApplyOptions) bool {
	return !opts.Plain && !opts.DryRun && stdoutIsTerminal()
}

// loadConfig loads and validates the cluster configuration. If configPath
// is empty, it looks for hsmctl.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, ok := findConfigFile()
		if !ok {
			return nil, fmt.Errorf("no config file found: run 'hsmctl init' to create %s", config.DefaultFileName)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// writeOutputs persists the converged cluster outputs to disk.
func writeOutputs(outputs *orchestration.Outputs) error {
	data, err := yaml.Marshal(outputs)
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}

	if err := writeFile(outputsFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write outputs: %w", err)
	}

	return nil
}

// printApplySuccess outputs the converged state and next steps.
func printApplySuccess(outputs *orchestration.Outputs) {
	fmt.Printf("\nReconciliation complete!\n\n")
	fmt.Print(outputs.Summary())
	fmt.Printf("\nOutputs saved to: %s\n", outputsFile)

	if outputs.DryRun {
		fmt.Printf("\nDry run: no resources were created or modified.\n")
		return
	}

	fmt.Printf("\nNext Steps\n")
	fmt.Printf("----------\n")
	fmt.Printf("  1. Install the CloudHSM client on an instance inside the VPC\n")
	fmt.Printf("  2. Configure it with the issued cluster certificate\n")
	fmt.Printf("  3. Activate the cluster with cloudhsm-cli and set the admin password\n")
}
