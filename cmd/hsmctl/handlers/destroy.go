package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/hsmctl/hsmctl/internal/orchestration"
)

// DestroyOptions carries the destroy command's flags.
type DestroyOptions struct {
	ConfigPath string
	DryRun     bool
	Force      bool
}

// Destroy handles the destroy command.
//
// It loads the cluster configuration and deletes all associated resources:
// HSM nodes first, then the cluster, then the network. Deleting a cluster
// destroys the key material stored in its HSMs, so the command requires
// --force unless it is a dry run.
func Destroy(ctx context.Context, opts DestroyOptions) error {
	if !opts.Force && !opts.DryRun {
		return fmt.Errorf("destroying a cluster erases its key material; re-run with --force to confirm")
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		return err
	}

	log.Printf("Destroying cluster: %s", cfg.ClusterName)

	timeouts := loadTimeouts()
	r := newReconciler(
		newHSMClient(awsCfg, timeouts),
		newNetClient(awsCfg, timeouts),
		cfg,
		orchestration.WithTimeouts(timeouts),
		orchestration.WithDryRun(opts.DryRun),
	)

	if err := r.Destroy(ctx); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	if opts.DryRun {
		log.Printf("Dry run: cluster %s was not touched", cfg.ClusterName)
		return nil
	}

	log.Printf("Cluster %s destroyed successfully", cfg.ClusterName)
	return nil
}
