package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/hsmctl/hsmctl/internal/platform/cloudhsm"
)

// Status queries the provider for the cluster's current state and prints
// a snapshot.
func Status(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		return err
	}

	hsm := newHSMClient(awsCfg, loadTimeouts())

	snapshot, err := hsm.FindClusterByName(ctx, cfg.ClusterName)
	if err != nil {
		return fmt.Errorf("failed to query cluster: %w", err)
	}
	if snapshot == nil {
		fmt.Printf("No cluster named %q found in %s.\n", cfg.ClusterName, cfg.Region)
		fmt.Printf("Run 'hsmctl apply' to create one.\n")
		return nil
	}

	printStatus(cfg.ClusterName, snapshot)
	return nil
}

// printStatus renders the cluster snapshot for terminal output.
func printStatus(name string, snapshot *cloudhsm.ClusterSnapshot) {
	fmt.Printf("Cluster %s\n", name)
	fmt.Printf("---------%s\n", strings.Repeat("-", len(name)))
	fmt.Printf("  ID:             %s\n", snapshot.ID)
	fmt.Printf("  State:          %s\n", snapshot.State)
	if snapshot.StateMessage != "" {
		fmt.Printf("  State message:  %s\n", snapshot.StateMessage)
	}
	if snapshot.HSMType != "" {
		fmt.Printf("  HSM type:       %s\n", snapshot.HSMType)
	}
	if snapshot.VpcID != "" {
		fmt.Printf("  VPC:            %s\n", snapshot.VpcID)
	}
	if snapshot.SecurityGroup != "" {
		fmt.Printf("  Security group: %s\n", snapshot.SecurityGroup)
	}

	if len(snapshot.HSMs) > 0 {
		fmt.Printf("\n  HSMs\n")
		for _, hsm := range snapshot.HSMs {
			line := fmt.Sprintf("    %s  %s  %s", hsm.ID, hsm.AvailabilityZone, hsm.State)
			if hsm.ENIIP != "" {
				line += "  " + hsm.ENIIP
			}
			fmt.Println(line)
		}
	}

	// The CSR is only useful before initialization; afterwards the
	// cluster carries its issued certificate instead.
	switch {
	case snapshot.State == cloudhsm.StateUninitialized && snapshot.CSR != "":
		fmt.Printf("\n  Certificate-signing request:\n\n%s\n", snapshot.CSR)
		fmt.Printf("  Run 'hsmctl apply' to sign it and initialize the cluster.\n")
	case snapshot.ClusterCertificate != "":
		fmt.Printf("\n  Cluster certificate issued.\n")
	}
}
