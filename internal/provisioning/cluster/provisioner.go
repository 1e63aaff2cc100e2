// Package cluster provisions the HSM cluster itself and its first node,
// then waits for the cluster to converge to the uninitialized state in
// which its certificate-signing request becomes available.
package cluster

import (
	"fmt"

	"github.com/hsmctl/hsmctl/internal/platform/cloudhsm"
	"github.com/hsmctl/hsmctl/internal/provisioning"
	"github.com/hsmctl/hsmctl/internal/util/tags"
)

const phaseName = "cluster"

// Provisioner implements the cluster provisioning phase.
type Provisioner struct{}

// NewProvisioner creates a new cluster provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string { return phaseName }

// Provision ensures the cluster and its first HSM node exist and waits for
// convergence. Re-running against an existing cluster reuses it.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if ctx.DryRun {
		provisioning.LogDryRun(ctx.Observer, phaseName,
			fmt.Sprintf("create %s cluster %q with one HSM", cfg.HSM.Type, cfg.ClusterName))
		ctx.State.ClusterID = "cluster-dryrun"
		return nil
	}

	snap, err := ctx.HSM.FindClusterByName(ctx, cfg.ClusterName)
	if err != nil {
		return err
	}

	if snap == nil {
		subnetIDs := make([]string, 0, len(ctx.State.Subnets))
		for _, s := range ctx.State.Subnets {
			subnetIDs = append(subnetIDs, s.ID)
		}

		provisioning.LogResourceCreating(ctx.Observer, phaseName, "cluster", cfg.ClusterName)
		snap, err = ctx.HSM.CreateCluster(ctx, cloudhsm.CreateClusterOpts{
			Name:      cfg.ClusterName,
			HSMType:   cfg.HSM.Type,
			SubnetIDs: subnetIDs,
			Tags:      tags.ForCluster(cfg.ClusterName),
		})
		if err != nil {
			return err
		}
		provisioning.LogResourceCreated(ctx.Observer, phaseName, "cluster", cfg.ClusterName, snap.ID)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phaseName, "cluster", cfg.ClusterName, snap.ID)
	}

	ctx.State.ClusterID = snap.ID
	ctx.State.Cluster = snap

	// An already initialized cluster needs neither a fresh first node nor
	// the uninitialized-state wait; activation will see its state and skip.
	if snap.State == cloudhsm.StateInitialized || snap.State == cloudhsm.StateActive {
		return nil
	}

	if len(snap.HSMs) == 0 {
		az := ctx.State.Subnets[0].AvailabilityZone
		provisioning.LogResourceCreating(ctx.Observer, phaseName, "hsm", az)
		hsmID, err := ctx.HSM.CreateHSM(ctx, snap.ID, az)
		if err != nil {
			return err
		}
		ctx.State.FirstHSM = hsmID
		provisioning.LogResourceCreated(ctx.Observer, phaseName, "hsm", az, hsmID)
	} else {
		ctx.State.FirstHSM = snap.HSMs[0].ID
	}

	targets := cloudhsm.StateSet{cloudhsm.StateUninitialized}
	provisioning.LogConverging(ctx.Observer, phaseName, snap.ID, targets.String())

	converged, err := cloudhsm.AwaitClusterState(ctx, ctx.HSM, snap.ID, targets,
		ctx.WaitOptions(ctx.Timeouts.ClusterCreate))
	if err != nil {
		return err
	}
	provisioning.LogConverged(ctx.Observer, phaseName, converged.ID, converged.State)

	if converged.CSR == "" {
		return fmt.Errorf("cluster %s is %s but reported no certificate-signing request", converged.ID, converged.State)
	}

	ctx.State.Cluster = converged
	ctx.State.CSR = converged.CSR

	return nil
}
