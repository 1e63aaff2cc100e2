// Package destroy tears down a cluster and its network in reverse
// provisioning order: HSM nodes, then the cluster (waiting for the DELETED
// state through the same convergence waiter used during creation), then
// subnets, VPC and key pair.
package destroy

import (
	"context"
	"fmt"

	"github.com/hsmctl/hsmctl/internal/platform/cloudhsm"
	"github.com/hsmctl/hsmctl/internal/provisioning"
	"github.com/hsmctl/hsmctl/internal/util/async"
	"github.com/hsmctl/hsmctl/internal/util/naming"
)

const phaseName = "destroy"

// Destroyer tears down all resources belonging to a cluster.
type Destroyer struct{}

// NewDestroyer creates a new Destroyer.
func NewDestroyer() *Destroyer {
	return &Destroyer{}
}

// Destroy removes the cluster, its HSM nodes, and the surrounding network.
// Missing resources are skipped, so a partially created cluster can be
// destroyed too.
func (d *Destroyer) Destroy(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if ctx.DryRun {
		provisioning.LogDryRun(ctx.Observer, phaseName,
			fmt.Sprintf("delete cluster %q, its HSMs, and network", cfg.ClusterName))
		return nil
	}

	if err := d.destroyCluster(ctx); err != nil {
		return err
	}

	return d.destroyNetwork(ctx)
}

func (d *Destroyer) destroyCluster(ctx *provisioning.Context) error {
	cfg := ctx.Config

	snap, err := ctx.HSM.FindClusterByName(ctx, cfg.ClusterName)
	if err != nil {
		return err
	}
	if snap == nil {
		ctx.Observer.Printf("[%s] no cluster named %q, skipping", phaseName, cfg.ClusterName)
		return nil
	}

	if len(snap.HSMs) > 0 {
		deleteTasks := make([]async.Task, 0, len(snap.HSMs))
		for _, hsm := range snap.HSMs {
			provisioning.LogResourceDeleting(ctx.Observer, phaseName, "hsm", hsm.ID)
			deleteTasks = append(deleteTasks, async.Task{
				Name: hsm.ID,
				Func: func(taskCtx context.Context) error {
					return ctx.HSM.DeleteHSM(taskCtx, snap.ID, hsm.ID)
				},
			})
		}
		if err := async.RunParallel(ctx, deleteTasks); err != nil {
			return err
		}
		ctx.Observer.Progress(phaseName, len(snap.HSMs), len(snap.HSMs))
	}

	provisioning.LogResourceDeleting(ctx.Observer, phaseName, "cluster", snap.ID)
	if err := ctx.HSM.DeleteCluster(ctx, snap.ID); err != nil {
		return err
	}

	targets := cloudhsm.StateSet{cloudhsm.StateDeleted}
	provisioning.LogConverging(ctx.Observer, phaseName, snap.ID, targets.String())

	if _, err := cloudhsm.AwaitClusterState(ctx, ctx.HSM, snap.ID, targets,
		ctx.WaitOptions(ctx.Timeouts.Delete)); err != nil {
		// A cluster that vanishes from the listing mid-wait is deleted.
		if !cloudhsm.IsNotFound(err) {
			return err
		}
	}
	provisioning.LogResourceDeleted(ctx.Observer, phaseName, "cluster", snap.ID)

	return nil
}

func (d *Destroyer) destroyNetwork(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if cfg.Network.KeyPairName != "" {
		provisioning.LogResourceDeleting(ctx.Observer, phaseName, "key pair", cfg.Network.KeyPairName)
		if err := ctx.Net.DeleteKeyPair(ctx, cfg.Network.KeyPairName); err != nil {
			return err
		}
	}

	vpc, err := ctx.Net.GetVpc(ctx, naming.Vpc(cfg.ClusterName))
	if err != nil {
		return err
	}
	if vpc == nil {
		return nil
	}

	subnets, err := ctx.Net.ListSubnets(ctx, vpc.ID)
	if err != nil {
		return err
	}
	for _, subnet := range subnets {
		provisioning.LogResourceDeleting(ctx.Observer, phaseName, "subnet", subnet.ID)
		if err := ctx.Net.DeleteSubnet(ctx, subnet.ID); err != nil {
			return err
		}
	}

	provisioning.LogResourceDeleting(ctx.Observer, phaseName, "vpc", vpc.ID)
	if err := ctx.Net.DeleteVpc(ctx, vpc.ID); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(ctx.Observer, phaseName, "vpc", vpc.ID)

	return nil
}
