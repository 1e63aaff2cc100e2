// Package network provisions the VPC-side prerequisites of an HSM cluster:
// the VPC itself, one subnet per configured availability zone, and the
// imported client key pair.
package network

import (
	"context"
	"fmt"

	"github.com/hsmctl/hsmctl/internal/platform/ec2"
	"github.com/hsmctl/hsmctl/internal/provisioning"
	"github.com/hsmctl/hsmctl/internal/util/async"
	"github.com/hsmctl/hsmctl/internal/util/keygen"
	"github.com/hsmctl/hsmctl/internal/util/naming"
	"github.com/hsmctl/hsmctl/internal/util/tags"
)

const phaseName = "network"

// Provisioner implements the network provisioning phase.
type Provisioner struct{}

// NewProvisioner creates a new network provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string { return phaseName }

// Provision ensures VPC, subnets and key pair exist. Subnet creation fans
// out in parallel, one task per availability zone.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if ctx.DryRun {
		provisioning.LogDryRun(ctx.Observer, phaseName,
			fmt.Sprintf("ensure vpc %s and %d subnets", naming.Vpc(cfg.ClusterName), len(cfg.Network.Subnets)))
		ctx.State.Vpc = &ec2.Vpc{ID: "vpc-dryrun", CIDR: cfg.Network.VpcCIDR}
		for _, s := range cfg.Network.Subnets {
			ctx.State.Subnets = append(ctx.State.Subnets, &ec2.Subnet{
				ID:               "subnet-dryrun-" + s.AvailabilityZone,
				AvailabilityZone: s.AvailabilityZone,
				CIDR:             s.CIDR,
			})
		}
		return nil
	}

	clusterTags := tags.ForCluster(cfg.ClusterName)

	vpcName := naming.Vpc(cfg.ClusterName)
	provisioning.LogResourceCreating(ctx.Observer, phaseName, "vpc", vpcName)
	vpc, err := ctx.Net.EnsureVpc(ctx, vpcName, cfg.Network.VpcCIDR, clusterTags)
	if err != nil {
		return err
	}
	ctx.State.Vpc = vpc
	provisioning.LogResourceCreated(ctx.Observer, phaseName, "vpc", vpcName, vpc.ID)

	subnets := make([]*ec2.Subnet, len(cfg.Network.Subnets))
	subnetTasks := make([]async.Task, 0, len(cfg.Network.Subnets))
	for i, sub := range cfg.Network.Subnets {
		name := naming.Subnet(cfg.ClusterName, sub.AvailabilityZone)
		subnetTasks = append(subnetTasks, async.Task{
			Name: name,
			Func: func(taskCtx context.Context) error {
				created, err := ctx.Net.EnsureSubnet(taskCtx, vpc.ID, name, sub.AvailabilityZone, sub.CIDR, clusterTags)
				if err != nil {
					return err
				}
				subnets[i] = created
				return nil
			},
		})
	}
	if err := async.RunParallel(ctx, subnetTasks); err != nil {
		return err
	}
	ctx.State.Subnets = subnets
	ctx.Observer.Progress(phaseName, len(subnets), len(subnets))

	if cfg.Network.KeyPairName != "" {
		if err := p.ensureKeyPair(ctx, clusterTags); err != nil {
			return err
		}
	}

	return nil
}

// ensureKeyPair generates a local RSA key pair and imports its public half.
func (p *Provisioner) ensureKeyPair(ctx *provisioning.Context, clusterTags map[string]string) error {
	name := ctx.Config.Network.KeyPairName

	pair, err := keygen.GenerateRSAKeyPair(2048)
	if err != nil {
		return fmt.Errorf("failed to generate key pair %s: %w", name, err)
	}

	if err := ctx.Net.EnsureKeyPair(ctx, name, string(pair.PublicKey), clusterTags); err != nil {
		return err
	}
	ctx.State.KeyPairName = name
	provisioning.LogResourceCreated(ctx.Observer, phaseName, "key pair", name, name)

	return nil
}
