package provisioning

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/hsmctl/hsmctl/internal/config"
	"github.com/hsmctl/hsmctl/internal/pki"
	"github.com/hsmctl/hsmctl/internal/platform/cloudhsm"
	"github.com/hsmctl/hsmctl/internal/platform/ec2"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is read by
// subsequent phases that depend on earlier results.
type State struct {
	// Network results (populated by the network provisioner)
	Vpc         *ec2.Vpc
	Subnets     []*ec2.Subnet
	KeyPairName string

	// Cluster results (populated by the cluster provisioner)
	ClusterID string
	CSR       string
	FirstHSM  string

	// Activation results (populated by the activation provisioner)
	Material  *pki.Material
	SecondHSM string

	// Cluster is the most recent snapshot observed; refreshed by each
	// phase that polls, never read in place of a fresh query.
	Cluster *cloudhsm.ClusterSnapshot
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// ArtifactStore archives PKI material for audit. Nil when disabled.
type ArtifactStore interface {
	EnsureBucket(ctx context.Context) error
	PutArtifact(ctx context.Context, name string, data []byte) error
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config    *config.Config
	Timeouts  *config.Timeouts
	State     *State
	HSM       cloudhsm.Manager
	Net       ec2.InfrastructureManager
	Artifacts ArtifactStore
	Observer  Observer
	Log       logr.Logger

	// DryRun, when true, means no phase may contact the provider; phases
	// report intended changes and return synthetic state.
	DryRun bool
}

// WaitOptions builds waiter options for the given budget, threading the
// context's dry-run mode and logger through explicitly.
func (c *Context) WaitOptions(budget time.Duration) cloudhsm.WaitOptions {
	return cloudhsm.WaitOptions{
		Timeout: budget,
		Delay:   c.Timeouts.WaitDelay,
		DryRun:  c.DryRun,
		Log:     c.Log,
	}
}
