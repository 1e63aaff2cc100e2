// Package orchestration provides high-level workflow coordination for
// cluster provisioning.
//
// This package orchestrates the provisioning workflow by delegating to
// specialized provisioners. It defines the order and coordination but
// delegates the actual work.
package orchestration

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/hsmctl/hsmctl/internal/config"
	"github.com/hsmctl/hsmctl/internal/platform/cloudhsm"
	"github.com/hsmctl/hsmctl/internal/platform/ec2"
	"github.com/hsmctl/hsmctl/internal/provisioning"
	"github.com/hsmctl/hsmctl/internal/provisioning/activation"
	"github.com/hsmctl/hsmctl/internal/provisioning/cluster"
	"github.com/hsmctl/hsmctl/internal/provisioning/destroy"
	"github.com/hsmctl/hsmctl/internal/provisioning/network"
)

// Reconciler orchestrates the cluster provisioning workflow.
type Reconciler struct {
	hsm       cloudhsm.Manager
	net       ec2.InfrastructureManager
	artifacts provisioning.ArtifactStore
	config    *config.Config
	timeouts  *config.Timeouts
	observer  provisioning.Observer
	log       logr.Logger
	dryRun    bool
	state     *provisioning.State
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithObserver sets the observability sink for provisioning events.
func WithObserver(o provisioning.Observer) Option {
	return func(r *Reconciler) {
		r.observer = o
	}
}

// WithArtifactStore enables archiving of PKI material for audit.
func WithArtifactStore(store provisioning.ArtifactStore) Option {
	return func(r *Reconciler) {
		r.artifacts = store
	}
}

// WithLogger sets the structured logger threaded into the waiter.
func WithLogger(log logr.Logger) Option {
	return func(r *Reconciler) {
		r.log = log
	}
}

// WithDryRun switches the whole workflow into plan-only mode: no phase
// contacts the provider.
func WithDryRun(dryRun bool) Option {
	return func(r *Reconciler) {
		r.dryRun = dryRun
	}
}

// WithTimeouts overrides the environment-derived timeouts.
func WithTimeouts(t *config.Timeouts) Option {
	return func(r *Reconciler) {
		r.timeouts = t
	}
}

// NewReconciler creates a new orchestration reconciler.
func NewReconciler(hsm cloudhsm.Manager, net ec2.InfrastructureManager, cfg *config.Config, opts ...Option) *Reconciler {
	r := &Reconciler{
		hsm:      hsm,
		net:      net,
		config:   cfg,
		timeouts: config.LoadTimeouts(),
		observer: provisioning.NewConsoleObserver(),
		log:      logr.Discard(),
		state:    provisioning.NewState(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reconciler) newContext(ctx context.Context) *provisioning.Context {
	return &provisioning.Context{
		Context:   ctx,
		Config:    r.config,
		Timeouts:  r.timeouts,
		State:     r.state,
		HSM:       r.hsm,
		Net:       r.net,
		Artifacts: r.artifacts,
		Observer:  r.observer,
		Log:       r.log,
		DryRun:    r.dryRun,
	}
}

// Reconcile ensures that the desired cluster state matches the actual
// state: network, cluster with first node, initialization, second node.
// It returns the outputs of the converged workflow.
func (r *Reconciler) Reconcile(ctx context.Context) (*Outputs, error) {
	pCtx := r.newContext(ctx)

	phases := []provisioning.Phase{
		network.NewProvisioner(),
		cluster.NewProvisioner(),
		activation.NewProvisioner(),
	}

	if err := provisioning.RunPhases(pCtx, phases); err != nil {
		return nil, err
	}

	return outputsFromState(r.state, r.dryRun), nil
}

// Destroy removes the cluster and all resources created for it.
func (r *Reconciler) Destroy(ctx context.Context) error {
	return destroy.NewDestroyer().Destroy(r.newContext(ctx))
}
