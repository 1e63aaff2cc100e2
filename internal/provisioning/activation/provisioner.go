// Package activation drives an uninitialized cluster to the initialized
// state: it derives certificate material from the cluster's CSR, issues the
// one-shot initialize command, waits for convergence, and only then adds
// the second HSM node. The second node's creation consumes the converged
// cluster identifier, which enforces its ordering behind initialization.
package activation

import (
	"fmt"
	"time"

	"github.com/hsmctl/hsmctl/internal/pki"
	"github.com/hsmctl/hsmctl/internal/platform/cloudhsm"
	"github.com/hsmctl/hsmctl/internal/provisioning"
)

const phaseName = "activation"

// Artifact object names written to the artifact store.
const (
	artifactCSR         = "cluster-csr.pem"
	artifactCACert      = "customer-ca.crt"
	artifactClusterCert = "cluster-cert.pem"
)

// Provisioner implements the activation phase.
type Provisioner struct{}

// NewProvisioner creates a new activation provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string { return phaseName }

// Provision initializes the cluster and brings it to two HSM nodes.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if ctx.DryRun {
		provisioning.LogDryRun(ctx.Observer, phaseName,
			fmt.Sprintf("sign CSR and initialize cluster %s", ctx.State.ClusterID))
		return nil
	}

	snap := ctx.State.Cluster
	if snap == nil {
		return fmt.Errorf("activation: no cluster snapshot in state")
	}

	switch snap.State {
	case cloudhsm.StateInitialized, cloudhsm.StateActive:
		provisioning.LogResourceExists(ctx.Observer, phaseName, "initialized cluster", cfg.ClusterName, snap.ID)
	default:
		converged, err := p.initialize(ctx)
		if err != nil {
			return err
		}
		snap = converged
		ctx.State.Cluster = converged
	}

	if snap.SecurityGroup != "" {
		if err := ctx.Net.AuthorizeHSMIngress(ctx, snap.SecurityGroup, cfg.Network.VpcCIDR); err != nil {
			return err
		}
	}

	return p.ensureSecondHSM(ctx, snap)
}

// initialize builds the certificate material, submits it, and waits for the
// cluster to report initialized.
func (p *Provisioner) initialize(ctx *provisioning.Context) (*cloudhsm.ClusterSnapshot, error) {
	cfg := ctx.Config

	if ctx.State.CSR == "" {
		return nil, fmt.Errorf("activation: cluster %s has no certificate-signing request", ctx.State.ClusterID)
	}

	material, err := pki.IssueClusterCertificate(ctx.State.CSR, pki.Options{
		CommonName:   cfg.PKI.CommonName,
		Organization: cfg.PKI.Organization,
		Country:      cfg.PKI.Country,
		KeyBits:      cfg.PKI.KeyBits,
		Validity:     time.Duration(cfg.PKI.ValidityDays) * 24 * time.Hour,
	})
	if err != nil {
		return nil, err
	}
	ctx.State.Material = material

	if err := p.archiveArtifacts(ctx, material); err != nil {
		return nil, err
	}

	targets := cloudhsm.StateSet{cloudhsm.StateInitialized}
	provisioning.LogConverging(ctx.Observer, phaseName, ctx.State.ClusterID, targets.String())

	converged, err := cloudhsm.ActivateCluster(ctx, ctx.HSM, ctx.State.ClusterID,
		string(material.ClusterCertPEM), string(material.CACertPEM),
		ctx.WaitOptions(ctx.Timeouts.ClusterInit))
	if err != nil {
		return nil, err
	}
	provisioning.LogConverged(ctx.Observer, phaseName, converged.ID, converged.State)

	return converged, nil
}

// ensureSecondHSM adds the second node once the cluster has converged. The
// cluster identifier comes from the converged snapshot, never from config.
func (p *Provisioner) ensureSecondHSM(ctx *provisioning.Context, snap *cloudhsm.ClusterSnapshot) error {
	if len(snap.HSMs) >= 2 {
		ctx.State.SecondHSM = snap.HSMs[1].ID
		return nil
	}
	if len(ctx.State.Subnets) < 2 {
		return fmt.Errorf("activation: need a second subnet for the second HSM node")
	}

	az := ctx.State.Subnets[1].AvailabilityZone
	provisioning.LogResourceCreating(ctx.Observer, phaseName, "hsm", az)
	hsmID, err := ctx.HSM.CreateHSM(ctx, snap.ID, az)
	if err != nil {
		return err
	}
	ctx.State.SecondHSM = hsmID
	provisioning.LogResourceCreated(ctx.Observer, phaseName, "hsm", az, hsmID)

	return nil
}

// archiveArtifacts uploads the CSR and certificates for audit when an
// artifact store is configured.
func (p *Provisioner) archiveArtifacts(ctx *provisioning.Context, material *pki.Material) error {
	if ctx.Artifacts == nil {
		return nil
	}

	if err := ctx.Artifacts.EnsureBucket(ctx); err != nil {
		return err
	}

	artifacts := map[string][]byte{
		artifactCSR:         []byte(ctx.State.CSR),
		artifactCACert:      material.CACertPEM,
		artifactClusterCert: material.ClusterCertPEM,
	}
	for name, data := range artifacts {
		if err := ctx.Artifacts.PutArtifact(ctx, name, data); err != nil {
			return err
		}
	}

	ctx.Observer.Printf("[%s] archived %d PKI artifacts", phaseName, len(artifacts))
	return nil
}
