package orchestration

import (
	"fmt"
	"strings"

	"github.com/hsmctl/hsmctl/internal/provisioning"
)

// Outputs captures the externally useful results of a converged workflow:
// the cluster identity and state, the audit-relevant CSR, and the
// identifiers of the dependent resources created after convergence.
type Outputs struct {
	ClusterID     string   `yaml:"cluster_id"`
	State         string   `yaml:"state"`
	SecurityGroup string   `yaml:"security_group,omitempty"`
	CSR           string   `yaml:"csr,omitempty"`
	VpcID         string   `yaml:"vpc_id,omitempty"`
	SubnetIDs     []string `yaml:"subnet_ids,omitempty"`
	HSMIDs        []string `yaml:"hsm_ids,omitempty"`
	DryRun        bool     `yaml:"dry_run,omitempty"`
}

func outputsFromState(state *provisioning.State, dryRun bool) *Outputs {
	out := &Outputs{
		ClusterID: state.ClusterID,
		CSR:       state.CSR,
		DryRun:    dryRun,
	}

	if state.Cluster != nil {
		out.State = state.Cluster.State
		out.SecurityGroup = state.Cluster.SecurityGroup
		for _, hsm := range state.Cluster.HSMs {
			out.HSMIDs = append(out.HSMIDs, hsm.ID)
		}
	}
	if state.SecondHSM != "" && !contains(out.HSMIDs, state.SecondHSM) {
		out.HSMIDs = append(out.HSMIDs, state.SecondHSM)
	}
	if state.FirstHSM != "" && !contains(out.HSMIDs, state.FirstHSM) {
		out.HSMIDs = append(out.HSMIDs, state.FirstHSM)
	}

	if state.Vpc != nil {
		out.VpcID = state.Vpc.ID
	}
	for _, subnet := range state.Subnets {
		out.SubnetIDs = append(out.SubnetIDs, subnet.ID)
	}

	return out
}

// Summary renders a short human-readable report for terminal output.
func (o *Outputs) Summary() string {
	var b strings.Builder
	writeLine := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-16s %s\n", label+":", value)
		}
	}

	writeLine("Cluster", o.ClusterID)
	writeLine("State", o.State)
	writeLine("Security group", o.SecurityGroup)
	writeLine("VPC", o.VpcID)
	writeLine("Subnets", strings.Join(o.SubnetIDs, ", "))
	writeLine("HSMs", strings.Join(o.HSMIDs, ", "))
	if o.DryRun {
		writeLine("Mode", "dry-run (no changes applied)")
	}
	return b.String()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
