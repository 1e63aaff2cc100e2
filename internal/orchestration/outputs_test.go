package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hsmctl/hsmctl/internal/platform/cloudhsm"
	"github.com/hsmctl/hsmctl/internal/platform/ec2"
	"github.com/hsmctl/hsmctl/internal/provisioning"
)

func fullState() *provisioning.State {
	state := provisioning.NewState()
	state.Vpc = &ec2.Vpc{ID: "vpc-1", CIDR: "10.0.0.0/16"}
	state.Subnets = []*ec2.Subnet{{ID: "subnet-1"}, {ID: "subnet-2"}}
	state.ClusterID = "cluster-abc123"
	state.CSR = "csr-pem"
	state.FirstHSM = "hsm-1"
	state.SecondHSM = "hsm-2"
	state.Cluster = &cloudhsm.ClusterSnapshot{
		ID:            "cluster-abc123",
		State:         cloudhsm.StateInitialized,
		SecurityGroup: "sg-1",
		HSMs:          []cloudhsm.HSMNode{{ID: "hsm-1"}},
	}
	return state
}

func TestOutputsFromState(t *testing.T) {
	out := outputsFromState(fullState(), false)

	assert.Equal(t, "cluster-abc123", out.ClusterID)
	assert.Equal(t, cloudhsm.StateInitialized, out.State)
	assert.Equal(t, "sg-1", out.SecurityGroup)
	assert.Equal(t, "csr-pem", out.CSR)
	assert.Equal(t, "vpc-1", out.VpcID)
	assert.Equal(t, []string{"subnet-1", "subnet-2"}, out.SubnetIDs)
	// HSM list combines the snapshot's nodes with the second node created
	// after convergence, without duplicates.
	assert.ElementsMatch(t, []string{"hsm-1", "hsm-2"}, out.HSMIDs)
	assert.False(t, out.DryRun)
}

func TestOutputsFromState_Empty(t *testing.T) {
	out := outputsFromState(provisioning.NewState(), true)

	assert.Empty(t, out.ClusterID)
	assert.Empty(t, out.HSMIDs)
	assert.True(t, out.DryRun)
}

func TestOutputs_Summary(t *testing.T) {
	out := outputsFromState(fullState(), false)
	summary := out.Summary()

	assert.Contains(t, summary, "cluster-abc123")
	assert.Contains(t, summary, cloudhsm.StateInitialized)
	assert.Contains(t, summary, "sg-1")
	assert.Contains(t, summary, "subnet-1, subnet-2")
	assert.NotContains(t, summary, "dry-run")
}

func TestOutputs_SummaryDryRun(t *testing.T) {
	out := outputsFromState(provisioning.NewState(), true)
	assert.Contains(t, out.Summary(), "dry-run")
}
