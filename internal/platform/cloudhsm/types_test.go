package cloudhsm

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudhsmv2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSet_Contains(t *testing.T) {
	targets := StateSet{StateInitialized, StateActive}

	assert.True(t, targets.Contains(StateInitialized))
	assert.True(t, targets.Contains(StateActive))
	assert.False(t, targets.Contains(StateUninitialized))
	assert.False(t, targets.Contains(""))
	assert.False(t, StateSet{}.Contains(StateActive))
}

func TestStateSet_String(t *testing.T) {
	assert.Equal(t, "INITIALIZED|ACTIVE", StateSet{StateInitialized, StateActive}.String())
	assert.Equal(t, "ACTIVE", StateSet{StateActive}.String())
}

func TestSnapshotFromCluster(t *testing.T) {
	snap := snapshotFromCluster(types.Cluster{
		ClusterId:     aws.String("cluster-abc123"),
		State:         types.ClusterStateUninitialized,
		StateMessage:  aws.String("cluster is ready for initialization"),
		HsmType:       aws.String("hsm1.medium"),
		VpcId:         aws.String("vpc-1"),
		SecurityGroup: aws.String("sg-1"),
		SubnetMapping: map[string]string{"eu-central-1a": "subnet-1"},
		Certificates: &types.Certificates{
			ClusterCsr: aws.String("csr-pem"),
		},
		Hsms: []types.Hsm{
			{
				HsmId:            aws.String("hsm-1"),
				AvailabilityZone: aws.String("eu-central-1a"),
				SubnetId:         aws.String("subnet-1"),
				EniIp:            aws.String("10.0.1.5"),
				State:            types.HsmStateActive,
			},
		},
	})

	assert.Equal(t, "cluster-abc123", snap.ID)
	assert.Equal(t, StateUninitialized, snap.State)
	assert.Equal(t, "cluster is ready for initialization", snap.StateMessage)
	assert.Equal(t, "hsm1.medium", snap.HSMType)
	assert.Equal(t, "vpc-1", snap.VpcID)
	assert.Equal(t, "sg-1", snap.SecurityGroup)
	assert.Equal(t, "csr-pem", snap.CSR)
	assert.Empty(t, snap.ClusterCertificate)

	require.Len(t, snap.HSMs, 1)
	assert.Equal(t, "hsm-1", snap.HSMs[0].ID)
	assert.Equal(t, "eu-central-1a", snap.HSMs[0].AvailabilityZone)
	assert.Equal(t, "10.0.1.5", snap.HSMs[0].ENIIP)
	assert.Equal(t, "ACTIVE", snap.HSMs[0].State)
}

func TestSnapshotFromCluster_NoCertificates(t *testing.T) {
	snap := snapshotFromCluster(types.Cluster{
		ClusterId: aws.String("cluster-abc123"),
		State:     types.ClusterStateCreateInProgress,
	})

	assert.Empty(t, snap.CSR)
	assert.Empty(t, snap.ClusterCertificate)
	assert.Empty(t, snap.HSMs)
}
