package cloudhsm

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudhsmv2/types"
)

// Cluster lifecycle states as reported by the CloudHSM control plane.
const (
	StateCreateInProgress     = "CREATE_IN_PROGRESS"
	StateUninitialized        = "UNINITIALIZED"
	StateInitializeInProgress = "INITIALIZE_IN_PROGRESS"
	StateInitialized          = "INITIALIZED"
	StateActive               = "ACTIVE"
	StateDeleteInProgress     = "DELETE_IN_PROGRESS"
	StateDeleted              = "DELETED"
	StateDegraded             = "DEGRADED"
)

// StateSet is a non-empty set of acceptable cluster states for a wait
// operation. Membership is exact string match; the caller decides which
// states count as converged.
type StateSet []string

// Contains reports whether state is a member of the set.
func (s StateSet) Contains(state string) bool {
	for _, want := range s {
		if want == state {
			return true
		}
	}
	return false
}

// String renders the set for log and error messages.
func (s StateSet) String() string {
	return strings.Join(s, "|")
}

// HSMNode is a point-in-time view of a single HSM inside a cluster.
type HSMNode struct {
	ID               string
	AvailabilityZone string
	SubnetID         string
	ENIIP            string
	State            string
}

// ClusterSnapshot is a point-in-time read of cluster state. It is produced
// fresh from every DescribeClusters response and never mutated afterwards.
type ClusterSnapshot struct {
	ID            string
	State         string
	StateMessage  string
	HSMType       string
	VpcID         string
	SecurityGroup string
	SubnetMapping map[string]string

	// CSR holds the cluster's certificate-signing request, present once the
	// cluster has been created and before it is initialized.
	CSR string

	// ClusterCertificate is the signed certificate, present after
	// initialization.
	ClusterCertificate string

	HSMs []HSMNode
}

// snapshotFromCluster converts the SDK cluster record into a snapshot.
func snapshotFromCluster(c types.Cluster) *ClusterSnapshot {
	snap := &ClusterSnapshot{
		ID:            aws.ToString(c.ClusterId),
		State:         string(c.State),
		StateMessage:  aws.ToString(c.StateMessage),
		HSMType:       aws.ToString(c.HsmType),
		VpcID:         aws.ToString(c.VpcId),
		SecurityGroup: aws.ToString(c.SecurityGroup),
		SubnetMapping: c.SubnetMapping,
	}

	if c.Certificates != nil {
		snap.CSR = aws.ToString(c.Certificates.ClusterCsr)
		snap.ClusterCertificate = aws.ToString(c.Certificates.ClusterCertificate)
	}

	for _, h := range c.Hsms {
		snap.HSMs = append(snap.HSMs, HSMNode{
			ID:               aws.ToString(h.HsmId),
			AvailabilityZone: aws.ToString(h.AvailabilityZone),
			SubnetID:         aws.ToString(h.SubnetId),
			ENIIP:            aws.ToString(h.EniIp),
			State:            string(h.State),
		})
	}

	return snap
}
