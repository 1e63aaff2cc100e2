package cloudhsm

import "context"

// CreateClusterOpts holds all parameters for creating a CloudHSM cluster.
type CreateClusterOpts struct {
	Name      string
	HSMType   string
	SubnetIDs []string
	Tags      map[string]string
}

// ClusterDescriber reads cluster state from the control plane. This is the
// only capability the convergence waiter needs.
type ClusterDescriber interface {
	// DescribeCluster returns a fresh snapshot of the cluster with the given
	// identifier. It returns an error wrapping ErrClusterNotFound when the
	// control plane reports no matching cluster.
	DescribeCluster(ctx context.Context, clusterID string) (*ClusterSnapshot, error)
}

// ClusterInitializer issues the one-shot initialize command. Initialization
// is not idempotent-safe to retry blindly, so callers must invoke it at most
// once per cluster.
type ClusterInitializer interface {
	ClusterDescriber

	// InitializeCluster submits the signed cluster certificate and trust
	// anchor. The returned state is the provider's immediate, non-
	// authoritative answer; callers should poll for the real outcome.
	InitializeCluster(ctx context.Context, clusterID, signedCert, trustAnchor string) (string, error)
}

// ClusterManager defines the interface for managing cluster resources.
type ClusterManager interface {
	ClusterInitializer

	CreateCluster(ctx context.Context, opts CreateClusterOpts) (*ClusterSnapshot, error)
	// FindClusterByName returns the non-deleted cluster carrying the given
	// Name tag, or nil if none exists.
	FindClusterByName(ctx context.Context, name string) (*ClusterSnapshot, error)
	DeleteCluster(ctx context.Context, clusterID string) error
}

// HSMManager defines the interface for managing individual HSM nodes.
type HSMManager interface {
	CreateHSM(ctx context.Context, clusterID, availabilityZone string) (string, error)
	DeleteHSM(ctx context.Context, clusterID, hsmID string) error
}

// Manager combines all CloudHSM interfaces.
type Manager interface {
	ClusterManager
	HSMManager
}
