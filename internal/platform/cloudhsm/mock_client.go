package cloudhsm

import "context"

// MockClient is a mock implementation of Manager. Each method delegates to
// the corresponding function field when set and falls back to a benign
// default otherwise.
type MockClient struct {
	DescribeClusterFunc   func(ctx context.Context, clusterID string) (*ClusterSnapshot, error)
	InitializeClusterFunc func(ctx context.Context, clusterID, signedCert, trustAnchor string) (string, error)
	CreateClusterFunc     func(ctx context.Context, opts CreateClusterOpts) (*ClusterSnapshot, error)
	FindClusterByNameFunc func(ctx context.Context, name string) (*ClusterSnapshot, error)
	DeleteClusterFunc     func(ctx context.Context, clusterID string) error
	CreateHSMFunc         func(ctx context.Context, clusterID, availabilityZone string) (string, error)
	DeleteHSMFunc         func(ctx context.Context, clusterID, hsmID string) error
}

// Ensure interface compliance
var _ Manager = (*MockClient)(nil)

// DescribeCluster mocks a cluster state query.
func (m *MockClient) DescribeCluster(ctx context.Context, clusterID string) (*ClusterSnapshot, error) {
	if m.DescribeClusterFunc != nil {
		return m.DescribeClusterFunc(ctx, clusterID)
	}
	return &ClusterSnapshot{ID: clusterID, State: StateActive}, nil
}

// InitializeCluster mocks the one-shot initialize command.
func (m *MockClient) InitializeCluster(ctx context.Context, clusterID, signedCert, trustAnchor string) (string, error) {
	if m.InitializeClusterFunc != nil {
		return m.InitializeClusterFunc(ctx, clusterID, signedCert, trustAnchor)
	}
	return StateInitializeInProgress, nil
}

// CreateCluster mocks cluster creation.
func (m *MockClient) CreateCluster(ctx context.Context, opts CreateClusterOpts) (*ClusterSnapshot, error) {
	if m.CreateClusterFunc != nil {
		return m.CreateClusterFunc(ctx, opts)
	}
	return &ClusterSnapshot{ID: "mock-cluster-id", State: StateCreateInProgress}, nil
}

// FindClusterByName mocks the tag-based cluster lookup.
func (m *MockClient) FindClusterByName(ctx context.Context, name string) (*ClusterSnapshot, error) {
	if m.FindClusterByNameFunc != nil {
		return m.FindClusterByNameFunc(ctx, name)
	}
	return nil, nil
}

// DeleteCluster mocks cluster deletion.
func (m *MockClient) DeleteCluster(ctx context.Context, clusterID string) error {
	if m.DeleteClusterFunc != nil {
		return m.DeleteClusterFunc(ctx, clusterID)
	}
	return nil
}

// CreateHSM mocks HSM node creation.
func (m *MockClient) CreateHSM(ctx context.Context, clusterID, availabilityZone string) (string, error) {
	if m.CreateHSMFunc != nil {
		return m.CreateHSMFunc(ctx, clusterID, availabilityZone)
	}
	return "mock-hsm-id", nil
}

// DeleteHSM mocks HSM node deletion.
func (m *MockClient) DeleteHSM(ctx context.Context, clusterID, hsmID string) error {
	if m.DeleteHSMFunc != nil {
		return m.DeleteHSMFunc(ctx, clusterID, hsmID)
	}
	return nil
}
