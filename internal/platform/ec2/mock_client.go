package ec2

import "context"

// MockClient is a mock implementation of InfrastructureManager. Each
// method delegates to the corresponding function field when set and falls
// back to a benign default otherwise.
type MockClient struct {
	EnsureVpcFunc    func(ctx context.Context, name, cidr string, tags map[string]string) (*Vpc, error)
	GetVpcFunc       func(ctx context.Context, name string) (*Vpc, error)
	DeleteVpcFunc    func(ctx context.Context, vpcID string) error
	EnsureSubnetFunc func(ctx context.Context, vpcID, name, availabilityZone, cidr string, tags map[string]string) (*Subnet, error)
	ListSubnetsFunc  func(ctx context.Context, vpcID string) ([]*Subnet, error)
	DeleteSubnetFunc func(ctx context.Context, subnetID string) error

	EnsureKeyPairFunc func(ctx context.Context, name, publicKey string, tags map[string]string) error
	DeleteKeyPairFunc func(ctx context.Context, name string) error

	AuthorizeHSMIngressFunc func(ctx context.Context, securityGroupID, cidr string) error
}

// Ensure interface compliance
var _ InfrastructureManager = (*MockClient)(nil)

// EnsureVpc mocks VPC get-or-create.
func (m *MockClient) EnsureVpc(ctx context.Context, name, cidr string, tags map[string]string) (*Vpc, error) {
	if m.EnsureVpcFunc != nil {
		return m.EnsureVpcFunc(ctx, name, cidr, tags)
	}
	return &Vpc{ID: "mock-vpc-id", CIDR: cidr}, nil
}

// GetVpc mocks the VPC lookup.
func (m *MockClient) GetVpc(ctx context.Context, name string) (*Vpc, error) {
	if m.GetVpcFunc != nil {
		return m.GetVpcFunc(ctx, name)
	}
	return nil, nil
}

// DeleteVpc mocks VPC deletion.
func (m *MockClient) DeleteVpc(ctx context.Context, vpcID string) error {
	if m.DeleteVpcFunc != nil {
		return m.DeleteVpcFunc(ctx, vpcID)
	}
	return nil
}

// EnsureSubnet mocks subnet get-or-create.
func (m *MockClient) EnsureSubnet(ctx context.Context, vpcID, name, availabilityZone, cidr string, tags map[string]string) (*Subnet, error) {
	if m.EnsureSubnetFunc != nil {
		return m.EnsureSubnetFunc(ctx, vpcID, name, availabilityZone, cidr, tags)
	}
	return &Subnet{ID: "mock-subnet-id", AvailabilityZone: availabilityZone, CIDR: cidr}, nil
}

// ListSubnets mocks listing a VPC's subnets.
func (m *MockClient) ListSubnets(ctx context.Context, vpcID string) ([]*Subnet, error) {
	if m.ListSubnetsFunc != nil {
		return m.ListSubnetsFunc(ctx, vpcID)
	}
	return nil, nil
}

// DeleteSubnet mocks subnet deletion.
func (m *MockClient) DeleteSubnet(ctx context.Context, subnetID string) error {
	if m.DeleteSubnetFunc != nil {
		return m.DeleteSubnetFunc(ctx, subnetID)
	}
	return nil
}

// EnsureKeyPair mocks key pair import.
func (m *MockClient) EnsureKeyPair(ctx context.Context, name, publicKey string, tags map[string]string) error {
	if m.EnsureKeyPairFunc != nil {
		return m.EnsureKeyPairFunc(ctx, name, publicKey, tags)
	}
	return nil
}

// DeleteKeyPair mocks key pair deletion.
func (m *MockClient) DeleteKeyPair(ctx context.Context, name string) error {
	if m.DeleteKeyPairFunc != nil {
		return m.DeleteKeyPairFunc(ctx, name)
	}
	return nil
}

// AuthorizeHSMIngress mocks opening the HSM client ports.
func (m *MockClient) AuthorizeHSMIngress(ctx context.Context, securityGroupID, cidr string) error {
	if m.AuthorizeHSMIngressFunc != nil {
		return m.AuthorizeHSMIngressFunc(ctx, securityGroupID, cidr)
	}
	return nil
}
