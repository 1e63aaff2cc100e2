// Package ec2 provides a wrapper around the EC2 API for the network
// resources an HSM cluster depends on: VPC, subnets, the imported client
// key pair, and ingress rules on the cluster's security group.
package ec2

import "context"

// Vpc is the subset of VPC state the provisioner cares about.
type Vpc struct {
	ID   string
	CIDR string
}

// Subnet is the subset of subnet state the provisioner cares about.
type Subnet struct {
	ID               string
	AvailabilityZone string
	CIDR             string
}

// NetworkManager defines the interface for managing VPCs and subnets.
// Ensure operations are get-or-create keyed on the Name tag.
type NetworkManager interface {
	EnsureVpc(ctx context.Context, name, cidr string, tags map[string]string) (*Vpc, error)
	GetVpc(ctx context.Context, name string) (*Vpc, error)
	DeleteVpc(ctx context.Context, vpcID string) error

	EnsureSubnet(ctx context.Context, vpcID, name, availabilityZone, cidr string, tags map[string]string) (*Subnet, error)
	ListSubnets(ctx context.Context, vpcID string) ([]*Subnet, error)
	DeleteSubnet(ctx context.Context, subnetID string) error
}

// KeyPairManager defines the interface for managing imported key pairs.
type KeyPairManager interface {
	EnsureKeyPair(ctx context.Context, name, publicKey string, tags map[string]string) error
	DeleteKeyPair(ctx context.Context, name string) error
}

// SecurityGroupManager manages ingress on the cluster-owned security group.
type SecurityGroupManager interface {
	// AuthorizeHSMIngress opens the HSM client ports (2223-2225) on the
	// given security group for the given CIDR. Idempotent: an existing
	// identical rule is not an error.
	AuthorizeHSMIngress(ctx context.Context, securityGroupID, cidr string) error
}

// InfrastructureManager combines all EC2-side interfaces.
type InfrastructureManager interface {
	NetworkManager
	KeyPairManager
	SecurityGroupManager
}
