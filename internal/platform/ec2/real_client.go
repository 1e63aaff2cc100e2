package ec2

import (
	"context"
	"fmt"

	"github.com/hsmctl/hsmctl/internal/config"
	"github.com/hsmctl/hsmctl/internal/util/retry"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// RealClient implements InfrastructureManager using the EC2 API.
type RealClient struct {
	api      *awsec2.Client
	timeouts *config.Timeouts
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithAPI sets a custom EC2 API client (useful for testing).
func WithAPI(api *awsec2.Client) ClientOption {
	return func(c *RealClient) {
		c.api = api
	}
}

// NewRealClient creates a new RealClient from a resolved AWS configuration.
func NewRealClient(awsCfg aws.Config, opts ...ClientOption) *RealClient {
	c := &RealClient{
		api:      awsec2.NewFromConfig(awsCfg),
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// tagSpec builds a tag specification carrying the Name tag plus extras.
func tagSpec(resourceType types.ResourceType, name string, tags map[string]string) types.TagSpecification {
	list := []types.Tag{{Key: aws.String("Name"), Value: aws.String(name)}}
	for k, v := range tags {
		list = append(list, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return types.TagSpecification{ResourceType: resourceType, Tags: list}
}

func nameFilter(name string) types.Filter {
	return types.Filter{Name: aws.String("tag:Name"), Values: []string{name}}
}

// EnsureVpc returns the VPC tagged with the given name, creating it if it
// does not exist. An existing VPC with a different CIDR is an error rather
// than something to silently adopt.
func (c *RealClient) EnsureVpc(ctx context.Context, name, cidr string, tags map[string]string) (*Vpc, error) {
	existing, err := c.GetVpc(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.CIDR != cidr {
			return nil, fmt.Errorf("vpc %s exists with CIDR %s, want %s", name, existing.CIDR, cidr)
		}
		return existing, nil
	}

	out, err := c.api.CreateVpc(ctx, &awsec2.CreateVpcInput{
		CidrBlock:         aws.String(cidr),
		TagSpecifications: []types.TagSpecification{tagSpec(types.ResourceTypeVpc, name, tags)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vpc %s: %w", name, err)
	}

	vpcID := aws.ToString(out.Vpc.VpcId)

	// The HSM client protocol resolves cluster ENIs by DNS name.
	for _, attr := range []awsec2.ModifyVpcAttributeInput{
		{VpcId: aws.String(vpcID), EnableDnsSupport: &types.AttributeBooleanValue{Value: aws.Bool(true)}},
		{VpcId: aws.String(vpcID), EnableDnsHostnames: &types.AttributeBooleanValue{Value: aws.Bool(true)}},
	} {
		if _, err := c.api.ModifyVpcAttribute(ctx, &attr); err != nil {
			return nil, fmt.Errorf("failed to set DNS attributes on vpc %s: %w", vpcID, err)
		}
	}

	return &Vpc{ID: vpcID, CIDR: cidr}, nil
}

// GetVpc returns the VPC tagged with the given name, or nil if none exists.
func (c *RealClient) GetVpc(ctx context.Context, name string) (*Vpc, error) {
	out, err := c.api.DescribeVpcs(ctx, &awsec2.DescribeVpcsInput{
		Filters: []types.Filter{nameFilter(name)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe vpc %s: %w", name, err)
	}
	if len(out.Vpcs) == 0 {
		return nil, nil
	}
	v := out.Vpcs[0]
	return &Vpc{ID: aws.ToString(v.VpcId), CIDR: aws.ToString(v.CidrBlock)}, nil
}

// DeleteVpc deletes the VPC. Dependency violations (still-attached ENIs
// from a cluster being torn down) are retried with backoff.
func (c *RealClient) DeleteVpc(ctx context.Context, vpcID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.api.DeleteVpc(ctx, &awsec2.DeleteVpcInput{VpcId: aws.String(vpcID)})
		if err != nil {
			if isNotFoundError(err) {
				return nil
			}
			if isDependencyViolation(err) {
				return err
			}
			return retry.Fatal(err)
		}
		return nil
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}

// EnsureSubnet returns the subnet tagged with the given name, creating it
// in the given availability zone if it does not exist.
func (c *RealClient) EnsureSubnet(ctx context.Context, vpcID, name, availabilityZone, cidr string, tags map[string]string) (*Subnet, error) {
	out, err := c.api.DescribeSubnets(ctx, &awsec2.DescribeSubnetsInput{
		Filters: []types.Filter{
			nameFilter(name),
			{Name: aws.String("vpc-id"), Values: []string{vpcID}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe subnet %s: %w", name, err)
	}
	if len(out.Subnets) > 0 {
		s := out.Subnets[0]
		if az := aws.ToString(s.AvailabilityZone); az != availabilityZone {
			return nil, fmt.Errorf("subnet %s exists in zone %s, want %s", name, az, availabilityZone)
		}
		return &Subnet{
			ID:               aws.ToString(s.SubnetId),
			AvailabilityZone: aws.ToString(s.AvailabilityZone),
			CIDR:             aws.ToString(s.CidrBlock),
		}, nil
	}

	created, err := c.api.CreateSubnet(ctx, &awsec2.CreateSubnetInput{
		VpcId:             aws.String(vpcID),
		CidrBlock:         aws.String(cidr),
		AvailabilityZone:  aws.String(availabilityZone),
		TagSpecifications: []types.TagSpecification{tagSpec(types.ResourceTypeSubnet, name, tags)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create subnet %s: %w", name, err)
	}

	return &Subnet{
		ID:               aws.ToString(created.Subnet.SubnetId),
		AvailabilityZone: availabilityZone,
		CIDR:             cidr,
	}, nil
}

// ListSubnets returns all subnets in the given VPC.
func (c *RealClient) ListSubnets(ctx context.Context, vpcID string) ([]*Subnet, error) {
	out, err := c.api.DescribeSubnets(ctx, &awsec2.DescribeSubnetsInput{
		Filters: []types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list subnets in vpc %s: %w", vpcID, err)
	}

	subnets := make([]*Subnet, 0, len(out.Subnets))
	for _, s := range out.Subnets {
		subnets = append(subnets, &Subnet{
			ID:               aws.ToString(s.SubnetId),
			AvailabilityZone: aws.ToString(s.AvailabilityZone),
			CIDR:             aws.ToString(s.CidrBlock),
		})
	}
	return subnets, nil
}

// DeleteSubnet deletes the subnet, retrying while cluster ENIs drain.
func (c *RealClient) DeleteSubnet(ctx context.Context, subnetID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.api.DeleteSubnet(ctx, &awsec2.DeleteSubnetInput{SubnetId: aws.String(subnetID)})
		if err != nil {
			if isNotFoundError(err) {
				return nil
			}
			if isDependencyViolation(err) {
				return err
			}
			return retry.Fatal(err)
		}
		return nil
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}

// EnsureKeyPair imports the public key under the given name if no key pair
// with that name exists yet.
func (c *RealClient) EnsureKeyPair(ctx context.Context, name, publicKey string, tags map[string]string) error {
	_, err := c.api.DescribeKeyPairs(ctx, &awsec2.DescribeKeyPairsInput{
		KeyNames: []string{name},
	})
	if err == nil {
		return nil
	}
	if !isNotFoundError(err) {
		return fmt.Errorf("failed to describe key pair %s: %w", name, err)
	}

	_, err = c.api.ImportKeyPair(ctx, &awsec2.ImportKeyPairInput{
		KeyName:           aws.String(name),
		PublicKeyMaterial: []byte(publicKey),
		TagSpecifications: []types.TagSpecification{tagSpec(types.ResourceTypeKeyPair, name, tags)},
	})
	if err != nil {
		return fmt.Errorf("failed to import key pair %s: %w", name, err)
	}
	return nil
}

// DeleteKeyPair deletes the key pair. Missing key pairs count as success.
func (c *RealClient) DeleteKeyPair(ctx context.Context, name string) error {
	_, err := c.api.DeleteKeyPair(ctx, &awsec2.DeleteKeyPairInput{KeyName: aws.String(name)})
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete key pair %s: %w", name, err)
	}
	return nil
}

// hsmClientPortLow and hsmClientPortHigh bound the HSM client protocol
// port range.
const (
	hsmClientPortLow  = 2223
	hsmClientPortHigh = 2225
)

// AuthorizeHSMIngress opens the HSM client ports on the cluster's security
// group for the given CIDR. A duplicate rule is treated as success.
func (c *RealClient) AuthorizeHSMIngress(ctx context.Context, securityGroupID, cidr string) error {
	_, err := c.api.AuthorizeSecurityGroupIngress(ctx, &awsec2.AuthorizeSecurityGroupIngressInput{
		GroupId: aws.String(securityGroupID),
		IpPermissions: []types.IpPermission{{
			IpProtocol: aws.String("tcp"),
			FromPort:   aws.Int32(hsmClientPortLow),
			ToPort:     aws.Int32(hsmClientPortHigh),
			IpRanges:   []types.IpRange{{CidrIp: aws.String(cidr)}},
		}},
	})
	if err != nil && !isDuplicatePermission(err) {
		return fmt.Errorf("failed to authorize HSM ingress on %s: %w", securityGroupID, err)
	}
	return nil
}
