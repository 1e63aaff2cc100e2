package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

var clusterNameRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// Validate checks the configuration for completeness and consistency.
func (c *Config) Validate() error {
	if c.ClusterName == "" {
		return fmt.Errorf("cluster_name is required")
	}
	if !clusterNameRe.MatchString(c.ClusterName) {
		return fmt.Errorf("cluster_name %q must be lowercase alphanumeric with hyphens", c.ClusterName)
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}

	if err := c.Network.validate(c.Region); err != nil {
		return err
	}

	if !strings.HasPrefix(c.HSM.Type, "hsm") {
		return fmt.Errorf("hsm.type %q does not look like an HSM instance type", c.HSM.Type)
	}

	if c.PKI.KeyBits < 2048 {
		return fmt.Errorf("pki.key_bits must be at least 2048, got %d", c.PKI.KeyBits)
	}
	if c.PKI.ValidityDays < 1 {
		return fmt.Errorf("pki.validity_days must be positive, got %d", c.PKI.ValidityDays)
	}

	return nil
}

func (n *NetworkConfig) validate(region string) error {
	vpcNet, err := parseCIDR(n.VpcCIDR, "network.vpc_cidr")
	if err != nil {
		return err
	}

	if len(n.Subnets) < 2 {
		return fmt.Errorf("network.subnets needs at least two entries in distinct availability zones")
	}

	seenAZ := make(map[string]bool)
	for i, s := range n.Subnets {
		if s.AvailabilityZone == "" {
			return fmt.Errorf("network.subnets[%d].availability_zone is required", i)
		}
		if !strings.HasPrefix(s.AvailabilityZone, region) {
			return fmt.Errorf("network.subnets[%d].availability_zone %q is not in region %q", i, s.AvailabilityZone, region)
		}
		if seenAZ[s.AvailabilityZone] {
			return fmt.Errorf("network.subnets[%d]: duplicate availability zone %q", i, s.AvailabilityZone)
		}
		seenAZ[s.AvailabilityZone] = true

		subnetNet, err := parseCIDR(s.CIDR, fmt.Sprintf("network.subnets[%d].cidr", i))
		if err != nil {
			return err
		}
		if !cidrContains(vpcNet, subnetNet) {
			return fmt.Errorf("network.subnets[%d].cidr %s is outside vpc_cidr %s", i, s.CIDR, n.VpcCIDR)
		}
	}

	return nil
}

func parseCIDR(cidr, field string) (*net.IPNet, error) {
	if cidr == "" {
		return nil, fmt.Errorf("%s is required", field)
	}
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid CIDR %q: %w", field, cidr, err)
	}
	return ipNet, nil
}

// cidrContains reports whether outer fully contains inner.
func cidrContains(outer, inner *net.IPNet) bool {
	outerOnes, _ := outer.Mask.Size()
	innerOnes, _ := inner.Mask.Size()
	return outer.Contains(inner.IP) && outerOnes <= innerOnes
}
