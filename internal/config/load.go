package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration from a YAML file, applies
// defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document into a validated Config.
func Parse(data []byte) (*Config, error) {
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills unset fields with working defaults. CloudHSM needs a
// subnet in at least two availability zones, so an empty subnet list
// expands to two /24 blocks in the region's first two zones.
func (c *Config) applyDefaults() {
	if c.Network.VpcCIDR == "" {
		c.Network.VpcCIDR = "10.0.0.0/16"
	}
	if len(c.Network.Subnets) == 0 && c.Region != "" {
		c.Network.Subnets = []SubnetConfig{
			{AvailabilityZone: c.Region + "a", CIDR: "10.0.1.0/24"},
			{AvailabilityZone: c.Region + "b", CIDR: "10.0.2.0/24"},
		}
	}
	if c.HSM.Type == "" {
		c.HSM.Type = "hsm1.medium"
	}
	if c.PKI.KeyBits == 0 {
		c.PKI.KeyBits = 4096
	}
	if c.PKI.ValidityDays == 0 {
		c.PKI.ValidityDays = 3650
	}
	if c.Artifacts.Bucket != "" && c.Artifacts.Prefix == "" {
		c.Artifacts.Prefix = c.ClusterName
	}
}

// FindConfigFile returns the default config file path if it exists in the
// current directory.
func FindConfigFile() (string, bool) {
	if _, err := os.Stat(DefaultFileName); err != nil {
		return "", false
	}
	return DefaultFileName, true
}
