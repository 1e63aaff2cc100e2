package config

// DefaultFileName is the config file apply looks for when no path is given.
const DefaultFileName = "hsmctl.yaml"

// Config is the top-level hsmctl configuration.
type Config struct {
	// ClusterName identifies the cluster and tags every resource created
	// for it. DNS-safe, lowercase.
	ClusterName string `yaml:"cluster_name" mapstructure:"cluster_name"`

	// Region is the target provider region, e.g. "eu-central-1".
	Region string `yaml:"region" mapstructure:"region"`

	// Profile is the credential profile to resolve from the shared AWS
	// configuration. Empty means the default credential chain.
	Profile string `yaml:"profile" mapstructure:"profile"`

	Network   NetworkConfig   `yaml:"network" mapstructure:"network"`
	HSM       HSMConfig       `yaml:"hsm" mapstructure:"hsm"`
	PKI       PKIConfig       `yaml:"pki" mapstructure:"pki"`
	Artifacts ArtifactsConfig `yaml:"artifacts" mapstructure:"artifacts"`
}

// NetworkConfig describes the VPC and subnets the cluster spans.
type NetworkConfig struct {
	VpcCIDR string         `yaml:"vpc_cidr" mapstructure:"vpc_cidr"`
	Subnets []SubnetConfig `yaml:"subnets" mapstructure:"subnets"`

	// KeyPairName, when set, imports a locally generated key pair under
	// this name for the client instance. Empty disables key-pair import.
	KeyPairName string `yaml:"key_pair_name" mapstructure:"key_pair_name"`
}

// SubnetConfig pins one subnet to an availability zone.
type SubnetConfig struct {
	AvailabilityZone string `yaml:"availability_zone" mapstructure:"availability_zone"`
	CIDR             string `yaml:"cidr" mapstructure:"cidr"`
}

// HSMConfig describes the HSM nodes of the cluster.
type HSMConfig struct {
	// Type is the HSM instance type, e.g. "hsm1.medium".
	Type string `yaml:"type" mapstructure:"type"`
}

// PKIConfig controls the locally generated certificate authority used to
// sign the cluster's certificate-signing request.
type PKIConfig struct {
	CommonName   string `yaml:"common_name" mapstructure:"common_name"`
	Organization string `yaml:"organization" mapstructure:"organization"`
	Country      string `yaml:"country" mapstructure:"country"`
	KeyBits      int    `yaml:"key_bits" mapstructure:"key_bits"`
	ValidityDays int    `yaml:"validity_days" mapstructure:"validity_days"`
}

// ArtifactsConfig configures optional S3 upload of the CSR, CA certificate
// and signed cluster certificate for audit.
type ArtifactsConfig struct {
	Bucket string `yaml:"bucket" mapstructure:"bucket"`
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
}

// Enabled reports whether artifact upload is configured.
func (a ArtifactsConfig) Enabled() bool {
	return a.Bucket != ""
}
