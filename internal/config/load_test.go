package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
cluster_name: payments-hsm
region: eu-central-1
`

func TestParse_MinimalConfigGetsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "payments-hsm", cfg.ClusterName)
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, "10.0.0.0/16", cfg.Network.VpcCIDR)
	require.Len(t, cfg.Network.Subnets, 2)
	assert.Equal(t, "eu-central-1a", cfg.Network.Subnets[0].AvailabilityZone)
	assert.Equal(t, "10.0.1.0/24", cfg.Network.Subnets[0].CIDR)
	assert.Equal(t, "eu-central-1b", cfg.Network.Subnets[1].AvailabilityZone)
	assert.Equal(t, "hsm1.medium", cfg.HSM.Type)
	assert.Equal(t, 4096, cfg.PKI.KeyBits)
	assert.Equal(t, 3650, cfg.PKI.ValidityDays)
	assert.False(t, cfg.Artifacts.Enabled())
}

func TestParse_FullConfig(t *testing.T) {
	data := []byte(`
cluster_name: payments-hsm
region: us-east-1
profile: production
network:
  vpc_cidr: 172.16.0.0/16
  key_pair_name: payments-client
  subnets:
    - availability_zone: us-east-1a
      cidr: 172.16.10.0/24
    - availability_zone: us-east-1b
      cidr: 172.16.20.0/24
hsm:
  type: hsm2m.medium
pki:
  common_name: payments root CA
  organization: example corp
  country: US
  key_bits: 2048
  validity_days: 365
artifacts:
  bucket: payments-artifacts
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Profile)
	assert.Equal(t, "172.16.0.0/16", cfg.Network.VpcCIDR)
	assert.Equal(t, "payments-client", cfg.Network.KeyPairName)
	assert.Equal(t, "hsm2m.medium", cfg.HSM.Type)
	assert.Equal(t, "payments root CA", cfg.PKI.CommonName)
	assert.Equal(t, 2048, cfg.PKI.KeyBits)
	assert.True(t, cfg.Artifacts.Enabled())
	// Prefix defaults to the cluster name when a bucket is set.
	assert.Equal(t, "payments-hsm", cfg.Artifacts.Prefix)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("cluster_name: [unclosed"))
	assert.Error(t, err)
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing name", "region: eu-central-1\n", "cluster_name is required"},
		{"bad name", "cluster_name: My_Cluster\nregion: eu-central-1\n", "lowercase"},
		{"missing region", "cluster_name: test\n", "region is required"},
		{
			"subnet outside vpc",
			`
cluster_name: test
region: eu-central-1
network:
  vpc_cidr: 10.0.0.0/16
  subnets:
    - availability_zone: eu-central-1a
      cidr: 192.168.1.0/24
    - availability_zone: eu-central-1b
      cidr: 10.0.2.0/24
`,
			"outside vpc_cidr",
		},
		{
			"single subnet",
			`
cluster_name: test
region: eu-central-1
network:
  subnets:
    - availability_zone: eu-central-1a
      cidr: 10.0.1.0/24
`,
			"at least two",
		},
		{
			"duplicate az",
			`
cluster_name: test
region: eu-central-1
network:
  subnets:
    - availability_zone: eu-central-1a
      cidr: 10.0.1.0/24
    - availability_zone: eu-central-1a
      cidr: 10.0.2.0/24
`,
			"duplicate availability zone",
		},
		{
			"az in wrong region",
			`
cluster_name: test
region: eu-central-1
network:
  subnets:
    - availability_zone: us-east-1a
      cidr: 10.0.1.0/24
    - availability_zone: eu-central-1b
      cidr: 10.0.2.0/24
`,
			"not in region",
		},
		{
			"bad hsm type",
			"cluster_name: test\nregion: eu-central-1\nhsm:\n  type: t3.micro\n",
			"HSM instance type",
		},
		{
			"weak ca key",
			"cluster_name: test\nregion: eu-central-1\npki:\n  key_bits: 1024\n",
			"at least 2048",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hsmctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payments-hsm", cfg.ClusterName)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, ok := FindConfigFile()
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(minimalYAML), 0600))

	path, ok := FindConfigFile()
	assert.True(t, ok)
	assert.Equal(t, DefaultFileName, path)
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteYAML(cfg, path))

	reloaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}
