package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardResult_ToConfig(t *testing.T) {
	result := &WizardResult{
		ClusterName: "payments-hsm",
		Region:      "eu-central-1",
		HSMType:     "hsm2m.medium",
		Bucket:      "payments-artifacts",
	}

	cfg := result.ToConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "payments-hsm", cfg.ClusterName)
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, "hsm2m.medium", cfg.HSM.Type)
	assert.Equal(t, "payments-artifacts", cfg.Artifacts.Bucket)
	assert.Equal(t, "payments-hsm", cfg.Artifacts.Prefix)

	// Defaults fill in the rest.
	assert.Equal(t, "10.0.0.0/16", cfg.Network.VpcCIDR)
	require.Len(t, cfg.Network.Subnets, 2)
	assert.Equal(t, 4096, cfg.PKI.KeyBits)
}

func TestWizardResult_ToConfig_NoBucket(t *testing.T) {
	cfg := (&WizardResult{ClusterName: "test", Region: "us-east-1", HSMType: "hsm1.medium"}).ToConfig()

	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.Artifacts.Enabled())
	assert.Empty(t, cfg.Artifacts.Prefix)
}

func TestValidateWizardName(t *testing.T) {
	assert.NoError(t, validateWizardName("payments-hsm"))
	assert.Error(t, validateWizardName(""))
	assert.Error(t, validateWizardName("Payments"))
	assert.Error(t, validateWizardName("-leading"))
}
