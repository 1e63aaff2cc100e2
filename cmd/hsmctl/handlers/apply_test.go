package handlers

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hsmctl/hsmctl/internal/config"
	"github.com/hsmctl/hsmctl/internal/orchestration"
	"github.com/hsmctl/hsmctl/internal/platform/cloudhsm"
	"github.com/hsmctl/hsmctl/internal/platform/ec2"
	"github.com/hsmctl/hsmctl/internal/provisioning"
	"github.com/hsmctl/hsmctl/internal/ui/tui"
)

// saveAndRestoreFactories saves the current factory functions and registers
// a cleanup that restores them after the test.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoadAWSConfig := loadAWSConfig
	origNewHSMClient := newHSMClient
	origNewNetClient := newNetClient
	origNewArtifactStore := newArtifactStore
	origNewReconciler := newReconciler
	origLoadTimeouts := loadTimeouts
	origLoadConfigFile := loadConfigFile
	origFindConfigFile := findConfigFile
	origWriteFile := writeFile
	origStdoutIsTerminal := stdoutIsTerminal
	origRunTUI := runTUI
	origFileExists := fileExists
	origRunWizard := runWizard
	origWriteConfigFile := writeConfigFile

	t.Cleanup(func() {
		loadAWSConfig = origLoadAWSConfig
		newHSMClient = origNewHSMClient
		newNetClient = origNewNetClient
		newArtifactStore = origNewArtifactStore
		newReconciler = origNewReconciler
		loadTimeouts = origLoadTimeouts
		loadConfigFile = origLoadConfigFile
		findConfigFile = origFindConfigFile
		writeFile = origWriteFile
		stdoutIsTerminal = origStdoutIsTerminal
		runTUI = origRunTUI
		fileExists = origFileExists
		runWizard = origRunWizard
		writeConfigFile = origWriteConfigFile
	})
}

// mockReconciler implements the Reconciler interface for testing.
type mockReconciler struct {
	reconcileFunc func(ctx context.Context) (*orchestration.Outputs, error)
	destroyFunc   func(ctx context.Context) error
}

func (m *mockReconciler) Reconcile(ctx context.Context) (*orchestration.Outputs, error) {
	if m.reconcileFunc != nil {
		return m.reconcileFunc(ctx)
	}
	return &orchestration.Outputs{ClusterID: "cluster-abc123", State: cloudhsm.StateInitialized}, nil
}

func (m *mockReconciler) Destroy(ctx context.Context) error {
	if m.destroyFunc != nil {
		return m.destroyFunc(ctx)
	}
	return nil
}

func stubTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("cluster_name: test\nregion: eu-central-1\n"))
	require.NoError(t, err)
	return cfg
}

// stubPlatform wires the provider factories to mocks so handlers never
// touch the real SDK.
func stubPlatform(t *testing.T, cfg *config.Config) {
	t.Helper()
	loadConfigFile = func(string) (*config.Config, error) { return cfg, nil }
	loadAWSConfig = func(context.Context, string, string) (aws.Config, error) {
		return aws.Config{Region: cfg.Region}, nil
	}
	newHSMClient = func(aws.Config, *config.Timeouts) cloudhsm.Manager {
		return &cloudhsm.MockClient{}
	}
	newNetClient = func(aws.Config, *config.Timeouts) ec2.InfrastructureManager {
		return &ec2.MockClient{}
	}
	stdoutIsTerminal = func() bool { return false }
	writeFile = func(string, []byte, os.FileMode) error { return nil }
}

func TestLoadConfig_EmptyPath_NoDefaultFile(t *testing.T) {
	saveAndRestoreFactories(t)

	findConfigFile = func() (string, bool) { return "", false }

	_, err := loadConfig("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
	assert.Contains(t, err.Error(), "hsmctl init")
}

func TestLoadConfig_EmptyPath_WithDefaultFile(t *testing.T) {
	saveAndRestoreFactories(t)

	findConfigFile = func() (string, bool) { return "hsmctl.yaml", true }
	loadConfigFile = func(path string) (*config.Config, error) {
		assert.Equal(t, "hsmctl.yaml", path)
		return stubTestConfig(t), nil
	}

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.ClusterName)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	saveAndRestoreFactories(t)

	var gotPath string
	loadConfigFile = func(path string) (*config.Config, error) {
		gotPath = path
		return stubTestConfig(t), nil
	}

	_, err := loadConfig("custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, "custom.yaml", gotPath)
}

func TestLoadConfig_LoadError(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(string) (*config.Config, error) {
		return nil, errors.New("yaml parse error")
	}

	_, err := loadConfig("broken.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestApply_Success(t *testing.T) {
	saveAndRestoreFactories(t)
	stubPlatform(t, stubTestConfig(t))

	newReconciler = func(cloudhsm.Manager, ec2.InfrastructureManager, *config.Config, ...orchestration.Option) Reconciler {
		return &mockReconciler{}
	}

	var writtenPath string
	var writtenData []byte
	writeFile = func(path string, data []byte, _ os.FileMode) error {
		writtenPath = path
		writtenData = data
		return nil
	}

	err := Apply(context.Background(), ApplyOptions{ConfigPath: "hsmctl.yaml"})
	require.NoError(t, err)

	assert.Equal(t, outputsFile, writtenPath)
	var out orchestration.Outputs
	require.NoError(t, yaml.Unmarshal(writtenData, &out))
	assert.Equal(t, "cluster-abc123", out.ClusterID)
	assert.Equal(t, cloudhsm.StateInitialized, out.State)
}

func TestApply_ReconcileError(t *testing.T) {
	saveAndRestoreFactories(t)
	stubPlatform(t, stubTestConfig(t))

	newReconciler = func(cloudhsm.Manager, ec2.InfrastructureManager, *config.Config, ...orchestration.Option) Reconciler {
		return &mockReconciler{
			reconcileFunc: func(context.Context) (*orchestration.Outputs, error) {
				return nil, errors.New("cluster creation timed out")
			},
		}
	}

	err := Apply(context.Background(), ApplyOptions{ConfigPath: "hsmctl.yaml"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reconciliation failed")
}

func TestApply_AWSConfigError(t *testing.T) {
	saveAndRestoreFactories(t)
	stubPlatform(t, stubTestConfig(t))

	loadAWSConfig = func(context.Context, string, string) (aws.Config, error) {
		return aws.Config{}, errors.New("no credentials")
	}

	err := Apply(context.Background(), ApplyOptions{ConfigPath: "hsmctl.yaml"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no credentials")
}

func TestApply_ArtifactStoreWiredWhenConfigured(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg, err := config.Parse([]byte(
		"cluster_name: test\nregion: eu-central-1\nartifacts:\n  bucket: audit-bucket\n"))
	require.NoError(t, err)
	stubPlatform(t, cfg)

	var gotBucket, gotPrefix string
	newArtifactStore = func(_ aws.Config, bucket, prefix string) provisioning.ArtifactStore {
		gotBucket = bucket
		gotPrefix = prefix
		return nil
	}
	newReconciler = func(cloudhsm.Manager, ec2.InfrastructureManager, *config.Config, ...orchestration.Option) Reconciler {
		return &mockReconciler{}
	}

	require.NoError(t, Apply(context.Background(), ApplyOptions{ConfigPath: "hsmctl.yaml"}))
	assert.Equal(t, "audit-bucket", gotBucket)
	assert.Equal(t, cfg.Artifacts.Prefix, gotPrefix)
}

func TestApply_DryRunStaysPlain(t *testing.T) {
	saveAndRestoreFactories(t)
	stubPlatform(t, stubTestConfig(t))

	// A terminal is attached, yet dry runs must not open the TUI.
	stdoutIsTerminal = func() bool { return true }
	runTUI = func(tui.Model, func(obs provisioning.Observer) error) error {
		t.Fatal("dry run must not start the interactive view")
		return nil
	}

	reconciled := false
	newReconciler = func(cloudhsm.Manager, ec2.InfrastructureManager, *config.Config, ...orchestration.Option) Reconciler {
		return &mockReconciler{
			reconcileFunc: func(context.Context) (*orchestration.Outputs, error) {
				reconciled = true
				return &orchestration.Outputs{ClusterID: "cluster-abc123", DryRun: true}, nil
			},
		}
	}

	require.NoError(t, Apply(context.Background(), ApplyOptions{ConfigPath: "hsmctl.yaml", DryRun: true}))
	assert.True(t, reconciled)
}

func TestApply_InteractiveUsesTUI(t *testing.T) {
	saveAndRestoreFactories(t)
	stubPlatform(t, stubTestConfig(t))

	stdoutIsTerminal = func() bool { return true }

	tuiStarted := false
	runTUI = func(m tui.Model, workflow func(obs provisioning.Observer) error) error {
		tuiStarted = true
		assert.Equal(t, "test", m.ClusterName)
		return workflow(provisioning.NewConsoleObserver())
	}
	newReconciler = func(cloudhsm.Manager, ec2.InfrastructureManager, *config.Config, ...orchestration.Option) Reconciler {
		return &mockReconciler{}
	}

	require.NoError(t, Apply(context.Background(), ApplyOptions{ConfigPath: "hsmctl.yaml"}))
	assert.True(t, tuiStarted)
}

func TestUseInteractiveView(t *testing.T) {
	saveAndRestoreFactories(t)

	tests := []struct {
		name     string
		opts     ApplyOptions
		terminal bool
		want     bool
	}{
		{"terminal", ApplyOptions{}, true, true},
		{"plain flag", ApplyOptions{Plain: true}, true, false},
		{"dry run", ApplyOptions{DryRun: true}, true, false},
		{"piped output", ApplyOptions{}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdoutIsTerminal = func() bool { return tt.terminal }
			assert.Equal(t, tt.want, useInteractiveView(tt.opts))
		})
	}
}
