package cloudhsm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivateCluster_IssuesInitializeExactlyOnce(t *testing.T) {
	initCalls := 0
	describeCalls := 0
	mock := &MockClient{
		InitializeClusterFunc: func(_ context.Context, clusterID, signedCert, trustAnchor string) (string, error) {
			initCalls++
			assert.Equal(t, "abc-123", clusterID)
			assert.Equal(t, "signed-cert-pem", signedCert)
			assert.Equal(t, "trust-anchor-pem", trustAnchor)
			return StateInitializeInProgress, nil
		},
		DescribeClusterFunc: func(_ context.Context, clusterID string) (*ClusterSnapshot, error) {
			describeCalls++
			if describeCalls < 4 {
				return &ClusterSnapshot{ID: clusterID, State: StateInitializeInProgress}, nil
			}
			return &ClusterSnapshot{ID: clusterID, State: StateInitialized}, nil
		},
	}

	snap, err := ActivateCluster(context.Background(), mock, "abc-123",
		"signed-cert-pem", "trust-anchor-pem",
		WaitOptions{Timeout: time.Second, Delay: time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, StateInitialized, snap.State)
	assert.Equal(t, 1, initCalls, "initialize must not be retried")
	assert.Equal(t, 4, describeCalls)
}

func TestActivateCluster_InitializeErrorPropagates(t *testing.T) {
	initErr := errors.New("CloudHsmInvalidRequestException: cluster not in UNINITIALIZED state")
	describeCalls := 0
	mock := &MockClient{
		InitializeClusterFunc: func(_ context.Context, _, _, _ string) (string, error) {
			return "", initErr
		},
		DescribeClusterFunc: func(_ context.Context, _ string) (*ClusterSnapshot, error) {
			describeCalls++
			return &ClusterSnapshot{State: StateInitialized}, nil
		},
	}

	_, err := ActivateCluster(context.Background(), mock, "abc-123", "cert", "anchor",
		WaitOptions{Timeout: time.Second, Delay: time.Millisecond})
	assert.ErrorIs(t, err, initErr)
	assert.Equal(t, 0, describeCalls, "failed initialize must not fall through to polling")
}

func TestActivateCluster_WaitFailurePropagates(t *testing.T) {
	mock := &MockClient{
		DescribeClusterFunc: func(_ context.Context, clusterID string) (*ClusterSnapshot, error) {
			return &ClusterSnapshot{ID: clusterID, State: StateInitializeInProgress}, nil
		},
	}

	_, err := ActivateCluster(context.Background(), mock, "abc-123", "cert", "anchor",
		WaitOptions{Timeout: 2 * time.Millisecond, Delay: time.Millisecond})
	assert.True(t, IsTimeout(err))
}

func TestActivateCluster_DryRun(t *testing.T) {
	initCalls := 0
	describeCalls := 0
	mock := &MockClient{
		InitializeClusterFunc: func(_ context.Context, _, _, _ string) (string, error) {
			initCalls++
			return "", errors.New("must not be called")
		},
		DescribeClusterFunc: func(_ context.Context, _ string) (*ClusterSnapshot, error) {
			describeCalls++
			return nil, errors.New("must not be called")
		},
	}

	snap, err := ActivateCluster(context.Background(), mock, "abc-123", "cert", "anchor",
		WaitOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, StateInitialized, snap.State)
	assert.Equal(t, 0, initCalls)
	assert.Equal(t, 0, describeCalls)
}
