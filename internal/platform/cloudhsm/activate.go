package cloudhsm

import "context"

// ActivateCluster drives a cluster through initialization: it issues the
// one-shot initialize command carrying the signed cluster certificate and
// trust anchor, then polls until the cluster reports INITIALIZED.
//
// The provider's immediate response state is discarded; only the polled
// state is authoritative. The command itself is never retried here:
// re-issuing initialize against an already-initializing cluster is a caller
// error, so retry policy applies only to the wait step. Waiter failures
// propagate unchanged.
//
// In dry-run mode no provider call is made at all.
func ActivateCluster(ctx context.Context, api ClusterInitializer, clusterID, signedCert, trustAnchor string, opts WaitOptions) (*ClusterSnapshot, error) {
	if opts.DryRun {
		return &ClusterSnapshot{ID: clusterID, State: StateInitialized}, nil
	}

	// Immediate state is non-authoritative; ignore it and poll.
	if _, err := api.InitializeCluster(ctx, clusterID, signedCert, trustAnchor); err != nil {
		return nil, err
	}

	return AwaitClusterState(ctx, api, clusterID, StateSet{StateInitialized}, opts)
}
