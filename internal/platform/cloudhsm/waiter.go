package cloudhsm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
)

const (
	// DefaultWaitTimeout is the total budget for a single wait operation.
	DefaultWaitTimeout = 10 * time.Minute
	// DefaultWaitDelay is the fixed pause between poll attempts.
	DefaultWaitDelay = 10 * time.Second
)

// WaitOptions configures a single AwaitClusterState invocation. The zero
// value uses the defaults above. DryRun is an explicit parameter rather
// than ambient process state; callers decide per invocation.
type WaitOptions struct {
	// Timeout is the total retry budget. The attempt count is derived as
	// Timeout / Delay, so the supplied timeout is always honored.
	Timeout time.Duration

	// Delay is the fixed pause between attempts.
	Delay time.Duration

	// DryRun short-circuits the wait without contacting the provider. Used
	// in plan-only mode where no real cluster exists to poll.
	DryRun bool

	// Log receives one entry per non-terminal attempt. Defaults to discard.
	Log logr.Logger
}

func (o WaitOptions) withDefaults() WaitOptions {
	if o.Timeout <= 0 {
		o.Timeout = DefaultWaitTimeout
	}
	if o.Delay <= 0 {
		o.Delay = DefaultWaitDelay
	}
	if o.Log.GetSink() == nil {
		o.Log = logr.Discard()
	}
	return o
}

// maxAttempts derives the retry budget from the timeout and per-attempt
// delay. At least one attempt is always made.
func (o WaitOptions) maxAttempts() int {
	n := int(o.Timeout / o.Delay)
	if n < 1 {
		n = 1
	}
	return n
}

// AwaitClusterState polls the control plane until the cluster reaches one of
// the target states.
//
// Each attempt issues a fresh query; no state is cached across attempts or
// across invocations. A missing cluster fails immediately with
// ErrClusterNotFound, without retrying and without any delay. Provider
// errors propagate unchanged. A non-terminal state mismatch is logged and
// retried after the fixed delay until the budget of Timeout/Delay attempts
// is exhausted, at which point a *TimeoutError is returned. Context
// cancellation aborts the loop promptly and surfaces the context error,
// distinct from budget exhaustion.
func AwaitClusterState(ctx context.Context, api ClusterDescriber, clusterID string, targets StateSet, opts WaitOptions) (*ClusterSnapshot, error) {
	if len(targets) == 0 {
		return nil, errors.New("await cluster state: empty target state set")
	}

	opts = opts.withDefaults()

	if opts.DryRun {
		// Plan-only mode: nothing exists yet to poll.
		return &ClusterSnapshot{ID: clusterID, State: targets[0]}, nil
	}

	maxAttempts := opts.maxAttempts()
	lastState := ""

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("awaiting cluster %s: %w", clusterID, err)
		}

		snap, err := api.DescribeCluster(ctx, clusterID)
		if err != nil {
			return nil, err
		}

		if targets.Contains(snap.State) {
			return snap, nil
		}
		lastState = snap.State

		if attempt >= maxAttempts {
			return nil, &TimeoutError{
				ClusterID: clusterID,
				Targets:   targets,
				Attempts:  attempt,
				LastState: lastState,
			}
		}

		opts.Log.Info("cluster not yet converged, retrying",
			"cluster", clusterID,
			"state", snap.State,
			"want", targets.String(),
			"attempt", attempt,
			"maxAttempts", maxAttempts)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("awaiting cluster %s: %w", clusterID, ctx.Err())
		case <-time.After(opts.Delay):
		}
	}
}
