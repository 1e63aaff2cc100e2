// Package cloudhsm provides a wrapper around the AWS CloudHSM v2 API.
//
// The package exposes a narrow Manager interface implemented by RealClient,
// plus two composable operations on top of it: AwaitClusterState, which polls
// the control plane until a cluster reaches one of a set of target states,
// and ActivateCluster, which issues the one-shot initialize command and then
// delegates to the waiter for the authoritative result.
//
// Cluster creation commands return before the cluster reaches a stable state,
// so polling with a bounded retry budget is the only correctness mechanism
// available. The waiter never caches state between attempts and never owns
// resource lifetime; it observes and reports.
package cloudhsm
