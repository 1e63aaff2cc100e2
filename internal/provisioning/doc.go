// Package provisioning defines the shared plumbing for the cluster
// provisioning workflow: the phase contract, the context and state threaded
// through phases, the sequential pipeline runner, and the observability
// event surface.
//
// Phases run in a fixed order and communicate only through State. Ordering
// between resources that depend on a converged cluster (the second HSM node
// behind the initialized cluster) is enforced by data dependency: a phase
// reads the identifier an earlier phase produced.
package provisioning
