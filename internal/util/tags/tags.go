// Package tags provides consistent resource tagging.
//
// All resources created for a cluster carry the same tag set so they can be
// identified, grouped and cleaned up together.
package tags

// Standard tag keys, namespaced under hsmctl.io.
const (
	// KeyCluster identifies which cluster a resource belongs to.
	KeyCluster = "hsmctl.io/cluster"

	// KeyManagedBy identifies the management system.
	KeyManagedBy = "hsmctl.io/managed-by"
)

// ManagedBy is the value recorded under KeyManagedBy.
const ManagedBy = "hsmctl"

// ForCluster returns the standard tag set for resources of a cluster.
func ForCluster(cluster string) map[string]string {
	return map[string]string{
		KeyCluster:   cluster,
		KeyManagedBy: ManagedBy,
	}
}
