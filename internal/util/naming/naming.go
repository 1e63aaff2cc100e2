// Package naming provides consistent naming functions for the cloud
// resources belonging to an HSM cluster.
//
// Resource names follow the pattern {cluster}-{type}, with subnets keyed
// by availability zone. Consistent names enable get-or-create lookups and
// clean teardown by Name tag.
package naming

import "fmt"

func Vpc(cluster string) string {
	return fmt.Sprintf("%s-vpc", cluster)
}

func Subnet(cluster, availabilityZone string) string {
	return fmt.Sprintf("%s-%s", cluster, availabilityZone)
}

func KeyPair(cluster string) string {
	return fmt.Sprintf("%s-client", cluster)
}

func CA(cluster string) string {
	return fmt.Sprintf("%s-ca", cluster)
}
