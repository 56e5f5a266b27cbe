// Package snapshot fetches a single point-in-time view of cluster workloads
// and worker nodes and hands the aggregation engine raw quantity strings.
// One snapshot per invocation: no watch, no retry, no caching.
package snapshot

import "context"

// ContainerRequest identifies one container and its declared resource
// requests as raw Kubernetes quantity strings. CPUSet/MemorySet distinguish
// an absent request from an explicit zero; both contribute zero to totals
// but render differently.
type ContainerRequest struct {
	Namespace string
	Pod       string
	Container string
	Node      string

	CPU       string
	CPUSet    bool
	Memory    string
	MemorySet bool
}

// NodeResources holds one worker node's capacity and allocatable quantities
// as raw strings. Missing entries default to "0".
type NodeResources struct {
	Name string

	CPUCapacity       string
	CPUAllocatable    string
	MemoryCapacity    string
	MemoryAllocatable string
}

// Source is the cluster data source the report pipeline consumes. Both
// methods return entries in a stable order so the rendered report is
// deterministic given a deterministic cluster state.
type Source interface {
	// Containers lists resource requests for all containers, optionally
	// restricted to one namespace (empty means all namespaces).
	Containers(ctx context.Context, namespace string) ([]ContainerRequest, error)

	// Nodes lists capacity and allocatable resources for worker nodes.
	Nodes(ctx context.Context) ([]NodeResources, error)
}
