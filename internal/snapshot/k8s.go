package snapshot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// controlPlaneLabel marks nodes excluded from worker capacity totals.
const controlPlaneLabel = "node-role.kubernetes.io/control-plane"

// KubeSource implements Source over a typed Kubernetes clientset.
type KubeSource struct {
	client kubernetes.Interface
	log    *zap.Logger
}

// NewKubeSource returns a Source backed by the given clientset. A nil logger
// disables logging.
func NewKubeSource(client kubernetes.Interface, log *zap.Logger) *KubeSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &KubeSource{client: client, log: log}
}

// Containers lists one entry per container of every non-terminated pod.
// Pods that ran to completion or failed no longer hold their requests
// against the scheduler and are excluded.
func (s *KubeSource) Containers(ctx context.Context, namespace string) ([]ContainerRequest, error) {
	pods, err := s.client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing pods: %w", err)
	}

	var out []ContainerRequest
	for _, pod := range pods.Items {
		if pod.Status.Phase == corev1.PodSucceeded || pod.Status.Phase == corev1.PodFailed {
			continue
		}
		for _, c := range pod.Spec.Containers {
			entry := ContainerRequest{
				Namespace: pod.Namespace,
				Pod:       pod.Name,
				Container: c.Name,
				Node:      pod.Spec.NodeName,
			}
			if q, ok := c.Resources.Requests[corev1.ResourceCPU]; ok {
				entry.CPU = q.String()
				entry.CPUSet = true
			}
			if q, ok := c.Resources.Requests[corev1.ResourceMemory]; ok {
				entry.Memory = q.String()
				entry.MemorySet = true
			}
			out = append(out, entry)
		}
	}

	s.log.Debug("fetched pod snapshot",
		zap.String("namespace", namespace),
		zap.Int("pods", len(pods.Items)),
		zap.Int("containers", len(out)),
	)
	return out, nil
}

// Nodes lists capacity and allocatable quantities for every worker node,
// skipping control-plane nodes.
func (s *KubeSource) Nodes(ctx context.Context) ([]NodeResources, error) {
	nodes, err := s.client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}

	var out []NodeResources
	for _, node := range nodes.Items {
		if _, ok := node.Labels[controlPlaneLabel]; ok {
			s.log.Debug("skipping control-plane node", zap.String("node", node.Name))
			continue
		}
		out = append(out, NodeResources{
			Name:              node.Name,
			CPUCapacity:       quantityString(node.Status.Capacity, corev1.ResourceCPU),
			CPUAllocatable:    quantityString(node.Status.Allocatable, corev1.ResourceCPU),
			MemoryCapacity:    quantityString(node.Status.Capacity, corev1.ResourceMemory),
			MemoryAllocatable: quantityString(node.Status.Allocatable, corev1.ResourceMemory),
		})
	}

	s.log.Debug("fetched node snapshot", zap.Int("workers", len(out)))
	return out, nil
}

func quantityString(list corev1.ResourceList, name corev1.ResourceName) string {
	if q, ok := list[name]; ok {
		return q.String()
	}
	return "0"
}
