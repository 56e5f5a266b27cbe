package report

import (
	"go.uber.org/zap"

	"github.com/traksel/kreq/internal/quantity"
	"github.com/traksel/kreq/internal/snapshot"
)

// Options configures one report run. It is passed explicitly into Build so
// the pipeline carries no ambient state between invocations.
type Options struct {
	// Namespace restricts the report; empty means all namespaces.
	Namespace string
	// Wide adds per-node resources and utilization to the model.
	Wide bool
}

// NodeTotals is the cluster-wide sum of worker-node resources.
type NodeTotals struct {
	CPUAllocatable    int64 `json:"cpuAllocatableMillicores"`
	MemoryAllocatable int64 `json:"memoryAllocatableBytes"`
	CPUCapacity       int64 `json:"cpuCapacityMillicores"`
	MemoryCapacity    int64 `json:"memoryCapacityBytes"`
}

// Model is the render-ready report. It is immutable after Build; the
// renderer does formatting only, never arithmetic.
type Model struct {
	Namespace string `json:"namespace,omitempty"`
	Wide      bool   `json:"wide"`

	Rows   []Row  `json:"containers"`
	Totals Totals `json:"totals"`

	// Populated only in wide mode.
	Nodes       []NodeRow    `json:"nodes,omitempty"`
	NodeTotals  *NodeTotals  `json:"nodeTotals,omitempty"`
	Utilization *Utilization `json:"utilization,omitempty"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// Build assembles the full report model from one cluster snapshot. Node
// entries are consulted only when opts.Wide is set; otherwise the node index
// and utilization are skipped entirely.
func Build(opts Options, containers []snapshot.ContainerRequest, nodes []snapshot.NodeResources, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}

	rows, totals, warnings := Accumulate(containers, log)
	if len(rows) == 0 {
		log.Warn("no containers matched", zap.String("namespace", opts.Namespace))
	}

	m := &Model{
		Namespace: opts.Namespace,
		Wide:      opts.Wide,
		Rows:      rows,
		Totals:    totals,
		Warnings:  warnings,
	}

	if opts.Wide {
		idx, nodeWarnings := BuildNodeIndex(nodes, log)
		m.Warnings = append(m.Warnings, nodeWarnings...)
		m.Nodes = idx.Rows()
		m.NodeTotals = &NodeTotals{
			CPUAllocatable:    idx.TotalAllocatable(quantity.CPU),
			MemoryAllocatable: idx.TotalAllocatable(quantity.Memory),
			CPUCapacity:       idx.TotalCapacity(quantity.CPU),
			MemoryCapacity:    idx.TotalCapacity(quantity.Memory),
		}
		util := ComputeUtilization(totals, idx)
		m.Utilization = &util
	}

	return m
}
