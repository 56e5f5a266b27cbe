package report

import (
	"go.uber.org/zap"

	"github.com/traksel/kreq/internal/quantity"
	"github.com/traksel/kreq/internal/snapshot"
)

// NodeRow is one worker node's capacity and allocatable resources in
// canonical units.
type NodeRow struct {
	Name string `json:"name"`

	CPUAllocatable    int64 `json:"cpuAllocatableMillicores"`
	MemoryAllocatable int64 `json:"memoryAllocatableBytes"`
	CPUCapacity       int64 `json:"cpuCapacityMillicores"`
	MemoryCapacity    int64 `json:"memoryCapacityBytes"`
}

// NodeIndex holds parsed worker-node resources and answers cluster-wide
// totals. Capacity >= allocatable is expected but not asserted; the index
// trusts the data source.
type NodeIndex struct {
	rows []NodeRow
}

// BuildNodeIndex parses node entries into an index. A node with any
// malformed quantity is skipped whole and recorded as a Warning.
func BuildNodeIndex(entries []snapshot.NodeResources, log *zap.Logger) (*NodeIndex, []Warning) {
	if log == nil {
		log = zap.NewNop()
	}

	idx := &NodeIndex{rows: make([]NodeRow, 0, len(entries))}
	var warnings []Warning

	for _, e := range entries {
		row := NodeRow{Name: e.Name}
		fields := []struct {
			dim  quantity.Dimension
			raw  string
			dest *int64
		}{
			{quantity.CPU, e.CPUAllocatable, &row.CPUAllocatable},
			{quantity.Memory, e.MemoryAllocatable, &row.MemoryAllocatable},
			{quantity.CPU, e.CPUCapacity, &row.CPUCapacity},
			{quantity.Memory, e.MemoryCapacity, &row.MemoryCapacity},
		}

		skipped := false
		for _, f := range fields {
			v, err := quantity.Parse(f.raw, f.dim)
			if err != nil {
				warnings = append(warnings, warnFor(e.Name, f.dim, f.raw, err))
				log.Warn("skipping node with malformed quantity",
					zap.String("node", e.Name), zap.String("value", f.raw), zap.Error(err))
				skipped = true
				break
			}
			*f.dest = v
		}
		if skipped {
			continue
		}
		idx.rows = append(idx.rows, row)
	}

	return idx, warnings
}

// Rows returns the per-node entries in input order.
func (ix *NodeIndex) Rows() []NodeRow {
	return ix.rows
}

// TotalAllocatable sums allocatable resources across all nodes for one
// dimension, in canonical units.
func (ix *NodeIndex) TotalAllocatable(d quantity.Dimension) int64 {
	var total int64
	for _, r := range ix.rows {
		if d == quantity.CPU {
			total += r.CPUAllocatable
		} else {
			total += r.MemoryAllocatable
		}
	}
	return total
}

// TotalCapacity sums capacity across all nodes for one dimension, in
// canonical units.
func (ix *NodeIndex) TotalCapacity(d quantity.Dimension) int64 {
	var total int64
	for _, r := range ix.rows {
		if d == quantity.CPU {
			total += r.CPUCapacity
		} else {
			total += r.MemoryCapacity
		}
	}
	return total
}
