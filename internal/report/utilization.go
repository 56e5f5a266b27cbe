package report

import (
	"math"
	"strconv"

	"github.com/traksel/kreq/internal/quantity"
)

// Percentage is a request-utilization value. Defined is false when the
// allocatable total was zero: there is no meaningful percentage for an
// unmeasurable cluster, and reporting 0% would misrepresent it.
type Percentage struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// String renders the percentage with two decimals, or "N/A" when undefined.
func (p Percentage) String() string {
	if !p.Defined {
		return "N/A"
	}
	return strconv.FormatFloat(p.Value, 'f', 2, 64) + "%"
}

// Utilization holds request utilization per dimension.
type Utilization struct {
	CPU    Percentage `json:"cpu"`
	Memory Percentage `json:"memory"`
}

// ComputeUtilization compares requested totals against the node index's
// allocatable totals. Values are rounded half-away-from-zero to two decimals.
func ComputeUtilization(requested Totals, idx *NodeIndex) Utilization {
	return Utilization{
		CPU:    percentOf(requested.CPUMillicores, idx.TotalAllocatable(quantity.CPU)),
		Memory: percentOf(requested.MemoryBytes, idx.TotalAllocatable(quantity.Memory)),
	}
}

func percentOf(requested, allocatable int64) Percentage {
	if allocatable == 0 {
		return Percentage{}
	}
	pct := float64(requested) * 100 / float64(allocatable)
	return Percentage{Value: math.Round(pct*100) / 100, Defined: true}
}
