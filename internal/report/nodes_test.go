package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traksel/kreq/internal/quantity"
	"github.com/traksel/kreq/internal/snapshot"
)

func node(name, cpuAlloc, memAlloc, cpuCap, memCap string) snapshot.NodeResources {
	return snapshot.NodeResources{
		Name:              name,
		CPUAllocatable:    cpuAlloc,
		MemoryAllocatable: memAlloc,
		CPUCapacity:       cpuCap,
		MemoryCapacity:    memCap,
	}
}

func TestBuildNodeIndex_Totals(t *testing.T) {
	idx, warnings := BuildNodeIndex([]snapshot.NodeResources{
		node("worker-1", "4", "8Gi", "4", "8Gi"),
		node("worker-2", "3900m", "7Gi", "4", "8Gi"),
	}, nil)

	assert.Empty(t, warnings)
	require.Len(t, idx.Rows(), 2)

	assert.Equal(t, int64(7900), idx.TotalAllocatable(quantity.CPU))
	assert.Equal(t, int64(15*1024*1024*1024), idx.TotalAllocatable(quantity.Memory))
	assert.Equal(t, int64(8000), idx.TotalCapacity(quantity.CPU))
	assert.Equal(t, int64(16*1024*1024*1024), idx.TotalCapacity(quantity.Memory))
}

func TestBuildNodeIndex_MalformedNodeSkipped(t *testing.T) {
	idx, warnings := BuildNodeIndex([]snapshot.NodeResources{
		node("worker-1", "4", "8Gi", "4", "8Gi"),
		node("broken", "what", "8Gi", "4", "8Gi"),
	}, nil)

	require.Len(t, idx.Rows(), 1)
	assert.Equal(t, "worker-1", idx.Rows()[0].Name)
	assert.Equal(t, int64(4000), idx.TotalAllocatable(quantity.CPU))

	require.Len(t, warnings, 1)
	assert.Equal(t, "broken", warnings[0].Entity)
	assert.Equal(t, "cpu", warnings[0].Field)
	assert.Equal(t, "what", warnings[0].Value)
}

func TestBuildNodeIndex_Empty(t *testing.T) {
	idx, warnings := BuildNodeIndex(nil, nil)

	assert.Empty(t, warnings)
	assert.Empty(t, idx.Rows())
	assert.Equal(t, int64(0), idx.TotalAllocatable(quantity.CPU))
	assert.Equal(t, int64(0), idx.TotalCapacity(quantity.Memory))
}

// Capacity above allocatable is the normal case and is passed through
// untouched; the index does not validate node-internal consistency.
func TestBuildNodeIndex_CapacityNotValidated(t *testing.T) {
	idx, warnings := BuildNodeIndex([]snapshot.NodeResources{
		node("odd", "8", "16Gi", "4", "8Gi"),
	}, nil)

	assert.Empty(t, warnings)
	assert.Equal(t, int64(8000), idx.TotalAllocatable(quantity.CPU))
	assert.Equal(t, int64(4000), idx.TotalCapacity(quantity.CPU))
}
