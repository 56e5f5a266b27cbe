package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traksel/kreq/internal/snapshot"
)

func entry(ns, pod, container, cpu, memory string) snapshot.ContainerRequest {
	e := snapshot.ContainerRequest{Namespace: ns, Pod: pod, Container: container}
	if cpu != "" {
		e.CPU, e.CPUSet = cpu, true
	}
	if memory != "" {
		e.Memory, e.MemorySet = memory, true
	}
	return e
}

func TestAccumulate_Totals(t *testing.T) {
	entries := []snapshot.ContainerRequest{
		entry("default", "nginx-xyz", "nginx", "500m", "128Mi"),
		entry("kube-system", "coredns-abc", "coredns", "100m", "70Mi"),
		entry("default", "worker-1", "app", "0.5", "1Gi"),
	}

	rows, totals, warnings := Accumulate(entries, nil)

	require.Len(t, rows, 3)
	assert.Empty(t, warnings)
	assert.Equal(t, int64(1100), totals.CPUMillicores)
	assert.Equal(t, int64((128+70)*1024*1024+1024*1024*1024), totals.MemoryBytes)

	// Rows keep input order and carry both representations.
	assert.Equal(t, "default/nginx-xyz/nginx", rows[0].FullName())
	assert.Equal(t, "500m", rows[0].CPURaw)
	assert.Equal(t, int64(500), rows[0].CPUMillicores)
	assert.Equal(t, int64(128*1024*1024), rows[0].MemoryBytes)
}

// Totals are commutative: reordering entries changes row order but never the
// sums.
func TestAccumulate_ReorderingKeepsTotals(t *testing.T) {
	a := entry("ns1", "p1", "c1", "250m", "64Mi")
	b := entry("ns2", "p2", "c2", "1", "1Gi")
	c := entry("ns3", "p3", "c3", "50m", "512Ki")

	_, forward, _ := Accumulate([]snapshot.ContainerRequest{a, b, c}, nil)
	_, backward, _ := Accumulate([]snapshot.ContainerRequest{c, b, a}, nil)

	assert.Equal(t, forward, backward)
}

func TestAccumulate_UnsetRequestsContributeZero(t *testing.T) {
	entries := []snapshot.ContainerRequest{
		entry("default", "bare", "app", "", ""),
		entry("default", "cpu-only", "app", "200m", ""),
	}

	rows, totals, warnings := Accumulate(entries, nil)

	require.Len(t, rows, 2)
	assert.Empty(t, warnings)
	assert.Equal(t, int64(200), totals.CPUMillicores)
	assert.Equal(t, int64(0), totals.MemoryBytes)

	// Unset requests stay listed and stay distinguishable from explicit zero.
	assert.False(t, rows[0].CPUSet)
	assert.False(t, rows[0].MemorySet)
	assert.True(t, rows[1].CPUSet)
	assert.False(t, rows[1].MemorySet)
}

func TestAccumulate_ExplicitZeroIsSet(t *testing.T) {
	rows, totals, warnings := Accumulate([]snapshot.ContainerRequest{
		entry("default", "zero", "app", "0", "0"),
	}, nil)

	require.Len(t, rows, 1)
	assert.Empty(t, warnings)
	assert.True(t, rows[0].CPUSet)
	assert.True(t, rows[0].MemorySet)
	assert.Equal(t, Totals{}, totals)
}

// One malformed quantity drops only its own container; the other N entries
// still make it into the report.
func TestAccumulate_MalformedEntrySkipped(t *testing.T) {
	entries := []snapshot.ContainerRequest{
		entry("default", "good-1", "app", "100m", "64Mi"),
		entry("default", "bad", "app", "not-a-cpu", "64Mi"),
		entry("default", "good-2", "app", "300m", "32Mi"),
	}

	rows, totals, warnings := Accumulate(entries, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, "default/good-1/app", rows[0].FullName())
	assert.Equal(t, "default/good-2/app", rows[1].FullName())
	assert.Equal(t, int64(400), totals.CPUMillicores)
	assert.Equal(t, int64(96*1024*1024), totals.MemoryBytes)

	require.Len(t, warnings, 1)
	assert.Equal(t, "default/bad/app", warnings[0].Entity)
	assert.Equal(t, "cpu", warnings[0].Field)
	assert.Equal(t, "not-a-cpu", warnings[0].Value)
	assert.NotEmpty(t, warnings[0].Reason)
}

func TestAccumulate_MalformedMemorySkipsWholeEntry(t *testing.T) {
	entries := []snapshot.ContainerRequest{
		entry("default", "bad-mem", "app", "100m", "64Zi"),
	}

	rows, totals, warnings := Accumulate(entries, nil)

	assert.Empty(t, rows)
	assert.Equal(t, Totals{}, totals)
	require.Len(t, warnings, 1)
	assert.Equal(t, "memory", warnings[0].Field)
	// The well-formed CPU of a skipped entry must not leak into totals.
	assert.Equal(t, int64(0), totals.CPUMillicores)
}

func TestAccumulate_EmptyInput(t *testing.T) {
	rows, totals, warnings := Accumulate(nil, nil)

	assert.Empty(t, rows)
	assert.Empty(t, warnings)
	assert.Equal(t, Totals{}, totals)
}
