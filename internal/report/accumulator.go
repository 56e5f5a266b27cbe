package report

import (
	"go.uber.org/zap"

	"github.com/traksel/kreq/internal/quantity"
	"github.com/traksel/kreq/internal/snapshot"
)

// Row is one container's requests, both as the original strings from the
// workload spec and as normalized canonical values.
type Row struct {
	Namespace string `json:"namespace"`
	Pod       string `json:"pod"`
	Container string `json:"container"`
	Node      string `json:"node,omitempty"`

	CPURaw    string `json:"cpuRequest,omitempty"`
	CPUSet    bool   `json:"cpuRequestSet"`
	MemoryRaw string `json:"memoryRequest,omitempty"`
	MemorySet bool   `json:"memoryRequestSet"`

	CPUMillicores int64 `json:"cpuMillicores"`
	MemoryBytes   int64 `json:"memoryBytes"`
}

// FullName returns the namespace/pod/container identifier used in tables and
// warnings.
func (r Row) FullName() string {
	return r.Namespace + "/" + r.Pod + "/" + r.Container
}

// Totals is the elementwise sum of requests across rows, in canonical units.
type Totals struct {
	CPUMillicores int64 `json:"cpuMillicores"`
	MemoryBytes   int64 `json:"memoryBytes"`
}

// Warning records an entry skipped because of a malformed quantity, with
// enough context to attribute it to a specific entity.
type Warning struct {
	Entity string `json:"entity"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Accumulate folds container entries into per-row normalized values and
// running totals. Rows keep input order. An entry whose CPU or memory string
// fails to parse is dropped whole and recorded as a Warning; an unset request
// contributes zero but the entry is still listed so unbounded containers stay
// visible.
func Accumulate(entries []snapshot.ContainerRequest, log *zap.Logger) ([]Row, Totals, []Warning) {
	if log == nil {
		log = zap.NewNop()
	}

	rows := make([]Row, 0, len(entries))
	var totals Totals
	var warnings []Warning

	for _, e := range entries {
		row := Row{
			Namespace: e.Namespace,
			Pod:       e.Pod,
			Container: e.Container,
			Node:      e.Node,
			CPURaw:    e.CPU,
			CPUSet:    e.CPUSet,
			MemoryRaw: e.Memory,
			MemorySet: e.MemorySet,
		}

		skipped := false
		if e.CPUSet {
			millis, err := quantity.Parse(e.CPU, quantity.CPU)
			if err != nil {
				warnings = append(warnings, warnFor(row.FullName(), quantity.CPU, e.CPU, err))
				log.Warn("skipping container with malformed cpu request",
					zap.String("container", row.FullName()), zap.String("value", e.CPU), zap.Error(err))
				skipped = true
			}
			row.CPUMillicores = millis
		}
		if !skipped && e.MemorySet {
			bytes, err := quantity.Parse(e.Memory, quantity.Memory)
			if err != nil {
				warnings = append(warnings, warnFor(row.FullName(), quantity.Memory, e.Memory, err))
				log.Warn("skipping container with malformed memory request",
					zap.String("container", row.FullName()), zap.String("value", e.Memory), zap.Error(err))
				skipped = true
			}
			row.MemoryBytes = bytes
		}
		if skipped {
			continue
		}

		totals.CPUMillicores += row.CPUMillicores
		totals.MemoryBytes += row.MemoryBytes
		rows = append(rows, row)
	}

	return rows, totals, warnings
}

func warnFor(entity string, d quantity.Dimension, value string, err error) Warning {
	reason := err.Error()
	if pe, ok := err.(*quantity.ParseError); ok {
		reason = pe.Reason
	}
	return Warning{Entity: entity, Field: d.String(), Value: value, Reason: reason}
}
