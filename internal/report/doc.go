// Package report turns a cluster snapshot into a render-ready model.
//
// # Pipeline
//
// Build runs a single linear pass:
//
//	snapshot entries -> Accumulate (per-container rows + totals)
//	                 -> BuildNodeIndex (wide mode only)
//	                 -> ComputeUtilization (wide mode only)
//	                 -> Model
//
// All arithmetic happens in canonical units (millicores, bytes); the model
// carries both the canonical values and the original strings so the renderer
// never parses anything itself.
//
// # Failure policy
//
// A malformed quantity string skips only the entry it belongs to, recording a
// Warning that names the offending container or node. The run as a whole only
// fails when the data source fails; an empty snapshot yields a model with
// zero totals.
package report
