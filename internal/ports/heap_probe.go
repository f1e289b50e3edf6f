package ports

import (
	"context"

	"toolchain-fixtures/internal/types"
)

// HeapProbePort runs a workload with a fixed maximum heap size.
type HeapProbePort interface {
	// Probe returns ProbeOutcomeOutOfMemory when the workload ran out of
	// memory. Any other failure is returned as an error.
	Probe(ctx context.Context, heapMB int) (types.ProbeOutcome, error)
}
