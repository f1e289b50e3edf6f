package types

// HeapSearchResult reports the outcome of a minimum heap search.
type HeapSearchResult struct {
	// MinHeapMB is the smallest heap size known to succeed.
	MinHeapMB int
	// LowerMB is the largest heap size known to run out of memory, or the
	// search lower bound when no probe ran out of memory.
	LowerMB int
	Probes  int
}
