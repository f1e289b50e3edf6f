package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"toolchain-fixtures/internal/ports"
	"toolchain-fixtures/internal/types"
)

// HeapSearcher finds the smallest heap a workload runs in by bisecting
// between the bounds of a memory profile.
type HeapSearcher struct {
	Probe ports.HeapProbePort
}

func NewHeapSearcher(probe ports.HeapProbePort) HeapSearcher {
	return HeapSearcher{Probe: probe}
}

// FindMinHeap bisects [FindXmxMin, FindXmxMax] until the interval is at
// most FindXmxRange wide. The midpoint rounds toward the upper bound so
// every probe lies strictly inside the interval. The upper bound is verified first unless the
// profile skips it. Only out-of-memory outcomes move the lower bound; any
// other probe failure aborts the search.
func (s HeapSearcher) FindMinHeap(ctx context.Context, profile types.MemoryProfile) (types.HeapSearchResult, error) {
	if s.Probe == nil {
		return types.HeapSearchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("heap probe is not configured")
	}
	if err := ValidateMemoryProfile(profile); err != nil {
		return types.HeapSearchResult{}, err
	}
	lower := profile.FindXmxMin
	upper := profile.FindXmxMax
	probes := 0

	if !profile.SkipFindXmxMax {
		outcome, err := s.probe(ctx, upper)
		probes++
		if err != nil {
			return types.HeapSearchResult{}, err
		}
		if outcome != types.ProbeOutcomeSuccess {
			return types.HeapSearchResult{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("workload runs out of memory at find_xmx_max %dMB", upper))
		}
	}

	for upper-lower > profile.FindXmxRange {
		middle := upper - (upper-lower)/2
		outcome, err := s.probe(ctx, middle)
		probes++
		if err != nil {
			return types.HeapSearchResult{}, err
		}
		if outcome == types.ProbeOutcomeSuccess {
			upper = middle
		} else {
			lower = middle
		}
		log.Ctx(ctx).Debug().Int("heap_mb", middle).Str("outcome", string(outcome)).Msg("heap probe")
	}

	log.Ctx(ctx).Debug().Int("min_heap_mb", upper).Int("probes", probes).Msg("heap search completed")
	return types.HeapSearchResult{MinHeapMB: upper, LowerMB: lower, Probes: probes}, nil
}

// ExpectOutOfMemory runs the workload at the profile's OOM threshold and
// fails unless it runs out of memory there.
func (s HeapSearcher) ExpectOutOfMemory(ctx context.Context, profile types.MemoryProfile) error {
	if s.Probe == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("heap probe is not configured")
	}
	if err := ValidateMemoryProfile(profile); err != nil {
		return err
	}
	outcome, err := s.probe(ctx, profile.OOMThreshold)
	if err != nil {
		return err
	}
	if outcome != types.ProbeOutcomeOutOfMemory {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("workload did not run out of memory at oom_threshold %dMB", profile.OOMThreshold))
	}
	return nil
}

func (s HeapSearcher) probe(ctx context.Context, heapMB int) (types.ProbeOutcome, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	outcome, err := s.Probe.Probe(ctx, heapMB)
	if err != nil {
		return "", err
	}
	switch outcome {
	case types.ProbeOutcomeSuccess, types.ProbeOutcomeOutOfMemory:
		return outcome, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("heap probe returned unknown outcome %q", outcome))
	}
}
