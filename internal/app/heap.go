package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"toolchain-fixtures/internal/core"
	"toolchain-fixtures/internal/types"
)

// FindHeap searches the minimum heap size of a workload within the memory
// profile of the requested version. The system properties of the
// (version, variant) configuration are passed to every probe.
func (s Service) FindHeap(ctx context.Context, req FindHeapRequest) (FindHeapResult, error) {
	if len(req.Command) == 0 {
		return FindHeapResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workload command is required")
	}
	if s.NewHeapProbe == nil {
		return FindHeapResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("heap probe is not configured")
	}
	registry, err := s.LoadRegistry(ctx, req.Registry)
	if err != nil {
		return FindHeapResult{}, err
	}
	version := req.Version
	if strings.TrimSpace(string(version)) == "" {
		version = registry.LatestVersion()
	}
	profile, err := registry.MemoryProfile(version)
	if err != nil {
		return FindHeapResult{}, err
	}
	variant := req.Variant
	if strings.TrimSpace(string(variant)) == "" {
		variant = types.BuildVariantDeploy
	}
	config, err := registry.Configuration(version, variant)
	if err != nil {
		return FindHeapResult{}, err
	}

	searcher := core.NewHeapSearcher(s.NewHeapProbe(req.Command, config.SystemProperties, req.Dir))
	search, err := searcher.FindMinHeap(ctx, profile)
	if err != nil {
		return FindHeapResult{}, err
	}
	result := FindHeapResult{
		Name:    registry.Name(),
		Version: version,
		Profile: profile,
		Search:  search,
	}
	if req.ExpectOOM {
		if err := searcher.ExpectOutOfMemory(ctx, profile); err != nil {
			return FindHeapResult{}, err
		}
		result.OOMVerified = true
	}
	log.Ctx(ctx).Info().
		Str("registry", result.Name).
		Str("version", string(version)).
		Int("min_heap_mb", search.MinHeapMB).
		Msg("heap search finished")
	return result, nil
}
