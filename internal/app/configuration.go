package app

import (
	"context"
	"strings"

	"toolchain-fixtures/internal/types"
)

// Configuration looks up a build configuration. An empty version selects
// the latest version and an empty variant selects deploy.
func (s Service) Configuration(ctx context.Context, req ConfigurationRequest) (ConfigurationResult, error) {
	registry, err := s.LoadRegistry(ctx, req.Registry)
	if err != nil {
		return ConfigurationResult{}, err
	}
	version := req.Version
	if strings.TrimSpace(string(version)) == "" {
		version = registry.LatestVersion()
	}
	variant := req.Variant
	if strings.TrimSpace(string(variant)) == "" {
		variant = types.BuildVariantDeploy
	}
	config, err := registry.Configuration(version, variant)
	if err != nil {
		return ConfigurationResult{}, err
	}
	result := ConfigurationResult{
		Name:          registry.Name(),
		Version:       version,
		Variant:       variant,
		Configuration: config,
	}
	if base := strings.TrimSpace(req.OutputDir); base != "" {
		result.OutputDir = registry.OutputDir(base, version, variant)
	}
	return result, nil
}

// MemoryProfile returns the heap search bounds of a version. Versions
// without a profile fail; there is no default profile.
func (s Service) MemoryProfile(ctx context.Context, req MemoryProfileRequest) (MemoryProfileResult, error) {
	registry, err := s.LoadRegistry(ctx, req.Registry)
	if err != nil {
		return MemoryProfileResult{}, err
	}
	version := req.Version
	if strings.TrimSpace(string(version)) == "" {
		version = registry.LatestVersion()
	}
	profile, err := registry.MemoryProfile(version)
	if err != nil {
		return MemoryProfileResult{}, err
	}
	return MemoryProfileResult{Name: registry.Name(), Version: version, Profile: profile}, nil
}
