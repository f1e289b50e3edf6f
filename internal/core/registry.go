package core

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"toolchain-fixtures/internal/types"
)

// Registry is an immutable mapping from application versions to their
// build configurations and memory profiles. It is constructed once and
// only hands out copies of its data.
type Registry struct {
	name     string
	latest   types.VersionKey
	versions map[types.VersionKey]types.VersionEntry
	memory   map[types.VersionKey]types.MemoryProfile
	order    []types.VersionKey
}

// NewRegistry builds a registry from doc. The document is copied, so later
// changes to doc are not observed by the registry.
func NewRegistry(doc types.RegistryDocument) (Registry, error) {
	name := strings.TrimSpace(doc.Name)
	if name == "" {
		return Registry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry name must not be empty")
	}
	if len(doc.Versions) == 0 {
		return Registry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("registry %s has no versions", name))
	}
	if _, ok := doc.Versions[doc.LatestVersion]; !ok {
		return Registry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("latest version %q is not defined in registry %s", doc.LatestVersion, name))
	}

	keys := make([]types.VersionKey, 0, len(doc.Versions))
	versions := make(map[types.VersionKey]types.VersionEntry, len(doc.Versions))
	for key, entry := range doc.Versions {
		if _, err := parseVersionKey(key); err != nil {
			return Registry{}, err
		}
		copied := make(types.VersionEntry, len(entry))
		for variant, config := range entry {
			copied[variant] = cloneConfiguration(config)
		}
		versions[key] = copied
		keys = append(keys, key)
	}
	memory := make(map[types.VersionKey]types.MemoryProfile, len(doc.MemoryProfiles))
	for key, profile := range doc.MemoryProfiles {
		memory[key] = profile
	}

	return Registry{
		name:     name,
		latest:   doc.LatestVersion,
		versions: versions,
		memory:   memory,
		order:    sortVersionKeys(keys),
	}, nil
}

// Name returns the logical name of the configuration set. Callers use it to
// namespace cache and output paths.
func (r Registry) Name() string {
	return r.name
}

// LatestVersion returns the version designated as newest.
func (r Registry) LatestVersion() types.VersionKey {
	return r.latest
}

// Versions returns all version keys in ascending version order.
func (r Registry) Versions() []types.VersionKey {
	return append([]types.VersionKey(nil), r.order...)
}

// HasVersion reports whether version is defined.
func (r Registry) HasVersion(version types.VersionKey) bool {
	_, ok := r.versions[version]
	return ok
}

// Variants returns the variants defined for version, known variants first
// in canonical order.
func (r Registry) Variants(version types.VersionKey) ([]types.BuildVariant, error) {
	entry, ok := r.versions[version]
	if !ok {
		return nil, versionNotFound(r.name, version)
	}
	var variants []types.BuildVariant
	for _, variant := range types.BuildVariants() {
		if _, ok := entry[variant]; ok {
			variants = append(variants, variant)
		}
	}
	var unknown []types.BuildVariant
	for variant := range entry {
		if !variant.Valid() {
			unknown = append(unknown, variant)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(variants, unknown...), nil
}

// Configuration returns the build configuration of a (version, variant) pair.
func (r Registry) Configuration(version types.VersionKey, variant types.BuildVariant) (types.BuildConfiguration, error) {
	entry, ok := r.versions[version]
	if !ok {
		return types.BuildConfiguration{}, versionNotFound(r.name, version)
	}
	config, ok := entry[variant]
	if !ok {
		return types.BuildConfiguration{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("variant %s is not defined for %s %s", variant, r.name, version))
	}
	return cloneConfiguration(config), nil
}

// MemoryProfile returns the heap-size search bounds of version. Only
// versions with explicit profile data are accepted: any other version is
// a FailedPrecondition error and must never be replaced by defaults.
func (r Registry) MemoryProfile(version types.VersionKey) (types.MemoryProfile, error) {
	profile, ok := r.memory[version]
	if !ok {
		return types.MemoryProfile{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no memory profile for %s version %s", r.name, version))
	}
	return profile, nil
}

// ProfiledVersions returns the versions that carry a memory profile.
func (r Registry) ProfiledVersions() []types.VersionKey {
	keys := make([]types.VersionKey, 0, len(r.memory))
	for key := range r.memory {
		keys = append(keys, key)
	}
	return sortVersionKeys(keys)
}

// OutputDir returns the name-namespaced directory for build outputs of a
// (version, variant) pair below base.
func (r Registry) OutputDir(base string, version types.VersionKey, variant types.BuildVariant) string {
	return filepath.Join(base, r.name, string(version), string(variant))
}

// Document returns a copy of the registry in its serialized form.
func (r Registry) Document() types.RegistryDocument {
	doc := types.RegistryDocument{
		Name:          r.name,
		LatestVersion: r.latest,
		Versions:      make(map[types.VersionKey]types.VersionEntry, len(r.versions)),
	}
	for key, entry := range r.versions {
		copied := make(types.VersionEntry, len(entry))
		for variant, config := range entry {
			copied[variant] = cloneConfiguration(config)
		}
		doc.Versions[key] = copied
	}
	if len(r.memory) > 0 {
		doc.MemoryProfiles = make(map[types.VersionKey]types.MemoryProfile, len(r.memory))
		for key, profile := range r.memory {
			doc.MemoryProfiles[key] = profile
		}
	}
	return doc
}

func versionNotFound(name string, version types.VersionKey) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("version %s is not defined for %s", version, name))
}

func cloneConfiguration(config types.BuildConfiguration) types.BuildConfiguration {
	out := config
	out.Inputs = cloneStrings(config.Inputs)
	out.Libraries = cloneStrings(config.Libraries)
	out.Pgconf = cloneStrings(config.Pgconf)
	out.SystemProperties = cloneStrings(config.SystemProperties)
	if config.SanitizeLibraries != nil {
		value := *config.SanitizeLibraries
		out.SanitizeLibraries = &value
	}
	if config.AndroidJava8Libs != nil {
		libs := *config.AndroidJava8Libs
		libs.Program = cloneStrings(config.AndroidJava8Libs.Program)
		libs.Pgconf = cloneStrings(config.AndroidJava8Libs.Pgconf)
		out.AndroidJava8Libs = &libs
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
