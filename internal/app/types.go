package app

import (
	"io"

	"toolchain-fixtures/internal/types"
)

// RegistryRequest selects a registry: the built-in table called App rooted
// at RepoRoot, or the YAML file at RegistryPath when it is set.
type RegistryRequest struct {
	App          string
	RepoRoot     string
	RegistryPath string
}

type ValidateRequest struct {
	Registry RegistryRequest
}

type ValidateResult struct {
	Name          string
	LatestVersion types.VersionKey
	Versions      []types.VersionKey
}

type ConfigurationRequest struct {
	Registry  RegistryRequest
	Version   types.VersionKey
	Variant   types.BuildVariant
	OutputDir string
}

type ConfigurationResult struct {
	Name          string
	Version       types.VersionKey
	Variant       types.BuildVariant
	Configuration types.BuildConfiguration
	OutputDir     string
}

type MemoryProfileRequest struct {
	Registry RegistryRequest
	Version  types.VersionKey
}

type MemoryProfileResult struct {
	Name    string
	Version types.VersionKey
	Profile types.MemoryProfile
}

type ExportRequest struct {
	Registry RegistryRequest
	Output   string
	Out      io.Writer
}

type ExportResult struct {
	Name   string
	Output string
}

type FindHeapRequest struct {
	Registry  RegistryRequest
	Version   types.VersionKey
	Variant   types.BuildVariant
	Command   []string
	Dir       string
	ExpectOOM bool
}

type FindHeapResult struct {
	Name        string
	Version     types.VersionKey
	Profile     types.MemoryProfile
	Search      types.HeapSearchResult
	OOMVerified bool
}

type CheckoutRequest struct {
	RepoRoot    string
	Root        string
	Manifest    string
	Jobs        int
	RepoBinary  string
	ManifestURL string
}

type CheckoutResult struct {
	Root     string
	Manifest string
	Jobs     int
}
