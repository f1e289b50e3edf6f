package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolchain-fixtures/internal/apps"
	"toolchain-fixtures/internal/ports"
	"toolchain-fixtures/internal/types"
)

func builtinRequest(t *testing.T) RegistryRequest {
	t.Helper()
	return RegistryRequest{App: apps.YouTubeName, RepoRoot: t.TempDir()}
}

func TestValidateApp(t *testing.T) {
	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{Registry: builtinRequest(t)})
	require.NoError(t, err)
	if diff := cmp.Diff("youtube", result.Name); diff != "" {
		t.Fatalf("unexpected registry name (-want +got):\n%s", diff)
	}
	assert.Equal(t, apps.YouTubeLatestVersion, result.LatestVersion)
	if diff := cmp.Diff([]types.VersionKey{"16.20", "17.19"}, result.Versions); diff != "" {
		t.Fatalf("unexpected versions (-want +got):\n%s", diff)
	}
}

func TestValidateUnknownApp(t *testing.T) {
	service := NewService()
	_, err := service.Validate(t.Context(), ValidateRequest{Registry: RegistryRequest{App: "gmail", RepoRoot: t.TempDir()}})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestValidateRegistryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	content := `name: sample
latest_version: "2.0"
versions:
  "2.0":
    deploy:
      inputs: [app_deploy.jar]
      min_api: "21"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	service := NewService()
	result, err := service.Validate(t.Context(), ValidateRequest{Registry: RegistryRequest{RegistryPath: path}})
	require.NoError(t, err)
	assert.Equal(t, "sample", result.Name)
	assert.Equal(t, types.VersionKey("2.0"), result.LatestVersion)
}

func TestValidateRegistryFileRejectsInvalidConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	content := `name: sample
latest_version: "2.0"
versions:
  "2.0":
    deploy:
      inputs: [app_deploy.jar]
      min_api: "zero"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	service := NewService()
	_, err := service.Validate(t.Context(), ValidateRequest{Registry: RegistryRequest{RegistryPath: path}})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "min_api")
}

func TestConfigurationDefaultsToLatestDeploy(t *testing.T) {
	req := builtinRequest(t)
	service := NewService()
	result, err := service.Configuration(t.Context(), ConfigurationRequest{Registry: req, OutputDir: "out"})
	require.NoError(t, err)
	assert.Equal(t, types.VersionKey("17.19"), result.Version)
	assert.Equal(t, types.BuildVariantDeploy, result.Variant)
	assert.Equal(t, "23", result.Configuration.MinAPI)
	assert.Equal(t, filepath.Join("out", "youtube", "17.19", "deploy"), result.OutputDir)
	assert.Equal(t, filepath.Join(req.RepoRoot, "third_party", "youtube", "youtube.android_17.19", "YouTubeRelease_deploy.jar"), result.Configuration.Inputs[0])
}

func TestConfigurationUnknownVariant(t *testing.T) {
	service := NewService()
	_, err := service.Configuration(t.Context(), ConfigurationRequest{
		Registry: builtinRequest(t),
		Version:  "17.19",
		Variant:  types.BuildVariantProguarded,
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestMemoryProfile(t *testing.T) {
	service := NewService()
	result, err := service.MemoryProfile(t.Context(), MemoryProfileRequest{Registry: builtinRequest(t), Version: "16.20"})
	require.NoError(t, err)
	want := types.MemoryProfile{FindXmxMin: 3150, FindXmxMax: 3300, FindXmxRange: 64, OOMThreshold: 3100, SkipFindXmxMax: true}
	if diff := cmp.Diff(want, result.Profile); diff != "" {
		t.Fatalf("unexpected memory profile (-want +got):\n%s", diff)
	}
}

func TestMemoryProfileFailsWithoutProfile(t *testing.T) {
	service := NewService()
	_, err := service.MemoryProfile(t.Context(), MemoryProfileRequest{Registry: builtinRequest(t), Version: "17.19"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestExportWritesDocument(t *testing.T) {
	output := filepath.Join(t.TempDir(), "nested", "youtube.yaml")
	service := NewService()
	result, err := service.Export(t.Context(), ExportRequest{Registry: builtinRequest(t), Output: output})
	require.NoError(t, err)
	assert.Equal(t, "youtube", result.Name)

	validated, err := service.Validate(t.Context(), ValidateRequest{Registry: RegistryRequest{RegistryPath: output}})
	require.NoError(t, err)
	assert.Equal(t, apps.YouTubeLatestVersion, validated.LatestVersion)
}

type thresholdProbe struct {
	threshold int
	calls     []int
	command   []string
	props     []string
}

func (p *thresholdProbe) Probe(_ context.Context, heapMB int) (types.ProbeOutcome, error) {
	p.calls = append(p.calls, heapMB)
	if heapMB >= p.threshold {
		return types.ProbeOutcomeSuccess, nil
	}
	return types.ProbeOutcomeOutOfMemory, nil
}

func TestFindHeap(t *testing.T) {
	probe := &thresholdProbe{threshold: 3200}
	service := NewService()
	service.NewHeapProbe = func(command []string, systemProperties []string, _ string) ports.HeapProbePort {
		probe.command = command
		probe.props = systemProperties
		return probe
	}

	result, err := service.FindHeap(t.Context(), FindHeapRequest{
		Registry:  builtinRequest(t),
		Version:   "16.20",
		Command:   []string{"java", "-jar", "r8.jar"},
		ExpectOOM: true,
	})
	require.NoError(t, err)
	assert.Equal(t, types.HeapSearchResult{MinHeapMB: 3225, LowerMB: 3188, Probes: 2}, result.Search)
	assert.True(t, result.OOMVerified)
	assert.Equal(t, []int{3225, 3188, 3100}, probe.calls)
	assert.Equal(t, []string{"java", "-jar", "r8.jar"}, probe.command)
	assert.Empty(t, probe.props)
}

func TestFindHeapRequiresProfile(t *testing.T) {
	service := NewService()
	service.NewHeapProbe = func([]string, []string, string) ports.HeapProbePort {
		return &thresholdProbe{threshold: 1}
	}
	_, err := service.FindHeap(t.Context(), FindHeapRequest{
		Registry: builtinRequest(t),
		Command:  []string{"java"},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestFindHeapRequiresCommand(t *testing.T) {
	service := NewService()
	_, err := service.FindHeap(t.Context(), FindHeapRequest{Registry: builtinRequest(t), Version: "16.20"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

type recordingCheckout struct {
	binary      string
	manifestURL string
	requests    []types.CheckoutRequest
}

func (c *recordingCheckout) Checkout(_ context.Context, req types.CheckoutRequest) error {
	c.requests = append(c.requests, req)
	return nil
}

func TestCheckoutDefaults(t *testing.T) {
	repoRoot := t.TempDir()
	checkout := &recordingCheckout{}
	service := NewService()
	service.NewCheckout = func(binary string, manifestURL string) ports.CheckoutPort {
		checkout.binary = binary
		checkout.manifestURL = manifestURL
		return checkout
	}

	result, err := service.Checkout(t.Context(), CheckoutRequest{RepoRoot: repoRoot, Jobs: 4, RepoBinary: "/opt/repo"})
	require.NoError(t, err)
	want := types.CheckoutRequest{
		Root:     filepath.Join(repoRoot, "build", "aosp"),
		Manifest: filepath.Join(repoRoot, "third_party", "aosp_manifest.xml"),
		Jobs:     4,
	}
	if diff := cmp.Diff([]types.CheckoutRequest{want}, checkout.requests); diff != "" {
		t.Fatalf("unexpected checkout requests (-want +got):\n%s", diff)
	}
	assert.Equal(t, "/opt/repo", checkout.binary)
	assert.Equal(t, want.Root, result.Root)
	assert.Equal(t, 4, result.Jobs)
}

func TestCheckoutDefaultJobs(t *testing.T) {
	checkout := &recordingCheckout{}
	service := NewService()
	service.NewCheckout = func(string, string) ports.CheckoutPort { return checkout }

	result, err := service.Checkout(t.Context(), CheckoutRequest{RepoRoot: t.TempDir(), Root: "aosp", Manifest: "m.xml"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Jobs, 1)
	require.Len(t, checkout.requests, 1)
	assert.Equal(t, "aosp", checkout.requests[0].Root)
	assert.Equal(t, "m.xml", checkout.requests[0].Manifest)
}
