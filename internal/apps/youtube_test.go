package apps

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolchain-fixtures/internal/core"
	"toolchain-fixtures/internal/types"
)

var testLayout = Layout{RepoRoot: "/src/toolchain"}

func youtubeRegistry(t *testing.T) core.Registry {
	t.Helper()
	registry, err := core.NewRegistry(YouTube(testLayout))
	require.NoError(t, err)
	return registry
}

func TestYouTubeRegistryValidates(t *testing.T) {
	require.NoError(t, core.NewRegistryValidator().Validate(t.Context(), youtubeRegistry(t)))
}

func TestYouTubeLatestVersionIsDefined(t *testing.T) {
	registry := youtubeRegistry(t)
	assert.Equal(t, types.VersionKey("17.19"), registry.LatestVersion())
	assert.True(t, registry.HasVersion(registry.LatestVersion()))
	versions := registry.Versions()
	assert.Equal(t, registry.LatestVersion(), versions[len(versions)-1])
}

func TestYouTubeNameIsConstant(t *testing.T) {
	first := youtubeRegistry(t)
	second, err := core.NewRegistry(YouTube(Layout{RepoRoot: "/elsewhere"}))
	require.NoError(t, err)
	assert.Equal(t, "youtube", first.Name())
	assert.Equal(t, first.Name(), first.Name())
	assert.Equal(t, first.Name(), second.Name())
}

func TestYouTubeMemoryProfile(t *testing.T) {
	registry := youtubeRegistry(t)

	profile, err := registry.MemoryProfile("16.20")
	require.NoError(t, err)
	want := types.MemoryProfile{
		FindXmxMin:     3150,
		FindXmxMax:     3300,
		FindXmxRange:   64,
		OOMThreshold:   3100,
		SkipFindXmxMax: true,
	}
	if diff := cmp.Diff(want, profile); diff != "" {
		t.Fatalf("unexpected profile (-want +got):\n%s", diff)
	}
	assert.Less(t, profile.FindXmxMin, profile.FindXmxMax)
	assert.Less(t, profile.OOMThreshold, profile.FindXmxMin)

	for _, version := range []types.VersionKey{"17.19", "16.21", "18.0"} {
		_, err := registry.MemoryProfile(version)
		require.Error(t, err, "version %s must not have a memory profile", version)
		assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	}
}

func TestYouTubePathsAreNonEmpty(t *testing.T) {
	registry := youtubeRegistry(t)
	for _, version := range registry.Versions() {
		variants, err := registry.Variants(version)
		require.NoError(t, err)
		for _, variant := range variants {
			config, err := registry.Configuration(version, variant)
			require.NoError(t, err)
			paths := append([]string{}, config.Inputs...)
			paths = append(paths, config.Libraries...)
			paths = append(paths, config.Pgconf...)
			if config.Pgmap != "" {
				paths = append(paths, config.Pgmap)
			}
			if libs := config.AndroidJava8Libs; libs != nil {
				paths = append(paths, libs.Config, libs.Library)
				paths = append(paths, libs.Program...)
				paths = append(paths, libs.Pgconf...)
			}
			require.NotEmpty(t, paths)
			for _, path := range paths {
				assert.NotEmpty(t, strings.TrimSpace(path), "%s %s", version, variant)
				assert.True(t, strings.HasPrefix(path, testLayout.RepoRoot), "%s is outside the layout", path)
			}
		}
	}
}

func TestYouTubeLatestDeployConfiguration(t *testing.T) {
	registry := youtubeRegistry(t)
	config, err := registry.Configuration(registry.LatestVersion(), types.BuildVariantDeploy)
	require.NoError(t, err)

	assert.Equal(t, "23", config.MinAPI)
	assert.NotEmpty(t, config.Pgconf)
	assert.Equal(t, []string{
		"/src/toolchain/third_party/youtube/youtube.android_17.19/YouTubeRelease_proguard.config",
		"/src/toolchain/third_party/youtube/youtube.android_17.19/YouTubeRelease_proguard_extra.config",
		"/src/toolchain/third_party/proguardsettings/YouTubeRelease_proguard.config",
		"/src/toolchain/src/test/ignorewarnings.rules",
	}, config.Pgconf)
	assert.Equal(t, []string{"-Dcom.android.tools.r8.experimental.enableconvertchecknotnull=1"}, config.SystemProperties)
	require.NotNil(t, config.SanitizeLibraries)
	assert.False(t, *config.SanitizeLibraries)
	require.NotNil(t, config.AndroidJava8Libs)
	assert.Equal(t, "/src/toolchain/third_party/android_jar/lib-v33/android.jar", config.AndroidJava8Libs.Library)
}

func TestYouTubeVariants(t *testing.T) {
	registry := youtubeRegistry(t)

	variants, err := registry.Variants("16.20")
	require.NoError(t, err)
	assert.Equal(t, []types.BuildVariant{types.BuildVariantDeploy, types.BuildVariantProguarded}, variants)

	variants, err = registry.Variants("17.19")
	require.NoError(t, err)
	assert.Equal(t, []types.BuildVariant{types.BuildVariantDeploy}, variants)

	proguarded, err := registry.Configuration("16.20", types.BuildVariantProguarded)
	require.NoError(t, err)
	assert.Equal(t, "21", proguarded.MinAPI)
	assert.Equal(t, "/src/toolchain/third_party/youtube/youtube.android_16.20/YouTubeRelease_proguard.map", proguarded.Pgmap)
	assert.Nil(t, proguarded.SanitizeLibraries)
}

func TestYouTubeDesugarProgramOmitsConfigurationJar(t *testing.T) {
	registry := youtubeRegistry(t)
	for _, version := range registry.Versions() {
		config, err := registry.Configuration(version, types.BuildVariantDeploy)
		require.NoError(t, err)
		require.NotNil(t, config.AndroidJava8Libs)
		require.Len(t, config.AndroidJava8Libs.Program, 1)
		assert.Equal(t, "jdk_libs_to_desugar.jar", filepath.Base(config.AndroidJava8Libs.Program[0]))
	}
}

func TestBuiltin(t *testing.T) {
	assert.Equal(t, []string{"youtube"}, Names())

	doc, err := Builtin("youtube", testLayout)
	require.NoError(t, err)
	assert.Equal(t, "youtube", doc.Name)

	_, err = Builtin("gmscore", testLayout)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
