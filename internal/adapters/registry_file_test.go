package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolchain-fixtures/internal/types"
)

const sampleRegistryYAML = `name: sample
latest_version: "2.1"
versions:
  "1.0":
    deploy:
      inputs:
        - /tp/sample_1.0/app_deploy.jar
      pgconf:
        - /tp/sample_1.0/app.pgcfg
      min_api: "21"
      sanitize_libraries: false
      android_java8_libs:
        config: /tp/sample_1.0/desugar.json
        program:
          - /tp/sample_1.0/jdk_libs.jar
        library: /tp/android_jar/lib-v30/android.jar
        pgconf:
          - /tp/sample_1.0/base.pgcfg
    proguarded:
      inputs:
        - /tp/sample_1.0/app_proguard.jar
      pgmap: /tp/sample_1.0/app_proguard.map
      min_api: "21"
  2.1:
    deploy:
      inputs:
        - /tp/sample_2.1/app_deploy.jar
      min_api: 23
      system_properties:
        - -Dfeature=1
memory_profiles:
  "1.0":
    find_xmx_min: 300
    find_xmx_max: 400
    find_xmx_range: 16
    oom_threshold: 250
    skip_find_xmx_max: true
`

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRegistryYAML), 0644))

	doc, err := NewRegistryFileAdapter().LoadRegistry(path)
	require.NoError(t, err)

	assert.Equal(t, "sample", doc.Name)
	assert.Equal(t, types.VersionKey("2.1"), doc.LatestVersion)
	require.Len(t, doc.Versions, 2)

	deploy := doc.Versions["1.0"][types.BuildVariantDeploy]
	assert.Equal(t, []string{"/tp/sample_1.0/app_deploy.jar"}, deploy.Inputs)
	require.NotNil(t, deploy.SanitizeLibraries)
	assert.False(t, *deploy.SanitizeLibraries)
	require.NotNil(t, deploy.AndroidJava8Libs)
	assert.Equal(t, "/tp/android_jar/lib-v30/android.jar", deploy.AndroidJava8Libs.Library)

	proguarded := doc.Versions["1.0"][types.BuildVariantProguarded]
	assert.Equal(t, "/tp/sample_1.0/app_proguard.map", proguarded.Pgmap)
	assert.Nil(t, proguarded.SanitizeLibraries)

	// Unquoted keys and numbers still decode as strings.
	latest := doc.Versions["2.1"][types.BuildVariantDeploy]
	assert.Equal(t, "23", latest.MinAPI)
	assert.Equal(t, []string{"-Dfeature=1"}, latest.SystemProperties)

	profile := doc.MemoryProfiles["1.0"]
	assert.Equal(t, 300, profile.FindXmxMin)
	assert.True(t, profile.SkipFindXmxMax)
}

func TestLoadRegistryErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		wantCode errbuilder.ErrCode
	}{
		{name: "missing file", wantCode: errbuilder.CodeNotFound},
		{name: "malformed yaml", content: ptr("name: [unterminated"), wantCode: errbuilder.CodeInvalidArgument},
		{name: "unknown field", content: ptr("name: sample\nlatest: \"1.0\"\n"), wantCode: errbuilder.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "registry.yaml")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}
			_, err := NewRegistryFileAdapter().LoadRegistry(path)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errbuilder.CodeOf(err))
		})
	}
}

func ptr(value string) *string {
	return &value
}
