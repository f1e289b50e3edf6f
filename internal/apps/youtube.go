package apps

import (
	"path/filepath"

	"toolchain-fixtures/internal/types"
)

const (
	YouTubeName          = "youtube"
	YouTubeLatestVersion = types.VersionKey("17.19")
)

// YouTube returns the registry of the YouTube release builds.
func YouTube(layout Layout) types.RegistryDocument {
	thirdParty := layout.ThirdParty()
	base := filepath.Join(thirdParty, "youtube")

	v1620Base := filepath.Join(base, "youtube.android_16.20")
	v1620Prefix := filepath.Join(v1620Base, "YouTubeRelease")
	v1719Base := filepath.Join(base, "youtube.android_17.19")
	v1719Prefix := filepath.Join(v1719Base, "YouTubeRelease")

	return types.RegistryDocument{
		Name:          YouTubeName,
		LatestVersion: YouTubeLatestVersion,
		Versions: map[types.VersionKey]types.VersionEntry{
			"16.20": {
				types.BuildVariantDeploy: {
					SanitizeLibraries: boolPtr(false),
					Inputs:            []string{v1620Prefix + "_deploy.jar"},
					Libraries: []string{
						filepath.Join(v1620Base, "legacy_YouTubeRelease_combined_library_jars_filtered.jar"),
					},
					Pgconf: []string{
						v1620Prefix + "_proguard.config",
						filepath.Join(thirdParty, "proguardsettings", "YouTubeRelease_proguard.config"),
						layout.IgnoreWarningsRules(),
					},
					MinAPI: androidLAPI,
					AndroidJava8Libs: &types.DesugarLibraries{
						Config: filepath.Join(v1620Base, "desugar_jdk_libs", "full_desugar_jdk_libs.json"),
						// desugar_jdk_libs_configuration.jar is left out on
						// purpose: 16.20 ships it inside jdk_libs_to_desugar.jar.
						Program: []string{filepath.Join(v1620Base, "desugar_jdk_libs", "jdk_libs_to_desugar.jar")},
						Library: filepath.Join(thirdParty, "android_jar", "lib-v30", "android.jar"),
						Pgconf: []string{
							filepath.Join(v1620Base, "desugar_jdk_libs", "base.pgcfg"),
							filepath.Join(v1620Base, "desugar_jdk_libs", "minify_desugar_jdk_libs.pgcfg"),
						},
					},
				},
				types.BuildVariantProguarded: {
					Inputs: []string{v1620Prefix + "_proguard.jar"},
					Pgmap:  v1620Prefix + "_proguard.map",
					MinAPI: androidLAPI,
				},
			},
			"17.19": {
				types.BuildVariantDeploy: {
					SanitizeLibraries: boolPtr(false),
					Inputs:            []string{v1719Prefix + "_deploy.jar"},
					Libraries: []string{
						filepath.Join(v1719Base, "legacy_YouTubeRelease_combined_library_jars_filtered.jar"),
					},
					Pgconf: []string{
						v1719Prefix + "_proguard.config",
						v1719Prefix + "_proguard_extra.config",
						filepath.Join(thirdParty, "proguardsettings", "YouTubeRelease_proguard.config"),
						layout.IgnoreWarningsRules(),
					},
					MinAPI: androidMAPI,
					SystemProperties: []string{
						// TODO: add -Dcom.android.tools.r8.experimental.enablecheckenumunboxed=1
						// once checked enum unboxing is re-enabled for this build.
						"-Dcom.android.tools.r8.experimental.enableconvertchecknotnull=1",
					},
					AndroidJava8Libs: &types.DesugarLibraries{
						Config: filepath.Join(v1719Base, "desugar_jdk_libs", "full_desugar_jdk_libs.json"),
						// Same as 16.20: the configuration jar is part of
						// jdk_libs_to_desugar.jar.
						Program: []string{filepath.Join(v1719Base, "desugar_jdk_libs", "jdk_libs_to_desugar.jar")},
						Library: filepath.Join(thirdParty, "android_jar", "lib-v33", "android.jar"),
						Pgconf: []string{
							filepath.Join(v1719Base, "desugar_jdk_libs", "base.pgcfg"),
							filepath.Join(v1719Base, "desugar_jdk_libs", "minify_desugar_jdk_libs.pgcfg"),
						},
					},
				},
			},
		},
		MemoryProfiles: map[types.VersionKey]types.MemoryProfile{
			// Upper bound is skipped: the build can run out of memory at
			// random in configurations that should work.
			"16.20": {
				FindXmxMin:     3150,
				FindXmxMax:     3300,
				FindXmxRange:   64,
				OOMThreshold:   3100,
				SkipFindXmxMax: true,
			},
		},
	}
}

func boolPtr(value bool) *bool {
	return &value
}
