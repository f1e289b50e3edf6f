package types

// VersionKey identifies an application release, e.g. "17.19".
type VersionKey string

// DesugarLibraries describes the platform library desugaring inputs that
// accompany a build configuration.
type DesugarLibraries struct {
	Config  string   `yaml:"config"`
	Program []string `yaml:"program"`
	Library string   `yaml:"library"`
	Pgconf  []string `yaml:"pgconf"`
}

// BuildConfiguration holds the inputs of one (version, variant) build.
//
// SanitizeLibraries is a tri-state: nil means the build driver default is
// used, a non-nil value overrides it.
type BuildConfiguration struct {
	Inputs            []string          `yaml:"inputs"`
	Libraries         []string          `yaml:"libraries,omitempty"`
	Pgconf            []string          `yaml:"pgconf,omitempty"`
	MinAPI            string            `yaml:"min_api"`
	Pgmap             string            `yaml:"pgmap,omitempty"`
	SanitizeLibraries *bool             `yaml:"sanitize_libraries,omitempty"`
	SystemProperties  []string          `yaml:"system_properties,omitempty"`
	AndroidJava8Libs  *DesugarLibraries `yaml:"android_java8_libs,omitempty"`
}

// MemoryProfile bounds a heap-size search for a single version. All sizes
// are in megabytes.
type MemoryProfile struct {
	FindXmxMin     int  `yaml:"find_xmx_min"`
	FindXmxMax     int  `yaml:"find_xmx_max"`
	FindXmxRange   int  `yaml:"find_xmx_range"`
	OOMThreshold   int  `yaml:"oom_threshold"`
	SkipFindXmxMax bool `yaml:"skip_find_xmx_max,omitempty"`
}

// VersionEntry is the set of variants defined for a version.
type VersionEntry map[BuildVariant]BuildConfiguration

// RegistryDocument is the serialized form of a configuration registry.
type RegistryDocument struct {
	Name           string                       `yaml:"name"`
	LatestVersion  VersionKey                   `yaml:"latest_version"`
	Versions       map[VersionKey]VersionEntry  `yaml:"versions"`
	MemoryProfiles map[VersionKey]MemoryProfile `yaml:"memory_profiles,omitempty"`
}
