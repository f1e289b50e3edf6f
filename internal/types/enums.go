package types

// BuildVariant names one build configuration of an application version.
type BuildVariant string

const (
	BuildVariantDeploy     BuildVariant = "deploy"
	BuildVariantProguarded BuildVariant = "proguarded"
)

var buildVariants = []BuildVariant{
	BuildVariantDeploy,
	BuildVariantProguarded,
}

// BuildVariants returns the closed set of known variants in canonical order.
func BuildVariants() []BuildVariant {
	return append([]BuildVariant(nil), buildVariants...)
}

// Valid reports whether v is one of the known variants.
func (v BuildVariant) Valid() bool {
	for _, known := range buildVariants {
		if v == known {
			return true
		}
	}
	return false
}

type ProbeOutcome string

const (
	ProbeOutcomeSuccess     ProbeOutcome = "success"
	ProbeOutcomeOutOfMemory ProbeOutcome = "out-of-memory"
)
