package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"toolchain-fixtures/internal/types"
)

type RegistryValidator struct{}

func NewRegistryValidator() RegistryValidator {
	return RegistryValidator{}
}

func (v RegistryValidator) Validate(ctx context.Context, registry Registry) error {
	assert.NotEmpty(ctx, registry.Name(), "registry name must be set")
	assert.NotEmpty(ctx, string(registry.LatestVersion()), "latest version must be set")
	if !registry.HasVersion(registry.LatestVersion()) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("latest version %s is not defined", registry.LatestVersion()))
	}
	for _, version := range registry.Versions() {
		if _, err := parseVersionKey(version); err != nil {
			return err
		}
		variants, err := registry.Variants(version)
		if err != nil {
			return err
		}
		if len(variants) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("version %s defines no variants", version))
		}
		for _, variant := range variants {
			if !variant.Valid() {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("version %s has unknown variant %s", version, variant))
			}
			config, err := registry.Configuration(version, variant)
			if err != nil {
				return err
			}
			if err := validateConfiguration(config); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("%s %s %s: %s", registry.Name(), version, variant, errorMsg(err))).
					WithCause(err)
			}
		}
	}
	for _, version := range registry.ProfiledVersions() {
		if !registry.HasVersion(version) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("memory profile references undefined version %s", version))
		}
		profile, err := registry.MemoryProfile(version)
		if err != nil {
			return err
		}
		if err := ValidateMemoryProfile(profile); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("memory profile %s: %s", version, errorMsg(err))).
				WithCause(err)
		}
	}
	log.Ctx(ctx).Debug().Str("registry", registry.Name()).Int("versions", len(registry.Versions())).Msg("registry validated")
	return nil
}

// ValidateMemoryProfile checks that a profile describes a usable search:
// oom threshold < lower bound < upper bound and a positive step.
func ValidateMemoryProfile(profile types.MemoryProfile) error {
	if profile.FindXmxRange <= 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("find_xmx_range must be positive")
	}
	if profile.FindXmxMin <= 0 || profile.FindXmxMin >= profile.FindXmxMax {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("find_xmx_min %d must be positive and below find_xmx_max %d", profile.FindXmxMin, profile.FindXmxMax))
	}
	if profile.OOMThreshold >= profile.FindXmxMin {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("oom_threshold %d must be below find_xmx_min %d", profile.OOMThreshold, profile.FindXmxMin))
	}
	return nil
}

func validateConfiguration(config types.BuildConfiguration) error {
	if len(config.Inputs) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("inputs must not be empty")
	}
	if err := validatePaths("inputs", config.Inputs); err != nil {
		return err
	}
	if err := validatePaths("libraries", config.Libraries); err != nil {
		return err
	}
	if err := validatePaths("pgconf", config.Pgconf); err != nil {
		return err
	}
	if api, err := strconv.Atoi(strings.TrimSpace(config.MinAPI)); err != nil || api <= 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("min_api must be a positive integer, got %q", config.MinAPI))
	}
	for _, property := range config.SystemProperties {
		if !strings.HasPrefix(property, "-D") || len(property) == len("-D") {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("system property must have the form -Dkey=value: %q", property))
		}
	}
	if libs := config.AndroidJava8Libs; libs != nil {
		if strings.TrimSpace(libs.Config) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("android_java8_libs.config must not be empty")
		}
		if strings.TrimSpace(libs.Library) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("android_java8_libs.library must not be empty")
		}
		if len(libs.Program) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("android_java8_libs.program must not be empty")
		}
		if err := validatePaths("android_java8_libs.program", libs.Program); err != nil {
			return err
		}
		if err := validatePaths("android_java8_libs.pgconf", libs.Pgconf); err != nil {
			return err
		}
	}
	return nil
}

func validatePaths(field string, paths []string) error {
	for i, path := range paths {
		if strings.TrimSpace(path) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s[%d] must not be empty", field, i))
		}
	}
	return nil
}

func errorMsg(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
