package app

import (
	"context"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"toolchain-fixtures/internal/apps"
	"toolchain-fixtures/internal/core"
	"toolchain-fixtures/internal/types"
)

// LoadRegistry builds and validates the registry selected by req.
func (s Service) LoadRegistry(ctx context.Context, req RegistryRequest) (core.Registry, error) {
	doc, err := s.registryDocument(req)
	if err != nil {
		return core.Registry{}, err
	}
	registry, err := core.NewRegistry(doc)
	if err != nil {
		return core.Registry{}, err
	}
	if err := s.Validator.Validate(ctx, registry); err != nil {
		return core.Registry{}, err
	}
	log.Ctx(ctx).Debug().Str("registry", registry.Name()).Str("latest", string(registry.LatestVersion())).Msg("registry loaded")
	return registry, nil
}

func (s Service) registryDocument(req RegistryRequest) (types.RegistryDocument, error) {
	if path := strings.TrimSpace(req.RegistryPath); path != "" {
		if s.RegistrySource == nil {
			return types.RegistryDocument{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("registry source is not configured")
		}
		return s.RegistrySource.LoadRegistry(path)
	}
	name := strings.TrimSpace(req.App)
	if name == "" {
		name = apps.YouTubeName
	}
	root, err := resolveRepoRoot(req.RepoRoot)
	if err != nil {
		return types.RegistryDocument{}, err
	}
	return apps.Builtin(name, apps.Layout{RepoRoot: root})
}

func resolveRepoRoot(root string) (string, error) {
	if trimmed := strings.TrimSpace(root); trimmed != "" {
		return trimmed, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to determine working directory").
			WithCause(err)
	}
	return wd, nil
}
