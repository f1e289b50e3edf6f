package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	registry, err := s.LoadRegistry(ctx, req.Registry)
	if err != nil {
		return ExportResult{}, err
	}
	if s.NewRegistryWriter == nil {
		return ExportResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry writer is not configured")
	}
	writer := s.NewRegistryWriter(req.Output, req.Out)
	if err := writer.WriteRegistry(registry.Document()); err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Name: registry.Name(), Output: req.Output}, nil
}
