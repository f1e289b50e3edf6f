package app

import "context"

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	registry, err := s.LoadRegistry(ctx, req.Registry)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		Name:          registry.Name(),
		LatestVersion: registry.LatestVersion(),
		Versions:      registry.Versions(),
	}, nil
}
