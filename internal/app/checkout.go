package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"toolchain-fixtures/internal/shared"
	"toolchain-fixtures/internal/types"
)

// Checkout syncs a platform source tree. Root defaults to
// <repo root>/build/aosp, Manifest to <repo root>/third_party/aosp_manifest.xml
// and Jobs to shared.DefaultJobs.
func (s Service) Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error) {
	if s.NewCheckout == nil {
		return CheckoutResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("checkout tool is not configured")
	}
	repoRoot, err := resolveRepoRoot(req.RepoRoot)
	if err != nil {
		return CheckoutResult{}, err
	}
	root := strings.TrimSpace(req.Root)
	if root == "" {
		root = DefaultCheckoutRoot(repoRoot)
	}
	manifest := strings.TrimSpace(req.Manifest)
	if manifest == "" {
		manifest = DefaultManifest(repoRoot)
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = shared.DefaultJobs()
	}

	checkout := s.NewCheckout(req.RepoBinary, req.ManifestURL)
	if err := checkout.Checkout(ctx, types.CheckoutRequest{
		Root:     root,
		Manifest: manifest,
		Jobs:     jobs,
	}); err != nil {
		return CheckoutResult{}, err
	}
	return CheckoutResult{Root: root, Manifest: manifest, Jobs: jobs}, nil
}

func DefaultCheckoutRoot(repoRoot string) string {
	return filepath.Join(repoRoot, "build", "aosp")
}

func DefaultManifest(repoRoot string) string {
	return filepath.Join(repoRoot, "third_party", "aosp_manifest.xml")
}
