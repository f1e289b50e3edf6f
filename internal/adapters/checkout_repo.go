package adapters

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"toolchain-fixtures/internal/ports"
	"toolchain-fixtures/internal/shared"
	"toolchain-fixtures/internal/types"
)

const DefaultPlatformManifestURL = "https://android.googlesource.com/platform/manifest"

// RepoCheckoutAdapter checks out a platform source tree with the repo tool.
type RepoCheckoutAdapter struct {
	Binary      string
	ManifestURL string
}

func NewRepoCheckoutAdapter(binary string, manifestURL string) RepoCheckoutAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = "repo"
	}
	if strings.TrimSpace(manifestURL) == "" {
		manifestURL = DefaultPlatformManifestURL
	}
	return RepoCheckoutAdapter{Binary: binary, ManifestURL: manifestURL}
}

func (a RepoCheckoutAdapter) Checkout(ctx context.Context, req types.CheckoutRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(req.Root) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("checkout root is empty")
	}
	if strings.TrimSpace(req.Manifest) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is empty")
	}
	if req.Jobs < 1 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("jobs must be positive, got %d", req.Jobs))
	}

	manifestsDir := filepath.Join(req.Root, ".repo", "manifests")
	if err := os.MkdirAll(manifestsDir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create manifests directory").
			WithCause(err)
	}
	manifestName := filepath.Base(req.Manifest)
	if err := copyManifest(req.Manifest, filepath.Join(manifestsDir, manifestName)); err != nil {
		return err
	}

	if err := a.runRepo(ctx, req.Root, "init", "-u", a.ManifestURL, "-m", manifestName, "--depth=1"); err != nil {
		return err
	}
	return a.runRepo(ctx, req.Root, "sync", "-dq", "-j"+strconv.Itoa(req.Jobs))
}

func (a RepoCheckoutAdapter) runRepo(ctx context.Context, dir string, args ...string) error {
	log.Ctx(ctx).Info().Str("dir", dir).Strs("args", args).Msg("running repo")
	cmd := exec.CommandContext(ctx, a.Binary, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("repo %s failed", args[0])).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

// copyManifest copies srcPath to destPath. A manifest that already is
// destPath is left untouched.
func copyManifest(srcPath string, destPath string) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	defer srcFile.Close()
	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat manifest").
			WithCause(err)
	}
	if destInfo, err := os.Stat(destPath); err == nil && os.SameFile(srcInfo, destInfo) {
		return nil
	}
	destFile, err := os.Create(destPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create manifest copy").
			WithCause(err)
	}
	if _, err := io.Copy(destFile, srcFile); err != nil {
		_ = destFile.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy manifest").
			WithCause(err)
	}
	if err := destFile.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close manifest copy").
			WithCause(err)
	}
	return nil
}

var _ ports.CheckoutPort = RepoCheckoutAdapter{}
