package ports

import (
	"context"

	"toolchain-fixtures/internal/types"
)

// CheckoutPort checks out a platform source tree from a manifest.
type CheckoutPort interface {
	Checkout(ctx context.Context, req types.CheckoutRequest) error
}
