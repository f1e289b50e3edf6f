package types

// CheckoutRequest describes a manifest-driven platform source checkout.
type CheckoutRequest struct {
	Root     string
	Manifest string
	Jobs     int
}
