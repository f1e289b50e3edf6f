package app

import (
	"io"

	"toolchain-fixtures/internal/adapters"
	"toolchain-fixtures/internal/core"
	"toolchain-fixtures/internal/ports"
)

type Service struct {
	RegistrySource    ports.RegistrySourcePort
	Validator         core.RegistryValidator
	NewRegistryWriter func(path string, out io.Writer) ports.RegistryWriterPort
	NewCheckout       func(binary string, manifestURL string) ports.CheckoutPort
	NewHeapProbe      func(command []string, systemProperties []string, dir string) ports.HeapProbePort
}

func NewService() Service {
	return Service{
		RegistrySource: adapters.NewRegistryFileAdapter(),
		Validator:      core.NewRegistryValidator(),
		NewRegistryWriter: func(path string, out io.Writer) ports.RegistryWriterPort {
			return adapters.NewRegistryWriterAdapter(path, out)
		},
		NewCheckout: func(binary string, manifestURL string) ports.CheckoutPort {
			return adapters.NewRepoCheckoutAdapter(binary, manifestURL)
		},
		NewHeapProbe: func(command []string, systemProperties []string, dir string) ports.HeapProbePort {
			return adapters.NewCommandHeapProbeAdapter(command, systemProperties, dir)
		},
	}
}
