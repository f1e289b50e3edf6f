package ports

import "toolchain-fixtures/internal/types"

// RegistrySourcePort loads a serialized configuration registry.
type RegistrySourcePort interface {
	LoadRegistry(path string) (types.RegistryDocument, error)
}

// RegistryWriterPort persists a configuration registry.
type RegistryWriterPort interface {
	WriteRegistry(doc types.RegistryDocument) error
}
