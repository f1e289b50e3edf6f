package adapters

import (
	"bytes"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"toolchain-fixtures/internal/ports"
	"toolchain-fixtures/internal/types"
)

type RegistryFileAdapter struct{}

func NewRegistryFileAdapter() RegistryFileAdapter {
	return RegistryFileAdapter{}
}

func (a RegistryFileAdapter) LoadRegistry(path string) (types.RegistryDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RegistryDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("registry file not found").
			WithCause(err)
	}
	var doc types.RegistryDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return types.RegistryDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse registry yaml").
			WithCause(err)
	}
	return doc, nil
}

var _ ports.RegistrySourcePort = RegistryFileAdapter{}
