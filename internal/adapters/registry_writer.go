package adapters

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"toolchain-fixtures/internal/ports"
	"toolchain-fixtures/internal/types"
)

// RegistryWriterAdapter writes a registry as YAML to Path, or to Out when
// Path is empty or "-".
type RegistryWriterAdapter struct {
	Path string
	Out  io.Writer
}

func NewRegistryWriterAdapter(path string, out io.Writer) RegistryWriterAdapter {
	return RegistryWriterAdapter{Path: path, Out: out}
}

func (a RegistryWriterAdapter) WriteRegistry(doc types.RegistryDocument) error {
	data, err := MarshalYAML(doc)
	if err != nil {
		return err
	}
	if a.Path == "" || a.Path == "-" {
		if a.Out == nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("registry output is empty")
		}
		if _, err := a.Out.Write(data); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write registry").
				WithCause(err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create registry directory").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write registry file").
			WithCause(err)
	}
	return nil
}

// MarshalYAML renders value as YAML with two-space indentation.
func MarshalYAML(value any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode yaml").
			WithCause(err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode yaml").
			WithCause(err)
	}
	return buf.Bytes(), nil
}

var _ ports.RegistryWriterPort = RegistryWriterAdapter{}
