// Package apps holds the built-in configuration registries of the
// applications used as optimizer benchmarks.
package apps

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"toolchain-fixtures/internal/types"
)

const (
	androidLAPI = "21"
	androidMAPI = "23"
)

// Layout locates the checkout that registry paths are rooted at.
type Layout struct {
	RepoRoot string
}

func (l Layout) ThirdParty() string {
	return filepath.Join(l.RepoRoot, "third_party")
}

func (l Layout) IgnoreWarningsRules() string {
	return filepath.Join(l.RepoRoot, "src", "test", "ignorewarnings.rules")
}

var builtins = map[string]func(Layout) types.RegistryDocument{
	YouTubeName: YouTube,
}

// Names returns the names of the built-in registries.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns the document of the built-in registry called name.
func Builtin(name string, layout Layout) (types.RegistryDocument, error) {
	build, ok := builtins[name]
	if !ok {
		return types.RegistryDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unknown application registry: %s", name))
	}
	return build(layout), nil
}
