package core

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"toolchain-fixtures/internal/types"
)

type versionScheme int

const (
	versionSchemePEP440 versionScheme = iota
	versionSchemeDebian
)

// parsedVersion is a version key parsed under the first scheme that
// accepts it. Release numbers such as "17.19" are PEP 440 versions; keys
// carrying Debian-style revisions fall back to Debian ordering.
type parsedVersion struct {
	scheme versionScheme
	pep    pep440.Version
	deb    debversion.Version
}

// versionCache memoizes parsed version keys so sorting a registry does not
// reparse every key on each comparison.
type versionCache struct {
	parsed map[types.VersionKey]parsedVersion
}

func newVersionCache() *versionCache {
	return &versionCache{parsed: map[types.VersionKey]parsedVersion{}}
}

// parse returns the parsed form of key, caching the result.
func (c *versionCache) parse(key types.VersionKey) (parsedVersion, error) {
	if parsed, ok := c.parsed[key]; ok {
		return parsed, nil
	}
	parsed, err := parseVersionKey(key)
	if err != nil {
		return parsedVersion{}, err
	}
	c.parsed[key] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 comparing two version keys. Keys order by
// scheme first (PEP 440, then Debian, then unparseable keys), then by
// version within the scheme. Unparseable keys compare as strings.
func (c *versionCache) compare(a types.VersionKey, b types.VersionKey) int {
	v1, err1 := c.parse(a)
	v2, err2 := c.parse(b)
	if rank1, rank2 := schemeRank(v1, err1), schemeRank(v2, err2); rank1 != rank2 {
		return cmp.Compare(rank1, rank2)
	}
	if err1 != nil {
		return strings.Compare(string(a), string(b))
	}
	switch v1.scheme {
	case versionSchemePEP440:
		return v1.pep.Compare(v2.pep)
	default:
		return v1.deb.Compare(v2.deb)
	}
}

func schemeRank(parsed parsedVersion, err error) int {
	if err != nil {
		return int(versionSchemeDebian) + 1
	}
	return int(parsed.scheme)
}

func parseVersionKey(key types.VersionKey) (parsedVersion, error) {
	value := strings.TrimSpace(string(key))
	if value == "" {
		return parsedVersion{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version key is empty")
	}
	if pep, err := pep440.Parse(value); err == nil {
		return parsedVersion{scheme: versionSchemePEP440, pep: pep}, nil
	}
	deb, err := debversion.NewVersion(value)
	if err != nil {
		return parsedVersion{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version key: %s", key)).
			WithCause(err)
	}
	return parsedVersion{scheme: versionSchemeDebian, deb: deb}, nil
}

// sortVersionKeys returns a copy of keys in ascending version order.
func sortVersionKeys(keys []types.VersionKey) []types.VersionKey {
	cache := newVersionCache()
	ordered := append([]types.VersionKey(nil), keys...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return cache.compare(ordered[i], ordered[j]) < 0
	})
	return ordered
}

// CompareVersionKeys orders two version keys: -1 if a < b, 0 if equal,
// 1 if a > b.
func CompareVersionKeys(a types.VersionKey, b types.VersionKey) int {
	return newVersionCache().compare(a, b)
}
