package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"reqlock/internal/types"
)

// versionCache memoizes parsed version objects to avoid repeated parsing
// during constraint evaluation and candidate sorting.
type versionCache struct {
	versions   map[string]pep440.Version
	specifiers map[string]pep440.Specifiers
}

func newVersionCache() *versionCache {
	return &versionCache{
		versions:   map[string]pep440.Version{},
		specifiers: map[string]pep440.Specifiers{},
	}
}

// version returns a parsed PEP 440 version, caching the result.
func (c *versionCache) version(value string) (pep440.Version, error) {
	if parsed, ok := c.versions[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.versions[value] = parsed
	return parsed, nil
}

// specifiers returns parsed PEP 440 specifiers, caching the result.
func (c *versionCache) spec(value string) (pep440.Specifiers, error) {
	if parsed, ok := c.specifiers[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.NewSpecifiers(value)
	if err != nil {
		return pep440.Specifiers{}, err
	}
	c.specifiers[value] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 for two version strings. Returns 0 on
// parse errors so broken versions sort stably instead of panicking.
func (c *versionCache) compare(a string, b string) int {
	v1, err := c.version(a)
	if err != nil {
		return 0
	}
	v2, err := c.version(b)
	if err != nil {
		return 0
	}
	return v1.Compare(v2)
}

// bestCompatibleVersion selects the highest version from available that
// satisfies all of the requirement's constraints. Returns an error if no
// compatible version exists.
func bestCompatibleVersion(requirement types.Requirement, available []string) (string, error) {
	if len(available) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", requirement.Name))
	}
	cache := newVersionCache()
	specifiers, arbitrary, err := prepareConstraints(requirement.Constraints, cache)
	if err != nil {
		return "", err
	}
	var candidates []string
	for _, version := range available {
		ok, err := satisfiesAll(version, specifiers, arbitrary, cache)
		if err != nil {
			return "", err
		}
		if ok {
			candidates = append(candidates, version)
		}
	}
	if len(candidates) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no compatible version for %s", requirement.Name))
	}
	sort.Slice(candidates, func(i, j int) bool {
		return cache.compare(candidates[i], candidates[j]) > 0
	})
	return candidates[0], nil
}

// prepareConstraints parses each constraint's specifier upfront so it can
// be reused across candidate comparisons. Arbitrary-equality ("===")
// constraints compare as literal strings per PEP 440 and are returned
// separately.
func prepareConstraints(constraints []types.Constraint, cache *versionCache) ([]pep440.Specifiers, []string, error) {
	var specifiers []pep440.Specifiers
	var arbitrary []string
	for _, constraint := range constraints {
		if constraint.Op == types.ConstraintOpNone {
			continue
		}
		if constraint.Op == types.ConstraintOpArb {
			arbitrary = append(arbitrary, constraint.Version)
			continue
		}
		spec, err := cache.spec(toPep440Spec(constraint))
		if err != nil {
			return nil, nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s: invalid specifier %s%s for %s", constraint.Source, constraint.Op, constraint.Version, constraint.Name)).
				WithCause(err)
		}
		specifiers = append(specifiers, spec)
	}
	return specifiers, arbitrary, nil
}

// satisfiesAll checks a candidate version against all prepared specifiers.
func satisfiesAll(version string, specifiers []pep440.Specifiers, arbitrary []string, cache *versionCache) (bool, error) {
	for _, literal := range arbitrary {
		if version != literal {
			return false, nil
		}
	}
	if len(specifiers) == 0 {
		return true, nil
	}
	parsed, err := cache.version(version)
	if err != nil {
		return false, err
	}
	for _, spec := range specifiers {
		if !spec.Check(parsed) {
			return false, nil
		}
	}
	return true, nil
}

// toPep440Spec renders an internal constraint as a PEP 440 specifier
// string (e.g. ">= 1.0", "~= 2.3").
func toPep440Spec(constraint types.Constraint) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", constraint.Op, constraint.Version))
}
