package analyzer

import (
	"fmt"
	"go/types"
	"path"
	"strings"
)

// resolverMatcher selects resolver types by glob pattern. Patterns
// containing a dot are matched against "importpath.Type", others against
// the bare type name.
type resolverMatcher struct {
	patterns []string
}

func newResolverMatcher(patterns []string) (resolverMatcher, error) {
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return resolverMatcher{}, fmt.Errorf("invalid resolver pattern %q: %w", p, err)
		}
	}
	return resolverMatcher{patterns: patterns}, nil
}

func (m resolverMatcher) Match(named *types.Named) bool {
	obj := named.Obj()
	if !obj.Exported() || obj.Pkg() == nil {
		return false
	}
	qualified := obj.Pkg().Path() + "." + obj.Name()
	for _, p := range m.patterns {
		target := obj.Name()
		if strings.Contains(p, ".") {
			target = qualified
		}
		if ok, _ := path.Match(p, target); ok {
			return true
		}
	}
	return false
}
