package core

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqlock/internal/ports"
	"reqlock/internal/types"
)

// maxIncludeDepth bounds include nesting so a bad manifest cannot drive
// the flattener into unbounded recursion.
const maxIncludeDepth = 32

type Flattener struct {
	Manifests ports.ManifestPort
}

func NewFlattener(manifests ports.ManifestPort) Flattener {
	return Flattener{Manifests: manifests}
}

// Flatten expands a manifest and every transitively included file into a
// single ordered directive sequence. Include paths are resolved relative
// to the directory of the file that includes them. Inclusion cycles are
// an error, not an infinite loop.
//
// Requirement directives reached through a constraint-file include are
// rewritten to constraint-file kind, since constraints files only bound
// versions and never request installation.
func (f Flattener) Flatten(ctx context.Context, path string) ([]types.Directive, error) {
	if f.Manifests == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("flattener requires a manifest port")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid manifest path: %s", path)).
			WithCause(err)
	}
	visiting := map[string]bool{}
	directives, err := f.flattenFile(abs, false, visiting, 0)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Str("manifest", path).Int("directives", len(directives)).Msg("manifest flattened")
	return directives, nil
}

func (f Flattener) flattenFile(abs string, asConstraints bool, visiting map[string]bool, depth int) ([]types.Directive, error) {
	if depth > maxIncludeDepth {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("include depth exceeds %d: %s", maxIncludeDepth, abs))
	}
	if visiting[abs] {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("inclusion cycle detected at %s", abs))
	}
	visiting[abs] = true
	defer delete(visiting, abs)

	lines, err := f.Manifests.ReadLines(abs)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseLines(abs, lines)
	if err != nil {
		return nil, err
	}

	var out []types.Directive
	for _, directive := range parsed {
		switch directive.Kind {
		case types.DirectiveKindRequirement:
			if asConstraints {
				directive.Kind = types.DirectiveKindConstraintFile
				directive.Requirement.ConstraintOnly = true
			}
			out = append(out, directive)
		case types.DirectiveKindInclude, types.DirectiveKindConstraintFile:
			included := directive.Include
			if !filepath.IsAbs(included) {
				included = filepath.Join(filepath.Dir(abs), included)
			}
			nested, err := f.flattenFile(
				filepath.Clean(included),
				asConstraints || directive.Kind == types.DirectiveKindConstraintFile,
				visiting,
				depth+1,
			)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
	}
	return out, nil
}
