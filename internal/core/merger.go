package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"reqlock/internal/types"
)

// MergeDirectives folds the flattened directive sequence into one
// requirement per package name, ordered by first appearance. Constraints
// collected for the same name across files are concatenated; entries that
// only ever appeared in constraints files stay marked ConstraintOnly so
// the resolver can bound without installing them.
func MergeDirectives(directives []types.Directive) ([]types.Requirement, error) {
	merged := map[string]*types.Requirement{}
	var order []string

	for _, directive := range directives {
		if directive.Kind != types.DirectiveKindRequirement && directive.Kind != types.DirectiveKindConstraintFile {
			continue
		}
		requirement := directive.Requirement
		existing, ok := merged[requirement.Name]
		if !ok {
			copied := requirement
			copied.Constraints = append([]types.Constraint(nil), requirement.Constraints...)
			merged[requirement.Name] = &copied
			order = append(order, requirement.Name)
			continue
		}
		existing.Constraints = append(existing.Constraints, requirement.Constraints...)
		existing.Extras = mergeExtras(existing.Extras, requirement.Extras)
		if !requirement.ConstraintOnly {
			existing.ConstraintOnly = false
		}
		if existing.Marker == "" {
			existing.Marker = requirement.Marker
		}
	}

	out := make([]types.Requirement, 0, len(order))
	for _, name := range order {
		requirement := *merged[name]
		requirement.Constraints = dropBareDuplicates(requirement.Constraints)
		if err := checkSatisfiable(requirement); err != nil {
			return nil, err
		}
		out = append(out, requirement)
	}
	return out, nil
}

// dropBareDuplicates removes bare-name placeholder constraints once a
// versioned constraint exists for the package.
func dropBareDuplicates(constraints []types.Constraint) []types.Constraint {
	hasVersioned := false
	for _, constraint := range constraints {
		if constraint.Op != types.ConstraintOpNone {
			hasVersioned = true
			break
		}
	}
	if !hasVersioned {
		if len(constraints) > 1 {
			return constraints[:1]
		}
		return constraints
	}
	var out []types.Constraint
	for _, constraint := range constraints {
		if constraint.Op == types.ConstraintOpNone {
			continue
		}
		out = append(out, constraint)
	}
	return out
}

// checkSatisfiable rejects constraint sets that no version could satisfy.
// Two different exact pins always conflict. When an exact pin exists, the
// pinned version must additionally pass every other specifier collected
// for the package; the conflict error names both sources so the operator
// can find the offending lines.
func checkSatisfiable(requirement types.Requirement) error {
	var pin *types.Constraint
	for i := range requirement.Constraints {
		constraint := &requirement.Constraints[i]
		if constraint.Op != types.ConstraintOpEq && constraint.Op != types.ConstraintOpArb {
			continue
		}
		if pin == nil {
			pin = constraint
			continue
		}
		if pin.Version != constraint.Version {
			return conflictError(requirement.Name, *pin, *constraint)
		}
	}
	if pin == nil || pin.Op == types.ConstraintOpArb {
		return nil
	}
	pinned, err := pep440.Parse(pin.Version)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: invalid version %q for %s", pin.Source, pin.Version, requirement.Name)).
			WithCause(err)
	}
	for _, constraint := range requirement.Constraints {
		if constraint == *pin || constraint.Op == types.ConstraintOpNone {
			continue
		}
		spec, err := pep440.NewSpecifiers(toPep440Spec(constraint))
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s: invalid specifier %s%s for %s", constraint.Source, constraint.Op, constraint.Version, requirement.Name)).
				WithCause(err)
		}
		if !spec.Check(pinned) {
			return conflictError(requirement.Name, *pin, constraint)
		}
	}
	return nil
}

func conflictError(name string, a types.Constraint, b types.Constraint) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf(
			"unsatisfiable constraints for %s: %s%s (%s) vs %s%s (%s)",
			name, a.Op, a.Version, a.Source, b.Op, b.Version, b.Source,
		))
}

func mergeExtras(existing []string, incoming []string) []string {
	seen := map[string]struct{}{}
	for _, extra := range existing {
		seen[extra] = struct{}{}
	}
	for _, extra := range incoming {
		if _, ok := seen[extra]; ok {
			continue
		}
		seen[extra] = struct{}{}
		existing = append(existing, extra)
	}
	return existing
}
