package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/shared"
	"reqlock/internal/types"
)

// opTokens is the ordered list of constraint operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false matches
// (e.g. "===" before "==", ">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpArb,
	types.ConstraintOpEq,
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpNe,
	types.ConstraintOpCompat,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

// namePattern is the PEP 508 package name grammar: letters and digits,
// optionally separated by runs of ".", "-", "_".
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ParseConstraint splits a raw "name==version" clause into a Constraint.
// The package name is PEP 503 normalized. When no operator is present the
// clause is treated as a bare name reference with ConstraintOpNone.
func ParseConstraint(raw string, source string) (types.Constraint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty constraint")
	}
	for _, op := range opTokens {
		if strings.Contains(raw, string(op)) {
			parts := strings.SplitN(raw, string(op), 2)
			name := strings.TrimSpace(parts[0])
			version := strings.TrimSpace(parts[1])
			if name == "" || version == "" {
				return types.Constraint{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid constraint: %s", raw))
			}
			if !namePattern.MatchString(name) {
				return types.Constraint{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid package name: %s", name))
			}
			return types.Constraint{
				Name:    shared.NormalizePipName(name),
				Op:      op,
				Version: version,
				Source:  source,
			}, nil
		}
	}
	if !namePattern.MatchString(raw) {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package name: %s", raw))
	}
	return types.Constraint{
		Name:    shared.NormalizePipName(raw),
		Op:      types.ConstraintOpNone,
		Version: "",
		Source:  source,
	}, nil
}
