package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/types"
)

const (
	ActionForce   = "force"
	ActionRelax   = "relax"
	ActionReplace = "replace"
	ActionBlock   = "block"
)

// ApplyOverride rewrites a requirement according to an override
// directive. Force pins the package to the directive's value, relax
// drops every constraint, replace swaps the package name, and block
// fails the run outright.
func ApplyOverride(requirement types.Requirement, directive types.OverrideDirective) (types.Requirement, types.ResolutionRecord, error) {
	record := types.ResolutionRecord{
		Package:   directive.Package,
		Action:    directive.Action,
		Value:     directive.Value,
		Reason:    directive.Reason,
		Owner:     directive.Owner,
		ExpiresAt: directive.ExpiresAt,
	}

	switch strings.ToLower(directive.Action) {
	case ActionForce:
		if directive.Value == "" {
			return types.Requirement{}, record, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("force directive requires value")
		}
		requirement.Constraints = []types.Constraint{{
			Name:    requirement.Name,
			Op:      types.ConstraintOpEq,
			Version: directive.Value,
			Source:  "override:force",
		}}
		return requirement, record, nil
	case ActionRelax:
		requirement.Constraints = []types.Constraint{}
		return requirement, record, nil
	case ActionReplace:
		if directive.Value == "" {
			return types.Requirement{}, record, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("replace directive requires value")
		}
		requirement.Name = directive.Value
		requirement.Constraints = []types.Constraint{}
		return requirement, record, nil
	case ActionBlock:
		return types.Requirement{}, record, errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("package blocked by directive: %s", requirement.Name))
	default:
		return types.Requirement{}, record, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown override action: %s", directive.Action))
	}
}
