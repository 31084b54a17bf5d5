package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/core"
	"reqlock/internal/types"
)

// Validate parses the manifest tree, merges it, and checks every
// invariant that can be checked without an index: syntax, include
// acyclicity, name validity, and constraint satisfiability.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	manifest := strings.TrimSpace(req.Manifest)
	if manifest == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	flattener := core.NewFlattener(s.Manifests)
	directives, err := flattener.Flatten(ctx, manifest)
	if err != nil {
		return ValidateResult{}, err
	}
	requirements, err := core.MergeDirectives(directives)
	if err != nil {
		return ValidateResult{}, err
	}
	overrides, err := s.Overrides.Load(strings.TrimSpace(req.Overrides))
	if err != nil {
		return ValidateResult{}, err
	}
	if err := core.ValidateOverrides(ctx, overrides, s.Clock()); err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		Manifest:     manifest,
		Requirements: len(requirements),
		Pinned:       countPinned(requirements),
	}, nil
}

func countPinned(requirements []types.Requirement) int {
	pinned := 0
	for _, requirement := range requirements {
		for _, constraint := range requirement.Constraints {
			if constraint.Op == types.ConstraintOpEq || constraint.Op == types.ConstraintOpArb {
				pinned++
				break
			}
		}
	}
	return pinned
}
