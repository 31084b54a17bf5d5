package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqlock/internal/policies"
	"reqlock/internal/ports"
	"reqlock/internal/shared"
	"reqlock/internal/types"
)

type ResolverCore struct {
	Index ports.PackageIndexPort
}

type ResolveResult struct {
	Locks      []types.LockEntry
	Resolution types.ResolutionReport
}

func NewResolverCore(index ports.PackageIndexPort) ResolverCore {
	return ResolverCore{Index: index}
}

// Resolve picks an exact version for every merged requirement. A package
// that cannot be satisfied fails the run unless an override directive
// names it; overrides are applied once and recorded in the resolution
// report. Constraint-only entries bound other requirements during merge
// and produce no lock entry of their own.
func (r ResolverCore) Resolve(ctx context.Context, requirements []types.Requirement, overrides []types.OverrideDirective) (ResolveResult, error) {
	if r.Index == nil {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a package index port")
	}
	overrideMap := mapOverrides(overrides)
	result := ResolveResult{
		Resolution: types.ResolutionReport{Records: []types.ResolutionRecord{}},
	}
	for _, requirement := range requirements {
		if requirement.ConstraintOnly {
			continue
		}
		entry, record, err := r.resolveRequirement(ctx, requirement, overrideMap)
		if err != nil {
			return ResolveResult{}, err
		}
		if record.Action != "" {
			result.Resolution.Records = append(result.Resolution.Records, record)
		}
		result.Locks = append(result.Locks, entry)
	}
	sort.Slice(result.Locks, func(i, j int) bool {
		return result.Locks[i].Name < result.Locks[j].Name
	})
	log.Ctx(ctx).Debug().Int("resolved", len(result.Locks)).Msg("resolver completed")
	return result, nil
}

func (r ResolverCore) resolveRequirement(ctx context.Context, requirement types.Requirement, overrides map[string]types.OverrideDirective) (types.LockEntry, types.ResolutionRecord, error) {
	available, err := r.Index.AvailableVersions(requirement.Name)
	if err != nil {
		return types.LockEntry{}, types.ResolutionRecord{}, err
	}
	version, err := bestCompatibleVersion(requirement, available)
	if err == nil {
		return types.LockEntry{Name: requirement.Name, Version: version}, types.ResolutionRecord{}, nil
	}

	directive, ok := overrides[requirement.Name]
	if !ok {
		return types.LockEntry{}, types.ResolutionRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("conflict without override directive: %s", requirement.Name)).
			WithCause(err)
	}

	updated, record, err := policies.ApplyOverride(requirement, directive)
	if err != nil {
		return types.LockEntry{}, types.ResolutionRecord{}, err
	}
	available, err = r.Index.AvailableVersions(updated.Name)
	if err != nil {
		return types.LockEntry{}, types.ResolutionRecord{}, err
	}
	version, err = bestCompatibleVersion(updated, available)
	if err != nil {
		return types.LockEntry{}, types.ResolutionRecord{}, err
	}
	log.Ctx(ctx).Debug().Str("package", requirement.Name).Msg("override directive applied")
	return types.LockEntry{Name: updated.Name, Version: version}, record, nil
}

func mapOverrides(overrides []types.OverrideDirective) map[string]types.OverrideDirective {
	mapped := map[string]types.OverrideDirective{}
	for _, directive := range overrides {
		if directive.Package == "" {
			continue
		}
		mapped[shared.NormalizePipName(directive.Package)] = directive
	}
	return mapped
}
