package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/adapters"
	"reqlock/internal/core"
)

// Resolve runs the full pipeline: flatten, merge, validate overrides,
// resolve every requirement against the index snapshot, and write the
// lock outputs.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	manifest := strings.TrimSpace(req.Manifest)
	if manifest == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	index := strings.TrimSpace(req.Index)
	if index == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package index file is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}

	flattener := core.NewFlattener(s.Manifests)
	directives, err := flattener.Flatten(ctx, manifest)
	if err != nil {
		return ResolveResult{}, err
	}
	requirements, err := core.MergeDirectives(directives)
	if err != nil {
		return ResolveResult{}, err
	}
	overrides, err := s.Overrides.Load(strings.TrimSpace(req.Overrides))
	if err != nil {
		return ResolveResult{}, err
	}
	if err := core.ValidateOverrides(ctx, overrides, s.Clock()); err != nil {
		return ResolveResult{}, err
	}

	resolver := core.NewResolverCore(adapters.NewIndexFileAdapter(index))
	result, err := resolver.Resolve(ctx, requirements, overrides)
	if err != nil {
		return ResolveResult{}, err
	}

	output := adapters.NewOutputFileAdapter(outputDir)
	if err := output.WriteLock(result.Locks); err != nil {
		return ResolveResult{}, err
	}
	if err := output.WriteResolutionReport(result.Resolution); err != nil {
		return ResolveResult{}, err
	}
	if req.EmitPinned {
		if err := output.WritePinnedRequirements(result.Locks); err != nil {
			return ResolveResult{}, err
		}
	}
	if req.EmitDebs {
		entries, err := adapters.ToDebEntries(result.Locks)
		if err != nil {
			return ResolveResult{}, err
		}
		if err := adapters.NewDebExportAdapter(outputDir).WriteAptInstallList(entries); err != nil {
			return ResolveResult{}, err
		}
	}
	return ResolveResult{
		Manifest:  manifest,
		Locked:    len(result.Locks),
		OutputDir: outputDir,
	}, nil
}
