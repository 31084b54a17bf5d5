package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqlock/internal/ports"
)

// BuildIndex crawls a simple index and writes the version snapshot that
// resolve runs consume. Building is the only operation that touches the
// network; everything downstream is deterministic against the snapshot.
func (s Service) BuildIndex(ctx context.Context, req BuildIndexRequest) (BuildIndexResult, error) {
	output := strings.TrimSpace(req.Output)
	if output == "" {
		return BuildIndexResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	index, err := s.IndexBuilder.Build(ctx, ports.IndexBuildRequest{
		SimpleIndex:      req.SimpleIndex,
		User:             req.User,
		APIKey:           req.APIKey,
		Packages:         req.Packages,
		MaxPackages:      req.MaxPackages,
		Workers:          req.Workers,
		HTTPTimeoutSec:   req.HTTPTimeoutSec,
		HTTPRetries:      req.HTTPRetries,
		HTTPRetryDelayMs: req.HTTPRetryDelayMs,
	})
	if err != nil {
		return BuildIndexResult{}, err
	}
	if err := s.IndexWriter.Write(output, index); err != nil {
		return BuildIndexResult{}, err
	}
	log.Ctx(ctx).Info().Int("packages", len(index.Packages)).Str("output", output).Msg("package index written")
	return BuildIndexResult{
		OutputPath:   output,
		PackageCount: len(index.Packages),
	}, nil
}
