package ports

import (
	"context"

	"reqlock/internal/types"
)

type PackageIndexPort interface {
	AvailableVersions(name string) ([]string, error)
}

type IndexBuildRequest struct {
	SimpleIndex      string
	User             string
	APIKey           string
	Packages         []string
	MaxPackages      int
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type IndexBuilderPort interface {
	Build(ctx context.Context, request IndexBuildRequest) (types.PackageIndexFile, error)
}

type IndexWriterPort interface {
	Write(path string, index types.PackageIndexFile) error
}
