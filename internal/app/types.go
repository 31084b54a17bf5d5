package app

import "reqlock/internal/types"

type ValidateRequest struct {
	Manifest  string
	Overrides string
}

type ValidateResult struct {
	Manifest     string
	Requirements int
	Pinned       int
}

type ResolveRequest struct {
	Manifest   string
	Index      string
	Overrides  string
	OutputDir  string
	EmitPinned bool
	EmitDebs   bool
}

type ResolveResult struct {
	Manifest  string
	Locked    int
	OutputDir string
}

type InspectRequest struct {
	OutputDir string
}

type InspectResult struct {
	LockCount         int
	Packages          []string
	ResolutionRecords []types.ResolutionRecord
}

type BuildIndexRequest struct {
	SimpleIndex      string
	Output           string
	User             string
	APIKey           string
	Packages         []string
	MaxPackages      int
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type BuildIndexResult struct {
	OutputPath   string
	PackageCount int
}

type ExportDebRequest struct {
	OutputDir string
}

type ExportDebResult struct {
	Exported int
}
