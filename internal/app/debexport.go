package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/adapters"
)

// ExportDeb converts an existing lock into an apt install list of
// python3-* pins, without re-resolving.
func (s Service) ExportDeb(req ExportDebRequest) (ExportDebResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return ExportDebResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	locks, err := s.OutputReader.ReadLock(filepath.Join(outputDir, adapters.LockFileName))
	if err != nil {
		return ExportDebResult{}, err
	}
	entries, err := adapters.ToDebEntries(locks)
	if err != nil {
		return ExportDebResult{}, err
	}
	if err := adapters.NewDebExportAdapter(outputDir).WriteAptInstallList(entries); err != nil {
		return ExportDebResult{}, err
	}
	return ExportDebResult{Exported: len(entries)}, nil
}
