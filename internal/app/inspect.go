package app

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/adapters"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	locks, err := s.OutputReader.ReadLock(filepath.Join(outputDir, adapters.LockFileName))
	if err != nil {
		return InspectResult{}, err
	}
	report, err := s.OutputReader.ReadResolutionReport(filepath.Join(outputDir, adapters.ResolutionReportName))
	if err != nil {
		return InspectResult{}, err
	}
	var packages []string
	for _, lock := range locks {
		packages = append(packages, lock.Name)
	}
	sort.Strings(packages)
	return InspectResult{
		LockCount:         len(locks),
		Packages:          packages,
		ResolutionRecords: report.Records,
	}, nil
}
