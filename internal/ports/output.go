package ports

import "reqlock/internal/types"

type LockWriterPort interface {
	WriteLock(entries []types.LockEntry) error
	WritePinnedRequirements(entries []types.LockEntry) error
	WriteResolutionReport(report types.ResolutionReport) error
}

type OutputReaderPort interface {
	ReadLock(path string) ([]types.LockEntry, error)
	ReadResolutionReport(path string) (types.ResolutionReport, error)
}

type DebExportPort interface {
	WriteAptInstallList(entries []types.DebExportEntry) error
}
