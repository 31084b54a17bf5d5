package types

type LockEntry struct {
	Name    string
	Version string
}

type DebExportEntry struct {
	Package string
	Version string
}

type ResolutionRecord struct {
	Package   string
	Action    string
	Value     string
	Reason    string
	Owner     string
	ExpiresAt string
}

type ResolutionReport struct {
	Records []ResolutionRecord
}
