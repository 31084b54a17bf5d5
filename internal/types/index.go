package types

// PackageIndexFile is a snapshot of the versions a package index offers,
// keyed by PEP 503 normalized package name. Snapshots are built once
// (from a live simple index or by hand) and read many times during
// resolution, which keeps resolve runs deterministic and offline.
type PackageIndexFile struct {
	Packages map[string][]string `yaml:"packages"`
}
