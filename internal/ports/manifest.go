package ports

import "reqlock/internal/types"

// ManifestPort reads raw manifest lines from storage. Parsing stays in
// core so adapters remain dumb file loaders.
type ManifestPort interface {
	ReadLines(path string) ([]string, error)
}

// OverridesPort loads an overrides document.
type OverridesPort interface {
	Load(path string) ([]types.OverrideDirective, error)
}
