package types

// OverrideDirective is an operator-authored exception that unblocks a
// conflicting requirement. Every directive must name an owner and a
// reason so exceptions stay auditable.
type OverrideDirective struct {
	Package   string `yaml:"package"`
	Action    string `yaml:"action"`
	Value     string `yaml:"value,omitempty"`
	Reason    string `yaml:"reason"`
	Owner     string `yaml:"owner"`
	ExpiresAt string `yaml:"expires_at,omitempty"`
}

// OverridesFile is the on-disk YAML shape of an overrides document.
type OverridesFile struct {
	Overrides []OverrideDirective `yaml:"overrides"`
}
