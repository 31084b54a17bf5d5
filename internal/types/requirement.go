package types

// Constraint is a single version comparison attached to a package name.
// Source records the manifest file and line it came from, so conflict
// errors can point back at the offending declaration.
type Constraint struct {
	Name    string
	Op      ConstraintOp
	Version string
	Source  string
}

// Requirement is a package together with every constraint collected for
// it across the flattened manifest tree. ConstraintOnly marks entries
// that came exclusively from constraints files; they bound versions of
// packages requested elsewhere but are not requested themselves.
type Requirement struct {
	Name           string
	Extras         []string
	Marker         string
	Constraints    []Constraint
	ConstraintOnly bool
}

// Directive is one parsed manifest line in file order.
type Directive struct {
	Kind        DirectiveKind
	Requirement Requirement
	// Include is the referenced path for include and constraint-file
	// directives, as written (relative paths are resolved later against
	// the including file's directory).
	Include string
	File    string
	Line    int
}
