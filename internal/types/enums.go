package types

// DirectiveKind classifies a parsed manifest line. Comment and blank
// lines are discarded during parsing and never appear as directives.
type DirectiveKind string

const (
	// DirectiveKindRequirement is a package requirement line, pinned or not.
	DirectiveKindRequirement DirectiveKind = "requirement"
	// DirectiveKindInclude is a "-r"/"--requirement" inclusion of another file.
	DirectiveKindInclude DirectiveKind = "include"
	// DirectiveKindConstraintFile is a "-c"/"--constraint" inclusion. Entries
	// from a constraints file restrict versions but never add packages.
	DirectiveKindConstraintFile DirectiveKind = "constraint-file"
)

type ConstraintOp string

const (
	ConstraintOpNone   ConstraintOp = ""
	ConstraintOpArb    ConstraintOp = "==="
	ConstraintOpEq     ConstraintOp = "=="
	ConstraintOpNe     ConstraintOp = "!="
	ConstraintOpCompat ConstraintOp = "~="
	ConstraintOpGte    ConstraintOp = ">="
	ConstraintOpLte    ConstraintOp = "<="
	ConstraintOpGt     ConstraintOp = ">"
	ConstraintOpLt     ConstraintOp = "<"
)
