package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqlock/internal/types"
)

func TestParseLinesPinAndInclude(t *testing.T) {
	lines := []string{
		"# style tooling pins",
		"",
		"--requirement base.txt",
		"pycodestyle == 2.8.0",
	}
	directives, err := ParseLines("requirements.txt", lines)
	require.NoError(t, err)
	require.Len(t, directives, 2)

	include := directives[0]
	assert.Equal(t, types.DirectiveKindInclude, include.Kind)
	assert.Equal(t, "base.txt", include.Include)
	assert.Equal(t, 3, include.Line)

	pin := directives[1]
	assert.Equal(t, types.DirectiveKindRequirement, pin.Kind)
	assert.Equal(t, "pycodestyle", pin.Requirement.Name)
	require.Len(t, pin.Requirement.Constraints, 1)
	assert.Equal(t, types.ConstraintOpEq, pin.Requirement.Constraints[0].Op)
	assert.Equal(t, "2.8.0", pin.Requirement.Constraints[0].Version)
	assert.Equal(t, "requirements.txt:4", pin.Requirement.Constraints[0].Source)
}

func TestParseLinesIncludeForms(t *testing.T) {
	tests := []struct {
		line string
		kind types.DirectiveKind
		path string
	}{
		{"-r base.txt", types.DirectiveKindInclude, "base.txt"},
		{"--requirement base.txt", types.DirectiveKindInclude, "base.txt"},
		{"--requirement=base.txt", types.DirectiveKindInclude, "base.txt"},
		{"-c constraints.txt", types.DirectiveKindConstraintFile, "constraints.txt"},
		{"--constraint=constraints.txt", types.DirectiveKindConstraintFile, "constraints.txt"},
	}
	for _, tt := range tests {
		directives, err := ParseLines("requirements.txt", []string{tt.line})
		require.NoError(t, err, tt.line)
		require.Len(t, directives, 1, tt.line)
		assert.Equal(t, tt.kind, directives[0].Kind, tt.line)
		assert.Equal(t, tt.path, directives[0].Include, tt.line)
	}
}

func TestParseLinesTrailingComment(t *testing.T) {
	directives, err := ParseLines("requirements.txt", []string{"flask >= 2.0  # web framework"})
	require.NoError(t, err)
	require.Len(t, directives, 1)
	require.Len(t, directives[0].Requirement.Constraints, 1)
	assert.Equal(t, "2.0", directives[0].Requirement.Constraints[0].Version)
}

func TestParseLinesMultiSpecifier(t *testing.T) {
	directives, err := ParseLines("requirements.txt", []string{"requests >= 2.25, < 3"})
	require.NoError(t, err)
	require.Len(t, directives, 1)
	constraints := directives[0].Requirement.Constraints
	require.Len(t, constraints, 2)
	assert.Equal(t, types.ConstraintOpGte, constraints[0].Op)
	assert.Equal(t, "2.25", constraints[0].Version)
	assert.Equal(t, types.ConstraintOpLt, constraints[1].Op)
	assert.Equal(t, "3", constraints[1].Version)
}

func TestParseLinesExtrasAndMarker(t *testing.T) {
	directives, err := ParseLines("requirements.txt", []string{
		`requests[security,socks] >= 2.25 ; python_version < "3.12"`,
	})
	require.NoError(t, err)
	require.Len(t, directives, 1)
	requirement := directives[0].Requirement
	assert.Equal(t, "requests", requirement.Name)
	assert.Equal(t, []string{"security", "socks"}, requirement.Extras)
	assert.Equal(t, `python_version < "3.12"`, requirement.Marker)
}

func TestParseLinesContinuation(t *testing.T) {
	lines := []string{
		`requests >= 2.25, \`,
		"    < 3",
	}
	directives, err := ParseLines("requirements.txt", lines)
	require.NoError(t, err)
	require.Len(t, directives, 1)
	require.Len(t, directives[0].Requirement.Constraints, 2)
	assert.Equal(t, 1, directives[0].Line)
}

func TestParseLinesDanglingContinuation(t *testing.T) {
	_, err := ParseLines("requirements.txt", []string{`flask >= 2.0 \`})
	require.Error(t, err)
}

func TestParseLinesUnsupportedOption(t *testing.T) {
	_, err := ParseLines("requirements.txt", []string{"--index-url https://example.invalid/simple"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported option")
}

func TestParseLinesMissingIncludePath(t *testing.T) {
	_, err := ParseLines("requirements.txt", []string{"--requirement"})
	require.Error(t, err)
}

// Parsing is deterministic: the same lines always yield the same ordered
// directive sequence.
func TestParseLinesIdempotent(t *testing.T) {
	lines := []string{
		"# header",
		"--requirement base.txt",
		"flask >= 2.0",
		"",
		"pycodestyle == 2.8.0",
	}
	first, err := ParseLines("requirements.txt", lines)
	require.NoError(t, err)
	second, err := ParseLines("requirements.txt", lines)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parse not deterministic (-first +second):\n%s", diff)
	}
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"# full line", ""},
		{"   # indented", ""},
		{"flask >= 2.0 # trailing", "flask >= 2.0"},
		{"flask >= 2.0", "flask >= 2.0"},
		{"flask>=2.0#nocomment", "flask>=2.0#nocomment"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripComment(tt.in), tt.in)
	}
}
