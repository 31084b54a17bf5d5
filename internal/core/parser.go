package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/shared"
	"reqlock/internal/types"
)

// opPattern locates the first constraint operator in a requirement line.
// Alternatives are ordered longest-first so "==" never matches as "=".
var opPattern = regexp.MustCompile(`===|==|!=|~=|>=|<=|>|<`)

// extrasPattern matches a "name[extra1,extra2]" prefix.
var extrasPattern = regexp.MustCompile(`^([A-Za-z0-9._-]+)\[([^\]]*)\]`)

// ParseLines parses the raw lines of a single requirements manifest into
// the ordered directive sequence. Parsing is pure and deterministic: the
// same input always yields the same directives, and no filesystem access
// happens here (include paths are recorded as written and resolved by the
// flattener).
func ParseLines(file string, lines []string) ([]types.Directive, error) {
	var directives []types.Directive
	var pending string
	pendingStart := 0

	for i, raw := range lines {
		lineNo := i + 1
		logical := stripComment(raw)
		if pending != "" {
			logical = pending + " " + strings.TrimSpace(logical)
		} else {
			pendingStart = lineNo
		}
		if strings.HasSuffix(logical, `\`) {
			pending = strings.TrimSpace(strings.TrimSuffix(logical, `\`))
			continue
		}
		pending = ""
		logical = strings.TrimSpace(logical)
		if logical == "" {
			continue
		}
		directive, err := parseDirective(logical, file, pendingStart)
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)
	}
	if pending != "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s:%d: dangling line continuation", file, pendingStart))
	}
	return directives, nil
}

func parseDirective(logical string, file string, line int) (types.Directive, error) {
	if strings.HasPrefix(logical, "-") {
		return parseOption(logical, file, line)
	}
	requirement, err := parseRequirementClause(logical, file, line)
	if err != nil {
		return types.Directive{}, err
	}
	return types.Directive{
		Kind:        types.DirectiveKindRequirement,
		Requirement: requirement,
		File:        file,
		Line:        line,
	}, nil
}

func parseOption(logical string, file string, line int) (types.Directive, error) {
	for flag, kind := range includeFlags {
		value, ok := optionValue(logical, flag)
		if !ok {
			continue
		}
		if value == "" {
			return types.Directive{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s:%d: %s requires a file path", file, line, flag))
		}
		return types.Directive{
			Kind:    kind,
			Include: value,
			File:    file,
			Line:    line,
		}, nil
	}
	return types.Directive{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s:%d: unsupported option: %s", file, line, strings.Fields(logical)[0]))
}

var includeFlags = map[string]types.DirectiveKind{
	"--requirement": types.DirectiveKindInclude,
	"-r":            types.DirectiveKindInclude,
	"--constraint":  types.DirectiveKindConstraintFile,
	"-c":            types.DirectiveKindConstraintFile,
}

// optionValue extracts the value of "--flag path" or "--flag=path".
func optionValue(logical string, flag string) (string, bool) {
	if logical == flag {
		return "", true
	}
	if strings.HasPrefix(logical, flag+"=") {
		return strings.TrimSpace(strings.TrimPrefix(logical, flag+"=")), true
	}
	if strings.HasPrefix(logical, flag+" ") {
		return strings.TrimSpace(strings.TrimPrefix(logical, flag+" ")), true
	}
	return "", false
}

// parseRequirementClause parses "name[extras]op version, op version ; marker".
func parseRequirementClause(logical string, file string, line int) (types.Requirement, error) {
	source := fmt.Sprintf("%s:%d", file, line)
	clause := logical
	marker := ""
	if idx := strings.Index(clause, ";"); idx >= 0 {
		marker = strings.TrimSpace(clause[idx+1:])
		clause = strings.TrimSpace(clause[:idx])
	}
	var extras []string
	if match := extrasPattern.FindStringSubmatch(clause); match != nil {
		for _, extra := range strings.Split(match[2], ",") {
			extra = strings.TrimSpace(extra)
			if extra != "" {
				extras = append(extras, shared.NormalizePipName(extra))
			}
		}
		clause = match[1] + clause[len(match[0]):]
	}

	loc := opPattern.FindStringIndex(clause)
	if loc == nil {
		constraint, err := ParseConstraint(clause, source)
		if err != nil {
			return types.Requirement{}, err
		}
		return types.Requirement{
			Name:        constraint.Name,
			Extras:      extras,
			Marker:      marker,
			Constraints: []types.Constraint{constraint},
		}, nil
	}

	name := strings.TrimSpace(clause[:loc[0]])
	if name == "" || !namePattern.MatchString(name) {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: invalid package name: %s", source, name))
	}
	name = shared.NormalizePipName(name)

	var constraints []types.Constraint
	for _, spec := range strings.Split(clause[loc[0]:], ",") {
		constraint, err := parseSpecifier(name, spec, source)
		if err != nil {
			return types.Requirement{}, err
		}
		constraints = append(constraints, constraint)
	}
	return types.Requirement{
		Name:        name,
		Extras:      extras,
		Marker:      marker,
		Constraints: constraints,
	}, nil
}

// parseSpecifier parses a single "op version" clause like "== 2.8.0".
func parseSpecifier(name string, spec string, source string) (types.Constraint, error) {
	spec = strings.TrimSpace(spec)
	for _, op := range opTokens {
		if strings.HasPrefix(spec, string(op)) {
			version := strings.TrimSpace(strings.TrimPrefix(spec, string(op)))
			if version == "" {
				return types.Constraint{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("%s: missing version after %s for %s", source, op, name))
			}
			return types.Constraint{
				Name:    name,
				Op:      op,
				Version: version,
				Source:  source,
			}, nil
		}
	}
	return types.Constraint{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s: invalid version specifier for %s: %s", source, name, spec))
}

// stripComment removes a full-line or trailing comment. A "#" inside a
// line only starts a comment when preceded by whitespace or at column 0,
// matching the installer's behavior.
func stripComment(line string) string {
	trimmed := strings.TrimRight(line, "\r\n")
	if strings.HasPrefix(strings.TrimSpace(trimmed), "#") {
		return ""
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != '#' {
			continue
		}
		if i == 0 || trimmed[i-1] == ' ' || trimmed[i-1] == '\t' {
			return strings.TrimRight(trimmed[:i], " \t")
		}
	}
	return trimmed
}
