package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqlock/internal/policies"
	"reqlock/internal/types"
)

// ValidateOverrides checks every override directive before a resolve run:
// the action must be known, force/replace need a value, and reason plus
// owner are mandatory so every exception stays attributable. Expired
// directives are rejected rather than silently ignored.
func ValidateOverrides(ctx context.Context, overrides []types.OverrideDirective, now time.Time) error {
	for _, directive := range overrides {
		assert.NotEmpty(ctx, directive.Package, "override package must be set")
		if strings.TrimSpace(directive.Package) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("override directive package must not be empty")
		}
		action := strings.ToLower(strings.TrimSpace(directive.Action))
		switch action {
		case policies.ActionForce, policies.ActionRelax, policies.ActionReplace, policies.ActionBlock:
		case "":
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("override directive for %s has no action", directive.Package))
		default:
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("override directive for %s has invalid action: %s", directive.Package, directive.Action))
		}
		if (action == policies.ActionForce || action == policies.ActionReplace) && strings.TrimSpace(directive.Value) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("override directive for %s requires a value for %s", directive.Package, action))
		}
		if strings.TrimSpace(directive.Reason) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("override directive for %s must state a reason", directive.Package))
		}
		if strings.TrimSpace(directive.Owner) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("override directive for %s must name an owner", directive.Package))
		}
		if expiry := parseTimeFlexible(directive.ExpiresAt); !expiry.IsZero() && expiry.Before(now) {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("override directive for %s expired at %s", directive.Package, directive.ExpiresAt))
		}
	}
	log.Ctx(ctx).Debug().Int("overrides", len(overrides)).Msg("overrides validated")
	return nil
}

func parseTimeFlexible(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
