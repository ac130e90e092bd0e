package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/circlet/internal/usertype"
)

var validate = validator.New()

// Validate performs field and structural checks on a set of flows.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(flows []Flow) error {
	var errs []string

	seenTypes := make(map[usertype.Type]bool, len(flows))
	seenIDs := make(map[string]bool, len(flows))

	for _, f := range flows {
		prefix := fmt.Sprintf("flow %q", f.ID)

		if err := validate.Struct(f); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
		}

		if !f.UserType.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown user type %q", prefix, f.UserType))
		}
		if seenTypes[f.UserType] {
			errs = append(errs, fmt.Sprintf("%s: second flow for user type %q", prefix, f.UserType))
		}
		seenTypes[f.UserType] = true

		if seenIDs[f.ID] {
			errs = append(errs, fmt.Sprintf("duplicate flow ID: %q", f.ID))
		}
		seenIDs[f.ID] = true

		errs = append(errs, checkSteps(prefix, f.Steps)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("tutorial catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// validateComplete additionally requires a flow for every user type.
func validateComplete(flows []Flow) error {
	if err := Validate(flows); err != nil {
		return err
	}
	have := make(map[usertype.Type]bool, len(flows))
	for _, f := range flows {
		have[f.UserType] = true
	}
	var missing []string
	for _, t := range usertype.All() {
		if !have[t] {
			missing = append(missing, string(t))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("tutorial catalog validation failed: no flow for %s", strings.Join(missing, ", "))
	}
	return nil
}

func checkSteps(prefix string, steps []Step) []string {
	var errs []string
	routes := Routes()

	ids := make(map[string]bool, len(steps))
	interactive := 0
	for _, s := range steps {
		if ids[s.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate step ID %q", prefix, s.ID))
		}
		ids[s.ID] = true

		if s.NavigationDestination != "" && !slices.Contains(routes, s.NavigationDestination) {
			errs = append(errs, fmt.Sprintf("%s: step %q navigates to unknown route %q", prefix, s.ID, s.NavigationDestination))
		}

		if s.IsInteractive {
			interactive++
			if s.AwaitRoute == "" {
				errs = append(errs, fmt.Sprintf("%s: interactive step %q has no AwaitRoute", prefix, s.ID))
			} else if !slices.Contains(routes, s.AwaitRoute) {
				errs = append(errs, fmt.Sprintf("%s: step %q awaits unknown route %q", prefix, s.ID, s.AwaitRoute))
			}
		} else if s.AwaitRoute != "" {
			errs = append(errs, fmt.Sprintf("%s: non-interactive step %q sets AwaitRoute", prefix, s.ID))
		}
	}

	if interactive != 1 {
		errs = append(errs, fmt.Sprintf("%s: want exactly 1 interactive step, got %d", prefix, interactive))
	}

	tail := CommonTail()
	if len(steps) < len(tail)+1 {
		errs = append(errs, fmt.Sprintf("%s: want at least %d steps, got %d", prefix, len(tail)+1, len(steps)))
		return errs
	}
	got := steps[len(steps)-len(tail):]
	for i := range tail {
		if got[i] != tail[i] {
			errs = append(errs, fmt.Sprintf("%s: step %d is %q, want common step %q", prefix, len(steps)-len(tail)+i, got[i].ID, tail[i].ID))
		}
	}
	return errs
}
