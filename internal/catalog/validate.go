package catalog

import (
	"fmt"
	"strings"
)

// validateModules performs the structural checks the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateModules(labs []Module) error {
	var errs []string

	seen := make(map[string]bool, len(labs))
	for _, m := range labs {
		if seen[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate module ID: %q", m.ID))
		}
		seen[m.ID] = true

		values := make(map[string]bool, len(m.Commands))
		completes := false
		for _, c := range m.Commands {
			prefix := fmt.Sprintf("module %q command %q", m.ID, c.Value)

			if strings.TrimSpace(c.Value) != c.Value {
				errs = append(errs, fmt.Sprintf("%s: value has surrounding whitespace", prefix))
			}
			if values[c.Value] {
				errs = append(errs, fmt.Sprintf("%s: duplicate command value", prefix))
			}
			values[c.Value] = true

			if c.Value == HelpCommand && (c.Interactive || len(c.SetsState) > 0 || c.CompletesStep) {
				errs = append(errs, fmt.Sprintf("%s: help may only carry a response", prefix))
			}
			if c.Interactive && len(c.ConditionalResponses) > 0 {
				errs = append(errs, fmt.Sprintf("%s: interactive commands cannot have conditional responses", prefix))
			}
			for flag, v := range c.SetsState {
				if !v {
					errs = append(errs, fmt.Sprintf("%s: setsState %q is false; flags can only be set", prefix, flag))
				}
			}
			if c.CompletesStep {
				completes = true
			}
		}

		if !completes {
			errs = append(errs, fmt.Sprintf("module %q has no command that completes the exercise", m.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
