package terminal

import (
	"fmt"
	"strings"

	"github.com/abhisek/certlab/internal/catalog"
	"github.com/abhisek/certlab/internal/csr"
)

// Kind classifies how an input was handled.
type Kind int

const (
	KindIgnored     Kind = iota // Empty input, or input while a prompt is pending
	KindHelp                    // Reserved help command
	KindUnknown                 // No catalog entry and no suggestion
	KindSuggested               // No exact match, but a similar command exists
	KindInteractive             // Matched an interactive command; awaiting the prompt
	KindExecuted                // Matched and resolved
)

// String returns the journal name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHelp:
		return "help"
	case KindUnknown:
		return "unknown"
	case KindSuggested:
		return "suggested"
	case KindInteractive:
		return "interactive"
	case KindExecuted:
		return "executed"
	default:
		return "ignored"
	}
}

// Messages printed for inputs that do not resolve to a command.
const (
	NoHelpMessage    = "No help available for this step."
	suggestionFormat = "⚠️  Command not recognized. Did you mean: %s?\n\n💡 TIP: Type 'help' for available commands."
	notFoundFormat   = "❌ Command not found: %s\n\n💡 TIP: Type 'help' to see available commands."
)

// Result is the outcome of resolving one input.
type Result struct {
	Kind Kind

	// Output is the text to append to the transcript. Empty for
	// KindInteractive and KindIgnored.
	Output string

	// Successful is true when the output is not failure-shaped. Only
	// meaningful for KindExecuted.
	Successful bool

	// Command is the matched catalog entry, nil unless the kind is
	// KindInteractive or KindExecuted.
	Command *catalog.Command

	// Suggestion is the value offered by a KindSuggested result.
	Suggestion string

	// Completes is true when a successful command is marked as the one
	// that finishes the exercise.
	Completes bool

	// CompletionFired is set by Session when this input triggered the
	// one-time completion event.
	CompletionFired bool
}

// Override replaces a command's default response before conditional rules
// are evaluated. ok is false when the override does not apply.
type Override func(st *State) (output string, ok bool)

// CSRViewCommand prints the request created by the interactive prompt.
const CSRViewCommand = "openssl req -text -noout -in request.csr"

// Resolver maps inputs to catalog commands. It never fails: every input
// yields an output string.
type Resolver struct {
	catalog   *catalog.Catalog
	overrides map[string]Override
}

// NewResolver returns a resolver over c with the built-in overrides.
func NewResolver(c *catalog.Catalog) *Resolver {
	r := &Resolver{
		catalog:   c,
		overrides: make(map[string]Override),
	}
	r.Override(CSRViewCommand, viewCollectedCSR)
	return r
}

// Override registers fn for the command value. A later registration for
// the same value replaces the earlier one.
func (r *Resolver) Override(value string, fn Override) {
	r.overrides[value] = fn
}

// Module returns the catalog entry for a lab.
func (r *Resolver) Module(id string) (*catalog.Module, bool) {
	return r.catalog.Module(id)
}

// IsHelp reports whether input is the reserved help command.
func IsHelp(input string) bool {
	s := strings.ToLower(strings.TrimSpace(input))
	return s == catalog.HelpCommand || s == "?"
}

// Resolve handles one input against a lab and updates st in place. The
// match is exact; callers trim input first if they want to.
func (r *Resolver) Resolve(moduleID, input string, st *State) Result {
	mod, ok := r.catalog.Module(moduleID)

	if IsHelp(input) {
		return Result{Kind: KindHelp, Output: helpText(mod, ok)}
	}
	if !ok {
		return Result{Kind: KindUnknown, Output: fmt.Sprintf(notFoundFormat, input)}
	}

	cmd, found := mod.Lookup(input)
	if !found {
		if similar, ok := mod.Suggest(input); ok {
			return Result{
				Kind:       KindSuggested,
				Output:     fmt.Sprintf(suggestionFormat, similar.Value),
				Suggestion: similar.Value,
			}
		}
		return Result{Kind: KindUnknown, Output: fmt.Sprintf(notFoundFormat, input)}
	}

	if cmd.Interactive {
		return Result{Kind: KindInteractive, Command: cmd}
	}

	out := cmd.Response
	if fn, ok := r.overrides[cmd.Value]; ok {
		if s, ok := fn(st); ok {
			out = s
		}
	}
	if rule, ok := firstMatch(cmd.ConditionalResponses, st); ok {
		out = rule.Response
	}

	success := !IsFailure(out)
	st.record(cmd.Value, success, cmd.SetsState)

	return Result{
		Kind:       KindExecuted,
		Output:     out,
		Successful: success,
		Command:    cmd,
		Completes:  success && cmd.CompletesStep,
	}
}

// ResolveInteractive finishes an interactive command with the values the
// prompt collected. The command is recorded as executed and successful and
// the values are kept on st for later overrides.
func (r *Resolver) ResolveInteractive(moduleID, value string, values csr.Values, st *State) Result {
	mod, ok := r.catalog.Module(moduleID)
	if !ok {
		return Result{Kind: KindUnknown, Output: fmt.Sprintf(notFoundFormat, value)}
	}
	cmd, ok := mod.Lookup(value)
	if !ok || !cmd.Interactive {
		return Result{Kind: KindUnknown, Output: fmt.Sprintf(notFoundFormat, value)}
	}

	st.CSR = values.Clone()
	st.record(cmd.Value, true, cmd.SetsState)

	return Result{
		Kind:       KindExecuted,
		Output:     values.Transcript(),
		Successful: true,
		Command:    cmd,
		Completes:  cmd.CompletesStep,
	}
}

// firstMatch returns the first rule whose condition holds. A rule with no
// condition at all never matches.
func firstMatch(rules []catalog.ConditionalResponse, st *State) (catalog.ConditionalResponse, bool) {
	for _, rule := range rules {
		if ruleHolds(rule, st) {
			return rule, true
		}
	}
	return catalog.ConditionalResponse{}, false
}

func ruleHolds(rule catalog.ConditionalResponse, st *State) bool {
	if len(rule.Requires) == 0 && len(rule.RequiresNot) == 0 {
		return false
	}
	for _, name := range rule.Requires {
		if !st.Has(name) {
			return false
		}
	}
	for _, name := range rule.RequiresNot {
		if st.Has(name) {
			return false
		}
	}
	return true
}

func helpText(mod *catalog.Module, ok bool) string {
	if !ok {
		return NoHelpMessage
	}
	if cmd, found := mod.Lookup(catalog.HelpCommand); found {
		return cmd.Response
	}
	if mod.Help != "" {
		return mod.Help
	}
	return NoHelpMessage
}

func viewCollectedCSR(st *State) (string, bool) {
	if st.CSR == nil {
		return "", false
	}
	return st.CSR.RequestText(), true
}
