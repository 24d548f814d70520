// Package terminal implements the simulated shell used by the hands-on labs:
// the per-lab state, the command resolver, completion checks, and the
// session that ties them to a transcript.
package terminal

import (
	"maps"

	"github.com/abhisek/certlab/internal/csr"
)

// State is the mutable environment of one lab activation.
type State struct {
	// Executed holds every command value that has been resolved.
	Executed map[string]bool

	// Successful holds command values whose output was not failure-shaped.
	// Always a subset of Executed.
	Successful map[string]bool

	// Flags are named facts about the simulated machine. Flags are only
	// ever set to true; Reset is the only way to clear them.
	Flags map[string]bool

	// CSR holds the subject collected by the interactive request prompt,
	// nil until the prompt has been completed.
	CSR csr.Values
}

// NewState returns an empty state.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Has reports whether name is a true flag or a command that succeeded.
// Conditional responses treat both signals the same way.
func (s *State) Has(name string) bool {
	return s.Flags[name] || s.Successful[name]
}

// Reset discards everything, as when the learner restarts the lab.
func (s *State) Reset() {
	s.Executed = make(map[string]bool)
	s.Successful = make(map[string]bool)
	s.Flags = make(map[string]bool)
	s.CSR = nil
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	return &State{
		Executed:   maps.Clone(s.Executed),
		Successful: maps.Clone(s.Successful),
		Flags:      maps.Clone(s.Flags),
		CSR:        s.CSR.Clone(),
	}
}

// record applies the outcome of resolving one command.
func (s *State) record(value string, successful bool, sets map[string]bool) {
	s.Executed[value] = true
	if !successful {
		return
	}
	s.Successful[value] = true
	for flag, v := range sets {
		if v {
			s.Flags[flag] = true
		}
	}
}
