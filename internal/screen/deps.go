package screen

import (
	"github.com/abhisek/certlab/internal/course"
	"github.com/abhisek/certlab/internal/store"
	"github.com/abhisek/certlab/internal/terminal"
	"github.com/abhisek/certlab/internal/tutor"
)

// Deps are the services shared by every screen of one app run.
type Deps struct {
	Resolver *terminal.Resolver
	Checker  *terminal.Checker
	Progress *course.Progress

	// Events is the activity journal; nil disables journaling.
	Events store.EventRepo

	// Tutor is nil when no LLM provider is configured.
	Tutor *tutor.Tutor
}

// Journal returns the lab journal, or nil when journaling is disabled.
func (d *Deps) Journal() terminal.Journal {
	if d.Events == nil {
		return nil
	}
	return store.SessionJournal{Events: d.Events}
}
