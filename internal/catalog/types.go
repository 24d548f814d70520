package catalog

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// HelpCommand is the reserved command value that always shows help text.
const HelpCommand = "help"

// ConditionalResponse overrides a command's default output when its
// condition holds. A name in Requires or RequiresNot may refer to a state
// flag or to the value of a command that already succeeded.
type ConditionalResponse struct {
	Requires    []string `yaml:"requires,omitempty"`
	RequiresNot []string `yaml:"requiresNot,omitempty"`
	Response    string   `yaml:"response"`
}

// Command is one simulated shell command of a lab.
type Command struct {
	Value                string                `yaml:"value"`
	Label                string                `yaml:"label"`
	Response             string                `yaml:"response"`
	Interactive          bool                  `yaml:"interactive,omitempty"`
	ConditionalResponses []ConditionalResponse `yaml:"conditionalResponses,omitempty"`
	SetsState            map[string]bool       `yaml:"setsState,omitempty"`
	CompletesStep        bool                  `yaml:"completesStep,omitempty"`
}

type commandFields Command

// UnmarshalYAML accepts completesExercise as an alias of completesStep.
func (c *Command) UnmarshalYAML(node *yaml.Node) error {
	var aux struct {
		commandFields     `yaml:",inline"`
		CompletesExercise bool `yaml:"completesExercise"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	*c = Command(aux.commandFields)
	c.CompletesStep = c.CompletesStep || aux.CompletesExercise
	return nil
}

// Module is the command list and help material for one hands-on lab.
type Module struct {
	ID           string    `yaml:"id"`
	Title        string    `yaml:"title"`
	Introduction string    `yaml:"introduction"`
	Help         string    `yaml:"help"`
	Commands     []Command `yaml:"commands"`
}

// Lookup returns the command whose value equals input exactly.
func (m *Module) Lookup(input string) (*Command, bool) {
	for i := range m.Commands {
		if m.Commands[i].Value == input {
			return &m.Commands[i], true
		}
	}
	return nil, false
}

// Suggest returns the first command whose leading word appears anywhere in
// input, compared case-insensitively. The reserved help command is never
// suggested.
func (m *Module) Suggest(input string) (*Command, bool) {
	lower := strings.ToLower(input)
	for i := range m.Commands {
		cmd := &m.Commands[i]
		if cmd.Value == HelpCommand {
			continue
		}
		fields := strings.Fields(cmd.Value)
		if len(fields) == 0 {
			continue
		}
		if strings.Contains(lower, strings.ToLower(fields[0])) {
			return cmd, true
		}
	}
	return nil, false
}

// Catalog is the full set of labs, keyed by module id.
type Catalog struct {
	Version string   `yaml:"version"`
	Labs    []Module `yaml:"modules"`

	byID map[string]*Module
}

// Module returns the lab with the given id.
func (c *Catalog) Module(id string) (*Module, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Modules returns all labs in catalog order.
func (c *Catalog) Modules() []Module {
	return c.Labs
}

func (c *Catalog) index() {
	c.byID = make(map[string]*Module, len(c.Labs))
	for i := range c.Labs {
		c.byID[c.Labs[i].ID] = &c.Labs[i]
	}
}
