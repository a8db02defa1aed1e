package command

import "fmt"

// Section is one block of the help view: a category and its commands in
// registration order.
type Section struct {
	Category string
	Label    string
	Commands []*Command
}

// categoryLabels fixes the order and titles of the help sections.
var categoryLabels = []struct{ category, label string }{
	{CategoryMovement, "Movement"},
	{CategoryWorld, "World"},
	{CategoryCombat, "Combat"},
	{CategorySystem, "System"},
}

// Registry is the read-only command table of a match. Every name and alias
// maps to exactly one command.
type Registry struct {
	lookup map[string]*Command
	order  []*Command
}

// NewRegistry builds a Registry from cmds, kept in the given order.
//
// Precondition: cmds have non-empty names, known categories and no shared
// names or aliases.
// Postcondition: Returns a Registry or an error naming the first bad command.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{lookup: make(map[string]*Command, 3*len(cmds))}
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Name == "" {
			return nil, fmt.Errorf("command %d has no name", i)
		}
		if !knownCategory(cmd.Category) {
			return nil, fmt.Errorf("command %q: unknown category %q", cmd.Name, cmd.Category)
		}
		for _, key := range append([]string{cmd.Name}, cmd.Aliases...) {
			if prev, taken := r.lookup[key]; taken {
				return nil, fmt.Errorf("command %q: %q already names %q", cmd.Name, key, prev.Name)
			}
			r.lookup[key] = cmd
		}
		r.order = append(r.order, cmd)
	}
	return r, nil
}

func knownCategory(category string) bool {
	for _, c := range categoryLabels {
		if c.category == category {
			return true
		}
	}
	return false
}

// DefaultRegistry returns the built-in commands. It panics if they collide.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve finds the command a lowercased word names.
func (r *Registry) Resolve(word string) (*Command, bool) {
	cmd, ok := r.lookup[word]
	return cmd, ok
}

// Commands returns every command in registration order.
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.order...)
}

// Sections groups the commands for the help view: movement, world, combat,
// then system. Empty categories are left out.
func (r *Registry) Sections() []Section {
	var out []Section
	for _, c := range categoryLabels {
		s := Section{Category: c.category, Label: c.label}
		for _, cmd := range r.order {
			if cmd.Category == c.category {
				s.Commands = append(s.Commands, cmd)
			}
		}
		if len(s.Commands) > 0 {
			out = append(out, s)
		}
	}
	return out
}
