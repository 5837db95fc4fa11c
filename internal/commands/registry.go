package commands

import (
	"slices"
	"strings"
)

// Registry maps triggers to definitions. It is built once and never
// modified, so it can be shared between goroutines without locking.
type Registry struct {
	commands map[string]Definition
}

// NewRegistry indexes the definitions by trigger. When two definitions share
// a trigger the later one wins.
func NewRegistry(defs []Definition) *Registry {
	r := &Registry{
		commands: make(map[string]Definition, len(defs)),
	}
	for _, d := range defs {
		r.commands[d.Trigger] = d
	}
	return r
}

// Lookup retrieves a definition by its exact trigger
func (r *Registry) Lookup(trigger string) (Definition, bool) {
	d, ok := r.commands[trigger]
	return d, ok
}

// Resolve turns a raw chat message into a reply. It returns false when the
// message is empty, names no known command, or the caller is not permitted.
func (r *Registry) Resolve(raw string, c Caller) (string, bool) {
	trigger, args, ok := Tokenize(raw)
	if !ok {
		return "", false
	}
	d, ok := r.Lookup(trigger)
	if !ok {
		return "", false
	}
	return d.Render(args, c)
}

// Len returns the number of distinct triggers.
func (r *Registry) Len() int {
	return len(r.commands)
}

// All returns every definition ordered by trigger.
func (r *Registry) All() []Definition {
	defs := make([]Definition, 0, len(r.commands))
	for _, d := range r.commands {
		defs = append(defs, d)
	}
	slices.SortFunc(defs, func(a, b Definition) int {
		return strings.Compare(a.Trigger, b.Trigger)
	})
	return defs
}

// Duplicates lists the triggers that appear more than once in defs, in the
// order their first repeat is seen.
func Duplicates(defs []Definition) []string {
	seen := make(map[string]int, len(defs))
	var dups []string
	for _, d := range defs {
		seen[d.Trigger]++
		if seen[d.Trigger] == 2 {
			dups = append(dups, d.Trigger)
		}
	}
	return dups
}

// Triggers returns every registered trigger in sorted order.
func (r *Registry) Triggers() []string {
	triggers := make([]string, 0, len(r.commands))
	for t := range r.commands {
		triggers = append(triggers, t)
	}
	slices.Sort(triggers)
	return triggers
}
