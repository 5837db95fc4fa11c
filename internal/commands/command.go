package commands

import (
	"slices"
	"strings"
)

// Definition describes one command as loaded from the command file.
// A nil Args means the reply is never templated; a nil Roles means anyone
// may invoke the command.
type Definition struct {
	Trigger string   `yaml:"prompt"`
	Reply   string   `yaml:"reply"`
	Args    []string `yaml:"args,omitempty"`
	Roles   []Role   `yaml:"roles,omitempty"`
}

// IsPermitted reports whether the caller satisfies at least one of the
// command's roles.
func (d Definition) IsPermitted(c Caller) bool {
	if d.Roles == nil {
		return true
	}
	return slices.ContainsFunc(d.Roles, func(r Role) bool {
		return r.SatisfiedBy(c)
	})
}

// Render produces the reply for the given arguments, or false when the
// caller is not permitted. Each declared arg name is paired positionally
// with a supplied value; placeholders without a value stay literal and
// extra values are dropped. Substitution is a single pass over the
// template, so values are inserted verbatim and never expanded again.
func (d Definition) Render(args []string, c Caller) (string, bool) {
	if !d.IsPermitted(c) {
		return "", false
	}
	if d.Args == nil {
		return d.Reply, true
	}

	n := min(len(d.Args), len(args))
	if n == 0 {
		return d.Reply, true
	}

	oldnew := make([]string, 0, 2*n)
	for i := 0; i < n; i++ {
		oldnew = append(oldnew, placeholder(d.Args[i]), args[i])
	}
	return strings.NewReplacer(oldnew...).Replace(d.Reply), true
}

func placeholder(name string) string {
	return "{" + name + "}"
}
