package addon

import (
	"github.com/spf13/pflag"
)

// Invocation is the parsed argument bag handed to a single addon run. It
// unifies flag lookups and bound positionals behind one accessor surface.
type Invocation struct {
	flags       *pflag.FlagSet
	positionals map[string]string
	rest        []string
}

// NewInvocation binds a parsed flag set, the named positionals, and any
// trailing variadic arguments.
func NewInvocation(flags *pflag.FlagSet, positionals map[string]string, rest []string) *Invocation {
	if positionals == nil {
		positionals = map[string]string{}
	}
	return &Invocation{flags: flags, positionals: positionals, rest: rest}
}

// String returns the value bound to name, consulting positionals first and
// string flags second. Unknown names yield the empty string.
func (inv *Invocation) String(name string) string {
	if value, ok := inv.positionals[name]; ok {
		return value
	}
	if inv.flags != nil {
		if value, err := inv.flags.GetString(name); err == nil {
			return value
		}
	}
	return ""
}

// Bool returns the value of a boolean flag; unknown names yield false.
func (inv *Invocation) Bool(name string) bool {
	if inv.flags == nil {
		return false
	}
	value, err := inv.flags.GetBool(name)
	return err == nil && value
}

// Changed reports whether the user supplied name explicitly, either as a
// changed flag or as a present positional.
func (inv *Invocation) Changed(name string) bool {
	if _, ok := inv.positionals[name]; ok {
		return true
	}
	return inv.flags != nil && inv.flags.Changed(name)
}

// Rest returns the trailing arguments captured by a variadic positional.
func (inv *Invocation) Rest() []string {
	return inv.rest
}
