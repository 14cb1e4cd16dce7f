package addon

import (
	"coppo/internal/manifest"
)

// Arg declares one flag or positional argument owned by a single addon.
type Arg struct {
	// Name is the flag name or the positional's binding key.
	Name string
	// Shorthand is the optional single-letter flag alias.
	Shorthand string
	// Usage is the help text.
	Usage string
	// Default is the value used when the argument is not supplied.
	Default string
	// Bool marks a boolean flag instead of a string flag.
	Bool bool
	// Positional binds the argument to the next positional slot, in
	// declaration order, instead of a flag.
	Positional bool
	// Required rejects invocations that omit this positional.
	Required bool
	// Variadic marks a trailing positional that swallows every remaining
	// argument; retrieve them with Invocation.Rest.
	Variadic bool
}

// Addon is the interface every coppo subcommand implements.
type Addon interface {
	// Name returns the stable subcommand token. Names must be unique across
	// the registered set; the dispatcher keeps the first registration when
	// they collide.
	Name() string

	// Version returns the addon version. An empty string tells the
	// dispatcher to substitute the coppo build version.
	Version() string

	// Description returns the one-line help text; empty renders as empty.
	Description() string

	// Args declares the addon's own argument surface. May return nil.
	Args() []Arg

	// Run executes the addon. cfg is the shared mutable project manifest
	// loaded by the dispatcher (the empty default when no Coppo.toml
	// exists); mutations are not persisted unless the addon writes them.
	// Run is called at most once per process and must report failures via
	// the returned error rather than terminating the process.
	Run(cfg *manifest.Config, inv *Invocation) error
}
