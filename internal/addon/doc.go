// Package addon defines the contract every coppo subcommand implements.
//
// An addon contributes exactly one subcommand to the CLI: its Name is the
// token users type, its Args declare the flags and positionals scoped to that
// subcommand, and Run receives the shared mutable project manifest together
// with the parsed invocation. The cli package assembles the command surface
// from a registered addon list and routes one invocation to one addon.
package addon
