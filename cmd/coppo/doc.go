// Command coppo is a Cargo-style package manager front end for C++ projects.
//
// The binary itself is a thin shell: it registers the built-in addons (new,
// build, run, info, add, config) with the dispatcher and executes the
// resulting command surface. Extend coppo by adding addons in
// internal/addons and registering them here; the dispatcher takes care of
// flags, help, and manifest plumbing.
package main
