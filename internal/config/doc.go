// Package config loads, normalizes, and validates the global coppo
// configuration.
//
// The file lives at ~/.coppo/config.toml and holds toolchain settings shared
// by every project, most importantly which C++ compiler to invoke. It
// supplies defaults when the file is absent, expands tilde paths, and honours
// the COPPO_COMPILER environment override.
//
// Project-local settings live in the Coppo.toml manifest instead; see the
// manifest package.
package config
