// Package manifest models the Coppo.toml project manifest.
//
// It loads, validates, serializes, and persists the project description
// (name, version, authors, optional metadata) together with the dependency
// table. Absence of a manifest is reported distinctly from a malformed one so
// callers can substitute the empty default where the manifest is optional and
// surface an actionable parse error where it is not.
package manifest
