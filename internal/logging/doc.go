// Package logging owns the coppo console output channels.
//
// It provides a small leveled logger (info, warn, success, error) with a
// process-wide instance configured once from the --quiet flag. Quiet mode
// suppresses the info, warn, and success channels; errors are always written
// to stderr so failures are never silenced. Colour is applied only when the
// destination stream is a terminal.
//
// Prefer the package-level Init/Default pair over constructing loggers by
// hand so every component shares the same quiet setting and styling.
package logging
