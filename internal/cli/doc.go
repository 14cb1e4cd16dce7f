// Package cli assembles the coppo command surface and dispatches invocations.
//
// The Runner owns the ordered addon registry. Build synthesizes one cobra
// subcommand per registered addon (global flags stay on the root), Execute
// parses the process arguments once and routes the selected subcommand to the
// matching addon, handing it the shared project manifest. Parse failures and
// addon errors both surface through Execute's error; callers print it and
// exit non-zero. Invoking coppo without a subcommand prints help and
// succeeds.
package cli
