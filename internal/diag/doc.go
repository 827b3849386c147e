// Package diag defines the diagnostic model shared by the evaluator, the
// scheduler and the CLI.
//
// Diagnostic carries a Severity, a taxonomy Code (mirroring the runtime
// error kinds), a message, the source Position it occurred at, and
// optionally the surface token involved.
//
// Producers report through a Reporter so emission stays decoupled from
// storage and formatting; Formatter.Format in format.go renders a
// Diagnostic into the two wire shapes the CLI prints, colorized when the
// destination is a terminal.
package diag
