// Package diag defines the diagnostic model shared by the lexer, the parser and
// the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string form (LEX1001, SYN2001, IO4001).
//   - Message – short, human oriented text.
//   - Primary – the source.Span the diagnostic points at.
//   - Notes – optional secondary spans with extra context.
//
// # Emitting diagnostics
//
// Phases report through a Reporter so emission stays decoupled from storage.
// ReportError/ReportWarning return a ReportBuilder that can attach notes before
// Emit. BagReporter collects into a capped Bag, which supports sorting and
// deduplication; DedupReporter filters repeats before they reach the next reporter.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt.
package diag
