// Package fuzztests houses Go fuzz harnesses for the lexer → parser → printer
// pipeline. They guard against panics, hangs and broken tree invariants on
// arbitrary input.
//
// Seeds come from the repository testdata/*.wgsl files plus a few inline
// snippets that once stressed error recovery.
//
// Depends on: internal/source, internal/lexer, internal/parser, internal/format,
// internal/testkit.
package fuzztests
