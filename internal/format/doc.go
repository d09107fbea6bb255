// Package format renders a concrete syntax tree as text.
//
// Purpose: the indented tree format printed by the CLI, plus JSON and YAML
// exports of the same tree.
// Does not: re-print source code or touch trivia.
// Depends on: internal/cst.
package format
