// Package token defines lexical token kinds and trivia for WGSL-like shader sources.
// Invariants:
//   - Token.Text is the exact source substring covered by Token.Span.
//   - Whitespace and comments are Trivia attached to the next significant token
//     (Token.Leading) and never appear in the token stream.
//   - Attributes are lexed as '@' (Kind: At) followed by Ident; no per-attribute kinds.
//   - Built-in type names (f32, vec3, array, texture_2d, ...) are identifiers.
//     TemplatedTypeName tells the parser which of them open a template list.
package token
