package token

import (
	"wgslcst/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Describe renders the token for "found ..." diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "<EOF>"
	case Ident, IntLit, FloatLit, Invalid:
		return "'" + t.Text + "'"
	default:
		return t.Kind.Quoted()
	}
}
