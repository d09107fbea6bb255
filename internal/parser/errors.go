package parser

import (
	"fmt"
	"strings"

	"wgslcst/internal/diag"
	"wgslcst/internal/token"
)

// ParseError is one syntax error recorded during recovery.
type ParseError struct {
	// Rule is the grammar rule that was being matched.
	Rule string
	// Expected lists the token kinds that would have been accepted.
	Expected []token.Kind
	// What names a non-terminal expectation ("expression", "type"); it wins over Expected in messages.
	What  string
	Found token.Token
	Code  diag.Code
	// Notes point at related places, such as the opening delimiter.
	Notes []diag.Note
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message())
}

// Message is the error text without the rule prefix.
func (e *ParseError) Message() string {
	return fmt.Sprintf("expected %s, found %s", e.expectation(), e.Found.Describe())
}

func (e *ParseError) expectation() string {
	if e.What != "" {
		return e.What
	}
	parts := make([]string, 0, len(e.Expected))
	for _, k := range e.Expected {
		parts = append(parts, k.Quoted())
	}
	switch len(parts) {
	case 0:
		return "something else"
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}

// codeFor picks the diagnostic code for a single expected kind.
func codeFor(k token.Kind) diag.Code {
	switch k {
	case token.Semicolon:
		return diag.SynExpectSemicolon
	case token.Ident:
		return diag.SynExpectIdentifier
	case token.RParen, token.RBrace, token.RBracket, token.Gt:
		return diag.SynUnclosedDelimiter
	default:
		return diag.SynUnexpectedToken
	}
}
