package lexer

import (
	"wgslcst/internal/diag"
)

// ErrorPolicy decides what happens after a lexical error.
type ErrorPolicy uint8

const (
	// AbortOnError ends the token stream at the first error: every later Next returns EOF.
	AbortOnError ErrorPolicy = iota
	// RecoverOnError emits an Invalid token for the bad input and keeps scanning.
	RecoverOnError
)

func (p ErrorPolicy) String() string {
	if p == RecoverOnError {
		return "recover"
	}
	return "abort"
}

// ParseErrorPolicy accepts "abort" or "recover".
func ParseErrorPolicy(s string) (ErrorPolicy, bool) {
	switch s {
	case "", "abort":
		return AbortOnError, true
	case "recover":
		return RecoverOnError, true
	}
	return AbortOnError, false
}

type Options struct {
	Reporter diag.Reporter // may be nil; errors are still collected by the lexer
	OnError  ErrorPolicy
}
