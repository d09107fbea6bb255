package lexer

import (
	"fmt"

	"wgslcst/internal/diag"
	"wgslcst/internal/source"
)

// LexError describes input that could not be turned into a token.
type LexError struct {
	Code diag.Code
	Span source.Span
	// Char is the offending character for LexUnknownChar, 0 otherwise.
	Char rune
	Msg  string
}

// Offset is the byte offset where the error starts.
func (e *LexError) Offset() uint32 { return e.Span.Start }

func (e *LexError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Span.Start, e.Msg)
}

// errLex records the error, forwards it to the reporter and applies the error policy.
func (lx *Lexer) errLex(code diag.Code, sp source.Span, ch rune, msg string) {
	lx.errs = append(lx.errs, &LexError{Code: code, Span: sp, Char: ch, Msg: msg})
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	if lx.opts.OnError == AbortOnError {
		lx.aborted = true
	}
}

func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
}
