package lexer

import (
	"iter"

	"wgslcst/internal/source"
	"wgslcst/internal/token"
)

// Lexer turns one source file into significant tokens, lazily.
// It is not resumable across files and holds no global state.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	look    *token.Token   // one-token lookahead buffer
	hold    []token.Trivia // trivia collected for the next token
	errs    []*LexError
	aborted bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token with its Leading trivia.
// After EOF (or after an error under AbortOnError) it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if !lx.aborted {
		lx.collectLeadingTrivia()
	}

	// Leading trivia is not attached to EOF.
	if lx.aborted || lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '_':
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '_' && isIdentContinueByte(b1) {
			tok = lx.scanIdentOrKeyword()
		} else {
			tok = lx.scanOperatorOrPunct()
		}
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Kind == token.Invalid && lx.aborted {
		lx.cursor.Reset(start)
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All yields every significant token in order and stops before EOF.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF || !yield(tok) {
				return
			}
		}
	}
}

// Collect drains the lexer into a slice that always ends with one EOF token.
func (lx *Lexer) Collect() []token.Token {
	tokens := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for tok := range lx.All() {
		tokens = append(tokens, tok)
	}
	return append(tokens, lx.Next())
}

// Aborted reports whether an error under AbortOnError ended the stream early.
func (lx *Lexer) Aborted() bool {
	return lx.aborted
}

// Errors returns the lexical errors seen so far, in source order.
func (lx *Lexer) Errors() []*LexError {
	return lx.errs
}

// EmptySpan is the empty span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.At(lx.file.ID, lx.cursor.Off)
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
