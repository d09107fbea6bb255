package lexer

import (
	"wgslcst/internal/diag"
	"wgslcst/internal/token"
)

// scanNumber scans an integer or float literal:
//
//	int:   0 | [1-9][0-9]* | 0[xX][0-9a-fA-F]+, optional i/u suffix
//	float: [0-9]*.[0-9]+ | [0-9]+.[0-9]* | [0-9]+ with exponent e[+-]?[0-9]+,
//	       hex mantissa with p[+-]?[0-9]+ exponent, optional f/h suffix
//
// Anything identifier-like glued to the literal makes the whole run a bad number.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		return lx.scanHexNumber(start)
	}

	kind := token.IntLit
	intDigits := lx.eatDigits(isDec)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		fracDigits := lx.eatDigits(isDec)
		if intDigits == 0 && fracDigits == 0 {
			return lx.badNumber(start, "expected digit after '.'")
		}
		kind = token.FloatLit
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if !lx.eatExponent() {
			return lx.badNumber(start, "expected digit in exponent")
		}
		kind = token.FloatLit
	}

	switch lx.cursor.Peek() {
	case 'i', 'u':
		if kind == token.FloatLit {
			return lx.badNumber(start, "integer suffix on a float literal")
		}
		lx.cursor.Bump()
	case 'f', 'h':
		lx.cursor.Bump()
		kind = token.FloatLit
	}

	if kind == token.IntLit && intDigits > 1 && lx.file.Content[start] == '0' {
		return lx.badNumber(start, "leading zero in integer literal")
	}
	if isIdentContinueByte(lx.cursor.Peek()) {
		return lx.badNumber(start, "invalid character in numeric literal")
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) scanHexNumber(start Mark) token.Token {
	lx.cursor.Bump() // '0'
	lx.cursor.Bump() // 'x'

	kind := token.IntLit
	intDigits := lx.eatDigits(isHex)
	fracDigits := 0
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		fracDigits = lx.eatDigits(isHex)
		kind = token.FloatLit
	}
	if intDigits == 0 && fracDigits == 0 {
		return lx.badNumber(start, "expected hex digit")
	}

	if b := lx.cursor.Peek(); b == 'p' || b == 'P' {
		lx.cursor.Bump()
		if !lx.eatExponent() {
			return lx.badNumber(start, "expected digit in exponent")
		}
		kind = token.FloatLit
		if b := lx.cursor.Peek(); b == 'f' || b == 'h' {
			lx.cursor.Bump()
		}
	} else if kind == token.IntLit {
		if b := lx.cursor.Peek(); b == 'i' || b == 'u' {
			lx.cursor.Bump()
		}
	}

	if isIdentContinueByte(lx.cursor.Peek()) {
		return lx.badNumber(start, "invalid character in numeric literal")
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) eatDigits(ok func(byte) bool) int {
	n := 0
	for ok(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	return n
}

// eatExponent consumes [+-]?[0-9]+ after the exponent letter.
func (lx *Lexer) eatExponent() bool {
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	return lx.eatDigits(isDec) > 0
}

// badNumber swallows the rest of the alphanumeric run and reports it as one Invalid token.
func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexBadNumber, tok.Span, 0, msg)
	return tok
}
