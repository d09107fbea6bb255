package parser

import (
	"fmt"

	"wgslcst/internal/cst"
	"wgslcst/internal/diag"
	"wgslcst/internal/source"
	"wgslcst/internal/token"
)

// tokenSet is a bitset over token kinds.
type tokenSet [(token.NumKinds + 63) / 64]uint64

func setOf(kinds ...token.Kind) tokenSet {
	var s tokenSet
	for _, k := range kinds {
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

func (s tokenSet) has(k token.Kind) bool {
	return s[k/64]&(1<<(k%64)) != 0
}

func (s tokenSet) with(kinds ...token.Kind) tokenSet {
	return s.union(setOf(kinds...))
}

func (s tokenSet) union(o tokenSet) tokenSet {
	for i := range s {
		s[i] |= o[i]
	}
	return s
}

var (
	directiveStart = setOf(token.KwEnable, token.KwRequires, token.KwDiagnostic)

	declStart = setOf(
		token.Semicolon, token.At, token.KwFn, token.KwVar, token.KwOverride,
		token.KwConst, token.KwAlias, token.KwStruct, token.KwConstAssert,
	)

	stmtStart = setOf(
		token.Semicolon, token.LBrace, token.KwReturn, token.KwIf, token.KwSwitch,
		token.KwLoop, token.KwFor, token.KwWhile, token.KwBreak, token.KwContinue,
		token.KwContinuing, token.KwDiscard, token.KwVar, token.KwLet, token.KwConst,
		token.KwConstAssert, token.Ident, token.Underscore, token.Star, token.Amp,
		token.LParen,
	)

	// stmtSync is where a statement-level expectation stops skipping.
	stmtSync = stmtStart.with(token.RBrace)

	closeSync = setOf(token.Semicolon, token.LBrace, token.RBrace)

	assignOps = setOf(
		token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.AmpAssign, token.PipeAssign,
		token.CaretAssign, token.ShlAssign, token.ShrAssign,
	)

	templateClose = setOf(token.Gt, token.Shr, token.GtEq, token.ShrAssign)
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN looks n tokens ahead; it never runs past EOF.
func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(s tokenSet) bool {
	return s.has(p.peek().Kind)
}

// bump consumes the current token as a terminal. EOF is never consumed.
func (p *Parser) bump() *cst.Terminal {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return &cst.Terminal{Tok: tok}
}

// skip consumes the current token as a recovery leftover.
func (p *Parser) skip() *cst.Terminal {
	t := p.bump()
	t.Err = cst.ErrSkipped
	return t
}

// expect consumes kind into n. On mismatch it records one error, skips to
// kind or a token in sync (EOF always stops), and either consumes kind or
// leaves a missing placeholder.
func (p *Parser) expect(n *cst.Rule, kind token.Kind, sync tokenSet) bool {
	if p.at(kind) {
		n.Append(p.bump())
		return true
	}
	p.errorMissing(n, kind)
	p.skipUntil(n, sync.with(kind))
	if p.at(kind) {
		n.Append(p.bump())
		return true
	}
	n.Append(cst.NewMissing(kind, p.diagSpan()))
	return false
}

// expectNoSkip is expect without skipping, for tight spots such as type syntax.
func (p *Parser) expectNoSkip(n *cst.Rule, kind token.Kind) bool {
	if p.at(kind) {
		n.Append(p.bump())
		return true
	}
	p.errorMissing(n, kind)
	n.Append(cst.NewMissing(kind, p.diagSpan()))
	return false
}

// expectIdent consumes an identifier or leaves a placeholder.
func (p *Parser) expectIdent(n *cst.Rule) bool {
	return p.expectNoSkip(n, token.Ident)
}

func (p *Parser) skipUntil(n *cst.Rule, stop tokenSet) {
	for !p.at(token.EOF) && !p.atAny(stop) {
		if p.ctxErr != nil {
			return
		}
		n.Append(p.skip())
	}
}

// recover drops an unrecognised construct: skip to stop or EOF and
// consume a ';' found on the way. At least one token is dropped.
func (p *Parser) recover(n *cst.Rule, stop tokenSet) {
	start := p.pos
	stop = stop.with(token.Semicolon)
	p.skipUntil(n, stop)
	if p.at(token.Semicolon) {
		n.Append(p.skip())
	}
	if p.pos == start && !p.at(token.EOF) {
		n.Append(p.skip())
	}
}

func (p *Parser) errorExpected(rule string, kinds ...token.Kind) {
	p.record(p.expectedError(rule, kinds...))
}

func (p *Parser) expectedError(rule string, kinds ...token.Kind) *ParseError {
	code := diag.SynUnexpectedToken
	if len(kinds) == 1 {
		code = codeFor(kinds[0])
	}
	return &ParseError{Rule: rule, Expected: kinds, Found: p.peek(), Code: code}
}

// errorMissing records that kind is missing from n. A missing closer gets a
// note at its opener in n, a missing ';' a note where it belongs.
func (p *Parser) errorMissing(n *cst.Rule, kind token.Kind) {
	e := p.expectedError(n.Name, kind)
	if kind == token.Semicolon {
		if p.pos > 0 {
			e.Notes = append(e.Notes, diag.Note{Span: p.toks[p.pos-1].Span.Tail(), Msg: "insert ';' here"})
		}
	} else if open, ok := openers[kind]; ok {
		if t := lastTerminal(n, open); t != nil {
			e.Notes = append(e.Notes, diag.Note{Span: t.Tok.Span, Msg: "to match this " + open.Quoted()})
		}
	}
	p.record(e)
}

var openers = map[token.Kind]token.Kind{
	token.RParen:   token.LParen,
	token.RBrace:   token.LBrace,
	token.RBracket: token.LBracket,
	token.Gt:       token.Lt,
}

// lastTerminal finds the last real terminal of kind among the children of n.
func lastTerminal(n *cst.Rule, kind token.Kind) *cst.Terminal {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if t, ok := n.Children[i].(*cst.Terminal); ok && t.Err == cst.ErrNone && t.Tok.Kind == kind {
			return t
		}
	}
	return nil
}

func (p *Parser) errorf(rule string, code diag.Code, what string) {
	p.record(&ParseError{Rule: rule, What: what, Found: p.peek(), Code: code})
}

// record keeps at most one error per token position and honours MaxErrors.
func (p *Parser) record(e *ParseError) {
	if p.ctxErr != nil || p.lastErrAt == p.pos {
		return
	}
	if p.opts.Truncated && p.at(token.EOF) {
		return
	}
	p.lastErrAt = p.pos
	if p.opts.MaxErrors > 0 && uint(len(p.errs)) >= p.opts.MaxErrors {
		if !p.capped {
			p.capped = true
			diag.ReportError(p.opts.Reporter, diag.SynTooManyErrors, p.diagSpan(), "too many syntax errors, giving up reporting").Emit()
		}
		return
	}
	p.errs = append(p.errs, e)
	b := diag.ReportError(p.opts.Reporter, e.Code, p.diagSpan(), e.Error())
	for _, note := range e.Notes {
		b.WithNote(note.Span, note.Msg)
	}
	b.Emit()
}

// maxNesting caps nested blocks, parentheses, brackets, template lists and
// prefix operator chains. WGSL itself limits brace nesting to 127.
const maxNesting = 127

// enter opens one nesting level. Past maxNesting it records SynTooDeep and
// returns false; the caller then skips the construct instead of descending.
func (p *Parser) enter(rule string) bool {
	if p.depth < maxNesting {
		p.depth++
		return true
	}
	p.errorf(rule, diag.SynTooDeep, fmt.Sprintf("at most %d nested levels", maxNesting))
	return false
}

func (p *Parser) leave() { p.depth-- }

// skipGroup drops the group opened by the current token through its
// matching close. The tokens stay in n as skipped terminals.
func (p *Parser) skipGroup(n *cst.Rule, open, close token.Kind) {
	level := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case open:
			level++
		case close:
			level--
		}
		n.Append(p.skip())
		if level == 0 {
			return
		}
	}
}

// skipTemplateGroup is skipGroup for a template list. A '>>' that closes
// only the outermost level is split like in takeTemplateClose.
func (p *Parser) skipTemplateGroup(n *cst.Rule) {
	level := 0
	for !p.at(token.EOF) && !p.atAny(closeSync) {
		k := p.peek().Kind
		switch {
		case k == token.Lt:
			level++
		case k == token.Shr && level >= 2:
			level -= 2
		case templateClose.has(k):
			gt, _ := p.takeTemplateClose()
			gt.Err = cst.ErrSkipped
			n.Append(gt)
			if level--; level == 0 {
				return
			}
			continue
		}
		n.Append(p.skip())
		if level == 0 {
			return
		}
	}
}

// skipIfChain drops the rest of an else-if chain that nests too deep.
func (p *Parser) skipIfChain(n *cst.Rule) {
	for p.at(token.KwIf) {
		p.skipUntil(n, closeSync)
		if !p.at(token.LBrace) {
			return
		}
		p.skipGroup(n, token.LBrace, token.RBrace)
		if !p.at(token.KwElse) {
			return
		}
		n.Append(p.skip())
	}
	if p.at(token.LBrace) {
		p.skipGroup(n, token.LBrace, token.RBrace)
	}
}

// diagSpan is the current token span, or the end of the previous token at EOF.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.pos > 0 {
		return p.toks[p.pos-1].Span.Tail()
	}
	return tok.Span
}

// takeTemplateClose consumes a '>' closing a template list. A '>>', '>=' or
// '>>=' token is split: its first byte becomes the '>' and the rest stays.
func (p *Parser) takeTemplateClose() (*cst.Terminal, bool) {
	tok := p.peek()
	var rest token.Kind
	switch tok.Kind {
	case token.Gt:
		return p.bump(), true
	case token.Shr:
		rest = token.Gt
	case token.GtEq:
		rest = token.Assign
	case token.ShrAssign:
		rest = token.GtEq
	default:
		return nil, false
	}
	gt := token.Token{
		Kind:    token.Gt,
		Span:    source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + 1},
		Text:    tok.Text[:1],
		Leading: tok.Leading,
	}
	p.toks[p.pos] = token.Token{
		Kind: rest,
		Span: source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End},
		Text: tok.Text[1:],
	}
	return &cst.Terminal{Tok: gt}, true
}
