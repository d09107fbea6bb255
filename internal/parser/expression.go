package parser

import (
	"wgslcst/internal/cst"
	"wgslcst/internal/diag"
	"wgslcst/internal/token"
)

// binaryLevel is one precedence level, loosest first. A level only creates a
// node when one of its operators is present; repeated operators nest to the left.
type binaryLevel struct {
	rule string
	ops  tokenSet
}

var binaryLevels = [...]binaryLevel{
	{RuleOr, setOf(token.OrOr)},
	{RuleAnd, setOf(token.AndAnd)},
	{RuleBitwise, setOf(token.Pipe)},
	{RuleBitwise, setOf(token.Caret)},
	{RuleBitwise, setOf(token.Amp)},
	{RuleRelational, setOf(token.EqEq, token.BangEq)},
	{RuleRelational, setOf(token.Lt, token.Gt, token.LtEq, token.GtEq)},
	{RuleShift, setOf(token.Shl, token.Shr)},
	{RuleAdditive, setOf(token.Plus, token.Minus)},
	{RuleMultiplicative, setOf(token.Star, token.Slash, token.Percent)},
}

// levelAdditive indexes binaryLevels; template arguments start there.
const levelAdditive = 8

var unaryOps = setOf(token.Minus, token.Bang, token.Tilde, token.Star, token.Amp)

// parseExpression parses at the loosest precedence level.
func (p *Parser) parseExpression() cst.Node { return p.parseLevel(0) }

func (p *Parser) parseAdditive() cst.Node { return p.parseLevel(levelAdditive) }

func (p *Parser) parseLevel(i int) cst.Node {
	if i == len(binaryLevels) {
		return p.parseUnary()
	}
	l := &binaryLevels[i]
	left := p.parseLevel(i + 1)
	for p.atAny(l.ops) {
		n := cst.NewRule(l.rule, left.Span())
		n.Append(left, p.bump(), p.parseLevel(i+1))
		left = n
	}
	return left
}

// unary_expression: ('-' | '!' | '~' | '*' | '&') unary_expression | postfix
func (p *Parser) parseUnary() cst.Node {
	if !p.atAny(unaryOps) {
		return p.parsePostfix(p.parsePrimary())
	}
	n := cst.NewRule(RuleUnary, p.peek().Span)
	n.Append(p.bump())
	if !p.enter(RuleUnary) {
		for p.atAny(unaryOps) {
			n.Append(p.skip())
		}
		n.Append(p.parsePostfix(p.parsePrimary()))
		return n
	}
	n.Append(p.parseUnary())
	p.leave()
	return n
}

// parsePostfix applies member and index accessors to base.
func (p *Parser) parsePostfix(base cst.Node) cst.Node {
	for {
		switch p.peek().Kind {
		case token.Dot:
			n := cst.NewRule(RuleMember, base.Span())
			n.Append(base, p.bump())
			p.expectIdent(n)
			base = n
		case token.LBracket:
			n := cst.NewRule(RuleIndex, base.Span())
			n.Append(base)
			if !p.enter(RuleIndex) {
				p.skipGroup(n, token.LBracket, token.RBracket)
				base = n
				continue
			}
			n.Append(p.bump(), p.parseExpression())
			p.expect(n, token.RBracket, closeSync.with(token.RParen))
			p.leave()
			base = n
		default:
			return base
		}
	}
}

func (p *Parser) parsePrimary() cst.Node {
	tok := p.peek()
	if tok.IsLiteral() {
		return p.bump()
	}
	switch tok.Kind {
	case token.LParen:
		n := cst.NewRule(RuleParen, tok.Span)
		if !p.enter(RuleParen) {
			p.skipGroup(n, token.LParen, token.RParen)
			return n
		}
		defer p.leave()
		n.Append(p.bump(), p.parseExpression())
		p.expect(n, token.RParen, closeSync.with(token.RBracket))
		return n
	case token.Ident:
		next := p.peekN(1).Kind
		if next == token.Lt && token.TemplatedTypeName(tok.Text) {
			n := cst.NewRule(RuleCall, tok.Span)
			n.Append(p.parseTypeDecl(), p.parseArgumentList())
			return n
		}
		if next == token.LParen {
			n := cst.NewRule(RuleCall, tok.Span)
			n.Append(p.bump(), p.parseArgumentList())
			return n
		}
		return p.bump()
	}
	p.errorf(RuleUnary, diag.SynExpectExpression, "expression")
	return cst.NewMissing(token.Ident, p.diagSpan())
}

// argument_list: '(' (expression (',' expression)* ','?)? ')'
func (p *Parser) parseArgumentList() *cst.Rule {
	n := cst.NewRule(RuleArgumentList, p.peek().Span)
	if !p.at(token.LParen) {
		p.expectNoSkip(n, token.LParen)
		return n
	}
	if !p.enter(RuleArgumentList) {
		p.skipGroup(n, token.LParen, token.RParen)
		return n
	}
	defer p.leave()
	n.Append(p.bump())
	for !p.at(token.RParen) && !p.at(token.EOF) {
		start := p.pos
		n.Append(p.parseExpression())
		if p.pos == start || !p.at(token.Comma) {
			break
		}
		n.Append(p.bump())
	}
	p.expect(n, token.RParen, closeSync.with(token.RBracket))
	return n
}
