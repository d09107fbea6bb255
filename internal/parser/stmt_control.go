package parser

import (
	"wgslcst/internal/cst"
	"wgslcst/internal/token"
)

// return_statement: 'return' expression? ';'
func (p *Parser) parseReturn() *cst.Rule {
	n := cst.NewRule(RuleReturn, p.peek().Span)
	n.Append(p.bump())
	if !p.at(token.Semicolon) && !p.at(token.RBrace) {
		n.Append(p.parseExpression())
	}
	p.expect(n, token.Semicolon, stmtSync)
	return n
}

// if_statement: 'if' expression block ('else' (if_statement | block))?
func (p *Parser) parseIf() *cst.Rule {
	n := cst.NewRule(RuleIf, p.peek().Span)
	n.Append(p.bump(), p.parseExpression(), p.parseBlock())
	if p.at(token.KwElse) {
		n.Append(p.bump())
		switch {
		case !p.at(token.KwIf):
			n.Append(p.parseBlock())
		case p.enter(RuleIf):
			n.Append(p.parseIf())
			p.leave()
		default:
			p.skipIfChain(n)
		}
	}
	return n
}

// switch_statement: 'switch' expression '{' (case_clause | default_clause)+ '}'
func (p *Parser) parseSwitch() *cst.Rule {
	n := cst.NewRule(RuleSwitch, p.peek().Span)
	n.Append(p.bump(), p.parseExpression())
	if !p.expect(n, token.LBrace, stmtSync) {
		return n
	}
	clauses := 0
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.stopped() {
			return n
		}
		switch p.peek().Kind {
		case token.KwCase:
			n.Append(p.parseCaseClause())
			clauses++
		case token.KwDefault:
			n.Append(p.parseDefaultClause())
			clauses++
		default:
			p.errorExpected(RuleSwitch, token.KwCase, token.KwDefault)
			p.recover(n, setOf(token.KwCase, token.KwDefault, token.RBrace))
		}
	}
	if clauses == 0 {
		p.errorExpected(RuleSwitch, token.KwCase, token.KwDefault)
	}
	p.expect(n, token.RBrace, stmtSync)
	return n
}

// case_clause: 'case' case_selector (',' case_selector)* ','? ':'? block
func (p *Parser) parseCaseClause() *cst.Rule {
	n := cst.NewRule(RuleCaseClause, p.peek().Span)
	n.Append(p.bump())
	for {
		start := p.pos
		if p.at(token.KwDefault) {
			n.Append(p.bump())
		} else {
			n.Append(p.parseExpression())
		}
		if p.pos == start || !p.at(token.Comma) {
			break
		}
		n.Append(p.bump())
		if p.at(token.Colon) || p.at(token.LBrace) {
			break
		}
	}
	if p.at(token.Colon) {
		n.Append(p.bump())
	}
	n.Append(p.parseBlock())
	return n
}

// default_clause: 'default' ':'? block
func (p *Parser) parseDefaultClause() *cst.Rule {
	n := cst.NewRule(RuleDefaultClause, p.peek().Span)
	n.Append(p.bump())
	if p.at(token.Colon) {
		n.Append(p.bump())
	}
	n.Append(p.parseBlock())
	return n
}

// loop_statement and continuing_statement: keyword block
func (p *Parser) parseKeywordBlock(rule string) *cst.Rule {
	n := cst.NewRule(rule, p.peek().Span)
	n.Append(p.bump(), p.parseBlock())
	return n
}

// continue_statement and discard_statement: keyword ';'
func (p *Parser) parseKeywordSemi(rule string) *cst.Rule {
	n := cst.NewRule(rule, p.peek().Span)
	n.Append(p.bump())
	p.expect(n, token.Semicolon, stmtSync)
	return n
}

// for_statement: 'for' '(' for_init? ';' expression? ';' for_update? ')' block
func (p *Parser) parseFor() *cst.Rule {
	n := cst.NewRule(RuleFor, p.peek().Span)
	n.Append(p.bump())
	header := setOf(token.Semicolon, token.RParen, token.LBrace)
	if !p.expect(n, token.LParen, header) {
		n.Append(p.parseBlock())
		return n
	}
	if !p.at(token.Semicolon) {
		n.Append(p.parseSimpleStatement(false))
	}
	p.expect(n, token.Semicolon, header)
	if !p.at(token.Semicolon) {
		n.Append(p.parseExpression())
	}
	p.expect(n, token.Semicolon, header)
	if !p.at(token.RParen) {
		n.Append(p.parseSimpleStatement(false))
	}
	p.expect(n, token.RParen, setOf(token.LBrace).union(stmtSync))
	n.Append(p.parseBlock())
	return n
}

// while_statement: 'while' expression block
func (p *Parser) parseWhile() *cst.Rule {
	n := cst.NewRule(RuleWhile, p.peek().Span)
	n.Append(p.bump(), p.parseExpression(), p.parseBlock())
	return n
}

// break_statement: 'break' ';'
// break_if_statement: 'break' 'if' expression ';'
func (p *Parser) parseBreak() *cst.Rule {
	if p.peekN(1).Kind != token.KwIf {
		return p.parseKeywordSemi(RuleBreak)
	}
	n := cst.NewRule(RuleBreakIf, p.peek().Span)
	n.Append(p.bump(), p.bump(), p.parseExpression())
	p.expect(n, token.Semicolon, stmtSync)
	return n
}
