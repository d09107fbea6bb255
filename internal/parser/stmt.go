package parser

import (
	"wgslcst/internal/cst"
	"wgslcst/internal/diag"
	"wgslcst/internal/token"
)

// block: '{' statement* '}'
func (p *Parser) parseBlock() *cst.Rule {
	n := cst.NewRule(RuleBlock, p.peek().Span)
	if p.at(token.LBrace) {
		if !p.enter(RuleBlock) {
			p.skipGroup(n, token.LBrace, token.RBrace)
			return n
		}
		defer p.leave()
	}
	if !p.expect(n, token.LBrace, topSync.with(token.RBrace)) {
		n.Append(cst.NewMissing(token.RBrace, p.diagSpan()))
		return n
	}
	p.parseStatements(n)
	p.expect(n, token.RBrace, topSync)
	return n
}

// parseStatements fills n until '}' or EOF.
func (p *Parser) parseStatements(n *cst.Rule) {
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.stopped() {
			return
		}
		if s := p.parseStatement(); s != nil {
			n.Append(s)
			continue
		}
		p.errorf(n.Name, diag.SynExpectStatement, "statement")
		p.recover(n, stmtSync)
	}
}

// parseStatement returns nil, consuming nothing, when no statement starts here.
func (p *Parser) parseStatement() cst.Node {
	switch p.peek().Kind {
	case token.Semicolon:
		return p.bump()
	case token.LBrace:
		return p.parseBlock()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwLoop:
		return p.parseKeywordBlock(RuleLoop)
	case token.KwContinuing:
		return p.parseKeywordBlock(RuleContinuing)
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwBreak:
		return p.parseBreak()
	case token.KwContinue:
		return p.parseKeywordSemi(RuleContinue)
	case token.KwDiscard:
		return p.parseKeywordSemi(RuleDiscard)
	case token.KwConstAssert:
		return p.parseConstAssert()
	case token.KwVar, token.KwLet, token.KwConst,
		token.Ident, token.Underscore, token.Star, token.Amp, token.LParen:
		return p.parseSimpleStatement(true)
	}
	return nil
}

// parseSimpleStatement covers the forms also allowed in for_init and
// for_update: variable, call, assignment, increment and decrement.
// withSemi is false inside a for header.
func (p *Parser) parseSimpleStatement(withSemi bool) *cst.Rule {
	var n *cst.Rule
	tok := p.peek()
	switch tok.Kind {
	case token.KwVar:
		n = cst.NewRule(RuleVariableStmt, tok.Span)
		n.Append(p.parseVariableDecl())
		p.parseInitializer(n, false)
	case token.KwLet, token.KwConst:
		n = cst.NewRule(RuleVariableStmt, tok.Span)
		n.Append(p.bump(), p.parseOptionallyTypedIdent())
		p.parseInitializer(n, true)
	case token.Underscore:
		n = cst.NewRule(RuleAssignment, tok.Span)
		n.Append(p.bump())
		p.expectNoSkip(n, token.Assign)
		n.Append(p.parseExpression())
	case token.Ident:
		if call := p.tryCallStatement(); call != nil {
			n = call
			break
		}
		n = p.parseLhsStatement()
	default:
		n = p.parseLhsStatement()
	}
	if withSemi {
		p.expect(n, token.Semicolon, stmtSync)
	}
	return n
}

// tryCallStatement handles "ident argument_list" and "type_decl argument_list".
func (p *Parser) tryCallStatement() *cst.Rule {
	tok := p.peek()
	next := p.peekN(1).Kind
	switch {
	case next == token.LParen:
		n := cst.NewRule(RuleFuncCallStmt, tok.Span)
		n.Append(p.bump(), p.parseArgumentList())
		return n
	case next == token.Lt && token.TemplatedTypeName(tok.Text):
		n := cst.NewRule(RuleFuncCallStmt, tok.Span)
		n.Append(p.parseTypeDecl(), p.parseArgumentList())
		return n
	}
	return nil
}

// parseLhsStatement: lhs ('++' | '--' | assign_op expression)
func (p *Parser) parseLhsStatement() *cst.Rule {
	lhs := p.parseLhs()
	var n *cst.Rule
	switch {
	case p.at(token.PlusPlus):
		n = cst.NewRule(RuleIncrement, lhs.Span())
		n.Append(lhs, p.bump())
	case p.at(token.MinusMinus):
		n = cst.NewRule(RuleDecrement, lhs.Span())
		n.Append(lhs, p.bump())
	case p.peek().Kind.IsAssignOp():
		n = cst.NewRule(RuleAssignment, lhs.Span())
		n.Append(lhs, p.bump(), p.parseExpression())
	default:
		n = cst.NewRule(RuleAssignment, lhs.Span())
		n.Append(lhs)
		p.errorExpected(RuleAssignment, token.Assign, token.PlusPlus, token.MinusMinus)
		n.Append(cst.NewMissing(token.Assign, p.diagSpan()))
	}
	return n
}

// lhs: ('*' | '&')* (ident | '(' lhs ')') ('.' ident | '[' expression ']')*
func (p *Parser) parseLhs() cst.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.Star, token.Amp:
		n := cst.NewRule(RuleUnary, tok.Span)
		n.Append(p.bump())
		if !p.enter(RuleUnary) {
			for p.at(token.Star) || p.at(token.Amp) {
				n.Append(p.skip())
			}
			n.Append(p.parseLhs())
			return n
		}
		n.Append(p.parseLhs())
		p.leave()
		return n
	case token.LParen:
		n := cst.NewRule(RuleParen, tok.Span)
		if !p.enter(RuleParen) {
			p.skipGroup(n, token.LParen, token.RParen)
			return p.parsePostfix(n)
		}
		n.Append(p.bump(), p.parseLhs())
		p.expect(n, token.RParen, stmtSync.union(assignOps))
		p.leave()
		return p.parsePostfix(n)
	case token.Ident:
		return p.parsePostfix(p.bump())
	}
	p.errorf(RuleAssignment, diag.SynExpectIdentifier, "identifier")
	return cst.NewMissing(token.Ident, p.diagSpan())
}
