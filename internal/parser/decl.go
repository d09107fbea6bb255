package parser

import (
	"wgslcst/internal/cst"
	"wgslcst/internal/diag"
	"wgslcst/internal/token"
)

var topSync = declStart.union(directiveStart)

func (p *Parser) parseGlobalDirective() *cst.Rule {
	switch p.peek().Kind {
	case token.KwEnable:
		return p.parseNameListDirective(RuleEnableDirective)
	case token.KwRequires:
		return p.parseNameListDirective(RuleRequiresDirective)
	default:
		return p.parseDiagnosticDirective()
	}
}

// enable_directive | requires_directive: kw ident (',' ident)* ','? ';'
func (p *Parser) parseNameListDirective(rule string) *cst.Rule {
	n := cst.NewRule(rule, p.peek().Span)
	n.Append(p.bump())
	p.expectIdent(n)
	for p.at(token.Comma) {
		n.Append(p.bump())
		if !p.at(token.Ident) {
			break
		}
		n.Append(p.bump())
	}
	p.expect(n, token.Semicolon, topSync)
	return n
}

func (p *Parser) parseDiagnosticDirective() *cst.Rule {
	n := cst.NewRule(RuleDiagnosticDirective, p.peek().Span)
	n.Append(p.bump())
	n.Append(p.parseDiagnosticControl())
	p.expect(n, token.Semicolon, topSync)
	return n
}

// diagnostic_control: '(' severity ',' rule ('.' ident)? ','? ')'
func (p *Parser) parseDiagnosticControl() *cst.Rule {
	n := cst.NewRule(RuleDiagnosticControl, p.peek().Span)
	if !p.expectNoSkip(n, token.LParen) {
		return n
	}
	p.expectIdent(n)
	p.expectNoSkip(n, token.Comma)
	p.expectIdent(n)
	if p.at(token.Dot) {
		n.Append(p.bump())
		p.expectIdent(n)
	}
	if p.at(token.Comma) {
		n.Append(p.bump())
	}
	p.expect(n, token.RParen, closeSync.union(topSync))
	return n
}

// parseGlobalDecl appends one declaration to unit. It returns false when
// nothing declaration-like was found after the attributes.
func (p *Parser) parseGlobalDecl(unit *cst.Rule) bool {
	if p.at(token.Semicolon) {
		unit.Append(p.bump())
		return true
	}

	attrs := p.parseAttributes()

	var n *cst.Rule
	switch p.peek().Kind {
	case token.KwFn:
		n = p.parseFunctionDecl()
	case token.KwVar:
		n = p.parseGlobalVariableDecl()
	case token.KwOverride:
		n = p.parseOverrideDecl()
	case token.KwConst:
		n = p.parseGlobalConstantDecl()
	case token.KwAlias:
		n = p.parseTypeAliasDecl()
	case token.KwStruct:
		n = p.parseStructDecl()
	case token.KwConstAssert:
		n = p.parseConstAssert()
	default:
		unit.Append(attrs...)
		p.errorf(RuleTranslationUnit, diag.SynExpectDeclaration, "declaration")
		return false
	}
	n.Prepend(attrs...)
	unit.Append(n)
	return true
}

func (p *Parser) parseAttributes() []cst.Node {
	var attrs []cst.Node
	for p.at(token.At) {
		attrs = append(attrs, p.parseAttribute())
	}
	return attrs
}

// attribute: '@' (ident | 'const' | 'diagnostic') argument_list?
func (p *Parser) parseAttribute() *cst.Rule {
	n := cst.NewRule(RuleAttribute, p.peek().Span)
	n.Append(p.bump())
	switch p.peek().Kind {
	case token.Ident, token.KwConst, token.KwDiagnostic:
		n.Append(p.bump())
	default:
		p.errorf(RuleAttribute, diag.SynExpectIdentifier, "attribute name")
		n.Append(cst.NewMissing(token.Ident, p.diagSpan()))
		return n
	}
	if p.at(token.LParen) {
		n.Append(p.parseArgumentList())
	}
	return n
}

// function_decl: attribute* 'fn' ident '(' param_list? ')' ('->' attribute* type_decl)? block
func (p *Parser) parseFunctionDecl() *cst.Rule {
	n := cst.NewRule(RuleFunctionDecl, p.peek().Span)
	n.Append(p.bump())
	p.expectIdent(n)
	if p.expect(n, token.LParen, setOf(token.LBrace, token.Arrow).union(topSync)) {
		if p.at(token.Ident) || p.at(token.At) {
			n.Append(p.parseParamList())
		}
		p.expect(n, token.RParen, setOf(token.Arrow, token.LBrace).union(topSync))
	}
	if p.at(token.Arrow) {
		n.Append(p.bump())
		n.Append(p.parseAttributes()...)
		n.Append(p.parseTypeDecl())
	}
	n.Append(p.parseBlock())
	return n
}

func (p *Parser) parseParamList() *cst.Rule {
	n := cst.NewRule(RuleParamList, p.peek().Span)
	for {
		n.Append(p.parseParam())
		if !p.at(token.Comma) {
			break
		}
		n.Append(p.bump())
		if !p.at(token.Ident) && !p.at(token.At) {
			break
		}
	}
	return n
}

// param: attribute* ident ':' type_decl
func (p *Parser) parseParam() *cst.Rule {
	return p.parseTypedMember(RuleParam)
}

// struct_decl: 'struct' ident '{' struct_member (',' struct_member)* ','? '}'
func (p *Parser) parseStructDecl() *cst.Rule {
	n := cst.NewRule(RuleStructDecl, p.peek().Span)
	n.Append(p.bump())
	p.expectIdent(n)
	if !p.expect(n, token.LBrace, topSync) {
		return n
	}
	members := 0
	for p.at(token.Ident) || p.at(token.At) {
		n.Append(p.parseTypedMember(RuleStructMember))
		members++
		if !p.at(token.Comma) {
			break
		}
		n.Append(p.bump())
	}
	if members == 0 {
		p.errorf(RuleStructDecl, diag.SynEmptyStruct, "struct member")
	}
	p.expect(n, token.RBrace, topSync)
	return n
}

func (p *Parser) parseTypedMember(rule string) *cst.Rule {
	n := cst.NewRule(rule, p.peek().Span)
	n.Append(p.parseAttributes()...)
	p.expectIdent(n)
	p.expectNoSkip(n, token.Colon)
	n.Append(p.parseTypeDecl())
	return n
}

// global_variable_decl: attribute* variable_decl ('=' expression)? ';'
func (p *Parser) parseGlobalVariableDecl() *cst.Rule {
	n := cst.NewRule(RuleGlobalVariableDecl, p.peek().Span)
	n.Append(p.parseVariableDecl())
	p.parseInitializer(n, false)
	p.expect(n, token.Semicolon, topSync)
	return n
}

// variable_decl: 'var' variable_qualifier? optionally_typed_ident
func (p *Parser) parseVariableDecl() *cst.Rule {
	n := cst.NewRule(RuleVariableDecl, p.peek().Span)
	n.Append(p.bump())
	if p.at(token.Lt) {
		n.Append(p.parseVariableQualifier())
	}
	n.Append(p.parseOptionallyTypedIdent())
	return n
}

// variable_qualifier: '<' ident (',' ident)? '>'
func (p *Parser) parseVariableQualifier() *cst.Rule {
	n := cst.NewRule(RuleVariableQualifier, p.peek().Span)
	n.Append(p.bump())
	p.expectIdent(n)
	if p.at(token.Comma) {
		n.Append(p.bump())
		p.expectIdent(n)
	}
	p.closeTemplate(n)
	return n
}

func (p *Parser) parseOptionallyTypedIdent() *cst.Rule {
	n := cst.NewRule(RuleOptionallyTypedID, p.peek().Span)
	p.expectIdent(n)
	if p.at(token.Colon) {
		n.Append(p.bump())
		n.Append(p.parseTypeDecl())
	}
	return n
}

// parseInitializer handles "'=' expression", optional unless required.
func (p *Parser) parseInitializer(n *cst.Rule, required bool) {
	if !p.at(token.Assign) {
		if required {
			p.expectNoSkip(n, token.Assign)
			n.Append(p.parseExpression())
		}
		return
	}
	n.Append(p.bump())
	n.Append(p.parseExpression())
}

// override_decl: attribute* 'override' optionally_typed_ident ('=' expression)? ';'
func (p *Parser) parseOverrideDecl() *cst.Rule {
	n := cst.NewRule(RuleOverrideDecl, p.peek().Span)
	n.Append(p.bump())
	n.Append(p.parseOptionallyTypedIdent())
	p.parseInitializer(n, false)
	p.expect(n, token.Semicolon, topSync)
	return n
}

// global_constant_decl: 'const' optionally_typed_ident '=' expression ';'
func (p *Parser) parseGlobalConstantDecl() *cst.Rule {
	n := cst.NewRule(RuleGlobalConstantDecl, p.peek().Span)
	n.Append(p.bump())
	n.Append(p.parseOptionallyTypedIdent())
	p.parseInitializer(n, true)
	p.expect(n, token.Semicolon, topSync)
	return n
}

// type_alias_decl: 'alias' ident '=' type_decl ';'
func (p *Parser) parseTypeAliasDecl() *cst.Rule {
	n := cst.NewRule(RuleTypeAliasDecl, p.peek().Span)
	n.Append(p.bump())
	p.expectIdent(n)
	p.expectNoSkip(n, token.Assign)
	n.Append(p.parseTypeDecl())
	p.expect(n, token.Semicolon, topSync)
	return n
}

// const_assert_statement: 'const_assert' expression ';'
// Used at module scope and as a statement, so it syncs on both.
func (p *Parser) parseConstAssert() *cst.Rule {
	n := cst.NewRule(RuleConstAssert, p.peek().Span)
	n.Append(p.bump())
	n.Append(p.parseExpression())
	p.expect(n, token.Semicolon, topSync.union(stmtSync))
	return n
}
