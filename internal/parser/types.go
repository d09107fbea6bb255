package parser

import (
	"wgslcst/internal/cst"
	"wgslcst/internal/diag"
	"wgslcst/internal/token"
)

// type_decl: ident template_list?
// In type position a '<' after the name always opens a template list.
func (p *Parser) parseTypeDecl() *cst.Rule {
	n := cst.NewRule(RuleTypeDecl, p.peek().Span)
	if !p.at(token.Ident) {
		p.errorf(RuleTypeDecl, diag.SynExpectType, "type")
		n.Append(cst.NewMissing(token.Ident, p.diagSpan()))
		return n
	}
	n.Append(p.bump())
	if p.at(token.Lt) {
		n.Append(p.parseTemplateList())
	}
	return n
}

// template_list: '<' template_arg (',' template_arg)* ','? '>'
func (p *Parser) parseTemplateList() *cst.Rule {
	n := cst.NewRule(RuleTemplateList, p.peek().Span)
	if !p.enter(RuleTemplateList) {
		p.skipTemplateGroup(n)
		return n
	}
	defer p.leave()
	n.Append(p.bump())
	for {
		start := p.pos
		n.Append(p.parseTemplateArg())
		if p.pos == start || !p.at(token.Comma) {
			break
		}
		n.Append(p.bump())
		if p.atAny(templateClose) {
			break
		}
	}
	p.closeTemplate(n)
	return n
}

// parseTemplateArg reads a type when an identifier is followed by something
// that can only continue a type, otherwise an additive-level expression.
func (p *Parser) parseTemplateArg() cst.Node {
	if p.at(token.Ident) {
		switch p.peekN(1).Kind {
		case token.Comma, token.Lt, token.Gt, token.Shr, token.GtEq, token.ShrAssign:
			return p.parseTypeDecl()
		}
	}
	return p.parseAdditive()
}

// closeTemplate expects the '>' ending a template list or variable qualifier.
func (p *Parser) closeTemplate(n *cst.Rule) {
	if gt, ok := p.takeTemplateClose(); ok {
		n.Append(gt)
		return
	}
	p.errorMissing(n, token.Gt)
	n.Append(cst.NewMissing(token.Gt, p.diagSpan()))
}
