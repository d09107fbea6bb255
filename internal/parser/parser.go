package parser

import (
	"context"

	"wgslcst/internal/cst"
	"wgslcst/internal/diag"
	"wgslcst/internal/source"
	"wgslcst/internal/token"
)

type Options struct {
	// MaxErrors caps the recorded errors; 0 means unlimited.
	MaxErrors uint
	// Reporter receives every recorded error as a diagnostic. May be nil.
	Reporter diag.Reporter
	// Truncated marks a stream cut short by a lexer abort. Its EOF is not
	// the end of the source, so errors found at EOF are not recorded.
	Truncated bool
	// KeepEOF appends the EOF token as the last child of translation_unit.
	KeepEOF bool
}

// Result is the outcome of one Parse call.
// Root is never nil; with errors it is a partial tree containing
// skipped tokens and missing placeholders.
type Result struct {
	Root   *cst.Rule
	Errors []*ParseError
	// Err is set when ctx was cancelled before the parse finished.
	Err error
}

// Parser holds the state of one parse. It is not reused.
type Parser struct {
	ctx  context.Context
	toks []token.Token
	pos  int
	opts Options

	errs      []*ParseError
	lastErrAt int // token index of the last recorded error, -1 if none
	capped    bool
	ctxErr    error
	depth     int // open nesting levels, see enter
}

// Parse builds the tree of translation_unit from tokens.
// tokens is copied; Invalid tokens are dropped and a missing EOF is added.
func Parse(ctx context.Context, tokens []token.Token, opts Options) Result {
	p := newParser(ctx, tokens, opts)
	root := p.parseTranslationUnit()
	return Result{Root: root, Errors: p.errs, Err: p.ctxErr}
}

func newParser(ctx context.Context, tokens []token.Token, opts Options) *Parser {
	if ctx == nil {
		ctx = context.Background()
	}
	toks := make([]token.Token, 0, len(tokens)+1)
	for _, t := range tokens {
		if t.Kind == token.Invalid {
			continue
		}
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		var at source.Span
		if len(toks) > 0 {
			at = toks[len(toks)-1].Span.Tail()
		}
		toks = append(toks, token.Token{Kind: token.EOF, Span: at})
	}
	return &Parser{
		ctx:       ctx,
		toks:      toks,
		opts:      opts,
		lastErrAt: -1,
	}
}

// stopped polls ctx; once it is done the parser unwinds without recording more errors.
func (p *Parser) stopped() bool {
	if p.ctxErr != nil {
		return true
	}
	if err := p.ctx.Err(); err != nil {
		p.ctxErr = err
		return true
	}
	return false
}

// parseTranslationUnit: global_directive* global_decl* EOF.
func (p *Parser) parseTranslationUnit() *cst.Rule {
	n := cst.NewRule(RuleTranslationUnit, p.peek().Span)

	for p.atAny(directiveStart) {
		n.Append(p.parseGlobalDirective())
	}

	for !p.at(token.EOF) {
		if p.stopped() {
			break
		}
		start := p.pos
		switch {
		case p.atAny(directiveStart):
			p.errorf(RuleTranslationUnit, diag.SynDirectiveAfterDecl, "declaration")
			n.Append(p.parseGlobalDirective())
		case p.atAny(declStart):
			if !p.parseGlobalDecl(n) {
				p.recover(n, declStart.union(directiveStart))
			}
		default:
			p.record(&ParseError{
				Rule:     RuleTranslationUnit,
				Expected: []token.Kind{token.EOF},
				What:     "declaration or end of input",
				Found:    p.peek(),
				Code:     diag.SynTrailingInput,
			})
			p.recover(n, declStart.union(directiveStart))
		}
		if p.pos == start && !p.at(token.EOF) {
			n.Append(p.skip())
		}
	}
	if p.opts.KeepEOF && p.ctxErr == nil {
		n.Append(p.bump())
	}
	return n
}
