package cst

import (
	"slices"

	"wgslcst/internal/source"
	"wgslcst/internal/token"
)

// Node is either a *Terminal or a *Rule.
type Node interface {
	Span() source.Span
	Label() string
	node()
}

// ErrKind marks terminals created by error recovery.
type ErrKind uint8

const (
	ErrNone ErrKind = iota
	// ErrSkipped is a real token discarded by recovery and kept for losslessness.
	ErrSkipped
	// ErrMissing is a placeholder for an expected token that was absent.
	ErrMissing
)

func (e ErrKind) String() string {
	switch e {
	case ErrSkipped:
		return "skipped"
	case ErrMissing:
		return "missing"
	default:
		return "none"
	}
}

// Terminal is a leaf holding exactly one token.
type Terminal struct {
	Tok token.Token
	Err ErrKind
}

// NewMissing builds a placeholder for kind with an empty span at sp.
func NewMissing(kind token.Kind, at source.Span) *Terminal {
	return &Terminal{
		Tok: token.Token{Kind: kind, Span: at.Head()},
		Err: ErrMissing,
	}
}

func (t *Terminal) node() {}

func (t *Terminal) Span() source.Span { return t.Tok.Span }

// Label is the lexeme, <missing 'x'> for a placeholder or <EOF>.
func (t *Terminal) Label() string {
	switch {
	case t.Err == ErrMissing:
		return "<missing " + t.Tok.Kind.Quoted() + ">"
	case t.Tok.Kind == token.EOF:
		return "<EOF>"
	}
	return t.Tok.Text
}

// Rule is an interior node named after the grammar rule that produced it.
type Rule struct {
	Name     string
	Children []Node
	span     source.Span
}

// NewRule starts an empty rule positioned at the start of at.
func NewRule(name string, at source.Span) *Rule {
	return &Rule{Name: name, span: at.Head()}
}

func (r *Rule) node() {}

// Span is the union of the children's spans; an empty rule keeps its start position.
func (r *Rule) Span() source.Span { return r.span }

func (r *Rule) Label() string { return r.Name }

// Append adds children in order and widens the span.
func (r *Rule) Append(nodes ...Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if len(r.Children) == 0 {
			r.span = n.Span()
		} else {
			r.span = r.span.Cover(n.Span())
		}
		r.Children = append(r.Children, n)
	}
}

// Prepend inserts nodes before the existing children.
// The parser uses it to attach attributes parsed ahead of a declaration.
func (r *Rule) Prepend(nodes ...Node) {
	if len(nodes) == 0 {
		return
	}
	old := r.Children
	r.Children = make([]Node, 0, len(nodes)+len(old))
	r.Append(nodes...)
	r.Append(old...)
}

// Rules returns the direct children that are rules named name.
func (r *Rule) Rules(name string) []*Rule {
	var out []*Rule
	for _, c := range r.Children {
		if cr, ok := c.(*Rule); ok && cr.Name == name {
			out = append(out, cr)
		}
	}
	return out
}

// IsLeaf reports whether n prints as a bare label.
func IsLeaf(n Node) bool {
	r, ok := n.(*Rule)
	return !ok || len(r.Children) == 0
}

// Equal compares two trees by shape, labels, kinds, error states and spans.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Terminal:
		y, ok := b.(*Terminal)
		return ok && x.Err == y.Err && x.Tok.Kind == y.Tok.Kind && x.Tok.Text == y.Tok.Text && x.Tok.Span == y.Tok.Span
	case *Rule:
		y, ok := b.(*Rule)
		if !ok || x.Name != y.Name || x.span != y.span {
			return false
		}
		return slices.EqualFunc(x.Children, y.Children, Equal)
	}
	return false
}
