package testkit

import (
	"fmt"
	"sort"
	"strings"

	"fortio.org/safecast"

	"wgslcst/internal/cst"
	"wgslcst/internal/source"
	"wgslcst/internal/token"
)

// CheckSpanInvariants walks a parsed tree and checks:
// 1) every span lies in file and inside the content bounds
// 2) a non-empty rule spans exactly from its first to its last child
// 3) an empty rule and a missing placeholder have empty spans
// 4) real terminals appear in source order, do not overlap and carry their source text
func CheckSpanInvariants(root *cst.Rule, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	var check func(n cst.Node) error
	check = func(n cst.Node) error {
		sp := n.Span()
		if sp.File != sf.ID {
			return fmt.Errorf("%s: span points to file %d, want %d", n.Label(), sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("%s: span %v outside content of %d bytes", n.Label(), sp, lenContent)
		}

		switch x := n.(type) {
		case *cst.Terminal:
			if x.Err == cst.ErrMissing {
				if !sp.Empty() {
					return fmt.Errorf("%s: placeholder span %v is not empty", x.Label(), sp)
				}
				return nil
			}
			if sp.Start < prevEnd {
				return fmt.Errorf("%q at %v overlaps or precedes the previous token ending at %d", x.Tok.Text, sp, prevEnd)
			}
			if got := sf.Slice(sp); got != x.Tok.Text {
				return fmt.Errorf("token text %q differs from source %q at %v", x.Tok.Text, got, sp)
			}
			prevEnd = sp.End
		case *cst.Rule:
			if len(x.Children) == 0 {
				if !sp.Empty() {
					return fmt.Errorf("empty rule %s has span %v", x.Name, sp)
				}
				return nil
			}
			first, last := x.Children[0].Span(), x.Children[len(x.Children)-1].Span()
			if sp.Start != first.Start || sp.End != last.End {
				return fmt.Errorf("rule %s span %v does not run from %d to %d", x.Name, sp, first.Start, last.End)
			}
			for _, c := range x.Children {
				if c == nil {
					return fmt.Errorf("rule %s has a nil child", x.Name)
				}
				if err := check(c); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return check(root)
}

// CheckLossless verifies that the tree keeps every significant token:
// the text of its real terminals, in order, equals the text of tokens
// without Invalid and EOF. Split '>>' pieces concatenate back to the original.
func CheckLossless(root *cst.Rule, tokens []token.Token) error {
	var want, got strings.Builder
	for _, t := range tokens {
		if t.Kind == token.Invalid || t.Kind == token.EOF {
			continue
		}
		want.WriteString(t.Text)
		want.WriteByte(' ')
	}
	var pending string
	for term := range cst.Terminals(root) {
		if term.Err == cst.ErrMissing || term.Tok.Kind == token.EOF {
			continue
		}
		pending += term.Tok.Text
		if isSplitHead(term, tokens) {
			continue
		}
		got.WriteString(pending)
		got.WriteByte(' ')
		pending = ""
	}
	got.WriteString(pending)
	if want.String() != got.String() {
		return fmt.Errorf("tree tokens differ from the input:\n want %q\n  got %q", want.String(), got.String())
	}
	return nil
}

// isSplitHead reports whether term ends inside a longer input token.
// tokens are in source order.
func isSplitHead(term *cst.Terminal, tokens []token.Token) bool {
	sp := term.Tok.Span
	i := sort.Search(len(tokens), func(i int) bool { return tokens[i].Span.Start > sp.Start }) - 1
	if i < 0 {
		return false
	}
	t := tokens[i].Span
	return t.Start <= sp.Start && sp.End < t.End
}
