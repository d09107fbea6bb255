package format

import (
	"bufio"
	"io"
	"strings"

	"wgslcst/internal/cst"
)

const indentUnit = "  "

// Tree renders n in the indented tree format:
//
//	label (
//	  child
//	  child (
//	    grandchild
//	  )
//	)
//
// Leaves (terminals and childless rules) print as their label alone.
func Tree(n cst.Node) string {
	var sb strings.Builder
	writeNode(&sb, n, 0)
	return sb.String()
}

// Fprint writes Tree(n) to w.
func Fprint(w io.Writer, n cst.Node) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, n, 0)
	return bw.Flush()
}

type stringWriter interface {
	WriteString(s string) (int, error)
}

// writeNode ignores write errors; bufio.Writer keeps the first one for Flush.
func writeNode(w stringWriter, n cst.Node, depth int) {
	prefix := strings.Repeat(indentUnit, depth)
	w.WriteString(prefix)
	w.WriteString(n.Label())

	r, ok := n.(*cst.Rule)
	if !ok || len(r.Children) == 0 {
		return
	}
	w.WriteString(" (\n")
	for _, c := range r.Children {
		writeNode(w, c, depth+1)
		w.WriteString("\n")
	}
	w.WriteString(prefix)
	w.WriteString(")")
}

// Depth is the nesting level of parentheses Tree(n) produces:
// 0 for a leaf, one more than the deepest child otherwise.
func Depth(n cst.Node) int {
	r, ok := n.(*cst.Rule)
	if !ok || len(r.Children) == 0 {
		return 0
	}
	deepest := 0
	for _, c := range r.Children {
		deepest = max(deepest, Depth(c))
	}
	return deepest + 1
}

// Leaves returns the labels of the leaf lines of Tree(n), in order.
func Leaves(n cst.Node) []string {
	var out []string
	cst.Walk(n, func(n cst.Node, _ int) bool {
		if cst.IsLeaf(n) {
			out = append(out, n.Label())
		}
		return true
	})
	return out
}
