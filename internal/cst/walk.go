package cst

import "iter"

// Walk visits n and its descendants in pre-order. Returning false from
// visit skips the node's children.
func Walk(n Node, visit func(n Node, depth int) bool) {
	walk(n, 0, visit)
}

func walk(n Node, depth int, visit func(Node, int) bool) {
	if !visit(n, depth) {
		return
	}
	if r, ok := n.(*Rule); ok {
		for _, c := range r.Children {
			walk(c, depth+1, visit)
		}
	}
}

// Terminals yields every terminal under n in source order, placeholders included.
func Terminals(n Node) iter.Seq[*Terminal] {
	return func(yield func(*Terminal) bool) {
		var rec func(Node) bool
		rec = func(n Node) bool {
			switch x := n.(type) {
			case *Terminal:
				return yield(x)
			case *Rule:
				for _, c := range x.Children {
					if !rec(c) {
						return false
					}
				}
			}
			return true
		}
		rec(n)
	}
}

// Count returns the number of nodes in the tree.
func Count(n Node) int {
	total := 0
	Walk(n, func(Node, int) bool {
		total++
		return true
	})
	return total
}
