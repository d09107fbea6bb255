package format

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"wgslcst/internal/cst"
)

// ExportNode is a serialisable mirror of a tree node.
type ExportNode struct {
	Rule     string       `json:"rule,omitempty" yaml:"rule,omitempty"`
	Token    string       `json:"token,omitempty" yaml:"token,omitempty"`
	Text     string       `json:"text,omitempty" yaml:"text,omitempty"`
	Error    string       `json:"error,omitempty" yaml:"error,omitempty"`
	Start    uint32       `json:"start" yaml:"start"`
	End      uint32       `json:"end" yaml:"end"`
	Children []ExportNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Export converts n into ExportNode form.
func Export(n cst.Node) ExportNode {
	sp := n.Span()
	out := ExportNode{Start: sp.Start, End: sp.End}
	switch x := n.(type) {
	case *cst.Terminal:
		out.Token = x.Tok.Kind.String()
		out.Text = x.Tok.Text
		if x.Err != cst.ErrNone {
			out.Error = x.Err.String()
		}
	case *cst.Rule:
		out.Rule = x.Name
		if len(x.Children) > 0 {
			out.Children = make([]ExportNode, 0, len(x.Children))
			for _, c := range x.Children {
				out.Children = append(out.Children, Export(c))
			}
		}
	}
	return out
}

// WriteJSON writes the exported tree as indented JSON.
func WriteJSON(w io.Writer, n cst.Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export(n)); err != nil {
		return fmt.Errorf("encode tree json: %w", err)
	}
	return nil
}

// WriteYAML writes the exported tree as YAML.
func WriteYAML(w io.Writer, n cst.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Export(n)); err != nil {
		return fmt.Errorf("encode tree yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode tree yaml: %w", err)
	}
	return nil
}
