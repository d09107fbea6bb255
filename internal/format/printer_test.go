package format_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"wgslcst/internal/cst"
	"wgslcst/internal/format"
	"wgslcst/internal/lexer"
	"wgslcst/internal/parser"
	"wgslcst/internal/source"
	"wgslcst/internal/token"
)

func parseSrc(t *testing.T, src string) *cst.Rule {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.wgsl", []byte(src)))
	toks := lexer.New(file, lexer.Options{}).Collect()
	res := parser.Parse(context.Background(), toks, parser.Options{})
	if len(res.Errors) != 0 {
		t.Fatalf("parse %q: %v", src, res.Errors)
	}
	return res.Root
}

func TestTreeFunction(t *testing.T) {
	root := parseSrc(t, "fn f() {}")
	want := "translation_unit (\n" +
		"  function_decl (\n" +
		"    fn\n" +
		"    f\n" +
		"    (\n" +
		"    )\n" +
		"    block (\n" +
		"      {\n" +
		"      }\n" +
		"    )\n" +
		"  )\n" +
		")"
	if diff := cmp.Diff(want, format.Tree(root)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestFprintMatchesTree(t *testing.T) {
	root := parseSrc(t, "struct S { a: f32, b: vec3<f32> }")
	var buf bytes.Buffer
	if err := format.Fprint(&buf, root); err != nil {
		t.Fatal(err)
	}
	if buf.String() != format.Tree(root) {
		t.Error("Fprint and Tree disagree")
	}
}

func TestTreeIsDeterministic(t *testing.T) {
	root := parseSrc(t, "fn g(x: i32) -> i32 { return x * 2 + 1; }")
	if format.Tree(root) != format.Tree(root) {
		t.Error("printing twice gave different output")
	}
}

func TestBalancedParensAndDepth(t *testing.T) {
	// no parenthesis tokens, so every "(" and ")" line is structural
	root := parseSrc(t, "struct S { a: array<vec2<f32>, 4> }")
	out := format.Tree(root)

	depth, deepest := 0, 0
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasSuffix(line, " ("):
			depth++
			deepest = max(deepest, depth)
		case strings.TrimSpace(line) == ")":
			depth--
		}
		if depth < 0 {
			t.Fatalf("unbalanced at %q", line)
		}
	}
	if depth != 0 {
		t.Fatalf("unbalanced parentheses, final depth %d", depth)
	}
	if deepest != format.Depth(root) {
		t.Errorf("max nesting %d, Depth %d", deepest, format.Depth(root))
	}
}

func TestIndentMatchesWalkDepth(t *testing.T) {
	root := parseSrc(t, "const c = a.b[1] + -d;")
	var lines []string
	for _, line := range strings.Split(format.Tree(root), "\n") {
		if strings.TrimSpace(line) != ")" {
			lines = append(lines, line)
		}
	}
	i := 0
	cst.Walk(root, func(n cst.Node, d int) bool {
		want := strings.Repeat("  ", d) + n.Label()
		if i >= len(lines) || !strings.HasPrefix(lines[i], want) {
			t.Fatalf("node %d: want line with prefix %q", i, want)
		}
		i++
		return true
	})
	if i != len(lines) {
		t.Errorf("visited %d nodes, printed %d label lines", i, len(lines))
	}
}

func TestLeaves(t *testing.T) {
	root := parseSrc(t, "alias A = f32;")
	want := []string{"alias", "A", "=", "f32", ";"}
	if diff := cmp.Diff(want, format.Leaves(root)); diff != "" {
		t.Errorf("leaves mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingPlaceholderLabel(t *testing.T) {
	r := cst.NewRule("function_decl", source.Span{})
	r.Append(cst.NewMissing(token.RParen, source.Span{}))
	want := "function_decl (\n  <missing ')'>\n)"
	if got := format.Tree(r); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExportJSONAndYAML(t *testing.T) {
	root := parseSrc(t, "fn f() {}")

	var jb bytes.Buffer
	if err := format.WriteJSON(&jb, root); err != nil {
		t.Fatal(err)
	}
	var fromJSON format.ExportNode
	if err := json.Unmarshal(jb.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}

	var yb bytes.Buffer
	if err := format.WriteYAML(&yb, root); err != nil {
		t.Fatal(err)
	}
	var fromYAML format.ExportNode
	if err := yaml.Unmarshal(yb.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}

	want := format.Export(root)
	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, fromYAML); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
	if want.Rule != "translation_unit" || want.Children[0].Children[0].Text != "fn" {
		t.Errorf("unexpected export shape: %+v", want)
	}
}
