package parser_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wgslcst/internal/cst"
	"wgslcst/internal/diag"
	"wgslcst/internal/format"
	"wgslcst/internal/lexer"
	"wgslcst/internal/parser"
	"wgslcst/internal/source"
	"wgslcst/internal/testkit"
	"wgslcst/internal/token"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.wgsl", []byte(src)))
	lx := lexer.New(file, lexer.Options{OnError: lexer.RecoverOnError})
	return lx.Collect()
}

func parse(t *testing.T, src string) parser.Result {
	t.Helper()
	return parser.Parse(context.Background(), lex(t, src), parser.Options{})
}

func mustParse(t *testing.T, src string) *cst.Rule {
	t.Helper()
	res := parse(t, src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors for %q: %v", src, res.Errors)
	}
	return res.Root
}

// tree renders src and strips the outer translation_unit wrapper lines.
func tree(t *testing.T, src string) string {
	t.Helper()
	root := mustParse(t, src)
	if len(root.Children) != 1 {
		t.Fatalf("want one declaration, got %d", len(root.Children))
	}
	return format.Tree(root.Children[0])
}

func TestFunctionDecl(t *testing.T) {
	want := strings.Join([]string{
		"function_decl (",
		"  fn",
		"  f",
		"  (",
		"  )",
		"  block (",
		"    {",
		"    }",
		"  )",
		")",
	}, "\n")
	if diff := cmp.Diff(want, tree(t, "fn f() {}")); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, src := range []string{"", "  // nothing\n"} {
		res := parse(t, src)
		if len(res.Errors) != 0 || res.Err != nil {
			t.Fatalf("%q: unexpected errors %v %v", src, res.Errors, res.Err)
		}
		if res.Root.Name != parser.RuleTranslationUnit || len(res.Root.Children) != 0 {
			t.Fatalf("%q: want an empty translation_unit, got %s", src, format.Tree(res.Root))
		}
		if got := format.Tree(res.Root); got != "translation_unit" {
			t.Errorf("%q: printed %q", src, got)
		}
	}
}

func TestMissingParenRecovery(t *testing.T) {
	res := parse(t, "fn f( {}")
	if len(res.Errors) != 1 {
		t.Fatalf("want exactly one error, got %v", res.Errors)
	}
	e := res.Errors[0]
	if e.Rule != parser.RuleFunctionDecl {
		t.Errorf("rule = %q", e.Rule)
	}
	if diff := cmp.Diff([]token.Kind{token.RParen}, e.Expected); diff != "" {
		t.Errorf("expected mismatch (-want +got):\n%s", diff)
	}
	if e.Found.Kind != token.LBrace {
		t.Errorf("found = %v, want '{'", e.Found.Kind)
	}
	if e.Error() != "function_decl: expected ')', found '{'" {
		t.Errorf("message = %q", e.Error())
	}
	if e.Code != diag.SynUnclosedDelimiter {
		t.Errorf("code = %v", e.Code)
	}

	want := strings.Join([]string{
		"function_decl (",
		"  fn",
		"  f",
		"  (",
		"  <missing ')'>",
		"  block (",
		"    {",
		"    }",
		"  )",
		")",
	}, "\n")
	if diff := cmp.Diff(want, format.Tree(res.Root.Children[0])); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorsAreReported(t *testing.T) {
	bag := diag.NewBag(0)
	res := parser.Parse(context.Background(), lex(t, "fn f( {}"), parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.ErrorCount() != len(res.Errors) {
		t.Fatalf("reporter saw %d errors, result has %d", bag.ErrorCount(), len(res.Errors))
	}
	if bag.Items()[0].Code != diag.SynUnclosedDelimiter {
		t.Errorf("code = %v", bag.Items()[0].Code)
	}
}

func TestTrailingInput(t *testing.T) {
	res := parse(t, "fn f() {} }")
	if len(res.Errors) != 1 || res.Errors[0].Code != diag.SynTrailingInput {
		t.Fatalf("want one trailing-input error, got %v", res.Errors)
	}
	last := res.Root.Children[len(res.Root.Children)-1].(*cst.Terminal)
	if last.Err != cst.ErrSkipped || last.Tok.Kind != token.RBrace {
		t.Errorf("stray '}' should be kept as a skipped terminal, got %+v", last)
	}
}

func TestNestedTemplateClose(t *testing.T) {
	got := tree(t, "var<private> a: array<vec2<f32>>;")
	want := strings.Join([]string{
		"global_variable_decl (",
		"  variable_decl (",
		"    var",
		"    variable_qualifier (",
		"      <",
		"      private",
		"      >",
		"    )",
		"    optionally_typed_ident (",
		"      a",
		"      :",
		"      type_decl (",
		"        array",
		"        template_list (",
		"          <",
		"          type_decl (",
		"            vec2",
		"            template_list (",
		"              <",
		"              type_decl (",
		"                f32",
		"              )",
		"              >",
		"            )",
		"          )",
		"          >",
		"        )",
		"      )",
		"    )",
		"  )",
		"  ;",
		")",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateCloseSplitsGtEq(t *testing.T) {
	root := mustParse(t, "fn f() { var a: vec3<f32>= vec3<f32>(1.0); }")
	var texts []string
	for tm := range cst.Terminals(root) {
		texts = append(texts, tm.Tok.Text)
	}
	want := []string{
		"fn", "f", "(", ")", "{", "var", "a", ":", "vec3", "<", "f32", ">", "=",
		"vec3", "<", "f32", ">", "(", "1.0", ")", ";", "}",
	}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("terminals mismatch (-want +got):\n%s", diff)
	}
}

func TestExpressionPrecedence(t *testing.T) {
	got := tree(t, "const x = a + b * c;")
	want := strings.Join([]string{
		"global_constant_decl (",
		"  const",
		"  optionally_typed_ident (",
		"    x",
		"  )",
		"  =",
		"  additive_expression (",
		"    a",
		"    +",
		"    multiplicative_expression (",
		"      b",
		"      *",
		"      c",
		"    )",
		"  )",
		"  ;",
		")",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestLeftAssociativity(t *testing.T) {
	root := mustParse(t, "const x = a - b - c;")
	decl := root.Children[0].(*cst.Rule)
	outer := decl.Rules(parser.RuleAdditive)
	if len(outer) != 1 {
		t.Fatalf("want one additive_expression child, got %d", len(outer))
	}
	inner, ok := outer[0].Children[0].(*cst.Rule)
	if !ok || inner.Name != parser.RuleAdditive {
		t.Fatalf("a - b - c must nest to the left, got %s", format.Tree(outer[0]))
	}
}

func TestComparisonIsNotTemplate(t *testing.T) {
	root := mustParse(t, "const x = a < b;")
	decl := root.Children[0].(*cst.Rule)
	if len(decl.Rules(parser.RuleRelational)) != 1 {
		t.Errorf("a < b should be a relational_expression:\n%s", format.Tree(decl))
	}
}

func TestStatements(t *testing.T) {
	src := `
@compute @workgroup_size(8, 8)
fn main(@builtin(global_invocation_id) id: vec3<u32>) -> @location(0) vec4<f32> {
	var i: i32 = 0;
	let p = &i;
	*p += 1;
	i++;
	i--;
	_ = foo(i, 2u);
	arr[i].x = 1.5;
	for (var j = 0; j < 4; j++) { continue; }
	while i < 10 { i = i + 1; }
	loop {
		if i > 3 { break; } else if i == 2 { discard; } else { }
		continuing { break if i >= 8; }
	}
	switch i {
		case 1, 2: { }
		case default { }
		default { return; }
	}
	const_assert 1 < 2;
	;
	return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}`
	root := mustParse(t, src)
	var names []string
	cst.Walk(root, func(n cst.Node, _ int) bool {
		if r, ok := n.(*cst.Rule); ok {
			names = append(names, r.Name)
		}
		return true
	})
	for _, want := range []string{
		parser.RuleAttribute, parser.RuleParamList, parser.RuleParam,
		parser.RuleVariableStmt, parser.RuleUnary, parser.RuleAssignment,
		parser.RuleIncrement, parser.RuleDecrement, parser.RuleCall,
		parser.RuleMember, parser.RuleIndex, parser.RuleFor, parser.RuleWhile,
		parser.RuleLoop, parser.RuleIf, parser.RuleBreak, parser.RuleDiscard,
		parser.RuleContinuing, parser.RuleBreakIf, parser.RuleSwitch,
		parser.RuleCaseClause, parser.RuleDefaultClause, parser.RuleReturn,
		parser.RuleConstAssert, parser.RuleContinue,
	} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no %s in tree", want)
		}
	}
}

func TestDirectivesAndDecls(t *testing.T) {
	src := `enable f16, subgroups;
requires readonly_and_readwrite_storage_textures;
diagnostic(off, derivative_uniformity);
struct S { @align(16) a: f32, b: array<u32, 4>, }
alias V = vec3<f32>;
override n: u32 = 8u;
@group(0) @binding(1) var<storage, read_write> buf: array<S>;
const_assert n > 0u;
`
	root := mustParse(t, src)
	var got []string
	for _, c := range root.Children {
		got = append(got, c.Label())
	}
	want := []string{
		parser.RuleEnableDirective, parser.RuleRequiresDirective, parser.RuleDiagnosticDirective,
		parser.RuleStructDecl, parser.RuleTypeAliasDecl, parser.RuleOverrideDecl,
		parser.RuleGlobalVariableDecl, parser.RuleConstAssert,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("top-level mismatch (-want +got):\n%s", diff)
	}
	gv := root.Children[6].(*cst.Rule)
	if len(gv.Rules(parser.RuleAttribute)) != 2 {
		t.Errorf("attributes must be attached to the declaration:\n%s", format.Tree(gv))
	}
}

func TestStatementRecovery(t *testing.T) {
	res := parse(t, "fn f() { let x = ; ) y = 2; }")
	if len(res.Errors) != 2 {
		t.Fatalf("want 2 errors, got %v", res.Errors)
	}
	if res.Errors[0].Code != diag.SynExpectExpression || res.Errors[1].Code != diag.SynExpectStatement {
		t.Errorf("codes = %v, %v", res.Errors[0].Code, res.Errors[1].Code)
	}
	fn := res.Root.Children[0].(*cst.Rule)
	body := fn.Rules(parser.RuleBlock)[0]
	if len(body.Rules(parser.RuleAssignment)) != 1 {
		t.Errorf("parsing must resume after the bad token:\n%s", format.Tree(body))
	}
}

func TestDirectiveAfterDecl(t *testing.T) {
	res := parse(t, "const a = 1; enable f16;")
	if len(res.Errors) != 1 || res.Errors[0].Code != diag.SynDirectiveAfterDecl {
		t.Fatalf("want one directive-after-decl error, got %v", res.Errors)
	}
	if got := res.Root.Children[1].Label(); got != parser.RuleEnableDirective {
		t.Errorf("directive still parsed, got %s", got)
	}
}

func TestMaxErrors(t *testing.T) {
	src := "const a = ; const b = ; const c = ;"
	bag := diag.NewBag(0)
	res := parser.Parse(context.Background(), lex(t, src), parser.Options{MaxErrors: 1, Reporter: &diag.BagReporter{Bag: bag}})
	if len(res.Errors) != 1 {
		t.Fatalf("want errors capped at 1, got %d", len(res.Errors))
	}
	if last := bag.Items()[bag.Len()-1]; last.Code != diag.SynTooManyErrors {
		t.Errorf("last diagnostic = %v, want too-many-errors", last.Code)
	}
	if len(res.Root.Rules(parser.RuleGlobalConstantDecl)) != 3 {
		t.Error("parsing must continue past the cap")
	}
}

func TestLossless(t *testing.T) {
	srcs := []string{
		"fn f() {}",
		"fn f( {}",
		"struct S { a: f32 }",
		"fn g() { let x = (1 + 2) * -y[3].z; x = bitcast<u32>(x) >> 2u; }",
		"const x = ; fn",
		"fn h() -> array<vec2<f32>, 2> { return array<vec2<f32>, 2>(); }",
	}
	for _, src := range srcs {
		toks := lex(t, src)
		res := parser.Parse(context.Background(), toks, parser.Options{})
		var got []string
		for tm := range cst.Terminals(res.Root) {
			if tm.Err == cst.ErrMissing {
				continue
			}
			got = append(got, tm.Tok.Text)
		}
		var want []string
		for _, tok := range toks {
			if tok.Kind != token.EOF {
				want = append(want, tok.Text)
			}
		}
		if strings.Join(got, "") != strings.Join(want, "") {
			t.Errorf("%q: tree terminals %q, tokens %q", src, got, want)
		}
	}
}

func TestSpansAreUnionOfChildren(t *testing.T) {
	root := mustParse(t, "fn f(a: i32) -> i32 { return a * 2; }")
	cst.Walk(root, func(n cst.Node, _ int) bool {
		r, ok := n.(*cst.Rule)
		if !ok || len(r.Children) == 0 {
			return true
		}
		first, last := r.Children[0].Span(), r.Children[len(r.Children)-1].Span()
		if r.Span().Start != first.Start || r.Span().End != last.End {
			t.Errorf("%s span %v does not cover children %v..%v", r.Name, r.Span(), first, last)
		}
		return true
	})
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := parser.Parse(ctx, lex(t, "fn a() {} fn b() {}"), parser.Options{})
	if res.Err == nil {
		t.Fatal("want context error")
	}
	if res.Root == nil {
		t.Fatal("root must not be nil")
	}
	if len(res.Errors) != 0 {
		t.Errorf("no syntax errors after cancellation, got %v", res.Errors)
	}
}

func TestInvalidTokensAreDropped(t *testing.T) {
	res := parse(t, "const a = 1 $;")
	if len(res.Errors) != 0 {
		t.Fatalf("invalid tokens must not reach the parser: %v", res.Errors)
	}
}

func TestNestingLimit(t *testing.T) {
	const n = 100000
	srcs := map[string]string{
		"parens":    "const x = " + strings.Repeat("(", n) + "1" + strings.Repeat(")", n) + ";",
		"blocks":    "fn f() " + strings.Repeat("{", n) + strings.Repeat("}", n),
		"unary":     "const x = " + strings.Repeat("!", n) + "true;",
		"index":     "const x = a" + strings.Repeat("[a", n) + strings.Repeat("]", n) + ";",
		"calls":     "const x = " + strings.Repeat("f(", n) + strings.Repeat(")", n) + ";",
		"templates": "alias t = " + strings.Repeat("array<", n) + "f32" + strings.Repeat(">", n) + ";",
		"else if":   "fn f() { if a {}" + strings.Repeat(" else if a {}", n) + " }",
		"lhs deref": "fn f() { " + strings.Repeat("*", n) + "p = 1; }",
		"lhs paren": "fn f() { " + strings.Repeat("(", n) + "p" + strings.Repeat(")", n) + " = 1; }",
	}
	for name, src := range srcs {
		t.Run(name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("deep.wgsl", []byte(src)))
			toks := lexer.New(file, lexer.Options{}).Collect()
			res := parser.Parse(context.Background(), toks, parser.Options{})
			if len(res.Errors) == 0 {
				t.Fatal("want a nesting error")
			}
			for _, e := range res.Errors {
				if e.Code != diag.SynTooDeep {
					t.Fatalf("unexpected error %v", e)
				}
			}
			if err := testkit.CheckSpanInvariants(res.Root, file); err != nil {
				t.Error(err)
			}
			if err := testkit.CheckLossless(res.Root, toks); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestNestingBelowLimitIsAccepted(t *testing.T) {
	src := "const x = " + strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100) + ";"
	mustParse(t, src)
}

func TestMissingTokenNotes(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
		note string
		at   uint32
	}{
		{"fn f( {}", diag.SynUnclosedDelimiter, "to match this '('", 4},
		{"fn f() { let x = a[1; }", diag.SynUnclosedDelimiter, "to match this '['", 18},
		{"fn f() { let x = 1 }", diag.SynExpectSemicolon, "insert ';' here", 18},
	}
	for _, tt := range tests {
		bag := diag.NewBag(0)
		res := parser.Parse(context.Background(), lex(t, tt.src), parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
		if len(res.Errors) == 0 || bag.Len() == 0 {
			t.Fatalf("%q: no errors", tt.src)
		}
		e := res.Errors[0]
		if e.Code != tt.code || len(e.Notes) != 1 {
			t.Fatalf("%q: code %v notes %v", tt.src, e.Code, e.Notes)
		}
		if e.Notes[0].Msg != tt.note || e.Notes[0].Span.Start != tt.at {
			t.Errorf("%q: note %q at %d, want %q at %d", tt.src, e.Notes[0].Msg, e.Notes[0].Span.Start, tt.note, tt.at)
		}
		if diff := cmp.Diff(e.Notes, bag.Items()[0].Notes); diff != "" {
			t.Errorf("%q: reported notes (-parser +reporter):\n%s", tt.src, diff)
		}
	}
}

func TestTruncatedStreamIgnoresEOFErrors(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("cut.wgsl", []byte("fn f() { let x = 1 $ ; }")))
	lx := lexer.New(file, lexer.Options{OnError: lexer.AbortOnError})
	toks := lx.Collect()
	if !lx.Aborted() {
		t.Fatal("lexer must abort at '$'")
	}
	if res := parser.Parse(context.Background(), toks, parser.Options{}); len(res.Errors) == 0 {
		t.Fatal("a stream that really ends there is incomplete")
	}
	res := parser.Parse(context.Background(), toks, parser.Options{Truncated: true})
	if len(res.Errors) != 0 {
		t.Errorf("errors at the cut: %v", res.Errors)
	}
	if countMissing(res.Root) == 0 {
		t.Error("the partial tree should still mark what is missing")
	}
}

func countMissing(root cst.Node) int {
	n := 0
	for tm := range cst.Terminals(root) {
		if tm.Err == cst.ErrMissing {
			n++
		}
	}
	return n
}

func TestKeepEOF(t *testing.T) {
	res := parser.Parse(context.Background(), lex(t, "fn f() {}\n"), parser.Options{KeepEOF: true})
	if len(res.Errors) != 0 {
		t.Fatal(res.Errors)
	}
	kids := res.Root.Children
	last, ok := kids[len(kids)-1].(*cst.Terminal)
	if !ok || last.Tok.Kind != token.EOF || last.Label() != "<EOF>" {
		t.Fatalf("last child = %v", kids[len(kids)-1])
	}
	if len(kids) != 2 {
		t.Errorf("want function_decl and <EOF>, got %d children", len(kids))
	}

	empty := parser.Parse(context.Background(), lex(t, ""), parser.Options{KeepEOF: true})
	if got, want := format.Tree(empty.Root), "translation_unit (\n  <EOF>\n)"; got != want {
		t.Errorf("empty input printed %q, want %q", got, want)
	}
}
