package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wgslcst/internal/diag"
	"wgslcst/internal/source"
	"wgslcst/internal/token"
)

func oneError(src string, start, end uint32) (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.wgsl", []byte(src))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnclosedDelimiter, source.Span{File: id, Start: start, End: end},
		"function_decl: expected ')', found '{'").
		WithNote(source.Span{File: id, Start: 0, End: 2}, "in this function"))
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := oneError("fn f( {}", 6, 7)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	want := "t.wgsl:1:7: error SYN2008: function_decl: expected ')', found '{'\n" +
		"1 | fn f( {}\n" +
		"  |       ^\n" +
		"  note: t.wgsl:1:1: in this function\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("pretty mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyUnderlineAndContext(t *testing.T) {
	bag, fs := oneError("const a = 1;\n\tlet bad = x;", 18, 21)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[1] != "1 | const a = 1;" || lines[2] != "2 | \tlet bad = x;" {
		t.Errorf("context lines = %q", lines[1:3])
	}
	if lines[3] != "  | \t    ^~~" {
		t.Errorf("caret line = %q", lines[3])
	}
}

func TestPrettyWideRunes(t *testing.T) {
	// "日本" is two double-width runes, six bytes
	bag, fs := oneError("// 日本\nx", 10, 11)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "2 | x\n  | ^\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	bag, fs = oneError("日本 x", 7, 8)
	buf.Reset()
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "  |      ^\n") {
		t.Errorf("caret must skip four cells and a space:\n%s", buf.String())
	}
}

func TestJSON(t *testing.T) {
	bag, fs := oneError("fn f( {}", 6, 7)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "SYN2008" || out.Diagnostics[0].Severity != "ERROR" {
		t.Fatalf("unexpected output %+v", out)
	}
	loc := out.Diagnostics[0].Location
	if loc.File != "t.wgsl" || loc.StartLine != 1 || loc.StartCol != 7 || loc.StartByte != 6 {
		t.Errorf("location = %+v", loc)
	}
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Errorf("notes = %+v", out.Diagnostics[0].Notes)
	}
}

func TestJSONMax(t *testing.T) {
	bag, fs := oneError("fn f( {}", 6, 7)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{Start: 7, End: 8}, "x"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Dropped != 1 {
		t.Errorf("count=%d dropped=%d, want 1 and 1", out.Count, out.Dropped)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.wgsl", []byte("fn"))
	toks := []token.Token{
		{Kind: token.KwFn, Text: "fn", Span: source.Span{File: id, Start: 0, End: 2}},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 2, End: 2}},
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	want := "  1: fn              \"fn\" at 1:1-1:3\n" +
		"  2: EOF             at 1:3-1:3\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}
