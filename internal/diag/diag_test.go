package diag

import (
	"testing"

	"wgslcst/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("sample.wgsl", []byte("a\nb\n"))

	diags := []Diagnostic{
		NewError(SynUnexpectedToken, source.Span{File: file, Start: 2, End: 3}, "second\nline").
			WithNote(source.Span{File: file, Start: 0, End: 1}, "note here"),
		New(SevWarning, LexIdentNotNFC, source.Span{File: file, Start: 0, End: 1}, "first"),
	}

	want := "note SYN2001 sample.wgsl:1:1 note here\n" +
		"warning LEX1004 sample.wgsl:1:1 first\n" +
		"error SYN2001 sample.wgsl:2:1 second line"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestBagCapAndCounts(t *testing.T) {
	bag := NewBag(2)
	r := &BagReporter{Bag: bag}
	r.Report(SynUnexpectedToken, SevError, source.Span{}, "a", nil)
	r.Report(LexIdentNotNFC, SevWarning, source.Span{}, "b", nil)
	r.Report(SynTrailingInput, SevError, source.Span{}, "c", nil)

	if bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d, want 2/1", bag.Len(), bag.Dropped())
	}
	if !bag.HasErrors() || !bag.HasWarnings() || bag.ErrorCount() != 1 {
		t.Fatalf("unexpected counts: errors=%d", bag.ErrorCount())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(SynTrailingInput, source.Span{Start: 9, End: 10}, "late"))
	bag.Add(New(SevWarning, LexIdentNotNFC, source.Span{Start: 1, End: 2}, "warn"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "err"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "err again"))

	bag.Sort()
	bag.Dedup()

	items := bag.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", len(items))
	}
	if items[0].Code != SynUnexpectedToken || items[1].Code != LexIdentNotNFC || items[2].Code != SynTrailingInput {
		t.Fatalf("unexpected order: %v %v %v", items[0].Code, items[1].Code, items[2].Code)
	}
}

func TestDedupReporterAndBuilder(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(&BagReporter{Bag: bag})
	sp := source.Span{Start: 3, End: 4}

	b := ReportError(r, SynExpectSemicolon, sp, "expected ';'").WithNote(sp.Tail(), "insert ';' here")
	b.Emit()
	b.Emit()
	ReportError(r, SynExpectSemicolon, sp, "expected ';'").Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("note was not attached")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		IOLoadFileError:    "IO4001",
		UnknownCode:        "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
}
