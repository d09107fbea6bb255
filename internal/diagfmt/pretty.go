package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"wgslcst/internal/diag"
	"wgslcst/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics for humans, in bag order (call bag.Sort first):
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	   3 | fn f( {}
//	     |       ^
//
// followed by notes when ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	var sb strings.Builder
	for _, d := range bag.Items() {
		writeDiagnostic(&sb, d, fs, opts, pal)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(&sb, "... %d more diagnostics not shown\n", n)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeDiagnostic(sb *strings.Builder, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	start, _ := fs.Resolve(d.Primary)
	path := formatPath(fs, d.Primary.File, opts.PathMode)

	fmt.Fprintf(sb, "%s: %s %s\n",
		pal.bold.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		pal.severity(d.Severity).Sprintf("%s %s:", d.Severity.Label(), d.Code.ID()),
		d.Message,
	)
	writeSnippet(sb, fs.Get(d.Primary.File), d.Primary, opts.Context, pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(sb, "  %s %s:%d:%d: %s\n",
			pal.note.Sprint("note:"),
			formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

// writeSnippet prints the primary line (plus context lines above it) and a
// caret underline. Columns are measured in display cells; tabs are copied
// into the padding so the caret lines up whatever the tab width.
func writeSnippet(sb *strings.Builder, f *source.File, sp source.Span, ctxLines int8, pal palette) {
	start := f.Position(sp.Start)
	line := f.GetLine(start.Line)
	if line == "" && sp.Empty() && int(sp.Start) >= len(f.Content) && start.Line > 1 {
		// EOF on an empty last line: point at the end of the previous one
		start = f.Position(sp.Start - 1)
		line = f.GetLine(start.Line)
	}

	first := start.Line
	if ctxLines > 0 && uint32(ctxLines) < first {
		first -= uint32(ctxLines)
	} else if ctxLines > 0 {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))

	for n := first; n <= start.Line; n++ {
		fmt.Fprintf(sb, "%s %s\n", pal.gutter.Sprintf("%*d |", width, n), f.GetLine(n))
	}

	prefixEnd := min(int(start.Col)-1, len(line))
	prefix := line[:prefixEnd]
	var pad strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	underline := 1
	if !sp.Empty() {
		end := min(prefixEnd+int(sp.Len()), len(line))
		underline = max(1, runewidth.StringWidth(line[prefixEnd:end]))
	}
	marks := "^" + strings.Repeat("~", underline-1)
	fmt.Fprintf(sb, "%s %s%s\n", pal.gutter.Sprintf("%*s |", width, ""), pad.String(), pal.caret.Sprint(marks))
}
