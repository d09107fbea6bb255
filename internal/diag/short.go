package diag

import (
	"fmt"
	"sort"
	"strings"

	"wgslcst/internal/source"
)

type shortLine struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line as
// "<severity> <CODE> <path>:<line>:<col> <message>", sorted by position.
// Notes follow as "note" lines when includeNotes is set. Returns "" for no input.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]shortLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if l, ok := resolveShort(fs, d.Primary); ok {
			l.Severity, l.Code, l.Message = d.Severity.Label(), d.Code.ID(), sanitizeMessage(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			if l, ok := resolveShort(fs, note.Span); ok {
				l.Severity, l.Code, l.Message = "note", d.Code.ID(), sanitizeMessage(note.Msg)
				lines = append(lines, l)
			}
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		li, lj := lines[i], lines[j]
		if li.Path != lj.Path {
			return li.Path < lj.Path
		}
		if li.Line != lj.Line {
			return li.Line < lj.Line
		}
		return li.Column < lj.Column
	})

	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", l.Severity, l.Code, l.Path, l.Line, l.Column, l.Message)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func resolveShort(fs *source.FileSet, span source.Span) (shortLine, bool) {
	if int(span.File) >= fs.Len() {
		return shortLine{}, false
	}
	start, _ := fs.Resolve(span)
	return shortLine{
		Path:   fs.DisplayPath(span.File),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
