package fuzztests

import (
	"testing"

	"wgslcst/internal/diag"
	"wgslcst/internal/lexer"
	"wgslcst/internal/source"
	"wgslcst/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.wgsl", input))
		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}, OnError: lexer.RecoverOnError})

		tokens := lx.Collect()
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
			t.Fatalf("stream does not end with EOF: %v", tokens)
		}
		var prevEnd uint32
		for _, tok := range tokens[:len(tokens)-1] {
			if tok.Span.Start < prevEnd || tok.Span.Empty() {
				t.Fatalf("token %q at %v after offset %d", tok.Text, tok.Span, prevEnd)
			}
			if got := file.Slice(tok.Span); got != tok.Text {
				t.Fatalf("token text %q, source %q", tok.Text, got)
			}
			prevEnd = tok.Span.End
		}
		// Under recover every error leaves an Invalid token or an unterminated comment behind.
		if len(lx.Errors()) > 0 && bag.ErrorCount() == 0 {
			t.Fatalf("lexer errors were not reported: %v", lx.Errors())
		}
	})
}
