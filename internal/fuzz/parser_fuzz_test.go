package fuzztests

import (
	"context"
	"os"
	"testing"
	"time"

	"wgslcst/internal/cst"
	"wgslcst/internal/format"
	"wgslcst/internal/lexer"
	"wgslcst/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// Longer means a recovery loop stopped making progress.
const parseTimeout = 5 * time.Second

func FuzzParserInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		res := runPipeline(context.Background(), clampInput(input), lexer.RecoverOnError)
		root := res.parsed.Root
		if root == nil {
			t.Fatal("nil root")
		}
		if err := testkit.CheckSpanInvariants(root, res.file); err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckLossless(root, res.tokens); err != nil {
			t.Fatal(err)
		}

		// The printed nesting depth matches the tree.
		want := 0
		cst.Walk(root, func(n cst.Node, depth int) bool {
			if !cst.IsLeaf(n) && depth+1 > want {
				want = depth + 1
			}
			return true
		})
		if got := format.Depth(root); got != want {
			t.Fatalf("format.Depth = %d, tree depth %d", got, want)
		}
		if format.Tree(root) != format.Tree(root) {
			t.Fatal("printing is not deterministic")
		}
	})
}

// FuzzParserNoHang checks that the parser finishes on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("fn f() { let x = 1\nlet y = 2; }"))  // missing semicolon
	f.Add([]byte("fn f() { x + y\nlet z = 3; }"))      // expression statement
	f.Add([]byte("fn f() { { { { } } } }"))            // nested blocks
	f.Add([]byte("fn f() { for (var i = 0 i < 10) {} }")) // for without semicolons
	f.Add([]byte("struct S { }"))                      // empty struct
	f.Add([]byte("array<array<array<"))                // unclosed templates

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = runPipeline(ctx, input, lexer.AbortOnError)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// TestCorpusParsesCleanly keeps the seed corpus valid WGSL.
func TestCorpusParsesCleanly(t *testing.T) {
	files := corpusFiles()
	if len(files) == 0 {
		t.Skip("no testdata corpus")
	}
	for _, path := range files {
		t.Run(path, func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			res := runPipeline(context.Background(), src, lexer.AbortOnError)
			if res.bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", res.bag.Items())
			}
			if err := testkit.CheckSpanInvariants(res.parsed.Root, res.file); err != nil {
				t.Fatal(err)
			}
			if err := testkit.CheckLossless(res.parsed.Root, res.tokens); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
