package fuzztests

import (
	"context"

	"wgslcst/internal/diag"
	"wgslcst/internal/lexer"
	"wgslcst/internal/parser"
	"wgslcst/internal/source"
	"wgslcst/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

type pipelineResult struct {
	file   *source.File
	tokens []token.Token
	parsed parser.Result
	bag    *diag.Bag
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func runPipeline(ctx context.Context, input []byte, policy lexer.ErrorPolicy) pipelineResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.wgsl", input))

	bag := diag.NewBag(128)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter, OnError: policy})
	tokens := lx.Collect()

	parsed := parser.Parse(ctx, tokens, parser.Options{Reporter: reporter, MaxErrors: 128})
	return pipelineResult{file: file, tokens: tokens, parsed: parsed, bag: bag}
}
