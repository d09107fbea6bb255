package driver

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"wgslcst/internal/diag"
	"wgslcst/internal/lexer"
	"wgslcst/internal/source"
	"wgslcst/internal/token"
	"wgslcst/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and returns its tokens, EOF included.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	file := fs.Get(fileID)

	start := time.Now()
	bag := diag.NewBag(opts.MaxDiagnostics)
	tokens, _, _ := lex(file, diag.NewDedupReporter(&diag.BagReporter{Bag: bag}), opts)

	trace.FromContext(ctx).WithFields(logrus.Fields{
		"file":    file.Path,
		"tokens":  len(tokens),
		"errors":  bag.ErrorCount(),
		"elapsed": time.Since(start),
	}).Debug("tokenize")

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// lex also reports whether the lexer aborted before the end of file.
func lex(file *source.File, rep diag.Reporter, opts Options) ([]token.Token, []*lexer.LexError, bool) {
	lx := lexer.New(file, lexer.Options{
		Reporter: rep,
		OnError:  opts.OnLexError,
	})
	tokens := lx.Collect()
	return tokens, lx.Errors(), lx.Aborted()
}
