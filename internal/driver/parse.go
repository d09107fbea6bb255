package driver

import (
	"context"
	"fmt"
	"time"

	"fortio.org/safecast"
	"github.com/sirupsen/logrus"

	"wgslcst/internal/cst"
	"wgslcst/internal/diag"
	"wgslcst/internal/lexer"
	"wgslcst/internal/observ"
	"wgslcst/internal/parser"
	"wgslcst/internal/source"
	"wgslcst/internal/token"
	"wgslcst/internal/trace"
)

// Options configures one load → lex → parse run.
type Options struct {
	OnLexError lexer.ErrorPolicy
	// MaxErrors caps parser errors; 0 means unlimited.
	MaxErrors int
	// MaxDiagnostics caps the diagnostic bag; 0 means unlimited.
	MaxDiagnostics int
	// Cache is consulted before lexing when non-nil.
	Cache *TreeCache
	// Timer receives lex and parse phase durations when non-nil.
	Timer *observ.Timer
	// KeepEOF ends translation_unit with an <EOF> terminal.
	KeepEOF bool
}

type ParseResult struct {
	FileSet     *source.FileSet
	File        *source.File
	Tokens      []token.Token
	Root        *cst.Rule
	Bag         *diag.Bag
	LexErrors   []*lexer.LexError
	ParseErrors []*parser.ParseError
	// Cached is set when Root came from the tree cache; Tokens is nil then.
	Cached bool
}

// HasErrors reports whether lexing or parsing failed.
// Warnings do not count.
func (r *ParseResult) HasErrors() bool {
	return len(r.LexErrors)+len(r.ParseErrors) > 0
}

// ParseFile loads path into fs and parses it.
// A read failure is returned as *IOError before anything is lexed.
func ParseFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*ParseResult, error) {
	if fs == nil {
		fs = source.NewFileSet()
	}
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return parseLoaded(ctx, fs, fs.Get(fileID), opts)
}

// ParseSource parses in-memory content registered in fs as a virtual file.
func ParseSource(ctx context.Context, fs *source.FileSet, name string, content []byte, opts Options) (*ParseResult, error) {
	if fs == nil {
		fs = source.NewFileSet()
	}
	fileID := fs.AddVirtual(name, content)
	return parseLoaded(ctx, fs, fs.Get(fileID), opts)
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*ParseResult, error) {
	log := trace.FromContext(ctx)
	start := time.Now()
	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	if opts.Cache != nil {
		done := opts.Timer.Track("cache")
		root, ok, err := opts.Cache.Get(file, opts.KeepEOF)
		switch {
		case err != nil:
			done("error")
			log.WithError(err).WithField("file", file.Path).Warn("tree cache read failed")
		case ok:
			done("hit")
			res.Root = root
			res.Cached = true
			log.WithFields(logrus.Fields{
				"file":    file.Path,
				"elapsed": time.Since(start),
			}).Debug("parse: cache hit")
			return res, nil
		default:
			done("miss")
		}
	}

	// Lexer and parser share one reporter so a span is never reported twice.
	rep := diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag})
	done := opts.Timer.Track("lex")
	var truncated bool
	res.Tokens, res.LexErrors, truncated = lex(file, rep, opts)
	done(fmt.Sprintf("%d tokens", len(res.Tokens)))

	maxErrors, err := safecast.Conv[uint](max(opts.MaxErrors, 0))
	if err != nil {
		return nil, err
	}
	done = opts.Timer.Track("parse")
	pr := parser.Parse(ctx, res.Tokens, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  rep,
		Truncated: truncated,
		KeepEOF:   opts.KeepEOF,
	})
	done(fmt.Sprintf("%d errors", len(pr.Errors)))
	if pr.Err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Path, pr.Err)
	}
	res.Root = pr.Root
	res.ParseErrors = pr.Errors

	// Only clean trees are cached: a hit must print exactly what a fresh parse would.
	if opts.Cache != nil && res.Bag.Len() == 0 && res.Bag.Dropped() == 0 {
		if err := opts.Cache.Put(file, res.Root, opts.KeepEOF); err != nil {
			log.WithError(err).WithField("file", file.Path).Warn("tree cache write failed")
		}
	}

	log.WithFields(logrus.Fields{
		"file":    file.Path,
		"tokens":  len(res.Tokens),
		"nodes":   cst.Count(res.Root),
		"errors":  len(res.LexErrors) + len(res.ParseErrors),
		"elapsed": time.Since(start),
	}).Debug("parse")
	return res, nil
}
