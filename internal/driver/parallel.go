package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"wgslcst/internal/diag"
	"wgslcst/internal/source"
)

// SourceExt is the extension collected when a directory is given as input.
const SourceExt = ".wgsl"

// FileResult is the outcome for one input of ParseFiles.
// Exactly one of Result and Err is set.
type FileResult struct {
	Path   string
	Result *ParseResult
	Err    error
}

// ExpandInputs replaces every directory in paths with the sorted *.wgsl files under it.
// Plain files are kept as given, in order.
func ExpandInputs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			// Missing files surface later as IOError.
			out = append(out, p)
			continue
		}
		files, err := listWGSLFiles(p)
		if err != nil {
			return nil, &IOError{Path: p, Err: err}
		}
		out = append(out, files...)
	}
	return out, nil
}

func listWGSLFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseFiles parses paths concurrently with at most jobs goroutines
// (jobs <= 0 means GOMAXPROCS). All files are loaded into the returned
// FileSet before any goroutine starts; results follow the order of paths.
// Per-file failures are reported in FileResult.Err; the returned error is
// only set on cancellation.
func ParseFiles(ctx context.Context, paths []string, opts Options, jobs int) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSet()
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return fileSet, results, nil
	}

	files := make([]*source.File, len(paths))
	for i, path := range paths {
		results[i].Path = path
		fileID, err := fileSet.Load(path)
		if err != nil {
			results[i].Err = &IOError{Path: path, Err: err}
			continue
		}
		files[i] = fileSet.Get(fileID)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i := range paths {
		if files[i] == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each slot is written by exactly one goroutine.
			res, err := parseLoaded(gctx, fileSet, files[i], opts)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				results[i].Err = err
				return nil
			}
			results[i].Result = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags collects the diagnostics of all parsed results into one bag, sorted by position
// and without repeats.
// Results with Err set contribute nothing.
func MergeBags(results []FileResult, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r.Result != nil {
			out.Merge(r.Result.Bag)
		}
	}
	out.Sort()
	out.Dedup()
	return out
}
