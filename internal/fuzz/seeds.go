package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var inlineSeeds = []string{
	"",
	"fn f() {}",
	"fn f( {}",
	"struct S { a: array<vec2<f32>, 4> }",
	"const c = a.b[1] + -d;",
	"fn g() { let x = (1 + 2) * -y[3].z; x = bitcast<u32>(x) >> 2u; }",
	"var<private> v: ptr<function, array<i32, 4>>= 1;",
	"fn f() { if a < b { } else if c > d { } }",
	"fn f() { for (;;) { break; } loop { continuing { break if true; } } }",
	"fn f() { switch x { case 1, default: {} } }",
	"@vertex fn v(@builtin(position) p: vec4<f32>) -> @location(0) vec4<f32> { return p; }",
	"const x = ; fn",
	"}}}((([[[",
	"/* unterminated",
	"fn f() { let s = 0x1.8p3; let t = 1e; }",
}

// testdataDir is the repository testdata directory.
func testdataDir() string {
	return filepath.Join("..", "..", "testdata")
}

// corpusFiles returns the *.wgsl files under testdata, or nil when absent.
func corpusFiles() []string {
	var files []string
	_ = filepath.WalkDir(testdataDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && filepath.Ext(path) == ".wgsl" {
			files = append(files, path)
		}
		return nil
	})
	return files
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	for _, path := range corpusFiles() {
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f.Add(clampSeed(src))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
