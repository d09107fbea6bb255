package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"wgslcst/internal/cst"
	"wgslcst/internal/source"
	"wgslcst/internal/token"
)

// Bump when the record layout or the parser output changes.
const treeCacheSchemaVersion uint16 = 1

// TreeCache keeps error-free trees on disk, keyed by the SHA-256 of the file
// content and by whether the tree ends with its EOF terminal.
// Safe for concurrent use.
type TreeCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedTree is the on-disk payload: the tree flattened in pre-order.
type cachedTree struct {
	Schema uint16
	Nodes  []cachedNode
}

// cachedNode is one rule (Rule != "") or terminal.
// Rules store their child count; the children follow in pre-order.
type cachedNode struct {
	Rule     string         `msgpack:"r,omitempty"`
	Children uint32         `msgpack:"n,omitempty"`
	Kind     token.Kind     `msgpack:"k,omitempty"`
	Text     string         `msgpack:"t,omitempty"`
	Start    uint32         `msgpack:"s"`
	End      uint32         `msgpack:"e"`
	Leading  []cachedTrivia `msgpack:"l,omitempty"`
}

type cachedTrivia struct {
	Kind  token.TriviaKind `msgpack:"k"`
	Text  string           `msgpack:"t"`
	Start uint32           `msgpack:"s"`
	End   uint32           `msgpack:"e"`
}

// OpenTreeCache opens the cache under $XDG_CACHE_HOME/<app>/trees (or ~/.cache).
func OpenTreeCache(app string) (*TreeCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewTreeCache(filepath.Join(base, app, "trees"))
}

// NewTreeCache opens a cache rooted at dir, creating it if needed.
func NewTreeCache(dir string) (*TreeCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TreeCache{dir: dir}, nil
}

func (c *TreeCache) Dir() string { return c.dir }

func (c *TreeCache) pathFor(hash [32]byte, keepEOF bool) string {
	name := hex.EncodeToString(hash[:])
	if keepEOF {
		name += "-eof"
	}
	return filepath.Join(c.dir, name+".mp")
}

// Put stores root for file. The write is atomic: temp file, then rename.
func (c *TreeCache) Put(file *source.File, root *cst.Rule, keepEOF bool) error {
	if c == nil {
		return nil
	}
	payload := cachedTree{Schema: treeCacheSchemaVersion}
	flatten(root, &payload.Nodes)

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(file.Hash, keepEOF)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get rebuilds the tree stored for file's content, with spans in file.
// A missing entry or an entry from another schema is a miss, not an error.
func (c *TreeCache) Get(file *source.File, keepEOF bool) (*cst.Rule, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(file.Hash, keepEOF))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachedTree
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	if payload.Schema != treeCacheSchemaVersion {
		return nil, false, nil
	}
	root, err := unflatten(payload.Nodes, file.ID)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	return root, true, nil
}

// DropAll removes every cached tree.
func (c *TreeCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func flatten(n cst.Node, out *[]cachedNode) {
	sp := n.Span()
	switch n := n.(type) {
	case *cst.Rule:
		*out = append(*out, cachedNode{
			Rule:     n.Name,
			Children: uint32(len(n.Children)), //nolint:gosec // bounded by the token count
			Start:    sp.Start,
			End:      sp.End,
		})
		for _, c := range n.Children {
			flatten(c, out)
		}
	case *cst.Terminal:
		rec := cachedNode{Kind: n.Tok.Kind, Text: n.Tok.Text, Start: sp.Start, End: sp.End}
		for _, tr := range n.Tok.Leading {
			rec.Leading = append(rec.Leading, cachedTrivia{
				Kind: tr.Kind, Text: tr.Text, Start: tr.Span.Start, End: tr.Span.End,
			})
		}
		*out = append(*out, rec)
	}
}

var errCorruptTree = errors.New("corrupt cached tree")

func unflatten(nodes []cachedNode, file source.FileID) (*cst.Rule, error) {
	pos := 0
	var build func() (cst.Node, error)
	build = func() (cst.Node, error) {
		if pos >= len(nodes) {
			return nil, errCorruptTree
		}
		rec := nodes[pos]
		pos++
		sp := source.Span{File: file, Start: rec.Start, End: rec.End}
		if rec.Rule == "" {
			tok := token.Token{Kind: rec.Kind, Span: sp, Text: rec.Text}
			for _, tr := range rec.Leading {
				tok.Leading = append(tok.Leading, token.Trivia{
					Kind: tr.Kind,
					Span: source.Span{File: file, Start: tr.Start, End: tr.End},
					Text: tr.Text,
				})
			}
			return &cst.Terminal{Tok: tok}, nil
		}
		r := cst.NewRule(rec.Rule, sp)
		for range rec.Children {
			child, err := build()
			if err != nil {
				return nil, err
			}
			r.Append(child)
		}
		if r.Span() != sp {
			return nil, errCorruptTree
		}
		return r, nil
	}

	root, err := build()
	if err != nil {
		return nil, err
	}
	rule, ok := root.(*cst.Rule)
	if !ok || pos != len(nodes) {
		return nil, errCorruptTree
	}
	return rule, nil
}
