package source

import (
	"path/filepath"
	"slices"
	"sort"
)

// normalizeCRLF replaces every "\r\n" with "\n", leaving lone '\r' alone.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			continue
		}
		out = append(out, content[i])
	}
	return out, len(out) != len(content)
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- Add checks len(content) fits uint32
		}
	}
	return out
}

// toLineCol finds the line containing off: the number of newlines strictly before off.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1} // #nosec G115 -- line <= len(lineIdx)
}

// lineBounds returns the [start, end) byte range of the 1-based line.
func lineBounds(lineIdx []uint32, contentLen int, lineNum uint32) (start, end uint32, ok bool) {
	idx := int(lineNum) - 1
	if idx > len(lineIdx) {
		return 0, 0, false
	}
	if idx > 0 {
		start = lineIdx[idx-1] + 1
	}
	if idx < len(lineIdx) {
		end = lineIdx[idx]
	} else {
		end = uint32(contentLen) // #nosec G115 -- Add checks len(content) fits uint32
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
