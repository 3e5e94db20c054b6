package source

import "sort"

// LineIndex converts byte offsets into File.Text to 1-based line/column
// pairs. It is built once per File and cached by callers that render
// more than one diagnostic against the same source.
type LineIndex struct {
	lineStart []int
}

// NewLineIndex scans text once, recording the byte offset of the start
// of each line (0-based, line 1 always starts at offset 0).
func NewLineIndex(text []byte) *LineIndex {
	starts := make([]int, 1, 64)
	starts[0] = 0
	for i, b := range text {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{lineStart: starts}
}

// LineCol returns the 1-based line and column for a byte cursor.
// Column counts bytes, not runes, since token spans are byte offsets.
func (li *LineIndex) LineCol(cursor int) (line, col int) {
	if cursor < 0 {
		cursor = 0
	}
	idx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > cursor
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return idx + 1, cursor - li.lineStart[idx] + 1
}

// LineText returns the text of the given 1-based line, without its
// trailing newline.
func (li *LineIndex) LineText(text []byte, line int) string {
	if line < 1 || line > len(li.lineStart) {
		return ""
	}
	start := li.lineStart[line-1]
	end := len(text)
	if line < len(li.lineStart) {
		end = li.lineStart[line] - 1
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return ""
	}
	return string(text[start:end])
}
