// Package source holds the immutable SourceFile that every later stage
// of the pipeline borrows byte offsets into.
package source

// File is an immutable pair of display name and byte text. All spans
// produced by the lexer, parser, and typechecker index into Text; File
// itself is never mutated after construction and is shared by reference
// across the whole compilation.
type File struct {
	Name string
	Text []byte
}

// New wraps name and text into a File. The caller must not mutate text
// afterwards.
func New(name string, text []byte) *File {
	return &File{Name: name, Text: text}
}

// Slice returns the substring [start, start+size) of the source text.
func (f *File) Slice(start, size int) string {
	return string(f.Text[start : start+size])
}

// Len returns the number of bytes in the source text.
func (f *File) Len() int {
	return len(f.Text)
}
