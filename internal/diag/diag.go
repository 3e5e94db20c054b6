// Package diag renders lex, parse, typecheck, and host diagnostics
// against a SourceFile: line/column lookup, the offending line, a caret
// underline, and an optional hint. Diagnostics carry spans, not
// strings — rendering only happens when a diagnostic is displayed, so
// the hot parsing path never builds formatted output.
package diag

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/gmofishsauce/hec/internal/source"
)

// Stage identifies which pipeline phase raised a diagnostic, used only
// to format the "STAGE error @ PRODUCTION: MESSAGE" line from spec.md §6.
type Stage string

const (
	Lex       Stage = "lex"
	Parse     Stage = "parse"
	Typecheck Stage = "typecheck"
	Host      Stage = "host"
)

// Diagnostic is the common shape every error kind renders through.
type Diagnostic struct {
	Stage      Stage
	Message    string
	Hint       string
	Production string // offending parser function name, if any
	ByteIndex  int
}

// LexError is {message, source-byte-index}.
type LexError struct {
	Message   string
	ByteIndex int
}

func (e *LexError) Error() string { return e.Message }

func (e *LexError) Diagnostic() Diagnostic {
	return Diagnostic{Stage: Lex, Message: e.Message, ByteIndex: e.ByteIndex}
}

// ParseError is {message, optional hint, offending token, originating
// parser function name}.
type ParseError struct {
	Message         string
	Hint            string
	OffendingToken  int // byte offset of the offending token
	Production      string
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Diagnostic() Diagnostic {
	return Diagnostic{
		Stage:      Parse,
		Message:    e.Message,
		Hint:       e.Hint,
		Production: e.Production,
		ByteIndex:  e.OffendingToken,
	}
}

// TypecheckError is {message, offending-expression byte index}.
type TypecheckError struct {
	Message   string
	ByteIndex int
}

func (e *TypecheckError) Error() string { return e.Message }

func (e *TypecheckError) Diagnostic() Diagnostic {
	return Diagnostic{Stage: Typecheck, Message: e.Message, ByteIndex: e.ByteIndex}
}

// Renderer prints diagnostics against one SourceFile.
type Renderer struct {
	src   *source.File
	lines *source.LineIndex
	out   io.Writer
	color bool
}

// NewRenderer builds a Renderer writing to out, colorizing the caret
// underline only when out is a terminal.
func NewRenderer(src *source.File, out *os.File) *Renderer {
	return &Renderer{
		src:   src,
		lines: source.NewLineIndex(src.Text),
		out:   out,
		color: term.IsTerminal(int(out.Fd())),
	}
}

// Render writes "STAGE error @ PRODUCTION: MESSAGE [FILE:LINE:COLUMN]"
// followed by the offending line and a caret underline, and an
// optional "Hint: ..." line, per spec.md §6.
func (r *Renderer) Render(d Diagnostic) {
	line, col := r.lines.LineCol(d.ByteIndex)

	if d.Production != "" {
		fmt.Fprintf(r.out, "%s error @ %s: %s [%s:%d:%d]\n",
			d.Stage, d.Production, d.Message, r.src.Name, line, col)
	} else {
		fmt.Fprintf(r.out, "%s error: %s [%s:%d:%d]\n",
			d.Stage, d.Message, r.src.Name, line, col)
	}

	lineText := r.lines.LineText(r.src.Text, line)
	fmt.Fprintln(r.out, lineText)

	caret := make([]byte, col-1, col)
	for i := range caret {
		caret[i] = ' '
	}
	caret = append(caret, '^')
	if r.color {
		fmt.Fprintf(r.out, "\x1b[31m%s\x1b[0m\n", caret)
	} else {
		fmt.Fprintf(r.out, "%s\n", caret)
	}

	if d.Hint != "" {
		fmt.Fprintf(r.out, "Hint: %s\n", d.Hint)
	}
}
