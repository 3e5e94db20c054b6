// Package driver orchestrates the single-binary pipeline: read the
// source file, lex, parse, typecheck, generate C, then either export
// the generated source (-S) or hand it to an external C compiler.
// Grounded on lang/ya/main.go's driver shape (flag-driven, temp-file
// cleanup via defer, os/exec subprocess invocation) adapted from a
// multi-process pipeline to a single in-process one, since spec.md §5
// keeps the whole front end single-threaded and in-process.
package driver

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/gmofishsauce/hec/internal/codegen"
	"github.com/gmofishsauce/hec/internal/lexer"
	"github.com/gmofishsauce/hec/internal/parser"
	"github.com/gmofishsauce/hec/internal/sink"
	"github.com/gmofishsauce/hec/internal/source"
	"github.com/gmofishsauce/hec/internal/typecheck"
)

// defaultSinkCapacity is a few megabytes, per spec.md §4.5.
const defaultSinkCapacity = 8 << 20

// Options captures the CLI surface spec.md §6 names.
type Options struct {
	InputPath          string
	OutputPath         string
	DumpTokens         bool
	DumpExpressions    bool
	ExportGeneratedSrc bool
}

// Run executes one end-to-end compilation. A non-nil error is always
// either a *diag.LexError, *diag.ParseError, *diag.TypecheckError (to
// be rendered with diag.Renderer), or a host error wrapped with
// github.com/pkg/errors (file I/O, temp-file, or compiler-invocation
// failure), matching the taxonomy in spec.md §7.
func Run(opts Options) error {
	text, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return errors.Wrapf(err, "host error: reading %s", opts.InputPath)
	}
	src := source.New(opts.InputPath, text)

	tokens, lexErr := lexer.Lex(src)
	if lexErr != nil {
		return lexErr
	}
	if opts.DumpTokens {
		dumpTokens(src, tokens)
	}

	parsed, parseErr := parser.Parse(src, tokens)
	if parseErr != nil {
		return parseErr
	}
	if opts.DumpExpressions {
		dumpExpressions(parsed)
	}

	typechecked, typecheckErr := typecheck.Check(src, tokens, parsed)
	if typecheckErr != nil {
		return typecheckErr
	}

	buf := sink.New(defaultSinkCapacity)
	gen := codegen.New(src, tokens, typechecked)
	if err := gen.Generate(buf); err != nil {
		return errors.Wrap(err, "host error: generating C source")
	}

	outputPath := resolveOutputPath(opts)
	if opts.ExportGeneratedSrc {
		if err := buf.FlushTo(outputPath); err != nil {
			return errors.Wrapf(err, "host error: writing %s", outputPath)
		}
		return nil
	}

	return compileWithExternalCC(buf, outputPath)
}

// resolveOutputPath applies spec.md §6's default: `a.out` normally,
// `a.c` when -S is set, unless the caller supplied -o explicitly.
func resolveOutputPath(opts Options) string {
	if opts.OutputPath != "" {
		return opts.OutputPath
	}
	if opts.ExportGeneratedSrc {
		return "a.c"
	}
	return "a.out"
}

// compileWithExternalCC writes the generated source to a temporary
// file and invokes $CC (default clang) against it, per spec.md §6's
// "-Wno-duplicate-decl-specifier -o OUT IN" contract.
func compileWithExternalCC(buf *sink.Buffer, outputPath string) error {
	tmp, err := os.CreateTemp("", "hec-*.c")
	if err != nil {
		return errors.Wrap(err, "host error: creating temporary C file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "host error: writing %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "host error: closing %s", tmpPath)
	}

	cc := os.Getenv("CC")
	if cc == "" {
		cc = "clang"
	}

	cmd := exec.Command(cc, "-Wno-duplicate-decl-specifier", "-o", outputPath, tmpPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "host error: %s invocation failed", cc)
	}
	return nil
}

