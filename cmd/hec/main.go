// hec - He compiler driver
//
// Usage: hec [flags] file
//
// Flags:
//   -o, --output file          Write output to file (default a.out, or a.c with -S)
//   -S, --export-generated-source   Stop after generating C; write it to the output file
//   -dt, --dump-tokens         Dump the token stream to stderr before parsing
//   -de, --dump-expressions    Dump the parsed expression tree to stderr before typechecking
//
// The CC environment variable selects the external C compiler invoked
// when -S is not given; it defaults to clang.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gmofishsauce/hec/internal/diag"
	"github.com/gmofishsauce/hec/internal/driver"
	"github.com/gmofishsauce/hec/internal/source"
)

var (
	outputFile      = flag.String("o", "", "output file name (default a.out, or a.c with -S)")
	outputFileLong  = flag.String("output", "", "output file name (default a.out, or a.c with -S)")
	exportSource    = flag.Bool("S", false, "stop after generating C; write it to the output file")
	exportSrcLong   = flag.Bool("export-generated-source", false, "stop after generating C; write it to the output file")
	dumpTokens      = flag.Bool("dt", false, "dump the token stream to stderr")
	dumpTokensLong  = flag.Bool("dump-tokens", false, "dump the token stream to stderr")
	dumpExprs       = flag.Bool("de", false, "dump the parsed expression tree to stderr")
	dumpExprsLong   = flag.Bool("dump-expressions", false, "dump the parsed expression tree to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] file\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "He compiler driver\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	for _, arg := range os.Args[1:] {
		if arg == "-h" || arg == "--help" {
			flag.Usage()
			os.Exit(0)
		}
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	opts := driver.Options{
		InputPath:          flag.Arg(0),
		OutputPath:         firstNonEmpty(*outputFile, *outputFileLong),
		DumpTokens:         *dumpTokens || *dumpTokensLong,
		DumpExpressions:    *dumpExprs || *dumpExprsLong,
		ExportGeneratedSrc: *exportSource || *exportSrcLong,
	}

	if err := driver.Run(opts); err != nil {
		report(opts.InputPath, err)
		os.Exit(1)
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// report prints err per spec.md §7's error taxonomy: lex/parse/typecheck
// errors render with diag.Renderer against the offending source file;
// anything else is a host error and is printed as-is.
func report(path string, err error) {
	switch e := err.(type) {
	case *diag.LexError:
		renderDiagnostic(path, e.Diagnostic())
	case *diag.ParseError:
		renderDiagnostic(path, e.Diagnostic())
	case *diag.TypecheckError:
		renderDiagnostic(path, e.Diagnostic())
	default:
		fmt.Fprintf(os.Stderr, "hec: %v\n", err)
	}
}

func renderDiagnostic(path string, d diag.Diagnostic) {
	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hec: %v\n", err)
		return
	}
	src := source.New(path, text)
	r := diag.NewRenderer(src, os.Stderr)
	r.Render(d)
}
