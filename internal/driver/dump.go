package driver

import (
	"fmt"
	"os"

	"github.com/gmofishsauce/hec/internal/ast"
	"github.com/gmofishsauce/hec/internal/source"
	"github.com/gmofishsauce/hec/internal/token"
)

// dumpTokens writes one line per token to stderr, for -dt/--dump-tokens.
func dumpTokens(src *source.File, store *token.Store) {
	for i := 0; i < store.Len(); i++ {
		tok := store.At(i)
		fmt.Fprintf(os.Stderr, "%4d: %-10s %q\n", i, tok.Kind, tok.Text(src))
	}
}

// dumpExpressions writes one line per parsed node to stderr, for
// -de/--dump-expressions, in arena order (not source order).
func dumpExpressions(pe *ast.ParsedExpressions) {
	for id, node := range pe.Nodes {
		fmt.Fprintf(os.Stderr, "%4d: %-20s tokens[%d:%d]\n", id, node.Kind, node.Start, node.End)
	}
	fmt.Fprintf(os.Stderr, "roots: %v\n", pe.Roots)
}
