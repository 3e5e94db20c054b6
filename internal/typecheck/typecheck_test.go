package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/hec/internal/ast"
	"github.com/gmofishsauce/hec/internal/lexer"
	"github.com/gmofishsauce/hec/internal/parser"
	"github.com/gmofishsauce/hec/internal/source"
)

func checkString(t *testing.T, text string) *TypecheckedExpressions {
	t.Helper()
	src := source.New("test.he", []byte(text))
	store, lexErr := lexer.Lex(src)
	require.Nil(t, lexErr)
	pe, parseErr := parser.Parse(src, store)
	require.Nil(t, parseErr)
	te, err := Check(src, store, pe)
	require.Nil(t, err, "unexpected typecheck error: %v", err)
	return te
}

func TestCheckMovesImportCOutOfArena(t *testing.T) {
	te := checkString(t, `@import_c("stdio.h");`)
	require.Len(t, te.ImportCs, 1)
	node := te.Parsed.Node(te.ImportCs[0])
	assert.Equal(t, ast.KindMoved, node.Kind)
}

func TestCheckMovesInlineCOutOfArena(t *testing.T) {
	te := checkString(t, `inline_c { int x; }`)
	require.Len(t, te.InlineCs, 1)
	node := te.Parsed.Node(te.InlineCs[0])
	assert.Equal(t, ast.KindMoved, node.Kind)
}

func TestCheckGathersFunctionForwardDecls(t *testing.T) {
	te := checkString(t, "pub fn main() -> i32 { return 0; } fn helper() { return; }")
	require.Len(t, te.PublicFunctionDecls, 1)
	assert.Equal(t, "main", te.PublicFunctionDecls[0].Name)
	require.Len(t, te.PrivateFunctionDecls, 1)
	assert.Equal(t, "helper", te.PrivateFunctionDecls[0].Name)
}

func TestCheckGathersStructForwardDecl(t *testing.T) {
	te := checkString(t, "let Point = struct { x: i32, y: i32, };")
	require.Len(t, te.StructForwardDecls, 1)
	assert.Equal(t, "Point", te.StructForwardDecls[0].Name)
}

func TestCheckDuplicateTopLevelNameIsError(t *testing.T) {
	src := source.New("test.he", []byte("fn f() { return; } fn f() { return; }"))
	store, lexErr := lexer.Lex(src)
	require.Nil(t, lexErr)
	pe, parseErr := parser.Parse(src, store)
	require.Nil(t, parseErr)
	_, err := Check(src, store, pe)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "f")
}

func TestCheckLeavesVariableDeclarationsInPlace(t *testing.T) {
	te := checkString(t, "pub let x: i32 = 1;")
	require.Len(t, te.Parsed.Roots, 1)
	node := te.Parsed.Node(te.Parsed.Roots[0])
	assert.Equal(t, ast.KindPublicConstantDeclaration, node.Kind)
}
