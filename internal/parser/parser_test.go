package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/hec/internal/ast"
	"github.com/gmofishsauce/hec/internal/lexer"
	"github.com/gmofishsauce/hec/internal/source"
)

func parseString(t *testing.T, text string) *ast.ParsedExpressions {
	t.Helper()
	src := source.New("test.he", []byte(text))
	store, lexErr := lexer.Lex(src)
	require.Nil(t, lexErr, "unexpected lex error: %v", lexErr)
	pe, err := Parse(src, store)
	require.Nil(t, err, "unexpected parse error: %v", err)
	return pe
}

func TestParseMinimalFunction(t *testing.T) {
	pe := parseString(t, "pub fn main() -> i32 { return 0; }")
	require.Len(t, pe.Roots, 1)
	node := pe.Node(pe.Roots[0])
	assert.Equal(t, ast.KindPublicFunction, node.Kind)

	fn := pe.PublicFunctions.Get(ast.ID[ast.Function](node.Index))
	assert.Empty(t, pe.ParamLists.Get(fn.Params))

	body := pe.Blocks.Get(fn.Body)
	require.Len(t, body.Stmts, 1)
	ret := pe.Node(body.Stmts[0])
	assert.Equal(t, ast.KindReturn, ret.Kind)
}

func TestParseFunctionWithParams(t *testing.T) {
	pe := parseString(t, "fn add(a: i32, b: i32) -> i32 { return a; }")
	require.Len(t, pe.Roots, 1)
	node := pe.Node(pe.Roots[0])
	require.Equal(t, ast.KindPrivateFunction, node.Kind)

	fn := pe.PrivateFunctions.Get(ast.ID[ast.Function](node.Index))
	params := pe.ParamLists.Get(fn.Params)
	require.Len(t, params, 2)

	body := pe.Blocks.Get(fn.Body)
	require.Len(t, body.Stmts, 1)

	ret := pe.Node(body.Stmts[0])
	assert.Equal(t, ast.KindReturn, ret.Kind)
}

func TestParseImportC(t *testing.T) {
	pe := parseString(t, `@import_c("stdio.h");`)
	require.Len(t, pe.Roots, 1)
	node := pe.Node(pe.Roots[0])
	assert.Equal(t, ast.KindImportC, node.Kind)
}

func TestParseInlineCCapturesVerbatimBytes(t *testing.T) {
	src := source.New("test.he", []byte(`inline_c { int x = 1; }`))
	store, lexErr := lexer.Lex(src)
	require.Nil(t, lexErr)
	pe, err := Parse(src, store)
	require.Nil(t, err)
	require.Len(t, pe.Roots, 1)

	node := pe.Node(pe.Roots[0])
	require.Equal(t, ast.KindInlineC, node.Kind)
	inlineC := pe.InlineCs.Get(ast.ID[ast.InlineC](node.Index))
	text := string(src.Text[inlineC.TextStart:inlineC.TextEnd])
	assert.Equal(t, " int x = 1; ", text)
}

func TestParseNestedBracesInInlineC(t *testing.T) {
	src := source.New("test.he", []byte(`inline_c { if (1) { x(); } }`))
	store, lexErr := lexer.Lex(src)
	require.Nil(t, lexErr)
	pe, err := Parse(src, store)
	require.Nil(t, err)
	require.Len(t, pe.Roots, 1)
	node := pe.Node(pe.Roots[0])
	require.Equal(t, ast.KindInlineC, node.Kind)
}

func TestParseStructDeclaration(t *testing.T) {
	// S3 (spec.md §8): the trailing comma before '}' is mandatory.
	pe := parseString(t, "let Point = struct { x: i32, y: i32, };")
	require.Len(t, pe.Roots, 1)
	node := pe.Node(pe.Roots[0])
	require.Equal(t, ast.KindStructDeclaration, node.Kind)
	decl := pe.StructDeclarations.Get(ast.ID[ast.StructDeclaration](node.Index))
	members := pe.MemberLists.Get(decl.Members)
	require.Len(t, members, 2)
}

func TestParseStructDeclarationMissingTrailingCommaIsError(t *testing.T) {
	src := source.New("test.he", []byte("let Point = struct { x: i32, y: i32 };"))
	store, lexErr := lexer.Lex(src)
	require.Nil(t, lexErr)
	_, err := Parse(src, store)
	require.NotNil(t, err)
	assert.Equal(t, "struct_declaration", err.Production)
}

func TestParseStructInitializer(t *testing.T) {
	pe := parseString(t, "fn f() { let p = Point{ .x = 1, .y = 2 }; }")
	fnNode := pe.Node(pe.Roots[0])
	fn := pe.PrivateFunctions.Get(ast.ID[ast.Function](fnNode.Index))
	body := pe.Blocks.Get(fn.Body)
	require.Len(t, body.Stmts, 1)

	declNode := pe.Node(body.Stmts[0])
	require.Equal(t, ast.KindPrivateConstantDeclaration, declNode.Kind)
	decl := pe.PrivateConstantDeclarations.Get(ast.ID[ast.VarDecl](declNode.Index))

	initNode := pe.Node(decl.Init)
	require.Equal(t, ast.KindStructInitializer, initNode.Kind)
	init := pe.StructInitializers.Get(ast.ID[ast.StructInitializer](initNode.Index))
	require.Len(t, init.Fields, 2)
}

func TestParseIfWhileLoop(t *testing.T) {
	pe := parseString(t, "fn f() { while x { if y { return; } } }")
	fnNode := pe.Node(pe.Roots[0])
	fn := pe.PrivateFunctions.Get(ast.ID[ast.Function](fnNode.Index))
	body := pe.Blocks.Get(fn.Body)
	require.Len(t, body.Stmts, 1)

	whileNode := pe.Node(body.Stmts[0])
	require.Equal(t, ast.KindWhile, whileNode.Kind)
	wh := pe.Whiles.Get(ast.ID[ast.While](whileNode.Index))
	whileBody := pe.Blocks.Get(wh.Body)
	require.Len(t, whileBody.Stmts, 1)

	ifNode := pe.Node(whileBody.Stmts[0])
	assert.Equal(t, ast.KindIf, ifNode.Kind)
}

func TestParseFunctionCall(t *testing.T) {
	pe := parseString(t, "fn f() { g(1, x); }")
	fnNode := pe.Node(pe.Roots[0])
	fn := pe.PrivateFunctions.Get(ast.ID[ast.Function](fnNode.Index))
	body := pe.Blocks.Get(fn.Body)
	require.Len(t, body.Stmts, 1)

	rvNode := pe.Node(body.Stmts[0])
	require.Equal(t, ast.KindRValue, rvNode.Kind)
	rv := pe.RValues.Get(ast.ID[ast.RValue](rvNode.Index))
	require.Len(t, rv.Items, 1)

	callNode := pe.Node(rv.Items[0].Expr)
	require.Equal(t, ast.KindFunctionCall, callNode.Kind)
	call := pe.FunctionCalls.Get(ast.ID[ast.FunctionCall](callNode.Index))
	require.Len(t, call.Args, 2)
}

func TestParseUninitializedBuiltinIsCompilerProvided(t *testing.T) {
	pe := parseString(t, "fn f() { var x: i32 = @uninitialized(); }")
	fnNode := pe.Node(pe.Roots[0])
	fn := pe.PrivateFunctions.Get(ast.ID[ast.Function](fnNode.Index))
	body := pe.Blocks.Get(fn.Body)
	declNode := pe.Node(body.Stmts[0])
	decl := pe.PrivateVariableDeclarations.Get(ast.ID[ast.VarDecl](declNode.Index))
	initNode := pe.Node(decl.Init)
	assert.Equal(t, ast.KindCompilerProvidedU64, initNode.Kind)
}

func TestParseUnexpectedTopLevelTokenIsError(t *testing.T) {
	src := source.New("test.he", []byte("123"))
	store, lexErr := lexer.Lex(src)
	require.Nil(t, lexErr)
	_, err := Parse(src, store)
	require.NotNil(t, err)
	assert.Equal(t, "top_level_declaration", err.Production)
}

func TestParseMissingSemicolonIsError(t *testing.T) {
	src := source.New("test.he", []byte("fn f() { return 0 }"))
	store, lexErr := lexer.Lex(src)
	require.Nil(t, lexErr)
	_, err := Parse(src, store)
	require.NotNil(t, err)
	assert.Equal(t, "return_statement", err.Production)
}
