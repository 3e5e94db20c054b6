package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/hec/internal/lexer"
	"github.com/gmofishsauce/hec/internal/parser"
	"github.com/gmofishsauce/hec/internal/source"
	"github.com/gmofishsauce/hec/internal/typecheck"
)

func generate(t *testing.T, text string) string {
	t.Helper()
	src := source.New("test.he", []byte(text))
	store, lexErr := lexer.Lex(src)
	require.Nil(t, lexErr)
	pe, parseErr := parser.Parse(src, store)
	require.Nil(t, parseErr)
	te, checkErr := typecheck.Check(src, store, pe)
	require.Nil(t, checkErr)

	var buf bytes.Buffer
	gen := New(src, store, te)
	require.NoError(t, gen.Generate(&buf))
	return buf.String()
}

func TestGeneratePreludeAlwaysPresent(t *testing.T) {
	out := generate(t, "fn f() { return; }")
	assert.Contains(t, out, "typedef int32_t i32;")
	assert.Contains(t, out, "#define let __auto_type const")
}

func TestGeneratePreludeIncludesNewerGenerationAliases(t *testing.T) {
	out := generate(t, "fn f() { return; }")
	assert.Contains(t, out, "#include <stddef.h>")
	assert.Contains(t, out, "typedef float f32;")
	assert.Contains(t, out, "typedef double f64;")
	assert.Contains(t, out, "typedef size_t usize;")
	assert.Contains(t, out, "typedef int c_int;")
	assert.Contains(t, out, "typedef long c_long;")
	assert.Contains(t, out, "#define true 1")
	assert.Contains(t, out, "#define false 0")
}

func TestGenerateImportCBecomesInclude(t *testing.T) {
	out := generate(t, `@import_c("stdio.h"); fn f() { return; }`)
	assert.Contains(t, out, `#include "stdio.h"`)
}

func TestGenerateInlineCPassesThroughVerbatim(t *testing.T) {
	out := generate(t, `inline_c { int global_flag = 1; }`)
	assert.Contains(t, out, "int global_flag = 1;")
}

func TestGenerateFunctionForwardDeclBeforeDefinition(t *testing.T) {
	out := generate(t, "pub fn main() -> i32 { return 0; }")
	protoIdx := strings.Index(out, "i32 main(void);")
	defIdx := strings.Index(out, "i32 main(void)\n{")
	require.NotEqual(t, -1, protoIdx)
	require.NotEqual(t, -1, defIdx)
	assert.Less(t, protoIdx, defIdx)
}

func TestGeneratePrivateFunctionIsStatic(t *testing.T) {
	out := generate(t, "fn helper() { return; }")
	assert.Contains(t, out, "static void helper(void);")
	assert.Contains(t, out, "static void helper(void)\n{")
}

func TestGenerateStructForwardDeclThenDefinition(t *testing.T) {
	// S3 (spec.md §8), verbatim: the trailing comma before '}' is mandatory.
	out := generate(t, "let Point = struct { x: i32, y: i32, };")
	fwdIdx := strings.Index(out, "typedef struct Point Point;")
	defIdx := strings.Index(out, "struct Point\n{")
	require.NotEqual(t, -1, fwdIdx)
	require.NotEqual(t, -1, defIdx)
	assert.Less(t, fwdIdx, defIdx)
	assert.Contains(t, out, "i32 x;")
	assert.Contains(t, out, "i32 y;")
}

func TestGenerateUninitializedOmitsInitializer(t *testing.T) {
	out := generate(t, "fn f() { var x: i32 = @uninitialized(); return; }")
	assert.Contains(t, out, "i32 x;")
	assert.NotContains(t, out, "i32 x = ")
}

func TestGenerateReturnStatement(t *testing.T) {
	out := generate(t, "fn f() -> i32 { return 1; }")
	assert.Contains(t, out, "return 1;")
}

func TestGenerateStructInitializerKeepsTrailingSemicolon(t *testing.T) {
	out := generate(t, "let Point = struct { x: i32, y: i32, }; fn f() { let p = Point{ .x = 1, .y = 2 }; return; }")
	assert.Contains(t, out, "(Point){.x = 1, .y = 2};;")
}
