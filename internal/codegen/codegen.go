// Package codegen is the single-pass C emitter: spec.md §4.4's fixed
// order is prelude, #includes (from ImportC), inline-C blocks, struct
// forward declarations, function forward declarations (public,
// private, public-C, private-C — private ones prefixed `static`), then
// every remaining node in source order.
package codegen

import (
	"bufio"
	"io"
	"strconv"

	"github.com/gmofishsauce/hec/internal/ast"
	"github.com/gmofishsauce/hec/internal/source"
	"github.com/gmofishsauce/hec/internal/token"
	"github.com/gmofishsauce/hec/internal/typecheck"
)

// prelude is emitted verbatim at the top of every generated file. The
// fixed-width, c_string, and let/var parts are confirmed against
// original_source/src/bootstrap/He/Codegen.cpp; spec.md §4.4 item 1
// additionally requires <stddef.h>, f32/f64, C-ABI integer aliases,
// usize, and the true/false macros — the newer-generation prelude
// SPEC_FULL.md calls for, not present in the original's shorter one.
const prelude = `#include <stdint.h>
#include <stddef.h>
typedef int8_t i8;
typedef int16_t i16;
typedef int32_t i32;
typedef int64_t i64;
typedef uint8_t u8;
typedef uint16_t u16;
typedef uint32_t u32;
typedef uint64_t u64;
typedef float f32;
typedef double f64;
typedef size_t usize;
typedef char const* c_string;
typedef signed char c_char;
typedef unsigned char c_uchar;
typedef short c_short;
typedef unsigned short c_ushort;
typedef int c_int;
typedef unsigned int c_uint;
typedef long c_long;
typedef unsigned long c_ulong;
typedef long long c_longlong;
typedef unsigned long long c_ulonglong;
#define true 1
#define false 0
#define let __auto_type const
#define var __auto_type
`

// Generator walks a TypecheckedExpressions once and writes the
// generated translation unit to w.
type Generator struct {
	src   *source.File
	store *token.Store
	te    *typecheck.TypecheckedExpressions
	pe    *ast.ParsedExpressions
	em    *Emitter
}

// New constructs a Generator over the result of a typecheck pass.
func New(src *source.File, store *token.Store, te *typecheck.TypecheckedExpressions) *Generator {
	return &Generator{src: src, store: store, te: te, pe: te.Parsed}
}

// Generate writes the full translation unit to w.
func (g *Generator) Generate(w io.Writer) error {
	bw := bufio.NewWriter(w)
	g.em = NewEmitter(bw)

	g.emitPrelude()
	g.emitIncludes()
	g.emitInlineC()
	g.emitStructForwardDecls()
	g.emitFunctionForwardDecls()
	g.emitRemainingNodes()

	return g.em.Flush()
}

func (g *Generator) tokText(tokIndex int) string {
	return g.store.At(tokIndex).Text(g.src)
}

func (g *Generator) emitPrelude() {
	g.em.Raw(prelude)
	g.em.BlankLine()
}

// emitIncludes turns every moved-out ImportC node into a #include.
func (g *Generator) emitIncludes() {
	for _, id := range g.te.ImportCs {
		node := g.pe.Node(id)
		imp := g.pe.ImportCs.Get(ast.ID[ast.ImportC](node.Index))
		header := g.tokText(imp.HeaderToken)
		g.em.Line("#include %s", header)
	}
	if len(g.te.ImportCs) > 0 {
		g.em.BlankLine()
	}
}

// emitInlineC reproduces every moved-out inline_c body byte for byte.
func (g *Generator) emitInlineC() {
	for _, id := range g.te.InlineCs {
		node := g.pe.Node(id)
		block := g.pe.InlineCs.Get(ast.ID[ast.InlineC](node.Index))
		g.em.Raw(string(g.src.Text[block.TextStart:block.TextEnd]))
		g.em.BlankLine()
	}
}

// emitStructForwardDecls emits one opaque `typedef struct NAME NAME;`
// per struct, ahead of any function signature that might reference it.
func (g *Generator) emitStructForwardDecls() {
	for _, decl := range g.te.StructForwardDecls {
		g.em.Line("typedef struct %s %s;", decl.Name, decl.Name)
	}
	if len(g.te.StructForwardDecls) > 0 {
		g.em.BlankLine()
	}
}

// emitFunctionForwardDecls emits one prototype per declared function,
// in the fixed pass order spec.md §4.4 names: public, private,
// public-C, private-C. Private prototypes are prefixed `static`.
func (g *Generator) emitFunctionForwardDecls() {
	for _, decl := range g.te.PublicFunctionDecls {
		g.emitFunctionPrototype(decl, g.pe.PublicFunctions, false)
	}
	for _, decl := range g.te.PrivateFunctionDecls {
		g.emitFunctionPrototype(decl, g.pe.PrivateFunctions, true)
	}
	for _, decl := range g.te.PublicCFunctionDecls {
		g.emitFunctionPrototype(decl, g.pe.PublicCFunctions, false)
	}
	for _, decl := range g.te.PrivateCFunctionDecls {
		g.emitFunctionPrototype(decl, g.pe.PrivateCFunctions, true)
	}
	total := len(g.te.PublicFunctionDecls) + len(g.te.PrivateFunctionDecls) +
		len(g.te.PublicCFunctionDecls) + len(g.te.PrivateCFunctionDecls)
	if total > 0 {
		g.em.BlankLine()
	}
}

func (g *Generator) emitFunctionPrototype(decl typecheck.ForwardDecl, arena ast.Arena[ast.Function], static bool) {
	fn := arena.Get(ast.ID[ast.Function](g.pe.Node(decl.Expr).Index))
	sig := g.functionSignature(fn)
	if static {
		g.em.Line("static %s;", sig)
	} else {
		g.em.Line("%s;", sig)
	}
}

func (g *Generator) functionSignature(fn ast.Function) string {
	returnType := "void"
	if fn.ReturnTypeToken >= 0 {
		returnType = g.tokText(fn.ReturnTypeToken)
	}
	params := g.pe.ParamLists.Get(fn.Params)
	paramText := "void"
	if len(params) > 0 {
		paramText = ""
		for i, p := range params {
			if i > 0 {
				paramText += ", "
			}
			paramText += g.tokText(p.TypeToken) + " " + g.tokText(p.NameToken)
		}
	}
	return returnType + " " + g.tokText(fn.NameToken) + "(" + paramText + ")"
}

// emitRemainingNodes walks every root in source order and emits
// whatever is left: function bodies, struct definitions, top-level
// variable/constant declarations. Moved nodes (ImportC/InlineC) are
// skipped since they were already emitted above.
func (g *Generator) emitRemainingNodes() {
	for _, id := range g.pe.Roots {
		node := g.pe.Node(id)
		if node.Kind == ast.KindMoved {
			continue
		}
		g.emitTopLevel(id, node)
		g.em.BlankLine()
	}
}

func (g *Generator) emitTopLevel(id ast.ExprID, node ast.Expression) {
	switch node.Kind {
	case ast.KindPublicFunction:
		g.emitFunctionDefinition(g.pe.PublicFunctions.Get(ast.ID[ast.Function](node.Index)), false)
	case ast.KindPrivateFunction:
		g.emitFunctionDefinition(g.pe.PrivateFunctions.Get(ast.ID[ast.Function](node.Index)), true)
	case ast.KindPublicCFunction:
		g.emitFunctionDefinition(g.pe.PublicCFunctions.Get(ast.ID[ast.Function](node.Index)), false)
	case ast.KindPrivateCFunction:
		g.emitFunctionDefinition(g.pe.PrivateCFunctions.Get(ast.ID[ast.Function](node.Index)), true)

	case ast.KindStructDeclaration:
		g.emitStructDefinition(g.pe.StructDeclarations.Get(ast.ID[ast.StructDeclaration](node.Index)))

	case ast.KindPublicVariableDeclaration:
		g.emitTopLevelVarDecl(g.pe.PublicVariableDeclarations.Get(ast.ID[ast.VarDecl](node.Index)), false)
	case ast.KindPrivateVariableDeclaration:
		g.emitTopLevelVarDecl(g.pe.PrivateVariableDeclarations.Get(ast.ID[ast.VarDecl](node.Index)), true)
	case ast.KindPublicConstantDeclaration:
		g.emitTopLevelVarDecl(g.pe.PublicConstantDeclarations.Get(ast.ID[ast.VarDecl](node.Index)), false)
	case ast.KindPrivateConstantDeclaration:
		g.emitTopLevelVarDecl(g.pe.PrivateConstantDeclarations.Get(ast.ID[ast.VarDecl](node.Index)), true)

	case ast.KindEnumDeclaration, ast.KindUnionDeclaration, ast.KindVariantDeclaration:
		// Forward-declaration-only tier (spec.md §3.3): nothing more to
		// emit at the definition site in this design.

	default:
		g.emitStatement(id)
	}
}

func (g *Generator) emitFunctionDefinition(fn ast.Function, static bool) {
	sig := g.functionSignature(fn)
	if static {
		sig = "static " + sig
	}
	g.em.Line("%s", sig)
	body := g.pe.Blocks.Get(fn.Body)
	g.emitBlock(body)
}

func (g *Generator) emitBlock(b ast.Block) {
	g.em.OpenBrace()
	for _, stmt := range b.Stmts {
		g.emitStatement(stmt)
	}
	g.em.CloseBrace()
}

// emitStructDefinition emits the member layout for a struct whose
// opaque typedef was already forward-declared
// (`typedef struct NAME NAME;`): the typedef name is declared exactly
// once, the member layout follows later in source order.
func (g *Generator) emitStructDefinition(decl ast.StructDeclaration) {
	name := g.tokText(decl.NameToken)
	g.em.Line("struct %s", name)
	g.em.OpenBrace()
	for _, m := range g.pe.MemberLists.Get(decl.Members) {
		g.em.Stmt("%s %s", g.tokText(m.TypeToken), g.tokText(m.NameToken))
	}
	g.em.CloseBraceSemi()
}

func (g *Generator) emitStatement(id ast.ExprID) {
	node := g.pe.Node(id)
	switch node.Kind {
	case ast.KindIf:
		ifNode := g.pe.Ifs.Get(ast.ID[ast.If](node.Index))
		g.em.Line("if (%s)", g.rvalueText(ifNode.Cond))
		g.emitBlock(g.pe.Blocks.Get(ifNode.Then))

	case ast.KindWhile:
		whileNode := g.pe.Whiles.Get(ast.ID[ast.While](node.Index))
		g.em.Line("while (%s)", g.rvalueText(whileNode.Cond))
		g.emitBlock(g.pe.Blocks.Get(whileNode.Body))

	case ast.KindReturn:
		ret := g.pe.Returns.Get(ast.ID[ast.Return](node.Index))
		if ret.Bare {
			g.em.Stmt("return")
		} else {
			g.em.Stmt("return %s", g.rvalueText(ret.Value))
		}

	case ast.KindBlock:
		g.emitBlock(g.pe.Blocks.Get(ast.ID[ast.Block](node.Index)))

	case ast.KindPrivateVariableDeclaration:
		g.emitLocalVarDecl(g.pe.PrivateVariableDeclarations.Get(ast.ID[ast.VarDecl](node.Index)))
	case ast.KindPublicVariableDeclaration:
		g.emitLocalVarDecl(g.pe.PublicVariableDeclarations.Get(ast.ID[ast.VarDecl](node.Index)))
	case ast.KindPrivateConstantDeclaration:
		g.emitLocalVarDecl(g.pe.PrivateConstantDeclarations.Get(ast.ID[ast.VarDecl](node.Index)))
	case ast.KindPublicConstantDeclaration:
		g.emitLocalVarDecl(g.pe.PublicConstantDeclarations.Get(ast.ID[ast.VarDecl](node.Index)))

	case ast.KindInlineC:
		inline := g.pe.InlineCs.Get(ast.ID[ast.InlineC](node.Index))
		g.em.Raw(string(g.src.Text[inline.TextStart:inline.TextEnd]))
		g.em.BlankLine()

	default:
		// RValue statements (assignments, bare calls) are expressions
		// used as statements.
		g.em.Stmt("%s", g.rvalueText(id))
	}
}

// isUninitializedSentinel reports whether init is the
// CompilerProvidedU64 sentinel the parser substitutes for
// `@uninitialized()` (spec.md §9 open question #5): when it is, the
// declaration is emitted with no initializer at all.
func (g *Generator) isUninitializedSentinel(init ast.ExprID) bool {
	return g.pe.Node(init).Kind == ast.KindCompilerProvidedU64
}

func (g *Generator) declText(decl ast.VarDecl) string {
	typeName := "__auto_type"
	if decl.TypeToken >= 0 {
		typeName = g.tokText(decl.TypeToken)
	}
	name := g.tokText(decl.NameToken)
	if decl.HasInit && !g.isUninitializedSentinel(decl.Init) {
		return typeName + " " + name + " = " + g.rvalueText(decl.Init)
	}
	return typeName + " " + name
}

func (g *Generator) emitLocalVarDecl(decl ast.VarDecl) {
	g.em.Stmt("%s", g.declText(decl))
}

func (g *Generator) emitTopLevelVarDecl(decl ast.VarDecl, static bool) {
	text := g.declText(decl)
	if static {
		text = "static " + text
	}
	g.em.Stmt("%s", text)
}

// rvalueText renders an arbitrary expression node inline: literals and
// lvalues as their token spelling, flat RValue sequences as the
// concatenation of their operand/operator tokens in source order
// (operator precedence is deliberately unresolved, spec.md §9, so the
// generated C relies on the source language and C sharing the same
// left-to-right token order), calls and struct initializers recursively.
func (g *Generator) rvalueText(id ast.ExprID) string {
	node := g.pe.Node(id)
	switch node.Kind {
	case ast.KindLiteral:
		lit := g.pe.Literals.Get(ast.ID[ast.Literal](node.Index))
		return g.tokText(lit.Token)

	case ast.KindLValue:
		lv := g.pe.LValues.Get(ast.ID[ast.LValue](node.Index))
		return g.tokText(lv.NameToken)

	case ast.KindRValue:
		rv := g.pe.RValues.Get(ast.ID[ast.RValue](node.Index))
		text := ""
		for _, item := range rv.Items {
			if item.IsOperator {
				text += " " + g.tokText(item.OpToken) + " "
			} else {
				text += g.rvalueText(item.Expr)
			}
		}
		return text

	case ast.KindFunctionCall:
		call := g.pe.FunctionCalls.Get(ast.ID[ast.FunctionCall](node.Index))
		text := g.tokText(call.CalleeToken) + "("
		for i, arg := range call.Args {
			if i > 0 {
				text += ", "
			}
			text += g.rvalueText(arg)
		}
		return text + ")"

	case ast.KindStructInitializer:
		init := g.pe.StructInitializers.Get(ast.ID[ast.StructInitializer](node.Index))
		text := "(" + g.tokText(init.TypeToken) + "){"
		for i, f := range init.Fields {
			if i > 0 {
				text += ", "
			}
			text += "." + g.tokText(f.NameToken) + " = " + g.rvalueText(f.Value)
		}
		// Trailing ';' artifact preserved per spec.md §9 open question
		// #2 and confirmed in original_source/Codegen.cpp.
		return text + "};"

	case ast.KindCompilerProvidedU64:
		u := g.pe.CompilerProvidedU64s.Get(ast.ID[ast.CompilerProvidedU64](node.Index))
		return formatUint64(u.Value)

	default:
		return ""
	}
}

func formatUint64(v uint64) string {
	return strconv.FormatUint(v, 10)
}
