// Package typecheck performs the one light pass spec.md §4.3 asks for:
// it is not a full semantic checker. It walks ParsedExpressions once,
// moves ImportC and InlineC nodes out into TypecheckedExpressions (so
// the code generator can emit them before anything else), and gathers
// forward declarations of structs, functions, and named-only
// (enum/union/variant) declarations, bucketed by kind and visibility.
package typecheck

import (
	"github.com/gmofishsauce/hec/internal/ast"
	"github.com/gmofishsauce/hec/internal/diag"
	"github.com/gmofishsauce/hec/internal/source"
	"github.com/gmofishsauce/hec/internal/token"
)

// ForwardDecl names one top-level symbol a later emission pass must
// declare ahead of its point of use.
type ForwardDecl struct {
	Name string
	Expr ast.ExprID
}

// TypecheckedExpressions is ParsedExpressions plus the two things a
// single light pass can add without becoming a real semantic checker:
// the set of declarations that need forward-declaring, and the
// ImportC/InlineC nodes moved out into their own ordered lists.
type TypecheckedExpressions struct {
	Parsed *ast.ParsedExpressions

	ImportCs []ast.ExprID
	InlineCs []ast.ExprID

	StructForwardDecls  []ForwardDecl
	EnumForwardDecls    []ForwardDecl
	UnionForwardDecls   []ForwardDecl
	VariantForwardDecls []ForwardDecl

	PublicFunctionDecls   []ForwardDecl
	PrivateFunctionDecls  []ForwardDecl
	PublicCFunctionDecls  []ForwardDecl
	PrivateCFunctionDecls []ForwardDecl
}

// checker carries the mutable state of a single Check pass.
type checker struct {
	src   *source.File
	store *token.Store
	pe    *ast.ParsedExpressions
	out   *TypecheckedExpressions

	seenNames map[string]ast.ExprID
}

// Check runs the pass over pe, returning the derived
// TypecheckedExpressions or the first duplicate-declaration error
// found while building the forward-declaration tables.
func Check(src *source.File, store *token.Store, pe *ast.ParsedExpressions) (*TypecheckedExpressions, *diag.TypecheckError) {
	c := &checker{
		src:       src,
		store:     store,
		pe:        pe,
		out:       &TypecheckedExpressions{Parsed: pe},
		seenNames: make(map[string]ast.ExprID),
	}
	for _, id := range pe.Roots {
		if err := c.visitRoot(id); err != nil {
			return nil, err
		}
	}
	return c.out, nil
}

func (c *checker) tokenSpelling(tokIndex int) string {
	return c.store.At(tokIndex).Text(c.src)
}

func (c *checker) byteOffset(id ast.ExprID) int {
	return c.store.At(c.pe.Node(id).Start).Start
}

func (c *checker) duplicateErr(name string, id ast.ExprID) *diag.TypecheckError {
	return &diag.TypecheckError{
		Message:   "duplicate top-level declaration: " + name,
		ByteIndex: c.byteOffset(id),
	}
}

func (c *checker) register(name string, id ast.ExprID) *diag.TypecheckError {
	if _, exists := c.seenNames[name]; exists {
		return c.duplicateErr(name, id)
	}
	c.seenNames[name] = id
	return nil
}

// visitRoot dispatches on one top-level node's kind: ImportC/InlineC
// are moved out, function and type declarations are registered as
// forward decls, plain variable/constant declarations need neither.
func (c *checker) visitRoot(id ast.ExprID) *diag.TypecheckError {
	node := c.pe.Node(id)
	switch node.Kind {
	case ast.KindImportC:
		c.out.ImportCs = append(c.out.ImportCs, id)
		c.pe.MarkMoved(id)
		return nil

	case ast.KindInlineC:
		c.out.InlineCs = append(c.out.InlineCs, id)
		c.pe.MarkMoved(id)
		return nil

	case ast.KindPublicFunction:
		fn := c.pe.PublicFunctions.Get(ast.ID[ast.Function](node.Index))
		return c.finishRegister(id, fn.NameToken, &c.out.PublicFunctionDecls)
	case ast.KindPrivateFunction:
		fn := c.pe.PrivateFunctions.Get(ast.ID[ast.Function](node.Index))
		return c.finishRegister(id, fn.NameToken, &c.out.PrivateFunctionDecls)
	case ast.KindPublicCFunction:
		fn := c.pe.PublicCFunctions.Get(ast.ID[ast.Function](node.Index))
		return c.finishRegister(id, fn.NameToken, &c.out.PublicCFunctionDecls)
	case ast.KindPrivateCFunction:
		fn := c.pe.PrivateCFunctions.Get(ast.ID[ast.Function](node.Index))
		return c.finishRegister(id, fn.NameToken, &c.out.PrivateCFunctionDecls)

	case ast.KindStructDeclaration:
		decl := c.pe.StructDeclarations.Get(ast.ID[ast.StructDeclaration](node.Index))
		return c.finishRegister(id, decl.NameToken, &c.out.StructForwardDecls)
	case ast.KindEnumDeclaration:
		decl := c.pe.EnumDeclarations.Get(ast.ID[ast.NamedDeclaration](node.Index))
		return c.finishRegister(id, decl.NameToken, &c.out.EnumForwardDecls)
	case ast.KindUnionDeclaration:
		decl := c.pe.UnionDeclarations.Get(ast.ID[ast.NamedDeclaration](node.Index))
		return c.finishRegister(id, decl.NameToken, &c.out.UnionForwardDecls)
	case ast.KindVariantDeclaration:
		decl := c.pe.VariantDeclarations.Get(ast.ID[ast.NamedDeclaration](node.Index))
		return c.finishRegister(id, decl.NameToken, &c.out.VariantForwardDecls)

	default:
		// Variable/constant declarations and any other top-level node
		// pass through untouched; spec.md §4.3 only asks for the
		// forward-declaration tables above, not a full symbol table.
		return nil
	}
}

func (c *checker) finishRegister(id ast.ExprID, nameTokIndex int, bucket *[]ForwardDecl) *diag.TypecheckError {
	decl := ForwardDecl{Name: c.tokenSpelling(nameTokIndex), Expr: id}
	if err := c.register(decl.Name, id); err != nil {
		return err
	}
	*bucket = append(*bucket, decl)
	return nil
}
