package ast

// ParsedExpressions is the single owner of every AST node produced by
// the parser: a master Nodes vector of tagged-union headers, one Arena
// per node variant, and the Roots list of top-level declarations.
type ParsedExpressions struct {
	Nodes []Expression
	Roots []ExprID

	Literals      Arena[Literal]
	LValues       Arena[LValue]
	RValues       Arena[RValue]
	Blocks        Arena[Block]
	Ifs           Arena[If]
	Whiles        Arena[While]
	Returns       Arena[Return]

	PrivateFunctions  Arena[Function]
	PublicFunctions   Arena[Function]
	PrivateCFunctions Arena[Function]
	PublicCFunctions  Arena[Function]

	PrivateVariableDeclarations  Arena[VarDecl]
	PublicVariableDeclarations   Arena[VarDecl]
	PrivateConstantDeclarations  Arena[VarDecl]
	PublicConstantDeclarations   Arena[VarDecl]

	StructDeclarations  Arena[StructDeclaration]
	EnumDeclarations    Arena[NamedDeclaration]
	UnionDeclarations   Arena[NamedDeclaration]
	VariantDeclarations Arena[NamedDeclaration]

	StructInitializers   Arena[StructInitializer]
	FunctionCalls        Arena[FunctionCall]
	ImportCs             Arena[ImportC]
	InlineCs             Arena[InlineC]
	CompilerProvidedU64s Arena[CompilerProvidedU64]

	ParamLists  Arena[[]Param]
	MemberLists Arena[[]Member]
}

// New returns an empty ParsedExpressions arena.
func New() *ParsedExpressions {
	return &ParsedExpressions{}
}

// addNode appends a tagged-union header and returns its ExprID.
func (pe *ParsedExpressions) addNode(kind Kind, index int, start, end int) ExprID {
	pe.Nodes = append(pe.Nodes, Expression{Kind: kind, Index: index, Start: start, End: end})
	return ExprID(len(pe.Nodes) - 1)
}

// Node returns the tagged-union header for id.
func (pe *ParsedExpressions) Node(id ExprID) Expression {
	return pe.Nodes[id]
}

// NewLiteral records a literal node wrapping a token.
func (pe *ParsedExpressions) NewLiteral(tok, start, end int) ExprID {
	id := pe.Literals.Add(Literal{Token: tok})
	return pe.addNode(KindLiteral, int(id), start, end)
}

// NewLValue records a name-reference node.
func (pe *ParsedExpressions) NewLValue(nameTok, start, end int) ExprID {
	id := pe.LValues.Add(LValue{NameToken: nameTok})
	return pe.addNode(KindLValue, int(id), start, end)
}

// NewRValue records a flat operand/operator sequence.
func (pe *ParsedExpressions) NewRValue(items []RValueItem, start, end int) ExprID {
	id := pe.RValues.Add(RValue{Items: items})
	return pe.addNode(KindRValue, int(id), start, end)
}

// NewBlock records a statement sequence and returns both its ExprID
// (for use as a statement) and its typed Block ID (for use by If/While/
// Function, which reference a Block directly rather than through
// Nodes).
func (pe *ParsedExpressions) NewBlock(stmts []ExprID, start, end int) (ExprID, ID[Block]) {
	id := pe.Blocks.Add(Block{Stmts: stmts})
	return pe.addNode(KindBlock, int(id), start, end), id
}

// NewIf records an if-statement.
func (pe *ParsedExpressions) NewIf(cond ExprID, then ID[Block], start, end int) ExprID {
	id := pe.Ifs.Add(If{Cond: cond, Then: then})
	return pe.addNode(KindIf, int(id), start, end)
}

// NewWhile records a while-statement.
func (pe *ParsedExpressions) NewWhile(cond ExprID, body ID[Block], start, end int) ExprID {
	id := pe.Whiles.Add(While{Cond: cond, Body: body})
	return pe.addNode(KindWhile, int(id), start, end)
}

// NewReturn records a return statement.
func (pe *ParsedExpressions) NewReturn(value ExprID, bare bool, start, end int) ExprID {
	id := pe.Returns.Add(Return{Value: value, Bare: bare})
	return pe.addNode(KindReturn, int(id), start, end)
}

// NewParamList records a parameter list and returns its arena ID.
func (pe *ParsedExpressions) NewParamList(params []Param) ID[[]Param] {
	return pe.ParamLists.Add(params)
}

// NewMemberList records a struct member list and returns its arena ID.
func (pe *ParsedExpressions) NewMemberList(members []Member) ID[[]Member] {
	return pe.MemberLists.Add(members)
}

// NewFunction records a function of the given visibility/linkage kind.
// kind must be one of the four *Function Kinds.
func (pe *ParsedExpressions) NewFunction(kind Kind, fn Function, start, end int) ExprID {
	switch kind {
	case KindPrivateFunction:
		return pe.addNode(kind, int(pe.PrivateFunctions.Add(fn)), start, end)
	case KindPublicFunction:
		return pe.addNode(kind, int(pe.PublicFunctions.Add(fn)), start, end)
	case KindPrivateCFunction:
		return pe.addNode(kind, int(pe.PrivateCFunctions.Add(fn)), start, end)
	case KindPublicCFunction:
		return pe.addNode(kind, int(pe.PublicCFunctions.Add(fn)), start, end)
	default:
		panic("ast: NewFunction called with non-function kind")
	}
}

// NewVarDecl records a variable or constant declaration of the given
// visibility/mutability kind. kind must be one of the four
// *VariableDeclaration/*ConstantDeclaration Kinds.
func (pe *ParsedExpressions) NewVarDecl(kind Kind, decl VarDecl, start, end int) ExprID {
	switch kind {
	case KindPrivateVariableDeclaration:
		return pe.addNode(kind, int(pe.PrivateVariableDeclarations.Add(decl)), start, end)
	case KindPublicVariableDeclaration:
		return pe.addNode(kind, int(pe.PublicVariableDeclarations.Add(decl)), start, end)
	case KindPrivateConstantDeclaration:
		return pe.addNode(kind, int(pe.PrivateConstantDeclarations.Add(decl)), start, end)
	case KindPublicConstantDeclaration:
		return pe.addNode(kind, int(pe.PublicConstantDeclarations.Add(decl)), start, end)
	default:
		panic("ast: NewVarDecl called with non-declaration kind")
	}
}

// NewStructDeclaration records a struct declaration.
func (pe *ParsedExpressions) NewStructDeclaration(decl StructDeclaration, start, end int) ExprID {
	id := pe.StructDeclarations.Add(decl)
	return pe.addNode(KindStructDeclaration, int(id), start, end)
}

// NewStructInitializer records a struct literal.
func (pe *ParsedExpressions) NewStructInitializer(init StructInitializer, start, end int) ExprID {
	id := pe.StructInitializers.Add(init)
	return pe.addNode(KindStructInitializer, int(id), start, end)
}

// NewFunctionCall records a call expression/statement.
func (pe *ParsedExpressions) NewFunctionCall(call FunctionCall, start, end int) ExprID {
	id := pe.FunctionCalls.Add(call)
	return pe.addNode(KindFunctionCall, int(id), start, end)
}

// NewImportC records an `@import_c("header.h");` declaration.
func (pe *ParsedExpressions) NewImportC(headerTok, start, end int) ExprID {
	id := pe.ImportCs.Add(ImportC{HeaderToken: headerTok})
	return pe.addNode(KindImportC, int(id), start, end)
}

// NewInlineC records an `inline_c { ... }` block's raw byte range.
func (pe *ParsedExpressions) NewInlineC(textStart, textEnd, start, end int) ExprID {
	id := pe.InlineCs.Add(InlineC{TextStart: textStart, TextEnd: textEnd})
	return pe.addNode(KindInlineC, int(id), start, end)
}

// NewCompilerProvidedU64 records a synthesized constant. The parser
// uses it as the placeholder node for `@uninitialized()`.
func (pe *ParsedExpressions) NewCompilerProvidedU64(value uint64, start, end int) ExprID {
	id := pe.CompilerProvidedU64s.Add(CompilerProvidedU64{Value: value})
	return pe.addNode(KindCompilerProvidedU64, int(id), start, end)
}

// MarkMoved tombstones a node after the typechecker has drained its
// payload (ImportC/InlineC) into TypecheckedExpressions. The node's
// span is preserved for diagnostics but its Kind becomes KindMoved so
// the code generator's per-node walk skips it.
func (pe *ParsedExpressions) MarkMoved(id ExprID) {
	n := pe.Nodes[id]
	n.Kind = KindMoved
	pe.Nodes[id] = n
}
