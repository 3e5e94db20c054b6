package ast

// Kind is the closed set of expression variants spec.md §3.3 names.
type Kind int

const (
	KindInvalid Kind = iota
	KindMoved

	KindLiteral
	KindLValue
	KindRValue
	KindBlock
	KindIf
	KindWhile
	KindReturn

	KindPrivateFunction
	KindPublicFunction
	KindPrivateCFunction
	KindPublicCFunction

	KindPrivateVariableDeclaration
	KindPublicVariableDeclaration
	KindPrivateConstantDeclaration
	KindPublicConstantDeclaration

	KindStructDeclaration
	KindEnumDeclaration
	KindUnionDeclaration
	KindVariantDeclaration

	KindStructInitializer
	KindFunctionCall
	KindImportC
	KindInlineC
	KindCompilerProvidedU64
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindMoved:
		return "Moved"
	case KindLiteral:
		return "Literal"
	case KindLValue:
		return "LValue"
	case KindRValue:
		return "RValue"
	case KindBlock:
		return "Block"
	case KindIf:
		return "If"
	case KindWhile:
		return "While"
	case KindReturn:
		return "Return"
	case KindPrivateFunction:
		return "PrivateFunction"
	case KindPublicFunction:
		return "PublicFunction"
	case KindPrivateCFunction:
		return "PrivateCFunction"
	case KindPublicCFunction:
		return "PublicCFunction"
	case KindPrivateVariableDeclaration:
		return "PrivateVariableDeclaration"
	case KindPublicVariableDeclaration:
		return "PublicVariableDeclaration"
	case KindPrivateConstantDeclaration:
		return "PrivateConstantDeclaration"
	case KindPublicConstantDeclaration:
		return "PublicConstantDeclaration"
	case KindStructDeclaration:
		return "StructDeclaration"
	case KindEnumDeclaration:
		return "EnumDeclaration"
	case KindUnionDeclaration:
		return "UnionDeclaration"
	case KindVariantDeclaration:
		return "VariantDeclaration"
	case KindStructInitializer:
		return "StructInitializer"
	case KindFunctionCall:
		return "FunctionCall"
	case KindImportC:
		return "ImportC"
	case KindInlineC:
		return "InlineC"
	case KindCompilerProvidedU64:
		return "CompilerProvidedU64"
	default:
		return "Unknown"
	}
}

// ExprID identifies a node in ParsedExpressions.Nodes.
type ExprID int

// Expression is the tagged-union header every node has: a kind, an
// index into that kind's own Arena, and the token span it covers.
type Expression struct {
	Kind  Kind
	Index int // reinterpret as ID[T] for the arena matching Kind
	Start int // first token index, inclusive
	End   int // last token index, exclusive
}

// Literal wraps a single token (a number, quoted literal, or bare
// identifier used as a value).
type Literal struct {
	Token int
}

// LValue is a name reference usable on the left of '='.
type LValue struct {
	NameToken int
}

// RValueItem is one entry of a flat, operator-precedence-free RValue
// sequence: either an operand (a nested Expression) or a bare operator
// token recorded as a pseudo-literal for a later precedence pass.
type RValueItem struct {
	IsOperator bool
	OpToken    int   // valid when IsOperator
	Expr       ExprID // valid when !IsOperator
}

// RValue is the flat, unparsed sequence used as the right-hand side of
// an assignment, a call argument, or a condition body. Operator
// precedence is deliberately left unresolved (spec.md §9).
type RValue struct {
	Items []RValueItem
}

// Block is an ordered list of statements between '{' and '}'.
type Block struct {
	Stmts []ExprID
}

// If holds an RValue condition and a Block body.
type If struct {
	Cond ExprID
	Then ID[Block]
}

// While holds an RValue condition and a Block body.
type While struct {
	Cond ExprID
	Body ID[Block]
}

// Return holds an RValue; for a bare "return;" Bare is set and Value
// is zero and unused.
type Return struct {
	Value ExprID
	Bare  bool
}

// Param is one {name, type} pair of a function parameter list.
type Param struct {
	NameToken int
	TypeToken int
}

// Function is the shared payload of all four function variants
// (Private/Public × native/C-ABI); which arena it lives in carries the
// visibility/linkage distinction, per spec.md §3.3.
type Function struct {
	NameToken       int
	ReturnTypeToken int
	Params          ID[[]Param]
	Body            ID[Block]
}

// VarDecl is the shared payload of all four variable/constant
// declaration variants.
type VarDecl struct {
	NameToken int
	TypeToken int // may be -1 if omitted; the source language infers it
	Init      ExprID
	HasInit   bool
}

// Member is one {name, type} pair of a struct member list.
type Member struct {
	NameToken int
	TypeToken int
}

// StructDeclaration names an ordered list of members.
type StructDeclaration struct {
	NameToken int
	Members   ID[[]Member]
}

// NamedDeclaration is the minimal payload for the forward-declaration-
// only Enum/Union/Variant tiers (spec.md §3.3: "whose records hold only
// a name in this design tier").
type NamedDeclaration struct {
	NameToken int
}

// StructInitField is one {field-name, RValue} pair of a struct literal.
type StructInitField struct {
	NameToken int
	Value     ExprID
}

// StructInitializer is `Type{ .field = value, ... }`.
type StructInitializer struct {
	TypeToken int
	Fields    []StructInitField
}

// FunctionCall is `callee(arg, arg, ...)`.
type FunctionCall struct {
	CalleeToken int
	Args        []ExprID
}

// ImportC holds the quoted header token of `@import_c("header.h");`.
type ImportC struct {
	HeaderToken int
}

// InlineC holds a raw, unparsed C byte range straight out of the
// SourceFile: the bytes between the outer '{' and '}'. The lexer
// tokenizes the body like any other text and the parser only counts
// its braces, but codegen copies the source bytes, not the tokens, so
// the C passes through verbatim.
type InlineC struct {
	TextStart int
	TextEnd   int
}

// CompilerProvidedU64 is a synthesized unsigned 64-bit constant with no
// corresponding source token.
type CompilerProvidedU64 struct {
	Value uint64
}
