// Package parser turns a token.Store into an ast.ParsedExpressions via
// recursive descent. There is no backtracking and no operator
// precedence: RValue sequences are recorded flat, operators and
// operands interleaved, for a later pass to resolve (spec.md §9).
package parser

import (
	"github.com/gmofishsauce/hec/internal/ast"
	"github.com/gmofishsauce/hec/internal/diag"
	"github.com/gmofishsauce/hec/internal/source"
	"github.com/gmofishsauce/hec/internal/token"
)

// Parser consumes a token.Store left to right, grounded on
// lang/yparse's TokenReader: one cursor and no lookahead buffer; a few
// productions (struct declarations, struct initializers) inspect the
// token just past the current one before committing.
type Parser struct {
	src   *source.File
	store *token.Store
	pos   int
	pe    *ast.ParsedExpressions
}

// New constructs a Parser over store, recording nodes into a fresh
// ParsedExpressions arena.
func New(src *source.File, store *token.Store) *Parser {
	return &Parser{src: src, store: store, pe: ast.New()}
}

// Parse runs the top-level declaration loop until the token stream is
// exhausted, returning the populated arena or the first ParseError.
func Parse(src *source.File, store *token.Store) (*ast.ParsedExpressions, *diag.ParseError) {
	p := New(src, store)
	for !p.atEnd() {
		id, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		p.pe.Roots = append(p.pe.Roots, id)
	}
	return p.pe, nil
}

func (p *Parser) atEnd() bool {
	return p.pos >= p.store.Len()
}

func (p *Parser) peek() token.Token {
	if p.atEnd() {
		return token.Token{Kind: token.Invalid}
	}
	return p.store.At(p.pos)
}

func (p *Parser) peekKind() token.Kind {
	return p.peek().Kind
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *Parser) check(k token.Kind) bool {
	return p.peekKind() == k
}

func (p *Parser) errAt(tokIndex int, production, message, hint string) *diag.ParseError {
	offset := p.byteOffsetOf(tokIndex)
	return &diag.ParseError{Message: message, Hint: hint, OffendingToken: offset, Production: production}
}

func (p *Parser) byteOffsetOf(tokIndex int) int {
	if tokIndex < p.store.Len() {
		return p.store.At(tokIndex).Start
	}
	if p.store.Len() == 0 {
		return 0
	}
	last := p.store.At(p.store.Len() - 1)
	return last.End()
}

func (p *Parser) errHere(production, message, hint string) *diag.ParseError {
	return p.errAt(p.pos, production, message, hint)
}

// expect consumes the current token if it has kind k, otherwise
// returns a ParseError naming production.
func (p *Parser) expect(k token.Kind, production string) (token.Token, *diag.ParseError) {
	if !p.check(k) {
		return token.Token{}, p.errHere(production, "expected "+k.String()+", found "+p.peekKind().String(), "")
	}
	return p.advance(), nil
}

func (p *Parser) tokIndex() int {
	return p.pos
}

// parseTopLevel dispatches on the leading token of a declaration:
// @import_c, inline_c, optional pub, fn/c_fn, let/var. Struct
// declarations arrive through let (see parseVarDecl).
func (p *Parser) parseTopLevel() (ast.ExprID, *diag.ParseError) {
	switch p.peekKind() {
	case token.ImportC:
		return p.parseImportC()
	case token.InlineC:
		return p.parseInlineC()
	case token.Pub:
		return p.parsePubDecl()
	case token.Fn:
		return p.parseFunction(false, false)
	case token.CFn:
		return p.parseFunction(false, true)
	case token.Let:
		return p.parseVarDecl(false, true)
	case token.Var:
		return p.parseVarDecl(false, false)
	default:
		return 0, p.errHere("top_level_declaration", "unexpected token at top level: "+p.peekKind().String(), "expected a declaration: @import_c, inline_c, pub, fn, c_fn, let, or var")
	}
}

// parsePubDecl handles `pub` prefixing a fn/c_fn/let/var declaration.
func (p *Parser) parsePubDecl() (ast.ExprID, *diag.ParseError) {
	p.advance() // consume 'pub'
	switch p.peekKind() {
	case token.Fn:
		return p.parseFunction(true, false)
	case token.CFn:
		return p.parseFunction(true, true)
	case token.Let:
		return p.parseVarDecl(true, true)
	case token.Var:
		return p.parseVarDecl(true, false)
	default:
		return 0, p.errHere("pub_declaration", "expected fn, c_fn, let, or var after pub, found "+p.peekKind().String(), "")
	}
}

// parseImportC parses `@import_c("header.h");`.
func (p *Parser) parseImportC() (ast.ExprID, *diag.ParseError) {
	start := p.tokIndex()
	p.advance() // consume '@import_c'
	if _, err := p.expect(token.OpenParen, "import_c"); err != nil {
		return 0, err
	}
	if _, err := p.expect(token.Quoted, "import_c"); err != nil {
		return 0, err
	}
	headerTok := p.pos - 1
	if _, err := p.expect(token.CloseParen, "import_c"); err != nil {
		return 0, err
	}
	if _, err := p.expect(token.Semicolon, "import_c"); err != nil {
		return 0, err
	}
	end := p.tokIndex()
	return p.pe.NewImportC(headerTok, start, end), nil
}

// parseInlineC parses `inline_c { <verbatim C> }`, matching braces by
// counting OpenCurly/CloseCurly tokens rather than interpreting their
// contents, and records the covered source bytes verbatim for codegen.
func (p *Parser) parseInlineC() (ast.ExprID, *diag.ParseError) {
	start := p.tokIndex()
	p.advance() // consume 'inline_c'
	open, err := p.expect(token.OpenCurly, "inline_c")
	if err != nil {
		return 0, err
	}
	depth := 1
	textStart := open.End()
	var textEnd int
	for {
		if p.atEnd() {
			return 0, p.errHere("inline_c", "unterminated inline_c block", "expected a closing '}'")
		}
		tok := p.advance()
		switch tok.Kind {
		case token.OpenCurly:
			depth++
		case token.CloseCurly:
			depth--
			if depth == 0 {
				textEnd = tok.Start
				end := p.tokIndex()
				return p.pe.NewInlineC(textStart, textEnd, start, end), nil
			}
		}
	}
}

// parseFunction parses a native or C-ABI function declaration and body.
func (p *Parser) parseFunction(pub bool, cabi bool) (ast.ExprID, *diag.ParseError) {
	start := p.tokIndex()
	p.advance() // consume 'fn' or 'c_fn'
	if _, err := p.expect(token.Identifier, "function_declaration"); err != nil {
		return 0, err
	}
	nameTok := p.pos - 1
	if _, err := p.expect(token.OpenParen, "function_declaration"); err != nil {
		return 0, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.CloseParen, "function_declaration"); err != nil {
		return 0, err
	}
	returnTypeTok := -1
	if p.check(token.Arrow) {
		p.advance()
		if _, err := p.expect(token.Identifier, "function_declaration"); err != nil {
			return 0, err
		}
		returnTypeTok = p.pos - 1
	}
	_, bodyID, err := p.parseBlock()
	if err != nil {
		return 0, err
	}
	end := p.tokIndex()

	fn := ast.Function{
		NameToken:       nameTok,
		ReturnTypeToken: returnTypeTok,
		Params:          params,
		Body:            bodyID,
	}

	kind := ast.KindPrivateFunction
	switch {
	case pub && !cabi:
		kind = ast.KindPublicFunction
	case !pub && cabi:
		kind = ast.KindPrivateCFunction
	case pub && cabi:
		kind = ast.KindPublicCFunction
	}
	return p.pe.NewFunction(kind, fn, start, end), nil
}

// parseParamList parses a comma-separated `name: Type` list, possibly
// empty, up to (not consuming) the closing ')'.
func (p *Parser) parseParamList() (ast.ID[[]ast.Param], *diag.ParseError) {
	var params []ast.Param
	for !p.check(token.CloseParen) {
		if _, err := p.expect(token.Identifier, "parameter_list"); err != nil {
			return 0, err
		}
		nameTok := p.pos - 1
		if _, err := p.expect(token.Colon, "parameter_list"); err != nil {
			return 0, err
		}
		if _, err := p.expect(token.Identifier, "parameter_list"); err != nil {
			return 0, err
		}
		typeTok := p.pos - 1
		params = append(params, ast.Param{NameToken: nameTok, TypeToken: typeTok})
		if p.check(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return p.pe.NewParamList(params), nil
}

// parseBlock parses `{ stmt* }`.
func (p *Parser) parseBlock() (ast.ExprID, ast.ID[ast.Block], *diag.ParseError) {
	start := p.tokIndex()
	if _, err := p.expect(token.OpenCurly, "block"); err != nil {
		return 0, 0, err
	}
	var stmts []ast.ExprID
	for !p.check(token.CloseCurly) {
		if p.atEnd() {
			return 0, 0, p.errHere("block", "unterminated block", "expected a closing '}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return 0, 0, err
		}
		stmts = append(stmts, stmt)
	}
	p.advance() // consume '}' — newer-generation behavior per spec.md §9
	end := p.tokIndex()
	id, blockID := p.pe.NewBlock(stmts, start, end)
	return id, blockID, nil
}

// parseStatement dispatches a single statement inside a block.
func (p *Parser) parseStatement() (ast.ExprID, *diag.ParseError) {
	switch p.peekKind() {
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Return:
		return p.parseReturn()
	case token.Let:
		return p.parseVarDecl(false, true)
	case token.Var:
		return p.parseVarDecl(false, false)
	case token.InlineC:
		return p.parseInlineC()
	default:
		return p.parseExpressionStatement()
	}
}

// parseIf parses `if <rvalue> <block>`. There is no else clause in
// this design tier (spec.md §3.3).
func (p *Parser) parseIf() (ast.ExprID, *diag.ParseError) {
	start := p.tokIndex()
	p.advance() // consume 'if'
	cond, err := p.parseRValue(rvalueStopBeforeBlock)
	if err != nil {
		return 0, err
	}
	_, blockID, err := p.parseBlock()
	if err != nil {
		return 0, err
	}
	end := p.tokIndex()
	return p.pe.NewIf(cond, blockID, start, end), nil
}

// parseWhile parses `while <rvalue> <block>`.
func (p *Parser) parseWhile() (ast.ExprID, *diag.ParseError) {
	start := p.tokIndex()
	p.advance() // consume 'while'
	cond, err := p.parseRValue(rvalueStopBeforeBlock)
	if err != nil {
		return 0, err
	}
	_, blockID, err := p.parseBlock()
	if err != nil {
		return 0, err
	}
	end := p.tokIndex()
	return p.pe.NewWhile(cond, blockID, start, end), nil
}

// parseReturn parses `return;` or `return <rvalue>;`.
func (p *Parser) parseReturn() (ast.ExprID, *diag.ParseError) {
	start := p.tokIndex()
	p.advance() // consume 'return'
	if p.check(token.Semicolon) {
		p.advance()
		end := p.tokIndex()
		return p.pe.NewReturn(0, true, start, end), nil
	}
	value, err := p.parseRValue(rvalueStopAtSemicolon)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.Semicolon, "return_statement"); err != nil {
		return 0, err
	}
	end := p.tokIndex()
	return p.pe.NewReturn(value, false, start, end), nil
}

// parseExpressionStatement parses a bare RValue (typically an LValue
// assignment or a function call) terminated by ';'.
func (p *Parser) parseExpressionStatement() (ast.ExprID, *diag.ParseError) {
	id, err := p.parseRValue(rvalueStopAtSemicolon)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.Semicolon, "expression_statement"); err != nil {
		return 0, err
	}
	return id, nil
}

// parseVarDecl parses `let`/`var name: Type = rvalue;`, a bare
// `let`/`var name: Type;`, or — for `let` only — the struct-declaration
// form `let NAME [: TYPE] = struct { MEMBERS } ;` (spec.md §4.2),
// grounded on original_source/src/bootstrap/He/Parser.cpp's
// parse_top_level_constant_or_struct, which peeks for `struct`
// immediately after the `=` of a `let` before committing to an rvalue.
// isLet selects the constant-vs-mutable declaration kind, pub selects
// visibility.
func (p *Parser) parseVarDecl(pub bool, isLet bool) (ast.ExprID, *diag.ParseError) {
	start := p.tokIndex()
	p.advance() // consume 'let' or 'var'
	if _, err := p.expect(token.Identifier, "variable_declaration"); err != nil {
		return 0, err
	}
	nameTok := p.pos - 1

	typeTok := -1
	if p.check(token.Colon) {
		p.advance()
		if _, err := p.expect(token.Identifier, "variable_declaration"); err != nil {
			return 0, err
		}
		typeTok = p.pos - 1
	}

	if isLet && p.check(token.Assign) {
		// Look past '=' without consuming it yet: 'struct' there means
		// this is a struct declaration, not a constant initializer.
		if p.pos+1 < p.store.Len() && p.store.At(p.pos+1).Kind == token.Struct {
			p.advance() // consume '='
			return p.parseStructDecl(nameTok, start)
		}
	}

	var init ast.ExprID
	hasInit := false
	if p.check(token.Assign) {
		p.advance()
		var err *diag.ParseError
		init, err = p.parseRValue(rvalueStopAtSemicolon)
		if err != nil {
			return 0, err
		}
		// A single-operand initializer is stored as that operand itself,
		// so codegen sees a struct initializer or the @uninitialized
		// sentinel directly.
		if n := p.pe.Node(init); n.Kind == ast.KindRValue {
			if items := p.pe.RValues.Get(ast.ID[ast.RValue](n.Index)).Items; len(items) == 1 && !items[0].IsOperator {
				init = items[0].Expr
			}
		}
		hasInit = true
	}
	if _, err := p.expect(token.Semicolon, "variable_declaration"); err != nil {
		return 0, err
	}
	end := p.tokIndex()

	decl := ast.VarDecl{NameToken: nameTok, TypeToken: typeTok, Init: init, HasInit: hasInit}
	kind := ast.KindPrivateVariableDeclaration
	switch {
	case pub && isLet:
		kind = ast.KindPublicConstantDeclaration
	case !pub && isLet:
		kind = ast.KindPrivateConstantDeclaration
	case pub && !isLet:
		kind = ast.KindPublicVariableDeclaration
	case !pub && !isLet:
		kind = ast.KindPrivateVariableDeclaration
	}
	return p.pe.NewVarDecl(kind, decl, start, end), nil
}

// parseStructDecl parses `struct { name: Type, ... , }` — the `struct`
// keyword has not yet been consumed on entry. name is the identifier
// already parsed by parseVarDecl; declStart is the span's start token
// (the 'let'; a leading 'pub' is already consumed). The member list requires a trailing comma before
// '}' (spec.md §4.2's "Struct body"), matching S3's literal
// `let Point = struct { x: i32, y: i32, };`.
func (p *Parser) parseStructDecl(name int, declStart int) (ast.ExprID, *diag.ParseError) {
	p.advance() // consume 'struct'
	if _, err := p.expect(token.OpenCurly, "struct_declaration"); err != nil {
		return 0, err
	}
	var members []ast.Member
	for !p.check(token.CloseCurly) {
		if p.atEnd() {
			return 0, p.errHere("struct_declaration", "unterminated struct body", "expected a closing '}'")
		}
		if _, err := p.expect(token.Identifier, "struct_declaration"); err != nil {
			return 0, err
		}
		mnameTok := p.pos - 1
		if _, err := p.expect(token.Colon, "struct_declaration"); err != nil {
			return 0, err
		}
		if _, err := p.expect(token.Identifier, "struct_declaration"); err != nil {
			return 0, err
		}
		mtypeTok := p.pos - 1
		members = append(members, ast.Member{NameToken: mnameTok, TypeToken: mtypeTok})
		if !p.check(token.Comma) {
			return 0, p.errHere("struct_declaration", "expected ',' after member, found "+p.peekKind().String(), "a trailing comma is required before '}'")
		}
		p.advance() // consume ','
	}
	if _, err := p.expect(token.CloseCurly, "struct_declaration"); err != nil {
		return 0, err
	}
	if _, err := p.expect(token.Semicolon, "struct_declaration"); err != nil {
		return 0, err
	}
	end := p.tokIndex()
	memberList := p.pe.NewMemberList(members)
	return p.pe.NewStructDeclaration(ast.StructDeclaration{NameToken: name, Members: memberList}, declStart, end), nil
}

// rvalueStop tells parseRValue which token ends the sequence without
// being consumed.
type rvalueStop int

const (
	rvalueStopAtSemicolon rvalueStop = iota
	rvalueStopBeforeBlock
	rvalueStopAtCloseParen
	rvalueStopAtComma
)

func (p *Parser) rvalueDone(stop rvalueStop) bool {
	if p.atEnd() {
		return true
	}
	switch stop {
	case rvalueStopAtSemicolon:
		// A '}' also ends the sequence, so a missing ';' is reported by
		// the caller's expect(Semicolon) rather than as a bad operand.
		return p.check(token.Semicolon) || p.check(token.CloseCurly)
	case rvalueStopBeforeBlock:
		return p.check(token.OpenCurly)
	case rvalueStopAtCloseParen:
		// ',' separates call arguments.
		return p.check(token.CloseParen) || p.check(token.Comma)
	case rvalueStopAtComma:
		return p.check(token.Comma) || p.check(token.CloseCurly)
	}
	return true
}

// isOperatorKind reports whether k is one of the binary/unary operator
// token kinds recorded flat into an RValue, left for a later
// precedence pass per spec.md §9.
func isOperatorKind(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Star, token.Slash,
		token.Equals, token.LessThanOrEqual, token.GreaterThan,
		token.Ampersand, token.RefMut, token.Assign, token.Dot:
		return true
	default:
		return false
	}
}

// parseRValue scans a flat sequence of operands and operators up to
// (not consuming) the stop condition. Operands are themselves parsed
// recursively (literals, lvalues, parenthesized rvalues, calls, struct
// initializers, @size_of/@uninitialized); operators are recorded as
// bare tokens, unresolved.
func (p *Parser) parseRValue(stop rvalueStop) (ast.ExprID, *diag.ParseError) {
	start := p.tokIndex()
	var items []ast.RValueItem
	for !p.rvalueDone(stop) {
		if isOperatorKind(p.peekKind()) && len(items) > 0 {
			opTok := p.pos
			p.advance()
			items = append(items, ast.RValueItem{IsOperator: true, OpToken: opTok})
			continue
		}
		operand, err := p.parseOperand()
		if err != nil {
			return 0, err
		}
		items = append(items, ast.RValueItem{Expr: operand})
	}
	end := p.tokIndex()
	return p.pe.NewRValue(items, start, end), nil
}

// parseOperand parses one RValue term: a literal, an lvalue, a
// parenthesized sub-rvalue, a function call, a struct initializer, or
// a builtin (@size_of, @uninitialized).
func (p *Parser) parseOperand() (ast.ExprID, *diag.ParseError) {
	start := p.tokIndex()
	switch p.peekKind() {
	case token.Number, token.Quoted:
		tok := p.pos
		p.advance()
		return p.pe.NewLiteral(tok, start, p.tokIndex()), nil

	case token.OpenParen:
		p.advance()
		inner, err := p.parseRValue(rvalueStopAtCloseParen)
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(token.CloseParen, "parenthesized_expression"); err != nil {
			return 0, err
		}
		return inner, nil

	case token.SizeOf, token.Uninitialized, token.Embed:
		return p.parseBuiltinCall(start)

	case token.Identifier:
		return p.parseIdentifierLed(start)

	default:
		return 0, p.errHere("operand", "expected an expression, found "+p.peekKind().String(), "")
	}
}

func (p *Parser) parseBuiltinCall(start int) (ast.ExprID, *diag.ParseError) {
	callee := p.pos
	p.advance() // consume '@builtin'
	if _, err := p.expect(token.OpenParen, "builtin_call"); err != nil {
		return 0, err
	}
	var args []ast.ExprID
	for !p.check(token.CloseParen) {
		arg, err := p.parseRValue(rvalueStopAtCloseParen)
		if err != nil {
			return 0, err
		}
		args = append(args, arg)
		if p.check(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.CloseParen, "builtin_call"); err != nil {
		return 0, err
	}
	end := p.tokIndex()
	if kindIsCompileTimeZero(p.store.At(callee).Kind) {
		return p.pe.NewCompilerProvidedU64(0, start, end), nil
	}
	return p.pe.NewFunctionCall(ast.FunctionCall{CalleeToken: callee, Args: args}, start, end), nil
}

// kindIsCompileTimeZero reports whether a builtin is materialized as a
// CompilerProvidedU64 rather than a runtime call. For @uninitialized()
// the value is synthesized here as a placeholder zero; the code
// generator recognizes a KindCompilerProvidedU64 declaration
// initializer and omits the initializer entirely.
func kindIsCompileTimeZero(k token.Kind) bool {
	return k == token.Uninitialized
}

// parseIdentifierLed parses any operand starting with a bare
// identifier: a plain lvalue reference, a function call, or a struct
// initializer.
func (p *Parser) parseIdentifierLed(start int) (ast.ExprID, *diag.ParseError) {
	nameTok := p.pos
	p.advance() // consume identifier

	switch p.peekKind() {
	case token.OpenParen:
		p.advance()
		var args []ast.ExprID
		for !p.check(token.CloseParen) {
			arg, err := p.parseRValue(rvalueStopAtCloseParen)
			if err != nil {
				return 0, err
			}
			args = append(args, arg)
			if p.check(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.CloseParen, "function_call"); err != nil {
			return 0, err
		}
		end := p.tokIndex()
		return p.pe.NewFunctionCall(ast.FunctionCall{CalleeToken: nameTok, Args: args}, start, end), nil

	case token.OpenCurly:
		// '{' starts a struct initializer only when '.field' follows;
		// otherwise it opens the block of an enclosing if/while.
		if p.pos+1 < p.store.Len() && p.store.At(p.pos+1).Kind == token.Dot {
			return p.parseStructInitializer(start, nameTok)
		}
	}
	end := p.tokIndex()
	return p.pe.NewLValue(nameTok, start, end), nil
}

// parseStructInitializer parses `Type{ .field = value, ... }`.
func (p *Parser) parseStructInitializer(start, typeTok int) (ast.ExprID, *diag.ParseError) {
	p.advance() // consume '{'
	var fields []ast.StructInitField
	for !p.check(token.CloseCurly) {
		if _, err := p.expect(token.Dot, "struct_initializer"); err != nil {
			return 0, err
		}
		if _, err := p.expect(token.Identifier, "struct_initializer"); err != nil {
			return 0, err
		}
		fnameTok := p.pos - 1
		if _, err := p.expect(token.Assign, "struct_initializer"); err != nil {
			return 0, err
		}
		value, err := p.parseRValue(rvalueStopAtComma)
		if err != nil {
			return 0, err
		}
		fields = append(fields, ast.StructInitField{NameToken: fnameTok, Value: value})
		if p.check(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.CloseCurly, "struct_initializer"); err != nil {
		return 0, err
	}
	end := p.tokIndex()
	return p.pe.NewStructInitializer(ast.StructInitializer{TypeToken: typeTok, Fields: fields}, start, end), nil
}

