// Package token defines the closed set of token kinds the lexer
// produces and the Token value itself.
package token

import "github.com/gmofishsauce/hec/internal/source"

// Kind is the closed set of token categories. Invalid is a reserved
// sentinel; a successful lex never emits it.
type Kind int

const (
	Invalid Kind = iota

	// Punctuation
	OpenBracket  // [
	CloseBracket // ]
	OpenParen    // (
	CloseParen   // )
	OpenCurly    // {
	CloseCurly   // }
	Ampersand    // &
	RefMut       // &mut
	Comma        // ,
	Assign       // =
	Equals       // ==
	Newline      // \n
	Colon        // :
	Semicolon    // ;
	Space        // ' '
	Hash         // #
	Underscore   // _
	QuestionMark // ?
	Minus        // -
	Arrow        // ->
	Plus         // +
	Slash        // /
	Star         // *
	LessThanOrEqual // <= (also emitted for a bare '<', see Lexer docs)
	GreaterThan     // >
	Dot             // .

	// Literals
	Number     // decimal, optional '.'
	Quoted     // '...' or "..."
	Identifier // letters/digits/'$'/'_', starts with letter or '$'

	// Keywords
	Fn
	CFn
	If
	InlineC
	Let
	Pub
	Return
	Struct
	Var
	While

	// Built-ins, spelled "@name" in source
	Embed
	ImportC
	SizeOf
	Uninitialized
)

var kindNames = map[Kind]string{
	Invalid:         "Invalid",
	OpenBracket:     "[",
	CloseBracket:    "]",
	OpenParen:       "(",
	CloseParen:      ")",
	OpenCurly:       "{",
	CloseCurly:      "}",
	Ampersand:       "&",
	RefMut:          "&mut",
	Comma:           ",",
	Assign:          "=",
	Equals:          "==",
	Newline:         "\\n",
	Colon:           ":",
	Semicolon:       ";",
	Space:           " ",
	Hash:            "#",
	Underscore:      "_",
	QuestionMark:    "?",
	Minus:           "-",
	Arrow:           "->",
	Plus:            "+",
	Slash:           "/",
	Star:            "*",
	LessThanOrEqual: "<=",
	GreaterThan:     ">",
	Dot:             ".",
	Number:          "Number",
	Quoted:          "Quoted",
	Identifier:      "Identifier",
	Fn:              "fn",
	CFn:             "c_fn",
	If:              "if",
	InlineC:         "inline_c",
	Let:             "let",
	Pub:             "pub",
	Return:          "return",
	Struct:          "struct",
	Var:             "var",
	While:           "while",
	Embed:           "@embed",
	ImportC:         "@import_c",
	SizeOf:          "@size_of",
	Uninitialized:   "@uninitialized",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Keywords maps a bare-word spelling to its keyword Kind. Populated
// from the closed keyword set in spec.md §4.1.
var Keywords = map[string]Kind{
	"fn":       Fn,
	"c_fn":     CFn,
	"if":       If,
	"inline_c": InlineC,
	"let":      Let,
	"pub":      Pub,
	"return":   Return,
	"struct":   Struct,
	"var":      Var,
	"while":    While,
}

// Builtins maps the identifier following an '@' to its Kind. Any other
// spelling is a lex error.
var Builtins = map[string]Kind{
	"embed":         Embed,
	"import_c":      ImportC,
	"size_of":       SizeOf,
	"uninitialized": Uninitialized,
}

// Token is {kind, start, size}: start is a byte offset into the owning
// SourceFile, size is its byte length. Text is recovered by slicing,
// never stored redundantly.
type Token struct {
	Kind  Kind
	Start int
	Size  int
}

// End returns the exclusive end offset of the token's span.
func (t Token) End() int {
	return t.Start + t.Size
}

// Text recovers the token's spelling by slicing src.
func (t Token) Text(src *source.File) string {
	return src.Slice(t.Start, t.Size)
}

// Store is the ordered token sequence the lexer produces and the
// parser consumes.
type Store struct {
	Tokens []Token
}

func (s *Store) Append(t Token) {
	s.Tokens = append(s.Tokens, t)
}

func (s *Store) Len() int {
	return len(s.Tokens)
}

func (s *Store) At(i int) Token {
	return s.Tokens[i]
}
