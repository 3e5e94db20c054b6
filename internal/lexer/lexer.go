// Package lexer turns SourceFile text into a token.Store. It reports at
// most one error, pointing at the first unrecognized byte.
package lexer

import (
	"github.com/gmofishsauce/hec/internal/diag"
	"github.com/gmofishsauce/hec/internal/source"
	"github.com/gmofishsauce/hec/internal/token"
)

// Lexer scans a SourceFile's text into tokens one byte range at a time.
// It never backtracks past the current offset.
type Lexer struct {
	src  *source.File
	text []byte
	pos  int
}

// New constructs a Lexer over src.
func New(src *source.File) *Lexer {
	return &Lexer{src: src, text: src.Text}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.text) {
		return 0
	}
	return l.text[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	i := l.pos + offset
	if i >= len(l.text) {
		return 0
	}
	return l.text[i]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.text)
}

// Lex scans the whole source and returns the token store, or the first
// LexError encountered.
func Lex(src *source.File) (*token.Store, *diag.LexError) {
	l := New(src)
	store := &token.Store{}

	for !l.atEnd() {
		if l.skipWhitespaceAndComments() {
			continue
		}
		if l.atEnd() {
			break
		}

		tok, err := l.lexOne()
		if err != nil {
			return nil, err
		}
		store.Append(tok)
		l.pos = tok.End()
	}

	return store, nil
}

// skipWhitespaceAndComments advances past ASCII whitespace and // line
// comments. Returns true if it consumed anything.
func (l *Lexer) skipWhitespaceAndComments() bool {
	advanced := false
	for {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.pos++
			advanced = true
		case ch == '/' && l.peekAt(1) == '/':
			for l.peek() != '\n' && !l.atEnd() {
				l.pos++
			}
			advanced = true
		default:
			return advanced
		}
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentStart matches spec.md §4.1: identifiers start with a letter or '$'.
func isIdentStart(ch byte) bool {
	return isLetter(ch) || ch == '$'
}

// isIdentCont also admits '_' after the first byte, so that the
// keywords c_fn/inline_c and the builtins @import_c/@size_of lex as
// single tokens.
func isIdentCont(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '$' || ch == '_'
}

func (l *Lexer) err(msg string) *diag.LexError {
	return &diag.LexError{Message: msg, ByteIndex: l.pos}
}

func (l *Lexer) lexOne() (token.Token, *diag.LexError) {
	start := l.pos
	ch := l.peek()

	switch ch {
	case '[':
		return token.Token{Kind: token.OpenBracket, Start: start, Size: 1}, nil
	case ']':
		return token.Token{Kind: token.CloseBracket, Start: start, Size: 1}, nil
	case '(':
		return token.Token{Kind: token.OpenParen, Start: start, Size: 1}, nil
	case ')':
		return token.Token{Kind: token.CloseParen, Start: start, Size: 1}, nil
	case '{':
		return token.Token{Kind: token.OpenCurly, Start: start, Size: 1}, nil
	case '}':
		return token.Token{Kind: token.CloseCurly, Start: start, Size: 1}, nil
	case ',':
		return token.Token{Kind: token.Comma, Start: start, Size: 1}, nil
	case ':':
		return token.Token{Kind: token.Colon, Start: start, Size: 1}, nil
	case ';':
		return token.Token{Kind: token.Semicolon, Start: start, Size: 1}, nil
	case '#':
		return token.Token{Kind: token.Hash, Start: start, Size: 1}, nil
	case '_':
		return token.Token{Kind: token.Underscore, Start: start, Size: 1}, nil
	case '?':
		return token.Token{Kind: token.QuestionMark, Start: start, Size: 1}, nil
	case '+':
		return token.Token{Kind: token.Plus, Start: start, Size: 1}, nil
	case '/':
		return token.Token{Kind: token.Slash, Start: start, Size: 1}, nil
	case '*':
		return token.Token{Kind: token.Star, Start: start, Size: 1}, nil
	case '>':
		return token.Token{Kind: token.GreaterThan, Start: start, Size: 1}, nil
	case '.':
		return token.Token{Kind: token.Dot, Start: start, Size: 1}, nil

	case '=':
		if l.peekAt(1) == '=' {
			return token.Token{Kind: token.Equals, Start: start, Size: 2}, nil
		}
		return token.Token{Kind: token.Assign, Start: start, Size: 1}, nil

	case '-':
		if l.peekAt(1) == '>' {
			return token.Token{Kind: token.Arrow, Start: start, Size: 2}, nil
		}
		return token.Token{Kind: token.Minus, Start: start, Size: 1}, nil

	case '<':
		// Idiosyncrasy preserved per spec.md §9 and the original
		// source: '<' always lexes as LessThanOrEqual, span 2, even
		// when not followed by '='.
		return token.Token{Kind: token.LessThanOrEqual, Start: start, Size: 2}, nil

	case '&':
		if l.peekAt(1) == 'm' && l.peekAt(2) == 'u' && l.peekAt(3) == 't' {
			return token.Token{Kind: token.RefMut, Start: start, Size: 4}, nil
		}
		return token.Token{Kind: token.Ampersand, Start: start, Size: 1}, nil

	case '@':
		return l.lexBuiltin(start)

	case '"', '\'':
		return l.lexQuoted(start, ch)
	}

	if isDigit(ch) {
		return l.lexNumber(start), nil
	}
	if isIdentStart(ch) {
		return l.lexIdentifier(start), nil
	}

	return token.Token{}, l.err(unexpectedByteMessage(ch))
}

func unexpectedByteMessage(ch byte) string {
	return "unexpected character: " + string(ch)
}

func (l *Lexer) lexBuiltin(start int) (token.Token, *diag.LexError) {
	l.pos++ // consume '@'
	nameStart := l.pos
	for isIdentCont(l.peek()) {
		l.pos++
	}
	name := string(l.text[nameStart:l.pos])
	kind, ok := token.Builtins[name]
	l.pos = start
	if !ok {
		return token.Token{}, l.err("invalid builtin function")
	}
	return token.Token{Kind: kind, Start: start, Size: nameStart - start + len(name)}, nil
}

func (l *Lexer) lexQuoted(start int, quote byte) (token.Token, *diag.LexError) {
	end := start + 1
	for end < len(l.text) && l.text[end] != quote {
		end++
	}
	if end >= len(l.text) {
		l.pos = start
		return token.Token{}, l.err("unterminated quoted literal")
	}
	end++ // include closing delimiter
	return token.Token{Kind: token.Quoted, Start: start, Size: end - start}, nil
}

func (l *Lexer) lexNumber(start int) token.Token {
	end := start
	for end < len(l.text) && (isDigit(l.text[end]) || l.text[end] == '.') {
		end++
	}
	return token.Token{Kind: token.Number, Start: start, Size: end - start}
}

func (l *Lexer) lexIdentifier(start int) token.Token {
	end := start + 1
	for end < len(l.text) && isIdentCont(l.text[end]) {
		end++
	}
	spelling := string(l.text[start:end])
	if kind, ok := token.Keywords[spelling]; ok {
		return token.Token{Kind: kind, Start: start, Size: end - start}
	}
	return token.Token{Kind: token.Identifier, Start: start, Size: end - start}
}
