package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/hec/internal/source"
	"github.com/gmofishsauce/hec/internal/token"
)

func lexString(t *testing.T, text string) *token.Store {
	t.Helper()
	src := source.New("test.he", []byte(text))
	store, err := Lex(src)
	require.Nil(t, err, "unexpected lex error: %v", err)
	return store
}

func TestLexMinimalFunction(t *testing.T) {
	store := lexString(t, "pub fn main() -> i32 { return 0; }")
	kinds := make([]token.Kind, store.Len())
	for i := 0; i < store.Len(); i++ {
		kinds[i] = store.At(i).Kind
	}
	assert.Equal(t, []token.Kind{
		token.Pub, token.Fn, token.Identifier, token.OpenParen, token.CloseParen,
		token.Arrow, token.Identifier, token.OpenCurly, token.Return, token.Number,
		token.Semicolon, token.CloseCurly,
	}, kinds)
}

func TestLexKeywordCanonicalization(t *testing.T) {
	for spelling, kind := range token.Keywords {
		store := lexString(t, spelling)
		require.Equal(t, 1, store.Len())
		assert.Equal(t, kind, store.At(0).Kind, "spelling %q", spelling)
	}
}

func TestLexNonKeywordIsIdentifier(t *testing.T) {
	store := lexString(t, "foobar")
	require.Equal(t, 1, store.Len())
	assert.Equal(t, token.Identifier, store.At(0).Kind)
}

func TestLexBuiltins(t *testing.T) {
	for spelling, kind := range token.Builtins {
		store := lexString(t, "@"+spelling)
		require.Equal(t, 1, store.Len())
		assert.Equal(t, kind, store.At(0).Kind, "builtin %q", spelling)
	}
}

func TestLexUnknownBuiltinIsError(t *testing.T) {
	src := source.New("test.he", []byte("@nonsense"))
	_, err := Lex(src)
	require.NotNil(t, err)
	assert.Equal(t, "invalid builtin function", err.Message)
}

func TestLexLessThanAlwaysTwoBytes(t *testing.T) {
	// spec.md §9: '<' unconditionally lexes as LessThanOrEqual, span 2,
	// even when the next byte isn't '='. Preserved, not "fixed": the
	// two-byte span swallows the 'x', so only one token results.
	store := lexString(t, "<x")
	require.Equal(t, 1, store.Len())
	assert.Equal(t, token.LessThanOrEqual, store.At(0).Kind)
	assert.Equal(t, 2, store.At(0).Size)
}

func TestLexLexErrorByteIndex(t *testing.T) {
	src := source.New("test.he", []byte("let x = 1 `;"))
	_, err := Lex(src)
	require.NotNil(t, err)
	assert.Equal(t, 10, err.ByteIndex)
}

func TestTokenSpanTotality(t *testing.T) {
	src := source.New("test.he", []byte(`pub fn f(a: i32) -> i32 { return a; }`))
	store, err := Lex(src)
	require.Nil(t, err)
	for i := 0; i < store.Len(); i++ {
		tok := store.At(i)
		require.LessOrEqual(t, tok.End(), src.Len())
		text := tok.Text(src)
		assert.Equal(t, tok.Size, len(text))
	}
}

func TestLexQuotedLiteralsNoEscapeProcessing(t *testing.T) {
	src := source.New("test.he", []byte(`"a\nb"`))
	store, err := Lex(src)
	require.Nil(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, token.Quoted, store.At(0).Kind)
	assert.Equal(t, `"a\nb"`, store.At(0).Text(src))
}

func TestLexLineCommentSkipped(t *testing.T) {
	store := lexString(t, "// a comment\nlet")
	require.Equal(t, 1, store.Len())
	assert.Equal(t, token.Let, store.At(0).Kind)
}

func TestLexDollarIdentifier(t *testing.T) {
	store := lexString(t, "$foo12")
	require.Equal(t, 1, store.Len())
	assert.Equal(t, token.Identifier, store.At(0).Kind)
	assert.Equal(t, 6, store.At(0).Size)
}
