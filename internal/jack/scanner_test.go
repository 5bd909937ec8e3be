package jack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scanAll(src string) ([]Token, error) {
	scanner := NewScanner([]rune(src))
	var toks []Token
	for {
		tok, err := scanner.Advance()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Typ == EOF {
			return toks, nil
		}
	}
}

func TestScanSingleToken(t *testing.T) {
	testCases := []struct {
		src  string
		toks []Token
	}{
		// symbols
		{"{", []Token{{SYMBOL, "{", 1, 1}, tokEOF(1, 2)}},
		{"}", []Token{{SYMBOL, "}", 1, 1}, tokEOF(1, 2)}},
		{"(", []Token{{SYMBOL, "(", 1, 1}, tokEOF(1, 2)}},
		{")", []Token{{SYMBOL, ")", 1, 1}, tokEOF(1, 2)}},
		{"[", []Token{{SYMBOL, "[", 1, 1}, tokEOF(1, 2)}},
		{"]", []Token{{SYMBOL, "]", 1, 1}, tokEOF(1, 2)}},
		{".", []Token{{SYMBOL, ".", 1, 1}, tokEOF(1, 2)}},
		{",", []Token{{SYMBOL, ",", 1, 1}, tokEOF(1, 2)}},
		{";", []Token{{SYMBOL, ";", 1, 1}, tokEOF(1, 2)}},
		{"+", []Token{{SYMBOL, "+", 1, 1}, tokEOF(1, 2)}},
		{"-", []Token{{SYMBOL, "-", 1, 1}, tokEOF(1, 2)}},
		{"*", []Token{{SYMBOL, "*", 1, 1}, tokEOF(1, 2)}},
		{"/", []Token{{SYMBOL, "/", 1, 1}, tokEOF(1, 2)}},
		{"&", []Token{{SYMBOL, "&", 1, 1}, tokEOF(1, 2)}},
		{"|", []Token{{SYMBOL, "|", 1, 1}, tokEOF(1, 2)}},
		{"<", []Token{{SYMBOL, "<", 1, 1}, tokEOF(1, 2)}},
		{">", []Token{{SYMBOL, ">", 1, 1}, tokEOF(1, 2)}},
		{"=", []Token{{SYMBOL, "=", 1, 1}, tokEOF(1, 2)}},
		{"~", []Token{{SYMBOL, "~", 1, 1}, tokEOF(1, 2)}},
		// literals
		{"0", []Token{{INT_CONST, "0", 1, 1}, tokEOF(1, 2)}},
		{"007", []Token{{INT_CONST, "007", 1, 1}, tokEOF(1, 4)}},
		{"32767", []Token{{INT_CONST, "32767", 1, 1}, tokEOF(1, 6)}},
		{`""`, []Token{{STRING_CONST, "", 1, 1}, tokEOF(1, 3)}},
		{`"hello world"`, []Token{{STRING_CONST, "hello world", 1, 1}, tokEOF(1, 14)}},
		{`"a // b"`, []Token{{STRING_CONST, "a // b", 1, 1}, tokEOF(1, 9)}},
		{`"back\slash"`, []Token{{STRING_CONST, `back\slash`, 1, 1}, tokEOF(1, 13)}},
		{`"é中"`, []Token{{STRING_CONST, "é中", 1, 1}, tokEOF(1, 5)}},
		// identifiers
		{"a", []Token{{IDENTIFIER, "a", 1, 1}, tokEOF(1, 2)}},
		{"abc123", []Token{{IDENTIFIER, "abc123", 1, 1}, tokEOF(1, 7)}},
		{"_abc", []Token{{IDENTIFIER, "_abc", 1, 1}, tokEOF(1, 5)}},
		{"Main", []Token{{IDENTIFIER, "Main", 1, 1}, tokEOF(1, 5)}},
		{"classy", []Token{{IDENTIFIER, "classy", 1, 1}, tokEOF(1, 7)}},
		{"", []Token{tokEOF(1, 1)}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		toks, err := scanAll(tc.src)
		assert.NoError(err, tc.src)
		assert.Equal(tc.toks, toks, tc.src)
	}
}

func TestScanKeywords(t *testing.T) {
	assert := assert.New(t)
	for kw := range Keywords {
		toks, err := scanAll(kw)
		assert.NoError(err)
		assert.Equal([]Token{{KEYWORD, kw, 1, 1}, tokEOF(1, len(kw)+1)}, toks)
	}
}

func TestScanWhiteSpacesAndComments(t *testing.T) {
	testCases := []struct {
		src  string
		toks []Token
	}{
		{"        ", []Token{tokEOF(1, 9)}},
		{"\t\r\n\n", []Token{tokEOF(3, 1)}},
		{"// a single-line comment", []Token{tokEOF(1, 25)}},
		{"// comment\nfoo", []Token{{IDENTIFIER, "foo", 2, 1}, tokEOF(2, 4)}},
		{"/* a\n b */ x", []Token{{IDENTIFIER, "x", 2, 7}, tokEOF(2, 8)}},
		{"/** doc */class", []Token{{KEYWORD, "class", 1, 11}, tokEOF(1, 16)}},
		{"/**/x", []Token{{IDENTIFIER, "x", 1, 5}, tokEOF(1, 6)}},
		{"/***/x", []Token{{IDENTIFIER, "x", 1, 6}, tokEOF(1, 7)}},
		{"a/b", []Token{
			{IDENTIFIER, "a", 1, 1},
			{SYMBOL, "/", 1, 2},
			{IDENTIFIER, "b", 1, 3},
			tokEOF(1, 4),
		}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		toks, err := scanAll(tc.src)
		assert.NoError(err, tc.src)
		assert.Equal(tc.toks, toks, tc.src)
	}
}

func TestScanValidTokensSequence(t *testing.T) {
	src := "let a[i] = x+1;\n" +
		"  do Output.printString(\"hi\");\n" +
		"123abc"
	toksWant := []Token{
		{KEYWORD, "let", 1, 1},
		{IDENTIFIER, "a", 1, 5},
		{SYMBOL, "[", 1, 6},
		{IDENTIFIER, "i", 1, 7},
		{SYMBOL, "]", 1, 8},
		{SYMBOL, "=", 1, 10},
		{IDENTIFIER, "x", 1, 12},
		{SYMBOL, "+", 1, 13},
		{INT_CONST, "1", 1, 14},
		{SYMBOL, ";", 1, 15},
		{KEYWORD, "do", 2, 3},
		{IDENTIFIER, "Output", 2, 6},
		{SYMBOL, ".", 2, 12},
		{IDENTIFIER, "printString", 2, 13},
		{SYMBOL, "(", 2, 24},
		{STRING_CONST, "hi", 2, 25},
		{SYMBOL, ")", 2, 29},
		{SYMBOL, ";", 2, 30},
		{INT_CONST, "123", 3, 1},
		{IDENTIFIER, "abc", 3, 4},
		tokEOF(3, 7),
	}

	toks, err := scanAll(src)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(toksWant, toks)
}

func TestScanWithErrors(t *testing.T) {
	testCases := []struct {
		src string
		err error
	}{
		{`"yo where's the closing quote`, NewLexError(1, 1, "Unterminated string.")},
		{"x\n  \"open", NewLexError(2, 3, "Unterminated string.")},
		{"/*yo where's the closing STAR-SLASH", NewLexError(1, 1, "Unterminated comment.")},
		{"x /* almost */", nil},
		{"x /* almost *", NewLexError(1, 3, "Unterminated comment.")},
		{"x @", NewLexError(1, 3, "Unexpected character '@'.")},
		{"#", NewLexError(1, 1, "Unexpected character '#'.")},
		{"32768", NewLexError(1, 1, "Integer constant out of range.")},
		{"99999999999999999999999", NewLexError(1, 1, "Integer constant out of range.")},
		{`"é中😀"`, NewLexError(1, 4, "Character out of range.")},
		{"x = \"ok\n\U0001F600\";", NewLexError(2, 1, "Character out of range.")},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		_, err := scanAll(tc.src)
		assert.Equal(tc.err, err, tc.src)
	}
}

func TestScanLookahead(t *testing.T) {
	assert := assert.New(t)
	scanner := NewScanner([]rune("a\n  b"))

	assert.True(scanner.HasNext())
	peeked, err := scanner.Peek()
	assert.NoError(err)
	assert.Equal(Token{IDENTIFIER, "a", 1, 1}, peeked)

	again, err := scanner.Peek()
	assert.NoError(err)
	assert.Equal(peeked, again)

	tok, err := scanner.Advance()
	assert.NoError(err)
	assert.Equal(peeked, tok)

	peeked, err = scanner.Peek()
	assert.NoError(err)
	assert.Equal(Token{IDENTIFIER, "b", 2, 3}, peeked)
	assert.True(scanner.HasNext())

	tok, err = scanner.Advance()
	assert.NoError(err)
	assert.Equal(peeked, tok)

	assert.False(scanner.HasNext())
	for i := 0; i < 2; i++ {
		tok, err = scanner.Advance()
		assert.NoError(err)
		assert.Equal(tokEOF(2, 4), tok)
	}
}

func TestScanHasNext(t *testing.T) {
	assert := assert.New(t)

	assert.False(NewScanner([]rune("")).HasNext())
	assert.False(NewScanner([]rune("  // only a comment\n /* and another */ ")).HasNext())
	assert.True(NewScanner([]rune(" x ")).HasNext())

	// a malformed token is still something to advance to
	scanner := NewScanner([]rune("@"))
	assert.True(scanner.HasNext())
	_, err := scanner.Advance()
	assert.Equal(NewLexError(1, 1, "Unexpected character '@'."), err)
}

func TestScanPeekError(t *testing.T) {
	assert := assert.New(t)
	scanner := NewScanner([]rune(`x "open`))

	tok, err := scanner.Advance()
	assert.NoError(err)
	assert.Equal(Token{IDENTIFIER, "x", 1, 1}, tok)

	_, peekErr := scanner.Peek()
	_, advanceErr := scanner.Advance()
	assert.Equal(NewLexError(1, 3, "Unterminated string."), peekErr)
	assert.Equal(peekErr, advanceErr)
}

func TestScanTokens(t *testing.T) {
	assert := assert.New(t)

	toks, err := NewScanner([]rune("class Main {}")).Tokens()
	assert.NoError(err)
	assert.Equal([]Token{
		{KEYWORD, "class", 1, 1},
		{IDENTIFIER, "Main", 1, 7},
		{SYMBOL, "{", 1, 12},
		{SYMBOL, "}", 1, 13},
	}, toks)

	toks, err = NewScanner([]rune("x $")).Tokens()
	assert.Error(err)
	assert.Equal([]Token{{IDENTIFIER, "x", 1, 1}}, toks)
}
