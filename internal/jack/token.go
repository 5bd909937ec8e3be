package jack

import "fmt"

// Token represents group a characters with additional information that was
// obtained during the scanning phase.
type Token struct {
	Typ    TokenType
	Lexeme string
	Line   int
	Column int
}

// NewToken creates a new token
func NewToken(typ TokenType, lexeme string, line, column int) Token {
	return Token{typ, lexeme, line, column}
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s", t.Typ.String(), t.Lexeme)
}

// Is reports whether the token has the given type and lexeme.
func (t Token) Is(typ TokenType, lexeme string) bool {
	return t.Typ == typ && t.Lexeme == lexeme
}

// TokenType classifies a token. EOF marks the end of the stream so that every
// switch over token types can be exhaustive.
type TokenType uint

const (
	KEYWORD TokenType = iota
	IDENTIFIER
	SYMBOL
	INT_CONST
	STRING_CONST
	EOF
)

func (tt TokenType) String() string {
	switch tt {
	case KEYWORD:
		return "keyword"
	case IDENTIFIER:
		return "identifier"
	case SYMBOL:
		return "symbol"
	case INT_CONST:
		return "integerConstant"
	case STRING_CONST:
		return "stringConstant"
	case EOF:
		return "eof"
	}
	return ""
}

// Keywords is the set of reserved words.
var Keywords = map[string]struct{}{
	"class":       {},
	"constructor": {},
	"function":    {},
	"method":      {},
	"field":       {},
	"static":      {},
	"var":         {},
	"int":         {},
	"char":        {},
	"boolean":     {},
	"void":        {},
	"true":        {},
	"false":       {},
	"null":        {},
	"this":        {},
	"let":         {},
	"do":          {},
	"if":          {},
	"else":        {},
	"while":       {},
	"return":      {},
}

// symbols holds every single character symbol of the language
const symbols = "{}()[].,;+-*/&|<>=~"

// maxIntConst is the largest integer constant the 16-bit target can hold
const maxIntConst = 32767
