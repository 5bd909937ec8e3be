package jack

import (
	"errors"
	"fmt"
)

// ErrRedefinition is returned by the symbol table when a name is defined twice
// in the same scope.
var ErrRedefinition = errors.New("name already defined in this scope")

// LexError is returned by the scanner when it can not form a token.
type LexError struct {
	Line    int
	Column  int
	Message string
}

// NewLexError creates a new scanning error
func NewLexError(line, column int, message string) error {
	return &LexError{line, column, message}
}

func (err *LexError) Error() string {
	return fmt.Sprintf(
		"[line %d:%d] Error: %s",
		err.Line,
		err.Column,
		err.Message,
	)
}

// SyntaxError is returned by the engine when the token stream does not match
// the production it expects.
type SyntaxError struct {
	Token    Token
	Expected string
}

// NewSyntaxError creates a new syntax error found at the given token
func NewSyntaxError(token Token, expected string) error {
	return &SyntaxError{token, expected}
}

func (err *SyntaxError) Error() string {
	if err.Token.Typ == EOF {
		return fmt.Sprintf(
			"[line %d:%d] Error at end: Expect %s.",
			err.Token.Line,
			err.Token.Column,
			err.Expected,
		)
	}
	return fmt.Sprintf(
		"[line %d:%d] Error at '%s': Expect %s.",
		err.Token.Line,
		err.Token.Column,
		err.Token.Lexeme,
		err.Expected,
	)
}

// SemanticError is returned by the engine when a well-formed program misuses
// a name.
type SemanticError struct {
	Token   Token
	Message string
}

// NewSemanticError creates a new semantic error found at the given token
func NewSemanticError(token Token, message string) error {
	return &SemanticError{token, message}
}

func (err *SemanticError) Error() string {
	return fmt.Sprintf(
		"[line %d:%d] Error at '%s': %s",
		err.Token.Line,
		err.Token.Column,
		err.Token.Lexeme,
		err.Message,
	)
}
