package jack

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Scanner reads the input source lazily, one token at a time, and keeps at most
// one token of lookahead.
type Scanner struct {
	source    []rune
	start     int
	current   int
	line      int
	lineStart int
	lookahead *lookahead
}

// lookahead is a token scanned by Peek together with the position the scanner
// moves to once the token is consumed.
type lookahead struct {
	token     Token
	err       error
	current   int
	line      int
	lineStart int
}

// NewScanner creates a new Jack token scanner
func NewScanner(source []rune) *Scanner {
	scanner := new(Scanner)
	scanner.source = source
	scanner.line = 1
	return scanner
}

// HasNext returns true if there is a token left before the end of the source.
// A malformed token counts as one, so that Advance gets to report it.
func (scanner *Scanner) HasNext() bool {
	tok, err := scanner.Peek()
	return err != nil || tok.Typ != EOF
}

// Advance consumes and returns the next token. Once the source is exhausted,
// every call returns an EOF token.
func (scanner *Scanner) Advance() (Token, error) {
	if la := scanner.lookahead; la != nil {
		scanner.lookahead = nil
		scanner.current = la.current
		scanner.line = la.line
		scanner.lineStart = la.lineStart
		return la.token, la.err
	}
	return scanner.scan()
}

// Peek returns the next token without consuming it. The scanner position is
// snapshotted before scanning and restored afterwards, the scanned token is
// kept so the following Advance does not scan it again.
func (scanner *Scanner) Peek() (Token, error) {
	if scanner.lookahead == nil {
		current, line, lineStart := scanner.current, scanner.line, scanner.lineStart
		tok, err := scanner.scan()
		scanner.lookahead = &lookahead{tok, err, scanner.current, scanner.line, scanner.lineStart}
		scanner.current, scanner.line, scanner.lineStart = current, line, lineStart
	}
	return scanner.lookahead.token, scanner.lookahead.err
}

// Tokens consumes the rest of the source and returns all of its tokens,
// excluding the final EOF.
func (scanner *Scanner) Tokens() ([]Token, error) {
	var toks []Token
	for {
		tok, err := scanner.Advance()
		if err != nil {
			return toks, err
		}
		if tok.Typ == EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func (scanner *Scanner) scan() (Token, error) {
	if err := scanner.skipTrivia(); err != nil {
		return Token{}, err
	}

	scanner.start = scanner.current
	line, column := scanner.line, scanner.column()
	if !scanner.hasNext() {
		return NewToken(EOF, "", line, column), nil
	}

	switch r := scanner.advance(); {
	case strings.ContainsRune(symbols, r):
		return NewToken(SYMBOL, string(r), line, column), nil
	case isDigit(r):
		return scanner.scanInteger(line, column)
	case r == '"':
		return scanner.scanString(line, column)
	case isIdentRune(r):
		return scanner.scanIdentifier(line, column), nil
	default:
		return Token{}, NewLexError(
			line, column, fmt.Sprintf("Unexpected character '%c'.", r),
		)
	}
}

// skipTrivia consumes whitespaces and comments in front of the next token
func (scanner *Scanner) skipTrivia() error {
	for scanner.hasNext() {
		switch r := scanner.peek(); {
		case unicode.IsSpace(r):
			scanner.advance()
		case r == '/' && scanner.peekNext() == '/':
			for scanner.hasNext() && scanner.peek() != '\n' {
				scanner.advance()
			}
		case r == '/' && scanner.peekNext() == '*':
			line, column := scanner.line, scanner.column()
			scanner.advance()
			scanner.advance()
			if !scanner.skipMultilineComment() {
				return NewLexError(line, column, "Unterminated comment.")
			}
		default:
			return nil
		}
	}
	return nil
}

// skipMultilineComment consumes everything up to and including the closing
// STAR-SLASH, it returns false if the source ends first.
func (scanner *Scanner) skipMultilineComment() bool {
	for scanner.hasNext() {
		if scanner.advance() == '*' && scanner.peek() == '/' {
			scanner.advance()
			return true
		}
	}
	return false
}

func (scanner *Scanner) scanInteger(line, column int) (Token, error) {
	for isDigit(scanner.peek()) {
		scanner.advance()
	}
	lexeme := string(scanner.source[scanner.start:scanner.current])
	if n, err := strconv.Atoi(lexeme); err != nil || n > maxIntConst {
		return Token{}, NewLexError(line, column, "Integer constant out of range.")
	}
	return NewToken(INT_CONST, lexeme, line, column), nil
}

func (scanner *Scanner) scanString(line, column int) (Token, error) {
	// no escape sequences, the next '"' always closes the string
	for scanner.hasNext() && scanner.peek() != '"' {
		charLine, charColumn := scanner.line, scanner.column()
		if scanner.advance() > maxIntConst {
			return Token{}, NewLexError(charLine, charColumn, "Character out of range.")
		}
	}
	if !scanner.hasNext() {
		return Token{}, NewLexError(line, column, "Unterminated string.")
	}
	scanner.advance()
	literal := string(scanner.source[scanner.start+1 : scanner.current-1])
	return NewToken(STRING_CONST, literal, line, column), nil
}

func (scanner *Scanner) scanIdentifier(line, column int) Token {
	for isIdentRune(scanner.peek()) {
		scanner.advance()
	}
	lexeme := string(scanner.source[scanner.start:scanner.current])
	if _, isKeyword := Keywords[lexeme]; isKeyword {
		return NewToken(KEYWORD, lexeme, line, column)
	}
	return NewToken(IDENTIFIER, lexeme, line, column)
}

// hasNext returns true if the scanner has not read pass the source length
func (scanner *Scanner) hasNext() bool {
	return scanner.current < len(scanner.source)
}

// advance consumes and returns the rune at the current position
func (scanner *Scanner) advance() rune {
	r := scanner.source[scanner.current]
	scanner.current++
	if r == '\n' {
		scanner.line++
		scanner.lineStart = scanner.current
	}
	return r
}

// peek returns the rune at the current position, but does not consume it
func (scanner *Scanner) peek() rune {
	if !scanner.hasNext() {
		return '\x00'
	}
	return scanner.source[scanner.current]
}

// peekNext returns the rune at the next position, but does not consume it
func (scanner *Scanner) peekNext() rune {
	if scanner.current+1 >= len(scanner.source) {
		return '\x00'
	}
	return scanner.source[scanner.current+1]
}

// column returns the 1-based column of the current position
func (scanner *Scanner) column() int {
	return scanner.current - scanner.lineStart + 1
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || isDigit(r) || r == '_'
}
