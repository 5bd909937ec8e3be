package jack

import (
	"fmt"
	"strconv"
)

var subroutineKinds = map[string]SubroutineKind{
	"constructor": Constructor,
	"function":    Function,
	"method":      Method,
}

var binaryOperators = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "&": {}, "|": {}, "<": {}, ">": {}, "=": {},
}

// Engine compiles the tokens of a single class into VM instructions while it
// recognizes them. Each compile method consumes exactly the tokens of its
// grammar rule, see the package documentation for the grammar.
//
// The engine stops at the first error, nothing it emitted before the error is
// meaningful.
type Engine struct {
	scanner *Scanner
	vm      *VMWriter
	table   *SymbolTable
	current Token

	subroutineKind SubroutineKind
	// names of the subroutines compiled so far
	subroutines map[string]struct{}

	// label counters, reset for every subroutine
	ifCount    int
	whileCount int
}

// NewEngine creates an engine reading tokens from the scanner and emitting to
// the writer
func NewEngine(scanner *Scanner, vm *VMWriter) *Engine {
	return &Engine{scanner: scanner, vm: vm, subroutines: make(map[string]struct{})}
}

// ClassName returns the name of the compiled class, it is empty until the
// class header was read.
func (e *Engine) ClassName() string {
	if e.table == nil {
		return ""
	}
	return e.table.ClassName()
}

// CompileClass compiles the whole token stream, which must hold exactly one
// class.
//
//	class --> "class" IDENT "{" classVarDec* subroutineDec* "}" EOF ;
func (e *Engine) CompileClass() error {
	if err := e.advance(); err != nil {
		return err
	}
	if err := e.consumeKeyword("class"); err != nil {
		return err
	}
	name, err := e.consumeIdentifier("class name")
	if err != nil {
		return err
	}
	e.table = NewSymbolTable(name.Lexeme)

	if err := e.consumeSymbol("{"); err != nil {
		return err
	}
	for e.checkKeyword("static", "field") {
		if err := e.compileClassVarDec(); err != nil {
			return err
		}
	}
	for e.checkKeyword("constructor", "function", "method") {
		if err := e.compileSubroutine(); err != nil {
			return err
		}
	}
	if err := e.consumeSymbol("}"); err != nil {
		return err
	}
	if e.current.Typ != EOF {
		return NewSyntaxError(e.current, "end of file after class")
	}
	return nil
}

// classVarDec --> ( "static" | "field" ) type IDENT ( "," IDENT )* ";" ;
func (e *Engine) compileClassVarDec() error {
	kind := KindStatic
	if e.current.Lexeme == "field" {
		kind = KindField
	}
	if err := e.advance(); err != nil {
		return err
	}
	return e.compileVarNames(kind)
}

// subroutineDec --> ( "constructor" | "function" | "method" )
//
//	( "void" | type ) IDENT "(" params? ")" subroutineBody ;
func (e *Engine) compileSubroutine() error {
	kind := subroutineKinds[e.current.Lexeme]
	if err := e.advance(); err != nil {
		return err
	}
	if _, err := e.compileType(true); err != nil {
		return err
	}
	name, err := e.consumeIdentifier("subroutine name")
	if err != nil {
		return err
	}

	if _, exists := e.subroutines[name.Lexeme]; exists {
		return NewSemanticError(name, "Already a subroutine with this name.")
	}
	e.subroutines[name.Lexeme] = struct{}{}
	e.subroutineKind = kind
	e.ifCount = 0
	e.whileCount = 0
	e.table.StartSubroutine(name.Lexeme, kind)

	if err := e.consumeSymbol("("); err != nil {
		return err
	}
	if err := e.compileParameterList(); err != nil {
		return err
	}
	if err := e.consumeSymbol(")"); err != nil {
		return err
	}
	return e.compileSubroutineBody()
}

// params --> type IDENT ( "," type IDENT )* ;
func (e *Engine) compileParameterList() error {
	if e.checkSymbol(")") {
		return nil
	}
	for {
		typ, err := e.compileType(false)
		if err != nil {
			return err
		}
		name, err := e.consumeIdentifier("parameter name")
		if err != nil {
			return err
		}
		if err := e.define(name, typ.Lexeme, KindArgument); err != nil {
			return err
		}
		if !e.checkSymbol(",") {
			return nil
		}
		if err := e.advance(); err != nil {
			return err
		}
	}
}

// subroutineBody --> "{" varDec* statements "}" ;
//
// The function header needs the number of locals, so it is emitted only after
// every varDec was read.
func (e *Engine) compileSubroutineBody() error {
	if err := e.consumeSymbol("{"); err != nil {
		return err
	}
	for e.checkKeyword("var") {
		if err := e.advance(); err != nil {
			return err
		}
		if err := e.compileVarNames(KindLocal); err != nil {
			return err
		}
	}

	e.vm.WriteFunction(e.table.ClassName()+"."+e.table.SubroutineName(), e.table.Count(KindLocal))
	switch e.subroutineKind {
	case Constructor:
		e.vm.WritePush(SegConstant, e.table.Count(KindField))
		e.vm.WriteCall(memoryAlloc, 1)
		e.vm.WritePop(SegPointer, 0)
	case Method:
		e.vm.WritePush(SegArgument, 0)
		e.vm.WritePop(SegPointer, 0)
	case Function:
	}

	if err := e.compileStatements(); err != nil {
		return err
	}
	return e.consumeSymbol("}")
}

// compileVarNames reads the part shared by all variable declarations, after the
// leading keyword.
//
//	varNames --> type IDENT ( "," IDENT )* ";" ;
func (e *Engine) compileVarNames(kind Kind) error {
	typ, err := e.compileType(false)
	if err != nil {
		return err
	}
	for {
		name, err := e.consumeIdentifier("variable name")
		if err != nil {
			return err
		}
		if err := e.define(name, typ.Lexeme, kind); err != nil {
			return err
		}
		if !e.checkSymbol(",") {
			break
		}
		if err := e.advance(); err != nil {
			return err
		}
	}
	return e.consumeSymbol(";")
}

// type --> "int" | "char" | "boolean" | IDENT ;
func (e *Engine) compileType(allowVoid bool) (Token, error) {
	tok := e.current
	if tok.Typ == IDENTIFIER ||
		e.checkKeyword("int", "char", "boolean") ||
		allowVoid && e.checkKeyword("void") {
		return tok, e.advance()
	}
	if allowVoid {
		return Token{}, NewSyntaxError(tok, "return type")
	}
	return Token{}, NewSyntaxError(tok, "type")
}

// statements --> ( let | if | while | do | return )* ;
func (e *Engine) compileStatements() error {
	for e.current.Typ == KEYWORD {
		var err error
		switch e.current.Lexeme {
		case "let":
			err = e.compileLet()
		case "if":
			err = e.compileIf()
		case "while":
			err = e.compileWhile()
		case "do":
			err = e.compileDo()
		case "return":
			err = e.compileReturn()
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// let --> "let" IDENT ( "[" expr "]" )? "=" expr ";" ;
func (e *Engine) compileLet() error {
	if err := e.advance(); err != nil {
		return err
	}
	name, err := e.consumeIdentifier("variable name")
	if err != nil {
		return err
	}
	sym, err := e.resolve(name)
	if err != nil {
		return err
	}

	if !e.checkSymbol("[") {
		if err := e.compileAssignedValue(); err != nil {
			return err
		}
		e.vm.WritePop(sym.Kind.Segment(), sym.Index)
		return nil
	}

	// target address first, the value may read the same array
	if err := e.advance(); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	if err := e.consumeSymbol("]"); err != nil {
		return err
	}
	e.vm.WritePush(sym.Kind.Segment(), sym.Index)
	e.vm.WriteCommand(OpAdd)
	if err := e.compileAssignedValue(); err != nil {
		return err
	}
	e.vm.WritePop(SegTemp, 0)
	e.vm.WritePop(SegPointer, 1)
	e.vm.WritePush(SegTemp, 0)
	e.vm.WritePop(SegThat, 0)
	return nil
}

// compileAssignedValue compiles the right hand side of a let statement.
func (e *Engine) compileAssignedValue() error {
	if err := e.consumeSymbol("="); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	return e.consumeSymbol(";")
}

// if --> "if" "(" expr ")" "{" statements "}" ( "else" "{" statements "}" )? ;
func (e *Engine) compileIf() error {
	n := e.ifCount
	e.ifCount++
	labelTrue := fmt.Sprintf("IF_TRUE%d", n)
	labelFalse := fmt.Sprintf("IF_FALSE%d", n)
	labelEnd := fmt.Sprintf("IF_END%d", n)

	if err := e.advance(); err != nil {
		return err
	}
	if err := e.compileGroup(); err != nil {
		return err
	}
	e.vm.WriteIf(labelTrue)
	e.vm.WriteGoto(labelFalse)
	e.vm.WriteLabel(labelTrue)
	if err := e.compileBlock(); err != nil {
		return err
	}

	if !e.checkKeyword("else") {
		e.vm.WriteLabel(labelFalse)
		e.vm.WriteLabel(labelEnd)
		return nil
	}
	e.vm.WriteGoto(labelEnd)
	e.vm.WriteLabel(labelFalse)
	if err := e.advance(); err != nil {
		return err
	}
	if err := e.compileBlock(); err != nil {
		return err
	}
	e.vm.WriteLabel(labelEnd)
	return nil
}

// while --> "while" "(" expr ")" "{" statements "}" ;
func (e *Engine) compileWhile() error {
	n := e.whileCount
	e.whileCount++
	labelExp := fmt.Sprintf("WHILE_EXP%d", n)
	labelEnd := fmt.Sprintf("WHILE_END%d", n)

	if err := e.advance(); err != nil {
		return err
	}
	e.vm.WriteLabel(labelExp)
	if err := e.compileGroup(); err != nil {
		return err
	}
	e.vm.WriteCommand(OpNot)
	e.vm.WriteIf(labelEnd)
	if err := e.compileBlock(); err != nil {
		return err
	}
	e.vm.WriteGoto(labelExp)
	e.vm.WriteLabel(labelEnd)
	return nil
}

// compileGroup compiles a parenthesized expression.
//
//	group --> "(" expr ")" ;
func (e *Engine) compileGroup() error {
	if err := e.consumeSymbol("("); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	return e.consumeSymbol(")")
}

// compileBlock compiles statements surrounded by braces.
func (e *Engine) compileBlock() error {
	if err := e.consumeSymbol("{"); err != nil {
		return err
	}
	if err := e.compileStatements(); err != nil {
		return err
	}
	return e.consumeSymbol("}")
}

// do --> "do" call ";" ;
func (e *Engine) compileDo() error {
	if err := e.advance(); err != nil {
		return err
	}
	if err := e.compileSubroutineCall(); err != nil {
		return err
	}
	if err := e.consumeSymbol(";"); err != nil {
		return err
	}
	// every call returns a value
	e.vm.WritePop(SegTemp, 0)
	return nil
}

// return --> "return" expr? ";" ;
func (e *Engine) compileReturn() error {
	if err := e.advance(); err != nil {
		return err
	}
	if e.checkSymbol(";") {
		e.vm.WritePush(SegConstant, 0)
	} else if err := e.compileExpression(); err != nil {
		return err
	}
	if err := e.consumeSymbol(";"); err != nil {
		return err
	}
	e.vm.WriteReturn()
	return nil
}

// Operators have no precedence, they are applied left to right in the order
// they appear.
//
//	expr --> term ( op term )* ;
func (e *Engine) compileExpression() error {
	if err := e.compileTerm(); err != nil {
		return err
	}
	for e.checkOperator() {
		op := e.current.Lexeme
		if err := e.advance(); err != nil {
			return err
		}
		if err := e.compileTerm(); err != nil {
			return err
		}
		if err := e.vm.WriteArithmetic(op); err != nil {
			return err
		}
	}
	return nil
}

// term --> INT | STRING | "true" | "false" | "null" | "this"
//
//	| IDENT | IDENT "[" expr "]" | call
//	| "(" expr ")" | ( "-" | "~" ) term ;
func (e *Engine) compileTerm() error {
	tok := e.current
	switch tok.Typ {
	case INT_CONST:
		// the scanner only produces constants in range
		n, _ := strconv.Atoi(tok.Lexeme)
		e.vm.WritePush(SegConstant, n)
		return e.advance()
	case STRING_CONST:
		e.vm.WriteString(tok.Lexeme)
		return e.advance()
	case KEYWORD:
		return e.compileKeywordConstant()
	case SYMBOL:
		switch tok.Lexeme {
		case "(":
			return e.compileGroup()
		case "-", "~":
			if err := e.advance(); err != nil {
				return err
			}
			if err := e.compileTerm(); err != nil {
				return err
			}
			return e.vm.WriteUnary(tok.Lexeme)
		}
	case IDENTIFIER:
		next, err := e.scanner.Peek()
		if err != nil {
			return err
		}
		switch {
		case next.Is(SYMBOL, "["):
			return e.compileArrayRead()
		case next.Is(SYMBOL, "("), next.Is(SYMBOL, "."):
			return e.compileSubroutineCall()
		}
		sym, err := e.resolve(tok)
		if err != nil {
			return err
		}
		e.vm.WritePush(sym.Kind.Segment(), sym.Index)
		return e.advance()
	case EOF:
	}
	return NewSyntaxError(tok, "expression")
}

func (e *Engine) compileKeywordConstant() error {
	tok := e.current
	switch tok.Lexeme {
	case "true":
		e.vm.WritePush(SegConstant, 0)
		e.vm.WriteCommand(OpNot)
	case "false", "null":
		e.vm.WritePush(SegConstant, 0)
	case "this":
		if e.subroutineKind == Function {
			return NewSemanticError(tok, "Can't use 'this' in a function.")
		}
		e.vm.WritePush(SegPointer, 0)
	default:
		return NewSyntaxError(tok, "expression")
	}
	return e.advance()
}

// IDENT "[" expr "]"
func (e *Engine) compileArrayRead() error {
	name := e.current
	sym, err := e.resolve(name)
	if err != nil {
		return err
	}
	if err := e.advance(); err != nil {
		return err
	}
	if err := e.consumeSymbol("["); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	if err := e.consumeSymbol("]"); err != nil {
		return err
	}
	e.vm.WritePush(sym.Kind.Segment(), sym.Index)
	e.vm.WriteCommand(OpAdd)
	e.vm.WritePop(SegPointer, 1)
	e.vm.WritePush(SegThat, 0)
	return nil
}

// A call on a name that resolves to a variable is a method call on the
// object it holds. An unqualified call on any other name is a method call on
// the current object, a qualified one is a function call on a class.
//
//	call --> ( IDENT "." )? IDENT "(" args? ")" ;
func (e *Engine) compileSubroutineCall() error {
	name, err := e.consumeIdentifier("subroutine name")
	if err != nil {
		return err
	}

	var target string
	nArgs := 0
	switch {
	case e.checkSymbol("."):
		if err := e.advance(); err != nil {
			return err
		}
		method, err := e.consumeIdentifier("subroutine name")
		if err != nil {
			return err
		}
		if sym, ok := e.table.Resolve(name.Lexeme); ok {
			if err := e.checkAccess(name, sym); err != nil {
				return err
			}
			e.vm.WritePush(sym.Kind.Segment(), sym.Index)
			nArgs++
			target = sym.Type + "." + method.Lexeme
		} else {
			target = name.Lexeme + "." + method.Lexeme
		}
	case e.checkSymbol("("):
		if sym, ok := e.table.Resolve(name.Lexeme); ok {
			if err := e.checkAccess(name, sym); err != nil {
				return err
			}
			e.vm.WritePush(sym.Kind.Segment(), sym.Index)
			target = sym.Type + "." + name.Lexeme
		} else {
			e.vm.WritePush(SegPointer, 0)
			target = e.table.ClassName() + "." + name.Lexeme
		}
		nArgs++
	default:
		return NewSyntaxError(e.current, "'(' or '.'")
	}

	if err := e.consumeSymbol("("); err != nil {
		return err
	}
	n, err := e.compileExpressionList()
	if err != nil {
		return err
	}
	if err := e.consumeSymbol(")"); err != nil {
		return err
	}
	e.vm.WriteCall(target, nArgs+n)
	return nil
}

// args --> expr ( "," expr )* ;
func (e *Engine) compileExpressionList() (int, error) {
	if e.checkSymbol(")") {
		return 0, nil
	}
	n := 0
	for {
		if err := e.compileExpression(); err != nil {
			return n, err
		}
		n++
		if !e.checkSymbol(",") {
			return n, nil
		}
		if err := e.advance(); err != nil {
			return n, err
		}
	}
}

func (e *Engine) define(name Token, typ string, kind Kind) error {
	if _, err := e.table.Define(name.Lexeme, typ, kind); err != nil {
		return NewSemanticError(name, "Already a variable with this name in this scope.")
	}
	return nil
}

// resolve looks up a name used as a data operand.
func (e *Engine) resolve(name Token) (Symbol, error) {
	sym, ok := e.table.Resolve(name.Lexeme)
	if !ok {
		return Symbol{}, NewSemanticError(name, "Undefined variable.")
	}
	return sym, e.checkAccess(name, sym)
}

// checkAccess rejects fields used where there is no current object.
func (e *Engine) checkAccess(name Token, sym Symbol) error {
	if sym.Kind == KindField && e.subroutineKind == Function {
		return NewSemanticError(name, "Can't use a field in a function.")
	}
	return nil
}

// advance moves on to the next token
func (e *Engine) advance() error {
	tok, err := e.scanner.Advance()
	if err != nil {
		return err
	}
	e.current = tok
	return nil
}

func (e *Engine) checkKeyword(keywords ...string) bool {
	for _, kw := range keywords {
		if e.current.Is(KEYWORD, kw) {
			return true
		}
	}
	return false
}

func (e *Engine) checkSymbol(symbol string) bool {
	return e.current.Is(SYMBOL, symbol)
}

func (e *Engine) checkOperator() bool {
	if e.current.Typ != SYMBOL {
		return false
	}
	_, ok := binaryOperators[e.current.Lexeme]
	return ok
}

func (e *Engine) consumeKeyword(keyword string) error {
	if !e.current.Is(KEYWORD, keyword) {
		return NewSyntaxError(e.current, fmt.Sprintf("'%s'", keyword))
	}
	return e.advance()
}

func (e *Engine) consumeSymbol(symbol string) error {
	if !e.checkSymbol(symbol) {
		return NewSyntaxError(e.current, fmt.Sprintf("'%s'", symbol))
	}
	return e.advance()
}

func (e *Engine) consumeIdentifier(what string) (Token, error) {
	tok := e.current
	if tok.Typ != IDENTIFIER {
		return Token{}, NewSyntaxError(tok, what)
	}
	return tok, e.advance()
}
