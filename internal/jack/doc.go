/*
Package jack compiles classes written in the Jack language into instructions
for the stack based VM. There is no syntax tree: the engine emits code while it
recognizes the grammar, pulling tokens from the scanner one at a time.

Grammars

	class         --> "class" IDENT "{" classVarDec* subroutineDec* "}" ;
	classVarDec   --> ( "static" | "field" ) type IDENT ( "," IDENT )* ";" ;
	type          --> "int" | "char" | "boolean" | IDENT ;
	subroutineDec --> ( "constructor" | "function" | "method" )
	                  ( "void" | type ) IDENT "(" params? ")" subroutineBody ;
	params        --> type IDENT ( "," type IDENT )* ;
	subroutineBody--> "{" varDec* statements "}" ;
	varDec        --> "var" type IDENT ( "," IDENT )* ";" ;
	statements    --> stmt* ;
	stmt          --> letStmt
	                | ifStmt
	                | whileStmt
	                | doStmt
	                | returnStmt ;
	letStmt       --> "let" IDENT ( "[" expr "]" )? "=" expr ";" ;
	ifStmt        --> "if" "(" expr ")" "{" statements "}"
	                  ( "else" "{" statements "}" )? ;
	whileStmt     --> "while" "(" expr ")" "{" statements "}" ;
	doStmt        --> "do" call ";" ;
	returnStmt    --> "return" expr? ";" ;
	expr          --> term ( op term )* ;
	term          --> INT | STRING | "true" | "false" | "null" | "this"
	                | IDENT | IDENT "[" expr "]" | call
	                | "(" expr ")" | ( "-" | "~" ) term ;
	call          --> ( IDENT "." )? IDENT "(" args? ")" ;
	args          --> expr ( "," expr )* ;
	op            --> "+" | "-" | "*" | "/" | "&" | "|" | "<" | ">" | "=" ;

All binary operators share one precedence level and group to the left, so
"1 + 2 * 3" evaluates to 9. A unary operator applies to the single term that
follows it, which may itself be a unary term: "--x" negates twice.
*/
package jack
