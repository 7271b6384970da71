// Package syntax implements lexical and syntactic analysis for the Chi
// programming language. The scanner turns source text into tokens and the
// parser matches them against the Chi grammar, producing a concrete parse
// tree whose nodes are tagged with grammar rules.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	_EOF   Token = iota // end of file
	_Error              // lexical error

	_Name    // identifier
	_Literal // literal value (used with LitKind)

	// Assignment
	_Assign // =

	// Comparison operators
	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Arithmetic and logical operators
	_Add  // +
	_Sub  // -
	_Mul  // *
	_Div  // /
	_Rem  // %
	_HMul // *>>
	_And  // &
	_Or   // |

	// Unary-only operators
	_Not // !

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;

	// Keywords
	_Bool
	_Char
	_Else
	_False
	_If
	_Int
	_Len
	_Return
	_String
	_True
	_Use
	_Void
	_While

	tokenCount
)

var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign: "=",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add:  "+",
	_Sub:  "-",
	_Mul:  "*",
	_Div:  "/",
	_Rem:  "%",
	_HMul: "*>>",
	_And:  "&",
	_Or:   "|",

	_Not: "!",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",

	_Bool:   "bool",
	_Char:   "char",
	_Else:   "else",
	_False:  "false",
	_If:     "if",
	_Int:    "int",
	_Len:    "len",
	_Return: "return",
	_String: "string",
	_True:   "true",
	_Use:    "use",
	_Void:   "void",
	_While:  "while",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Bool && t <= _While
}

// IsBinaryOp reports whether t may appear between the operands of a
// binary expression.
func (t Token) IsBinaryOp() bool {
	return t >= _Eql && t <= _Or
}

// IsUnaryOp reports whether t may prefix a unary expression.
func (t Token) IsUnaryOp() bool {
	return t == _Sub || t == _Not
}

// IsTypeKeyword reports whether t names a primitive type.
func (t Token) IsTypeKeyword() bool {
	switch t {
	case _Int, _Bool, _Char, _String:
		return true
	}
	return false
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 42
	CharLit                  // 'a', '\n'
	StringLit                // "hello"
)

var litKindNames = [...]string{
	IntLit:    "int",
	CharLit:   "char",
	StringLit: "string",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= StringLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

var keywords = map[string]Token{
	"bool":   _Bool,
	"char":   _Char,
	"else":   _Else,
	"false":  _False,
	"if":     _If,
	"int":    _Int,
	"len":    _Len,
	"return": _Return,
	"string": _String,
	"true":   _True,
	"use":    _Use,
	"void":   _Void,
	"while":  _While,
}

// LookupKeyword returns the keyword token for ident, or _Name if ident is
// not a keyword.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
