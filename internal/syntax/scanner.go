package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on Chi source code.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token   // token type
	lit    string  // token text (identifier, digits, decoded char/string content)
	kind   LitKind // literal kind (only valid when tok == _Literal)
	tokPos Pos     // token start position

	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{
		source: *newSource(filename, src, errh),
	}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	s.skipWhitespace()
	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case s.ch == '\'':
		s.scanChar()

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			goto redo // skipped a comment
		}

	default:
		s.error(fmt.Sprintf("unexpected character %q", s.ch))
		s.nextch()
		goto redo
	}
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's text.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a decimal integer literal. Range checking is left to
// the tree builder, which owns literal conversion.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	for isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	if isLetter(s.ch) {
		s.error(fmt.Sprintf("invalid digit %q in integer literal", s.ch))
		for isLetter(s.ch) || isDigit(s.ch) {
			s.nextch()
		}
	}
	s.lit = s.litBuf.String()
	s.tok = _Literal
	s.kind = IntLit
}

// scanString scans a string literal. The literal text is the decoded
// content without the quotes.
func (s *Scanner) scanString() {
	s.scanQuoted('"', StringLit, "string")
}

// scanChar scans a character literal. The content is kept whole; picking
// the character out of it is the tree builder's job.
func (s *Scanner) scanChar() {
	s.scanQuoted('\'', CharLit, "char literal")
}

func (s *Scanner) scanQuoted(quote rune, kind LitKind, what string) {
	s.nextch() // opening quote
	var b strings.Builder

	for {
		switch {
		case s.ch == quote:
			s.nextch()
			s.lit = b.String()
			s.tok = _Literal
			s.kind = kind
			return

		case s.ch == '\\':
			if r, ok := s.scanEscape(); ok {
				b.WriteRune(r)
			}

		case s.ch == '\n' || s.ch < 0:
			s.error(what + " not terminated")
			s.lit = b.String()
			s.tok = _Literal
			s.kind = kind
			return

		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

// scanEscape scans an escape sequence and returns the decoded rune.
func (s *Scanner) scanEscape() (rune, bool) {
	s.nextch() // skip \

	switch s.ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case 'r':
		s.nextch()
		return '\r', true
	case '\\':
		s.nextch()
		return '\\', true
	case '"':
		s.nextch()
		return '"', true
	case '\'':
		s.nextch()
		return '\'', true
	case '0':
		s.nextch()
		return 0, true
	case 'x':
		s.nextch()
		return s.scanHexEscape()
	default:
		s.error(fmt.Sprintf("unknown escape sequence: \\%c", s.ch))
		if s.ch >= 0 && s.ch != '\n' {
			s.nextch()
		}
		return 0, false
	}
}

// scanHexEscape scans the two digits of a \xNN escape.
func (s *Scanner) scanHexEscape() (rune, bool) {
	var val rune
	for i := 0; i < 2; i++ {
		if !isHexDigit(s.ch) {
			s.error("invalid hex escape")
			return 0, false
		}
		val = val*16 + hexValue(s.ch)
		s.nextch()
	}
	return val, true
}

func hexValue(r rune) rune {
	switch {
	case '0' <= r && r <= '9':
		return r - '0'
	case 'a' <= lower(r) && lower(r) <= 'f':
		return lower(r) - 'a' + 10
	}
	return 0
}

// scanOperator scans an operator or delimiter.
// Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.tok = _Add
	case '-':
		s.tok = _Sub
	case '*':
		// *>> is high multiply; a lone *> is * followed by >.
		if s.ch == '>' && s.peek() == '>' {
			s.nextch()
			s.nextch()
			s.tok = _HMul
		} else {
			s.tok = _Mul
		}
	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return true
		}
		s.tok = _Div
	case '%':
		s.tok = _Rem
	case '&':
		s.tok = _And
	case '|':
		s.tok = _Or
	case '<':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Leq
		} else {
			s.tok = _Lss
		}
	case '>':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Geq
		} else {
			s.tok = _Gtr
		}
	case '=':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Eql
		} else {
			s.tok = _Assign
		}
	case '!':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Neq
		} else {
			s.tok = _Not
		}
	case '(':
		s.tok = _Lparen
	case ')':
		s.tok = _Rparen
	case '[':
		s.tok = _Lbrack
	case ']':
		s.tok = _Rbrack
	case '{':
		s.tok = _Lbrace
	case '}':
		s.tok = _Rbrace
	case ',':
		s.tok = _Comma
	case ';':
		s.tok = _Semi
	}

	s.lit = s.tok.String()
	return false
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	s.nextch() // second /
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
