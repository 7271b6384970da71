package syntax

import (
	"fmt"
	"io"
)

// DefaultMaxDepth bounds the nesting of blocks and expressions. The Chi
// grammar nests binary expressions to the right, so a chain of n operators
// is n levels deep.
const DefaultMaxDepth = 1024

// SyntaxError represents a lexical or syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser matches Chi source against the grammar and builds the concrete
// parse tree. Matching stops at the first error: the tree returned after
// an error is incomplete and must not be used.
type Parser struct {
	scanner *Scanner

	// Current token info (cached from scanner)
	tok  Token
	lit  string
	kind LitKind
	pos  Pos

	// Error handling
	errh  func(pos Pos, msg string)
	first *SyntaxError
	abort bool

	depth    int
	maxDepth int
}

// NewParser creates a new Parser for the given source.
// errh, if non-nil, is called with the first error.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	p := &Parser{
		errh:     errh,
		maxDepth: DefaultMaxDepth,
	}
	scanErrh := func(line, col uint32, msg string) {
		p.syntaxErrorAt(NewPos(filename, line, col), msg)
	}
	p.scanner = NewScanner(filename, src, scanErrh)
	p.next()
	return p
}

// SetMaxDepth overrides the nesting limit. Values <= 0 restore the default.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	if p.first == nil {
		return nil
	}
	return p.first
}

// Parse matches a complete source file and returns its program node.
func Parse(filename string, src io.Reader) (*Node, error) {
	p := NewParser(filename, src, nil)
	root := p.Parse()
	if err := p.FirstError(); err != nil {
		return nil, err
	}
	return root, nil
}

// ParseExpr matches a single expression that must make up all of src.
func ParseExpr(filename string, src io.Reader) (*Node, error) {
	p := NewParser(filename, src, nil)
	x := p.ParseExpr()
	if err := p.FirstError(); err != nil {
		return nil, err
	}
	return x, nil
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) next() {
	if p.abort {
		return
	}
	p.scanner.Next()
	if p.abort {
		// the scanner reported an error while scanning this token
		p.tok = _EOF
		return
	}
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.kind = p.scanner.LitKind()
	p.pos = p.scanner.Pos()
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String())
	}
}

// leaf returns a leaf for the current token and consumes it.
func (p *Parser) leaf(rule Rule) *Node {
	n := NewLeaf(rule, p.pos, p.lit)
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Error handling

func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg+", found "+p.tokDesc())
}

// syntaxErrorAt records the first error and stops matching.
func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	p.first = &SyntaxError{Pos: pos, Msg: msg}
	p.abort = true
	p.tok = _EOF
	if p.errh != nil {
		p.errh(pos, msg)
	}
}

func (p *Parser) tokDesc() string {
	switch p.tok {
	case _EOF:
		return "EOF"
	case _Name:
		return "name " + p.lit
	case _Literal:
		return fmt.Sprintf("%s literal %q", p.kind, p.lit)
	}
	if p.tok.IsKeyword() {
		return "keyword " + p.tok.String()
	}
	return fmt.Sprintf("%q", p.tok.String())
}

// enter bumps the nesting depth; it reports false once the limit is hit.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.syntaxError(fmt.Sprintf("nesting exceeds %d levels", p.maxDepth))
		return false
	}
	return true
}

func (p *Parser) leave() { p.depth-- }

// ----------------------------------------------------------------------------
// Top level

// Parse matches program := (use_stmt | function_decl | global_decl)* EOF.
func (p *Parser) Parse() *Node {
	prog := NewNode(RuleProgram, p.pos)

	for !p.abort && p.tok != _EOF {
		switch {
		case p.tok == _Use:
			prog.add(p.useStmt())
		case p.tok.IsTypeKeyword() || p.tok == _Void:
			prog.add(p.topLevelDecl())
		default:
			p.syntaxError("expected use statement or declaration")
		}
	}

	return prog
}

// ParseExpr matches a lone expression followed by EOF.
func (p *Parser) ParseExpr() *Node {
	x := p.expr()
	if !p.abort && p.tok != _EOF {
		p.syntaxError("expected end of expression")
	}
	return x
}

// useStmt matches "use" identifier ";".
func (p *Parser) useStmt() *Node {
	n := NewNode(RuleUseStmt, p.pos)
	p.want(_Use)
	n.add(p.identifier())
	p.want(_Semi)
	return n
}

// topLevelDecl matches a function or a global declaration. Both start with
// type identifier; a following "(" makes it a function.
func (p *Parser) topLevelDecl() *Node {
	pos := p.pos
	typ := p.type_()
	name := p.identifier()

	if p.tok == _Lparen {
		return p.functionDecl(pos, typ, name)
	}

	d := p.declarationRest(pos, typ, name)
	return NewNode(RuleGlobalDecl, pos, d)
}

// functionDecl matches the part of a function after its name.
func (p *Parser) functionDecl(pos Pos, typ, name *Node) *Node {
	fn := NewNode(RuleFunctionDecl, pos, typ, name)

	p.want(_Lparen)
	if p.tok != _Rparen {
		fn.add(p.paramList())
	}
	p.want(_Rparen)

	fn.add(p.block())
	return fn
}

func (p *Parser) paramList() *Node {
	list := NewNode(RuleParamList, p.pos)
	for {
		param := NewNode(RuleParam, p.pos)
		param.add(p.type_())
		param.add(p.identifier())
		list.add(param)

		if p.abort || !p.got(_Comma) {
			break
		}
	}
	return list
}

// ----------------------------------------------------------------------------
// Declarations and types

// declaration matches decl_type identifier_list (assign expr_list)? semi.
func (p *Parser) declaration() *Node {
	pos := p.pos
	typ := p.type_()
	name := p.identifier()
	return p.declarationRest(pos, typ, name)
}

// declarationRest finishes a declaration whose type and first name have
// been matched.
func (p *Parser) declarationRest(pos Pos, typ, first *Node) *Node {
	d := NewNode(RuleDeclaration, pos, NewNode(RuleDeclType, typ.Pos, typ))

	ids := NewNode(RuleIdentifierList, first.Pos, first)
	for !p.abort && p.got(_Comma) {
		ids.add(p.identifier())
	}
	d.add(ids)

	if p.tok == _Assign {
		d.add(p.leaf(RuleAssign))
		d.add(p.exprList())
	}

	if p.tok != _Semi {
		p.syntaxError("expected ; after declaration")
		return d
	}
	d.add(p.leaf(RuleSemi))
	return d
}

// type_ matches (primitive_type | void_type) ("[" "]")*.
// Array types nest: int[][] is array_type(type(array_type(type(primitive_type)))).
func (p *Parser) type_() *Node {
	t := NewNode(RuleType, p.pos)

	switch p.tok {
	case _Int:
		t.add(NewNode(RulePrimitiveType, p.pos, p.leaf(RuleIntType)))
	case _Bool:
		t.add(NewNode(RulePrimitiveType, p.pos, p.leaf(RuleBoolType)))
	case _Char:
		t.add(NewNode(RulePrimitiveType, p.pos, p.leaf(RuleCharType)))
	case _String:
		t.add(NewNode(RulePrimitiveType, p.pos, p.leaf(RuleStringType)))
	case _Void:
		t.add(p.leaf(RuleVoidType))
	default:
		p.syntaxError("expected type")
		return t
	}

	for !p.abort && p.tok == _Lbrack {
		p.next()
		p.want(_Rbrack)
		t = NewNode(RuleType, t.Pos, NewNode(RuleArrayType, t.Pos, t))
	}
	return t
}

func (p *Parser) identifier() *Node {
	if p.tok != _Name {
		p.syntaxError("expected identifier")
		return NewLeaf(RuleIdentifier, p.pos, "_")
	}
	return p.leaf(RuleIdentifier)
}

// ----------------------------------------------------------------------------
// Statements

// block matches "{" statement* "}".
func (p *Parser) block() *Node {
	b := NewNode(RuleBlock, p.pos)
	if !p.enter() {
		return b
	}
	defer p.leave()

	p.want(_Lbrace)
	for !p.abort && p.tok != _Rbrace && p.tok != _EOF {
		b.add(p.statement())
	}
	p.want(_Rbrace)
	return b
}

func (p *Parser) statement() *Node {
	s := NewNode(RuleStatement, p.pos)

	switch {
	case p.tok.IsTypeKeyword() || p.tok == _Void:
		s.add(p.declaration())
	case p.tok == _Lbrace:
		s.add(p.block())
	case p.tok == _If:
		s.add(p.ifStmt())
	case p.tok == _While:
		s.add(p.whileStmt())
	case p.tok == _Return:
		s.add(p.returnStmt())
	case p.tok == _Name:
		s.add(p.simpleStmt())
	default:
		p.syntaxError("expected statement")
	}
	return s
}

// simpleStmt matches call_stmt or assign_stmt, which share a leading
// identifier.
func (p *Parser) simpleStmt() *Node {
	pos := p.pos
	name := p.identifier()

	switch p.tok {
	case _Lparen:
		call := NewNode(RuleCallStmt, pos, name)
		p.next()
		if p.tok != _Rparen {
			call.add(p.exprList())
		}
		p.want(_Rparen)
		p.want(_Semi)
		return call

	case _Assign:
		as := NewNode(RuleAssignStmt, pos, name)
		p.next()
		as.add(p.expr())
		p.want(_Semi)
		return as
	}

	p.syntaxError("expected ( or = after " + name.Text)
	return NewNode(RuleAssignStmt, pos, name)
}

func (p *Parser) ifStmt() *Node {
	s := NewNode(RuleIfStmt, p.pos)
	p.want(_If)
	s.add(p.expr())
	s.add(p.block())
	if p.got(_Else) {
		s.add(p.block())
	}
	return s
}

func (p *Parser) whileStmt() *Node {
	s := NewNode(RuleWhileStmt, p.pos)
	p.want(_While)
	s.add(p.expr())
	s.add(p.block())
	return s
}

func (p *Parser) returnStmt() *Node {
	s := NewNode(RuleReturnStmt, p.pos)
	p.want(_Return)
	if p.tok != _Semi {
		s.add(p.expr())
	}
	p.want(_Semi)
	return s
}

// ----------------------------------------------------------------------------
// Expressions

// expr matches unary_expr | binary_expr | primary. Binary expressions take
// a primary on the left and a whole expression on the right, so operators
// associate to the right with no precedence levels: a*b+c is a*(b+c).
func (p *Parser) expr() *Node {
	x := NewNode(RuleExpr, p.pos)
	if !p.enter() {
		return x
	}
	defer p.leave()

	if p.tok.IsUnaryOp() {
		u := NewNode(RuleUnaryExpr, p.pos, p.leaf(RuleUnOp))
		u.add(p.expr())
		x.add(u)
		return x
	}

	prim := p.primary()
	if p.abort || !p.tok.IsBinaryOp() {
		x.add(prim)
		return x
	}

	b := NewNode(RuleBinaryExpr, prim.Pos, prim, p.leaf(RuleBinOp))
	b.add(p.expr())
	x.add(b)
	return x
}

func (p *Parser) primary() *Node {
	pr := NewNode(RulePrimary, p.pos)

	switch p.tok {
	case _Literal:
		var rule Rule
		switch p.kind {
		case IntLit:
			rule = RuleIntLit
		case CharLit:
			rule = RuleCharLit
		default:
			rule = RuleStringLit
		}
		pr.add(NewNode(RuleLiteral, p.pos, p.leaf(rule)))

	case _True, _False:
		pr.add(NewNode(RuleLiteral, p.pos, p.leaf(RuleBoolLit)))

	case _Len:
		n := NewNode(RuleLenExpr, p.pos)
		p.next()
		p.want(_Lparen)
		n.add(p.expr())
		p.want(_Rparen)
		pr.add(n)

	case _Lbrack:
		n := NewNode(RuleArrayLiteral, p.pos)
		p.next()
		if p.tok != _Rbrack {
			n.add(p.exprList())
		}
		p.want(_Rbrack)
		pr.add(n)

	case _Lparen:
		n := NewNode(RuleParenExpr, p.pos)
		p.next()
		n.add(p.expr())
		p.want(_Rparen)
		pr.add(n)

	case _Name:
		name := p.leaf(RuleIdentifier)
		switch p.tok {
		case _Lparen:
			call := NewNode(RuleFunctionCall, name.Pos, name)
			p.next()
			if p.tok != _Rparen {
				call.add(p.exprList())
			}
			p.want(_Rparen)
			pr.add(call)
		case _Lbrack:
			idx := NewNode(RuleArrayIndex, name.Pos, name)
			p.next()
			idx.add(p.expr())
			p.want(_Rbrack)
			pr.add(idx)
		default:
			pr.add(name)
		}

	default:
		p.syntaxError("expected expression")
	}
	return pr
}

func (p *Parser) exprList() *Node {
	list := NewNode(RuleExprList, p.pos, p.expr())
	for !p.abort && p.got(_Comma) {
		list.add(p.expr())
	}
	return list
}
