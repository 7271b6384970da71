package build

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/you-not-fish/chi/internal/ast"
	"github.com/you-not-fish/chi/internal/syntax"
)

// expr builds unary_expr | binary_expr | primary.
func (b *builder) expr(n *syntax.Node) (ast.Expr, error) {
	if n == nil || n.Rule != syntax.RuleExpr || n.Len() != 1 {
		return nil, malformed(n, "expression", "expr(unary_expr | binary_expr | primary)")
	}
	if err := b.enter(n, "expression"); err != nil {
		return nil, err
	}
	defer b.leave()

	c := n.Child(0)
	switch ruleOf(c) {
	case syntax.RuleUnaryExpr:
		return b.unary(c)
	case syntax.RuleBinaryExpr:
		return b.binary(c)
	case syntax.RulePrimary:
		return b.primary(c)
	}
	return nil, malformed(c, "expression", "unary_expr, binary_expr or primary")
}

// unary builds unop expr.
func (b *builder) unary(n *syntax.Node) (ast.Expr, error) {
	op := n.Child(0)
	if n.Len() != 2 || ruleOf(op) != syntax.RuleUnOp {
		return nil, malformed(n, "unary expression", "unary_expr(unop, expr)")
	}
	uop, ok := ast.LookupUop(op.Text)
	if !ok {
		return nil, &Error{Kind: UnknownOperator, Pos: op.Pos, Construct: "unary expression", Actual: op.Text}
	}
	x, err := b.expr(n.Child(1))
	if err != nil {
		return nil, err
	}
	return at(n.Pos, &ast.UnaryExpr{Op: uop, X: x}), nil
}

// binary builds primary binop expr. The right operand is a whole
// expression, so a - b - c is a - (b - c).
func (b *builder) binary(n *syntax.Node) (ast.Expr, error) {
	op := n.Child(1)
	if n.Len() != 3 || ruleOf(op) != syntax.RuleBinOp {
		return nil, malformed(n, "binary expression", "binary_expr(primary, binop, expr)")
	}
	bop, ok := ast.LookupBop(op.Text)
	if !ok {
		return nil, &Error{Kind: UnknownOperator, Pos: op.Pos, Construct: "binary expression", Actual: op.Text}
	}
	x, err := b.primary(n.Child(0))
	if err != nil {
		return nil, err
	}
	y, err := b.expr(n.Child(2))
	if err != nil {
		return nil, err
	}
	return at(n.Pos, &ast.BinaryExpr{Op: bop, X: x, Y: y}), nil
}

// primary builds the primary forms. A parenthesised expression yields the
// inner expression, which need not be a primary itself.
func (b *builder) primary(n *syntax.Node) (ast.Expr, error) {
	const construct = "primary expression"

	if n == nil || n.Rule != syntax.RulePrimary || n.Len() != 1 {
		return nil, malformed(n, construct, "primary")
	}

	c := n.Child(0)
	switch ruleOf(c) {
	case syntax.RuleLiteral:
		return literal(c)

	case syntax.RuleIdentifier:
		name, err := identifier(c, construct)
		if err != nil {
			return nil, err
		}
		return at(c.Pos, &ast.Ident{Name: name}), nil

	case syntax.RuleArrayIndex:
		if c.Len() != 2 {
			return nil, malformed(c, "array index", "array_index(identifier, expr)")
		}
		name, err := identifier(c.Child(0), "array index")
		if err != nil {
			return nil, err
		}
		index, err := b.expr(c.Child(1))
		if err != nil {
			return nil, err
		}
		return at(c.Pos, &ast.IndexExpr{Name: name, Index: index}), nil

	case syntax.RuleFunctionCall:
		name, args, err := b.call(c, "function call")
		if err != nil {
			return nil, err
		}
		return at(c.Pos, &ast.CallExpr{Name: name, Args: args}), nil

	case syntax.RuleArrayLiteral:
		lit := at(c.Pos, &ast.ArrayLit{})
		switch c.Len() {
		case 0:
		case 1:
			elems, err := b.exprList(c.Child(0), "array literal")
			if err != nil {
				return nil, err
			}
			lit.Elems = elems
		default:
			return nil, malformed(c, "array literal", "array_literal([expr_list])")
		}
		return lit, nil

	case syntax.RuleLenExpr:
		if c.Len() != 1 {
			return nil, malformed(c, "len expression", "len_expr(expr)")
		}
		x, err := b.expr(c.Child(0))
		if err != nil {
			return nil, err
		}
		return at(c.Pos, &ast.LenExpr{X: x}), nil

	case syntax.RuleParenExpr:
		if c.Len() != 1 {
			return nil, malformed(c, "parenthesized expression", "paren_expr(expr)")
		}
		return b.expr(c.Child(0))
	}

	return nil, malformed(c, construct,
		"literal, identifier, array_index, function_call, array_literal, len_expr or paren_expr")
}

// call builds identifier expr_list? for call statements and call
// expressions alike.
func (b *builder) call(n *syntax.Node, construct string) (string, []ast.Expr, error) {
	if n.Len() != 1 && n.Len() != 2 {
		return "", nil, malformed(n, construct, n.Rule.String()+"(identifier, [expr_list])")
	}
	name, err := identifier(n.Child(0), construct)
	if err != nil {
		return "", nil, err
	}
	if n.Len() == 1 {
		return name, nil, nil
	}
	args, err := b.exprList(n.Child(1), construct)
	if err != nil {
		return "", nil, err
	}
	return name, args, nil
}

func (b *builder) exprList(n *syntax.Node, construct string) ([]ast.Expr, error) {
	if n == nil || n.Rule != syntax.RuleExprList || n.Len() == 0 {
		return nil, malformed(n, construct, "expr_list")
	}
	list := make([]ast.Expr, 0, n.Len())
	for _, c := range n.Children {
		x, err := b.expr(c)
		if err != nil {
			return nil, err
		}
		list = append(list, x)
	}
	return list, nil
}

// ----------------------------------------------------------------------------
// Literals

// literal converts the matched text of a literal leaf.
func literal(n *syntax.Node) (ast.Expr, error) {
	c := n.Child(0)
	if n.Len() != 1 || c == nil || !c.Rule.IsLeaf() {
		return nil, malformed(n, "literal", "literal(int_lit | char_lit | bool_lit | string_lit)")
	}

	switch c.Rule {
	case syntax.RuleIntLit:
		v, err := strconv.ParseInt(c.Text, 10, 64)
		if err != nil {
			return nil, conversionError(c, "integer literal", err)
		}
		return at(c.Pos, &ast.IntLit{Value: v}), nil

	case syntax.RuleCharLit:
		r, size := utf8.DecodeRuneInString(c.Text)
		if size == 0 || (r == utf8.RuneError && size == 1) {
			return nil, conversionError(c, "char literal", errEmptyChar)
		}
		return at(c.Pos, &ast.CharLit{Value: r}), nil

	case syntax.RuleBoolLit:
		var v bool
		switch c.Text {
		case "true":
			v = true
		case "false":
		default:
			return nil, conversionError(c, "bool literal", errNotBool)
		}
		return at(c.Pos, &ast.BoolLit{Value: v}), nil

	case syntax.RuleStringLit:
		return at(c.Pos, &ast.StringLit{Value: c.Text}), nil
	}

	return nil, malformed(c, "literal", "int_lit, char_lit, bool_lit or string_lit")
}

var (
	errEmptyChar = errors.New("no valid character")
	errNotBool   = errors.New("not true or false")
)

func conversionError(n *syntax.Node, construct string, err error) *Error {
	return &Error{
		Kind:      LiteralConversion,
		Pos:       n.Pos,
		Construct: construct,
		Actual:    n.Text,
		Err:       err,
	}
}
