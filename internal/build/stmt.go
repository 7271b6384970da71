package build

import (
	"github.com/you-not-fish/chi/internal/ast"
	"github.com/you-not-fish/chi/internal/syntax"
)

func (b *builder) block(n *syntax.Node) (*ast.Block, error) {
	if n == nil || n.Rule != syntax.RuleBlock {
		return nil, malformed(n, "block", "block")
	}
	if err := b.enter(n, "block"); err != nil {
		return nil, err
	}
	defer b.leave()

	blk := at(n.Pos, &ast.Block{})
	for _, c := range n.Children {
		s, err := b.statement(c)
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, s)
	}
	return blk, nil
}

func (b *builder) statement(n *syntax.Node) (ast.Stmt, error) {
	if n == nil || n.Rule != syntax.RuleStatement || n.Len() != 1 {
		return nil, malformed(n, "statement", "statement")
	}

	c := n.Child(0)
	switch ruleOf(c) {
	case syntax.RuleDeclaration:
		return b.declaration(c)
	case syntax.RuleBlock:
		return b.block(c)
	case syntax.RuleIfStmt:
		return b.ifStmt(c)
	case syntax.RuleWhileStmt:
		return b.whileStmt(c)
	case syntax.RuleReturnStmt:
		return b.returnStmt(c)
	case syntax.RuleCallStmt:
		return b.callStmt(c)
	case syntax.RuleAssignStmt:
		return b.assignStmt(c)
	}
	return nil, malformed(c, "statement",
		"declaration, block, if_stmt, while_stmt, return_stmt, call_stmt or assign_stmt")
}

// ifStmt builds expr block (block)?.
func (b *builder) ifStmt(n *syntax.Node) (*ast.IfStmt, error) {
	if n.Len() != 2 && n.Len() != 3 {
		return nil, malformed(n, "if statement", "if_stmt(expr, block, [block])")
	}
	cond, err := b.expr(n.Child(0))
	if err != nil {
		return nil, err
	}
	then, err := b.block(n.Child(1))
	if err != nil {
		return nil, err
	}
	s := at(n.Pos, &ast.IfStmt{Cond: cond, Then: then})
	if n.Len() == 3 {
		if s.Else, err = b.block(n.Child(2)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (b *builder) whileStmt(n *syntax.Node) (*ast.WhileStmt, error) {
	if n.Len() != 2 {
		return nil, malformed(n, "while statement", "while_stmt(expr, block)")
	}
	cond, err := b.expr(n.Child(0))
	if err != nil {
		return nil, err
	}
	body, err := b.block(n.Child(1))
	if err != nil {
		return nil, err
	}
	return at(n.Pos, &ast.WhileStmt{Cond: cond, Body: body}), nil
}

func (b *builder) returnStmt(n *syntax.Node) (*ast.ReturnStmt, error) {
	s := at(n.Pos, &ast.ReturnStmt{})
	switch n.Len() {
	case 0:
		return s, nil
	case 1:
		x, err := b.expr(n.Child(0))
		if err != nil {
			return nil, err
		}
		s.Result = x
		return s, nil
	}
	return nil, malformed(n, "return statement", "return_stmt([expr])")
}

func (b *builder) callStmt(n *syntax.Node) (*ast.CallStmt, error) {
	name, args, err := b.call(n, "call statement")
	if err != nil {
		return nil, err
	}
	return at(n.Pos, &ast.CallStmt{Name: name, Args: args}), nil
}

func (b *builder) assignStmt(n *syntax.Node) (*ast.AssignStmt, error) {
	if n.Len() != 2 {
		return nil, malformed(n, "assignment", "assign_stmt(identifier, expr)")
	}
	name, err := identifier(n.Child(0), "assignment")
	if err != nil {
		return nil, err
	}
	x, err := b.expr(n.Child(1))
	if err != nil {
		return nil, err
	}
	return at(n.Pos, &ast.AssignStmt{Name: name, Value: x}), nil
}
