package ast

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, u := range n.Uses {
			Walk(u, v)
		}
		for _, d := range n.Globals {
			Walk(d, v)
		}
		for _, f := range n.Funcs {
			Walk(f, v)
		}

	case *Function:
		for _, p := range n.Params {
			Walk(p, v)
		}
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *Declaration:
		walkList(n.Values, v)

	case *AssignStmt:
		Walk(n.Value, v)

	case *Block:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *IfStmt:
		Walk(n.Cond, v)
		if n.Then != nil {
			Walk(n.Then, v)
		}
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *CallStmt:
		walkList(n.Args, v)

	case *UnaryExpr:
		Walk(n.X, v)

	case *BinaryExpr:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *IndexExpr:
		Walk(n.Index, v)

	case *CallExpr:
		walkList(n.Args, v)

	case *ArrayLit:
		walkList(n.Elems, v)

	case *LenExpr:
		Walk(n.X, v)

	// Leaf nodes: UseStmt, Param, Ident, literals
	}
}

func walkList(list []Expr, v Visitor) {
	for _, x := range list {
		Walk(x, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
