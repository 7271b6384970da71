package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// field prints a labelled child one level deeper.
func (p *printer) field(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) list(label string, xs []Expr) {
	if len(xs) == 0 {
		return
	}
	p.printf("%s:\n", label)
	p.indent++
	for _, x := range xs {
		p.print(x)
	}
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		for _, u := range n.Uses {
			p.print(u)
		}
		for _, d := range n.Globals {
			p.print(d)
		}
		for _, f := range n.Funcs {
			p.print(f)
		}
		p.indent--

	case *UseStmt:
		p.printf("UseStmt %s %s\n", n.Name, n.pos)

	case *Function:
		p.printf("Function %s %s\n", n.Name, n.pos)
		p.indent++
		p.printf("Result: %s\n", n.Result)
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, prm := range n.Params {
				p.print(prm)
			}
			p.indent--
		}
		if n.Body != nil {
			p.field("Body", n.Body)
		}
		p.indent--

	case *Param:
		p.printf("%s %s\n", n.Type, n.Name)

	case *Declaration:
		p.printf("Declaration %s\n", n.pos)
		p.indent++
		p.printf("Type: %s\n", n.Type)
		p.printf("Names: %s\n", strings.Join(n.Names, ", "))
		p.list("Values", n.Values)
		p.indent--

	case *AssignStmt:
		p.printf("AssignStmt %s %s\n", n.Name, n.pos)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *Block:
		p.printf("Block %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		if n.Then != nil {
			p.field("Then", n.Then)
		}
		if n.Else != nil {
			p.field("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		if n.Body != nil {
			p.field("Body", n.Body)
		}
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *CallStmt:
		p.printf("CallStmt %s %s\n", n.Name, n.pos)
		p.indent++
		p.list("Args", n.Args)
		p.indent--

	case *IntLit:
		p.printf("IntLit %d %s\n", n.Value, n.pos)

	case *BoolLit:
		p.printf("BoolLit %t %s\n", n.Value, n.pos)

	case *CharLit:
		p.printf("CharLit %q %s\n", n.Value, n.pos)

	case *StringLit:
		p.printf("StringLit %q %s\n", n.Value, n.pos)

	case *Ident:
		p.printf("Ident %s %s\n", n.Name, n.pos)

	case *IndexExpr:
		p.printf("IndexExpr %s %s\n", n.Name, n.pos)
		p.indent++
		p.field("Index", n.Index)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s %s\n", n.Name, n.pos)
		p.indent++
		p.list("Args", n.Args)
		p.indent--

	case *ArrayLit:
		p.printf("ArrayLit %s\n", n.pos)
		p.indent++
		p.list("Elems", n.Elems)
		p.indent--

	case *LenExpr:
		p.printf("LenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *UnaryExpr:
		p.printf("UnaryExpr %s %s\n", n.Op.Name(), n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *BinaryExpr:
		p.printf("BinaryExpr %s %s\n", n.Op.Name(), n.pos)
		p.indent++
		p.print(n.X)
		p.print(n.Y)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

// ExprString renders x as a fully parenthesised prefix expression,
// e.g. (+ a (* b 2)). Calls render as (call f a b), indexing as
// (index xs i) and array literals as [a b].
func ExprString(x Expr) string {
	var b strings.Builder
	writeExpr(&b, x)
	return b.String()
}

func writeExpr(b *strings.Builder, x Expr) {
	switch x := x.(type) {
	case nil:
		b.WriteString("<nil>")
	case *IntLit:
		fmt.Fprintf(b, "%d", x.Value)
	case *BoolLit:
		fmt.Fprintf(b, "%t", x.Value)
	case *CharLit:
		fmt.Fprintf(b, "%q", x.Value)
	case *StringLit:
		fmt.Fprintf(b, "%q", x.Value)
	case *Ident:
		b.WriteString(x.Name)
	case *IndexExpr:
		b.WriteString("(index " + x.Name + " ")
		writeExpr(b, x.Index)
		b.WriteByte(')')
	case *CallExpr:
		b.WriteString("(call " + x.Name)
		for _, a := range x.Args {
			b.WriteByte(' ')
			writeExpr(b, a)
		}
		b.WriteByte(')')
	case *ArrayLit:
		b.WriteByte('[')
		for i, e := range x.Elems {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeExpr(b, e)
		}
		b.WriteByte(']')
	case *LenExpr:
		b.WriteString("(len ")
		writeExpr(b, x.X)
		b.WriteByte(')')
	case *UnaryExpr:
		b.WriteString("(" + x.Op.String() + " ")
		writeExpr(b, x.X)
		b.WriteByte(')')
	case *BinaryExpr:
		b.WriteString("(" + x.Op.String() + " ")
		writeExpr(b, x.X)
		b.WriteByte(' ')
		writeExpr(b, x.Y)
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<%T>", x)
	}
}
