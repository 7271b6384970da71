// Package build turns the concrete parse tree of a Chi source file into a
// typed ast.Program.
//
// The builder trusts the grammar for structure: a binary expression is
// always primary OP expr, so operators nest to the right and there are no
// precedence levels to resolve. Every other tree shape is reported as a
// MalformedTree error. Building stops at the first error.
package build

import (
	"io"
	"strings"

	"github.com/you-not-fish/chi/internal/ast"
	"github.com/you-not-fish/chi/internal/syntax"
)

// DefaultMaxDepth is the nesting limit used when Config.MaxDepth is unset.
const DefaultMaxDepth = syntax.DefaultMaxDepth

// Config controls parsing and building. A nil *Config means defaults.
type Config struct {
	// MaxDepth bounds the nesting of blocks and expressions.
	MaxDepth int
}

func (c *Config) maxDepth() int {
	if c == nil || c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// Parse reads one Chi source file and returns its program.
// Lexical and grammar errors are returned as *syntax.SyntaxError, tree
// building errors as *Error.
func Parse(filename string, src io.Reader, conf *Config) (*ast.Program, error) {
	p := syntax.NewParser(filename, src, nil)
	p.SetMaxDepth(conf.maxDepth())
	root := p.Parse()
	if err := p.FirstError(); err != nil {
		return nil, err
	}
	return Build(root, conf)
}

// ParseString parses src with the default configuration.
func ParseString(src string) (*ast.Program, error) {
	return Parse("", strings.NewReader(src), nil)
}

// ParseExpr parses a single expression.
func ParseExpr(src string, conf *Config) (ast.Expr, error) {
	p := syntax.NewParser("", strings.NewReader(src), nil)
	p.SetMaxDepth(conf.maxDepth())
	root := p.ParseExpr()
	if err := p.FirstError(); err != nil {
		return nil, err
	}
	b := newBuilder(conf)
	return b.expr(root)
}

// Build converts a concrete parse tree rooted at a program node.
func Build(root *syntax.Node, conf *Config) (*ast.Program, error) {
	b := newBuilder(conf)
	return b.program(root)
}

type builder struct {
	depth    int
	maxDepth int
}

func newBuilder(conf *Config) *builder {
	return &builder{maxDepth: conf.maxDepth()}
}

// enter bumps the nesting depth for n; callers pair it with leave.
func (b *builder) enter(n *syntax.Node, construct string) error {
	b.depth++
	if b.depth > b.maxDepth {
		return &Error{Kind: TooDeep, Pos: n.Pos, Construct: construct, Limit: b.maxDepth}
	}
	return nil
}

func (b *builder) leave() { b.depth-- }

type positioner interface {
	SetPos(syntax.Pos)
}

// at sets the position of a freshly built node and returns it.
func at[N positioner](pos syntax.Pos, n N) N {
	n.SetPos(pos)
	return n
}

// ----------------------------------------------------------------------------
// Top level

func (b *builder) program(n *syntax.Node) (*ast.Program, error) {
	if n == nil || n.Rule != syntax.RuleProgram {
		return nil, malformed(n, "program", "program")
	}

	prog := at(n.Pos, &ast.Program{})
	for _, c := range n.Children {
		if c == nil {
			return nil, malformed(n, "program", "use_stmt, global_decl or function_decl")
		}
		switch c.Rule {
		case syntax.RuleUseStmt:
			u, err := b.useStmt(c)
			if err != nil {
				return nil, err
			}
			prog.Uses = append(prog.Uses, u)

		case syntax.RuleGlobalDecl:
			if c.Len() != 1 {
				return nil, malformed(c, "global declaration", "global_decl(declaration)")
			}
			d, err := b.declaration(c.Child(0))
			if err != nil {
				return nil, err
			}
			prog.Globals = append(prog.Globals, d)

		case syntax.RuleFunctionDecl:
			f, err := b.function(c)
			if err != nil {
				return nil, err
			}
			prog.Funcs = append(prog.Funcs, f)

		default:
			return nil, malformed(c, "program", "use_stmt, global_decl or function_decl")
		}
	}
	return prog, nil
}

func (b *builder) useStmt(n *syntax.Node) (*ast.UseStmt, error) {
	if n.Len() != 1 {
		return nil, malformed(n, "use statement", "use_stmt(identifier)")
	}
	name, err := identifier(n.Child(0), "use statement")
	if err != nil {
		return nil, err
	}
	return at(n.Pos, &ast.UseStmt{Name: name}), nil
}

// function builds type identifier param_list? block.
func (b *builder) function(n *syntax.Node) (*ast.Function, error) {
	const construct = "function declaration"
	const shape = "function_decl(type, identifier, [param_list], block)"

	if n.Len() != 3 && n.Len() != 4 {
		return nil, malformed(n, construct, shape)
	}

	result, err := b.typ(n.Child(0), construct, true)
	if err != nil {
		return nil, err
	}
	name, err := identifier(n.Child(1), construct)
	if err != nil {
		return nil, err
	}

	fn := at(n.Pos, &ast.Function{Result: result, Name: name})

	if n.Len() == 4 {
		list := n.Child(2)
		if list == nil || list.Rule != syntax.RuleParamList || list.Len() == 0 {
			return nil, malformed(list, construct, "param_list")
		}
		for _, pn := range list.Children {
			p, err := b.param(pn)
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, p)
		}
	}

	fn.Body, err = b.block(n.Child(n.Len() - 1))
	if err != nil {
		return nil, err
	}
	return fn, nil
}

func (b *builder) param(n *syntax.Node) (*ast.Param, error) {
	if n == nil || n.Rule != syntax.RuleParam || n.Len() != 2 {
		return nil, malformed(n, "parameter", "param(type, identifier)")
	}
	t, err := b.typ(n.Child(0), "parameter", false)
	if err != nil {
		return nil, err
	}
	name, err := identifier(n.Child(1), "parameter")
	if err != nil {
		return nil, err
	}
	return at(n.Pos, &ast.Param{Type: t, Name: name}), nil
}

// ----------------------------------------------------------------------------
// Declarations and types

// declaration builds decl_type identifier_list (assign expr_list)? semi.
func (b *builder) declaration(n *syntax.Node) (*ast.Declaration, error) {
	const construct = "declaration"
	const shape = "declaration(decl_type, identifier_list, [assign, expr_list], semi)"

	if n == nil || n.Rule != syntax.RuleDeclaration || (n.Len() != 3 && n.Len() != 5) {
		return nil, malformed(n, construct, shape)
	}

	dt := n.Child(0)
	if dt == nil || dt.Rule != syntax.RuleDeclType || dt.Len() != 1 {
		return nil, malformed(dt, construct, "decl_type(type)")
	}
	t, err := b.typ(dt.Child(0), construct, false)
	if err != nil {
		return nil, err
	}

	ids := n.Child(1)
	if ids == nil || ids.Rule != syntax.RuleIdentifierList || ids.Len() == 0 {
		return nil, malformed(ids, construct, "identifier_list")
	}
	names := make([]string, 0, ids.Len())
	for _, id := range ids.Children {
		name, err := identifier(id, construct)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	d := at(n.Pos, &ast.Declaration{Type: t, Names: names})

	if n.Len() == 5 {
		if a := n.Child(2); a == nil || a.Rule != syntax.RuleAssign {
			return nil, malformed(a, construct, "assign")
		}
		d.Values, err = b.exprList(n.Child(3), construct)
		if err != nil {
			return nil, err
		}
	}

	if s := n.Child(n.Len() - 1); s == nil || s.Rule != syntax.RuleSemi {
		return nil, malformed(s, construct, "semi")
	}

	if len(d.Values) != 0 && len(d.Values) != len(d.Names) {
		return nil, &Error{
			Kind:      ArityMismatch,
			Pos:       n.Pos,
			Construct: construct,
			IDs:       len(d.Names),
			Exprs:     len(d.Values),
		}
	}
	return d, nil
}

// typ builds a type node. Void is accepted only where allowVoid is set,
// which is the function result position.
func (b *builder) typ(n *syntax.Node, construct string, allowVoid bool) (ast.Type, error) {
	if n == nil || n.Rule != syntax.RuleType || n.Len() != 1 {
		return nil, malformed(n, construct, "type")
	}

	c := n.Child(0)
	switch ruleOf(c) {
	case syntax.RulePrimitiveType:
		if c.Len() != 1 {
			return nil, malformed(c, construct, "primitive_type(int_type | bool_type | char_type | string_type)")
		}
		switch k := c.Child(0); ruleOf(k) {
		case syntax.RuleIntType:
			return ast.IntType, nil
		case syntax.RuleBoolType:
			return ast.BoolType, nil
		case syntax.RuleCharType:
			return ast.CharType, nil
		case syntax.RuleStringType:
			return ast.StringType, nil
		default:
			return nil, malformed(k, construct, "int_type, bool_type, char_type or string_type")
		}

	case syntax.RuleVoidType:
		if !allowVoid {
			return nil, malformed(c, construct, "a non-void type (void is only valid as a function result)")
		}
		return ast.VoidType, nil

	case syntax.RuleArrayType:
		if c.Len() != 1 {
			return nil, malformed(c, construct, "array_type(type)")
		}
		if err := b.enter(c, construct); err != nil {
			return nil, err
		}
		defer b.leave()
		elem, err := b.typ(c.Child(0), construct, false)
		if err != nil {
			return nil, err
		}
		return ast.NewArray(elem), nil
	}

	return nil, malformed(c, construct, "primitive_type, array_type or void_type")
}

func ruleOf(n *syntax.Node) syntax.Rule {
	if n == nil {
		return syntax.RuleInvalid
	}
	return n.Rule
}

// identifier returns the name held by an identifier leaf.
func identifier(n *syntax.Node, construct string) (string, error) {
	if n == nil || n.Rule != syntax.RuleIdentifier || n.Text == "" {
		return "", malformed(n, construct, "identifier")
	}
	return n.Text, nil
}
