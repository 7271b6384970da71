package syntax

import (
	"strconv"
	"strings"
)

// Rule identifies the grammar production that matched a concrete parse
// tree node. The set is closed: the tree builder handles every rule it can
// meet at a given position and treats anything else as a malformed tree.
type Rule uint8

const (
	RuleInvalid Rule = iota

	// Top level
	RuleProgram      // (use_stmt | function_decl | global_decl)*
	RuleUseStmt      // "use" identifier ";"
	RuleGlobalDecl   // declaration
	RuleFunctionDecl // type identifier "(" param_list? ")" block

	// Declarations and types
	RuleDeclaration    // decl_type identifier_list (assign expr_list)? semi
	RuleDeclType       // type
	RuleType           // primitive_type | void_type | array_type
	RulePrimitiveType  // int_type | bool_type | char_type | string_type
	RuleArrayType      // type "[" "]"
	RuleVoidType       // "void"
	RuleIntType        // "int"
	RuleBoolType       // "bool"
	RuleCharType       // "char"
	RuleStringType     // "string"
	RuleIdentifierList // identifier ("," identifier)*
	RuleExprList       // expr ("," expr)*
	RuleAssign         // "="
	RuleSemi           // ";"
	RuleParamList      // param ("," param)*
	RuleParam          // type identifier

	// Statements
	RuleBlock      // "{" statement* "}"
	RuleStatement  // one of the statement forms
	RuleIfStmt     // "if" expr block ("else" block)?
	RuleWhileStmt  // "while" expr block
	RuleReturnStmt // "return" expr? ";"
	RuleCallStmt   // identifier "(" expr_list? ")" ";"
	RuleAssignStmt // identifier "=" expr ";"

	// Expressions
	RuleExpr          // unary_expr | binary_expr | primary
	RuleUnaryExpr     // unop expr
	RuleBinaryExpr    // primary binop expr
	RulePrimary       // literal | len_expr | array_literal | paren_expr | function_call | array_index | identifier
	RuleLiteral       // int_lit | char_lit | bool_lit | string_lit
	RuleIntLit        // 42
	RuleCharLit       // 'a'
	RuleBoolLit       // true | false
	RuleStringLit     // "text"
	RuleIdentifier    // name
	RuleArrayIndex    // identifier "[" expr "]"
	RuleFunctionCall  // identifier "(" expr_list? ")"
	RuleArrayLiteral  // "[" expr_list? "]"
	RuleLenExpr       // "len" "(" expr ")"
	RuleParenExpr     // "(" expr ")"
	RuleBinOp         // binary operator token
	RuleUnOp          // unary operator token

	ruleCount
)

var ruleNames = [...]string{
	RuleInvalid:        "invalid",
	RuleProgram:        "program",
	RuleUseStmt:        "use_stmt",
	RuleGlobalDecl:     "global_decl",
	RuleFunctionDecl:   "function_decl",
	RuleDeclaration:    "declaration",
	RuleDeclType:       "decl_type",
	RuleType:           "type",
	RulePrimitiveType:  "primitive_type",
	RuleArrayType:      "array_type",
	RuleVoidType:       "void_type",
	RuleIntType:        "int_type",
	RuleBoolType:       "bool_type",
	RuleCharType:       "char_type",
	RuleStringType:     "string_type",
	RuleIdentifierList: "identifier_list",
	RuleExprList:       "expr_list",
	RuleAssign:         "assign",
	RuleSemi:           "semi",
	RuleParamList:      "param_list",
	RuleParam:          "param",
	RuleBlock:          "block",
	RuleStatement:      "statement",
	RuleIfStmt:         "if_stmt",
	RuleWhileStmt:      "while_stmt",
	RuleReturnStmt:     "return_stmt",
	RuleCallStmt:       "call_stmt",
	RuleAssignStmt:     "assign_stmt",
	RuleExpr:           "expr",
	RuleUnaryExpr:      "unary_expr",
	RuleBinaryExpr:     "binary_expr",
	RulePrimary:        "primary",
	RuleLiteral:        "literal",
	RuleIntLit:         "int_lit",
	RuleCharLit:        "char_lit",
	RuleBoolLit:        "bool_lit",
	RuleStringLit:      "string_lit",
	RuleIdentifier:     "identifier",
	RuleArrayIndex:     "array_index",
	RuleFunctionCall:   "function_call",
	RuleArrayLiteral:   "array_literal",
	RuleLenExpr:        "len_expr",
	RuleParenExpr:      "paren_expr",
	RuleBinOp:          "binop",
	RuleUnOp:           "unop",
}

// String returns the grammar name of the rule.
func (r Rule) String() string {
	if r < ruleCount {
		return ruleNames[r]
	}
	return "rule(" + strconv.Itoa(int(r)) + ")"
}

// IsLeaf reports whether nodes of rule r carry matched text instead of
// children.
func (r Rule) IsLeaf() bool {
	switch r {
	case RuleIntType, RuleBoolType, RuleCharType, RuleStringType, RuleVoidType,
		RuleAssign, RuleSemi,
		RuleIntLit, RuleCharLit, RuleBoolLit, RuleStringLit,
		RuleIdentifier, RuleBinOp, RuleUnOp:
		return true
	}
	return false
}

// Node is a concrete parse tree node. Interior nodes hold their matched
// sub-rules in source order; leaves hold the matched text. For char and
// string literals the text is the decoded content between the quotes.
type Node struct {
	Rule     Rule
	Text     string
	Pos      Pos
	Children []*Node
}

// NewNode returns an interior node.
func NewNode(rule Rule, pos Pos, children ...*Node) *Node {
	return &Node{Rule: rule, Pos: pos, Children: children}
}

// NewLeaf returns a leaf node holding text.
func NewLeaf(rule Rule, pos Pos, text string) *Node {
	return &Node{Rule: rule, Pos: pos, Text: text}
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Child returns the i'th child, or nil if there is none.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Shape describes the node and its immediate children, e.g.
// "declaration(decl_type, identifier_list, semi)". Leaves render as
// rule "text". It is used in diagnostics about unexpected trees.
func (n *Node) Shape() string {
	if n == nil {
		return "<nothing>"
	}
	if n.Rule.IsLeaf() {
		return n.Rule.String() + " " + strconv.Quote(n.Text)
	}
	var b strings.Builder
	b.WriteString(n.Rule.String())
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(", ")
		}
		if c == nil {
			b.WriteString("<nil>")
			continue
		}
		b.WriteString(c.Rule.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (n *Node) add(c *Node) {
	n.Children = append(n.Children, c)
}
