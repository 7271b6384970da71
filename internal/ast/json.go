package ast

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toDoc(node))
}

// FprintYAML writes the same document as FprintJSON in YAML form.
func FprintYAML(w io.Writer, node Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDoc(node)); err != nil {
		return err
	}
	return enc.Close()
}

// toDoc converts a node into maps and slices that both encoders accept.
func toDoc(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{
			"type":    "Program",
			"pos":     n.pos.String(),
			"uses":    mapSlice(n.Uses, func(u *UseStmt) interface{} { return toDoc(u) }),
			"globals": mapSlice(n.Globals, func(d *Declaration) interface{} { return toDoc(d) }),
			"funcs":   mapSlice(n.Funcs, func(f *Function) interface{} { return toDoc(f) }),
		}

	case *UseStmt:
		return map[string]interface{}{
			"type": "UseStmt",
			"pos":  n.pos.String(),
			"name": n.Name,
		}

	case *Function:
		m := map[string]interface{}{
			"type":   "Function",
			"pos":    n.pos.String(),
			"name":   n.Name,
			"result": typeString(n.Result),
			"params": mapSlice(n.Params, func(p *Param) interface{} { return toDoc(p) }),
		}
		if n.Body != nil {
			m["body"] = toDoc(n.Body)
		}
		return m

	case *Param:
		return map[string]interface{}{
			"type":      "Param",
			"pos":       n.pos.String(),
			"name":      n.Name,
			"paramtype": typeString(n.Type),
		}

	case *Declaration:
		return map[string]interface{}{
			"type":     "Declaration",
			"pos":      n.pos.String(),
			"decltype": typeString(n.Type),
			"names":    append([]string{}, n.Names...),
			"values":   exprDocs(n.Values),
		}

	case *AssignStmt:
		return map[string]interface{}{
			"type":  "AssignStmt",
			"pos":   n.pos.String(),
			"name":  n.Name,
			"value": toDoc(n.Value),
		}

	case *Block:
		return map[string]interface{}{
			"type":  "Block",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toDoc(s) }),
		}

	case *IfStmt:
		m := map[string]interface{}{
			"type": "IfStmt",
			"pos":  n.pos.String(),
			"cond": toDoc(n.Cond),
		}
		if n.Then != nil {
			m["then"] = toDoc(n.Then)
		}
		if n.Else != nil {
			m["else"] = toDoc(n.Else)
		}
		return m

	case *WhileStmt:
		m := map[string]interface{}{
			"type": "WhileStmt",
			"pos":  n.pos.String(),
			"cond": toDoc(n.Cond),
		}
		if n.Body != nil {
			m["body"] = toDoc(n.Body)
		}
		return m

	case *ReturnStmt:
		m := map[string]interface{}{
			"type": "ReturnStmt",
			"pos":  n.pos.String(),
		}
		if n.Result != nil {
			m["result"] = toDoc(n.Result)
		}
		return m

	case *CallStmt:
		return map[string]interface{}{
			"type": "CallStmt",
			"pos":  n.pos.String(),
			"name": n.Name,
			"args": exprDocs(n.Args),
		}

	case *IntLit:
		return literalDoc("IntLit", n.pos.String(), n.Value)
	case *BoolLit:
		return literalDoc("BoolLit", n.pos.String(), n.Value)
	case *CharLit:
		return literalDoc("CharLit", n.pos.String(), string(n.Value))
	case *StringLit:
		return literalDoc("StringLit", n.pos.String(), n.Value)

	case *Ident:
		return map[string]interface{}{
			"type": "Ident",
			"pos":  n.pos.String(),
			"name": n.Name,
		}

	case *IndexExpr:
		return map[string]interface{}{
			"type":  "IndexExpr",
			"pos":   n.pos.String(),
			"name":  n.Name,
			"index": toDoc(n.Index),
		}

	case *CallExpr:
		return map[string]interface{}{
			"type": "CallExpr",
			"pos":  n.pos.String(),
			"name": n.Name,
			"args": exprDocs(n.Args),
		}

	case *ArrayLit:
		return map[string]interface{}{
			"type":  "ArrayLit",
			"pos":   n.pos.String(),
			"elems": exprDocs(n.Elems),
		}

	case *LenExpr:
		return map[string]interface{}{
			"type": "LenExpr",
			"pos":  n.pos.String(),
			"x":    toDoc(n.X),
		}

	case *UnaryExpr:
		return map[string]interface{}{
			"type": "UnaryExpr",
			"pos":  n.pos.String(),
			"op":   n.Op.Name(),
			"x":    toDoc(n.X),
		}

	case *BinaryExpr:
		return map[string]interface{}{
			"type": "BinaryExpr",
			"pos":  n.pos.String(),
			"op":   n.Op.Name(),
			"x":    toDoc(n.X),
			"y":    toDoc(n.Y),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func literalDoc(typ, pos string, value interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":  typ,
		"pos":   pos,
		"value": value,
	}
}

func exprDocs(xs []Expr) []interface{} {
	return mapSlice(xs, func(x Expr) interface{} { return toDoc(x) })
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
