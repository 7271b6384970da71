package ast

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/chi/internal/syntax"
)

func ident(name string) *Ident { return &Ident{Name: name} }

func intLit(v int64) *IntLit { return &IntLit{Value: v} }

// sample builds:
//
//	use io;
//	int[] xs = [1, 2];
//	int f(int a) { if a < 2 { return a; } else { g(!a); } while a > 0 { a = a - 1; } return -len(xs) *>> xs[0]; }
func sample() *Program {
	body := &Block{Stmts: []Stmt{
		&IfStmt{
			Cond: &BinaryExpr{Op: Lt, X: ident("a"), Y: intLit(2)},
			Then: &Block{Stmts: []Stmt{&ReturnStmt{Result: ident("a")}}},
			Else: &Block{Stmts: []Stmt{&CallStmt{Name: "g", Args: []Expr{&UnaryExpr{Op: Not, X: ident("a")}}}}},
		},
		&WhileStmt{
			Cond: &BinaryExpr{Op: Gt, X: ident("a"), Y: intLit(0)},
			Body: &Block{Stmts: []Stmt{&AssignStmt{Name: "a", Value: &BinaryExpr{Op: Sub, X: ident("a"), Y: intLit(1)}}}},
		},
		&ReturnStmt{Result: &UnaryExpr{Op: Neg, X: &BinaryExpr{
			Op: HMul,
			X:  &LenExpr{X: ident("xs")},
			Y:  &IndexExpr{Name: "xs", Index: intLit(0)},
		}}},
	}}
	prog := &Program{
		Uses: []*UseStmt{{Name: "io"}},
		Globals: []*Declaration{{
			Type:   NewArray(IntType),
			Names:  []string{"xs"},
			Values: []Expr{&ArrayLit{Elems: []Expr{intLit(1), intLit(2)}}},
		}},
		Funcs: []*Function{{
			Result: IntType,
			Name:   "f",
			Params: []*Param{{Type: IntType, Name: "a"}},
			Body:   body,
		}},
	}
	prog.SetPos(syntax.NewPos("s.chi", 1, 1))
	return prog
}

func TestTypes(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{IntType, "int"},
		{BoolType, "bool"},
		{CharType, "char"},
		{StringType, "string"},
		{VoidType, "void"},
		{NewArray(CharType), "char[]"},
		{NewArray(NewArray(IntType)), "int[][]"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	if !Identical(NewArray(NewArray(IntType)), NewArray(NewArray(&Basic{Int}))) {
		t.Error("int[][] should be identical to itself")
	}
	if Identical(NewArray(IntType), NewArray(BoolType)) {
		t.Error("int[] and bool[] should differ")
	}
	if Identical(NewArray(IntType), IntType) {
		t.Error("int[] and int should differ")
	}
	if !IsVoid(VoidType) || IsVoid(IntType) || IsVoid(NewArray(VoidType)) {
		t.Error("IsVoid mismatch")
	}
}

func TestDeepArrayType(t *testing.T) {
	const dims = 10000
	var typ Type = IntType
	for i := 0; i < dims; i++ {
		typ = NewArray(typ)
	}
	if want := "int" + strings.Repeat("[]", dims); typ.String() != want {
		t.Errorf("String() has length %d, want %d", len(typ.String()), len(want))
	}
	if !Identical(typ, typ) {
		t.Error("deep array type should be identical to itself")
	}
	if Identical(typ, NewArray(typ)) || Identical(NewArray(typ), typ) {
		t.Error("array types of different depth should differ")
	}
}

func TestOperatorTables(t *testing.T) {
	tokens := map[string]string{
		"+": "Add", "-": "Sub", "*": "Mul", "/": "Div", "%": "Mod",
		"==": "Eq", "!=": "Neq", "<": "Lt", "<=": "Lte", ">": "Gt", ">=": "Gte",
		"&": "And", "|": "Or", "*>>": "HMul",
	}
	if len(tokens) != len(Bops) {
		t.Fatalf("%d tokens, %d operators", len(tokens), len(Bops))
	}
	for tok, name := range tokens {
		op, ok := LookupBop(tok)
		if !ok {
			t.Errorf("LookupBop(%q) failed", tok)
			continue
		}
		if op.Name() != name || op.String() != tok {
			t.Errorf("LookupBop(%q) = %s/%s, want %s", tok, op.Name(), op, name)
		}
	}
	if _, ok := LookupBop("^"); ok {
		t.Error("LookupBop(^) should fail")
	}

	for tok, name := range map[string]string{"-": "Neg", "!": "Not"} {
		op, ok := LookupUop(tok)
		if !ok || op.Name() != name || op.String() != tok {
			t.Errorf("LookupUop(%q) = %v, %v", tok, op, ok)
		}
	}
	if _, ok := LookupUop("+"); ok {
		t.Error("LookupUop(+) should fail")
	}
}

func TestExprString(t *testing.T) {
	tests := []struct {
		x    Expr
		want string
	}{
		{ident("a"), "a"},
		{&BinaryExpr{Op: Add, X: ident("a"), Y: ident("b")}, "(+ a b)"},
		{&BinaryExpr{Op: Mul, X: ident("a"), Y: &BinaryExpr{Op: Add, X: ident("b"), Y: intLit(2)}}, "(* a (+ b 2))"},
		{&UnaryExpr{Op: Neg, X: intLit(1)}, "(- 1)"},
		{&CallExpr{Name: "f", Args: []Expr{ident("x"), &CharLit{Value: 'c'}}}, "(call f x 'c')"},
		{&ArrayLit{Elems: []Expr{&BoolLit{Value: true}, &StringLit{Value: "s"}}}, `[true "s"]`},
		{&IndexExpr{Name: "xs", Index: &LenExpr{X: ident("ys")}}, "(index xs (len ys))"},
		{nil, "<nil>"},
	}
	for _, tt := range tests {
		if got := ExprString(tt.x); got != tt.want {
			t.Errorf("ExprString = %q, want %q", got, tt.want)
		}
	}
}

func TestWalkVisitsEveryVariant(t *testing.T) {
	seen := map[string]bool{}
	Inspect(sample(), func(n Node) bool {
		seen[typeName(n)] = true
		return true
	})

	want := []string{
		"Program", "UseStmt", "Function", "Param", "Declaration",
		"Block", "IfStmt", "WhileStmt", "ReturnStmt", "CallStmt", "AssignStmt",
		"BinaryExpr", "UnaryExpr", "Ident", "IntLit", "IndexExpr", "ArrayLit", "LenExpr",
	}
	for _, name := range want {
		if !seen[name] {
			t.Errorf("Walk did not visit %s", name)
		}
	}
}

func TestWalkPrune(t *testing.T) {
	var count int
	Walk(sample(), func(n Node) bool {
		count++
		_, isFunc := n.(*Function)
		return !isFunc
	})
	// Program, UseStmt, Declaration, ArrayLit, 2 IntLit, Function
	if count != 7 {
		t.Errorf("visited %d nodes, want 7", count)
	}
}

func TestNilBlocks(t *testing.T) {
	body := &Block{Stmts: []Stmt{
		&IfStmt{Cond: ident("ok")},
		&WhileStmt{Cond: ident("ok")},
	}}

	var visited []string
	Inspect(body, func(n Node) bool {
		visited = append(visited, typeName(n))
		return true
	})
	if got := strings.Join(visited, " "); got != "Block IfStmt Ident WhileStmt Ident" {
		t.Errorf("visited %s", got)
	}

	var buf bytes.Buffer
	Fprint(&buf, body)
	if strings.Contains(buf.String(), "Then:") || strings.Contains(buf.String(), "Body:") {
		t.Errorf("Fprint printed an absent block:\n%s", buf.String())
	}

	buf.Reset()
	if err := FprintJSON(&buf, body); err != nil {
		t.Fatalf("FprintJSON: %v", err)
	}
	if strings.Contains(buf.String(), `"then"`) || strings.Contains(buf.String(), `"body"`) {
		t.Errorf("FprintJSON wrote an absent block:\n%s", buf.String())
	}
}

func TestFprint(t *testing.T) {
	prog := &Program{
		Globals: []*Declaration{{
			Type:   IntType,
			Names:  []string{"x", "y"},
			Values: []Expr{intLit(5), &BinaryExpr{Op: Add, X: ident("a"), Y: ident("b")}},
		}},
	}
	var buf bytes.Buffer
	Fprint(&buf, prog)
	want := `Program -
  Declaration -
    Type: int
    Names: x, y
    Values:
      IntLit 5 -
      BinaryExpr Add -
        Ident a -
        Ident b -
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFprintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintJSON(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc["type"] != "Program" || doc["pos"] != "s.chi:1:1" {
		t.Errorf("root = %v %v", doc["type"], doc["pos"])
	}
	globals := doc["globals"].([]interface{})
	g := globals[0].(map[string]interface{})
	if g["decltype"] != "int[]" {
		t.Errorf("decltype = %v, want int[]", g["decltype"])
	}
	funcs := doc["funcs"].([]interface{})
	if f := funcs[0].(map[string]interface{}); f["name"] != "f" || f["result"] != "int" {
		t.Errorf("func = %v", f)
	}
}

func TestFprintYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintYAML(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	uses := doc["uses"].([]interface{})
	if u := uses[0].(map[string]interface{}); u["name"] != "io" {
		t.Errorf("use = %v", u)
	}
	if !strings.Contains(buf.String(), "op: HMul") {
		t.Errorf("YAML output lacks HMul operator:\n%s", buf.String())
	}
}

func typeName(n Node) string {
	switch n.(type) {
	case *Program:
		return "Program"
	case *UseStmt:
		return "UseStmt"
	case *Function:
		return "Function"
	case *Param:
		return "Param"
	case *Declaration:
		return "Declaration"
	case *Block:
		return "Block"
	case *IfStmt:
		return "IfStmt"
	case *WhileStmt:
		return "WhileStmt"
	case *ReturnStmt:
		return "ReturnStmt"
	case *CallStmt:
		return "CallStmt"
	case *AssignStmt:
		return "AssignStmt"
	case *BinaryExpr:
		return "BinaryExpr"
	case *UnaryExpr:
		return "UnaryExpr"
	case *Ident:
		return "Ident"
	case *IntLit:
		return "IntLit"
	case *BoolLit:
		return "BoolLit"
	case *CharLit:
		return "CharLit"
	case *StringLit:
		return "StringLit"
	case *IndexExpr:
		return "IndexExpr"
	case *CallExpr:
		return "CallExpr"
	case *ArrayLit:
		return "ArrayLit"
	case *LenExpr:
		return "LenExpr"
	}
	return "?"
}
