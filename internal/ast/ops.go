package ast

// Bop is a binary operator.
type Bop uint8

const (
	Add  Bop = iota + 1 // +
	Sub                 // -
	Mul                 // *
	Div                 // /
	Mod                 // %
	HMul                // *>> (high half of the product)
	And                 // &
	Or                  // |
	Eq                  // ==
	Neq                 // !=
	Lt                  // <
	Gt                  // >
	Lte                 // <=
	Gte                 // >=
)

var bopTokens = [...]string{
	Add:  "+",
	Sub:  "-",
	Mul:  "*",
	Div:  "/",
	Mod:  "%",
	HMul: "*>>",
	And:  "&",
	Or:   "|",
	Eq:   "==",
	Neq:  "!=",
	Lt:   "<",
	Gt:   ">",
	Lte:  "<=",
	Gte:  ">=",
}

var bopNames = [...]string{
	Add:  "Add",
	Sub:  "Sub",
	Mul:  "Mul",
	Div:  "Div",
	Mod:  "Mod",
	HMul: "HMul",
	And:  "And",
	Or:   "Or",
	Eq:   "Eq",
	Neq:  "Neq",
	Lt:   "Lt",
	Gt:   "Gt",
	Lte:  "Lte",
	Gte:  "Gte",
}

// String returns the operator's source token.
func (op Bop) String() string {
	if op > 0 && int(op) < len(bopTokens) {
		return bopTokens[op]
	}
	return "?"
}

// Name returns the operator's name, e.g. "Add".
func (op Bop) Name() string {
	if op > 0 && int(op) < len(bopNames) {
		return bopNames[op]
	}
	return "Invalid"
}

// Bops lists every binary operator.
var Bops = []Bop{Add, Sub, Mul, Div, Mod, HMul, And, Or, Eq, Neq, Lt, Gt, Lte, Gte}

// LookupBop maps a binary operator token to its operator.
func LookupBop(tok string) (Bop, bool) {
	for _, op := range Bops {
		if bopTokens[op] == tok {
			return op, true
		}
	}
	return 0, false
}

// Uop is a unary operator.
type Uop uint8

const (
	Neg Uop = iota + 1 // -
	Not                // !
)

// String returns the operator's source token.
func (op Uop) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "!"
	}
	return "?"
}

// Name returns the operator's name, e.g. "Neg".
func (op Uop) Name() string {
	switch op {
	case Neg:
		return "Neg"
	case Not:
		return "Not"
	}
	return "Invalid"
}

// LookupUop maps a unary operator token to its operator.
func LookupUop(tok string) (Uop, bool) {
	switch tok {
	case "-":
		return Neg, true
	case "!":
		return Not, true
	}
	return 0, false
}
