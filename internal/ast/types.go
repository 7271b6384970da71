package ast

import "strings"

// Type is the declared type of a variable, parameter or function result.
type Type interface {
	String() string
	aType()
}

// BasicKind describes the kind of a basic type.
type BasicKind uint8

const (
	Invalid BasicKind = iota
	Int
	Bool
	Char
	String
	Void
)

var basicNames = [...]string{
	Invalid: "invalid",
	Int:     "int",
	Bool:    "bool",
	Char:    "char",
	String:  "string",
	Void:    "void",
}

// Basic is a primitive type or void.
type Basic struct {
	Kind BasicKind
}

func (b *Basic) String() string {
	if int(b.Kind) < len(basicNames) {
		return basicNames[b.Kind]
	}
	return "invalid"
}

func (*Basic) aType() {}

// Array is Elem[]. Arrays nest.
type Array struct {
	Elem Type
}

func (a *Array) String() string {
	dims := 1
	elem := a.Elem
	for {
		inner, ok := elem.(*Array)
		if !ok {
			break
		}
		dims++
		elem = inner.Elem
	}
	return elem.String() + strings.Repeat("[]", dims)
}

func (*Array) aType() {}

// Predeclared basic types.
var (
	IntType    = &Basic{Int}
	BoolType   = &Basic{Bool}
	CharType   = &Basic{Char}
	StringType = &Basic{String}
	VoidType   = &Basic{Void}
)

// NewArray returns the array type with the given element type.
func NewArray(elem Type) *Array { return &Array{Elem: elem} }

// Identical reports whether x and y are the same type.
func Identical(x, y Type) bool {
	switch x := x.(type) {
	case *Basic:
		y, ok := y.(*Basic)
		return ok && x.Kind == y.Kind
	case *Array:
		for {
			ya, ok := y.(*Array)
			if !ok {
				return false
			}
			xa, ok := x.Elem.(*Array)
			if !ok {
				return Identical(x.Elem, ya.Elem)
			}
			x, y = xa, ya.Elem
		}
	}
	return false
}

// IsVoid reports whether t is void.
func IsVoid(t Type) bool {
	b, ok := t.(*Basic)
	return ok && b.Kind == Void
}
