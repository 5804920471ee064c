package nabla

import (
	"fmt"
	"strings"
)

// TypeExpr is a type expression as written in a structure or
// implements declaration. It is syntax: the signature interpreter
// turns it into hm types, allocating fresh variables for parameters.
type TypeExpr interface {
	isTypeExpr()
	fmt.Stringer
}

// Named refers to a type by name: a builtin, a registered structure, or
// a type parameter in scope.
type Named struct {
	Name string
}

// Parametric applies a type constructor to arguments, as in
// Matrix(m, n, T).
type Parametric struct {
	Name string
	Args []TypeExpr
}

// Arrow is a function type. Chains associate to the right.
type Arrow struct {
	Domain   TypeExpr
	Codomain TypeExpr
}

// Tuple groups types, used for multi-argument domains.
type Tuple struct {
	Elems []TypeExpr
}

// Dim is a natural-number literal in a type-argument position.
type Dim struct {
	Value int
}

func (Named) isTypeExpr()      {}
func (Parametric) isTypeExpr() {}
func (Arrow) isTypeExpr()      {}
func (Tuple) isTypeExpr()      {}
func (Dim) isTypeExpr()        {}

func (t Named) String() string { return t.Name }

func (t Parametric) String() string {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", t.Name, strings.Join(args, ", "))
}

func (t Arrow) String() string {
	dom := t.Domain.String()
	if _, nested := t.Domain.(Arrow); nested {
		dom = "(" + dom + ")"
	}
	return dom + " → " + t.Codomain.String()
}

func (t Tuple) String() string {
	elems := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.String()
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

func (t Dim) String() string { return fmt.Sprintf("%d", t.Value) }

// Ty is shorthand for a Named type expression.
func Ty(name string) Named { return Named{Name: name} }

// App is shorthand for a Parametric type expression.
func App(name string, args ...TypeExpr) Parametric {
	return Parametric{Name: name, Args: args}
}

// Fn builds a right-associated arrow chain from parameter types and a
// return type.
func Fn(types ...TypeExpr) TypeExpr {
	if len(types) == 0 {
		panic("Fn requires at least a return type")
	}
	out := types[len(types)-1]
	for i := len(types) - 2; i >= 0; i-- {
		out = Arrow{Domain: types[i], Codomain: out}
	}
	return out
}

// Kind classifies a type parameter: an ordinary type, or a natural
// number occupying a dimension slot.
type Kind int

const (
	KindType Kind = iota
	KindNat
)

func (k Kind) String() string {
	if k == KindNat {
		return "Nat"
	}
	return "Type"
}

// TypeParam is a parameter of a structure declaration.
type TypeParam struct {
	Name string
	Kind Kind
}

// OperationDef declares an operation inside a structure or an
// implements block, with its full signature as written.
type OperationDef struct {
	Name      string
	Signature TypeExpr
}

// Constraint restricts a type argument in a where clause to types
// supporting a structure.
type Constraint struct {
	Param     string
	Structure string
}

// StructureDef declares an algebraic structure: a named bundle of
// operation signatures over type parameters.
type StructureDef struct {
	Name       string
	Params     []TypeParam
	Operations []OperationDef
	Extends    []TypeExpr
	Over       TypeExpr
}

// ImplementsDef declares that concrete type arguments implement a
// structure, optionally refining or adding operation signatures.
type ImplementsDef struct {
	Structure  string
	TypeArgs   []TypeExpr
	Over       TypeExpr
	Where      []Constraint
	Operations []OperationDef
}

// Decl is a declaration loadable into a Registry.
type Decl interface {
	isDecl()
}

func (*StructureDef) isDecl()  {}
func (*ImplementsDef) isDecl() {}

// Signature is an operation signature split into parameter types and a
// return type, the form the interpreter consumes.
type Signature struct {
	Params []TypeExpr
	Return TypeExpr
}

// Arity is the number of arguments the signature accepts.
func (s Signature) Arity() int { return len(s.Params) }

func (s Signature) String() string {
	if len(s.Params) == 0 {
		return s.Return.String()
	}
	parts := make([]string, 0, len(s.Params)+1)
	for _, p := range s.Params {
		parts = append(parts, p.String())
	}
	parts = append(parts, s.Return.String())
	return strings.Join(parts, " → ")
}

// SplitSignature uncurries a written signature. Arrow chains yield one
// parameter per domain; a lone tuple domain spreads into one parameter
// per element, so (A, B) → C and A → B → C both take two arguments.
func SplitSignature(sig TypeExpr) Signature {
	var params []TypeExpr
	cur := sig
	for {
		arrow, ok := cur.(Arrow)
		if !ok {
			break
		}
		params = append(params, arrow.Domain)
		cur = arrow.Codomain
	}
	if len(params) == 1 {
		if tuple, ok := params[0].(Tuple); ok {
			params = tuple.Elems
		}
	}
	return Signature{Params: params, Return: cur}
}
