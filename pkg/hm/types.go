package hm

import (
	"fmt"
	"strings"
)

// Type is the value domain of the checker: type variables, constructed
// types, natural-number type arguments, function and product types.
type Type interface {
	// Apply rewrites every bound variable using the substitution.
	Apply(Subs) Type
	// FreeTypeVars returns the variables occurring in this type.
	FreeTypeVars() VarSet
	// Eq reports structural equality.
	Eq(Type) bool
	fmt.Stringer
}

// Variable is an unresolved type variable. Ids are allocated from a
// monotonically increasing counter owned by one inference session and
// are never shared across sessions.
type Variable int

func (tv Variable) Apply(subs Subs) Type {
	if t, ok := subs[tv]; ok {
		// Chase chains in case the substitution is mid-construction.
		return t.Apply(subs)
	}
	return tv
}

func (tv Variable) FreeTypeVars() VarSet {
	return VarSet{tv: true}
}

func (tv Variable) Eq(other Type) bool {
	ot, ok := other.(Variable)
	return ok && tv == ot
}

const letters = `abcdefghijklmnopqrstuvwxyz`

func (tv Variable) String() string {
	if int(tv) < len(letters) {
		return string(letters[tv])
	}
	greek := int(tv) - len(letters)
	if greek < 24 {
		return string(rune('α' + greek))
	}
	return fmt.Sprintf("t%d", int(tv))
}

// Data is a concrete or partially concrete constructed type, such as
// Scalar, Matrix(2, 3, ℝ) or Tensor(0, 2, 4, ℝ). Args may contain
// NatValue entries in dimension positions.
type Data struct {
	TypeName    string
	Constructor string
	Args        []Type
}

func (d Data) Apply(subs Subs) Type {
	if len(d.Args) == 0 {
		return d
	}
	args := make([]Type, len(d.Args))
	for i, arg := range d.Args {
		args[i] = arg.Apply(subs)
	}
	return Data{TypeName: d.TypeName, Constructor: d.Constructor, Args: args}
}

func (d Data) FreeTypeVars() VarSet {
	ftvs := VarSet{}
	for _, arg := range d.Args {
		ftvs = ftvs.Union(arg.FreeTypeVars())
	}
	return ftvs
}

func (d Data) Eq(other Type) bool {
	od, ok := other.(Data)
	if !ok || d.Constructor != od.Constructor || len(d.Args) != len(od.Args) {
		return false
	}
	for i := range d.Args {
		if !d.Args[i].Eq(od.Args[i]) {
			return false
		}
	}
	return true
}

func (d Data) String() string {
	if len(d.Args) == 0 {
		return d.Constructor
	}
	args := make([]string, len(d.Args))
	for i, arg := range d.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", d.Constructor, strings.Join(args, ", "))
}

// NatValue is a natural number occupying a type-argument position
// (matrix dimension, tensor rank component). It is a value used at the
// type level, not a type: it unifies only with an identical value or an
// unbound variable.
type NatValue int

func (n NatValue) Apply(Subs) Type      { return n }
func (n NatValue) FreeTypeVars() VarSet { return VarSet{} }

func (n NatValue) Eq(other Type) bool {
	on, ok := other.(NatValue)
	return ok && n == on
}

func (n NatValue) String() string { return fmt.Sprintf("%d", int(n)) }

// Function is the type of function values.
type Function struct {
	Domain   Type
	Codomain Type
}

func NewFnType(domain, codomain Type) Function {
	return Function{Domain: domain, Codomain: codomain}
}

func (f Function) Apply(subs Subs) Type {
	return Function{Domain: f.Domain.Apply(subs), Codomain: f.Codomain.Apply(subs)}
}

func (f Function) FreeTypeVars() VarSet {
	return f.Domain.FreeTypeVars().Union(f.Codomain.FreeTypeVars())
}

func (f Function) Eq(other Type) bool {
	of, ok := other.(Function)
	return ok && f.Domain.Eq(of.Domain) && f.Codomain.Eq(of.Codomain)
}

func (f Function) String() string {
	return fmt.Sprintf("%s → %s", f.Domain, f.Codomain)
}

// Product is a tuple type.
type Product struct {
	Elems []Type
}

func (p Product) Apply(subs Subs) Type {
	elems := make([]Type, len(p.Elems))
	for i, e := range p.Elems {
		elems[i] = e.Apply(subs)
	}
	return Product{Elems: elems}
}

func (p Product) FreeTypeVars() VarSet {
	ftvs := VarSet{}
	for _, e := range p.Elems {
		ftvs = ftvs.Union(e.FreeTypeVars())
	}
	return ftvs
}

func (p Product) Eq(other Type) bool {
	op, ok := other.(Product)
	if !ok || len(p.Elems) != len(op.Elems) {
		return false
	}
	for i := range p.Elems {
		if !p.Elems[i].Eq(op.Elems[i]) {
			return false
		}
	}
	return true
}

func (p Product) String() string {
	elems := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, " × "))
}

// String is the type of text values.
type String struct{}

func (String) Apply(Subs) Type      { return String{} }
func (String) FreeTypeVars() VarSet { return VarSet{} }

func (String) Eq(other Type) bool {
	_, ok := other.(String)
	return ok
}

func (String) String() string { return "String" }

// VarSet is a set of type variables.
type VarSet map[Variable]bool

func (vs VarSet) Contains(tv Variable) bool { return vs[tv] }

func (vs VarSet) Union(other VarSet) VarSet {
	if len(other) == 0 {
		return vs
	}
	out := make(VarSet, len(vs)+len(other))
	for tv := range vs {
		out[tv] = true
	}
	for tv := range other {
		out[tv] = true
	}
	return out
}

// Fresher allocates fresh type variables. Implemented by the inference
// session so that the counter is never process-global.
type Fresher interface {
	Fresh() Variable
}
