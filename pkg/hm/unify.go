package hm

import (
	"fmt"
)

// TypeMismatchError reports incompatible constructors or kinds during
// unification.
type TypeMismatchError struct {
	Left  Type
	Right Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// OccursError reports an attempt to bind a variable to a type
// containing itself, which would produce an infinite type.
type OccursError struct {
	Var Variable
	In  Type
}

func (e OccursError) Error() string {
	return fmt.Sprintf("occurs check failed: %s occurs in %s", e.Var, e.In)
}

// DimensionMismatchError reports two conflicting natural-number type
// arguments. Dimensions unify by exact equality, never structurally.
type DimensionMismatchError struct {
	Expected int
	Found    int
}

func (e DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, found %d", e.Expected, e.Found)
}

// Unify reconciles two types under an existing substitution, returning
// an extended substitution or a typed error. The input substitution is
// not modified; unification is symmetric up to variable naming.
func Unify(a, b Type, subs Subs) (Subs, error) {
	out := subs.Clone()
	if out == nil {
		out = NewSubs()
	}
	if err := unify(a, b, out); err != nil {
		return nil, err
	}
	return out, nil
}

func unify(a, b Type, subs Subs) error {
	a = subs.Apply(a)
	b = subs.Apply(b)

	if av, ok := a.(Variable); ok {
		return bindVar(av, b, subs)
	}
	if bv, ok := b.(Variable); ok {
		return bindVar(bv, a, subs)
	}

	switch at := a.(type) {
	case Data:
		bt, ok := b.(Data)
		if !ok || at.Constructor != bt.Constructor || len(at.Args) != len(bt.Args) {
			return TypeMismatchError{Left: a, Right: b}
		}
		// Pairwise, left to right: later arguments see bindings made
		// by earlier ones.
		for i := range at.Args {
			if err := unify(at.Args[i], bt.Args[i], subs); err != nil {
				return err
			}
		}
		return nil

	case NatValue:
		bt, ok := b.(NatValue)
		if !ok {
			return TypeMismatchError{Left: a, Right: b}
		}
		if at != bt {
			return DimensionMismatchError{Expected: int(at), Found: int(bt)}
		}
		return nil

	case Function:
		bt, ok := b.(Function)
		if !ok {
			return TypeMismatchError{Left: a, Right: b}
		}
		if err := unify(at.Domain, bt.Domain, subs); err != nil {
			return err
		}
		return unify(at.Codomain, bt.Codomain, subs)

	case Product:
		bt, ok := b.(Product)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return TypeMismatchError{Left: a, Right: b}
		}
		for i := range at.Elems {
			if err := unify(at.Elems[i], bt.Elems[i], subs); err != nil {
				return err
			}
		}
		return nil

	case String:
		if _, ok := b.(String); ok {
			return nil
		}
		return TypeMismatchError{Left: a, Right: b}
	}

	return TypeMismatchError{Left: a, Right: b}
}

// bindVar records tv → t, closing every existing binding over the new
// one so the substitution stays idempotent.
func bindVar(tv Variable, t Type, subs Subs) error {
	if other, ok := t.(Variable); ok && other == tv {
		return nil
	}
	if t.FreeTypeVars().Contains(tv) {
		return OccursError{Var: tv, In: t}
	}
	binding := Subs{tv: t}
	for v, bound := range subs {
		subs[v] = bound.Apply(binding)
	}
	subs[tv] = t
	return nil
}
