package nabla

import (
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/vito/nabla/pkg/hm"
)

// builtinTypes maps written names of ground types to their canonical
// constructor. Constants infer to Scalar, so the real-number spellings
// all collapse onto it.
var builtinTypes = map[string]string{
	"ℝ":        "Scalar",
	"Real":     "Scalar",
	"Scalar":   "Scalar",
	"ℂ":        "ℂ",
	"Complex":  "ℂ",
	"ℤ":        "ℤ",
	"Int":      "ℤ",
	"ℚ":        "ℚ",
	"Rational": "ℚ",
	"ℕ":        "ℕ",
	"Nat":      "ℕ",
	"𝔹":        "Bool",
	"Bool":     "Bool",
	"String":   "String",
	"Unit":     "Unit",
}

// ScalarType is the type of numeric constants.
func ScalarType() hm.Data {
	return hm.Data{TypeName: "Scalar", Constructor: "Scalar"}
}

// NamedType builds the ground type for a written type name.
func NamedType(name string) hm.Type {
	if name == "String" {
		return hm.String{}
	}
	ctor := name
	if canonical, ok := builtinTypes[name]; ok {
		ctor = canonical
	}
	return hm.Data{TypeName: ctor, Constructor: ctor}
}

// MatrixType builds Matrix(rows, cols, elem).
func MatrixType(rows, cols int, elem hm.Type) hm.Data {
	return hm.Data{
		TypeName:    "Matrix",
		Constructor: "Matrix",
		Args:        []hm.Type{hm.NatValue(rows), hm.NatValue(cols), elem},
	}
}

// VectorType builds Vector(n, elem).
func VectorType(n int, elem hm.Type) hm.Data {
	return hm.Data{
		TypeName:    "Vector",
		Constructor: "Vector",
		Args:        []hm.Type{hm.NatValue(n), elem},
	}
}

// instantiation tracks the fresh variables allocated while turning one
// candidate signature into hm types. Parameter names map to the same
// variable everywhere they appear in that signature; a second call for
// the same candidate gets entirely new variables.
type instantiation struct {
	vars  map[string]hm.Variable
	kinds map[string]Kind
}

func (s *session) instantiate(cand Candidate) ([]hm.Type, hm.Type, *instantiation) {
	inst := &instantiation{
		vars:  map[string]hm.Variable{},
		kinds: map[string]Kind{},
	}
	params := make([]hm.Type, len(cand.Sig.Params))
	for i, p := range cand.Sig.Params {
		params[i] = s.instantiateExpr(p, cand, inst)
	}
	ret := s.instantiateExpr(cand.Sig.Return, cand, inst)
	return params, ret, inst
}

func (s *session) instantiateExpr(expr TypeExpr, cand Candidate, inst *instantiation) hm.Type {
	switch t := expr.(type) {
	case Named:
		if kind, declared := cand.Params[t.Name]; declared {
			return inst.fresh(s, t.Name, kind)
		}
		if _, builtin := builtinTypes[t.Name]; !builtin && isTypeVarName(t.Name) {
			// A free single-letter name acts as a signature-local
			// type variable, as in head: List(T) → T.
			return inst.fresh(s, t.Name, KindType)
		}
		return NamedType(t.Name)
	case Parametric:
		args := make([]hm.Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = s.instantiateExpr(arg, cand, inst)
		}
		return hm.Data{TypeName: t.Name, Constructor: t.Name, Args: args}
	case Arrow:
		return hm.Function{
			Domain:   s.instantiateExpr(t.Domain, cand, inst),
			Codomain: s.instantiateExpr(t.Codomain, cand, inst),
		}
	case Tuple:
		elems := make([]hm.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = s.instantiateExpr(e, cand, inst)
		}
		return hm.Product{Elems: elems}
	case Dim:
		return hm.NatValue(t.Value)
	}
	panic("unreachable type expression")
}

func (inst *instantiation) fresh(s *session, name string, kind Kind) hm.Variable {
	if v, ok := inst.vars[name]; ok {
		return v
	}
	v := s.Fresh()
	inst.vars[name] = v
	inst.kinds[name] = kind
	return v
}

func isTypeVarName(name string) bool {
	r, size := utf8.DecodeRuneInString(name)
	return size == len(name) && unicode.IsUpper(r) && unicode.IsLetter(r)
}

// interpret checks one candidate signature against already inferred
// argument types. On success it returns the resolved return type and
// the extended substitution; the session substitution is untouched, so
// a failed candidate leaves no trace and dispatch can try the next.
func (s *session) interpret(op string, cand Candidate, argTypes []hm.Type) (hm.Type, hm.Subs, error) {
	params, ret, inst := s.instantiate(cand)

	subs := s.subs
	for i := range params {
		next, err := hm.Unify(params[i], argTypes[i], subs)
		if err != nil {
			var dim hm.DimensionMismatchError
			if errors.As(err, &dim) {
				return nil, nil, DimensionMismatchError{
					Op:        op,
					Parameter: inst.dimensionName(subs, dim.Expected, params[i]),
					Expected:  dim.Expected,
					Found:     dim.Found,
				}
			}
			return nil, nil, err
		}
		subs = next
	}

	resolved := subs.Apply(ret)

	// Argument variables may legitimately flow into the return type;
	// only parameters the arguments never touched are unresolvable.
	leaked := hm.VarSet{}
	for _, at := range argTypes {
		leaked = leaked.Union(subs.Apply(at).FreeTypeVars())
	}
	retVars := resolved.FreeTypeVars()
	for name, v := range inst.vars {
		if _, bound := subs.Get(v); bound {
			continue
		}
		if retVars.Contains(v) && !leaked.Contains(v) {
			return nil, nil, UnresolvedTypeParameterError{Op: op, Parameter: name}
		}
	}

	slog.Debug("signature matched",
		"op", op,
		"source", cand.Source,
		"signature", cand.Sig.String(),
		"result", resolved.String())
	return resolved, subs, nil
}

// dimensionName recovers which declared dimension parameter carried
// the expected value, for the error message. Only parameters occurring
// in the failing position are considered; when several qualify, the
// one whose variable was allocated first (first appearance in the
// signature) wins, keeping the message deterministic.
func (inst *instantiation) dimensionName(subs hm.Subs, expected int, at hm.Type) string {
	within := at.FreeTypeVars()
	name := ""
	first := hm.Variable(0)
	for candidate, v := range inst.vars {
		if inst.kinds[candidate] != KindNat || !within.Contains(v) {
			continue
		}
		bound, ok := subs.Get(v)
		if !ok {
			continue
		}
		if nat, isNat := bound.(hm.NatValue); !isNat || int(nat) != expected {
			continue
		}
		if name == "" || v < first {
			name = candidate
			first = v
		}
	}
	return name
}
