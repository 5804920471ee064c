package nabla

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/vito/nabla/pkg/hm"
)

// formattingOps are presentational wrappers: they render their first
// argument differently without changing its type.
var formattingOps = map[string]bool{
	"mathbf":     true,
	"mathrm":     true,
	"mathit":     true,
	"mathcal":    true,
	"mathbb":     true,
	"mathfrak":   true,
	"boldsymbol": true,
	"text":       true,
	"hat":        true,
	"bar":        true,
	"tilde":      true,
	"vec":        true,
	"dot":        true,
	"ddot":       true,
	"overline":   true,
	"underline":  true,
	"subscript":  true,
	"subsup":     true,
}

// matrixLiteralOps are the delimiter variants of a matrix literal. The
// first two arguments carry the row and column counts as constants;
// the rest are the entries.
var matrixLiteralOps = map[string]bool{
	"matrix":  true,
	"pmatrix": true,
	"bmatrix": true,
	"vmatrix": true,
	"Bmatrix": true,
}

// session is one inference run. It owns the fresh-variable counter, the
// accumulated substitution, and the object context; nothing is shared
// between sessions, so concurrent checks never interfere.
type session struct {
	reg   *Registry
	ctx   Context
	subs  hm.Subs
	count int
	ops   []string
}

func newSession(reg *Registry, ctx Context) *session {
	return &session{
		reg:  reg,
		ctx:  ctx,
		subs: hm.NewSubs(),
	}
}

// Fresh allocates the next type variable for this session.
func (s *session) Fresh() hm.Variable {
	v := hm.Variable(s.count)
	s.count++
	return v
}

// infer assigns a type to an expression, extending the session
// substitution as it goes. The first error aborts the walk.
func (s *session) infer(expr Expression) (hm.Type, error) {
	switch e := expr.(type) {
	case Const:
		return ScalarType(), nil

	case Object:
		if t, ok := s.ctx.Get(e.Name); ok {
			return s.subs.Apply(t), nil
		}
		// An unknown object gets a fresh variable shared by every
		// later occurrence of the same name.
		v := s.Fresh()
		s.ctx = s.ctx.Bind(e.Name, v)
		return v, nil

	case Placeholder:
		// Deliberately per occurrence: two placeholders are
		// independent even when their hints coincide.
		return s.Fresh(), nil

	case List:
		elems := make([]hm.Type, len(e.Items))
		for i, item := range e.Items {
			t, err := s.infer(item)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return s.subs.Apply(hm.Product{Elems: elems}), nil

	case Operation:
		return s.inferOperation(e)
	}
	return nil, errors.New("expression variant is unhandled")
}

func (s *session) inferOperation(e Operation) (hm.Type, error) {
	s.ops = append(s.ops, e.Name)

	switch {
	case formattingOps[e.Name]:
		// Decorations type as what they decorate. Extra arguments
		// (subscripts and the like) are inferred but do not affect
		// the result.
		if len(e.Args) == 0 {
			return ScalarType(), nil
		}
		first, err := s.infer(e.Args[0])
		if err != nil {
			return nil, err
		}
		for _, arg := range e.Args[1:] {
			if _, err := s.infer(arg); err != nil {
				return nil, err
			}
		}
		return s.subs.Apply(first), nil

	case (e.Name == "equals" || e.Name == "not_equals") && len(e.Args) == 2:
		// An equation is typed as its right-hand side, the shape
		// being defined or asserted.
		if _, err := s.infer(e.Args[0]); err != nil {
			return nil, err
		}
		return s.infer(e.Args[1])

	case matrixLiteralOps[e.Name]:
		return s.inferMatrixLiteral(e)
	}

	argTypes := make([]hm.Type, len(e.Args))
	for i, arg := range e.Args {
		t, err := s.infer(arg)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}
	for i := range argTypes {
		argTypes[i] = s.subs.Apply(argTypes[i])
	}

	if !s.reg.HasOperation(e.Name) {
		return nil, UnboundOperationError{Op: e.Name}
	}
	cands := s.reg.SignaturesFor(e.Name, len(e.Args))
	if len(cands) == 0 {
		return nil, ArityMismatchError{
			Op:       e.Name,
			Expected: s.reg.Arities(e.Name),
			Found:    len(e.Args),
		}
	}

	// First registered match wins. A dimension conflict or an
	// unresolvable parameter seen along the way beats the generic
	// no-match error if every candidate fails.
	var dimErr, unresolvedErr error
	for _, cand := range cands {
		ret, subs, err := s.interpret(e.Name, cand, argTypes)
		if err == nil {
			s.subs = subs
			return ret, nil
		}
		var dim DimensionMismatchError
		if dimErr == nil && errors.As(err, &dim) {
			dimErr = err
		}
		var unresolved UnresolvedTypeParameterError
		if unresolvedErr == nil && errors.As(err, &unresolved) {
			unresolvedErr = err
		}
	}
	if dimErr != nil {
		return nil, dimErr
	}
	if unresolvedErr != nil {
		return nil, unresolvedErr
	}
	return nil, NoMatchingImplementationError{Op: e.Name, ArgTypes: argTypes}
}

// inferMatrixLiteral types a written-out matrix. Entries must share a
// type; the dimensions come from the leading row and column counts.
func (s *session) inferMatrixLiteral(e Operation) (hm.Type, error) {
	if len(e.Args) < 2 {
		return nil, ArityMismatchError{Op: e.Name, Expected: []int{2}, Found: len(e.Args)}
	}
	rows, err := constNat(e.Args[0])
	if err != nil {
		return nil, err
	}
	cols, err := constNat(e.Args[1])
	if err != nil {
		return nil, err
	}

	entries := e.Args[2:]
	if len(entries) > 0 && len(entries) != rows*cols {
		return nil, errors.New(
			"matrix literal entry count does not match its dimensions")
	}

	elem := hm.Type(s.Fresh())
	for _, entry := range entries {
		t, inferErr := s.infer(entry)
		if inferErr != nil {
			return nil, inferErr
		}
		subs, unifyErr := hm.Unify(elem, t, s.subs)
		if unifyErr != nil {
			return nil, unifyErr
		}
		s.subs = subs
	}
	return s.subs.Apply(MatrixType(rows, cols, elem)), nil
}

func constNat(expr Expression) (int, error) {
	c, ok := expr.(Const)
	if !ok {
		return 0, errors.New("matrix literal dimensions must be constants")
	}
	n, err := strconv.Atoi(strings.TrimSpace(c.Text))
	if err != nil || n < 0 {
		return 0, errors.New("matrix literal dimensions must be natural numbers")
	}
	return n, nil
}
