package hm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalar() Data {
	return Data{TypeName: "Type", Constructor: "Scalar"}
}

func matrix(m, n int, elem Type) Data {
	return Data{
		TypeName:    "Matrix",
		Constructor: "Matrix",
		Args:        []Type{NatValue(m), NatValue(n), elem},
	}
}

func TestUnifyVariableBinding(t *testing.T) {
	subs, err := Unify(Variable(0), scalar(), NewSubs())
	require.NoError(t, err)
	assert.True(t, subs.Apply(Variable(0)).Eq(scalar()))
}

func TestUnifySameVariableNoChange(t *testing.T) {
	subs, err := Unify(Variable(3), Variable(3), NewSubs())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestUnifyOccursCheck(t *testing.T) {
	infinite := matrix(2, 2, Variable(0))
	_, err := Unify(Variable(0), infinite, NewSubs())
	require.Error(t, err)
	var occurs OccursError
	require.ErrorAs(t, err, &occurs)
	assert.Equal(t, Variable(0), occurs.Var)
}

func TestUnifyDataConstructorMismatch(t *testing.T) {
	vec := Data{TypeName: "Vector", Constructor: "Vector", Args: []Type{NatValue(3), scalar()}}
	_, err := Unify(matrix(2, 3, scalar()), vec, NewSubs())
	var mismatch TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestUnifyNatValueExact(t *testing.T) {
	t.Run("equal dimensions add no bindings", func(t *testing.T) {
		subs, err := Unify(NatValue(2), NatValue(2), NewSubs())
		require.NoError(t, err)
		assert.Empty(t, subs)
	})

	t.Run("unequal dimensions fail with both values", func(t *testing.T) {
		_, err := Unify(NatValue(2), NatValue(3), NewSubs())
		var dim DimensionMismatchError
		require.ErrorAs(t, err, &dim)
		assert.Equal(t, 2, dim.Expected)
		assert.Equal(t, 3, dim.Found)
	})

	t.Run("dimension binds an unbound variable", func(t *testing.T) {
		subs, err := Unify(Variable(0), NatValue(4), NewSubs())
		require.NoError(t, err)
		assert.True(t, subs.Apply(Variable(0)).Eq(NatValue(4)))
	})
}

func TestUnifyThreadsBindingsLeftToRight(t *testing.T) {
	// Matrix(m, m, T) against Matrix(2, 2, Scalar): the second argument
	// sees the binding made by the first.
	pattern := matrix(2, 2, scalar())
	shape := Data{
		TypeName:    "Matrix",
		Constructor: "Matrix",
		Args:        []Type{Variable(0), Variable(0), Variable(1)},
	}
	subs, err := Unify(shape, pattern, NewSubs())
	require.NoError(t, err)
	assert.True(t, subs.Apply(Variable(0)).Eq(NatValue(2)))
	assert.True(t, subs.Apply(Variable(1)).Eq(scalar()))

	// Conflicting dimensions on the same variable fail.
	_, err = Unify(shape, matrix(2, 3, scalar()), NewSubs())
	var dim DimensionMismatchError
	require.ErrorAs(t, err, &dim)
	assert.Equal(t, 2, dim.Expected)
	assert.Equal(t, 3, dim.Found)
}

func TestUnifyFunctionAndProduct(t *testing.T) {
	fn1 := NewFnType(Variable(0), scalar())
	fn2 := NewFnType(scalar(), Variable(1))
	subs, err := Unify(fn1, fn2, NewSubs())
	require.NoError(t, err)
	assert.True(t, subs.Apply(Variable(0)).Eq(scalar()))
	assert.True(t, subs.Apply(Variable(1)).Eq(scalar()))

	p1 := Product{Elems: []Type{scalar(), Variable(2)}}
	p2 := Product{Elems: []Type{Variable(3), String{}}}
	subs, err = Unify(p1, p2, NewSubs())
	require.NoError(t, err)
	assert.True(t, subs.Apply(Variable(2)).Eq(String{}))

	short := Product{Elems: []Type{scalar()}}
	_, err = Unify(p1, short, NewSubs())
	var mismatch TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestUnifySymmetry(t *testing.T) {
	cases := []struct {
		name string
		a, b Type
	}{
		{"var against data", Variable(0), matrix(2, 3, scalar())},
		{"data against data", matrix(2, 3, Variable(0)), matrix(2, 3, scalar())},
		{"nat against nat", NatValue(2), NatValue(3)},
		{"function against data", NewFnType(scalar(), scalar()), scalar()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errAB := Unify(tc.a, tc.b, NewSubs())
			_, errBA := Unify(tc.b, tc.a, NewSubs())
			assert.Equal(t, errAB == nil, errBA == nil)
		})
	}
}

func TestUnifyDoesNotMutateInput(t *testing.T) {
	subs := NewSubs()
	_, err := Unify(Variable(0), scalar(), subs)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestApplyIdempotent(t *testing.T) {
	subs, err := Unify(Variable(0), matrix(2, 3, Variable(1)), NewSubs())
	require.NoError(t, err)
	subs, err = Unify(Variable(1), scalar(), subs)
	require.NoError(t, err)

	ty := NewFnType(Variable(0), Product{Elems: []Type{Variable(1), scalar()}})
	once := subs.Apply(ty)
	twice := subs.Apply(once)
	assert.True(t, once.Eq(twice))
	assert.Empty(t, once.FreeTypeVars())
}

func TestComposeClosesExistingBindings(t *testing.T) {
	old := Subs{Variable(0): matrix(2, 3, Variable(1))}
	composed := old.Compose(Subs{Variable(1): scalar()})
	assert.True(t, composed.Apply(Variable(0)).Eq(matrix(2, 3, scalar())))
	assert.True(t, composed.Apply(Variable(1)).Eq(scalar()))
}
