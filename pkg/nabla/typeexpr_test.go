package nabla

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSignatureCurried(t *testing.T) {
	sig := SplitSignature(Fn(Ty("A"), Ty("B"), Ty("C")))
	require.Equal(t, 2, sig.Arity())
	assert.Equal(t, "A", sig.Params[0].String())
	assert.Equal(t, "B", sig.Params[1].String())
	assert.Equal(t, "C", sig.Return.String())
}

func TestSplitSignatureTupleDomain(t *testing.T) {
	sig := SplitSignature(Fn(Tuple{Elems: []TypeExpr{Ty("A"), Ty("B")}}, Ty("C")))
	require.Equal(t, 2, sig.Arity())
	assert.Equal(t, "A", sig.Params[0].String())
	assert.Equal(t, "B", sig.Params[1].String())
}

func TestSplitSignatureConstant(t *testing.T) {
	sig := SplitSignature(Ty("G"))
	assert.Equal(t, 0, sig.Arity())
	assert.Equal(t, "G", sig.Return.String())
}

func TestSplitSignatureTupleAfterArrow(t *testing.T) {
	// A tuple spreads only when it is the sole domain. A curried
	// signature keeps later tuples intact.
	sig := SplitSignature(Fn(Ty("A"), Tuple{Elems: []TypeExpr{Ty("B"), Ty("C")}}, Ty("D")))
	require.Equal(t, 2, sig.Arity())
	assert.Equal(t, "(B, C)", sig.Params[1].String())
}

func TestTypeExprStrings(t *testing.T) {
	assert.Equal(t, "Matrix(m, n, T)", App("Matrix", Ty("m"), Ty("n"), Ty("T")).String())
	assert.Equal(t, "Vector(3, ℝ)", App("Vector", Dim{Value: 3}, Ty("ℝ")).String())
	assert.Equal(t, "A → B", Fn(Ty("A"), Ty("B")).String())
	assert.Equal(t, "(A → B) → C", Arrow{
		Domain:   Arrow{Domain: Ty("A"), Codomain: Ty("B")},
		Codomain: Ty("C"),
	}.String())
	assert.Equal(t, "(A, B)", Tuple{Elems: []TypeExpr{Ty("A"), Ty("B")}}.String())
}

func TestSignatureString(t *testing.T) {
	sig := SplitSignature(Fn(
		Tuple{Elems: []TypeExpr{
			App("Matrix", Ty("m"), Ty("n"), Ty("T")),
			App("Matrix", Ty("n"), Ty("p"), Ty("T")),
		}},
		App("Matrix", Ty("m"), Ty("p"), Ty("T")),
	))
	assert.Equal(t, "Matrix(m, n, T) → Matrix(n, p, T) → Matrix(m, p, T)", sig.String())
}
