package nabla

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stdRegistry(t *testing.T) *Registry {
	t.Helper()
	return stdChecker(t).Registry()
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&StructureDef{Name: "Monoid"}))
	err := r.Register(&StructureDef{Name: "Monoid"})
	var dup DuplicateNameError
	require.ErrorAs(t, err, &dup)
}

func TestRegisterImplementsDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&StructureDef{
		Name:   "Numeric",
		Params: []TypeParam{{Name: "N"}},
		Operations: []OperationDef{
			{Name: "abs", Signature: Fn(Ty("N"), Ty("N"))},
		},
	}))
	require.NoError(t, r.RegisterImplements(&ImplementsDef{
		Structure: "Numeric", TypeArgs: []TypeExpr{Ty("ℝ")},
	}))

	err := r.RegisterImplements(&ImplementsDef{
		Structure: "Numeric", TypeArgs: []TypeExpr{Ty("ℝ")},
	})
	var dup DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Numeric(ℝ)", dup.Name)

	// The rejected registration must not have doubled the candidates.
	assert.Len(t, r.SignaturesFor("abs", 1), 2)
	assert.Equal(t, []string{"ℝ"}, r.Implementors("Numeric"))

	// A different instantiation of the same structure is fine.
	require.NoError(t, r.RegisterImplements(&ImplementsDef{
		Structure: "Numeric", TypeArgs: []TypeExpr{Ty("ℂ")},
	}))
}

func TestRegisterImplementsUnknownStructure(t *testing.T) {
	r := NewRegistry()
	err := r.RegisterImplements(&ImplementsDef{Structure: "Monoid", TypeArgs: []TypeExpr{Ty("ℝ")}})
	var unknown UnknownStructureError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Monoid", unknown.Name)
}

func TestRegisterImplementsArgCount(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&StructureDef{
		Name:   "Pair",
		Params: []TypeParam{{Name: "A"}, {Name: "B"}},
	}))
	err := r.RegisterImplements(&ImplementsDef{Structure: "Pair", TypeArgs: []TypeExpr{Ty("ℝ")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 type argument(s)")
}

func TestImplementsSpecializesSignatures(t *testing.T) {
	r := stdRegistry(t)
	cands := r.SignaturesFor("abs", 1)
	require.NotEmpty(t, cands)
	assert.True(t, cands[0].Generic)
	assert.Equal(t, "Numeric", cands[0].Source)
	// The ℝ implementation comes after the generic template and is
	// fully concrete.
	require.True(t, len(cands) >= 3)
	assert.Equal(t, "Numeric(ℝ)", cands[1].Source)
	assert.Equal(t, "ℝ → ℝ", cands[1].Sig.String())
}

func TestDependencyClosure(t *testing.T) {
	r := stdRegistry(t)

	closure, err := r.DependencyClosure("Field")
	require.NoError(t, err)
	assert.Equal(t, []string{"Group", "Ring", "Field"}, closure)

	closure, err = r.DependencyClosure("VectorSpace")
	require.NoError(t, err)
	assert.Equal(t, []string{"Group", "Ring", "Field", "VectorSpace"}, closure)

	_, err = r.DependencyClosure("Nope")
	var unknown UnknownStructureError
	require.ErrorAs(t, err, &unknown)
}

func TestDependencyClosureCycle(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&StructureDef{
		Name:    "A",
		Extends: []TypeExpr{Ty("B")},
	}))
	require.NoError(t, r.Register(&StructureDef{
		Name:    "B",
		Extends: []TypeExpr{Ty("A")},
	}))
	_, err := r.DependencyClosure("A")
	var cyclic CyclicDependencyError
	require.ErrorAs(t, err, &cyclic)
	assert.Equal(t, []string{"A", "B", "A"}, cyclic.Path)
}

func TestImplementors(t *testing.T) {
	r := stdRegistry(t)
	assert.Equal(t, []string{"ℝ", "ℂ"}, r.Implementors("Numeric"))
	assert.Equal(t, []string{"ℝ", "ℂ", "ℤ"}, r.Implementors("Arithmetic"))
	assert.Empty(t, r.Implementors("Matrix"))
}

func TestTypesSupporting(t *testing.T) {
	r := stdRegistry(t)
	assert.Equal(t, []string{"ℝ", "ℂ"}, r.TypesSupporting("abs"))
	assert.Contains(t, r.TypesSupporting("plus"), "ℤ")
	assert.Empty(t, r.TypesSupporting("transpose"))
	assert.Empty(t, r.TypesSupporting("nonsense"))
}

func TestStructuresAndOperationsForType(t *testing.T) {
	r := stdRegistry(t)

	structures := r.StructuresForType("ℝ")
	assert.Contains(t, structures, "Numeric")
	assert.Contains(t, structures, "Arithmetic")
	assert.Contains(t, structures, "Transcendental")

	ops := r.OperationsForType("ℝ")
	assert.Contains(t, ops, "abs")
	assert.Contains(t, ops, "plus")
	assert.Contains(t, ops, "sin")
	assert.NotContains(t, ops, "transpose")
}

func TestArities(t *testing.T) {
	r := stdRegistry(t)
	assert.Equal(t, []int{2}, r.Arities("plus"))
	assert.Equal(t, []int{1}, r.Arities("transpose"))
	assert.Empty(t, r.Arities("nonsense"))
}

func TestSuggestOperation(t *testing.T) {
	r := stdRegistry(t)
	assert.Contains(t, r.SuggestOperation("transpse"), "transpose")
	assert.Empty(t, r.SuggestOperation("zzzzzzzzzz"))
}

func TestOperationSignatures(t *testing.T) {
	r := stdRegistry(t)
	sigs := r.OperationSignatures("trace")
	require.Len(t, sigs, 1)
	assert.Equal(t, "Matrix: Matrix(n, n, T) → T", sigs[0])
}

func TestVectorSpaceDeclaresItsField(t *testing.T) {
	r := stdRegistry(t)
	def, ok := r.Structure("VectorSpace")
	require.True(t, ok)
	require.Len(t, def.Params, 2)
	assert.Equal(t, "V", def.Params[0].Name)
	assert.Equal(t, "F", def.Params[1].Name)
	assert.Equal(t, "Field", typeExprName(def.Over))
}

func TestStructureNames(t *testing.T) {
	r := stdRegistry(t)
	names := r.StructureNames()
	assert.Equal(t, "Numeric", names[0])
	assert.Contains(t, names, "Matrix")
	assert.Contains(t, names, "Promotes")
}
