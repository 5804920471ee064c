package nabla

// StandardLibrary returns the built-in mathematical structures and
// implementations, in the order they must be loaded.
func StandardLibrary() []Decl {
	n := TypeParam{Name: "n", Kind: KindNat}
	m := TypeParam{Name: "m", Kind: KindNat}
	p := TypeParam{Name: "p", Kind: KindNat}

	realT := Ty("ℝ")
	complexT := Ty("ℂ")
	integer := Ty("ℤ")
	rational := Ty("ℚ")
	natural := Ty("ℕ")
	boolean := Ty("Bool")

	return []Decl{
		// Scalar algebra.
		&StructureDef{
			Name:   "Numeric",
			Params: []TypeParam{{Name: "N"}},
			Operations: []OperationDef{
				{Name: "abs", Signature: Fn(Ty("N"), Ty("N"))},
				{Name: "sign", Signature: Fn(Ty("N"), Ty("N"))},
			},
		},
		&ImplementsDef{Structure: "Numeric", TypeArgs: []TypeExpr{realT}},
		&ImplementsDef{Structure: "Numeric", TypeArgs: []TypeExpr{complexT}},

		&StructureDef{
			Name:   "Arithmetic",
			Params: []TypeParam{{Name: "T"}},
			Operations: []OperationDef{
				{Name: "plus", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, Ty("T"))},
				{Name: "minus", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, Ty("T"))},
				{Name: "times", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, Ty("T"))},
				{Name: "divide", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, Ty("T"))},
				{Name: "negate", Signature: Fn(Ty("T"), Ty("T"))},
				{Name: "power", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, Ty("T"))},
			},
		},
		&ImplementsDef{Structure: "Arithmetic", TypeArgs: []TypeExpr{realT}},
		&ImplementsDef{Structure: "Arithmetic", TypeArgs: []TypeExpr{complexT}},
		&ImplementsDef{Structure: "Arithmetic", TypeArgs: []TypeExpr{integer}},

		&StructureDef{
			Name:   "Ordered",
			Params: []TypeParam{{Name: "T"}},
			Operations: []OperationDef{
				{Name: "less_than", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, boolean)},
				{Name: "greater_than", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, boolean)},
				{Name: "leq", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, boolean)},
				{Name: "geq", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, boolean)},
				{Name: "max", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, Ty("T"))},
				{Name: "min", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("T"), Ty("T")}}, Ty("T"))},
			},
		},
		&ImplementsDef{Structure: "Ordered", TypeArgs: []TypeExpr{realT}},
		&ImplementsDef{Structure: "Ordered", TypeArgs: []TypeExpr{integer}},

		&StructureDef{
			Name:   "Transcendental",
			Params: []TypeParam{{Name: "T"}},
			Operations: []OperationDef{
				{Name: "sin", Signature: Fn(Ty("T"), Ty("T"))},
				{Name: "cos", Signature: Fn(Ty("T"), Ty("T"))},
				{Name: "tan", Signature: Fn(Ty("T"), Ty("T"))},
				{Name: "exp", Signature: Fn(Ty("T"), Ty("T"))},
				{Name: "log", Signature: Fn(Ty("T"), Ty("T"))},
				{Name: "sqrt", Signature: Fn(Ty("T"), Ty("T"))},
			},
		},
		&ImplementsDef{Structure: "Transcendental", TypeArgs: []TypeExpr{realT}},

		// The abstract algebra tower.
		&StructureDef{
			Name:   "Group",
			Params: []TypeParam{{Name: "G"}},
			Operations: []OperationDef{
				{Name: "identity", Signature: Ty("G")},
				{Name: "combine", Signature: Fn(Tuple{Elems: []TypeExpr{Ty("G"), Ty("G")}}, Ty("G"))},
				{Name: "inverse", Signature: Fn(Ty("G"), Ty("G"))},
			},
		},
		&StructureDef{
			Name:    "Ring",
			Params:  []TypeParam{{Name: "R"}},
			Extends: []TypeExpr{App("Group", Ty("R"))},
			Operations: []OperationDef{
				{Name: "one", Signature: Ty("R")},
			},
		},
		&StructureDef{
			Name:    "Field",
			Params:  []TypeParam{{Name: "F"}},
			Extends: []TypeExpr{App("Ring", Ty("F"))},
			Operations: []OperationDef{
				{Name: "reciprocal", Signature: Fn(Ty("F"), Ty("F"))},
			},
		},
		&ImplementsDef{Structure: "Field", TypeArgs: []TypeExpr{realT}},
		&ImplementsDef{Structure: "Field", TypeArgs: []TypeExpr{complexT}},

		// Dimensioned containers.
		&StructureDef{
			Name:   "Vector",
			Params: []TypeParam{n, {Name: "T"}},
			Operations: []OperationDef{
				{Name: "dot", Signature: Fn(
					Tuple{Elems: []TypeExpr{App("Vector", Ty("n"), Ty("T")), App("Vector", Ty("n"), Ty("T"))}},
					Ty("T"))},
				{Name: "vector_add", Signature: Fn(
					Tuple{Elems: []TypeExpr{App("Vector", Ty("n"), Ty("T")), App("Vector", Ty("n"), Ty("T"))}},
					App("Vector", Ty("n"), Ty("T")))},
				{Name: "scale", Signature: Fn(
					Tuple{Elems: []TypeExpr{Ty("T"), App("Vector", Ty("n"), Ty("T"))}},
					App("Vector", Ty("n"), Ty("T")))},
				{Name: "norm", Signature: Fn(App("Vector", Ty("n"), Ty("T")), Ty("T"))},
				{Name: "cross", Signature: Fn(
					Tuple{Elems: []TypeExpr{App("Vector", Dim{Value: 3}, Ty("T")), App("Vector", Dim{Value: 3}, Ty("T"))}},
					App("Vector", Dim{Value: 3}, Ty("T")))},
			},
		},
		&StructureDef{
			Name:   "VectorSpace",
			Params: []TypeParam{{Name: "V"}, {Name: "F"}},
			Over:   App("Field", Ty("F")),
			Operations: []OperationDef{
				{Name: "zero_vector", Signature: Ty("V")},
			},
		},

		&StructureDef{
			Name:   "Matrix",
			Params: []TypeParam{m, n, {Name: "T"}},
			Operations: []OperationDef{
				{Name: "transpose", Signature: Fn(
					App("Matrix", Ty("m"), Ty("n"), Ty("T")),
					App("Matrix", Ty("n"), Ty("m"), Ty("T")))},
				{Name: "matrix_add", Signature: Fn(
					Tuple{Elems: []TypeExpr{
						App("Matrix", Ty("m"), Ty("n"), Ty("T")),
						App("Matrix", Ty("m"), Ty("n"), Ty("T")),
					}},
					App("Matrix", Ty("m"), Ty("n"), Ty("T")))},
				{Name: "trace", Signature: Fn(App("Matrix", Ty("n"), Ty("n"), Ty("T")), Ty("T"))},
				{Name: "determinant", Signature: Fn(App("Matrix", Ty("n"), Ty("n"), Ty("T")), Ty("T"))},
				{Name: "identity_matrix", Signature: App("Matrix", Ty("n"), Ty("n"), Ty("T"))},
			},
		},
		&StructureDef{
			Name:   "MatrixMultipliable",
			Params: []TypeParam{m, n, p, {Name: "T"}},
			Operations: []OperationDef{
				{Name: "multiply", Signature: Fn(
					Tuple{Elems: []TypeExpr{
						App("Matrix", Ty("m"), Ty("n"), Ty("T")),
						App("Matrix", Ty("n"), Ty("p"), Ty("T")),
					}},
					App("Matrix", Ty("m"), Ty("p"), Ty("T")))},
			},
		},

		&StructureDef{
			Name: "Tensor",
			Params: []TypeParam{
				{Name: "u", Kind: KindNat},
				{Name: "l", Kind: KindNat},
				{Name: "d", Kind: KindNat},
				{Name: "T"},
			},
			Operations: []OperationDef{
				{Name: "tensor_add", Signature: Fn(
					Tuple{Elems: []TypeExpr{
						App("Tensor", Ty("u"), Ty("l"), Ty("d"), Ty("T")),
						App("Tensor", Ty("u"), Ty("l"), Ty("d"), Ty("T")),
					}},
					App("Tensor", Ty("u"), Ty("l"), Ty("d"), Ty("T")))},
			},
		},

		// The numeric promotion ladder.
		&StructureDef{
			Name:   "Promotes",
			Params: []TypeParam{{Name: "A"}, {Name: "B"}},
			Operations: []OperationDef{
				{Name: "promote", Signature: Fn(Ty("A"), Ty("B"))},
			},
		},
		&ImplementsDef{Structure: "Promotes", TypeArgs: []TypeExpr{natural, integer}},
		&ImplementsDef{Structure: "Promotes", TypeArgs: []TypeExpr{integer, rational}},
		&ImplementsDef{Structure: "Promotes", TypeArgs: []TypeExpr{rational, realT}},
		&ImplementsDef{Structure: "Promotes", TypeArgs: []TypeExpr{realT, complexT}},
	}
}
