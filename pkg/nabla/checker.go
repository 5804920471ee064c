package nabla

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/vito/nabla/pkg/hm"
)

// Checker ties a registry of structures to a set of object bindings
// and classifies expressions. A Checker is safe to reuse across
// expressions; each Check runs in its own session.
type Checker struct {
	reg      *Registry
	bindings Context
}

// New creates a checker with an empty registry.
func New() *Checker {
	return &Checker{
		reg:      NewRegistry(),
		bindings: NewContext(),
	}
}

// WithStandardLibrary creates a checker preloaded with the standard
// mathematical structures.
func WithStandardLibrary() (*Checker, error) {
	c := New()
	if err := c.Load(StandardLibrary()...); err != nil {
		return nil, err
	}
	return c, nil
}

// Registry exposes the underlying registry for introspection.
func (c *Checker) Registry() *Registry {
	return c.reg
}

// Load registers declarations in order. Structures must be registered
// before implementations that reference them.
func (c *Checker) Load(decls ...Decl) error {
	for _, decl := range decls {
		var err error
		switch d := decl.(type) {
		case *StructureDef:
			err = c.reg.Register(d)
		case *ImplementsDef:
			err = c.reg.RegisterImplements(d)
		default:
			err = fmt.Errorf("declaration of type %T is unhandled", decl)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Bind gives an object name a known type for subsequent checks.
func (c *Checker) Bind(name string, t hm.Type) {
	c.bindings = c.bindings.Bind(name, t)
}

// Infer types an expression, returning the raw type and error.
func (c *Checker) Infer(expr Expression) (hm.Type, error) {
	s := newSession(c.reg, c.bindings)
	t, err := s.infer(expr)
	if err != nil {
		return nil, err
	}
	return s.subs.Apply(t), nil
}

// InferWith types an expression under an explicit context instead of
// the checker's own bindings.
func (c *Checker) InferWith(ctx Context, expr Expression) (hm.Type, error) {
	s := newSession(c.reg, ctx)
	t, err := s.infer(expr)
	if err != nil {
		return nil, err
	}
	return s.subs.Apply(t), nil
}

// Check types an expression and classifies the outcome: a resolved
// type, a typed failure with a suggestion, or a polymorphic result
// listing the types that could close the remaining variable.
func (c *Checker) Check(expr Expression) CheckResult {
	s := newSession(c.reg, c.bindings)
	t, err := s.infer(expr)
	if err != nil {
		return Failure{
			Message:    err.Error(),
			Suggestion: c.suggestionFor(err),
		}
	}

	final := s.subs.Apply(t)
	free := final.FreeTypeVars()
	if len(free) == 0 {
		return Success{Type: final}
	}

	vars := make([]hm.Variable, 0, len(free))
	for v := range free {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })

	return Polymorphic{
		TypeVar:        vars[0],
		Type:           final,
		AvailableTypes: c.availableTypes(s.ops),
	}
}

// availableTypes collects the concrete types implementing any
// structure behind the operations the expression used.
func (c *Checker) availableTypes(ops []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, op := range ops {
		for _, name := range c.reg.TypesSupporting(op) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// TypesSupporting reports the concrete types on which an operation is
// available, re-exported for IDE tooling.
func (c *Checker) TypesSupporting(op string) []string {
	return c.reg.TypesSupporting(op)
}

func (c *Checker) suggestionFor(err error) string {
	var unbound UnboundOperationError
	if errors.As(err, &unbound) {
		return c.reg.SuggestOperation(unbound.Op)
	}

	var noMatch NoMatchingImplementationError
	if errors.As(err, &noMatch) {
		sigs := c.reg.OperationSignatures(noMatch.Op)
		if len(sigs) > 0 {
			return "available signatures: " + strings.Join(sigs, "; ")
		}
		return ""
	}

	var arity ArityMismatchError
	if errors.As(err, &arity) {
		sigs := c.reg.OperationSignatures(arity.Op)
		if len(sigs) > 0 {
			return "available signatures: " + strings.Join(sigs, "; ")
		}
		return ""
	}

	var dim DimensionMismatchError
	if errors.As(err, &dim) {
		return "the operand shapes do not align; check the dimensions"
	}

	var unresolved UnresolvedTypeParameterError
	if errors.As(err, &unresolved) {
		return "annotate the arguments so the parameter is determined"
	}

	return ""
}
