package nabla

import (
	"fmt"
	"strings"

	"github.com/vito/nabla/pkg/hm"
)

// UnboundOperationError reports an operation name with no registered
// signature at any arity.
type UnboundOperationError struct {
	Op string
}

func (e UnboundOperationError) Error() string {
	return fmt.Sprintf("unknown operation: %s", e.Op)
}

// NoMatchingImplementationError reports that every candidate signature
// for an operation failed to unify with the argument types.
type NoMatchingImplementationError struct {
	Op       string
	ArgTypes []hm.Type
}

func (e NoMatchingImplementationError) Error() string {
	args := make([]string, len(e.ArgTypes))
	for i, t := range e.ArgTypes {
		args[i] = t.String()
	}
	return fmt.Sprintf("no implementation of %s for argument types (%s)",
		e.Op, strings.Join(args, ", "))
}

// ArityMismatchError reports a call with the wrong number of arguments
// for every signature of the operation.
type ArityMismatchError struct {
	Op       string
	Expected []int
	Found    int
}

func (e ArityMismatchError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, n := range e.Expected {
		expected[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s expects %s argument(s), found %d",
		e.Op, strings.Join(expected, " or "), e.Found)
}

// DimensionMismatchError reports conflicting natural-number type
// arguments, naming the dimension parameter and both values.
type DimensionMismatchError struct {
	Op        string
	Parameter string
	Expected  int
	Found     int
}

func (e DimensionMismatchError) Error() string {
	if e.Parameter != "" {
		return fmt.Sprintf("dimension mismatch in %s: %s = %d, but found %d",
			e.Op, e.Parameter, e.Expected, e.Found)
	}
	return fmt.Sprintf("dimension mismatch in %s: expected %d, found %d",
		e.Op, e.Expected, e.Found)
}

// UnresolvedTypeParameterError reports a signature whose return type
// still mentions a parameter the arguments never determined.
type UnresolvedTypeParameterError struct {
	Op        string
	Parameter string
}

func (e UnresolvedTypeParameterError) Error() string {
	return fmt.Sprintf("cannot resolve type parameter %s of %s from the given arguments",
		e.Parameter, e.Op)
}

// CyclicDependencyError reports a cycle in structure extends or over
// edges, with the path that closes the cycle.
type CyclicDependencyError struct {
	Path []string
}

func (e CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic structure dependency: %s", strings.Join(e.Path, " → "))
}

// DuplicateNameError reports a second registration of an existing
// structure, or of an implementation at the same type arguments. Name
// carries the instantiated form for implementations, e.g. Numeric(ℝ).
type DuplicateNameError struct {
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("%s is already registered", e.Name)
}

// UnknownStructureError reports a reference to a structure that was
// never registered, from an implements block or an extends clause.
type UnknownStructureError struct {
	Name string
}

func (e UnknownStructureError) Error() string {
	return fmt.Sprintf("unknown structure: %s", e.Name)
}
