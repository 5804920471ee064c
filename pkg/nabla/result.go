package nabla

import (
	"fmt"
	"strings"

	"github.com/vito/nabla/pkg/hm"
)

// CheckResult is the outcome of checking one expression. It is a
// closed three-way union: checking never panics and never returns a
// bare error, it classifies.
type CheckResult interface {
	isCheckResult()
	fmt.Stringer
}

// Success carries the fully resolved type.
type Success struct {
	Type hm.Type
}

// Failure carries a human-readable message and, when one can be
// computed, a suggestion for fixing the expression.
type Failure struct {
	Message    string
	Suggestion string
}

// Polymorphic reports a well-typed expression whose type is still
// open: a variable remains, and any of the listed types would close
// it.
type Polymorphic struct {
	TypeVar        hm.Variable
	Type           hm.Type
	AvailableTypes []string
}

func (Success) isCheckResult()     {}
func (Failure) isCheckResult()     {}
func (Polymorphic) isCheckResult() {}

func (r Success) String() string {
	return r.Type.String()
}

func (r Failure) String() string {
	if r.Suggestion != "" {
		return r.Message + " (" + r.Suggestion + ")"
	}
	return r.Message
}

func (r Polymorphic) String() string {
	if len(r.AvailableTypes) == 0 {
		return fmt.Sprintf("polymorphic: %s", r.Type)
	}
	return fmt.Sprintf("polymorphic: %s for %s ∈ {%s}",
		r.Type, r.TypeVar, strings.Join(r.AvailableTypes, ", "))
}
