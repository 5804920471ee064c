package hm

// Subs is a substitution: a finite mapping from type variables to
// types. Substitutions are kept idempotent — every type in the range is
// fully resolved with respect to the mapping itself — so applying one
// twice equals applying it once.
type Subs map[Variable]Type

// NewSubs creates an empty substitution.
func NewSubs() Subs {
	return make(Subs)
}

// Apply applies the substitution to a type. Callers must apply the
// current substitution to any type immediately before handing it out;
// skipping this is the class of bug where a result wrongly remains a
// variable after a binding for it already exists.
func (s Subs) Apply(t Type) Type {
	if len(s) == 0 {
		return t
	}
	return t.Apply(s)
}

// Compose extends s with the bindings of other, applying other to every
// existing binding so the result stays idempotent.
func (s Subs) Compose(other Subs) Subs {
	out := make(Subs, len(s)+len(other))
	for tv, t := range s {
		out[tv] = t.Apply(other)
	}
	for tv, t := range other {
		if _, exists := out[tv]; !exists {
			out[tv] = t
		}
	}
	return out
}

// Clone copies the substitution.
func (s Subs) Clone() Subs {
	out := make(Subs, len(s))
	for tv, t := range s {
		out[tv] = t
	}
	return out
}

// Get returns the binding for a variable.
func (s Subs) Get(tv Variable) (Type, bool) {
	t, ok := s[tv]
	return t, ok
}
