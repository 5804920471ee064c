package nabla

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Candidate is one dispatchable signature for an operation: the
// signature as declared, with implements-block type arguments already
// substituted in, plus the kinds of the parameter names still free.
type Candidate struct {
	Op        string
	Structure string
	Source    string
	Sig       Signature
	Params    map[string]Kind

	// Generic marks a signature taken straight from a structure
	// declaration rather than an implements block. Generic signatures
	// match any argument their parameters unify with; dispatch is
	// deliberately first-registered-wins.
	Generic bool
}

// Registry holds the known structures and implementations and indexes
// their operations for dispatch. Registration order is significant:
// when several candidates match a call, the first registered wins.
type Registry struct {
	structures []*StructureDef
	byName     map[string]*StructureDef
	implements []*ImplementsDef
	opIndex    map[string][]Candidate
	promotions map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:     map[string]*StructureDef{},
		opIndex:    map[string][]Candidate{},
		promotions: map[string][]string{},
	}
}

// Register adds a structure. Its operation signatures become generic
// dispatch candidates, parameterized over the structure's type
// parameters.
func (r *Registry) Register(def *StructureDef) error {
	if _, exists := r.byName[def.Name]; exists {
		return DuplicateNameError{Name: def.Name}
	}
	r.structures = append(r.structures, def)
	r.byName[def.Name] = def

	params := map[string]Kind{}
	for _, p := range def.Params {
		params[p.Name] = p.Kind
	}
	for _, op := range def.Operations {
		r.addCandidate(Candidate{
			Op:        op.Name,
			Structure: def.Name,
			Source:    def.Name,
			Sig:       SplitSignature(op.Signature),
			Params:    params,
			Generic:   true,
		})
	}
	slog.Debug("registered structure",
		"name", def.Name,
		"params", len(def.Params),
		"operations", len(def.Operations))
	return nil
}

// RegisterImplements adds an implementation of a structure at concrete
// type arguments. The structure's operation signatures are specialized
// by substituting the type arguments for its parameters; operations
// declared in the implements block itself are indexed alongside.
//
// Implementations of Promotes additionally record a promotion edge
// between their two type arguments.
func (r *Registry) RegisterImplements(impl *ImplementsDef) error {
	def, ok := r.byName[impl.Structure]
	if !ok {
		return UnknownStructureError{Name: impl.Structure}
	}
	if len(impl.TypeArgs) != len(def.Params) {
		return fmt.Errorf("%s takes %d type argument(s), got %d",
			def.Name, len(def.Params), len(impl.TypeArgs))
	}

	source := impl.Structure
	if len(impl.TypeArgs) > 0 {
		args := make([]string, len(impl.TypeArgs))
		for i, a := range impl.TypeArgs {
			args[i] = a.String()
		}
		source = fmt.Sprintf("%s(%s)", impl.Structure, strings.Join(args, ", "))
	}

	// A second implementation at the same type arguments would
	// silently double every dispatch candidate.
	for _, existing := range r.implements {
		if existing.Structure == impl.Structure && typeArgsEqual(existing.TypeArgs, impl.TypeArgs) {
			return DuplicateNameError{Name: source}
		}
	}
	r.implements = append(r.implements, impl)

	subst := map[string]TypeExpr{}
	for i, p := range def.Params {
		subst[p.Name] = impl.TypeArgs[i]
	}
	params := map[string]Kind{}
	for _, c := range impl.Where {
		params[c.Param] = KindType
	}

	declared := map[string]bool{}
	for _, op := range impl.Operations {
		declared[op.Name] = true
		r.addCandidate(Candidate{
			Op:        op.Name,
			Structure: impl.Structure,
			Source:    source,
			Sig:       SplitSignature(substTypeExpr(op.Signature, subst)),
			Params:    params,
		})
	}
	for _, op := range def.Operations {
		if declared[op.Name] {
			continue
		}
		r.addCandidate(Candidate{
			Op:        op.Name,
			Structure: impl.Structure,
			Source:    source,
			Sig:       SplitSignature(substTypeExpr(op.Signature, subst)),
			Params:    params,
		})
	}

	if impl.Structure == "Promotes" && len(impl.TypeArgs) == 2 {
		from := typeExprName(impl.TypeArgs[0])
		to := typeExprName(impl.TypeArgs[1])
		if from != "" && to != "" {
			r.promotions[from] = append(r.promotions[from], to)
			slog.Debug("recorded promotion", "from", from, "to", to)
		}
	}

	slog.Debug("registered implementation", "structure", impl.Structure, "source", source)
	return nil
}

func (r *Registry) addCandidate(c Candidate) {
	r.opIndex[c.Op] = append(r.opIndex[c.Op], c)
}

// StructureNames returns the registered structure names in
// registration order.
func (r *Registry) StructureNames() []string {
	out := make([]string, len(r.structures))
	for i, def := range r.structures {
		out[i] = def.Name
	}
	return out
}

// Structure returns a registered structure by name.
func (r *Registry) Structure(name string) (*StructureDef, bool) {
	def, ok := r.byName[name]
	return def, ok
}

// HasOperation reports whether any signature is registered for the
// operation at any arity.
func (r *Registry) HasOperation(op string) bool {
	return len(r.opIndex[op]) > 0
}

// SignaturesFor returns the candidates for an operation at the given
// arity, in registration order.
func (r *Registry) SignaturesFor(op string, arity int) []Candidate {
	var out []Candidate
	for _, c := range r.opIndex[op] {
		if c.Sig.Arity() == arity {
			out = append(out, c)
		}
	}
	return out
}

// Arities returns the distinct arities registered for an operation, in
// ascending order.
func (r *Registry) Arities(op string) []int {
	seen := map[int]bool{}
	var out []int
	for _, c := range r.opIndex[op] {
		n := c.Sig.Arity()
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// DependencyClosure returns every structure the named one depends on
// through extends and over edges, including itself, in depth-first
// order. A cycle is an error naming the path that closes it.
func (r *Registry) DependencyClosure(name string) ([]string, error) {
	if _, ok := r.byName[name]; !ok {
		return nil, UnknownStructureError{Name: name}
	}
	var (
		order  []string
		done   = map[string]bool{}
		onPath = map[string]bool{}
		path   []string
		visit  func(string) error
	)
	visit = func(cur string) error {
		if onPath[cur] {
			cycle := append(cyclePath(path, cur), cur)
			return CyclicDependencyError{Path: cycle}
		}
		if done[cur] {
			return nil
		}
		def, ok := r.byName[cur]
		if !ok {
			return UnknownStructureError{Name: cur}
		}
		onPath[cur] = true
		path = append(path, cur)
		for _, dep := range r.dependencyEdges(def) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		onPath[cur] = false
		done[cur] = true
		order = append(order, cur)
		return nil
	}
	if err := visit(name); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Registry) dependencyEdges(def *StructureDef) []string {
	var edges []string
	for _, ext := range def.Extends {
		if n := typeExprName(ext); n != "" {
			edges = append(edges, n)
		}
	}
	if def.Over != nil {
		if n := typeExprName(def.Over); n != "" {
			edges = append(edges, n)
		}
	}
	return edges
}

func cyclePath(path []string, start string) []string {
	for i, name := range path {
		if name == start {
			return append([]string{}, path[i:]...)
		}
	}
	return append([]string{}, path...)
}

// TypesSupporting returns the concrete types on which the operation is
// available, through any structure declaring it.
func (r *Registry) TypesSupporting(op string) []string {
	var out []string
	seen := map[string]bool{}
	for _, cand := range r.opIndex[op] {
		for _, name := range r.Implementors(cand.Structure) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// Implementors returns the names of the concrete types with a
// registered implementation of the structure, in registration order.
func (r *Registry) Implementors(structure string) []string {
	var out []string
	seen := map[string]bool{}
	for _, impl := range r.implements {
		if impl.Structure != structure || len(impl.TypeArgs) == 0 {
			continue
		}
		name := impl.TypeArgs[0].String()
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// StructuresForType returns the structures a concrete type implements.
func (r *Registry) StructuresForType(typeName string) []string {
	var out []string
	seen := map[string]bool{}
	for _, impl := range r.implements {
		if len(impl.TypeArgs) == 0 || impl.TypeArgs[0].String() != typeName {
			continue
		}
		if !seen[impl.Structure] {
			seen[impl.Structure] = true
			out = append(out, impl.Structure)
		}
	}
	return out
}

// OperationsForType returns the operations available on a concrete
// type through its implemented structures.
func (r *Registry) OperationsForType(typeName string) []string {
	var out []string
	seen := map[string]bool{}
	for _, structure := range r.StructuresForType(typeName) {
		def, ok := r.byName[structure]
		if !ok {
			continue
		}
		for _, op := range def.Operations {
			if !seen[op.Name] {
				seen[op.Name] = true
				out = append(out, op.Name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// OperationSignatures returns the display form of every signature
// registered for an operation, with its source structure.
func (r *Registry) OperationSignatures(op string) []string {
	var out []string
	for _, c := range r.opIndex[op] {
		out = append(out, fmt.Sprintf("%s: %s", c.Source, c.Sig))
	}
	return out
}

// SuggestOperation proposes registered operation names close to an
// unknown one, for error suggestions.
func (r *Registry) SuggestOperation(op string) string {
	var names []string
	for name := range r.opIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	var matches []string
	for _, name := range names {
		if strings.Contains(name, op) || strings.Contains(op, name) || editDistance(name, op) <= 2 {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return ""
	}
	return "did you mean " + strings.Join(matches, ", ") + "?"
}

func editDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	prev := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		cur := make([]int, len(br)+1)
		cur[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev = cur
	}
	return prev[len(br)]
}

func substTypeExpr(expr TypeExpr, subst map[string]TypeExpr) TypeExpr {
	switch t := expr.(type) {
	case Named:
		if repl, ok := subst[t.Name]; ok {
			return repl
		}
		return t
	case Parametric:
		args := make([]TypeExpr, len(t.Args))
		for i, arg := range t.Args {
			args[i] = substTypeExpr(arg, subst)
		}
		return Parametric{Name: t.Name, Args: args}
	case Arrow:
		return Arrow{
			Domain:   substTypeExpr(t.Domain, subst),
			Codomain: substTypeExpr(t.Codomain, subst),
		}
	case Tuple:
		elems := make([]TypeExpr, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = substTypeExpr(e, subst)
		}
		return Tuple{Elems: elems}
	default:
		return expr
	}
}

func typeArgsEqual(a, b []TypeExpr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].String() != b[i].String() {
			return false
		}
	}
	return true
}

func typeExprName(expr TypeExpr) string {
	switch t := expr.(type) {
	case Named:
		return t.Name
	case Parametric:
		return t.Name
	}
	return ""
}
