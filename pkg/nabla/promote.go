package nabla

// Promotion queries walk the directed graph built from Promotes
// implementations, such as ℕ → ℤ → ℚ → ℝ → ℂ in the standard library.

// CanPromote reports whether a value of type from can be promoted to
// type to, directly or through intermediate promotions.
func (r *Registry) CanPromote(from, to string) bool {
	if from == to {
		return true
	}
	return r.liftChain(from, to) != nil
}

// LiftChain returns the promotion path from one type to another,
// endpoints included, or nil when no path exists.
func (r *Registry) LiftChain(from, to string) []string {
	if from == to {
		return []string{from}
	}
	return r.liftChain(from, to)
}

func (r *Registry) liftChain(from, to string) []string {
	type node struct {
		name string
		prev *node
	}
	visited := map[string]bool{from: true}
	queue := []*node{{name: from}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range r.promotions[cur.name] {
			if visited[next] {
				continue
			}
			n := &node{name: next, prev: cur}
			if next == to {
				var chain []string
				for p := n; p != nil; p = p.prev {
					chain = append([]string{p.name}, chain...)
				}
				return chain
			}
			visited[next] = true
			queue = append(queue, n)
		}
	}
	return nil
}

// CommonSupertype finds the nearest type both arguments promote to.
// Either argument counts as its own supertype, so ℤ and ℝ meet at ℝ.
func (r *Registry) CommonSupertype(a, b string) (string, bool) {
	if a == b {
		return a, true
	}
	reachA := r.reachable(a)
	// Breadth-first from b keeps the meet as close to b as possible.
	visited := map[string]bool{b: true}
	queue := []string{b}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if reachA[cur] {
			return cur, true
		}
		for _, next := range r.promotions[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return "", false
}

func (r *Registry) reachable(from string) map[string]bool {
	out := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range r.promotions[cur] {
			if !out[next] {
				out[next] = true
				queue = append(queue, next)
			}
		}
	}
	return out
}
