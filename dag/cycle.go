package dag

// findPath searches for a directed path from "from" to "to" using only
// outbound edges, returning the vertices along that path (inclusive of
// both ends) in traversal order, or nil if "to" is unreachable from
// "from". It is used by Link to ask, before committing a new edge
// src->dst, whether dst can already reach src.
func findPath(from, to *Vertex) []*Vertex {
	if from == to {
		return []*Vertex{from}
	}

	type frame struct {
		v    *Vertex
		path []*Vertex
	}

	visited := map[*Vertex]bool{from: true}
	stack := []frame{{v: from, path: []*Vertex{from}}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, e := range top.v.out {
			w := e.dst
			if w == to {
				return append(append([]*Vertex{}, top.path...), w)
			}
			if visited[w] {
				continue
			}
			visited[w] = true
			next := append(append([]*Vertex{}, top.path...), w)
			stack = append(stack, frame{v: w, path: next})
		}
	}
	return nil
}

// detectCycle runs a classic WHITE/GRAY/BLACK depth-first search over the
// whole graph looking for a back-edge into a GRAY (on-stack) vertex. It is
// called by Sort once Kahn's algorithm terminates without having visited
// every vertex, which can only happen in the presence of a cycle.
func (d *DAG) detectCycle() error {
	marks := make([]color, len(d.vertices))
	var stack []*Vertex
	var found *CycleError

	var visit func(v *Vertex) bool
	visit = func(v *Vertex) bool {
		marks[v.id] = gray
		stack = append(stack, v)

		for _, e := range v.out {
			w := e.dst
			switch marks[w.id] {
			case white:
				if visit(w) {
					return true
				}
			case gray:
				for i, sv := range stack {
					if sv == w {
						path := make([]*Vertex, len(stack)-i)
						copy(path, stack[i:])
						found = &CycleError{Path: path}
						break
					}
				}
				return true
			case black:
				// fully explored; cannot lead back to an on-stack vertex
			}
		}

		marks[v.id] = black
		stack = stack[:len(stack)-1]
		return false
	}

	for _, v := range d.vertices {
		if marks[v.id] == white {
			if visit(v) {
				return found
			}
		}
	}

	// Sort only calls detectCycle when it already knows some vertex was
	// never visited, so a cycle must exist; this is unreachable in
	// practice but kept as a defensive fallback.
	return &CycleError{}
}
