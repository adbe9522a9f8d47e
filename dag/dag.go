package dag

import "fmt"

// DAG owns a set of vertices and the directed edges between them, and
// computes group-ids via a topological sort. The DAG is single-writer: it
// performs no internal locking and must only be mutated from one logical
// thread of control.
type DAG struct {
	vertices []*Vertex // dense slab, indexed by id
	nextEdge uint32

	gops map[string]*Vertex

	finalized bool
	opts      *dagOptions
}

// NewDAG constructs an empty DAG.
func NewDAG(opts ...Option) *DAG {
	return &DAG{
		gops: make(map[string]*Vertex),
		opts: resolveOptions(opts),
	}
}

// NewVertex creates and returns a new vertex owned by the DAG. label is
// used only for diagnostics and DOT rendering.
func (d *DAG) NewVertex(label string, isGOP bool) (*Vertex, error) {
	if d.finalized {
		return nil, ErrAlreadyFinalized
	}
	v := &Vertex{
		id:       uint32(len(d.vertices)),
		label:    label,
		isGOP:    isGOP,
		groupID:  1,
		outIndex: make(map[*Vertex]*Edge),
	}
	d.vertices = append(d.vertices, v)
	return v, nil
}

// FindOrCreateGOP returns the named global ordering point, creating it if
// this is the first reference to name.
func (d *DAG) FindOrCreateGOP(name string) (*Vertex, error) {
	if v, ok := d.gops[name]; ok {
		return v, nil
	}
	v, err := d.NewVertex(name, true)
	if err != nil {
		return nil, err
	}
	d.gops[name] = v
	return v, nil
}

// Link adds an edge "src precedes dst". Linking the same pair twice is
// idempotent: the second call is a no-op returning nil. With early cycle
// detection enabled (the default), Link performs a DFS from dst looking
// for a path back to src and returns a *CycleError without mutating the
// graph if one is found.
func (d *DAG) Link(src, dst *Vertex, label string) error {
	if d.finalized {
		return ErrAlreadyFinalized
	}
	if src == dst {
		return fmt.Errorf("%w: %s", ErrSelfLoop, src.Label())
	}
	if _, exists := src.outIndex[dst]; exists {
		return nil
	}

	if d.opts.earlyCycleDetection {
		if path := findPath(dst, src); path != nil {
			// path runs dst -> ... -> src inclusive of both ends; src is
			// dropped from the tail since it is re-added as the head,
			// representing the not-yet-committed edge src -> dst.
			return &CycleError{Path: append([]*Vertex{src}, path[:len(path)-1]...)}
		}
	}

	e := &Edge{id: d.nextEdge, src: src, dst: dst, label: label}
	d.nextEdge++
	src.out = append(src.out, e)
	src.outIndex[dst] = e
	dst.inbound++
	return nil
}

// Unlink removes the edge "src precedes dst" if present. It is a no-op if
// no such edge exists or if the DAG has already been finalized.
func (d *DAG) Unlink(src, dst *Vertex) {
	if d.finalized {
		return
	}
	e, ok := src.outIndex[dst]
	if !ok {
		return
	}
	delete(src.outIndex, dst)
	for i, oe := range src.out {
		if oe == e {
			src.out = append(src.out[:i], src.out[i+1:]...)
			break
		}
	}
	dst.inbound--
}

// Sort performs a Kahn-style layered topological sort, assigning every
// vertex's group-id and returning the number of distinct group-ids in use.
// It is the smallest group-id assignment such that every edge u -> v has
// group_id(u) < group_id(v); independent chains may share a group-id.
//
// Sort may be called repeatedly; each call recomputes group-ids from
// scratch. If the graph contains a cycle, it returns a *CycleError and
// leaves group-ids in an undefined, partially-updated state.
func (d *DAG) Sort() (nGroups int, err error) {
	working := make([]int, len(d.vertices))
	for i, v := range d.vertices {
		working[i] = v.inbound
		v.groupID = 1
	}

	queue := make([]*Vertex, 0, len(d.vertices))
	for _, v := range d.vertices {
		if working[v.id] == 0 {
			queue = append(queue, v)
		}
	}

	visited := 0
	maxGroup := 1
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		visited++

		for _, e := range v.out {
			w := e.dst
			if w.groupID <= v.groupID {
				w.groupID = v.groupID + 1
			}
			if w.groupID > maxGroup {
				maxGroup = w.groupID
			}
			working[w.id]--
			if working[w.id] == 0 {
				queue = append(queue, w)
			}
		}
	}

	if visited != len(d.vertices) {
		return 0, d.detectCycle()
	}

	minGroup := maxGroup
	for _, v := range d.vertices {
		if v.groupID < minGroup {
			minGroup = v.groupID
		}
	}
	return maxGroup - minGroup + 1, nil
}

// Finalize sorts the graph, transfers every GOP's group-id to its
// associates, and freezes the graph against further Link/Unlink/NewVertex
// calls.
func (d *DAG) Finalize() error {
	if d.finalized {
		return nil
	}
	if _, err := d.Sort(); err != nil {
		return err
	}
	assignedBy := make(map[*Vertex]*Vertex)
	for _, gop := range d.gops {
		for _, a := range gop.associates {
			if a.fromGOP && assignedBy[a] != gop {
				return fmt.Errorf("%w: associate %q of GOP %q already carries a group-id from another source",
					ErrOrderingConflict, a.Label(), gop.Label())
			}
			assignedBy[a] = gop
			a.groupID = gop.groupID
			a.fromGOP = true
		}
	}
	d.finalized = true
	return nil
}

// RegisterAssociate declares that v's group-id should be overwritten with
// gop's group-id at Finalize. v must not already have had a group-id
// assigned by a different GOP; violating this is reported by Finalize as
// ErrOrderingConflict.
func (d *DAG) RegisterAssociate(gop, v *Vertex) {
	gop.associates = append(gop.associates, v)
}

// Finalized reports whether Finalize has completed successfully.
func (d *DAG) Finalized() bool { return d.finalized }

// Vertices returns every vertex currently owned by the DAG, in creation
// order.
func (d *DAG) Vertices() []*Vertex {
	out := make([]*Vertex, len(d.vertices))
	copy(out, d.vertices)
	return out
}
