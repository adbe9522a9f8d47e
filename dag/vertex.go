package dag

import "weak"

// color is the transient DFS marker used by cycle search. It is reset at
// the start of each search and has no meaning outside of one.
type color uint8

const (
	white color = iota
	gray
	black
)

// Vertex is a participant in precedence ordering. Vertices are created by
// [DAG.NewVertex] and exclusively owned by the DAG that created them.
type Vertex struct {
	id      uint32
	label   string
	isGOP   bool
	groupID int

	out      []*Edge
	outIndex map[*Vertex]*Edge
	inbound  int

	owner weak.Pointer[OwnerBox]

	// associates holds, for a GOP vertex, the vertices whose group-id will
	// be overwritten with the GOP's own group-id at Finalize.
	associates []*Vertex
	// fromGOP records, for a non-GOP vertex, whether its group-id was (or
	// will be) assigned by a GOP rather than by Sort directly. It guards
	// the OrderingConflict check.
	fromGOP bool
}

// ID returns the vertex's stable identifier, unique within its DAG.
func (v *Vertex) ID() uint32 { return v.id }

// Label returns the vertex's display label.
func (v *Vertex) Label() string { return v.label }

// IsGOP reports whether this vertex is a global ordering point.
func (v *Vertex) IsGOP() bool { return v.isGOP }

// GroupID returns the vertex's group-id. It is only meaningful after a
// successful Sort or Finalize; before that it is 1.
func (v *Vertex) GroupID() int { return v.groupID }

// InboundCount returns the number of distinct edges targeting this vertex.
func (v *Vertex) InboundCount() int { return v.inbound }

// Edges returns the vertex's outbound edges, in link order.
func (v *Vertex) Edges() []*Edge {
	out := make([]*Edge, len(v.out))
	copy(out, v.out)
	return out
}

// Edge is a labeled directed ordering constraint: Source precedes
// Destination. Edges are owned by the DAG and never exposed for mutation.
type Edge struct {
	id    uint32
	src   *Vertex
	dst   *Vertex
	label string
}

// ID returns the edge's stable identifier, unique within its DAG.
func (e *Edge) ID() uint32 { return e.id }

// Source returns the edge's source vertex.
func (e *Edge) Source() *Vertex { return e.src }

// Destination returns the edge's destination vertex.
func (e *Edge) Destination() *Vertex { return e.dst }

// Label returns the edge's diagnostic label.
func (e *Edge) Label() string { return e.label }
