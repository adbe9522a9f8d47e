package dag

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by DAG operations.
var (
	// ErrSelfLoop is returned by Link when src == dst.
	ErrSelfLoop = errors.New("dag: vertex cannot precede itself")

	// ErrAlreadyFinalized is returned by Link and NewVertex once the DAG
	// has been finalized. Unlink returns no error and is a no-op then.
	ErrAlreadyFinalized = errors.New("dag: graph already finalized")

	// ErrOrderingConflict is returned by Finalize when a GOP associate
	// already carries a group-id assigned by another source.
	ErrOrderingConflict = errors.New("dag: ordering conflict")
)

// CycleError reports a precedence cycle found either by Sort's residual
// inbound-count check or by the optional early (DFS-based) detector
// performed by Link.
type CycleError struct {
	// Path is the sequence of distinct vertices forming the cycle, in
	// traversal order. The cycle closes from the last element back to the
	// first; Path[0] is not repeated.
	Path []*Vertex
}

// Error implements the error interface, rendering the cycle as a
// human-readable arrow chain.
func (e *CycleError) Error() string {
	labels := make([]string, len(e.Path))
	for i, v := range e.Path {
		labels[i] = v.Label()
	}
	return fmt.Sprintf("dag: precedence cycle detected: %s", strings.Join(labels, " -> "))
}

// Vertices returns the ordered vertex sequence making up the cycle.
func (e *CycleError) Vertices() []*Vertex {
	return e.Path
}

// DOT renders the offending subgraph in Graphviz DOT format, for
// machine-readable diagnostics alongside the textual message.
func (e *CycleError) DOT() string {
	var b strings.Builder
	b.WriteString("digraph cycle {\n")
	for i := 0; i < len(e.Path); i++ {
		from := e.Path[i]
		to := e.Path[(i+1)%len(e.Path)]
		fmt.Fprintf(&b, "  %q -> %q;\n", from.Label(), to.Label())
	}
	b.WriteString("}\n")
	return b.String()
}
