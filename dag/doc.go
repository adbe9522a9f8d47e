// Package dag implements the precedence graph used to order schedulable
// entities within a tick: vertices, labeled directed edges, cycle
// detection, and a Kahn-style layered topological sort that assigns a
// dense, positive group-id to every vertex.
//
// # Group-ids
//
// Sort computes the smallest group-id assignment such that every edge
// u -> v satisfies group_id(u) < group_id(v). Independent chains may share
// a group-id; this is intentional, and lets unrelated model components that
// happen to have no ordering constraint between them fire in the same
// batch.
//
// # Global Ordering Points
//
// A GOP is a named [Vertex] shared by two otherwise decoupled subsystems
// that want to agree on "A before the rendezvous before B" without knowing
// about each other. After Finalize, a GOP's group-id is copied onto every
// vertex registered as one of its associates.
//
// # Ownership
//
// The DAG exclusively owns all vertices and edges it creates; it never
// exposes them for mutation outside Link/Unlink. A Vertex may carry a
// non-owning back-pointer to whatever attached it (see [Vertex.SetOwner]),
// looked up lazily and never keeping that attachment alive.
package dag
